package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing"
	"io"
	"regexp"
	"sort"
	"time"
)

var activitySortKeys = map[string]func(activity *dealing.Activity) string{
	"channel": (*dealing.Activity).Channel,
	"date":    func(*dealing.Activity) string { return "" },
	"epic":    (*dealing.Activity).Epic,
	"type":    (*dealing.Activity).Category,
}

type activitiesOptions struct {
	days    int
	from    time.Time
	to      time.Time
	epic    *regexp.Regexp
	sortBy  string
	archive bool
}

func parseActivities(args []string) (action, error) {
	options, err := parseActivitiesOptions(args)
	if err != nil {
		return nil, err
	}

	return options.run, nil
}

func parseActivitiesOptions(args []string) (*activitiesOptions, error) {
	options := &activitiesOptions{}

	var from, to, epic string

	flags := flag.NewFlagSet("activities", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.IntVar(&options.days, "days", 0, "number of days to print activities for")
	flags.StringVar(&from, "from", "", "start time, RFC3339")
	flags.StringVar(&to, "to", "", "end time, RFC3339")
	flags.StringVar(&epic, "epic", "", "regex filtering activities by EPIC")
	flags.StringVar(&options.sortBy, "sort-by", "date", "channel, date, epic or type")
	flags.BoolVar(&options.archive, "archive", false, "store activities in the archive")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if len(from) > 0 {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return nil, fmt.Errorf(
				"invalid from, use format yyyy-mm-ddThh:mm:ss(+|-)hh:mm",
			)
		}
		options.from = parsed
	}

	if len(to) > 0 {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return nil, fmt.Errorf(
				"invalid to, use format yyyy-mm-ddThh:mm:ss(+|-)hh:mm",
			)
		}
		options.to = parsed
	}

	if options.from.IsZero() && options.days <= 0 {
		return nil, fmt.Errorf("either days or from must be set")
	}

	epicRegex, err := regexp.Compile("(?i)" + epic)
	if err != nil {
		return nil, fmt.Errorf("invalid epic regex: [%v]", err)
	}
	options.epic = epicRegex

	if _, ok := activitySortKeys[options.sortBy]; !ok {
		return nil, fmt.Errorf("invalid sort attribute: [%v]", options.sortBy)
	}

	return options, nil
}

// window resolves the requested period. Explicit bounds take precedence over
// the number of days counted back from now.
func (ao *activitiesOptions) window(now time.Time) (time.Time, time.Time) {
	from, to := ao.from, ao.to

	if from.IsZero() {
		if to.IsZero() {
			to = now
		}

		from = to.AddDate(0, 0, -ao.days)
	}

	return from, to
}

func (ao *activitiesOptions) run(ctx context.Context, env *environment) error {
	from, to := ao.window(env.now())

	activities, err := env.platform.Activities(
		ctx,
		dealing.ActivityFilter{From: from, To: to},
	)
	if err != nil {
		return err
	}

	if ao.archive {
		if err := archiveHistory(env, func(
			archive dealing.HistoryArchive,
		) (int, error) {
			return dealing.ArchiveActivities(archive, activities)
		}); err != nil {
			return err
		}
	}

	filtered := make([]*dealing.Activity, 0, len(activities))
	for _, activity := range activities {
		if ao.epic.MatchString(activity.Epic()) {
			filtered = append(filtered, activity)
		}
	}

	sortActivities(filtered, ao.sortBy)

	return printActivities(env.stdout, filtered)
}

func sortActivities(activities []*dealing.Activity, sortBy string) {
	key := activitySortKeys[sortBy]

	sort.SliceStable(activities, func(i, j int) bool {
		keyI, keyJ := key(activities[i]), key(activities[j])
		if keyI != keyJ {
			return keyI < keyJ
		}

		return activities[i].Date().Before(activities[j].Date())
	})
}

func archiveHistory(
	env *environment,
	store func(archive dealing.HistoryArchive) (int, error),
) error {
	archive, release, err := env.archive()
	if err != nil {
		return err
	}
	defer release()

	stored, err := store(archive)
	if err != nil {
		return fmt.Errorf("could not archive history: [%v]", err)
	}

	env.logger.Infof("archived [%v] new history records", stored)

	return nil
}
