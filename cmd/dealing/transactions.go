package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing"
	"io"
	"sort"
	"time"
)

const startDateLayout = "2006-01-02"

type transactionsOptions struct {
	days      int
	startDate time.Time
	filter    string
	archive   bool
	mailTo    string
}

func parseTransactions(args []string) (action, error) {
	options, err := parseTransactionsOptions(args)
	if err != nil {
		return nil, err
	}

	return options.run, nil
}

func parseTransactionsOptions(args []string) (*transactionsOptions, error) {
	options := &transactionsOptions{}

	var startDate string

	flags := flag.NewFlagSet("transactions", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.IntVar(&options.days, "days", 0, "number of days to print transactions for")
	flags.StringVar(&startDate, "start-date", "", "start date, yyyy-mm-dd")
	flags.StringVar(&options.filter, "type", "all", "all, all_deal, deposit or withdrawal")
	flags.BoolVar(&options.archive, "archive", false, "store transactions in the archive")
	flags.StringVar(&options.mailTo, "mail-to", "", "send the totals report to this address")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if options.days <= 0 {
		return nil, fmt.Errorf("days must be a positive number")
	}

	if len(startDate) > 0 {
		parsed, err := time.ParseInLocation(startDateLayout, startDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid start date, use format yyyy-mm-dd")
		}
		options.startDate = parsed
	}

	return options, nil
}

// window returns the period starting at the start date, or ending now when
// no start date is given.
func (tro *transactionsOptions) window(now time.Time) (time.Time, time.Time) {
	if tro.startDate.IsZero() {
		return now.AddDate(0, 0, -tro.days), now
	}

	return tro.startDate, tro.startDate.AddDate(0, 0, tro.days)
}

func (tro *transactionsOptions) run(ctx context.Context, env *environment) error {
	if len(tro.mailTo) > 0 && env.reports == nil {
		return fmt.Errorf("mail is not configured")
	}

	from, to := tro.window(env.now())

	transactions, err := env.platform.Transactions(
		ctx,
		dealing.TransactionFilter{From: from, To: to, Type: tro.filter},
	)
	if err != nil {
		return err
	}

	if tro.archive {
		if err := archiveHistory(env, func(
			archive dealing.HistoryArchive,
		) (int, error) {
			return dealing.ArchiveTransactions(archive, transactions)
		}); err != nil {
			return err
		}
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date().Before(transactions[j].Date())
	})

	report, err := dealing.NewTransactionReport(from, to, transactions)
	if err != nil {
		return err
	}

	if err := printTransactions(env.stdout, transactions); err != nil {
		return err
	}

	printTotals(env.stdout, report.Totals)

	if len(tro.mailTo) > 0 {
		if err := env.reports.SendReport(tro.mailTo, report); err != nil {
			return err
		}

		env.logger.Infof("report sent to [%v]", tro.mailTo)
	}

	return nil
}
