package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing/daemon"
	"io"
	"time"
)

type archiveOptions struct {
	days     int
	interval time.Duration
}

func parseArchive(args []string) (action, error) {
	options, err := parseArchiveOptions(args)
	if err != nil {
		return nil, err
	}

	return options.run, nil
}

func parseArchiveOptions(args []string) (*archiveOptions, error) {
	options := &archiveOptions{}

	flags := flag.NewFlagSet("archive", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.IntVar(&options.days, "days", 1, "number of past days archived by the first round")
	flags.DurationVar(&options.interval, "interval", 15*time.Minute, "time between archive rounds")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if options.days <= 0 {
		return nil, fmt.Errorf("days must be a positive number")
	}

	if options.interval < time.Minute {
		return nil, fmt.Errorf("interval must be at least one minute")
	}

	return options, nil
}

// run keeps archiving the account history until interrupted.
func (ao *archiveOptions) run(ctx context.Context, env *environment) error {
	archive, release, err := env.archive()
	if err != nil {
		return err
	}
	defer release()

	env.logger.Infof(
		"archiving history every [%v]",
		ao.interval,
	)

	archiver := daemon.RunHistoryArchiver(
		ctx,
		env.logger,
		env.platform,
		archive,
		env.now().AddDate(0, 0, -ao.days),
		ao.interval,
	)

	select {
	case err := <-archiver.ErrChan():
		return fmt.Errorf("history archiver failed: [%v]", err)
	case <-ctx.Done():
		env.logger.Infof("history archiver stopped")
		return nil
	}
}
