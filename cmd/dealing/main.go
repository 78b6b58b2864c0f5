package main

import (
	"context"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing"
	"github.com/lukasz-zimnoch/dexly/dealing/logrus"
	"github.com/lukasz-zimnoch/dexly/dealing/mail"
	"github.com/lukasz-zimnoch/dexly/dealing/postgres"
	"github.com/lukasz-zimnoch/dexly/dealing/rest"
	"github.com/lukasz-zimnoch/dexly/dealing/uuid"
	"io"
	"os"
	"os/signal"
	"time"
)

const version = "0.1.0"

// platform is the part of the dealing platform the commands use.
type platform interface {
	Activities(
		ctx context.Context,
		filter dealing.ActivityFilter,
	) ([]*dealing.Activity, error)

	Transactions(
		ctx context.Context,
		filter dealing.TransactionFilter,
	) ([]*dealing.Transaction, error)

	AwaitDealConfirmation(
		ctx context.Context,
		dealReference string,
	) (*dealing.DealConfirmation, error)

	ClientSentiment(
		ctx context.Context,
		marketID string,
	) (*dealing.ClientSentiment, error)
}

type clientPlatform struct {
	*dealing.Client
	*dealing.AccountService
}

func newClientPlatform(client *dealing.Client) *clientPlatform {
	return &clientPlatform{client, client.Account()}
}

// environment carries the dependencies of a command run.
type environment struct {
	logger   dealing.Logger
	platform platform
	archive  func() (dealing.HistoryArchive, func(), error)
	reports  dealing.ReportService
	stdout   io.Writer
	now      func() time.Time
}

// action is a parsed command ready to run against the platform.
type action func(ctx context.Context, env *environment) error

type command struct {
	usage string
	parse func(args []string) (action, error)
}

var commands = map[string]*command{
	"activities": {
		usage: "prints account activities",
		parse: parseActivities,
	},
	"transactions": {
		usage: "prints account transactions and their totals",
		parse: parseTransactions,
	},
	"confirmation": {
		usage: "prints the confirmation of a deal reference",
		parse: parseConfirmation,
	},
	"sentiment": {
		usage: "prints the client sentiment of a market",
		parse: parseSentiment,
	},
	"archive": {
		usage: "keeps archiving the account history",
		parse: parseArchive,
	},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && (args[0] == "--version" || args[0] == "-v") {
		_, _ = fmt.Fprintln(stdout, version)
		return 0
	}

	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	command, ok := commands[args[0]]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "dealing: unknown command [%v]\n", args[0])
		printUsage(stderr)
		return 2
	}

	action, err := command.parse(args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "dealing: %v\n", err)
		return 2
	}

	ctx, cancelCtx := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancelCtx()

	if err := execute(ctx, action, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "dealing: %v\n", err)
		return 1
	}

	return 0
}

func execute(
	ctx context.Context,
	action action,
	stdout io.Writer,
) error {
	config, err := readConfig()
	if err != nil {
		return fmt.Errorf("could not read config: [%v]", err)
	}

	logger, err := logrus.ConfigureStandardLogger(
		config.Logging.Format,
		config.Logging.Level,
	)
	if err != nil {
		return err
	}

	dealing.DefaultErrorRegistry.SetLogger(logger)

	platformType := dealing.PlatformLive
	if config.Platform.Demo {
		platformType = dealing.PlatformDemo
	}

	session := rest.NewSession(platformType, config.Platform.ApiKey)

	if err := session.SignIn(
		ctx,
		config.Platform.Username,
		config.Platform.Password,
	); err != nil {
		return err
	}

	defer func() {
		if err := session.SignOut(context.Background()); err != nil {
			logger.Warningf("could not close platform session: [%v]", err)
		}
	}()

	client := dealing.NewClient(logger, session)

	env := &environment{
		logger:   logger,
		platform: newClientPlatform(client),
		archive: func() (dealing.HistoryArchive, func(), error) {
			return connectArchive(logger, &config.Database)
		},
		stdout: stdout,
		now:    time.Now,
	}

	if len(config.Mail.Username) > 0 {
		env.reports = mail.NewReportService((*mail.Config)(&config.Mail))
	}

	return action(ctx, env)
}

func connectArchive(
	logger dealing.Logger,
	config *Database,
) (dealing.HistoryArchive, func(), error) {
	if err := postgres.RunMigration(
		logger,
		(*postgres.Config)(config),
	); err != nil {
		return nil, nil, fmt.Errorf(
			"could not run postgres migration: [%v]",
			err,
		)
	}

	client, err := postgres.NewClient((*postgres.Config)(config))
	if err != nil {
		return nil, nil, fmt.Errorf(
			"could not create postgres client: [%v]",
			err,
		)
	}

	release := func() {
		if err := client.Close(); err != nil {
			logger.Warningf("could not close postgres client: [%v]", err)
		}
	}

	return postgres.NewHistoryArchive(client, &uuid.IDService{}), release, nil
}

func printUsage(output io.Writer) {
	_, _ = fmt.Fprintf(output, "usage: dealing [--version] <command> [flags]\n\n")
	_, _ = fmt.Fprintf(output, "commands:\n")

	for _, name := range []string{
		"activities",
		"transactions",
		"confirmation",
		"sentiment",
		"archive",
	} {
		_, _ = fmt.Fprintf(output, "  %-14v%v\n", name, commands[name].usage)
	}
}
