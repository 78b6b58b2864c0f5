package main

import (
	"context"
	"fmt"
)

func parseConfirmation(args []string) (action, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("usage: dealing confirmation <deal-reference>")
	}

	dealReference := args[0]

	return func(ctx context.Context, env *environment) error {
		return printConfirmation(ctx, env, dealReference)
	}, nil
}

func printConfirmation(
	ctx context.Context,
	env *environment,
	dealReference string,
) error {
	_, _ = fmt.Fprintf(env.stdout, "Deal reference: %v\n", dealReference)

	confirmation, err := env.platform.AwaitDealConfirmation(ctx, dealReference)
	if err != nil {
		return err
	}

	printDealConfirmation(env.stdout, confirmation)

	return nil
}

func parseSentiment(args []string) (action, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: dealing sentiment <market-id>...")
	}

	marketIDs := args

	return func(ctx context.Context, env *environment) error {
		return printSentiments(ctx, env, marketIDs)
	}, nil
}

func printSentiments(
	ctx context.Context,
	env *environment,
	marketIDs []string,
) error {
	for _, marketID := range marketIDs {
		sentiment, err := env.platform.ClientSentiment(ctx, marketID)
		if err != nil {
			return err
		}

		printClientSentiment(env.stdout, sentiment)
	}

	return nil
}
