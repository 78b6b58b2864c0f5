package main

import (
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

const outputTimeLayout = "2006-01-02 15:04:05 -0700"

type table struct {
	writer *tabwriter.Writer
}

func newTable(output io.Writer, headers ...string) *table {
	t := &table{writer: tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)}
	t.row(headers...)
	return t
}

func (t *table) row(cells ...string) {
	_, _ = fmt.Fprintln(t.writer, strings.Join(cells, "\t"))
}

func (t *table) flush() error {
	return t.writer.Flush()
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(outputTimeLayout)
}

func printActivities(output io.Writer, activities []*dealing.Activity) error {
	t := newTable(
		output,
		"DATE",
		"CHANNEL",
		"TYPE",
		"STATUS",
		"EPIC",
		"MARKET",
		"DEAL ID",
		"DESCRIPTION",
	)

	for _, activity := range activities {
		t.row(
			formatTime(activity.Date()),
			strings.ToUpper(activity.Channel()),
			strings.ToUpper(activity.Category()),
			strings.ToUpper(activity.Status()),
			activity.Epic(),
			activity.MarketName(),
			activity.DealID(),
			activity.Description(),
		)
	}

	return t.flush()
}

func printTransactions(
	output io.Writer,
	transactions []*dealing.Transaction,
) error {
	t := newTable(
		output,
		"DATE",
		"REFERENCE",
		"TYPE",
		"INSTRUMENT",
		"PROFIT/LOSS",
	)

	for _, transaction := range transactions {
		amount, err := transaction.ProfitAndLossAmount()
		if err != nil {
			return err
		}

		t.row(
			formatTime(transaction.Date()),
			transaction.Reference(),
			strings.ToUpper(transaction.TransactionType()),
			transaction.InstrumentName(),
			fmt.Sprintf(
				"%v %v",
				transaction.Currency(),
				amount.FormattedString(2),
			),
		)
	}

	return t.flush()
}

func printTotals(output io.Writer, totals []*dealing.CurrencyTotals) {
	for _, currencyTotals := range totals {
		_, _ = fmt.Fprintf(
			output,
			"\nTotals for currency '%v':\n"+
				"  Interest: %v %v\n"+
				"  Profit/loss: %v %v\n",
			currencyTotals.Currency,
			currencyTotals.Currency,
			currencyTotals.Interest.FormattedString(2),
			currencyTotals.Currency,
			currencyTotals.Delta.FormattedString(2),
		)
	}
}

func printDealConfirmation(
	output io.Writer,
	confirmation *dealing.DealConfirmation,
) {
	_, _ = fmt.Fprintf(output, "Deal ID: %v\n", confirmation.DealID())
	_, _ = fmt.Fprintf(
		output,
		"Status: %v\n",
		strings.ToUpper(confirmation.DealStatus()),
	)
	_, _ = fmt.Fprintf(
		output,
		"Result: %v\n",
		strings.ToUpper(confirmation.Status()),
	)

	if profit, currency, ok := confirmation.Profit(); ok {
		_, _ = fmt.Fprintf(
			output,
			"Profit/loss: %v %.2f\n",
			currency,
			profit,
		)
	}

	if confirmation.DealStatus() == "rejected" {
		_, _ = fmt.Fprintf(
			output,
			"Reason: %v\n",
			strings.ToUpper(confirmation.Reason()),
		)
	}
}

func printClientSentiment(
	output io.Writer,
	sentiment *dealing.ClientSentiment,
) {
	_, _ = fmt.Fprintf(
		output,
		"%v: longs %.1f%%, shorts %.1f%%\n",
		sentiment.MarketID(),
		sentiment.LongPositionPercentage(),
		sentiment.ShortPositionPercentage(),
	)
}
