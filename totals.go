package dealing

import (
	"fmt"
	"github.com/sdcoffey/big"
	"strings"
	"time"
)

// CurrencyTotals sums the transactions made in one currency.
type CurrencyTotals struct {
	Currency string
	Delta    big.Decimal
	Interest big.Decimal
}

// TransactionTotals computes the profit and loss and the interest of the
// transactions per currency, in the order the currencies first appear.
func TransactionTotals(
	transactions []*Transaction,
) ([]*CurrencyTotals, error) {
	var totals []*CurrencyTotals
	byCurrency := make(map[string]*CurrencyTotals)

	for _, transaction := range transactions {
		amount, err := transaction.ProfitAndLossAmount()
		if err != nil {
			return nil, fmt.Errorf(
				"could not get amount of transaction [%v]: [%v]",
				transaction.Reference(),
				err,
			)
		}

		currencyTotals, ok := byCurrency[transaction.Currency()]
		if !ok {
			currencyTotals = &CurrencyTotals{
				Currency: transaction.Currency(),
				Delta:    big.ZERO,
				Interest: big.ZERO,
			}
			byCurrency[transaction.Currency()] = currencyTotals
			totals = append(totals, currencyTotals)
		}

		currencyTotals.Delta = currencyTotals.Delta.Add(amount)

		if transaction.IsInterest() {
			currencyTotals.Interest = currencyTotals.Interest.Add(amount)
		}
	}

	return totals, nil
}

// TransactionReport summarizes the transactions of a period.
type TransactionReport struct {
	From         time.Time
	To           time.Time
	Transactions int
	Totals       []*CurrencyTotals
}

func NewTransactionReport(
	from, to time.Time,
	transactions []*Transaction,
) (*TransactionReport, error) {
	totals, err := TransactionTotals(transactions)
	if err != nil {
		return nil, err
	}

	return &TransactionReport{
		From:         from,
		To:           to,
		Transactions: len(transactions),
		Totals:       totals,
	}, nil
}

func (tr *TransactionReport) Text() string {
	var builder strings.Builder

	_, _ = fmt.Fprintf(
		&builder,
		"Transactions from %v to %v: %v\n",
		tr.From.Format("2006-01-02"),
		tr.To.Format("2006-01-02"),
		tr.Transactions,
	)

	for _, totals := range tr.Totals {
		_, _ = fmt.Fprintf(
			&builder,
			"\nTotals for currency '%v':\n"+
				"  Interest: %v %v\n"+
				"  Profit/loss: %v %v\n",
			totals.Currency,
			totals.Currency,
			totals.Interest.FormattedString(2),
			totals.Currency,
			totals.Delta.FormattedString(2),
		)
	}

	return builder.String()
}

// ReportService delivers transaction reports.
type ReportService interface {
	SendReport(recipient string, report *TransactionReport) error
}
