package dealing

import (
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"github.com/sdcoffey/big"
	"strconv"
	"strings"
	"time"
)

var TransactionType = model.MustRecordType(
	"Transaction",
	model.Boolean("cash_transaction"),
	model.String("close_level"),
	model.String("currency"),
	model.Time("date", model.LayoutDateTime).ZoneFrom(transactionZone),
	model.Time("date_utc", model.LayoutDateTime),
	model.String("instrument_name"),
	model.Time("open_date_utc", model.LayoutDateTime),
	model.String("open_level"),
	model.String("period"),
	model.String("profit_and_loss"),
	model.String("reference"),
	model.String("size"),
	model.Symbol(
		"transaction_type",
		"all",
		"all_deal",
		"deal",
		"depo",
		"dividend",
		"exchange",
		"with",
	),
)

// transactionZone derives the zone offset of the local transaction date from
// the difference between the local and the UTC date.
func transactionZone(siblings model.Raw) (string, error) {
	localDate, ok := siblings["date"].(string)
	if !ok {
		return "+0000", nil
	}

	utcDate, ok := siblings["dateUtc"].(string)
	if !ok || len(utcDate) == 0 {
		return "+0000", nil
	}

	local, err := time.Parse(model.LayoutDateTime, localDate)
	if err != nil {
		return "", fmt.Errorf("could not parse local date: [%v]", err)
	}

	utc, err := time.Parse(model.LayoutDateTime, utcDate)
	if err != nil {
		return "", fmt.Errorf("could not parse utc date: [%v]", err)
	}

	return formatZoneOffset(local.Sub(utc).Round(time.Minute)), nil
}

func formatZoneOffset(offset time.Duration) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}

	minutes := int(offset / time.Minute)

	return fmt.Sprintf("%v%02d%02d", sign, minutes/60, minutes%60)
}

// Transaction is a single cash movement on the account.
type Transaction struct {
	*model.Record
}

func (t *Transaction) Date() time.Time {
	return t.Time("date")
}

func (t *Transaction) DateUTC() time.Time {
	return t.Time("date_utc")
}

func (t *Transaction) Currency() string {
	return t.String("currency")
}

func (t *Transaction) InstrumentName() string {
	return t.String("instrument_name")
}

func (t *Transaction) Reference() string {
	return t.String("reference")
}

func (t *Transaction) TransactionType() string {
	return t.Symbol("transaction_type")
}

// IsInterest tells whether the transaction is an interest payment or
// charge.
func (t *Transaction) IsInterest() bool {
	switch t.TransactionType() {
	case "depo", "with":
		return strings.Contains(strings.ToLower(t.InstrumentName()), "interest")
	}

	return false
}

// ProfitAndLossAmount returns the numeric profit or loss. The platform sends
// it prefixed with the currency, e.g. "E-1,234.50".
func (t *Transaction) ProfitAndLossAmount() (big.Decimal, error) {
	profitAndLoss := t.String("profit_and_loss")
	currency := t.Currency()

	if !strings.HasPrefix(profitAndLoss, currency) {
		return big.ZERO, fmt.Errorf(
			"profit and loss [%v] does not start with currency [%v]",
			profitAndLoss,
			currency,
		)
	}

	amount := strings.ReplaceAll(profitAndLoss[len(currency):], ",", "")

	if _, err := strconv.ParseFloat(amount, 64); err != nil {
		return big.ZERO, fmt.Errorf(
			"invalid profit and loss amount: [%v]",
			profitAndLoss,
		)
	}

	return big.NewFromString(amount), nil
}
