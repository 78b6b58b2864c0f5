package dealing

import (
	"context"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"strings"
	"time"
)

var AccountBalanceType = model.MustRecordType(
	"AccountBalance",
	model.Float("available"),
	model.Float("balance"),
	model.Float("deposit"),
	model.Float("profit_loss"),
)

var AccountType = model.MustRecordType(
	"Account",
	model.String("account_alias"),
	model.String("account_id"),
	model.String("account_name"),
	model.Symbol("account_type", "cfd", "physical", "spreadbet"),
	model.Nested("balance", AccountBalanceType),
	model.Boolean("can_transfer_from"),
	model.Boolean("can_transfer_to"),
	model.String("currency"),
	model.Boolean("preferred"),
	model.Symbol("status", "disabled", "enabled", "suspended_from_dealing"),
)

// Account is one of the accounts of the signed in client.
type Account struct {
	*model.Record
}

func (a *Account) ID() string {
	return a.String("account_id")
}

func (a *Account) Name() string {
	return a.String("account_name")
}

func (a *Account) Currency() string {
	return a.String("currency")
}

func (a *Account) Balance() float64 {
	if balance := a.Record.Record("balance"); balance != nil {
		return balance.Float("balance")
	}

	return 0
}

// AccountService provides the operations of the signed in account. It does
// not own the client it was obtained from.
type AccountService struct {
	client *Client
}

func (as *AccountService) Accounts(ctx context.Context) ([]*Account, error) {
	result, err := as.client.get(ctx, "accounts", nil, apiV1)
	if err != nil {
		return nil, fmt.Errorf("could not get accounts: [%w]", err)
	}

	records, err := decodeCollection(result, "accounts", AccountType)
	if err != nil {
		return nil, err
	}

	accounts := make([]*Account, len(records))
	for i, record := range records {
		accounts[i] = &Account{record}
	}

	return accounts, nil
}

type ActivityFilter struct {
	From time.Time
	To   time.Time
}

// Activities returns the account activities of the given period. A zero To
// means now.
func (as *AccountService) Activities(
	ctx context.Context,
	filter ActivityFilter,
) ([]*Activity, error) {
	records, err := FetchAllPages(
		ctx,
		HistoryWindow{From: filter.From, To: filter.To},
		as.historyPageFetcher(
			"history/activity",
			apiV3,
			"activities",
			ActivityType,
			map[string]string{"detailed": "true"},
		),
		"date",
	)
	if err != nil {
		return nil, fmt.Errorf("could not get activities: [%w]", err)
	}

	activities := make([]*Activity, len(records))
	for i, record := range records {
		activities[i] = &Activity{record}
	}

	return activities, nil
}

type TransactionFilter struct {
	From time.Time
	To   time.Time
	// Type is one of all, all_deal, deposit or withdrawal. Empty means all.
	Type string
}

var transactionFilterTypes = []string{"all", "all_deal", "deposit", "withdrawal"}

func (tf TransactionFilter) wireType() (string, error) {
	if len(tf.Type) == 0 {
		return "ALL", nil
	}

	for _, filterType := range transactionFilterTypes {
		if strings.ToLower(tf.Type) == filterType {
			return strings.ToUpper(filterType), nil
		}
	}

	return "", fmt.Errorf("invalid transaction type: [%v]", tf.Type)
}

// Transactions returns the account transactions of the given period. A zero
// To means now.
func (as *AccountService) Transactions(
	ctx context.Context,
	filter TransactionFilter,
) ([]*Transaction, error) {
	filterType, err := filter.wireType()
	if err != nil {
		return nil, err
	}

	records, err := FetchAllPages(
		ctx,
		HistoryWindow{From: filter.From, To: filter.To, Type: filterType},
		as.historyPageFetcher(
			"history/transactions",
			apiV2,
			"transactions",
			TransactionType,
			nil,
		),
		"date_utc",
	)
	if err != nil {
		return nil, fmt.Errorf("could not get transactions: [%w]", err)
	}

	transactions := make([]*Transaction, len(records))
	for i, record := range records {
		transactions[i] = &Transaction{record}
	}

	return transactions, nil
}

func (as *AccountService) historyPageFetcher(
	path string,
	apiVersion int,
	collection string,
	recordType *model.RecordType,
	extraParams map[string]string,
) PageFetcher {
	return func(
		ctx context.Context,
		window HistoryWindow,
	) ([]*model.Record, error) {
		params := window.Params()
		for key, value := range extraParams {
			params.Set(key, value)
		}

		result, err := as.client.get(ctx, path, params, apiVersion)
		if err != nil {
			return nil, err
		}

		return decodeCollection(result, collection, recordType)
	}
}
