package dealing

import (
	"context"
	"errors"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"net/url"
	"time"
)

const (
	dealConfirmationAttempts = 5
	dealConfirmationDelay    = 2 * time.Second
)

var DealConfirmationType = model.MustRecordType(
	"DealConfirmation",
	model.Time(
		"date",
		model.LayoutEpochMillis,
		"2006-01-02T15:04:05.000",
		model.LayoutDateTime,
	),
	model.String("deal_id"),
	model.String("deal_reference"),
	model.Symbol("deal_status", "accepted", "fund_account", "rejected"),
	model.Symbol("direction", "buy", "sell"),
	model.String("epic").Matching(EPICPattern),
	model.String("expiry"),
	model.Boolean("guaranteed_stop"),
	model.Float("level"),
	model.Integer("limit_distance"),
	model.Float("limit_level"),
	model.Float("profit"),
	model.String("profit_currency"),
	model.Symbol("reason"),
	model.Float("size"),
	model.Symbol(
		"status",
		"amended",
		"closed",
		"deleted",
		"open",
		"partially_closed",
	),
	model.Integer("stop_distance"),
	model.Float("stop_level"),
	model.Boolean("trailing_stop"),
)

// DealConfirmation is the outcome of a deal request.
type DealConfirmation struct {
	*model.Record
}

func (dc *DealConfirmation) DealID() string {
	return dc.String("deal_id")
}

func (dc *DealConfirmation) DealReference() string {
	return dc.String("deal_reference")
}

func (dc *DealConfirmation) DealStatus() string {
	return dc.Symbol("deal_status")
}

func (dc *DealConfirmation) Status() string {
	return dc.Symbol("status")
}

func (dc *DealConfirmation) Reason() string {
	return dc.Symbol("reason")
}

func (dc *DealConfirmation) Profit() (float64, string, bool) {
	if !dc.Has("profit") {
		return 0, "", false
	}

	return dc.Float("profit"), dc.String("profit_currency"), true
}

func (c *Client) DealConfirmation(
	ctx context.Context,
	dealReference string,
) (*DealConfirmation, error) {
	result, err := c.get(
		ctx,
		"confirms/"+url.PathEscape(dealReference),
		nil,
		apiV1,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"could not get deal confirmation [%v]: [%w]",
			dealReference,
			err,
		)
	}

	record, err := decodeRecord(result, DealConfirmationType)
	if err != nil {
		return nil, err
	}

	return &DealConfirmation{record}, nil
}

// AwaitDealConfirmation gets the deal confirmation, retrying while the
// platform does not know the deal yet. The last error is returned if the
// deal is still not found after the final attempt.
func (c *Client) AwaitDealConfirmation(
	ctx context.Context,
	dealReference string,
) (*DealConfirmation, error) {
	var confirmation *DealConfirmation

	getConfirmation := func() error {
		var err error
		confirmation, err = c.DealConfirmation(ctx, dealReference)
		if err != nil && !errors.Is(err, ErrDealNotFound) {
			return backoff.Permanent(err)
		}

		return err
	}

	logRetry := func(err error, delay time.Duration) {
		c.logger.Warningf(
			"deal [%v] not found; retrying in [%v]",
			dealReference,
			delay,
		)
	}

	retryPolicy := backoff.WithMaxRetries(
		backoff.WithContext(
			backoff.NewConstantBackOff(dealConfirmationDelay),
			ctx,
		),
		dealConfirmationAttempts-1,
	)

	if err := backoff.RetryNotifyWithTimer(
		getConfirmation,
		retryPolicy,
		logRetry,
		c.timer,
	); err != nil {
		return nil, err
	}

	return confirmation, nil
}
