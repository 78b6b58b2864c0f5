package dealing

import (
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"regexp"
	"time"
)

// EPICPattern matches instrument identifiers.
var EPICPattern = regexp.MustCompile(`^[A-Za-z0-9._]{6,30}$`)

var ActivityActionType = model.MustRecordType(
	"ActivityAction",
	model.Symbol(
		"action_type",
		"limit_order_amended",
		"limit_order_deleted",
		"limit_order_filled",
		"limit_order_opened",
		"limit_order_rolled",
		"position_closed",
		"position_deleted",
		"position_opened",
		"position_partially_closed",
		"position_rolled",
		"stop_limit_amended",
		"stop_order_amended",
		"stop_order_deleted",
		"stop_order_filled",
		"stop_order_opened",
		"stop_order_rolled",
		"unknown",
		"working_order_deleted",
	),
	model.String("affected_deal_id"),
)

var ActivityDetailsType = model.MustRecordType(
	"ActivityDetails",
	model.List("actions", ActivityActionType),
	model.String("currency"),
	model.String("deal_reference"),
	model.Symbol("direction", "buy", "sell"),
	model.String("good_till_date"),
	model.Boolean("guaranteed_stop"),
	model.Float("level"),
	model.Integer("limit_distance"),
	model.Float("limit_level"),
	model.String("market_name"),
	model.String("size"),
	model.Integer("stop_distance"),
	model.Float("stop_level"),
	model.Float("trailing_step"),
	model.Integer("trailing_stop_distance"),
)

var ActivityType = model.MustRecordType(
	"Activity",
	model.Symbol(
		"channel",
		"dealer",
		"mobile",
		"public_fix_api",
		"public_web_api",
		"system",
		"web",
	),
	model.Time("date", model.LayoutDateTime),
	model.String("deal_id"),
	model.String("description"),
	model.Nested("details", ActivityDetailsType),
	model.String("epic").Matching(EPICPattern),
	model.Time("period", model.LayoutDateTime, "02-Jan-06", "Jan-06").
		NilIf("-", "DFB"),
	model.Symbol("status", "accepted", "rejected", "unknown"),
	model.Symbol(
		"type",
		"edit_stop_and_limit",
		"position",
		"system",
		"working_order",
	),
)

// Activity is a single event that occurred on the account.
type Activity struct {
	*model.Record
}

func (a *Activity) Channel() string {
	return a.Symbol("channel")
}

func (a *Activity) Date() time.Time {
	return a.Time("date")
}

func (a *Activity) DealID() string {
	return a.String("deal_id")
}

func (a *Activity) Description() string {
	return a.String("description")
}

func (a *Activity) Epic() string {
	return a.String("epic")
}

func (a *Activity) Status() string {
	return a.Symbol("status")
}

// Category returns the type of the activity.
func (a *Activity) Category() string {
	return a.Symbol("type")
}

// MarketName returns the market name from the activity details, if any.
func (a *Activity) MarketName() string {
	if details := a.Record.Record("details"); details != nil {
		return details.String("market_name")
	}

	return ""
}
