package dealing

import (
	"context"
	"errors"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"net/url"
)

var ErrUnknownMarket = errors.New("unknown market")

var ClientSentimentType = model.MustRecordType(
	"ClientSentiment",
	model.Float("long_position_percentage"),
	model.String("market_id"),
	model.Float("short_position_percentage"),
)

type ClientSentiment struct {
	*model.Record
}

func (cs *ClientSentiment) MarketID() string {
	return cs.String("market_id")
}

func (cs *ClientSentiment) LongPositionPercentage() float64 {
	return cs.Float("long_position_percentage")
}

func (cs *ClientSentiment) ShortPositionPercentage() float64 {
	return cs.Float("short_position_percentage")
}

// ClientSentiment returns the share of long and short client positions on
// the market. The platform reports both shares as zero for markets it does
// not know.
func (c *Client) ClientSentiment(
	ctx context.Context,
	marketID string,
) (*ClientSentiment, error) {
	result, err := c.get(
		ctx,
		"clientsentiment/"+url.PathEscape(marketID),
		nil,
		apiV1,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"could not get client sentiment [%v]: [%w]",
			marketID,
			err,
		)
	}

	record, err := decodeRecord(result, ClientSentimentType)
	if err != nil {
		return nil, err
	}

	sentiment := &ClientSentiment{record}

	if sentiment.LongPositionPercentage() == 0 &&
		sentiment.ShortPositionPercentage() == 0 {
		return nil, fmt.Errorf("%w: [%v]", ErrUnknownMarket, marketID)
	}

	return sentiment, nil
}
