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

const requestTimeout = 1 * time.Minute

const (
	apiV1 = 1
	apiV2 = 2
	apiV3 = 3
)

// Client exposes the dealing platform operations on top of an authenticated
// session. Platform error codes returned by the session are classified with
// the client's error registry.
type Client struct {
	logger   Logger
	session  Session
	registry *ErrorRegistry

	// timer paces retries; nil uses a real timer.
	timer backoff.Timer
}

func NewClient(logger Logger, session Session) *Client {
	return &Client{
		logger:   logger,
		session:  session,
		registry: DefaultErrorRegistry,
	}
}

func (c *Client) Account() *AccountService {
	return &AccountService{client: c}
}

func (c *Client) get(
	ctx context.Context,
	path string,
	params url.Values,
	apiVersion int,
) (model.Raw, error) {
	requestCtx, cancelRequestCtx := context.WithTimeout(ctx, requestTimeout)
	defer cancelRequestCtx()

	result, err := c.session.Get(requestCtx, path, params, apiVersion)
	if err != nil {
		return nil, c.classify(err)
	}

	return result, nil
}

func (c *Client) classify(err error) error {
	var transportErr *TransportError
	if errors.As(err, &transportErr) && len(transportErr.Code) > 0 {
		apiErr := c.registry.Classify(transportErr.Code)
		apiErr.Cause = err
		return apiErr
	}

	return err
}

func decodeRecord(
	result model.Raw,
	recordType *model.RecordType,
) (*model.Record, error) {
	record, err := recordType.Decode(result)
	if err != nil {
		return nil, fmt.Errorf(
			"could not decode [%v] record: [%w]",
			recordType.Name(),
			err,
		)
	}

	return record, nil
}

func decodeCollection(
	result model.Raw,
	collection string,
	recordType *model.RecordType,
) ([]*model.Record, error) {
	value, ok := result[collection]
	if !ok {
		return nil, fmt.Errorf("missing collection [%v] in response", collection)
	}

	entries, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("collection [%v] is not a list", collection)
	}

	records := make([]*model.Record, 0, len(entries))

	for i, entry := range entries {
		raw, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf(
				"entry [%v] of collection [%v] is not an object",
				i,
				collection,
			)
		}

		record, err := decodeRecord(raw, recordType)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}
