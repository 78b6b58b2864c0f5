package dealing

import (
	"context"
	"errors"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"net/url"
	"strconv"
	"time"
)

// MaximumPageSize is the maximum number of records the platform returns for
// a single history request.
const MaximumPageSize = 500

// ErrHistoryStalled is returned when a full history page does not move the
// query window backwards, so requesting the next page would return the same
// records again.
var ErrHistoryStalled = errors.New("history paging does not advance")

// HistoryWindow is the time range of a history query.
type HistoryWindow struct {
	From     time.Time
	To       time.Time
	PageSize int
	// Type is the upper-cased transaction type filter; empty means none.
	Type string
}

func (hw HistoryWindow) normalize(now time.Time) (HistoryWindow, error) {
	if hw.From.IsZero() {
		return hw, fmt.Errorf("history window start is required")
	}

	if hw.To.IsZero() {
		hw.To = now
	}

	if hw.PageSize <= 0 || hw.PageSize > MaximumPageSize {
		hw.PageSize = MaximumPageSize
	}

	return hw, nil
}

// Params returns the query parameters of the window. Times are sent in UTC
// with second precision.
func (hw HistoryWindow) Params() url.Values {
	params := url.Values{}
	params.Set("from", formatHistoryTime(hw.From))
	params.Set("to", formatHistoryTime(hw.To))
	params.Set("pageSize", strconv.Itoa(hw.PageSize))

	if len(hw.Type) > 0 {
		params.Set("type", hw.Type)
	}

	return params
}

func formatHistoryTime(value time.Time) string {
	return value.UTC().Format(model.LayoutDateTime)
}

// PageFetcher retrieves a single page of history records for the window.
type PageFetcher func(
	ctx context.Context,
	window HistoryWindow,
) ([]*model.Record, error)

// PaginationAbortedError is returned when any page of a history retrieval
// fails. Pages is the number of pages fetched successfully before.
type PaginationAbortedError struct {
	Pages int
	Err   error
}

func (pae *PaginationAbortedError) Error() string {
	return fmt.Sprintf(
		"could not fetch history page [%v]: [%v]",
		pae.Pages+1,
		pae.Err,
	)
}

func (pae *PaginationAbortedError) Unwrap() error {
	return pae.Err
}

// FetchAllPages retrieves the complete history of the window. As long as a
// page is full, the next page is requested with the window's end moved to
// the ordering time of the last record received, so records are expected
// newest first. Records seen on more than one page are returned once, in
// the order they were first received. Two distinct records carrying
// identical fields are indistinguishable and also collapse into one.
func FetchAllPages(
	ctx context.Context,
	window HistoryWindow,
	fetchPage PageFetcher,
	orderingField string,
) ([]*model.Record, error) {
	window, err := window.normalize(time.Now())
	if err != nil {
		return nil, err
	}

	var records []*model.Record

	for pages := 0; ; pages++ {
		page, err := fetchPage(ctx, window)
		if err != nil {
			return nil, &PaginationAbortedError{Pages: pages, Err: err}
		}

		records = append(records, page...)

		if len(page) < window.PageSize {
			break
		}

		boundary, err := orderingTime(page[len(page)-1], orderingField)
		if err != nil {
			return nil, &PaginationAbortedError{Pages: pages + 1, Err: err}
		}

		if !boundary.Before(window.To.UTC().Truncate(time.Second)) {
			return nil, &PaginationAbortedError{
				Pages: pages + 1,
				Err:   ErrHistoryStalled,
			}
		}

		window.To = boundary
	}

	return deduplicateRecords(records), nil
}

func orderingTime(record *model.Record, orderingField string) (time.Time, error) {
	if _, ok := record.Type().Field(orderingField); !ok {
		return time.Time{}, fmt.Errorf(
			"record type [%v] has no ordering field [%v]",
			record.Type().Name(),
			orderingField,
		)
	}

	value, ok := record.Value(orderingField)
	if !ok {
		return time.Time{}, fmt.Errorf(
			"last record of the page has no [%v] value",
			orderingField,
		)
	}

	timestamp, ok := value.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf(
			"ordering field [%v] is not a time",
			orderingField,
		)
	}

	return timestamp.UTC().Truncate(time.Second), nil
}

func deduplicateRecords(records []*model.Record) []*model.Record {
	seen := make(map[string]bool, len(records))
	unique := make([]*model.Record, 0, len(records))

	for _, record := range records {
		key := record.Key()
		if seen[key] {
			continue
		}

		seen[key] = true
		unique = append(unique, record)
	}

	return unique
}
