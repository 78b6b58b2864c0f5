package dealing

import (
	"fmt"
	"github.com/cespare/xxhash/v2"
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"strconv"
	"time"
)

type HistoryKind int

const (
	HistoryActivity HistoryKind = iota
	HistoryTransaction
)

func ParseHistoryKind(value string) (HistoryKind, error) {
	switch value {
	case "ACTIVITY":
		return HistoryActivity, nil
	case "TRANSACTION":
		return HistoryTransaction, nil
	}

	return -1, fmt.Errorf("unknown history kind: [%v]", value)
}

func (hk HistoryKind) String() string {
	switch hk {
	case HistoryActivity:
		return "ACTIVITY"
	case HistoryTransaction:
		return "TRANSACTION"
	default:
		panic("unknown history kind")
	}
}

func (hk HistoryKind) RecordType() *model.RecordType {
	switch hk {
	case HistoryActivity:
		return ActivityType
	case HistoryTransaction:
		return TransactionType
	default:
		panic("unknown history kind")
	}
}

// OrderingField returns the time field history records of this kind are
// paged and archived by.
func (hk HistoryKind) OrderingField() string {
	switch hk {
	case HistoryActivity:
		return "date"
	case HistoryTransaction:
		return "date_utc"
	default:
		panic("unknown history kind")
	}
}

// HistoryArchive keeps fetched history records. Archiving a record that is
// already archived has no effect.
type HistoryArchive interface {
	// ArchiveRecords stores the records and returns the number of records
	// that were not archived before.
	ArchiveRecords(kind HistoryKind, records []*model.Record) (int, error)

	// ArchivedRecords returns the archived records with an ordering time
	// within [from, to], oldest first.
	ArchivedRecords(
		kind HistoryKind,
		from, to time.Time,
	) ([]*model.Record, error)
}

// RecordFingerprint identifies a record by its content.
func RecordFingerprint(record *model.Record) string {
	return strconv.FormatUint(xxhash.Sum64String(record.Key()), 16)
}

// RecordOrderingTime returns the ordering time of an archived record.
func RecordOrderingTime(
	kind HistoryKind,
	record *model.Record,
) (time.Time, error) {
	return orderingTime(record, kind.OrderingField())
}

func activityRecords(activities []*Activity) []*model.Record {
	records := make([]*model.Record, len(activities))
	for i, activity := range activities {
		records[i] = activity.Record
	}

	return records
}

func transactionRecords(transactions []*Transaction) []*model.Record {
	records := make([]*model.Record, len(transactions))
	for i, transaction := range transactions {
		records[i] = transaction.Record
	}

	return records
}

// ArchiveActivities stores the activities in the archive.
func ArchiveActivities(
	archive HistoryArchive,
	activities []*Activity,
) (int, error) {
	return archive.ArchiveRecords(HistoryActivity, activityRecords(activities))
}

// ArchiveTransactions stores the transactions in the archive.
func ArchiveTransactions(
	archive HistoryArchive,
	transactions []*Transaction,
) (int, error) {
	return archive.ArchiveRecords(
		HistoryTransaction,
		transactionRecords(transactions),
	)
}
