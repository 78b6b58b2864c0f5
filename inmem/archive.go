package inmem

import (
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing"
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"sort"
	"sync"
	"time"
)

type archivedRecord struct {
	record       *model.Record
	orderingTime time.Time
}

// HistoryArchive keeps history records in memory for the lifetime of the
// process.
type HistoryArchive struct {
	mutex        sync.RWMutex
	records      map[dealing.HistoryKind][]*archivedRecord
	fingerprints map[dealing.HistoryKind]map[string]bool
}

func NewHistoryArchive() *HistoryArchive {
	return &HistoryArchive{
		records:      make(map[dealing.HistoryKind][]*archivedRecord),
		fingerprints: make(map[dealing.HistoryKind]map[string]bool),
	}
}

func (ha *HistoryArchive) ArchiveRecords(
	kind dealing.HistoryKind,
	records []*model.Record,
) (int, error) {
	validated := make([]*archivedRecord, len(records))

	for i, record := range records {
		if record.Type() != kind.RecordType() {
			return 0, fmt.Errorf(
				"record type [%v] does not match history kind [%v]",
				record.Type().Name(),
				kind,
			)
		}

		orderingTime, err := dealing.RecordOrderingTime(kind, record)
		if err != nil {
			return 0, fmt.Errorf(
				"could not determine record ordering time: [%v]",
				err,
			)
		}

		validated[i] = &archivedRecord{record, orderingTime}
	}

	ha.mutex.Lock()
	defer ha.mutex.Unlock()

	fingerprints, ok := ha.fingerprints[kind]
	if !ok {
		fingerprints = make(map[string]bool)
		ha.fingerprints[kind] = fingerprints
	}

	archived := 0

	for _, entry := range validated {
		fingerprint := dealing.RecordFingerprint(entry.record)
		if fingerprints[fingerprint] {
			continue
		}

		fingerprints[fingerprint] = true
		ha.records[kind] = append(ha.records[kind], entry)
		archived++
	}

	return archived, nil
}

func (ha *HistoryArchive) ArchivedRecords(
	kind dealing.HistoryKind,
	from, to time.Time,
) ([]*model.Record, error) {
	ha.mutex.RLock()
	defer ha.mutex.RUnlock()

	var matching []*archivedRecord

	for _, archived := range ha.records[kind] {
		if archived.orderingTime.Before(from) ||
			archived.orderingTime.After(to) {
			continue
		}

		matching = append(matching, archived)
	}

	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].orderingTime.Before(matching[j].orderingTime)
	})

	records := make([]*model.Record, len(matching))
	for i, archived := range matching {
		records[i] = archived.record
	}

	return records, nil
}
