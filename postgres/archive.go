package postgres

import (
	"fmt"
	"github.com/jackc/pgtype"
	"github.com/lukasz-zimnoch/dexly/dealing"
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"time"
)

type HistoryArchive struct {
	client    *Client
	idService dealing.IDService
}

func NewHistoryArchive(
	client *Client,
	idService dealing.IDService,
) *HistoryArchive {
	return &HistoryArchive{client, idService}
}

func (ha *HistoryArchive) ArchiveRecords(
	kind dealing.HistoryKind,
	records []*model.Record,
) (int, error) {
	query := `INSERT INTO 
		history_record (id, kind, fingerprint, ordering_time, payload) 
		VALUES (:id, :kind, :fingerprint, :ordering_time, :payload)
		ON CONFLICT (kind, fingerprint) DO NOTHING`

	transaction, err := ha.client.database.Beginx()
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: [%v]", err)
	}

	archived := 0

	for _, record := range records {
		row, err := new(historyRecordRow).wrap(
			ha.idService.NewID(),
			kind,
			record,
		)
		if err != nil {
			_ = transaction.Rollback()
			return 0, fmt.Errorf(
				"could not convert [%v] record to pg row: [%v]",
				kind,
				err,
			)
		}

		result, err := transaction.NamedExec(query, row)
		if err != nil {
			_ = transaction.Rollback()
			return 0, fmt.Errorf(
				"could not execute command for record [%v]: [%v]",
				row.Fingerprint,
				err,
			)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			_ = transaction.Rollback()
			return 0, fmt.Errorf("could not get affected rows: [%v]", err)
		}

		archived += int(affected)
	}

	if err := transaction.Commit(); err != nil {
		return 0, fmt.Errorf("could not commit transaction: [%v]", err)
	}

	return archived, nil
}

func (ha *HistoryArchive) ArchivedRecords(
	kind dealing.HistoryKind,
	from, to time.Time,
) ([]*model.Record, error) {
	var rows []historyRecordRow

	query := `SELECT * FROM history_record 
		WHERE kind = $1 AND ordering_time BETWEEN $2 AND $3 
		ORDER BY ordering_time`

	err := ha.client.database.Select(&rows, query, kind.String(), from, to)
	if err != nil {
		return nil, fmt.Errorf("could not execute query: [%v]", err)
	}

	records := make([]*model.Record, len(rows))
	for i, row := range rows {
		record, err := row.unwrap()
		if err != nil {
			return nil, fmt.Errorf(
				"could not convert pg row [%v] to record: [%v]",
				row.ID,
				err,
			)
		}

		records[i] = record
	}

	return records, nil
}

type historyRecordRow struct {
	ID           string
	Kind         string
	Fingerprint  string
	OrderingTime pgtype.Timestamptz `db:"ordering_time"`
	Payload      pgtype.JSONB
}

func (hrr *historyRecordRow) wrap(
	id dealing.ID,
	kind dealing.HistoryKind,
	record *model.Record,
) (*historyRecordRow, error) {
	if record.Type() != kind.RecordType() {
		return nil, fmt.Errorf(
			"record type [%v] does not match history kind [%v]",
			record.Type().Name(),
			kind,
		)
	}

	orderingTime, err := dealing.RecordOrderingTime(kind, record)
	if err != nil {
		return nil, err
	}

	var timestamp pgtype.Timestamptz
	if err := timestamp.Set(orderingTime); err != nil {
		return nil, err
	}

	var payload pgtype.JSONB
	if err := payload.Set(record.Encode()); err != nil {
		return nil, err
	}

	hrr.ID = id.String()
	hrr.Kind = kind.String()
	hrr.Fingerprint = dealing.RecordFingerprint(record)
	hrr.OrderingTime = timestamp
	hrr.Payload = payload

	return hrr, nil
}

func (hrr *historyRecordRow) unwrap() (*model.Record, error) {
	kind, err := dealing.ParseHistoryKind(hrr.Kind)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := hrr.Payload.AssignTo(&raw); err != nil {
		return nil, err
	}

	return kind.RecordType().Decode(raw)
}
