package daemon

import (
	"context"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing"
	"time"
)

// HistorySource provides the account history to archive.
type HistorySource interface {
	Activities(
		ctx context.Context,
		filter dealing.ActivityFilter,
	) ([]*dealing.Activity, error)

	Transactions(
		ctx context.Context,
		filter dealing.TransactionFilter,
	) ([]*dealing.Transaction, error)
}

// HistoryArchiver periodically copies new account history into the archive.
// Each round covers the period from the end of the previous round until now.
type HistoryArchiver struct {
	logger   dealing.Logger
	source   HistorySource
	archive  dealing.HistoryArchive
	interval time.Duration
	now      func() time.Time

	cursor  time.Time
	errChan chan error
}

func RunHistoryArchiver(
	ctx context.Context,
	logger dealing.Logger,
	source HistorySource,
	archive dealing.HistoryArchive,
	since time.Time,
	interval time.Duration,
) *HistoryArchiver {
	archiver := newHistoryArchiver(logger, source, archive, since, interval)

	go archiver.loop(ctx)

	return archiver
}

func newHistoryArchiver(
	logger dealing.Logger,
	source HistorySource,
	archive dealing.HistoryArchive,
	since time.Time,
	interval time.Duration,
) *HistoryArchiver {
	return &HistoryArchiver{
		logger:   logger,
		source:   source,
		archive:  archive,
		interval: interval,
		now:      time.Now,
		cursor:   since,
		errChan:  make(chan error, 1),
	}
}

func (ha *HistoryArchiver) loop(ctx context.Context) {
	ticker := time.NewTicker(ha.interval)
	defer ticker.Stop()

	for {
		if err := ha.archiveRound(ctx); err != nil {
			if ctx.Err() == nil {
				ha.errChan <- err
			}
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (ha *HistoryArchiver) archiveRound(ctx context.Context) error {
	from, to := ha.cursor, ha.now()

	roundLogger := ha.logger.WithFields(
		map[string]interface{}{
			"from": from.Format(time.RFC3339),
			"to":   to.Format(time.RFC3339),
		},
	)

	roundLogger.Debugf("running archive round")

	activities, err := ha.source.Activities(
		ctx,
		dealing.ActivityFilter{From: from, To: to},
	)
	if err != nil {
		return fmt.Errorf("could not fetch activities: [%v]", err)
	}

	storedActivities, err := dealing.ArchiveActivities(ha.archive, activities)
	if err != nil {
		return fmt.Errorf("could not archive activities: [%v]", err)
	}

	transactions, err := ha.source.Transactions(
		ctx,
		dealing.TransactionFilter{From: from, To: to},
	)
	if err != nil {
		return fmt.Errorf("could not fetch transactions: [%v]", err)
	}

	storedTransactions, err := dealing.ArchiveTransactions(
		ha.archive,
		transactions,
	)
	if err != nil {
		return fmt.Errorf("could not archive transactions: [%v]", err)
	}

	roundLogger.Infof(
		"archived [%v] new activities and [%v] new transactions",
		storedActivities,
		storedTransactions,
	)

	ha.cursor = to

	return nil
}

func (ha *HistoryArchiver) ErrChan() <-chan error {
	return ha.errChan
}
