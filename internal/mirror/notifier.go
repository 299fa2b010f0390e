package mirror

import (
	"context"
	"log/slog"
	"time"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/hunt"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/metrics"
)

const (
	writeTimeout  = 2 * time.Second
	writeAttempts = 3
	retryBackoff  = 100 * time.Millisecond
)

// Notifier decouples the game's critical sections from mirror writes.
// Publish never blocks: a single consumer drains a bounded queue, so
// snapshots for one team reach the store in mutation order. When the queue
// is full the snapshot is dropped; the next one for that team supersedes it.
type Notifier struct {
	store  *Store
	logger *slog.Logger
	queue  chan hunt.Snapshot
}

func NewNotifier(store *Store, logger *slog.Logger, queueSize int) *Notifier {
	return &Notifier{
		store:  store,
		logger: logger,
		queue:  make(chan hunt.Snapshot, queueSize),
	}
}

// Publish enqueues a snapshot for the mirror writer.
func (n *Notifier) Publish(snap hunt.Snapshot) {
	select {
	case n.queue <- snap:
		metrics.SetSyncQueueDepth(len(n.queue))
	default:
		metrics.RecordSyncDropped()
		n.logger.Warn("mirror queue full, snapshot dropped", "team", snap.TeamName)
	}
}

// Run consumes the queue until ctx is canceled, then drains whatever is
// still buffered before returning.
func (n *Notifier) Run(ctx context.Context) error {
	for {
		select {
		case snap := <-n.queue:
			n.write(snap)
			metrics.SetSyncQueueDepth(len(n.queue))
		case <-ctx.Done():
			for {
				select {
				case snap := <-n.queue:
					n.write(snap)
				default:
					return nil
				}
			}
		}
	}
}

// write attempts the upsert with bounded retry. Exhausted retries are
// logged and counted, never surfaced to gameplay.
func (n *Notifier) write(snap hunt.Snapshot) {
	var err error
	for attempt := 1; attempt <= writeAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err = n.store.Upsert(ctx, snap)
		cancel()
		if err == nil {
			metrics.RecordSyncWritten()
			return
		}
		time.Sleep(retryBackoff * time.Duration(attempt))
	}
	metrics.RecordSyncFailed()
	n.logger.Error("mirror write failed, snapshot dropped",
		"team", snap.TeamName, "attempts", writeAttempts, "error", err)
}
