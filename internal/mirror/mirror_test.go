package mirror

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/database"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/hunt"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(ctx, db)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	return store
}

func TestUpsertRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	lat, lon := 1.29027, 103.8515
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	snap := hunt.Snapshot{
		TeamName:        "Foxes",
		ParticipantID:   "u1",
		CurrentQuestion: 2,
		Score:           1.5,
		AttemptsLeft:    3,
		HintsUsed:       1,
		LastLat:         &lat,
		LastLon:         &lon,
		LastTimestamp:   &ts,
	}

	if err := store.Upsert(ctx, snap); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.Row(ctx, "Foxes")
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if got.CurrentQuestion != 2 || got.Score != 1.5 || got.HintsUsed != 1 {
		t.Errorf("row mismatch: %+v", got)
	}
	if got.LastLat == nil || *got.LastLat != lat {
		t.Errorf("last_lat mismatch: %v", got.LastLat)
	}
	if got.LastTimestamp == nil || !got.LastTimestamp.Equal(ts) {
		t.Errorf("last_ts mismatch: %v", got.LastTimestamp)
	}
}

func TestUpsertReplacesRow(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := hunt.Snapshot{TeamName: "Foxes", ParticipantID: "u1", AttemptsLeft: 3}
	if err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := first
	second.CurrentQuestion = 1
	second.Score = 1
	if err := store.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := store.Row(ctx, "Foxes")
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if got.CurrentQuestion != 1 || got.Score != 1 {
		t.Errorf("row not replaced: %+v", got)
	}
}

func TestRowNotFound(t *testing.T) {
	store := testStore(t)
	if _, err := store.Row(context.Background(), "nobody"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNotifierDrainsInOrder(t *testing.T) {
	store := testStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	n := NewNotifier(store, logger, 16)

	// Successive snapshots for one team; the last one must win.
	for q := 0; q <= 3; q++ {
		n.Publish(hunt.Snapshot{
			TeamName:        "Foxes",
			ParticipantID:   "u1",
			CurrentQuestion: q,
			Score:           float64(q),
		})
	}

	// A canceled context makes Run drain the queue and return.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	got, err := store.Row(context.Background(), "Foxes")
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if got.CurrentQuestion != 3 || got.Score != 3 {
		t.Errorf("snapshots applied out of order: %+v", got)
	}
}

func TestPublishDropsWhenFull(t *testing.T) {
	store := testStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	n := NewNotifier(store, logger, 2)

	// No consumer running: the third publish must drop, not block.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			n.Publish(hunt.Snapshot{TeamName: "Foxes", CurrentQuestion: i})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
}
