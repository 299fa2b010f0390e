// Package mirror maintains the external live view of every team: a
// best-effort, write-only copy of team state consumed by race operators.
// The game never reads it back; gameplay correctness does not depend on it.
package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/hunt"
)

var ErrNotFound = errors.New("no mirror row for team")

// Store upserts one row per team into the live table.
type Store struct {
	db *sql.DB
}

func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS live (
			team_name            TEXT PRIMARY KEY,
			participant_id       TEXT NOT NULL,
			current_q            INTEGER NOT NULL,
			score                REAL NOT NULL,
			attempts_left        INTEGER NOT NULL,
			hints_used_current_q INTEGER NOT NULL,
			last_lat             REAL,
			last_lon             REAL,
			last_ts              TEXT,
			updated_at           TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("creating live table: %w", err)
	}
	return &Store{db: db}, nil
}

// Upsert writes the snapshot, replacing any previous row for the team.
func (s *Store) Upsert(ctx context.Context, snap hunt.Snapshot) error {
	var lastTS *string
	if snap.LastTimestamp != nil {
		ts := snap.LastTimestamp.UTC().Format(time.RFC3339)
		lastTS = &ts
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO live (
			team_name, participant_id, current_q, score,
			attempts_left, hints_used_current_q,
			last_lat, last_lon, last_ts, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(team_name) DO UPDATE SET
			participant_id       = excluded.participant_id,
			current_q            = excluded.current_q,
			score                = excluded.score,
			attempts_left        = excluded.attempts_left,
			hints_used_current_q = excluded.hints_used_current_q,
			last_lat             = excluded.last_lat,
			last_lon             = excluded.last_lon,
			last_ts              = excluded.last_ts,
			updated_at           = excluded.updated_at
	`, snap.TeamName, snap.ParticipantID, snap.CurrentQuestion, snap.Score,
		snap.AttemptsLeft, snap.HintsUsed,
		snap.LastLat, snap.LastLon, lastTS, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting live row for %s: %w", snap.TeamName, err)
	}
	return nil
}

// Row reads the mirrored snapshot back; used by tests and the health view.
func (s *Store) Row(ctx context.Context, teamName string) (hunt.Snapshot, error) {
	var snap hunt.Snapshot
	var lastTS sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT team_name, participant_id, current_q, score,
		       attempts_left, hints_used_current_q, last_lat, last_lon, last_ts
		FROM live WHERE team_name = ?
	`, teamName).Scan(&snap.TeamName, &snap.ParticipantID, &snap.CurrentQuestion,
		&snap.Score, &snap.AttemptsLeft, &snap.HintsUsed,
		&snap.LastLat, &snap.LastLon, &lastTS)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, ErrNotFound
	}
	if err != nil {
		return snap, err
	}
	if lastTS.Valid {
		ts, perr := time.Parse(time.RFC3339, lastTS.String)
		if perr == nil {
			snap.LastTimestamp = &ts
		}
	}
	return snap, nil
}
