// Package hunt defines the core domain types for the scavenger hunt.
// It has no dependencies beyond the standard library.
package hunt

import "time"

// Geofence is a circular area a team must be inside before it may
// answer the question that carries it.
type Geofence struct {
	Lat          float64
	Lon          float64
	RadiusMeters float64
}

// Question is one ordered unit of the catalog. The answer code is only
// discoverable on-site; comparison is case-insensitive.
type Question struct {
	Index      int
	Title      string
	Prompt     string
	AnswerCode string
	Hints      []string
	Geofence   *Geofence
}

// Catalog is the ordered, immutable question sequence loaded at startup.
type Catalog struct {
	Questions []Question
}

// Len returns the number of questions in the catalog.
func (c Catalog) Len() int { return len(c.Questions) }

// Question returns the question at index i. Callers must keep i in range.
func (c Catalog) Question(i int) Question { return c.Questions[i] }

// Location is the last coordinate a team reported.
type Location struct {
	Lat       float64
	Lon       float64
	Timestamp time.Time
}

// HistoryEntry records how one question was resolved for a team: either a
// correct answer or a forced advance after exhausting attempts.
type HistoryEntry struct {
	QuestionIndex int
	Correct       bool
	Points        float64
	Attempts      int
	HintsUsed     int
}

// TeamState is the per-team progression record. It is exclusively owned
// by the game engine and mutated only under the team's lock.
type TeamState struct {
	TeamName        string
	ParticipantID   string
	CurrentQuestion int
	Score           float64
	AttemptsLeft    int
	HintsUsed       int // hints taken on the current question
	LastLocation    *Location
	LocationOK      bool // accepted location for the current question
	History         []HistoryEntry
}

// Finished reports whether the team has moved past the last question of a
// catalog with total questions.
func (t TeamState) Finished(total int) bool { return t.CurrentQuestion >= total }

// Snapshot is the flattened view published to the external mirror after
// every committed mutation. Field set mirrors the live sheet columns.
type Snapshot struct {
	TeamName        string
	ParticipantID   string
	CurrentQuestion int
	Score           float64
	AttemptsLeft    int
	HintsUsed       int
	LastLat         *float64
	LastLon         *float64
	LastTimestamp   *time.Time
}

// SnapshotOf flattens a team state into its mirror form.
func SnapshotOf(t TeamState) Snapshot {
	s := Snapshot{
		TeamName:        t.TeamName,
		ParticipantID:   t.ParticipantID,
		CurrentQuestion: t.CurrentQuestion,
		Score:           t.Score,
		AttemptsLeft:    t.AttemptsLeft,
		HintsUsed:       t.HintsUsed,
	}
	if t.LastLocation != nil {
		lat, lon, ts := t.LastLocation.Lat, t.LastLocation.Lon, t.LastLocation.Timestamp
		s.LastLat = &lat
		s.LastLon = &lon
		s.LastTimestamp = &ts
	}
	return s
}
