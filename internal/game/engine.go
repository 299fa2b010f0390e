// Package game implements the per-team progression state machine: answer
// checking, attempt limits, hint penalties, scoring, and admin overrides.
package game

import (
	"sync"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/hunt"
)

// Notifier receives a snapshot after every committed mutation. Publish must
// not block: the engine calls it while holding the team's lock so that
// snapshots for one team are enqueued in mutation order.
type Notifier interface {
	Publish(hunt.Snapshot)
}

// Config carries the tuning knobs the engine reads. Immutable after New.
type Config struct {
	AttemptsPerQuestion int
	HintPenalty         float64
	UseGeofence         bool
}

// team pairs a state record with the lock that serializes its mutations.
// Operations on different teams share nothing beyond the registry map.
type team struct {
	mu    sync.Mutex
	state hunt.TeamState
}

// Engine owns the team registry and drives every team through the catalog.
type Engine struct {
	catalog  hunt.Catalog
	cfg      Config
	notifier Notifier

	mu            sync.RWMutex
	teams         map[string]*team  // team name -> record
	byParticipant map[string]string // participant ID -> team name
}

func New(catalog hunt.Catalog, cfg Config, notifier Notifier) *Engine {
	return &Engine{
		catalog:       catalog,
		cfg:           cfg,
		notifier:      notifier,
		teams:         make(map[string]*team),
		byParticipant: make(map[string]string),
	}
}

// TotalQuestions returns the catalog length.
func (e *Engine) TotalQuestions() int { return e.catalog.Len() }

// TeamCount returns the number of registered teams.
func (e *Engine) TeamCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.teams)
}

// Register creates a fresh team record bound to participantID.
func (e *Engine) Register(teamName, participantID string) (hunt.TeamState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.teams[teamName]; ok {
		return hunt.TeamState{}, ErrDuplicateTeam
	}
	if _, ok := e.byParticipant[participantID]; ok {
		return hunt.TeamState{}, ErrAlreadyRegistered
	}

	t := &team{state: hunt.TeamState{
		TeamName:      teamName,
		ParticipantID: participantID,
		AttemptsLeft:  e.cfg.AttemptsPerQuestion,
	}}
	e.teams[teamName] = t
	e.byParticipant[participantID] = teamName

	e.notifier.Publish(hunt.SnapshotOf(t.state))
	return t.state, nil
}

// Lookup returns a copy of the named team's state.
func (e *Engine) Lookup(teamName string) (hunt.TeamState, error) {
	t, err := e.team(teamName)
	if err != nil {
		return hunt.TeamState{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, nil
}

// LookupByParticipant resolves a participant ID to its team's state.
func (e *Engine) LookupByParticipant(participantID string) (hunt.TeamState, error) {
	t, err := e.teamOf(participantID)
	if err != nil {
		return hunt.TeamState{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, nil
}

func (e *Engine) team(teamName string) (*team, error) {
	e.mu.RLock()
	t, ok := e.teams[teamName]
	e.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

func (e *Engine) teamOf(participantID string) (*team, error) {
	e.mu.RLock()
	name, ok := e.byParticipant[participantID]
	t := e.teams[name]
	e.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// QuestionView is what a team sees of its current question. The answer code
// never leaves the engine.
type QuestionView struct {
	Index          int    `json:"index"`
	Total          int    `json:"total"`
	Title          string `json:"title"`
	Prompt         string `json:"prompt"`
	AttemptsLeft   int    `json:"attemptsLeft"`
	HintsAvailable int    `json:"hintsAvailable"`
	NeedsLocation  bool   `json:"needsLocation"`
}

// Begin returns the current question for display. No state changes.
func (e *Engine) Begin(participantID string) (QuestionView, error) {
	t, err := e.teamOf(participantID)
	if err != nil {
		return QuestionView{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Finished(e.catalog.Len()) {
		return QuestionView{}, ErrAlreadyFinished
	}
	return e.questionView(&t.state), nil
}

// questionView builds the view for the team's current question.
// Caller holds the team lock and has checked Finished.
func (e *Engine) questionView(s *hunt.TeamState) QuestionView {
	q := e.catalog.Question(s.CurrentQuestion)
	return QuestionView{
		Index:          q.Index,
		Total:          e.catalog.Len(),
		Title:          q.Title,
		Prompt:         q.Prompt,
		AttemptsLeft:   s.AttemptsLeft,
		HintsAvailable: len(q.Hints) - s.HintsUsed,
		NeedsLocation:  e.cfg.UseGeofence && q.Geofence != nil && !s.LocationOK,
	}
}

// StatusView summarizes a team's progress.
type StatusView struct {
	TeamName       string  `json:"teamName"`
	QuestionNumber int     `json:"questionNumber"` // 1-based, capped at total
	TotalQuestions int     `json:"totalQuestions"`
	Score          float64 `json:"score"`
	AttemptsLeft   int     `json:"attemptsLeft"`
	HintsUsed      int     `json:"hintsUsed"`
	Finished       bool    `json:"finished"`
}

// Status returns the participant's team summary.
func (e *Engine) Status(participantID string) (StatusView, error) {
	t, err := e.teamOf(participantID)
	if err != nil {
		return StatusView{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	n := e.catalog.Len()
	num := t.state.CurrentQuestion + 1
	if num > n {
		num = n
	}
	return StatusView{
		TeamName:       t.state.TeamName,
		QuestionNumber: num,
		TotalQuestions: n,
		Score:          t.state.Score,
		AttemptsLeft:   t.state.AttemptsLeft,
		HintsUsed:      t.state.HintsUsed,
		Finished:       t.state.Finished(n),
	}, nil
}
