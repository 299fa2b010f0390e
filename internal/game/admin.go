package game

import (
	"sort"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/hunt"
)

// AdminForce jumps a team directly to target, the one sanctioned exception
// to monotonic progression. target may equal the catalog length, which
// finishes the team. Attempts, hints and the location gate reset as on a
// normal advance.
func (e *Engine) AdminForce(teamName string, target int) (hunt.TeamState, error) {
	if target < 0 || target > e.catalog.Len() {
		return hunt.TeamState{}, ErrInvalidIndex
	}
	t, err := e.team(teamName)
	if err != nil {
		return hunt.TeamState{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.CurrentQuestion = target
	t.state.AttemptsLeft = e.cfg.AttemptsPerQuestion
	t.state.HintsUsed = 0
	t.state.LocationOK = false

	e.notifier.Publish(hunt.SnapshotOf(t.state))
	return t.state, nil
}

// WhereView is the admin inspection view of one team.
type WhereView struct {
	TeamName        string              `json:"teamName"`
	ParticipantID   string              `json:"participantId"`
	CurrentQuestion int                 `json:"currentQuestion"`
	Score           float64             `json:"score"`
	AttemptsLeft    int                 `json:"attemptsLeft"`
	HintsUsed       int                 `json:"hintsUsed"`
	Finished        bool                `json:"finished"`
	LastLocation    *hunt.Location      `json:"lastLocation,omitempty"`
	History         []hunt.HistoryEntry `json:"history"`
}

// Where returns the admin view of the named team.
func (e *Engine) Where(teamName string) (WhereView, error) {
	t, err := e.team(teamName)
	if err != nil {
		return WhereView{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	v := WhereView{
		TeamName:        t.state.TeamName,
		ParticipantID:   t.state.ParticipantID,
		CurrentQuestion: t.state.CurrentQuestion,
		Score:           t.state.Score,
		AttemptsLeft:    t.state.AttemptsLeft,
		HintsUsed:       t.state.HintsUsed,
		Finished:        t.state.Finished(e.catalog.Len()),
		History:         append([]hunt.HistoryEntry(nil), t.state.History...),
	}
	if t.state.LastLocation != nil {
		loc := *t.state.LastLocation
		v.LastLocation = &loc
	}
	return v, nil
}

// ScoreboardEntry is one ranked row of the scoreboard.
type ScoreboardEntry struct {
	Rank           int     `json:"rank"`
	TeamName       string  `json:"teamName"`
	Score          float64 `json:"score"`
	QuestionNumber int     `json:"questionNumber"` // 1-based, capped at total
	Finished       bool    `json:"finished"`
}

// Scoreboard lists every team ordered by descending score, then ascending
// question index, then team name. Each record is copied under its own lock;
// the board tolerates slightly stale reads of concurrently mutating teams.
func (e *Engine) Scoreboard() []ScoreboardEntry {
	e.mu.RLock()
	teams := make([]*team, 0, len(e.teams))
	for _, t := range e.teams {
		teams = append(teams, t)
	}
	e.mu.RUnlock()

	n := e.catalog.Len()
	states := make([]hunt.TeamState, 0, len(teams))
	for _, t := range teams {
		t.mu.Lock()
		states = append(states, t.state)
		t.mu.Unlock()
	}

	sort.Slice(states, func(i, j int) bool {
		if states[i].Score != states[j].Score {
			return states[i].Score > states[j].Score
		}
		if states[i].CurrentQuestion != states[j].CurrentQuestion {
			return states[i].CurrentQuestion < states[j].CurrentQuestion
		}
		return states[i].TeamName < states[j].TeamName
	})

	board := make([]ScoreboardEntry, len(states))
	for i, s := range states {
		num := s.CurrentQuestion + 1
		if num > n {
			num = n
		}
		board[i] = ScoreboardEntry{
			Rank:           i + 1,
			TeamName:       s.TeamName,
			Score:          s.Score,
			QuestionNumber: num,
			Finished:       s.Finished(n),
		}
	}
	return board
}

// Participants returns every registered participant ID, for broadcasts.
func (e *Engine) Participants() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]string, 0, len(e.byParticipant))
	for id := range e.byParticipant {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
