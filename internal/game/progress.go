package game

import (
	"strings"
	"time"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/geo"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/hunt"
)

// SubmitLocation records the team's reported coordinate. When geofencing is
// enabled and the current question carries a fence, the coordinate must fall
// inside it; rejection leaves the state untouched.
func (e *Engine) SubmitLocation(participantID string, lat, lon float64, ts time.Time) error {
	t, err := e.teamOf(participantID)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Finished(e.catalog.Len()) {
		return ErrAlreadyFinished
	}

	q := e.catalog.Question(t.state.CurrentQuestion)
	if e.cfg.UseGeofence && q.Geofence != nil && !geo.Validate(lat, lon, *q.Geofence) {
		return ErrOutOfRange
	}

	t.state.LastLocation = &hunt.Location{Lat: lat, Lon: lon, Timestamp: ts}
	t.state.LocationOK = true
	e.notifier.Publish(hunt.SnapshotOf(t.state))
	return nil
}

// HintResult is the accepted hint plus the penalty it will cost if the team
// later answers this question correctly.
type HintResult struct {
	Number    int     `json:"number"` // 1-based
	Text      string  `json:"text"`
	Penalty   float64 `json:"penalty"`
	Remaining int     `json:"remaining"`
}

// RequestHint hands out the next hint for the current question. Hints do not
// consume attempts; the penalty only matters if the question is answered
// correctly, since an auto-advanced question scores zero anyway.
func (e *Engine) RequestHint(participantID string) (HintResult, error) {
	t, err := e.teamOf(participantID)
	if err != nil {
		return HintResult{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Finished(e.catalog.Len()) {
		return HintResult{}, ErrAlreadyFinished
	}

	q := e.catalog.Question(t.state.CurrentQuestion)
	idx := t.state.HintsUsed
	if idx >= len(q.Hints) {
		return HintResult{}, ErrNoHintsRemaining
	}

	t.state.HintsUsed++
	e.notifier.Publish(hunt.SnapshotOf(t.state))
	return HintResult{
		Number:    idx + 1,
		Text:      q.Hints[idx],
		Penalty:   e.cfg.HintPenalty,
		Remaining: len(q.Hints) - t.state.HintsUsed,
	}, nil
}

// AnswerResult reports the outcome of one answer submission.
type AnswerResult struct {
	Correct      bool    `json:"correct"`
	PointsEarned float64 `json:"pointsEarned"`
	TotalScore   float64 `json:"totalScore"`
	AttemptsLeft int     `json:"attemptsLeft"`
	AutoAdvanced bool    `json:"autoAdvanced"`
	Finished     bool    `json:"finished"`

	// Next is the question the team faces after this submission, nil once
	// finished or when a wrong answer leaves attempts on the clock.
	Next *QuestionView `json:"next,omitempty"`
}

// SubmitAnswer checks code against the current question. A correct answer
// earns the hint-adjusted score and advances; a wrong answer burns an attempt
// and, on the last one, forces an advance worth zero points.
func (e *Engine) SubmitAnswer(participantID, code string) (AnswerResult, error) {
	t, err := e.teamOf(participantID)
	if err != nil {
		return AnswerResult{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	n := e.catalog.Len()
	if t.state.Finished(n) {
		return AnswerResult{}, ErrAlreadyFinished
	}

	q := e.catalog.Question(t.state.CurrentQuestion)
	if e.cfg.UseGeofence && q.Geofence != nil && !t.state.LocationOK {
		return AnswerResult{}, ErrGeofenceRequired
	}

	correct := strings.EqualFold(strings.TrimSpace(code), strings.TrimSpace(q.AnswerCode))

	var res AnswerResult
	if correct {
		points := e.cfg.questionScore(t.state.HintsUsed)
		t.state.Score += points
		t.state.History = append(t.state.History, hunt.HistoryEntry{
			QuestionIndex: q.Index,
			Correct:       true,
			Points:        points,
			Attempts:      e.cfg.AttemptsPerQuestion - t.state.AttemptsLeft + 1,
			HintsUsed:     t.state.HintsUsed,
		})
		e.advance(&t.state)
		res = AnswerResult{
			Correct:      true,
			PointsEarned: points,
		}
	} else {
		t.state.AttemptsLeft--
		if t.state.AttemptsLeft <= 0 {
			t.state.History = append(t.state.History, hunt.HistoryEntry{
				QuestionIndex: q.Index,
				Correct:       false,
				Attempts:      e.cfg.AttemptsPerQuestion,
				HintsUsed:     t.state.HintsUsed,
			})
			e.advance(&t.state)
			res = AnswerResult{AutoAdvanced: true}
		}
	}

	res.TotalScore = t.state.Score
	res.AttemptsLeft = t.state.AttemptsLeft
	res.Finished = t.state.Finished(n)
	if (correct || res.AutoAdvanced) && !res.Finished {
		next := e.questionView(&t.state)
		res.Next = &next
	}

	e.notifier.Publish(hunt.SnapshotOf(t.state))
	return res, nil
}

// advance moves the team to the next question and resets the per-question
// counters and the location gate. Caller holds the team lock.
func (e *Engine) advance(s *hunt.TeamState) {
	s.CurrentQuestion++
	s.AttemptsLeft = e.cfg.AttemptsPerQuestion
	s.HintsUsed = 0
	s.LocationOK = false
}

// questionScore is the hint-adjusted score for a correctly answered
// question: max(0, 1 - hintsUsed*penalty).
func (c Config) questionScore(hintsUsed int) float64 {
	score := 1 - float64(hintsUsed)*c.HintPenalty
	if score < 0 {
		return 0
	}
	return score
}
