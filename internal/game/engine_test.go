package game

import (
	"sync"
	"testing"
	"time"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/hunt"
)

type captureNotifier struct {
	mu    sync.Mutex
	snaps []hunt.Snapshot
}

func (c *captureNotifier) Publish(s hunt.Snapshot) {
	c.mu.Lock()
	c.snaps = append(c.snaps, s)
	c.mu.Unlock()
}

func (c *captureNotifier) forTeam(name string) []hunt.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []hunt.Snapshot
	for _, s := range c.snaps {
		if s.TeamName == name {
			out = append(out, s)
		}
	}
	return out
}

func testCatalog() hunt.Catalog {
	return hunt.Catalog{Questions: []hunt.Question{
		{
			Index:      0,
			Title:      "Old Supreme Court",
			Prompt:     "Find the code under the emblem.",
			AnswerCode: "MERLION",
			Hints:      []string{"Near the steps.", "Under the plate."},
			Geofence:   &hunt.Geofence{Lat: 1.29027, Lon: 103.8515, RadiusMeters: 50},
		},
		{
			Index:      1,
			Title:      "Fountain",
			Prompt:     "Read the plaque code.",
			AnswerCode: "CODE2",
			Hints:      []string{"Check the signboard."},
		},
		{
			Index:      2,
			Title:      "Bridge",
			Prompt:     "Submit the year on the south pillar.",
			AnswerCode: "1869",
		},
	}}
}

func newTestEngine(t *testing.T, cfg Config) (*Engine, *captureNotifier) {
	t.Helper()
	n := &captureNotifier{}
	return New(testCatalog(), cfg, n), n
}

func defaultConfig() Config {
	return Config{AttemptsPerQuestion: 3, HintPenalty: 0.5}
}

func register(t *testing.T, e *Engine, team, pid string) {
	t.Helper()
	if _, err := e.Register(team, pid); err != nil {
		t.Fatalf("register %s: %v", team, err)
	}
}

func TestRegisterDuplicateTeam(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	if _, err := e.Register("Foxes", "u2"); err != ErrDuplicateTeam {
		t.Fatalf("expected ErrDuplicateTeam, got %v", err)
	}

	// Original state unchanged.
	s, err := e.Lookup("Foxes")
	if err != nil || s.ParticipantID != "u1" {
		t.Fatalf("original team mutated: %+v, %v", s, err)
	}
}

func TestRegisterParticipantTwice(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	if _, err := e.Register("Wolves", "u1"); err != ErrAlreadyRegistered {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestLookupByParticipant(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	s, err := e.LookupByParticipant("u1")
	if err != nil || s.TeamName != "Foxes" {
		t.Fatalf("lookup by participant: %+v, %v", s, err)
	}
	if _, err := e.LookupByParticipant("nobody"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCorrectAnswerAdvances(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	// Case-insensitive with surrounding whitespace.
	res, err := e.SubmitAnswer("u1", "  merlion ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Correct || res.PointsEarned != 1 || res.TotalScore != 1 {
		t.Fatalf("expected full credit, got %+v", res)
	}
	if res.Next == nil || res.Next.Index != 1 {
		t.Fatalf("expected next question 1, got %+v", res.Next)
	}
	if res.AttemptsLeft != 3 {
		t.Fatalf("attempts must reset on advance, got %d", res.AttemptsLeft)
	}
}

func TestHintPenaltyScoring(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	// One hint used, correct on first attempt: exactly 0.5.
	if _, err := e.RequestHint("u1"); err != nil {
		t.Fatalf("hint: %v", err)
	}
	res, err := e.SubmitAnswer("u1", "MERLION")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.PointsEarned != 0.5 {
		t.Fatalf("expected 0.5 points, got %g", res.PointsEarned)
	}
}

func TestTwoHintsFloorAtZero(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	for i := 0; i < 2; i++ {
		if _, err := e.RequestHint("u1"); err != nil {
			t.Fatalf("hint %d: %v", i, err)
		}
	}
	res, err := e.SubmitAnswer("u1", "MERLION")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.PointsEarned != 0 {
		t.Fatalf("expected floored 0 points, got %g", res.PointsEarned)
	}
	if !res.Correct {
		t.Fatal("answer was correct even at zero points")
	}
}

func TestHintExhaustion(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	first, err := e.RequestHint("u1")
	if err != nil || first.Number != 1 || first.Text != "Near the steps." {
		t.Fatalf("first hint: %+v, %v", first, err)
	}
	second, err := e.RequestHint("u1")
	if err != nil || second.Number != 2 || second.Remaining != 0 {
		t.Fatalf("second hint: %+v, %v", second, err)
	}

	for i := 0; i < 3; i++ {
		if _, err := e.RequestHint("u1"); err != ErrNoHintsRemaining {
			t.Fatalf("expected ErrNoHintsRemaining, got %v", err)
		}
	}

	// Counter never passes the hint count.
	s, _ := e.Lookup("Foxes")
	if s.HintsUsed != 2 {
		t.Fatalf("hints used must stay at 2, got %d", s.HintsUsed)
	}
}

func TestAttemptExhaustionAutoAdvance(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	// Move to the 0-hint question first.
	e.SubmitAnswer("u1", "MERLION")
	e.SubmitAnswer("u1", "CODE2")

	var res AnswerResult
	var err error
	for i := 0; i < 3; i++ {
		res, err = e.SubmitAnswer("u1", "wrong")
		if err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}
	if !res.AutoAdvanced {
		t.Fatal("expected auto-advance on third wrong answer")
	}
	if res.TotalScore != 2 {
		t.Fatalf("forfeited question must earn 0, total %g", res.TotalScore)
	}
	if !res.Finished {
		t.Fatal("auto-advance past the last question must finish the team")
	}

	s, _ := e.Lookup("Foxes")
	if s.CurrentQuestion != 3 {
		t.Fatalf("expected index 3, got %d", s.CurrentQuestion)
	}
}

func TestScoringIdempotence(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	// Hints and wrong attempts before the correct answer change nothing
	// about how often the contribution is added.
	e.RequestHint("u1")
	e.SubmitAnswer("u1", "nope")
	e.SubmitAnswer("u1", "still nope")

	res, err := e.SubmitAnswer("u1", "MERLION")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.PointsEarned != 0.5 || res.TotalScore != 0.5 {
		t.Fatalf("score contributed more than once: %+v", res)
	}
}

func TestLastAttemptCorrectEarnsCredit(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	e.SubmitAnswer("u1", "nope")
	e.SubmitAnswer("u1", "nope")

	res, err := e.SubmitAnswer("u1", "MERLION")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Correct || res.PointsEarned != 1 {
		t.Fatalf("final attempt answered correctly must earn credit: %+v", res)
	}
}

func TestFinishedRejectsOperations(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	for _, code := range []string{"MERLION", "CODE2", "1869"} {
		if _, err := e.SubmitAnswer("u1", code); err != nil {
			t.Fatalf("answer %s: %v", code, err)
		}
	}

	if _, err := e.SubmitAnswer("u1", "MERLION"); err != ErrAlreadyFinished {
		t.Fatalf("answer after finish: expected ErrAlreadyFinished, got %v", err)
	}
	if _, err := e.RequestHint("u1"); err != ErrAlreadyFinished {
		t.Fatalf("hint after finish: expected ErrAlreadyFinished, got %v", err)
	}
	if err := e.SubmitLocation("u1", 1, 103, time.Now()); err != ErrAlreadyFinished {
		t.Fatalf("location after finish: expected ErrAlreadyFinished, got %v", err)
	}
	if _, err := e.Begin("u1"); err != ErrAlreadyFinished {
		t.Fatalf("begin after finish: expected ErrAlreadyFinished, got %v", err)
	}
}

func TestGeofenceGate(t *testing.T) {
	cfg := defaultConfig()
	cfg.UseGeofence = true
	e, _ := newTestEngine(t, cfg)
	register(t, e, "Foxes", "u1")

	// Roughly 500 m north of the fence center (radius 50 m).
	err := e.SubmitLocation("u1", 1.29027+0.0045, 103.8515, time.Now())
	if err != ErrOutOfRange {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}

	// Rejection did not open the gate.
	if _, err := e.SubmitAnswer("u1", "MERLION"); err != ErrGeofenceRequired {
		t.Fatalf("expected ErrGeofenceRequired, got %v", err)
	}

	// Inside the fence: accepted, answer goes through.
	if err := e.SubmitLocation("u1", 1.29027, 103.8515, time.Now()); err != nil {
		t.Fatalf("in-range location rejected: %v", err)
	}
	res, err := e.SubmitAnswer("u1", "MERLION")
	if err != nil || !res.Correct {
		t.Fatalf("answer after accepted location: %+v, %v", res, err)
	}

	// The gate clears on advance; the next question has no fence, so
	// answering works without a new location.
	if _, err := e.SubmitAnswer("u1", "CODE2"); err != nil {
		t.Fatalf("fence-less question must not require a location: %v", err)
	}
}

func TestGeofenceDisabledAcceptsAnywhere(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	if err := e.SubmitLocation("u1", 48.8584, 2.2945, time.Now()); err != nil {
		t.Fatalf("location with geofencing disabled: %v", err)
	}
	if _, err := e.SubmitAnswer("u1", "MERLION"); err != nil {
		t.Fatalf("answer with geofencing disabled: %v", err)
	}
}

func TestAdminForce(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")
	e.RequestHint("u1")
	e.SubmitAnswer("u1", "wrong")

	s, err := e.AdminForce("Foxes", 2)
	if err != nil {
		t.Fatalf("force: %v", err)
	}
	if s.CurrentQuestion != 2 || s.AttemptsLeft != 3 || s.HintsUsed != 0 {
		t.Fatalf("force must reset per-question counters: %+v", s)
	}

	// Forcing to the catalog length finishes the team.
	s, err = e.AdminForce("Foxes", 3)
	if err != nil {
		t.Fatalf("force to end: %v", err)
	}
	if !s.Finished(e.TotalQuestions()) {
		t.Fatal("force to catalog length must finish the team")
	}

	// Backwards jumps are sanctioned for admins.
	s, err = e.AdminForce("Foxes", 0)
	if err != nil || s.CurrentQuestion != 0 {
		t.Fatalf("force backwards: %+v, %v", s, err)
	}

	for _, bad := range []int{-1, 4} {
		if _, err := e.AdminForce("Foxes", bad); err != ErrInvalidIndex {
			t.Fatalf("force to %d: expected ErrInvalidIndex, got %v", bad, err)
		}
	}
	if _, err := e.AdminForce("Wolves", 1); err != ErrNotFound {
		t.Fatalf("force unknown team: expected ErrNotFound, got %v", err)
	}
}

func TestScoreboardOrdering(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")
	register(t, e, "Wolves", "u2")
	register(t, e, "Bears", "u3")

	e.SubmitAnswer("u1", "MERLION") // Foxes: 1.0, q1
	e.RequestHint("u2")
	e.SubmitAnswer("u2", "MERLION") // Wolves: 0.5, q1

	board := e.Scoreboard()
	if len(board) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(board))
	}
	want := []string{"Foxes", "Wolves", "Bears"}
	for i, name := range want {
		if board[i].TeamName != name {
			t.Fatalf("rank %d: expected %s, got %s", i+1, name, board[i].TeamName)
		}
		if board[i].Rank != i+1 {
			t.Fatalf("rank %d mislabeled as %d", i+1, board[i].Rank)
		}
	}
}

func TestHistoryRecorded(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	e.RequestHint("u1")
	e.SubmitAnswer("u1", "wrong")
	e.SubmitAnswer("u1", "MERLION")
	for i := 0; i < 3; i++ {
		e.SubmitAnswer("u1", "wrong")
	}

	view, err := e.Where("Foxes")
	if err != nil {
		t.Fatalf("where: %v", err)
	}
	if len(view.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(view.History))
	}
	first := view.History[0]
	if !first.Correct || first.Points != 0.5 || first.Attempts != 2 || first.HintsUsed != 1 {
		t.Fatalf("first history entry: %+v", first)
	}
	second := view.History[1]
	if second.Correct || second.Points != 0 || second.Attempts != 3 {
		t.Fatalf("second history entry: %+v", second)
	}
}

func TestSnapshotPerMutation(t *testing.T) {
	e, n := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")

	e.RequestHint("u1")
	e.SubmitAnswer("u1", "wrong")
	e.SubmitAnswer("u1", "MERLION")

	snaps := n.forTeam("Foxes")
	// register + hint + wrong + correct.
	if len(snaps) != 4 {
		t.Fatalf("expected 4 snapshots, got %d", len(snaps))
	}
	last := snaps[len(snaps)-1]
	if last.CurrentQuestion != 1 || last.Score != 0.5 || last.HintsUsed != 0 {
		t.Fatalf("final snapshot out of order: %+v", last)
	}

	// A rejected hint on a question without hints mutates nothing and
	// publishes nothing.
	e.AdminForce("Foxes", 2)
	before := len(n.forTeam("Foxes"))
	if _, err := e.RequestHint("u1"); err != ErrNoHintsRemaining {
		t.Fatalf("expected ErrNoHintsRemaining, got %v", err)
	}
	if got := len(n.forTeam("Foxes")); got != before {
		t.Fatalf("rejected operation published a snapshot: %d -> %d", before, got)
	}
}

func TestConcurrentSameTeamSerialized(t *testing.T) {
	cfg := Config{AttemptsPerQuestion: 3, HintPenalty: 0.5}
	e, _ := newTestEngine(t, cfg)
	register(t, e, "Foxes", "u1")

	// 3 questions x 3 attempts: exactly 9 wrong answers finish the team
	// with zero score regardless of interleaving.
	var wg sync.WaitGroup
	errs := make(chan error, 9)
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.SubmitAnswer("u1", "wrong"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent answer: %v", err)
	}

	s, _ := e.Lookup("Foxes")
	if s.CurrentQuestion != 3 || s.Score != 0 {
		t.Fatalf("state inconsistent after concurrent answers: %+v", s)
	}
}

func TestConcurrentDifferentTeams(t *testing.T) {
	e, _ := newTestEngine(t, defaultConfig())
	register(t, e, "Foxes", "u1")
	register(t, e, "Wolves", "u2")

	var wg sync.WaitGroup
	for _, pid := range []string{"u1", "u2"} {
		wg.Add(1)
		go func(pid string) {
			defer wg.Done()
			for _, code := range []string{"MERLION", "CODE2", "1869"} {
				if _, err := e.SubmitAnswer(pid, code); err != nil {
					t.Errorf("%s answering %s: %v", pid, code, err)
				}
			}
		}(pid)
	}
	wg.Wait()

	for _, name := range []string{"Foxes", "Wolves"} {
		s, _ := e.Lookup(name)
		if s.Score != 3 || s.CurrentQuestion != 3 {
			t.Errorf("%s final state: %+v", name, s)
		}
	}
}
