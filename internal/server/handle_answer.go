package server

import (
	"net/http"
	"strings"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/game"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/metrics"
)

type AnswerRequest struct {
	Code string `json:"code"`
}

func handleAnswer(eng *game.Engine, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantID, err := participantFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing participant identifier")
			return
		}

		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Code) == "" {
			writeError(w, http.StatusBadRequest, "code is required")
			return
		}

		res, err := eng.SubmitAnswer(participantID, req.Code)
		if err != nil {
			writeGameError(w, err)
			return
		}

		metrics.RecordAnswer(res.Correct)
		if res.AutoAdvanced {
			metrics.RecordAutoAdvance()
		}

		switch {
		case res.Finished:
			broker.Publish(participantID, Event{Type: "hunt_finished", Points: res.TotalScore})
		case res.Correct:
			broker.Publish(participantID, Event{Type: "question_solved", Points: res.PointsEarned})
		case res.AutoAdvanced:
			broker.Publish(participantID, Event{Type: "question_forfeited"})
		}

		writeJSON(w, http.StatusOK, res)
	}
}
