package server

import (
	"net/http"
	"strings"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/game"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/metrics"
)

type RegisterRequest struct {
	TeamName string `json:"teamName"`
}

type RegisterResponse struct {
	TeamName       string `json:"teamName"`
	TotalQuestions int    `json:"totalQuestions"`
	AttemptsLeft   int    `json:"attemptsLeft"`
}

func handleRegister(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantID, err := participantFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing participant identifier")
			return
		}

		var req RegisterRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.TeamName = strings.TrimSpace(req.TeamName)
		if req.TeamName == "" {
			writeError(w, http.StatusBadRequest, "teamName is required")
			return
		}

		state, err := eng.Register(req.TeamName, participantID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		metrics.SetTeamsRegistered(eng.TeamCount())

		writeJSON(w, http.StatusCreated, RegisterResponse{
			TeamName:       state.TeamName,
			TotalQuestions: eng.TotalQuestions(),
			AttemptsLeft:   state.AttemptsLeft,
		})
	}
}
