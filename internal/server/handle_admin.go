package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/game"
)

type ForceRequest struct {
	QuestionIndex int `json:"questionIndex"`
}

type ForceResponse struct {
	TeamName        string `json:"teamName"`
	CurrentQuestion int    `json:"currentQuestion"`
	Finished        bool   `json:"finished"`
}

type BroadcastRequest struct {
	Message string `json:"message"`
}

type BroadcastResponse struct {
	Recipients int `json:"recipients"`
}

func handleAdminWhere(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamName := chi.URLParam(r, "teamName")

		view, err := eng.Where(teamName)
		if err != nil {
			writeGameError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func handleAdminForce(eng *game.Engine, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamName := chi.URLParam(r, "teamName")

		var req ForceRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		state, err := eng.AdminForce(teamName, req.QuestionIndex)
		if err != nil {
			writeGameError(w, err)
			return
		}

		idx := state.CurrentQuestion
		broker.Publish(state.ParticipantID, Event{
			Type:          "admin_moved_team",
			TeamName:      state.TeamName,
			QuestionIndex: &idx,
		})

		writeJSON(w, http.StatusOK, ForceResponse{
			TeamName:        state.TeamName,
			CurrentQuestion: state.CurrentQuestion,
			Finished:        state.Finished(eng.TotalQuestions()),
		})
	}
}

func handleAdminBroadcast(eng *game.Engine, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BroadcastRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Message = strings.TrimSpace(req.Message)
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}

		recipients := eng.Participants()
		broker.Broadcast(recipients, Event{
			Type:    "admin_broadcast",
			Message: req.Message,
		})

		writeJSON(w, http.StatusOK, BroadcastResponse{Recipients: len(recipients)})
	}
}
