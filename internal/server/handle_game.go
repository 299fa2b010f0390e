package server

import (
	"net/http"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/game"
)

const usageText = `Welcome to the hunt!

POST /api/register {"teamName": ...} to enter (one participant per team).
GET  /api/game/begin for your current location clue.
POST /api/game/answer {"code": ...} to submit the on-site code.
POST /api/game/hint for a hint (scoring penalty applies).
POST /api/game/location {"lat": ..., "lon": ...} to report your position.
GET  /api/game/status and GET /api/scoreboard to track progress.`

// handleUsage returns the command summary the transport relays to new
// participants.
func handleUsage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"usage": usageText})
	}
}

func handleBegin(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantID, err := participantFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing participant identifier")
			return
		}

		view, err := eng.Begin(participantID)
		if err != nil {
			writeGameError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func handleStatus(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantID, err := participantFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing participant identifier")
			return
		}

		view, err := eng.Status(participantID)
		if err != nil {
			writeGameError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func handleScoreboard(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, eng.Scoreboard())
	}
}
