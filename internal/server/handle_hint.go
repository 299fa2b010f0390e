package server

import (
	"net/http"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/game"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/metrics"
)

func handleHint(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantID, err := participantFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing participant identifier")
			return
		}

		hint, err := eng.RequestHint(participantID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		metrics.RecordHint()
		writeJSON(w, http.StatusOK, hint)
	}
}
