package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/game"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeGameError maps engine errors to HTTP statuses. Unknown errors are
// masked as 500 so internals never leak to the transport.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		writeError(w, http.StatusNotFound, "team not found, register first")
	case errors.Is(err, game.ErrDuplicateTeam):
		writeError(w, http.StatusConflict, "team name already taken")
	case errors.Is(err, game.ErrAlreadyRegistered):
		writeError(w, http.StatusConflict, "participant already belongs to a team")
	case errors.Is(err, game.ErrAlreadyFinished):
		writeError(w, http.StatusConflict, "team has already finished")
	case errors.Is(err, game.ErrNoHintsRemaining):
		writeError(w, http.StatusConflict, "no hints remaining for this question")
	case errors.Is(err, game.ErrGeofenceRequired):
		writeError(w, http.StatusPreconditionFailed, "send an accepted location before answering")
	case errors.Is(err, game.ErrOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, "you do not appear to be at the location yet")
	case errors.Is(err, game.ErrInvalidIndex):
		writeError(w, http.StatusBadRequest, "question index out of range")
	case errors.Is(err, game.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "admin privileges required")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
