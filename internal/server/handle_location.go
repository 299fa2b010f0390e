package server

import (
	"net/http"
	"time"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/game"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/geo"
)

type LocationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type LocationResponse struct {
	Accepted bool `json:"accepted"`
}

func handleLocation(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantID, err := participantFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing participant identifier")
			return
		}

		var req LocationRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !geo.ValidCoordinate(req.Lat, req.Lon) {
			writeError(w, http.StatusBadRequest, "invalid coordinates")
			return
		}

		if err := eng.SubmitLocation(participantID, req.Lat, req.Lon, time.Now().UTC()); err != nil {
			writeGameError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, LocationResponse{Accepted: true})
	}
}
