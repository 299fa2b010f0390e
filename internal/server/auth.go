package server

import (
	"errors"
	"net/http"
	"strings"
)

var errNoParticipant = errors.New("no participant identifier")

// participantFromRequest extracts the transport-level participant
// identifier. The transport layer authenticates participants; the bearer
// token here is that already-resolved identifier.
func participantFromRequest(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	id, found := strings.CutPrefix(auth, "Bearer ")
	if !found || id == "" {
		return "", errNoParticipant
	}
	return id, nil
}
