package game

import "errors"

var (
	ErrDuplicateTeam     = errors.New("team name already taken")
	ErrAlreadyRegistered = errors.New("participant already belongs to a team")
	ErrNotFound          = errors.New("team not found")
	ErrAlreadyFinished   = errors.New("team has already finished")
	ErrGeofenceRequired  = errors.New("accepted location required before answering")
	ErrOutOfRange        = errors.New("reported location is outside the question geofence")
	ErrNoHintsRemaining  = errors.New("no hints remaining for this question")
	ErrInvalidIndex      = errors.New("question index out of range")
	ErrUnauthorized      = errors.New("admin privileges required")
)
