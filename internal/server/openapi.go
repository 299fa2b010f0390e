package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/game"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Hunt API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Game state engine for the live scavenger hunt. " +
		"Participant identity is a transport-resolved bearer token.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health of the mirror store.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/register
	postRegister, _ := r.NewOperationContext(http.MethodPost, "/api/register")
	postRegister.SetSummary("Register a team")
	postRegister.SetDescription("Creates a team bound to the calling participant. Team names are unique.")
	postRegister.AddReqStructure(RegisterRequest{})
	postRegister.AddRespStructure(RegisterResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postRegister.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postRegister.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postRegister)

	// GET /api/game/begin
	getBegin, _ := r.NewOperationContext(http.MethodGet, "/api/game/begin")
	getBegin.SetSummary("Current question")
	getBegin.SetDescription("Returns the team's current question prompt. Requires Bearer participant ID.")
	getBegin.AddRespStructure(game.QuestionView{}, openapi.WithHTTPStatus(http.StatusOK))
	getBegin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(getBegin)

	// GET /api/game/status
	getStatus, _ := r.NewOperationContext(http.MethodGet, "/api/game/status")
	getStatus.SetSummary("Team status")
	getStatus.AddRespStructure(game.StatusView{}, openapi.WithHTTPStatus(http.StatusOK))
	getStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getStatus)

	// POST /api/game/location
	postLocation, _ := r.NewOperationContext(http.MethodPost, "/api/game/location")
	postLocation.SetSummary("Report location")
	postLocation.SetDescription("Records the team's coordinate; validated against the question geofence when enabled.")
	postLocation.AddReqStructure(LocationRequest{})
	postLocation.AddRespStructure(LocationResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(postLocation)

	// POST /api/game/hint
	postHint, _ := r.NewOperationContext(http.MethodPost, "/api/game/hint")
	postHint.SetSummary("Request a hint")
	postHint.SetDescription("Returns the next hint for the current question at a scoring penalty.")
	postHint.AddRespStructure(game.HintResult{}, openapi.WithHTTPStatus(http.StatusOK))
	postHint.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postHint)

	// POST /api/game/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/game/answer")
	postAnswer.SetSummary("Submit answer code")
	postAnswer.SetDescription("Checks the on-site code for the current question; wrong answers burn attempts.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(game.AnswerResult{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusPreconditionFailed))
	_ = r.AddOperation(postAnswer)

	// GET /api/scoreboard
	getBoard, _ := r.NewOperationContext(http.MethodGet, "/api/scoreboard")
	getBoard.SetSummary("Scoreboard")
	getBoard.AddRespStructure([]game.ScoreboardEntry{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getBoard)

	// GET /api/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of broadcasts and progress events. Pass the participant ID as the token query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with the admin password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/teams/{teamName}
	getWhere, _ := r.NewOperationContext(http.MethodGet, "/api/admin/teams/{teamName}")
	getWhere.SetSummary("Inspect a team")
	getWhere.SetDescription("Returns progression, score, last location and per-question history.")
	getWhere.AddReqStructure(struct {
		TeamName string `path:"teamName"`
	}{})
	getWhere.AddRespStructure(game.WhereView{}, openapi.WithHTTPStatus(http.StatusOK))
	getWhere.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getWhere.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(getWhere)

	// POST /api/admin/teams/{teamName}/force
	postForce, _ := r.NewOperationContext(http.MethodPost, "/api/admin/teams/{teamName}/force")
	postForce.SetSummary("Force-jump a team")
	postForce.SetDescription("Moves a team directly to the given question index, resetting attempts and hints.")
	postForce.AddReqStructure(struct {
		TeamName string `path:"teamName"`
	}{})
	postForce.AddReqStructure(ForceRequest{})
	postForce.AddRespStructure(ForceResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postForce.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postForce.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(postForce)

	// POST /api/admin/broadcast
	postBroadcast, _ := r.NewOperationContext(http.MethodPost, "/api/admin/broadcast")
	postBroadcast.SetSummary("Broadcast to all teams")
	postBroadcast.SetDescription("Pushes a message to every registered participant's event stream.")
	postBroadcast.AddReqStructure(BroadcastRequest{})
	postBroadcast.AddRespStructure(BroadcastResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postBroadcast.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(postBroadcast)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(spec)
	}
}
