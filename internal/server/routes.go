package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/game"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/metrics"
)

// Deps carries everything the routes need.
type Deps struct {
	Logger *slog.Logger
	Engine *game.Engine
	Broker *Broker
	Admin  *AdminAuth
	DB     *sql.DB
}

func addRoutes(r chi.Router, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Hunt API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(deps.Logger, deps.DB))
	r.Method("GET", "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", handleUsage())
		r.Post("/register", handleRegister(deps.Engine))
		r.Get("/scoreboard", handleScoreboard(deps.Engine))
		r.Get("/events", handleEvents(deps.Broker))

		r.Route("/game", func(r chi.Router) {
			r.Get("/begin", handleBegin(deps.Engine))
			r.Get("/status", handleStatus(deps.Engine))
			r.Post("/location", handleLocation(deps.Engine))
			r.Post("/hint", handleHint(deps.Engine))
			r.Post("/answer", handleAnswer(deps.Engine, deps.Broker))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", handleAdminLogin(deps.Admin))
			r.Post("/logout", handleAdminLogout(deps.Admin))

			r.Group(func(r chi.Router) {
				r.Use(adminOnly(deps.Admin))
				r.Get("/teams/{teamName}", handleAdminWhere(deps.Engine))
				r.Post("/teams/{teamName}/force", handleAdminForce(deps.Engine, deps.Broker))
				r.Post("/broadcast", handleAdminBroadcast(deps.Engine, deps.Broker))
			})
		})
	})
}
