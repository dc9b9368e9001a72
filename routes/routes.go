package routes

import (
	"net/http"
	"time"

	_ "github.com/Dosada05/gaming-portal/docs"
	"github.com/Dosada05/gaming-portal/handlers"
	"github.com/Dosada05/gaming-portal/middleware"
	"github.com/Dosada05/gaming-portal/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Event     *handlers.EventHandler
	Match     *handlers.MatchHandler
	Ranking   *handlers.RankingHandler
	Admin     *handlers.AdminHandler
	Dashboard *handlers.DashboardHandler
	WebSocket *handlers.WebSocketHandler
}

type Config struct {
	JWTSecret      string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func SetupRoutes(h Handlers, cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(cfg.JWTSecret)

	r.Get("/healthz", handlers.Healthz)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/ws/{room}", h.WebSocket.ServeWs)

	r.Group(func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(chiMiddleware.Timeout(cfg.RequestTimeout))
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.With(authenticate).Post("/logout", h.Auth.Logout)
		})

		r.Get("/rankings", h.Ranking.GetStandings)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.Event.ListEvents)
			r.Route("/{eventID}", func(r chi.Router) {
				r.Get("/", h.Event.GetEvent)
				r.Get("/matches", h.Event.GetEventMatches)

				r.Group(func(r chi.Router) {
					r.Use(authenticate)
					r.Post("/register", h.Event.RegisterForEvent)
					r.Delete("/register", h.Event.UnregisterFromEvent)
					r.Post("/matches/{matchID}/result", h.Match.RecordResult)
				})
			})
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", h.User.GetMe)
			r.Put("/", h.User.UpdateMe)
			r.Get("/events", h.User.ListMyEvents)
			r.Get("/notifications", h.User.ListMyNotifications)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Authorize(models.RoleAdmin))

			r.Get("/dashboard", h.Dashboard.GetStats)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.Admin.ListUsers)
				r.Post("/", h.Admin.CreateUser)
				r.Delete("/{userID}", h.Admin.DeleteUser)
				r.Put("/{userID}/star", h.Admin.SetStarPlayer)
				r.Put("/{userID}/admin", h.Admin.SetAdmin)
				r.Put("/{userID}/points", h.Admin.SetPoints)
				r.Post("/{userID}/points", h.Admin.AddPoints)
			})

			r.Post("/events", h.Admin.CreateEvent)
			r.Delete("/events/{eventID}", h.Admin.DeleteEvent)

			r.Post("/rankings/tiers", h.Admin.UpdateAllTiers)
			r.Post("/rankings/reset", h.Admin.ResetRanking)

			r.Get("/settings", h.Admin.GetSettings)
			r.Put("/settings", h.Admin.UpdateSettings)

			r.Post("/tick", h.Admin.Tick)
		})
	})

	return r
}
