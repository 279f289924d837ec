package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/imbris22/Chore-Buddy/internal/config"
	"github.com/imbris22/Chore-Buddy/internal/handlers"
	"github.com/imbris22/Chore-Buddy/internal/metrics"
	"github.com/imbris22/Chore-Buddy/internal/middleware"
	"github.com/imbris22/Chore-Buddy/internal/repository"
	"github.com/imbris22/Chore-Buddy/internal/services"
)

type Server struct {
	handler    http.Handler
	config     config.Config
	httpServer *http.Server
}

// New wires repositories, services and handlers onto a router. Metrics are
// registered with registry and served from it at /metrics.
func New(database *sql.DB, cfg config.Config, registry *prometheus.Registry) *Server {
	circleRepo := repository.NewCircleRepository(database)
	memberRepo := repository.NewMemberRepository(database)
	choreRepo := repository.NewChoreRepository(database)
	allocationRepo := repository.NewAllocationRepository(database)
	completionRepo := repository.NewCompletionRepository(database)
	historyRepo := repository.NewHistoryRepository(database)
	groceryRepo := repository.NewGroceryRepository(database)

	circleService := services.NewCircleService(
		circleRepo, memberRepo, choreRepo, allocationRepo, completionRepo, historyRepo, groceryRepo,
		metrics.NewPrometheus(registry),
		cfg.Location,
	)
	sessionService := services.NewSessionService(cfg.SessionSecret, memberRepo)

	circleHandler := handlers.NewCircleHandler(circleService, sessionService)
	choreHandler := handlers.NewChoreHandler(circleService)
	dashboardHandler := handlers.NewDashboardHandler(circleService)
	groceryHandler := handlers.NewGroceryHandler(circleService)
	icalHandler := handlers.NewICalHandler(circleService)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	router.Post("/circles", circleHandler.Create)
	router.Post("/circles/join", circleHandler.Join)
	router.Get("/circles/{code}/members/{memberID}/week.ics", icalHandler.WeekFeed)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireMember(sessionService))

		r.Post("/logout", circleHandler.Logout)
		r.Delete("/me", circleHandler.Leave)
		r.Get("/members", circleHandler.Members)

		r.Get("/board", dashboardHandler.Board)
		r.Post("/board/generate", dashboardHandler.Generate)
		r.Get("/history", dashboardHandler.History)
		r.Get("/profile", dashboardHandler.Profile)
		r.Get("/rankings", dashboardHandler.Rankings)

		r.Get("/chores", choreHandler.List)
		r.Post("/chores", choreHandler.Create)
		r.Put("/chores/{id}", choreHandler.Update)
		r.Post("/chores/{id}/complete", choreHandler.Complete)

		r.Get("/grocery", groceryHandler.List)
		r.Post("/grocery", groceryHandler.Add)
		r.Delete("/grocery/{id}", groceryHandler.Remove)
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(router)
	return &Server{
		handler:    handler,
		config:     cfg,
		httpServer: &http.Server{Addr: ":" + cfg.Port, Handler: handler},
	}
}

func (server *Server) Handler() http.Handler {
	return server.handler
}

func (server *Server) Start() error {
	slog.Info("starting server", "address", server.httpServer.Addr)
	if err := server.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (server *Server) Shutdown(ctx context.Context) error {
	return server.httpServer.Shutdown(ctx)
}
