// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: New opens the store and builds
// store → services → handlers → routes in one place. Nothing else in the
// codebase constructs a service or a handler.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/starwars-api/internal/handler"
	"github.com/sakif/starwars-api/internal/middleware"
	"github.com/sakif/starwars-api/internal/password"
	"github.com/sakif/starwars-api/internal/repository/sqlstore"
	"github.com/sakif/starwars-api/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port int
	DSN  string // SQLite path or postgres:// URL

	// PasswordCost is the bcrypt cost for new users; 0 means
	// password.DefaultCost.
	PasswordCost int
}

// Server owns the router and the database handle. The handle is closed by
// Start on shutdown, or by Close when Start is never called.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqlstore.DB
}

// New opens (and migrates) the store and wires every route.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqlstore.New(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures middleware and routes.
//
//	GET    /                         → route listing (JSON)
//	GET    /healthz                  → store health
//	GET    /users                    → list users
//	POST   /users                    → register
//	GET    /users/favorites          → favorites of a user
//	GET    /people                   → list people
//	POST   /people                   → create person
//	GET    /people/{id}              → get person
//	GET    /planets                  → list planets
//	POST   /planets                  → create planet
//	GET    /planets/{id}             → get planet
//	POST   /favorite/people/{id}     → add favorite person
//	DELETE /favorite/people/{id}     → remove favorite person
//	POST   /favorite/planet/{id}     → add favorite planet
//	DELETE /favorite/planet/{id}     → remove favorite planet
//
// {id} only matches digits; anything else falls through to a 404.
//
// Middleware runs in the order added. RequestID must precede Logger so each
// log line carries the id.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.StripSlashes)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.MethodNotAllowed)

	cost := s.config.PasswordCost
	if cost == 0 {
		cost = password.DefaultCost
	}

	userService := service.NewUserService(s.db, password.NewHasherWithCost(cost), s.logger)
	personService := service.NewPersonService(s.db, s.logger)
	planetService := service.NewPlanetService(s.db, s.logger)
	favoriteService := service.NewFavoriteService(s.db, s.logger)

	users := handler.NewUserHandler(userService, s.logger)
	people := handler.NewPersonHandler(personService, s.logger)
	planets := handler.NewPlanetHandler(planetService, s.logger)
	favorites := handler.NewFavoriteHandler(favoriteService, s.logger)
	health := handler.NewHealthHandler(s.db, s.logger)
	sitemap := handler.NewSitemapHandler(s.router, s.logger)

	s.router.Get("/", sitemap.HandleSitemap)
	s.router.Get("/healthz", health.HandleHealth)

	s.router.Route("/users", func(r chi.Router) {
		r.Get("/", users.HandleList)
		r.Post("/", users.HandleRegister)
		r.Get("/favorites", favorites.HandleList)
	})

	s.router.Route("/people", func(r chi.Router) {
		r.Get("/", people.HandleList)
		r.Post("/", people.HandleCreate)
		r.Get("/{id:[0-9]+}", people.HandleGet)
	})

	s.router.Route("/planets", func(r chi.Router) {
		r.Get("/", planets.HandleList)
		r.Post("/", planets.HandleCreate)
		r.Get("/{id:[0-9]+}", planets.HandleGet)
	})

	s.router.Route("/favorite", func(r chi.Router) {
		r.Post("/people/{id:[0-9]+}", favorites.HandleAddPerson)
		r.Delete("/people/{id:[0-9]+}", favorites.HandleRemovePerson)
		r.Post("/planet/{id:[0-9]+}", favorites.HandleAddPlanet)
		r.Delete("/planet/{id:[0-9]+}", favorites.HandleRemovePlanet)
	})
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database handle.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for
// up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.db.Dialect().String()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
