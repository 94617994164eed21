// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: every dependency - database, token and
// password services, repositories, services, handlers - is wired together
// in New, in one place. Handlers never touch the database; services never
// touch HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/photoapp/photoapp/internal/auth"
	"github.com/photoapp/photoapp/internal/config"
	"github.com/photoapp/photoapp/internal/handler"
	"github.com/photoapp/photoapp/internal/middleware"
	sqliteRepo "github.com/photoapp/photoapp/internal/repository/sqlite"
	"github.com/photoapp/photoapp/internal/service"
)

// Server owns the router and the database connection. The DB is closed
// during graceful shutdown so the WAL is flushed and the file lock released.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// Each layer only receives what it needs; the config struct is consumed
// here and never read again.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and all route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /register                          public
//	POST   /login                             public
//	POST   /refresh                           public (refresh token as bearer)
//	GET    /profile                           bearer-authenticated
//	PATCH  /profile                           bearer-authenticated
//	GET    /albums                            bearer-authenticated
//	POST   /albums                            bearer-authenticated
//	GET    /albums/{albumId}                  bearer-authenticated
//	PATCH  /albums/{albumId}                  bearer-authenticated
//	DELETE /albums/{albumId}                  bearer-authenticated
//	POST   /albums/{albumId}/photos           bearer-authenticated
//	DELETE /albums/{albumId}/photos/{photoId} bearer-authenticated
//	GET    /photos                            bearer-authenticated
//	POST   /photos                            bearer-authenticated
//	GET    /photos/{photoId}                  bearer-authenticated
//	PATCH  /photos/{photoId}                  bearer-authenticated
//	DELETE /photos/{photoId}                  bearer-authenticated
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(
		s.config.AccessTokenSecret,
		s.config.RefreshTokenSecret,
		s.config.AccessTokenLifetime,
		s.config.RefreshTokenLifetime,
	)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.config.SaltRounds)

	users := sqliteRepo.NewUserRepo(s.db)
	albums := sqliteRepo.NewAlbumRepo(s.db)
	photos := sqliteRepo.NewPhotoRepo(s.db)

	authService := service.NewAuthService(users, tokens, passwords, s.logger)
	profileService := service.NewProfileService(users, passwords, s.logger)
	albumService := service.NewAlbumService(albums, photos, s.logger)
	photoService := service.NewPhotoService(photos, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, s.logger)
	albumHandler := handler.NewAlbumHandler(albumService, s.logger)
	photoHandler := handler.NewPhotoHandler(photoService, s.logger)

	s.router.Get("/", handler.HandleRoot)
	s.router.NotFound(handler.HandleNotFound)

	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Post("/refresh", authHandler.HandleRefresh)

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/profile", profileHandler.HandleGet)
		r.Patch("/profile", profileHandler.HandleUpdate)

		r.Get("/albums", albumHandler.HandleList)
		r.Post("/albums", albumHandler.HandleCreate)
		r.Get("/albums/{albumId}", albumHandler.HandleGet)
		r.Patch("/albums/{albumId}", albumHandler.HandleUpdate)
		r.Delete("/albums/{albumId}", albumHandler.HandleDelete)
		r.Post("/albums/{albumId}/photos", albumHandler.HandleAddPhotos)
		r.Delete("/albums/{albumId}/photos/{photoId}", albumHandler.HandleRemovePhoto)

		r.Get("/photos", photoHandler.HandleList)
		r.Post("/photos", photoHandler.HandleCreate)
		r.Get("/photos/{photoId}", photoHandler.HandleGet)
		r.Patch("/photos/{photoId}", photoHandler.HandleUpdate)
		r.Delete("/photos/{photoId}", photoHandler.HandleDelete)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database.
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

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
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
