package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vbonduro/vitrine/internal/assetstore"
	"github.com/vbonduro/vitrine/internal/auth"
	"github.com/vbonduro/vitrine/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Services are the application operations exposed over HTTP.
type Services struct {
	Accounts   *service.AccountService
	Categories *service.CategoryService
	Images     *service.ImageService
	Stats      *service.StatsService
}

type Options struct {
	CookieName     string
	CookieSecure   bool
	CORSOrigins    []string
	MaxUploadBytes int64
}

type Server struct {
	svc      Services
	sessions *auth.Sessions
	assets   assetstore.Opener
	opts     Options
	router   chi.Router
	logger   *slog.Logger
}

// NewServer builds the HTTP API. assets may be nil when uploaded files are
// hosted elsewhere, in which case /assets is not served.
func NewServer(svc Services, sessions *auth.Sessions, assets assetstore.Opener, opts Options, logger *slog.Logger) *Server {
	if opts.CookieName == "" {
		opts.CookieName = "auth_token"
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 20 << 20
	}
	s := &Server{
		svc:      svc,
		sessions: sessions,
		assets:   assets,
		opts:     opts,
		router:   chi.NewRouter(),
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(func(next http.Handler) http.Handler { return requestLogger(s.logger, next) })
	r.Use(securityHeaders)
	r.Use(middleware.Recoverer)
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)
	r.Get("/categories", s.handleListCategories)
	r.Get("/images", s.handleListImages)
	r.Patch("/images/{id}", s.handleIncrementViews)
	if s.assets != nil {
		r.Get("/assets/{key}", s.handleGetAsset)
	}

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/auth/session", s.handleSession)
		r.Post("/categories", s.handleCreateCategory)
		r.Delete("/categories/{id}", s.handleDeleteCategory)
		r.Post("/images", s.handleCreateImage)
		r.Delete("/images/{id}", s.handleDeleteImage)
		r.Get("/admin/stats", s.handleStats)
		r.Get("/admin/settings", s.handleGetSettings)
		r.Patch("/admin/settings", s.handleUpdateSettings)
		r.Put("/admin/settings", s.handleChangePassword)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

// securityHeaders sets browser hardening headers on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; img-src 'self'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
