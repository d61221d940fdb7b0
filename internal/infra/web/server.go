package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-weather-notify/internal/domain/ports/adapter"
	"telegram-weather-notify/internal/infra/sched"
	"telegram-weather-notify/internal/usecase"
)

// Server is the operator-facing HTTP surface: liveness, metrics, and the
// read-mostly admin API (match preview, scheduler status, manual resend).
// End users never see it.
type Server struct {
	notifUC usecase.NotificationUseCase
	clock   adapter.Clock
	jobs    []sched.StatusReporter
	apiKey  string
	log     *zerolog.Logger
}

func NewServer(
	notifUC usecase.NotificationUseCase,
	clk adapter.Clock,
	jobs []sched.StatusReporter,
	apiKey string,
	logger *zerolog.Logger,
) *Server {
	compLog := logger.With().Str("component", "AdminAPI").Logger()
	return &Server{
		notifUC: notifUC,
		clock:   clk,
		jobs:    jobs,
		apiKey:  apiKey,
		log:     &compLog,
	}
}

// Router builds the chi routing tree. Admin routes sit behind bearer auth.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/preview", s.handlePreview)
		r.Get("/scheduler", s.handleScheduler)
		r.Post("/notify/{userID}", s.handleNotify)
	})

	return r
}

// authMiddleware provides simple Bearer token authentication for the admin API.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("Admin API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
			http.Error(w, "Unauthorized: Malformed token", http.StatusUnauthorized)
			return
		}

		if tokenParts[1] != s.apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
