// Package server exposes the analyze operation over HTTP: a client
// submits a curriculum CSV, gets back a job id, and polls the job's status
// and output file paths until it finishes.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"curricularace/internal/auth"
	"curricularace/internal/jobstore"
)

// Server holds the dependencies every route handler needs.
type Server struct {
	Jobs      *jobstore.Store
	Idem      *IdempotencyStore
	JWTSecret []byte
	APIKeys   map[string]string // clientID -> bcrypt hash
	Log       zerolog.Logger
	Runner    JobRunner
}

// JobRunner executes one submitted curriculum file and reports the
// resulting output paths, or an error message on failure. The server
// package never touches the pipeline directly — it hands off to
// whatever batch.Run-backed runner main() wires in, keeping this
// package free of a dependency on internal/batch.
type JobRunner func(jobID string, csvBytes []byte) (metricsPath, reportPath string, err error)

// NewRouter builds the chi router with the full middleware chain and
// mounts every endpoint under /v1.
func (s *Server) NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/token", s.handleTokenExchange)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/jobs", s.handleSubmit)
		r.Get("/jobs/{id}", s.handleGetJob)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(rw, r)
		s.Log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("req_id", chimw.GetReqID(r.Context())).
			Int("status", rw.Status()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// authenticate accepts only a bearer JWT, as issued by POST /v1/token in
// exchange for a client-id/API-key pair, and rejects a token whose client
// id is not in APIKeys.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			http.Error(w, `{"error":"missing bearer token"}`, http.StatusUnauthorized)
			return
		}
		token := header[len(prefix):]
		claims, err := auth.ParseToken(s.JWTSecret, token)
		if err != nil {
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		if _, ok := s.APIKeys[claims.ClientID]; !ok {
			http.Error(w, `{"error":"unknown client"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok","service":"curricularace"}`))
}
