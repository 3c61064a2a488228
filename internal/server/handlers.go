package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"curricularace/internal/auth"
)

type tokenRequest struct {
	ClientID string `json:"client_id"`
	APIKey   string `json:"api_key"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// handleTokenExchange trades a client id and its raw API key for a
// short-lived bearer JWT, the other half of the flow authenticate
// expects clients to have already completed.
func (s *Server) handleTokenExchange(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 4<<10)).Decode(&req); err != nil {
		http.Error(w, `{"error":"malformed request body"}`, http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	hash, ok := s.APIKeys[req.ClientID]
	if !ok || !auth.VerifyAPIKey(hash, req.APIKey) {
		http.Error(w, `{"error":"invalid client_id or api_key"}`, http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateAccessToken(s.JWTSecret, req.ClientID)
	if err != nil {
		http.Error(w, `{"error":"issuing token"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

type submitResponse struct {
	JobID string `json:"job_id"`
}

type jobResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	MetricsPath string `json:"metrics_path,omitempty"`
	ReportPath  string `json:"report_path,omitempty"`
	Error       string `json:"error,omitempty"`
}

// handleSubmit accepts a raw curriculum CSV body, dedupes it against an
// in-flight or recently-completed submission with the same content via
// the idempotency store, and otherwise queues a fresh job.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 16<<20))
	if err != nil {
		http.Error(w, `{"error":"reading body"}`, http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	key := contentKey(body)
	ctx := r.Context()

	if existingID, ok, err := s.Idem.Lookup(ctx, key); err == nil && ok {
		writeJSON(w, http.StatusAccepted, submitResponse{JobID: existingID})
		return
	}

	jobID := uuid.NewString()
	if err := s.Jobs.Create(ctx, jobID); err != nil {
		http.Error(w, `{"error":"creating job"}`, http.StatusInternalServerError)
		return
	}
	if err := s.Idem.Record(ctx, key, jobID); err != nil {
		s.Log.Warn().Err(err).Msg("idempotency record failed, continuing")
	}

	go s.run(jobID, body)

	writeJSON(w, http.StatusAccepted, submitResponse{JobID: jobID})
}

func (s *Server) run(jobID string, csvBytes []byte) {
	ctx := context.Background()
	if err := s.Jobs.SetRunning(ctx, jobID); err != nil {
		s.Log.Error().Err(err).Str("job_id", jobID).Msg("mark running failed")
	}

	metricsPath, reportPath, runErr := s.Runner(jobID, csvBytes)

	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
	}
	if err := s.Jobs.Finish(ctx, jobID, metricsPath, reportPath, errMsg); err != nil {
		s.Log.Error().Err(err).Str("job_id", jobID).Msg("finish job failed")
	}
	if err := s.Idem.Publish(ctx, jobID, errMsg == ""); err != nil {
		s.Log.Warn().Err(err).Msg("publish completion failed")
	}
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := s.Jobs.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"job not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, jobResponse{
		ID:          job.ID,
		Status:      string(job.Status),
		MetricsPath: job.MetricsPath,
		ReportPath:  job.ReportPath,
		Error:       job.Error,
	})
}

func contentKey(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
