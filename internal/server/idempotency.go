package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = 24 * time.Hour
	completionChan = "curricularace:job-completions"
)

// IdempotencyStore maps a submission's content hash to the job id it
// was first queued under, so a retried or duplicated submission returns
// the existing job instead of re-running the pipeline, and publishes a
// completion event other interested clients can subscribe to.
type IdempotencyStore struct {
	rdb *redis.Client
}

// NewIdempotencyStore parses redisURL and returns a store bound to it.
func NewIdempotencyStore(redisURL string) (*IdempotencyStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &IdempotencyStore{rdb: redis.NewClient(opt)}, nil
}

func idemKey(contentHash string) string {
	return "curricularace:submission:" + contentHash
}

// Lookup returns the job id already queued for contentHash, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, contentHash string) (jobID string, ok bool, err error) {
	val, err := s.rdb.Get(ctx, idemKey(contentHash)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Record associates contentHash with jobID for idempotencyTTL.
func (s *IdempotencyStore) Record(ctx context.Context, contentHash, jobID string) error {
	return s.rdb.Set(ctx, idemKey(contentHash), jobID, idempotencyTTL).Err()
}

type completionEvent struct {
	JobID   string `json:"job_id"`
	Success bool   `json:"success"`
}

// Publish announces a job's terminal state on the shared completion
// channel so any subscribed client can stop polling.
func (s *IdempotencyStore) Publish(ctx context.Context, jobID string, success bool) error {
	payload, err := json.Marshal(completionEvent{JobID: jobID, Success: success})
	if err != nil {
		return fmt.Errorf("marshal completion event: %w", err)
	}
	return s.rdb.Publish(ctx, completionChan, payload).Err()
}

// Subscribe returns a channel of raw completion-event payloads for
// callers that want to react to job completion without polling GET
// /jobs/{id}.
func (s *IdempotencyStore) Subscribe(ctx context.Context) <-chan *redis.Message {
	sub := s.rdb.Subscribe(ctx, completionChan)
	return sub.Channel()
}

// Close releases the underlying redis connection.
func (s *IdempotencyStore) Close() error {
	return s.rdb.Close()
}
