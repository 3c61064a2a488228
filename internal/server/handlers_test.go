package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"curricularace/internal/auth"
)

func TestContentKeyDeterministic(t *testing.T) {
	a := contentKey([]byte("payload"))
	b := contentKey([]byte("payload"))
	if a != b {
		t.Errorf("contentKey() not deterministic: %q != %q", a, b)
	}
	if c := contentKey([]byte("other")); c == a {
		t.Error("contentKey() collided across different payloads")
	}
}

func TestHandleTokenExchangeIssuesTokenForValidKey(t *testing.T) {
	hash, err := auth.HashAPIKey("correct-horse")
	if err != nil {
		t.Fatalf("HashAPIKey() error = %v", err)
	}
	s := &Server{
		JWTSecret: []byte("test-secret"),
		APIKeys:   map[string]string{"acme": hash},
	}

	body, _ := json.Marshal(tokenRequest{ClientID: "acme", APIKey: "correct-horse"})
	req := httptest.NewRequest(http.MethodPost, "/v1/token", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleTokenExchange(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, err := auth.ParseToken(s.JWTSecret, resp.AccessToken); err != nil {
		t.Errorf("issued token failed to parse: %v", err)
	}
}

func TestHandleTokenExchangeRejectsWrongKey(t *testing.T) {
	hash, _ := auth.HashAPIKey("correct-horse")
	s := &Server{
		JWTSecret: []byte("test-secret"),
		APIKeys:   map[string]string{"acme": hash},
	}

	body, _ := json.Marshal(tokenRequest{ClientID: "acme", APIKey: "wrong-key"})
	req := httptest.NewRequest(http.MethodPost, "/v1/token", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleTokenExchange(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
