package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWriteErrorWritesStandardizedJSON(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "something went wrong")

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}

	if got := body["status"]; got != "error" {
		t.Fatalf("expected status %q, got %q", "error", got)
	}

	if got := body["message"]; got != "something went wrong" {
		t.Fatalf("expected message %q, got %q", "something went wrong", got)
	}

	if _, ok := body["request_id"]; ok {
		t.Fatal("did not expect request_id field in JSON body")
	}
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()

	Healthz(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body HealthzResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}

	if body.Status != "ok" {
		t.Fatalf("expected status %q, got %q", "ok", body.Status)
	}

	if _, err := time.Parse(time.RFC3339Nano, body.Time); err != nil {
		t.Fatalf("expected RFC 3339 time, got %q: %v", body.Time, err)
	}
}
