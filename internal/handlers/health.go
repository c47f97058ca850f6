package handlers

import (
	"net/http"
	"time"
)

// Health is the plain-text liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// HealthzResponse is the body of GET /healthz.
type HealthzResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// Healthz reports liveness together with the server time, for uptime checks.
func Healthz(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthzResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339Nano),
	})
}
