package calculator

import (
	"net/http"
	"testing"
	"time"

	"retrocalc/internal/observability"
	"retrocalc/internal/testutil"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	oldNow := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = oldNow })

	r := chi.NewRouter()
	RegisterRoutes(r)
	return r
}

func TestCalculateSuccess(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		result float64
		left   string
		right  string
		op     string
	}{
		{name: "add strings", body: `{"left":"3","right":"4","operator":"+"}`, result: 7, left: "3", right: "4", op: "+"},
		{name: "add numbers", body: `{"left":5,"right":7,"operator":"+"}`, result: 12, left: "5", right: "7", op: "+"},
		{name: "subtract", body: `{"left":"1.5","right":"2","operator":"-"}`, result: -0.5, left: "1.5", right: "2", op: "-"},
		{name: "multiply symbol", body: `{"left":"6","right":"7","operator":"×"}`, result: 42, left: "6", right: "7", op: "×"},
		{name: "multiply ascii", body: `{"left":"6","right":"7","operator":"*"}`, result: 42, left: "6", right: "7", op: "*"},
		{name: "divide symbol", body: `{"left":"1","right":"4","operator":"÷"}`, result: 0.25, left: "1", right: "4", op: "÷"},
		{name: "divide ascii", body: `{"left":"-9","right":"3","operator":"/"}`, result: -3, left: "-9", right: "3", op: "/"},
		{name: "trailing dot", body: `{"left":"5.","right":"0.","operator":"+"}`, result: 5, left: "5", right: "0", op: "+"},
	}

	router := newTestRouter(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.PostJSON(router, "/api/calculate", tc.body)
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var resp CalculateResponse
			testutil.DecodeJSONBody(t, w.Body, &resp)

			want := CalculateResponse{
				Status:      "ok",
				Left:        tc.left,
				Right:       tc.right,
				Operator:    tc.op,
				Result:      tc.result,
				EvaluatedAt: "2024-01-01T00:00:00Z",
			}
			if resp != want {
				t.Fatalf("expected %+v, got %+v", want, resp)
			}
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "malformed json", body: `{"left":`, message: "Invalid calculation payload"},
		{name: "missing right", body: `{"left":"1","operator":"+"}`, message: "Invalid calculation payload"},
		{name: "null operand", body: `{"left":null,"right":"1","operator":"+"}`, message: "Invalid calculation payload"},
		{name: "non numeric operand", body: `{"left":"abc","right":"1","operator":"+"}`, message: "Invalid calculation payload"},
		{name: "non finite operand", body: `{"left":"Inf","right":"1","operator":"+"}`, message: "Invalid calculation payload"},
		{name: "missing operator", body: `{"left":"1","right":"1"}`, message: "Invalid calculation payload"},
		{name: "unsupported operator", body: `{"left":1,"right":1,"operator":"invalid"}`, message: "Unsupported operator 'invalid'"},
		{name: "divide by zero", body: `{"left":"1","right":"0","operator":"÷"}`, message: "Cannot divide by zero."},
		{name: "overflow", body: `{"left":"1e308","right":"10","operator":"×"}`, message: "overflow"},
	}

	router := newTestRouter(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.PostJSON(router, "/api/calculate", tc.body)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)

			if body["status"] != "error" {
				t.Fatalf("expected status %q, got %q", "error", body["status"])
			}
			if body["message"] != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, body["message"])
			}
		})
	}
}

func TestCalculateLogsCompletion(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })

	router := newTestRouter(t)
	w := testutil.PostJSON(router, "/api/calculate", `{"left":"2","right":"3","operator":"×"}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	entries := logs.FilterMessage("calculator operation completed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 completion log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["operation"] != "multiply" {
		t.Fatalf("expected operation %q, got %#v", "multiply", fields["operation"])
	}
	if fields["result"] != float64(6) {
		t.Fatalf("expected result 6, got %#v", fields["result"])
	}
}

func TestTime(t *testing.T) {
	router := newTestRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/time", nil)
	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp TimeResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if resp.ISO != "2024-01-01T00:00:00Z" {
		t.Fatalf("expected iso %q, got %q", "2024-01-01T00:00:00Z", resp.ISO)
	}
}
