// Package apiclient talks to the calculation and clock endpoints of the
// retrocalc API over HTTP/JSON.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"retrocalc/internal/engine"
)

const (
	calculatePath = "/api/calculate"
	timePath      = "/api/time"

	// DefaultBaseURL is where cmd/api listens by default.
	DefaultBaseURL = "http://localhost:8080"

	defaultTimeout = 10 * time.Second

	genericCalculationFailure = "Calculation failed"
)

// CalculationError is a calculation the service refused or could not
// answer. Message is shown to the user verbatim.
type CalculationError struct {
	StatusCode int
	Message    string
}

func (e *CalculationError) Error() string { return e.Message }

// Client is an API client. It satisfies engine.Calculator and clock.Source.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type calculateRequest struct {
	Left     string `json:"left"`
	Right    string `json:"right"`
	Operator string `json:"operator"`
}

type calculateResponse struct {
	Status      string   `json:"status"`
	Result      *float64 `json:"result"`
	Left        operand  `json:"left"`
	Operator    string   `json:"operator"`
	Right       operand  `json:"right"`
	EvaluatedAt string   `json:"evaluated_at"`
	Message     string   `json:"message"`
}

// operand accepts an operand echoed either as text or as a JSON number.
type operand string

func (o *operand) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = operand(s)
		return nil
	}
	if string(data) == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("operand %s: %w", data, err)
	}
	*o = operand(engine.FormatNumber(v))
	return nil
}

// Calculate posts req to /api/calculate. Any non-2xx status or non-ok body
// yields a *CalculationError; transport failures are returned wrapped.
func (c *Client) Calculate(ctx context.Context, req engine.Request) (engine.Result, error) {
	body, err := json.Marshal(calculateRequest{
		Left:     req.Left,
		Right:    req.Right,
		Operator: req.Operator.String(),
	})
	if err != nil {
		return engine.Result{}, fmt.Errorf("encode calculation: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+calculatePath, bytes.NewReader(body))
	if err != nil {
		return engine.Result{}, fmt.Errorf("build calculation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return engine.Result{}, fmt.Errorf("calculate: %w", err)
	}
	defer resp.Body.Close()

	var payload calculateResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	c.logger.Debug("calculation response",
		zap.Int("status_code", resp.StatusCode),
		zap.String("status", payload.Status),
		zap.Duration("duration", time.Since(start)),
	)

	if !isSuccess(resp.StatusCode) || decodeErr != nil || payload.Status != "ok" || payload.Result == nil {
		msg := payload.Message
		if msg == "" {
			msg = genericCalculationFailure
		}
		return engine.Result{}, &CalculationError{StatusCode: resp.StatusCode, Message: msg}
	}

	return engine.Result{
		Value:       *payload.Result,
		Left:        string(payload.Left),
		Operator:    payload.Operator,
		Right:       string(payload.Right),
		EvaluatedAt: payload.EvaluatedAt,
	}, nil
}

type timeResponse struct {
	ISO string `json:"iso"`
}

// Time fetches the server clock from /api/time.
func (c *Client) Time(ctx context.Context) (time.Time, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+timePath, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("build time request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return time.Time{}, fmt.Errorf("fetch time: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return time.Time{}, fmt.Errorf("fetch time: unexpected status %d", resp.StatusCode)
	}

	var payload timeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return time.Time{}, fmt.Errorf("decode time: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, payload.ISO)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", payload.ISO, err)
	}
	return t, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
