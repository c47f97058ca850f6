package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"retrocalc/internal/engine"
	"retrocalc/internal/handlers"
	"retrocalc/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// now is swapped out by tests.
var now = time.Now

// Error messages returned to clients verbatim.
const (
	msgInvalidPayload = "Invalid calculation payload"
	msgDivideByZero   = "Cannot divide by zero."
	msgOverflow       = "overflow"
)

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// Calculate handles POST /api/calculate.
func Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.calculate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	// --- 1. Decode and validate ---
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", msgInvalidPayload, err, http.StatusBadRequest, w)
		return
	}

	if err := validate(req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", msgInvalidPayload, err, http.StatusBadRequest, w)
		return
	}

	op, ok := operations[req.Operator]
	if !ok {
		msg := fmt.Sprintf("Unsupported operator '%s'", req.Operator)
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", msg, errors.New(msg), http.StatusBadRequest, w)
		return
	}

	span.SetName(fmt.Sprintf("calculator.%s", op.name))
	span.SetAttributes(
		attribute.String("calculator.operation", op.name),
		attribute.String("calculator.operator", req.Operator),
		attribute.Float64("calculator.operand.left", req.Left.Value),
		attribute.Float64("calculator.operand.right", req.Right.Value),
	)

	// --- 2. Compute (timed for histogram) ---
	start := time.Now()
	result, err := op.compute(req.Left.Value, req.Right.Value)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	switch {
	case errors.Is(err, errDivideByZero):
		observability.RecordError(ctx, span, logger, errorCounter, op.name, msgDivideByZero, err, http.StatusBadRequest, w)
		return
	case err != nil:
		observability.RecordError(ctx, span, logger, errorCounter, op.name, err.Error(), err, http.StatusBadRequest, w)
		return
	case math.IsInf(result, 0) || math.IsNaN(result):
		err := fmt.Errorf("non-finite result %g %s %g", req.Left.Value, req.Operator, req.Right.Value)
		observability.RecordError(ctx, span, logger, errorCounter, op.name, msgOverflow, err, http.StatusBadRequest, w)
		return
	}

	// --- 3. Record metrics ---
	attrs := metric.WithAttributes(attribute.String("operation", op.name))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", op.name),
		zap.Float64("left", req.Left.Value),
		zap.Float64("right", req.Right.Value),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	// --- 4. Write JSON response ---
	handlers.WriteJSON(w, http.StatusOK, CalculateResponse{
		Status:      "ok",
		Left:        engine.FormatNumber(req.Left.Value),
		Right:       engine.FormatNumber(req.Right.Value),
		Operator:    req.Operator,
		Result:      result,
		EvaluatedAt: now().UTC().Format(time.RFC3339Nano),
	})
}

// Time handles GET /api/time, the source of the live clock.
func Time(w http.ResponseWriter, r *http.Request) {
	clockReads.Add(r.Context(), 1)
	handlers.WriteJSON(w, http.StatusOK, TimeResponse{
		ISO: now().UTC().Format(time.RFC3339Nano),
	})
}

func validate(req CalculateRequest) error {
	if !req.Left.Set || !req.Right.Set {
		return errors.New("left and right operands are required")
	}
	if req.Operator == "" {
		return errors.New("operator is required")
	}
	for _, v := range []float64{req.Left.Value, req.Right.Value} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite operand %g", v)
		}
	}
	return nil
}
