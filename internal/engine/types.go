package engine

import (
	"fmt"
	"math"
	"strconv"
)

// Operator is one of the four arithmetic keys. The zero value means no
// operator is pending.
type Operator string

const (
	OpNone     Operator = ""
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "×"
	OpDivide   Operator = "÷"
)

// ParseOperator maps a key symbol to an Operator. The ASCII spellings
// "*", "x" and "/" are accepted for multiply and divide.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-":
		return OpSubtract, true
	case "×", "*", "x":
		return OpMultiply, true
	case "÷", "/":
		return OpDivide, true
	}
	return OpNone, false
}

func (o Operator) String() string { return string(o) }

// Operation line texts shown next to the entry.
const (
	OperationReady = "Ready"
	OperationError = "Error"
)

// Request is the payload sent to the calculation service.
type Request struct {
	Left     string
	Right    string
	Operator Operator
}

// Result is a successful calculation as reported by the service. Left,
// Operator and Right are the service's own echo of the request.
type Result struct {
	Value       float64
	Left        string
	Operator    string
	Right       string
	EvaluatedAt string
}

// Text is the result as it appears in the entry buffer.
func (r Result) Text() string { return FormatNumber(r.Value) }

// LogLine is the history line recorded for a successful calculation.
func (r Result) LogLine() string {
	return fmt.Sprintf("%s %s %s = %s (%s)", r.Left, r.Operator, r.Right, r.Text(), r.EvaluatedAt)
}

// FormatNumber renders v as the shortest plain decimal literal that parses
// back to v. Negative zero renders as "0".
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
