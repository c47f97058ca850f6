package engine

import (
	"math"
	"strconv"
	"strings"
)

const initialBuffer = "0"

// State is the whole input engine: the entry buffer, the pending operation
// and the reset-on-digit flag. Transitions are value methods without side
// effects; Engine applies them and drives the sinks.
type State struct {
	Buffer       string
	Stored       string
	Operator     Operator
	ResetOnDigit bool
}

// NewState returns the state after a clear.
func NewState() State {
	return State{Buffer: initialBuffer}
}

// Pending reports whether an operator and stored operand are queued.
func (s State) Pending() bool {
	return s.Operator != OpNone
}

// PushDigit appends a digit or decimal point to the buffer. Anything other
// than "0"-"9" or "." is ignored, as is a second decimal point.
func (s State) PushDigit(d string) State {
	if !isDigitKey(d) {
		return s
	}

	if s.ResetOnDigit {
		if d == "." {
			s.Buffer = "0."
		} else {
			s.Buffer = d
		}
		s.ResetOnDigit = false
		return s
	}

	if d == "." && strings.Contains(s.Buffer, ".") {
		return s
	}

	if s.Buffer == initialBuffer && d != "." {
		s.Buffer = d
	} else {
		s.Buffer += d
	}
	return s
}

// ApplySign flips the sign of the buffer. "0" has no sign.
func (s State) ApplySign() State {
	switch {
	case strings.HasPrefix(s.Buffer, "-"):
		s.Buffer = s.Buffer[1:]
	case s.Buffer != initialBuffer:
		s.Buffer = "-" + s.Buffer
	}
	return s
}

// ApplyPercent divides the buffer by 100. The second return value is false
// when the buffer does not hold a finite number, in which case s is returned
// unchanged.
func (s State) ApplyPercent() (State, bool) {
	v, err := strconv.ParseFloat(s.Buffer, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return s, false
	}
	s.Buffer = FormatNumber(v / 100)
	return s, true
}

// InstallOperator stores the buffer as the left operand of op.
func (s State) InstallOperator(op Operator) State {
	s.Stored = s.Buffer
	s.Operator = op
	s.ResetOnDigit = true
	return s
}

// Request builds the calculation for the pending operation.
func (s State) Request() (Request, bool) {
	if !s.Pending() {
		return Request{}, false
	}
	return Request{Left: s.Stored, Right: s.Buffer, Operator: s.Operator}, true
}

// Resolved applies a successful calculation.
func (s State) Resolved(r Result) State {
	s.Buffer = r.Text()
	s.Stored = ""
	s.Operator = OpNone
	s.ResetOnDigit = true
	return s
}

// Failed applies a failed calculation. The pending operation is kept, so a
// later equals retries the same operands.
func (s State) Failed() State {
	s.ResetOnDigit = true
	return s
}

// OperationLine renders the pending operation, e.g. "3 +".
func (s State) OperationLine() string {
	if !s.Pending() {
		return OperationReady
	}
	return s.Stored + " " + s.Operator.String()
}

func isDigitKey(d string) bool {
	if d == "." {
		return true
	}
	return len(d) == 1 && d[0] >= '0' && d[0] <= '9'
}
