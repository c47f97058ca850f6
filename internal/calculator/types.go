package calculator

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Operand is a number sent either as a JSON number or as numeric text.
type Operand struct {
	Value float64
	Set   bool
}

func (o *Operand) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var raw json.Number
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = json.Number(strings.TrimSpace(s))
	} else {
		raw = json.Number(data)
	}

	v, err := strconv.ParseFloat(raw.String(), 64)
	if err != nil {
		return err
	}
	o.Value = v
	o.Set = true
	return nil
}

// CalculateRequest is the JSON body for POST /api/calculate.
type CalculateRequest struct {
	Left     Operand `json:"left"`
	Right    Operand `json:"right"`
	Operator string  `json:"operator"`
}

// CalculateResponse is the success body for POST /api/calculate. Left and
// Right echo the operands as decimal text.
type CalculateResponse struct {
	Status      string  `json:"status"`
	Left        string  `json:"left"`
	Right       string  `json:"right"`
	Operator    string  `json:"operator"`
	Result      float64 `json:"result"`
	EvaluatedAt string  `json:"evaluated_at"`
}

// TimeResponse is the body for GET /api/time.
type TimeResponse struct {
	ISO string `json:"iso"`
}
