package calculator

import "errors"

var errDivideByZero = errors.New("division by zero")

// operation is one entry of the operator table. name labels spans and
// metrics.
type operation struct {
	name    string
	compute func(a, b float64) (float64, error)
}

func add(a, b float64) (float64, error)      { return a + b, nil }
func subtract(a, b float64) (float64, error) { return a - b, nil }
func multiply(a, b float64) (float64, error) { return a * b, nil }

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errDivideByZero
	}
	return a / b, nil
}

// operations maps every accepted operator symbol, including the ASCII
// spellings of multiply and divide.
var operations = map[string]operation{
	"+": {name: "add", compute: add},
	"-": {name: "subtract", compute: subtract},
	"×": {name: "multiply", compute: multiply},
	"*": {name: "multiply", compute: multiply},
	"÷": {name: "divide", compute: divide},
	"/": {name: "divide", compute: divide},
}
