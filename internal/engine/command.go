package engine

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind identifies what a key press asks the engine to do.
type Kind int

const (
	KindDigit Kind = iota + 1
	KindOperator
	KindEquals
	KindClear
	KindSign
	KindPercent
)

var kindNames = map[Kind]string{
	KindDigit:    "digit",
	KindOperator: "operator",
	KindEquals:   "equals",
	KindClear:    "clear",
	KindSign:     "sign",
	KindPercent:  "percent",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is a decoded key press.
type Command struct {
	Kind     Kind
	Digit    string
	Operator Operator
}

// Named actions.
var (
	Equals  = Command{Kind: KindEquals}
	Clear   = Command{Kind: KindClear}
	Sign    = Command{Kind: KindSign}
	Percent = Command{Kind: KindPercent}
)

// DigitKey returns the command for a digit or decimal point key.
func DigitKey(d string) Command {
	return Command{Kind: KindDigit, Digit: d}
}

// OperatorKey returns the command for an operator key.
func OperatorKey(op Operator) Command {
	return Command{Kind: KindOperator, Operator: op}
}

func (c Command) String() string {
	switch c.Kind {
	case KindDigit:
		return "digit " + c.Digit
	case KindOperator:
		return "operator " + c.Operator.String()
	}
	return c.Kind.String()
}

// DecodeKey maps a keypad button to a command. A non-empty value is an
// operator symbol or a digit; otherwise action names equals, clear, sign or
// percent. Unrecognized keys report false.
func DecodeKey(value, action string) (Command, bool) {
	if value != "" {
		switch value {
		case "+", "-", "×", "÷":
			op, _ := ParseOperator(value)
			return OperatorKey(op), true
		}
		if isDigitKey(value) {
			return DigitKey(value), true
		}
		return Command{}, false
	}

	switch action {
	case "equals":
		return Equals, true
	case "clear":
		return Clear, true
	case "sign":
		return Sign, true
	case "percent":
		return Percent, true
	}
	return Command{}, false
}

// ParseKeys decodes a typed key sequence such as "3+4=" or "12 × 3 =".
// Besides digits and operators it understands "=" for equals, "c" for clear,
// "n" or "±" for sign and "%" for percent. Whitespace is skipped.
func ParseKeys(s string) ([]Command, error) {
	var cmds []Command
	for i, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		key := string(r)
		if isDigitKey(key) {
			cmds = append(cmds, DigitKey(key))
			continue
		}
		if op, ok := ParseOperator(key); ok {
			cmds = append(cmds, OperatorKey(op))
			continue
		}
		switch strings.ToLower(key) {
		case "=":
			cmds = append(cmds, Equals)
		case "c":
			cmds = append(cmds, Clear)
		case "n", "±":
			cmds = append(cmds, Sign)
		case "%":
			cmds = append(cmds, Percent)
		default:
			return nil, fmt.Errorf("unknown key %q at offset %d", key, i)
		}
	}
	return cmds, nil
}
