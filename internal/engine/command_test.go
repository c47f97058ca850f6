package engine

import (
	"reflect"
	"testing"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		action string
		want   Command
		ok     bool
	}{
		{name: "digit", value: "7", want: DigitKey("7"), ok: true},
		{name: "dot", value: ".", want: DigitKey("."), ok: true},
		{name: "plus", value: "+", want: OperatorKey(OpAdd), ok: true},
		{name: "minus", value: "-", want: OperatorKey(OpSubtract), ok: true},
		{name: "times", value: "×", want: OperatorKey(OpMultiply), ok: true},
		{name: "divide", value: "÷", want: OperatorKey(OpDivide), ok: true},
		{name: "equals", action: "equals", want: Equals, ok: true},
		{name: "clear", action: "clear", want: Clear, ok: true},
		{name: "sign", action: "sign", want: Sign, ok: true},
		{name: "percent", action: "percent", want: Percent, ok: true},
		{name: "unknown action", action: "sqrt", ok: false},
		{name: "unknown value", value: "?", ok: false},
		{name: "empty", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DecodeKey(tc.value, tc.action)
			if ok != tc.ok {
				t.Fatalf("expected ok=%t, got %t", tc.ok, ok)
			}
			if ok && got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseKeys(t *testing.T) {
	got, err := ParseKeys("12 × 3 = n % c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Command{
		DigitKey("1"), DigitKey("2"), OperatorKey(OpMultiply), DigitKey("3"),
		Equals, Sign, Percent, Clear,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseKeysASCIIOperators(t *testing.T) {
	got, err := ParseKeys("8/2*3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[1] != OperatorKey(OpDivide) || got[3] != OperatorKey(OpMultiply) {
		t.Fatalf("unexpected commands %v", got)
	}
}

func TestParseKeysRejectsUnknownKey(t *testing.T) {
	if _, err := ParseKeys("3+q"); err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}

func TestCommandString(t *testing.T) {
	if got := OperatorKey(OpAdd).String(); got != "operator +" {
		t.Fatalf("expected %q, got %q", "operator +", got)
	}
	if got := Equals.String(); got != "equals" {
		t.Fatalf("expected %q, got %q", "equals", got)
	}
}
