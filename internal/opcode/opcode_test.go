package opcode_test

import (
	"testing"

	"github.com/mikegtech/insbridge-decoder/internal/opcode"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code int
		want opcode.Kind
	}{
		{0, opcode.Arithmetic},
		{1, opcode.NumericIf},
		{56, opcode.IfDate},
		{95, opcode.IsDate},
		{200, opcode.QueryDataSource},
		{254, opcode.SetUnderwritingToFail},
		{9999, opcode.Unknown},
		{-1, opcode.Unknown},
	}
	for _, tt := range tests {
		if got := opcode.Classify(tt.code); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestStringUnknown(t *testing.T) {
	if got := opcode.Kind(12345).String(); got != "UNKNOWN" {
		t.Errorf("String() for unregistered code = %q, want UNKNOWN", got)
	}
	if got := opcode.Arithmetic.String(); got != "ARITHMETIC" {
		t.Errorf("String() = %q, want ARITHMETIC", got)
	}
}

func TestIsMultiIfCandidate(t *testing.T) {
	for _, k := range []opcode.Kind{opcode.NumericIf, opcode.IfAllAll, opcode.IfDate} {
		if !opcode.IsMultiIfCandidate(k) {
			t.Errorf("IsMultiIfCandidate(%v) = false, want true", k)
		}
	}
	for _, k := range []opcode.Kind{opcode.Arithmetic, opcode.Call, opcode.StringConcat} {
		if opcode.IsMultiIfCandidate(k) {
			t.Errorf("IsMultiIfCandidate(%v) = true, want false", k)
		}
	}
}

func TestTokenizerStrategyForDefault(t *testing.T) {
	if got := opcode.TokenizerStrategyFor(opcode.Kind(9999)); got != opcode.StrategyDefault {
		t.Errorf("TokenizerStrategyFor(unregistered) = %v, want StrategyDefault", got)
	}
	if got := opcode.TokenizerStrategyFor(opcode.Call); got != opcode.StrategyScan {
		t.Errorf("TokenizerStrategyFor(Call) = %v, want StrategyScan", got)
	}
	if got := opcode.TokenizerStrategyFor(opcode.NumericIf); got != opcode.StrategyScan {
		t.Errorf("TokenizerStrategyFor(NumericIf) = %v, want StrategyScan", got)
	}
	if got := opcode.TokenizerStrategyFor(opcode.Arithmetic); got != opcode.StrategyScan {
		t.Errorf("TokenizerStrategyFor(Arithmetic) = %v, want StrategyScan", got)
	}
}

func TestParserStrategyForDefault(t *testing.T) {
	if got := opcode.ParserStrategyFor(opcode.Kind(9999)); got != opcode.ParseRaw {
		t.Errorf("ParserStrategyFor(unregistered) = %v, want ParseRaw", got)
	}
	if got := opcode.ParserStrategyFor(opcode.Arithmetic); got != opcode.ParseArithmetic {
		t.Errorf("ParserStrategyFor(Arithmetic) = %v, want ParseArithmetic", got)
	}
	if got := opcode.ParserStrategyFor(opcode.IsNumeric); got != opcode.ParseTypeCheck {
		t.Errorf("ParserStrategyFor(IsNumeric) = %v, want ParseTypeCheck", got)
	}
	if got := opcode.ParserStrategyFor(opcode.Empty); got != opcode.ParseNoop {
		t.Errorf("ParserStrategyFor(Empty) = %v, want ParseNoop", got)
	}
}
