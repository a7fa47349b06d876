package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"true", BoolValue(true), "true"},
		{"false", BoolValue(false), "false"},
		{"null", NullValue(), "null"},
		{"int", IntValue(587), "587"},
		{"negative int", IntValue(-42), "-42"},
		{"float", FloatValue(0.5), "0.5"},
		{"integral float keeps decimal point", FloatValue(1), "1.0"},
		{"plain string", StringValue("imap.example.com"), "imap.example.com"},
		{"empty string quoted", StringValue(""), `""`},
		{"numeric string quoted", StringValue("587"), `"587"`},
		{"reserved word quoted", StringValue("true"), `"true"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatScalar(tt.value))
		})
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare hostname", "imap.example.com", "imap.example.com"},
		{"bare email", "user.name_x", "user.name_x"},
		{"empty", "", `""`},
		{"leading space", " x", `" x"`},
		{"trailing space", "x ", `"x "`},
		{"reserved yes", "yes", `"yes"`},
		{"reserved YES uppercase", "YES", `"YES"`},
		{"reserved off", "off", `"off"`},
		{"colon", "a:b", `"a:b"`},
		{"hash", "a#b", `"a#b"`},
		{"at sign", "user@example.com", `"user@example.com"`},
		{"comma", "a,b", `"a,b"`},
		{"float lookalike", "1.5", `"1.5"`},
		{"int lookalike", "42", `"42"`},
		{"exponent lookalike", "1e3", `"1e3"`},
		{"backslash escaped", `a\b`, `a\b`},
		{"quote escaped", `say "hi"`, `"say \"hi\""`},
		{"backslash and quote", `\"`, `"\\\""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteIfNeeded(tt.input))
		})
	}
}

func TestParseScalar(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Value
	}{
		{"int", "587", IntValue(587)},
		{"float", "0.5", FloatValue(0.5)},
		{"true", "true", BoolValue(true)},
		{"TRUE case-insensitive", "TRUE", BoolValue(true)},
		{"false", "false", BoolValue(false)},
		{"null", "null", NullValue()},
		{"yes stays a string", "yes", StringValue("yes")},
		{"no stays a string", "no", StringValue("no")},
		{"on stays a string", "on", StringValue("on")},
		{"plain string", "imap.example.com", StringValue("imap.example.com")},
		{"whitespace trimmed", "  42  ", IntValue(42)},
		{"double-quoted", `"true"`, StringValue("true")},
		{"double-quoted number", `"587"`, StringValue("587")},
		{"single-quoted", "'hello'", StringValue("hello")},
		{"quoted with escapes", `"say \"hi\""`, StringValue(`say "hi"`)},
		{"quoted backslash", `"a\\b"`, StringValue(`a\b`)},
		{"empty", "", StringValue("")},
		{"negative float", "-2.25", FloatValue(-2.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseScalar(tt.input)
			assert.True(t, tt.expected.Equal(got), "got %#v, want %#v", got, tt.expected)
		})
	}
}

// Quoting must protect reserved-word-like strings: a String("true")
// survives a format/parse cycle as a string, not a bool.
func TestQuotingProtectsReservedWords(t *testing.T) {
	for _, word := range []string{"true", "false", "null", "yes", "no", "on", "off"} {
		got := ParseScalar(FormatScalar(StringValue(word)))
		assert.Equal(t, KindString, got.Kind(), "word %q", word)
		assert.Equal(t, word, got.Text())
	}
}

func TestScalarRoundTrip(t *testing.T) {
	values := []Value{
		BoolValue(true),
		BoolValue(false),
		NullValue(),
		IntValue(0),
		IntValue(993),
		IntValue(-7),
		FloatValue(0.5),
		FloatValue(2.0),
		StringValue("default"),
		StringValue("user@example.com"),
		StringValue("c:\\path with \"quotes\""),
		StringValue("0.75"),
	}

	for _, v := range values {
		got := ParseScalar(FormatScalar(v))
		assert.True(t, v.Equal(got), "round trip of %#v yielded %#v", v, got)
	}
}
