package markup

import (
	"strconv"
	"strings"
)

// Words that a standard reader could mistake for typed values. Strings
// matching one of these (case-insensitively) are always quoted on output,
// even though only true/false/null are recognized on input.
var reservedWords = map[string]bool{
	"true":  true,
	"false": true,
	"null":  true,
	"yes":   true,
	"no":    true,
	"on":    true,
	"off":   true,
}

// Characters with structural meaning in the wider format family. A bare
// string containing any of them would be ambiguous, so it gets quoted.
const specialChars = ":#{}[]!&*?,|>'\"@`"

// FormatScalar renders an atomic value as scalar text. Collections are
// not valid input and render as null.
func FormatScalar(v Value) string {
	switch v.Kind() {
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case KindFloat:
		return formatFloat(v.Float())
	case KindString:
		return QuoteIfNeeded(v.Text())
	default:
		return "null"
	}
}

// formatFloat renders a float so that it reads back as a float: integral
// values keep a trailing ".0" rather than collapsing to an int literal.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnI") {
		s += ".0"
	}
	return s
}

// QuoteIfNeeded returns the string bare when it is unambiguous, and
// double-quoted (escaping backslash and double quote) when a reader could
// misinterpret it: empty strings, surrounding whitespace, reserved words,
// structural characters, or text that parses as a number.
func QuoteIfNeeded(s string) string {
	needsQuote := false

	if s == "" {
		needsQuote = true
	}
	if strings.TrimSpace(s) != s {
		needsQuote = true
	}
	if reservedWords[strings.ToLower(s)] {
		needsQuote = true
	}
	if strings.ContainsAny(s, specialChars) {
		needsQuote = true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		needsQuote = true
	}

	if !needsQuote {
		return s
	}

	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

// ParseScalar parses scalar text into a value. Parsing is total: quoted
// text becomes a string with the two escapes reversed, then the canonical
// words true/false/null are matched case-insensitively, then integer and
// float literals, and anything else stays a string.
func ParseScalar(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return StringValue("")
	}

	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return StringValue(unescape(s[1 : len(s)-1]))
		}
	}

	switch strings.ToLower(s) {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	case "null":
		return NullValue()
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i)
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(f)
	}

	return StringValue(s)
}

// unescape reverses the writer's two escapes in a single left-to-right
// pass so that `\\"` decodes as a backslash followed by a quote.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
