package markup

import (
	"fmt"
	"strings"

	"github.com/readnoevil/rnoe/internal/errors"
)

// line is one surviving input line after preprocessing.
type line struct {
	indent  int
	content string
	number  int
}

// Load parses document text into a value tree. Empty input yields an
// empty mapping. Input that cannot be classified is an error: the reader
// never silently drops a line (dedents and new `- ` siblings are the only
// legal block terminators), so a malformed document surfaces as
// KindMalformed instead of a truncated tree.
func Load(text string) (Value, error) {
	lines := prepareLines(text)
	if len(lines) == 0 {
		return MappingValue(NewMapping()), nil
	}

	doc, next := parseBlock(lines, 0, 0)
	if next < len(lines) {
		ln := lines[next]
		return Value{}, errors.NewMalformedError(
			errors.ErrCodeMalformedDocument,
			fmt.Sprintf("line %d: cannot classify %q", ln.number, ln.content),
		).WithContext("line", ln.number)
	}
	return doc, nil
}

// prepareLines drops blank lines and whole-line # comments and records
// the remaining lines as (indent, trimmed content). There is no inline
// comment stripping: # only acts at the start of a line.
func prepareLines(text string) []line {
	var result []line
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
		result = append(result, line{indent: indent, content: trimmed, number: i + 1})
	}
	return result
}

// parseBlock parses one block starting at pos and returns the value plus
// the position of the first line it did not consume.
func parseBlock(lines []line, pos, baseIndent int) (Value, int) {
	if pos >= len(lines) {
		return MappingValue(NewMapping()), pos
	}

	if strings.HasPrefix(lines[pos].content, "- ") {
		return parseSequence(lines, pos, baseIndent)
	}
	return parseMapping(lines, pos, baseIndent)
}

// parseMapping consumes consecutive non-dash lines at exactly baseIndent.
// A `key: value` line binds a scalar; a bare `key:` line binds the nested
// block on the following deeper lines, or null when no deeper line
// follows (the format cannot express an empty collection).
func parseMapping(lines []line, pos, baseIndent int) (Value, int) {
	m := NewMapping()
	for pos < len(lines) {
		ln := lines[pos]
		if ln.indent != baseIndent {
			break
		}
		if strings.HasPrefix(ln.content, "- ") {
			break
		}

		key, val, hasKey, hasVal := splitKeyValue(ln.content)
		if !hasKey {
			// Unclassifiable here; left for Load's leftover check.
			break
		}
		if hasVal {
			m.Set(key, ParseScalar(val))
			pos++
			continue
		}
		if pos+1 < len(lines) && lines[pos+1].indent > ln.indent {
			var child Value
			child, pos = parseBlock(lines, pos+1, lines[pos+1].indent)
			m.Set(key, child)
		} else {
			m.Set(key, NullValue())
			pos++
		}
	}
	return MappingValue(m), pos
}

// parseSequence consumes consecutive `- ` lines at exactly baseIndent.
// An item opening with `- key: value` is a mapping whose remaining fields
// follow at the child indent (baseIndent + 2, aligned under the first
// key); `- key:` with deeper lines is a single-key mapping around a
// nested block; anything else is a scalar item.
func parseSequence(lines []line, pos, baseIndent int) (Value, int) {
	var items []Value
	for pos < len(lines) {
		ln := lines[pos]
		if ln.indent != baseIndent || !strings.HasPrefix(ln.content, "- ") {
			break
		}

		rest := ln.content[2:]
		key, val, hasKey, hasVal := splitKeyValue(rest)

		switch {
		case hasKey && hasVal:
			item := NewMapping()
			item.Set(key, ParseScalar(val))
			pos++
			pos = parseItemFields(lines, pos, baseIndent+2, item)
			items = append(items, MappingValue(item))

		case hasKey:
			item := NewMapping()
			if pos+1 < len(lines) && lines[pos+1].indent > baseIndent {
				var child Value
				child, pos = parseBlock(lines, pos+1, lines[pos+1].indent)
				item.Set(key, child)
			} else {
				item.Set(key, NullValue())
				pos++
			}
			items = append(items, MappingValue(item))

		default:
			items = append(items, ParseScalar(rest))
			pos++
		}
	}
	return SequenceValue(items...), pos
}

// parseItemFields collects the remaining fields of a sequence mapping
// item at exactly childIndent, stopping at a dedent, a deeper stray
// line, or the next `- ` marker.
func parseItemFields(lines []line, pos, childIndent int, item *Mapping) int {
	for pos < len(lines) {
		ln := lines[pos]
		if ln.indent != childIndent {
			break
		}
		if strings.HasPrefix(ln.content, "- ") {
			break
		}

		key, val, hasKey, hasVal := splitKeyValue(ln.content)
		switch {
		case hasKey && hasVal:
			item.Set(key, ParseScalar(val))
			pos++
		case hasKey:
			if pos+1 < len(lines) && lines[pos+1].indent > ln.indent {
				var child Value
				child, pos = parseBlock(lines, pos+1, lines[pos+1].indent)
				item.Set(key, child)
			} else {
				item.Set(key, NullValue())
				pos++
			}
		default:
			return pos
		}
	}
	return pos
}

// splitKeyValue splits a `key: value` or `key:` line. Only a colon at end
// of line or a colon followed by a space separates: a colon embedded
// mid-token (as in a URL) does not split. Quoted keys are supported.
func splitKeyValue(content string) (key, val string, hasKey, hasVal bool) {
	if strings.HasPrefix(content, `"`) {
		end := strings.Index(content[1:], `"`)
		if end == -1 {
			return "", "", false, false
		}
		key = content[1 : 1+end]
		rest := content[2+end:]
		if strings.HasPrefix(rest, ":") {
			v := strings.TrimSpace(rest[1:])
			if v == "" {
				return key, "", true, false
			}
			return key, v, true, true
		}
		return "", "", false, false
	}

	colon := strings.IndexByte(content, ':')
	if colon == -1 {
		return "", "", false, false
	}

	key = content[:colon]
	rest := content[colon+1:]

	if rest == "" {
		return key, "", true, false
	}
	if rest[0] == ' ' {
		v := strings.TrimSpace(rest[1:])
		if v == "" {
			return key, "", true, false
		}
		return key, v, true, true
	}
	return "", "", false, false
}
