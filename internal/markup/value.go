// Package markup implements the codec for the restricted, indentation-
// structured configuration format used by rnoe. The format is a strict
// hand-defined subset of YAML: 2-space indentation, full-line # comments,
// block mappings and sequences, plain or double-quoted scalars. Anchors,
// aliases, flow collections, tags, multi-line scalars, and multi-document
// streams are not supported.
//
// Documents are represented as a Value tree: a tagged union over null,
// bool, int, float, string, ordered mapping, and sequence. Mappings
// preserve insertion order; the persisted account order is semantically
// meaningful and must survive a load/dump round trip byte for byte.
package markup

import "fmt"

// Kind identifies which member of the Value union is set.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindMapping
	KindSequence
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the scalar and collection kinds the format
// supports. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	m    *Mapping
	seq  []Value
}

// NullValue returns the null value.
func NullValue() Value {
	return Value{kind: KindNull}
}

// BoolValue returns a bool value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// IntValue returns an int value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// FloatValue returns a float value.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// StringValue returns a string value.
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// MappingValue wraps an ordered mapping as a value. A nil mapping is
// normalized to an empty one.
func MappingValue(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{kind: KindMapping, m: m}
}

// SequenceValue returns a sequence value over the given items.
func SequenceValue(items ...Value) Value {
	return Value{kind: KindSequence, seq: items}
}

// Kind returns which member of the union is set.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the bool member, or false when the value is not a bool.
func (v Value) Bool() bool {
	return v.b
}

// Int returns the int member, or zero when the value is not an int.
func (v Value) Int() int64 {
	return v.i
}

// Float returns the float member, or zero when the value is not a float.
// An int value is widened so numeric fields accept either literal form.
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Text returns the string member, or the empty string for other kinds.
func (v Value) Text() string {
	return v.s
}

// Mapping returns the mapping member, or nil for other kinds.
func (v Value) Mapping() *Mapping {
	return v.m
}

// Sequence returns the sequence member, or nil for other kinds.
func (v Value) Sequence() []Value {
	return v.seq
}

// IsCollection reports whether the value is a mapping or a sequence.
func (v Value) IsCollection() bool {
	return v.kind == KindMapping || v.kind == KindSequence
}

// Equal reports deep equality. Mappings compare by ordered pairs, so two
// mappings with the same entries in different order are not equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindMapping:
		return v.m.Equal(o.m)
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// GoString implements fmt.GoStringer for readable test failures.
func (v Value) GoString() string {
	switch v.kind {
	case KindNull:
		return "markup.NullValue()"
	case KindBool:
		return fmt.Sprintf("markup.BoolValue(%v)", v.b)
	case KindInt:
		return fmt.Sprintf("markup.IntValue(%d)", v.i)
	case KindFloat:
		return fmt.Sprintf("markup.FloatValue(%v)", v.f)
	case KindString:
		return fmt.Sprintf("markup.StringValue(%q)", v.s)
	case KindMapping:
		return fmt.Sprintf("markup.MappingValue(%#v)", v.m)
	case KindSequence:
		return fmt.Sprintf("markup.SequenceValue(%#v...)", v.seq)
	default:
		return "markup.Value{?}"
	}
}

// Pair is one ordered key/value entry of a mapping.
type Pair struct {
	Key   string
	Value Value
}

// Mapping is an ordered collection of key/value pairs with unique keys.
// It is deliberately a pair list rather than a Go map: account order in
// the config document is the persisted order and must be preserved.
type Mapping struct {
	pairs []Pair
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{}
}

// MappingOf builds a mapping from alternating key/value arguments,
// preserving argument order.
func MappingOf(pairs ...Pair) *Mapping {
	m := NewMapping()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Get returns the value for key and whether it was present.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return NullValue(), false
	}
	for _, p := range m.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return NullValue(), false
}

// Set replaces the value for an existing key in place, keeping its
// position, or appends a new entry.
func (m *Mapping) Set(key string, v Value) {
	for i, p := range m.pairs {
		if p.Key == key {
			m.pairs[i].Value = v
			return
		}
	}
	m.pairs = append(m.pairs, Pair{Key: key, Value: v})
}

// Delete removes the entry for key, reporting whether it was present.
func (m *Mapping) Delete(key string) bool {
	for i, p := range m.pairs {
		if p.Key == key {
			m.pairs = append(m.pairs[:i], m.pairs[i+1:]...)
			return true
		}
	}
	return false
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Pairs returns the entries in insertion order. The slice is shared with
// the mapping; callers must not mutate it.
func (m *Mapping) Pairs() []Pair {
	if m == nil {
		return nil
	}
	return m.pairs
}

// Equal reports deep, order-sensitive equality.
func (m *Mapping) Equal(o *Mapping) bool {
	if m.Len() != o.Len() {
		return false
	}
	for i := range m.pairs {
		if m.pairs[i].Key != o.pairs[i].Key {
			return false
		}
		if !m.pairs[i].Value.Equal(o.pairs[i].Value) {
			return false
		}
	}
	return true
}
