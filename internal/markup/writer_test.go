package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpFlatMapping(t *testing.T) {
	doc := MappingOf(
		Pair{"host", StringValue("imap.example.com")},
		Pair{"port", IntValue(993)},
		Pair{"ssl", BoolValue(true)},
	)

	expected := "host: imap.example.com\n" +
		"port: 993\n" +
		"ssl: true\n"
	assert.Equal(t, expected, Dump(doc))
}

func TestDumpNestedMapping(t *testing.T) {
	protection := MappingOf(Pair{"threshold", FloatValue(0.5)})
	doc := MappingOf(Pair{"protection", MappingValue(protection)})

	expected := "protection:\n" +
		"  threshold: 0.5\n"
	assert.Equal(t, expected, Dump(doc))
}

func TestDumpScalarSequence(t *testing.T) {
	doc := MappingOf(Pair{"folders", SequenceValue(
		StringValue("INBOX"),
		StringValue("Archive"),
	)})

	expected := "folders:\n" +
		"  - INBOX\n" +
		"  - Archive\n"
	assert.Equal(t, expected, Dump(doc))
}

// Sequence mapping items carry the first pair on the dash line; the
// remaining fields align two spaces past the dash, not a full level
// deeper. The reader's child-indent arithmetic depends on this.
func TestDumpSequenceOfMappings(t *testing.T) {
	first := MappingOf(
		Pair{"id", StringValue("default")},
		Pair{"host", StringValue("imap.example.com")},
		Pair{"port", IntValue(993)},
	)
	second := MappingOf(
		Pair{"id", StringValue("work")},
		Pair{"host", StringValue("imap.work.example")},
		Pair{"port", IntValue(143)},
	)
	doc := MappingOf(Pair{"accounts", SequenceValue(MappingValue(first), MappingValue(second))})

	expected := "accounts:\n" +
		"  - id: default\n" +
		"    host: imap.example.com\n" +
		"    port: 993\n" +
		"  - id: work\n" +
		"    host: imap.work.example\n" +
		"    port: 143\n"
	assert.Equal(t, expected, Dump(doc))
}

func TestDumpNestedMappingInsideSequenceItem(t *testing.T) {
	permissions := MappingOf(
		Pair{"read", BoolValue(true)},
		Pair{"send", BoolValue(false)},
	)
	account := MappingOf(
		Pair{"id", StringValue("default")},
		Pair{"permissions", MappingValue(permissions)},
	)
	doc := MappingOf(Pair{"accounts", SequenceValue(MappingValue(account))})

	expected := "accounts:\n" +
		"  - id: default\n" +
		"    permissions:\n" +
		"      read: true\n" +
		"      send: false\n"
	assert.Equal(t, expected, Dump(doc))
}

// A collection as the first value of a sequence item puts the key alone
// on the dash line and opens the block one level deeper.
func TestDumpSequenceItemWithLeadingCollection(t *testing.T) {
	inner := MappingOf(Pair{"threshold", FloatValue(0.25)})
	item := MappingOf(Pair{"protection", MappingValue(inner)})
	doc := MappingOf(Pair{"overrides", SequenceValue(MappingValue(item))})

	expected := "overrides:\n" +
		"  - protection:\n" +
		"      threshold: 0.25\n"
	assert.Equal(t, expected, Dump(doc))
}

func TestDumpEmptySequence(t *testing.T) {
	doc := MappingOf(Pair{"accounts", SequenceValue()})

	// An empty sequence leaves nothing after the key; it reads back as
	// null, which is the documented empty-collection ambiguity.
	assert.Equal(t, "accounts:\n", Dump(doc))
}

func TestDumpEmptyDocument(t *testing.T) {
	assert.Equal(t, "\n", Dump(NewMapping()))
}

func TestDumpDeterministic(t *testing.T) {
	doc := MappingOf(
		Pair{"b", IntValue(2)},
		Pair{"a", IntValue(1)},
		Pair{"c", SequenceValue(StringValue("x"), StringValue("y"))},
	)

	first := Dump(doc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Dump(doc))
	}
	// Insertion order is preserved, not sorted.
	assert.Equal(t, "b: 2\na: 1\nc:\n  - x\n  - y\n", first)
}
