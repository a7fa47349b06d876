package markup

import "strings"

// indentUnit is the fixed indentation per nesting level.
const indentUnit = "  "

// Dump serializes a document to text with a trailing newline. Output is
// deterministic: the same tree always yields byte-identical text, because
// mappings iterate in insertion order.
func Dump(doc *Mapping) string {
	var lines []string
	emitMapping(&lines, doc, 0)
	return strings.Join(lines, "\n") + "\n"
}

func emitMapping(lines *[]string, m *Mapping, indent int) {
	prefix := strings.Repeat(indentUnit, indent)
	for _, p := range m.Pairs() {
		switch p.Value.Kind() {
		case KindMapping:
			*lines = append(*lines, prefix+p.Key+":")
			emitMapping(lines, p.Value.Mapping(), indent+1)
		case KindSequence:
			*lines = append(*lines, prefix+p.Key+":")
			emitSequence(lines, p.Value.Sequence(), indent+1)
		default:
			*lines = append(*lines, prefix+p.Key+": "+FormatScalar(p.Value))
		}
	}
}

// emitSequence writes one dash line per item. A mapping item puts its
// first pair on the dash line and aligns the remaining keys two spaces
// past the dash, not a full level past it. The reader's child-indent
// arithmetic (base + 2) depends on this exact layout.
func emitSequence(lines *[]string, seq []Value, indent int) {
	prefix := strings.Repeat(indentUnit, indent)
	for _, item := range seq {
		if item.Kind() != KindMapping {
			*lines = append(*lines, prefix+"- "+FormatScalar(item))
			continue
		}

		pairs := item.Mapping().Pairs()
		if len(pairs) == 0 {
			// An empty mapping item has no first pair to carry the dash;
			// it degrades to a null scalar item.
			*lines = append(*lines, prefix+"- null")
			continue
		}

		first := pairs[0]
		switch first.Value.Kind() {
		case KindMapping:
			*lines = append(*lines, prefix+"- "+first.Key+":")
			emitMapping(lines, first.Value.Mapping(), indent+2)
		case KindSequence:
			*lines = append(*lines, prefix+"- "+first.Key+":")
			emitSequence(lines, first.Value.Sequence(), indent+2)
		default:
			*lines = append(*lines, prefix+"- "+first.Key+": "+FormatScalar(first.Value))
		}

		for _, p := range pairs[1:] {
			switch p.Value.Kind() {
			case KindMapping:
				*lines = append(*lines, prefix+indentUnit+p.Key+":")
				emitMapping(lines, p.Value.Mapping(), indent+2)
			case KindSequence:
				*lines = append(*lines, prefix+indentUnit+p.Key+":")
				emitSequence(lines, p.Value.Sequence(), indent+2)
			default:
				*lines = append(*lines, prefix+indentUnit+p.Key+": "+FormatScalar(p.Value))
			}
		}
	}
}
