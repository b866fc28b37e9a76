package vm

import (
	"strconv"
	"strings"

	"sim8086/parser"
)

var directiveElementSize = map[string]Width{
	"db": WidthByte,
	"dw": WidthWord,
	"dd": WidthDword,
}

// splitVariableDirective recognizes `name d{b,w,d} v1, v2, ...` lines,
// distinguishing them from ordinary mnemonic lines by checking whether
// the second whitespace-delimited token is a directive keyword.
func splitVariableDirective(line string) (name string, elemSize Width, operandsStr string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", 0, "", false
	}
	w, isDirective := directiveElementSize[strings.ToLower(fields[1])]
	if !isDirective {
		return "", 0, "", false
	}
	afterName := strings.TrimSpace(strings.TrimSpace(line)[len(fields[0]):])
	rest := strings.TrimSpace(afterName[len(fields[1]):])
	return fields[0], w, rest, true
}

// execVariableDirective defines a variable and populates its initial
// contents: integer literals are taken at the element size; quoted
// string literals expand one character per element.
func (m *Machine) execVariableDirective(name string, elemSize Width, operandsStr string, line int) error {
	operands := parser.SplitOperands(operandsStr)

	var values []uint32
	for _, tok := range operands {
		tok = strings.TrimSpace(tok)
		if isQuoted(tok) {
			for _, r := range tok[1 : len(tok)-1] {
				values = append(values, uint32(r)&elemSize.Mask())
			}
			continue
		}
		v, _, err := ParseValue(tok, line)
		if err != nil {
			return err
		}
		values = append(values, v&elemSize.Mask())
	}

	byteLength := uint32(len(values)) * uint32(elemSize)
	v, err := m.Variables.Allocate(name, byteLength, elemSize, line)
	if err != nil {
		return err
	}
	for i, val := range values {
		addr := v.Start + uint32(i)*uint32(elemSize)
		if err := m.Memory.Write(addr, val, elemSize, line); err != nil {
			return err
		}
	}
	return nil
}

func isQuoted(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	first, last := tok[0], tok[len(tok)-1]
	return (first == '\'' && last == '\'') || (first == '"' && last == '"')
}

// formatCodepoint is used by the diagnostic-print "char" modifier to
// render a numeric value as its codepoint when it falls within the
// printable ASCII range, else falls back to its decimal form.
func formatCodepoint(v uint32) string {
	if v >= 0x20 && v <= 0x7E {
		return string(rune(v))
	}
	return strconv.FormatUint(uint64(v), 10)
}
