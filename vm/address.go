package vm

import "strings"

// sizePrefixes maps the recognized "BYTE PTR"/"WORD PTR"/"DWORD PTR"
// spellings (lower-cased, whitespace-normalized) to their width.
var sizePrefixes = map[string]Width{
	"byte ptr":  WidthByte,
	"word ptr":  WidthWord,
	"dword ptr": WidthDword,
}

// stripSizePrefix recognizes a leading size-prefix token and returns the
// width it names along with the remainder of tok. ok is false when no
// recognized prefix is present.
func stripSizePrefix(tok string) (Width, string, bool) {
	trimmed := strings.TrimSpace(tok)
	lower := strings.ToLower(trimmed)
	for prefix, w := range sizePrefixes {
		if strings.HasPrefix(lower, prefix) {
			rest := strings.TrimSpace(trimmed[len(prefix):])
			return w, rest, true
		}
	}
	return 0, trimmed, false
}

// EvaluateAddress computes the effective address named by a bracketed
// expression (the text between, but not including, '[' and ']'): terms
// joined by +/-, each term an atom or atom*atom, atoms being integer
// literals, register views, variable names, or label names.
func (m *Machine) EvaluateAddress(expr string, line int) (uint32, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, &InvalidPointerError{Line: line, Msg: "empty address expression"}
	}

	var total int64
	sign := int64(1)
	var term strings.Builder
	flushTerm := func() error {
		t := strings.TrimSpace(term.String())
		term.Reset()
		if t == "" {
			return &InvalidPointerError{Line: line, Msg: "malformed address expression " + expr}
		}
		v, err := m.evaluateTerm(t, line)
		if err != nil {
			return err
		}
		total += sign * v
		return nil
	}

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch c {
		case '+':
			if err := flushTerm(); err != nil {
				return 0, err
			}
			sign = 1
		case '-':
			// A leading '-' (or one following another operator) is a unary
			// sign on the next atom, not a term boundary.
			if strings.TrimSpace(term.String()) == "" {
				sign = -sign
				continue
			}
			if err := flushTerm(); err != nil {
				return 0, err
			}
			sign = -1
		default:
			term.WriteByte(c)
		}
	}
	if err := flushTerm(); err != nil {
		return 0, err
	}

	return uint32(total), nil
}

// evaluateTerm evaluates a single '+'/'-'-free term: either a lone atom,
// or "atom*atom" (index*scale, either order).
func (m *Machine) evaluateTerm(term string, line int) (int64, error) {
	if idx := strings.IndexByte(term, '*'); idx >= 0 {
		left, err := m.evaluateAtom(strings.TrimSpace(term[:idx]), line)
		if err != nil {
			return 0, err
		}
		right, err := m.evaluateAtom(strings.TrimSpace(term[idx+1:]), line)
		if err != nil {
			return 0, err
		}
		return left * right, nil
	}
	return m.evaluateAtom(term, line)
}

// evaluateAtom resolves one atom to a signed contribution: an integer
// literal, a register's current value, a variable's start offset, or a
// label's line index.
func (m *Machine) evaluateAtom(atom string, line int) (int64, error) {
	atom = strings.TrimSpace(atom)
	if IsRegisterName(atom) {
		v, _, err := m.Registers.Read(atom)
		return int64(v), err
	}
	if v, ok := m.Labels.Lookup(atom); ok {
		return int64(v), nil
	}
	if vr, err := m.Variables.Lookup(atom, line); err == nil {
		return int64(vr.Start), nil
	}
	v, _, err := ParseValue(atom, line)
	if err != nil {
		return 0, &InvalidPointerError{Line: line, Msg: "unresolvable address atom " + atom}
	}
	return int64(v), nil
}

// MemoryOperand is a decoded `[...]` operand: its resolved address and
// the access width it implies.
type MemoryOperand struct {
	Address uint32
	Width   Width
}

// DecodeMemoryOperand parses a full memory operand token, including an
// optional size prefix.
func (m *Machine) DecodeMemoryOperand(tok string, line int) (MemoryOperand, error) {
	explicitWidth, rest, hasPrefix := stripSizePrefix(tok)
	if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") {
		return MemoryOperand{}, &InvalidPointerError{Line: line, Msg: "expected [...] operand, got " + tok}
	}
	inner := rest[1 : len(rest)-1]
	addr, err := m.EvaluateAddress(inner, line)
	if err != nil {
		return MemoryOperand{}, err
	}

	width := WidthByte
	if hasPrefix {
		width = explicitWidth
	} else if v, err := m.Variables.Lookup(strings.TrimSpace(inner), line); err == nil {
		width = v.ElementSize
	}
	return MemoryOperand{Address: addr, Width: width}, nil
}

// IsMemoryOperand reports whether tok is a bracketed (optionally
// size-prefixed) memory operand.
func IsMemoryOperand(tok string) bool {
	_, rest, _ := stripSizePrefix(tok)
	return strings.HasPrefix(rest, "[") && strings.HasSuffix(rest, "]")
}
