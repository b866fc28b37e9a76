package vm

import (
	"fmt"
	"strings"
)

// stripCharModifier recognizes a leading whitespace-separated "char"
// token and returns the remainder of tok.
func stripCharModifier(tok string) (bool, string) {
	fields := strings.Fields(tok)
	if len(fields) > 1 && strings.EqualFold(fields[0], "char") {
		return true, strings.Join(fields[1:], " ")
	}
	return false, strings.TrimSpace(tok)
}

// execPrint implements `print expr` and `print N, [addr]` with an
// optional `char` modifier. The modifier may sit in its own
// comma-separated slot or directly prefix the operand.
func (m *Machine) execPrint(operands []string, line int) error {
	switch len(operands) {
	case 1:
		tok := strings.TrimSpace(operands[0])
		if isQuoted(tok) {
			return m.printLiteral(tok[1 : len(tok)-1])
		}
		asChar, expr := stripCharModifier(tok)
		return m.printExpr(expr, asChar, line)
	case 2:
		if strings.EqualFold(strings.TrimSpace(operands[0]), "char") {
			return m.printExpr(strings.TrimSpace(operands[1]), true, line)
		}
		asChar, addr := stripCharModifier(operands[1])
		return m.printN(operands[0], addr, asChar, line)
	case 3:
		if !strings.EqualFold(strings.TrimSpace(operands[1]), "char") {
			return m.invalidOpcode("print", line)
		}
		return m.printN(operands[0], strings.TrimSpace(operands[2]), true, line)
	default:
		return m.invalidOpcode("print", line)
	}
}

// printLiteral emits a quoted string operand verbatim.
func (m *Machine) printLiteral(s string) error {
	ip, _, _ := m.Registers.Read("ip")
	fmt.Fprintf(m.Output, "[ip=%d] %s\n", ip, s)
	return nil
}

// printExpr evaluates a single operand and emits it alongside the current
// IP.
func (m *Machine) printExpr(tok string, asChar bool, line int) error {
	op, err := m.DecodeOperand(tok, line)
	if err != nil {
		return err
	}
	v, err := m.Get(op, line)
	if err != nil {
		return err
	}
	ip, _, _ := m.Registers.Read("ip")
	rendered := fmt.Sprintf("%d", v)
	if asChar {
		rendered = formatCodepoint(v)
	}
	fmt.Fprintf(m.Output, "[ip=%d] %s\n", ip, rendered)
	return nil
}

// printN formats count consecutive elements starting at a memory
// operand, sized by that operand's inferred width.
func (m *Machine) printN(countTok, addrTok string, asChar bool, line int) error {
	count, _, err := ParseValue(strings.TrimSpace(countTok), line)
	if err != nil {
		return err
	}
	mo, err := m.DecodeMemoryOperand(strings.TrimSpace(addrTok), line)
	if err != nil {
		return err
	}

	var rendered []string
	addr := mo.Address
	for i := uint32(0); i < count; i++ {
		v, err := m.Memory.Read(addr, mo.Width, line)
		if err != nil {
			return err
		}
		if asChar {
			rendered = append(rendered, formatCodepoint(v))
		} else {
			rendered = append(rendered, fmt.Sprintf("%d", v))
		}
		addr += uint32(mo.Width)
	}
	ip, _, _ := m.Registers.Read("ip")
	fmt.Fprintf(m.Output, "[ip=%d] %s\n", ip, strings.Join(rendered, " "))
	return nil
}
