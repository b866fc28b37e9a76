package vm

// OperandKind distinguishes the three polymorphic operand forms:
// register, memory, and immediate.
type OperandKind int

const (
	OperandRegister OperandKind = iota
	OperandMemory
	OperandImmediate
)

// Operand is the decoded, tagged-variant form of a single token: a
// (value, width) pair plus enough of its origin to support writeback.
type Operand struct {
	Kind     OperandKind
	Width    Width
	Register string  // set when Kind == OperandRegister
	Address  uint32  // set when Kind == OperandMemory
	Literal  uint32  // set when Kind == OperandImmediate
}

// DecodeOperand classifies and resolves a single operand token: a
// register view, a bracketed memory reference, or an immediate literal.
func (m *Machine) DecodeOperand(tok string, line int) (Operand, error) {
	if IsRegisterName(tok) {
		return Operand{Kind: OperandRegister, Register: tok, Width: mustWidth(m, tok)}, nil
	}
	if IsMemoryOperand(tok) {
		mo, err := m.DecodeMemoryOperand(tok, line)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: OperandMemory, Address: mo.Address, Width: mo.Width}, nil
	}
	v, w, err := ParseValue(tok, line)
	if err != nil {
		return Operand{}, err
	}
	return Operand{Kind: OperandImmediate, Literal: v, Width: w}, nil
}

func mustWidth(m *Machine, reg string) Width {
	w, _ := m.Registers.WidthOf(reg)
	return w
}

// Get reads the operand's current value, widened to uint32.
func (m *Machine) Get(op Operand, line int) (uint32, error) {
	switch op.Kind {
	case OperandRegister:
		v, _, err := m.Registers.Read(op.Register)
		return v, err
	case OperandMemory:
		return m.Memory.Read(op.Address, op.Width, line)
	default:
		return op.Literal, nil
	}
}

// Set writes value back to a register or memory operand at its own
// width. Setting an immediate operand is a programming error in the
// caller (immediates are never destinations) and returns InvalidValue.
func (m *Machine) Set(op Operand, value uint32, line int) error {
	switch op.Kind {
	case OperandRegister:
		return m.Registers.Write(op.Register, value)
	case OperandMemory:
		return m.Memory.Write(op.Address, value, op.Width, line)
	default:
		return &InvalidValueError{Line: line, Msg: "cannot write to an immediate operand"}
	}
}

// CheckWidth enforces the width-compatibility rule: an immediate source
// may be narrower than the destination (it is zero-extended); any other
// source must match the destination width exactly.
func CheckWidth(dst, src Operand, line int) error {
	if src.Kind == OperandImmediate {
		if src.Width > dst.Width {
			return &InvalidValueError{Line: line, Msg: "immediate too wide for destination"}
		}
		return nil
	}
	if src.Width != dst.Width {
		return &InvalidValueError{Line: line, Msg: "operand width mismatch"}
	}
	return nil
}
