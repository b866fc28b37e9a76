package vm

// execCmp implements `cmp a, b`: a-b is computed and flagged exactly like
// sub, but never written back.
func (m *Machine) execCmp(a, b Operand, line int) error {
	if err := CheckWidth(a, b, line); err != nil {
		return err
	}
	av, err := m.Get(a, line)
	if err != nil {
		return err
	}
	bv, err := m.Get(b, line)
	if err != nil {
		return err
	}
	result := (av - bv) & a.Width.Mask()
	m.Registers.UpdateZSP(result, a.Width)
	m.Registers.SetCarry(subBorrowed(av, bv, a.Width))
	m.Registers.SetOverflow(subOverflowed(av, bv, result, a.Width))
	return nil
}

// jumpConditions is the flag truth table for the conditional jumps,
// keyed by mnemonic. jmp is handled separately since it is unconditional.
var jumpConditions = map[string]func(r *Registers) bool{
	"je":  func(r *Registers) bool { return r.Zero() },
	"jz":  func(r *Registers) bool { return r.Zero() },
	"jne": func(r *Registers) bool { return !r.Zero() },
	"jnz": func(r *Registers) bool { return !r.Zero() },
	"jg":  func(r *Registers) bool { return !r.Zero() && r.Sign() == r.Overflow() },
	"jge": func(r *Registers) bool { return r.Sign() == r.Overflow() },
	"jl":  func(r *Registers) bool { return r.Sign() != r.Overflow() },
	"jle": func(r *Registers) bool { return r.Zero() || r.Sign() != r.Overflow() },
	"ja":  func(r *Registers) bool { return !r.Carry() && !r.Zero() },
	"jae": func(r *Registers) bool { return !r.Carry() },
	"jb":  func(r *Registers) bool { return r.Carry() },
	"jbe": func(r *Registers) bool { return r.Carry() || r.Zero() },
}

// ResolveJumpTarget resolves a jump/call operand to a line index: a
// label name resolves to its line index, a memory operand's effective
// address is itself interpreted as a line index, and an integer literal
// names a line index directly.
func (m *Machine) ResolveJumpTarget(tok string, line int) (uint32, error) {
	if idx, ok := m.Labels.Lookup(tok); ok {
		return uint32(idx), nil
	}
	if IsMemoryOperand(tok) {
		mo, err := m.DecodeMemoryOperand(tok, line)
		if err != nil {
			return 0, err
		}
		return mo.Address, nil
	}
	v, _, err := ParseValue(tok, line)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// execJump resolves target and, if taken, writes it into IP. mnemonic
// "jmp" is always taken; any other recognized jump mnemonic consults
// jumpConditions.
func (m *Machine) execJump(mnemonic, targetTok string, line int) error {
	taken := mnemonic == "jmp"
	if !taken {
		cond, ok := jumpConditions[mnemonic]
		if !ok {
			return &InvalidOpcodeError{Line: line, Mnemonic: mnemonic}
		}
		taken = cond(m.Registers)
	}
	if !taken {
		return nil
	}
	target, err := m.ResolveJumpTarget(targetTok, line)
	if err != nil {
		return err
	}
	if target > MemorySize {
		return &InvalidPointerError{Line: line, Msg: "jump target out of range"}
	}
	return m.Registers.WriteWord("ip", uint16(target))
}

// execPush implements `push src` at the source's inferred width.
func (m *Machine) execPush(src Operand, line int) error {
	v, err := m.Get(src, line)
	if err != nil {
		return err
	}
	return m.Push(v, src.Width, line)
}

// execPop implements `pop dst`. A byte destination is disallowed.
func (m *Machine) execPop(dst Operand, line int) error {
	if dst.Width == WidthByte {
		return &InvalidValueError{Line: line, Msg: "cannot pop into a byte operand"}
	}
	v, err := m.Pop(dst.Width, line)
	if err != nil {
		return err
	}
	return m.Set(dst, v, line)
}

// execCall implements `call target`: pushes the index of the line after
// the call (word-width) as a return address, then jumps like jmp.
func (m *Machine) execCall(targetTok string, line int) error {
	target, err := m.ResolveJumpTarget(targetTok, line)
	if err != nil {
		return err
	}
	if target > MemorySize {
		return &InvalidPointerError{Line: line, Msg: "call target out of range"}
	}
	returnLine := uint32(line + 1)
	if err := m.Push(returnLine, WidthWord, line); err != nil {
		return err
	}
	return m.Registers.WriteWord("ip", uint16(target))
}

// execRet implements `ret` / `ret N`: pops a return line index into IP,
// then discards N extra bytes from the stack (mirrors x86 `ret imm16`).
func (m *Machine) execRet(extra uint32, line int) error {
	target, err := m.Pop(WidthWord, line)
	if err != nil {
		return err
	}
	if extra > 0 {
		sp, _, err := m.Registers.Read("sp")
		if err != nil {
			return err
		}
		if sp < StackSegmentBase || sp-StackSegmentBase < extra {
			return &StackUnderflowError{Line: line}
		}
		if err := m.Registers.WriteWord("sp", uint16(sp-extra)); err != nil {
			return err
		}
	}
	return m.Registers.WriteWord("ip", uint16(target))
}
