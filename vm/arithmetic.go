package vm

// signExtend widens a width-masked value to a signed 64-bit integer by
// sign-extending from its width's top bit.
func signExtend(v uint32, w Width) int64 {
	masked := v & w.Mask()
	signBit := uint32(1) << (w.bitWidth() - 1)
	if masked&signBit != 0 {
		return int64(masked) - int64(w.Mask()) - 1
	}
	return int64(masked)
}

// execMov implements `mov dst, src`: copy, then refresh Z/S/P from the
// transferred value. Hardware leaves flags alone on mov; this dialect
// refreshes them so moves are observable in tests.
func (m *Machine) execMov(dst, src Operand, line int) error {
	if err := CheckWidth(dst, src, line); err != nil {
		return err
	}
	v, err := m.Get(src, line)
	if err != nil {
		return err
	}
	v &= dst.Width.Mask()
	if err := m.Set(dst, v, line); err != nil {
		return err
	}
	m.Registers.UpdateZSP(v, dst.Width)
	return nil
}

// execLea implements `lea reg, [addr]`: writes the effective address,
// never dereferencing it. Byte-register destinations are NotEnoughSpace:
// an address does not fit in 8 bits.
func (m *Machine) execLea(dst Operand, addr uint32, line int) error {
	if dst.Kind != OperandRegister {
		return &InvalidValueError{Line: line, Msg: "lea destination must be a register"}
	}
	if dst.Width == WidthByte {
		return &NotEnoughSpaceError{Line: line, Msg: "lea cannot target a byte register"}
	}
	return m.Set(dst, addr, line)
}

// execAdd implements `add dst, src`.
func (m *Machine) execAdd(dst, src Operand, line int) error {
	if err := CheckWidth(dst, src, line); err != nil {
		return err
	}
	a, err := m.Get(dst, line)
	if err != nil {
		return err
	}
	b, err := m.Get(src, line)
	if err != nil {
		return err
	}
	result := (a + b) & dst.Width.Mask()
	if err := m.Set(dst, result, line); err != nil {
		return err
	}
	m.Registers.UpdateZSP(result, dst.Width)
	m.Registers.SetCarry(addCarried(a, b, dst.Width))
	m.Registers.SetOverflow(addOverflowed(a, b, result, dst.Width))
	return nil
}

// execSub implements `sub dst, src`.
func (m *Machine) execSub(dst, src Operand, line int) error {
	if err := CheckWidth(dst, src, line); err != nil {
		return err
	}
	a, err := m.Get(dst, line)
	if err != nil {
		return err
	}
	b, err := m.Get(src, line)
	if err != nil {
		return err
	}
	result := (a - b) & dst.Width.Mask()
	if err := m.Set(dst, result, line); err != nil {
		return err
	}
	m.Registers.UpdateZSP(result, dst.Width)
	m.Registers.SetCarry(subBorrowed(a, b, dst.Width))
	m.Registers.SetOverflow(subOverflowed(a, b, result, dst.Width))
	return nil
}

// execInc implements `inc dst`. Hardware leaves Carry alone on inc; this
// dialect sets it the same way add does, keeping the increment and the
// equivalent add observably identical.
func (m *Machine) execInc(dst Operand, line int) error {
	a, err := m.Get(dst, line)
	if err != nil {
		return err
	}
	result := (a + 1) & dst.Width.Mask()
	if err := m.Set(dst, result, line); err != nil {
		return err
	}
	m.Registers.UpdateZSP(result, dst.Width)
	m.Registers.SetOverflow(addOverflowed(a, 1, result, dst.Width))
	m.Registers.SetCarry(addCarried(a, 1, dst.Width))
	return nil
}

// execDec implements `dec dst`.
func (m *Machine) execDec(dst Operand, line int) error {
	a, err := m.Get(dst, line)
	if err != nil {
		return err
	}
	result := (a - 1) & dst.Width.Mask()
	if err := m.Set(dst, result, line); err != nil {
		return err
	}
	m.Registers.UpdateZSP(result, dst.Width)
	m.Registers.SetOverflow(subOverflowed(a, 1, result, dst.Width))
	m.Registers.SetCarry(subBorrowed(a, 1, dst.Width))
	return nil
}

// execLogic implements and/or/xor: writeback plus Z/S/P, Carry and
// Overflow cleared (no hardware notion of logical carry/overflow).
func (m *Machine) execLogic(dst, src Operand, op func(a, b uint32) uint32, line int) error {
	if err := CheckWidth(dst, src, line); err != nil {
		return err
	}
	a, err := m.Get(dst, line)
	if err != nil {
		return err
	}
	b, err := m.Get(src, line)
	if err != nil {
		return err
	}
	result := op(a, b) & dst.Width.Mask()
	if err := m.Set(dst, result, line); err != nil {
		return err
	}
	m.Registers.UpdateZSP(result, dst.Width)
	m.Registers.SetCarry(false)
	m.Registers.SetOverflow(false)
	return nil
}

// execNot implements the one's-complement `not dst`. No flag effects,
// matching hardware.
func (m *Machine) execNot(dst Operand, line int) error {
	a, err := m.Get(dst, line)
	if err != nil {
		return err
	}
	result := (^a) & dst.Width.Mask()
	return m.Set(dst, result, line)
}

// execNeg implements two's-complement negation, with Carry set whenever
// the operand is nonzero (matching x86: neg computes 0-operand, so it
// borrows unless the operand was already zero).
func (m *Machine) execNeg(dst Operand, line int) error {
	a, err := m.Get(dst, line)
	if err != nil {
		return err
	}
	result := (0 - a) & dst.Width.Mask()
	if err := m.Set(dst, result, line); err != nil {
		return err
	}
	m.Registers.UpdateZSP(result, dst.Width)
	m.Registers.SetCarry(a != 0)
	m.Registers.SetOverflow(subOverflowed(0, a, result, dst.Width))
	return nil
}

// execShift implements shl/shr by an immediate or by CL, with Carry taking
// the last bit shifted out.
func (m *Machine) execShift(dst, src Operand, left bool, line int) error {
	a, err := m.Get(dst, line)
	if err != nil {
		return err
	}
	count, err := m.Get(src, line)
	if err != nil {
		return err
	}
	count &= 0x1F
	bitWidth := dst.Width.bitWidth()
	var result uint32
	var carry bool
	switch {
	case count == 0:
		result = a & dst.Width.Mask()
		carry = m.Registers.Carry()
	case uint32(count) > uint32(bitWidth):
		result = 0
		carry = false
	case left:
		result = (a << count) & dst.Width.Mask()
		shiftedOutBit := bitWidth - uint(count)
		carry = (a>>shiftedOutBit)&1 != 0
	default:
		result = (a & dst.Width.Mask()) >> count
		carry = (a>>(count-1))&1 != 0
	}
	if err := m.Set(dst, result, line); err != nil {
		return err
	}
	m.Registers.UpdateZSP(result, dst.Width)
	m.Registers.SetCarry(carry)
	return nil
}
