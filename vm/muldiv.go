package vm

// execMul implements `mul src` / `imul src`: the implicit accumulator is
// widened by one rank and multiplied by src, unsigned for mul and signed
// for imul.
func (m *Machine) execMul(src Operand, signed bool, line int) error {
	a, err := m.Get(src, line)
	if err != nil {
		return err
	}

	switch src.Width {
	case WidthByte:
		al, err := m.Registers.ReadByte("al")
		if err != nil {
			return err
		}
		var product int64
		if signed {
			product = signExtend(uint32(al), WidthByte) * signExtend(a, WidthByte)
		} else {
			product = int64(al) * int64(a)
		}
		ax := uint32(product) & WidthWord.Mask()
		if err := m.Registers.WriteWord("ax", uint16(ax)); err != nil {
			return err
		}
		upper := (product >> 8) & 0xFF
		overflow := upper != 0 && !(signed && upper == 0xFF && ax&0x80 != 0)
		m.Registers.SetOverflow(overflow)
		m.Registers.SetCarry(overflow)
		return nil
	case WidthWord:
		ax, err := m.Registers.ReadWord("ax")
		if err != nil {
			return err
		}
		var product int64
		if signed {
			product = signExtend(uint32(ax), WidthWord) * signExtend(a, WidthWord)
		} else {
			product = int64(ax) * int64(a)
		}
		full := uint64(product)
		if err := m.Registers.WriteWord("ax", uint16(full&0xFFFF)); err != nil {
			return err
		}
		if err := m.Registers.WriteWord("dx", uint16((full>>16)&0xFFFF)); err != nil {
			return err
		}
		upper := (product >> 16) & 0xFFFF
		overflow := upper != 0 && !(signed && upper == 0xFFFF && full&0x8000 != 0)
		m.Registers.SetOverflow(overflow)
		m.Registers.SetCarry(overflow)
		return nil
	default:
		eax, err := m.Registers.ReadDword("eax")
		if err != nil {
			return err
		}
		var product int64
		if signed {
			product = signExtend(eax, WidthDword) * signExtend(a, WidthDword)
		} else {
			product = int64(uint64(eax) * uint64(a))
		}
		full := uint64(product)
		if err := m.Registers.WriteDword("eax", uint32(full)); err != nil {
			return err
		}
		if err := m.Registers.WriteDword("edx", uint32(full>>32)); err != nil {
			return err
		}
		upper := int64(full >> 32)
		overflow := upper != 0 && !(signed && uint32(upper) == 0xFFFFFFFF && full&0x80000000 != 0)
		m.Registers.SetOverflow(overflow)
		m.Registers.SetCarry(overflow)
		return nil
	}
}

// execDiv implements `div src` / `idiv src`: the widened accumulator is
// divided by src, producing quotient and remainder in the accumulator
// and its extension register.
func (m *Machine) execDiv(src Operand, signed bool, line int) error {
	divisor, err := m.Get(src, line)
	if err != nil {
		return err
	}

	switch src.Width {
	case WidthByte:
		ax, err := m.Registers.ReadWord("ax")
		if err != nil {
			return err
		}
		if signed {
			d := signExtend(uint32(divisor), WidthByte)
			if d == 0 {
				return &DivisionByZeroError{Line: line}
			}
			dividend := signExtend(uint32(ax), WidthWord)
			q, r := dividend/d, dividend%d
			if q > 0x7F || q < -0x80 {
				return &OverflowError{Line: line, Msg: "idiv quotient out of byte range"}
			}
			if err := m.Registers.WriteByte("al", uint8(int8(q))); err != nil {
				return err
			}
			return m.Registers.WriteByte("ah", uint8(int8(r)))
		}
		if divisor == 0 {
			return &DivisionByZeroError{Line: line}
		}
		q, r := uint32(ax)/divisor, uint32(ax)%divisor
		if q > 0xFF {
			return &OverflowError{Line: line, Msg: "div quotient out of byte range"}
		}
		if err := m.Registers.WriteByte("al", uint8(q)); err != nil {
			return err
		}
		return m.Registers.WriteByte("ah", uint8(r))

	case WidthWord:
		ax, _ := m.Registers.ReadWord("ax")
		dx, _ := m.Registers.ReadWord("dx")
		full := uint32(dx)<<16 | uint32(ax)
		if signed {
			d := signExtend(uint32(divisor), WidthWord)
			if d == 0 {
				return &DivisionByZeroError{Line: line}
			}
			dividend := int64(int32(full))
			q, r := dividend/d, dividend%d
			if q > 0x7FFF || q < -0x8000 {
				return &OverflowError{Line: line, Msg: "idiv quotient out of word range"}
			}
			if err := m.Registers.WriteWord("ax", uint16(int16(q))); err != nil {
				return err
			}
			return m.Registers.WriteWord("dx", uint16(int16(r)))
		}
		if divisor == 0 {
			return &DivisionByZeroError{Line: line}
		}
		q, r := uint64(full)/uint64(divisor), uint64(full)%uint64(divisor)
		if q > 0xFFFF {
			return &OverflowError{Line: line, Msg: "div quotient out of word range"}
		}
		if err := m.Registers.WriteWord("ax", uint16(q)); err != nil {
			return err
		}
		return m.Registers.WriteWord("dx", uint16(r))

	default:
		eax, _ := m.Registers.ReadDword("eax")
		edx, _ := m.Registers.ReadDword("edx")
		full := uint64(edx)<<32 | uint64(eax)
		if signed {
			d := signExtend(divisor, WidthDword)
			if d == 0 {
				return &DivisionByZeroError{Line: line}
			}
			dividend := int64(full)
			if d == -1 && dividend == int64(-1<<63) {
				return &OverflowError{Line: line, Msg: "idiv overflow"}
			}
			q, r := dividend/d, dividend%d
			if q > 0x7FFFFFFF || q < -0x80000000 {
				return &OverflowError{Line: line, Msg: "idiv quotient out of dword range"}
			}
			if err := m.Registers.WriteDword("eax", uint32(int32(q))); err != nil {
				return err
			}
			return m.Registers.WriteDword("edx", uint32(int32(r)))
		}
		if divisor == 0 {
			return &DivisionByZeroError{Line: line}
		}
		q, r := full/uint64(divisor), full%uint64(divisor)
		if q > 0xFFFFFFFF {
			return &OverflowError{Line: line, Msg: "div quotient out of dword range"}
		}
		if err := m.Registers.WriteDword("eax", uint32(q)); err != nil {
			return err
		}
		return m.Registers.WriteDword("edx", uint32(r))
	}
}
