package vm

import "testing"

func regOperand(m *Machine, name string, t *testing.T) Operand {
	t.Helper()
	op, err := m.DecodeOperand(name, 0)
	if err != nil {
		t.Fatalf("DecodeOperand(%s): %v", name, err)
	}
	return op
}

func immOperand(m *Machine, tok string, t *testing.T) Operand {
	t.Helper()
	op, err := m.DecodeOperand(tok, 0)
	if err != nil {
		t.Fatalf("DecodeOperand(%s): %v", tok, err)
	}
	return op
}

func TestExecMovCopiesAndUpdatesFlags(t *testing.T) {
	m := newTestMachine(t)
	dst := regOperand(m, "ax", t)
	src := immOperand(m, "0", t)
	if err := m.execMov(dst, src, 0); err != nil {
		t.Fatalf("execMov: %v", err)
	}
	if !m.Registers.Zero() {
		t.Error("expected Zero set after mov ax, 0")
	}
}

func TestExecAddAndSub(t *testing.T) {
	m := newTestMachine(t)
	ax := regOperand(m, "ax", t)
	if err := m.Registers.WriteWord("ax", 256); err != nil {
		t.Fatal(err)
	}
	if err := m.execAdd(ax, immOperand(m, "256", t), 0); err != nil {
		t.Fatalf("execAdd: %v", err)
	}
	v, _ := m.Registers.ReadWord("ax")
	if v != 512 {
		t.Errorf("ax = %d, want 512", v)
	}

	bx := regOperand(m, "bx", t)
	if err := m.Registers.WriteWord("bx", 1024); err != nil {
		t.Fatal(err)
	}
	if err := m.execSub(bx, immOperand(m, "512", t), 0); err != nil {
		t.Fatalf("execSub: %v", err)
	}
	if err := m.execAdd(bx, immOperand(m, "1", t), 0); err != nil {
		t.Fatalf("execAdd: %v", err)
	}
	v, _ = m.Registers.ReadWord("bx")
	if v != 513 {
		t.Errorf("bx = %d, want 513", v)
	}
}

func TestExecAddZeroIsNoOp(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteWord("cx", 42); err != nil {
		t.Fatal(err)
	}
	cx := regOperand(m, "cx", t)
	if err := m.execAdd(cx, immOperand(m, "0", t), 0); err != nil {
		t.Fatalf("execAdd: %v", err)
	}
	v, _ := m.Registers.ReadWord("cx")
	if v != 42 {
		t.Errorf("cx = %d, want 42 (add 0 is a no-op)", v)
	}
}

func TestExecIncDec(t *testing.T) {
	m := newTestMachine(t)
	al := regOperand(m, "al", t)
	if err := m.execInc(al, 0); err != nil {
		t.Fatalf("execInc: %v", err)
	}
	v, _ := m.Registers.ReadByte("al")
	if v != 1 {
		t.Errorf("al = %d, want 1", v)
	}
	if err := m.execDec(al, 0); err != nil {
		t.Fatalf("execDec: %v", err)
	}
	v, _ = m.Registers.ReadByte("al")
	if v != 0 {
		t.Errorf("al = %d, want 0", v)
	}
	if !m.Registers.Zero() {
		t.Error("expected Zero set after dec back to 0")
	}
}

func TestExecIncByteOverflowWraps(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteByte("al", 0xFF); err != nil {
		t.Fatal(err)
	}
	al := regOperand(m, "al", t)
	if err := m.execInc(al, 0); err != nil {
		t.Fatalf("execInc: %v", err)
	}
	v, _ := m.Registers.ReadByte("al")
	if v != 0 {
		t.Errorf("al = %d, want 0 (wrapped)", v)
	}
	if !m.Registers.Zero() {
		t.Error("expected Zero set")
	}
	if !m.Registers.Carry() {
		t.Error("expected Carry set on byte overflow")
	}
}

func TestExecLogicOps(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteByte("al", 0x0F); err != nil {
		t.Fatal(err)
	}
	al := regOperand(m, "al", t)
	if err := m.execLogic(al, immOperand(m, "0F0h", t), func(a, b uint32) uint32 { return a & b }, 0); err != nil {
		t.Fatalf("execLogic and: %v", err)
	}
	v, _ := m.Registers.ReadByte("al")
	if v != 0 {
		t.Errorf("al = 0x%X, want 0 (0x0F & 0xF0)", v)
	}
	if !m.Registers.Zero() {
		t.Error("expected Zero set")
	}
	if m.Registers.Carry() || m.Registers.Overflow() {
		t.Error("logic ops must clear Carry and Overflow")
	}
}

func TestExecNotAndNeg(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteByte("al", 0x0F); err != nil {
		t.Fatal(err)
	}
	al := regOperand(m, "al", t)
	if err := m.execNot(al, 0); err != nil {
		t.Fatalf("execNot: %v", err)
	}
	v, _ := m.Registers.ReadByte("al")
	if v != 0xF0 {
		t.Errorf("al = 0x%X, want 0xF0", v)
	}

	if err := m.Registers.WriteByte("bl", 5); err != nil {
		t.Fatal(err)
	}
	bl := regOperand(m, "bl", t)
	if err := m.execNeg(bl, 0); err != nil {
		t.Fatalf("execNeg: %v", err)
	}
	v, _ = m.Registers.ReadByte("bl")
	if v != 0xFB { // two's-complement of 5 at byte width
		t.Errorf("bl = 0x%X, want 0xFB", v)
	}
	if !m.Registers.Carry() {
		t.Error("expected Carry set negating a nonzero operand")
	}
}

func TestExecNegZeroClearsCarry(t *testing.T) {
	m := newTestMachine(t)
	bl := regOperand(m, "bl", t)
	if err := m.execNeg(bl, 0); err != nil {
		t.Fatalf("execNeg: %v", err)
	}
	if m.Registers.Carry() {
		t.Error("expected Carry clear negating zero")
	}
}

func TestExecShiftLeftAndRight(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteByte("bl", 1); err != nil {
		t.Fatal(err)
	}
	bl := regOperand(m, "bl", t)
	if err := m.execShift(bl, immOperand(m, "2", t), true, 0); err != nil {
		t.Fatalf("execShift left: %v", err)
	}
	v, _ := m.Registers.ReadByte("bl")
	if v != 4 {
		t.Errorf("bl = %d, want 4", v)
	}
	if err := m.execShift(bl, immOperand(m, "1", t), false, 0); err != nil {
		t.Fatalf("execShift right: %v", err)
	}
	v, _ = m.Registers.ReadByte("bl")
	if v != 2 {
		t.Errorf("bl = %d, want 2", v)
	}
}

func TestExecShiftCarryIsLastBitOut(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteByte("bl", 0x81); err != nil {
		t.Fatal(err)
	}
	bl := regOperand(m, "bl", t)
	if err := m.execShift(bl, immOperand(m, "1", t), true, 0); err != nil {
		t.Fatalf("execShift: %v", err)
	}
	if !m.Registers.Carry() {
		t.Error("expected Carry set from the bit shifted out of 0x81 << 1")
	}
}

func TestExecLeaWritesAddressNotValue(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteWord("bx", 50); err != nil {
		t.Fatal(err)
	}
	si := regOperand(m, "si", t)
	addr, err := m.EvaluateAddress("bx+2", 0)
	if err != nil {
		t.Fatalf("EvaluateAddress: %v", err)
	}
	if err := m.execLea(si, addr, 0); err != nil {
		t.Fatalf("execLea: %v", err)
	}
	v, _ := m.Registers.ReadWord("si")
	if v != 52 {
		t.Errorf("si = %d, want 52", v)
	}
}

func TestExecLeaByteRegisterFails(t *testing.T) {
	m := newTestMachine(t)
	al := regOperand(m, "al", t)
	if err := m.execLea(al, 10, 0); err == nil {
		t.Error("expected NotEnoughSpace for a byte lea destination")
	}
}

func TestCheckWidthImmediateMayBeNarrower(t *testing.T) {
	m := newTestMachine(t)
	ax := regOperand(m, "ax", t)
	imm := immOperand(m, "5", t) // byte-width immediate
	if err := CheckWidth(ax, imm, 0); err != nil {
		t.Errorf("expected a narrower immediate to be allowed into a wider dst: %v", err)
	}
}

func TestCheckWidthNonImmediateMustMatch(t *testing.T) {
	m := newTestMachine(t)
	ax := regOperand(m, "ax", t)
	al := regOperand(m, "al", t)
	if err := CheckWidth(ax, al, 0); err == nil {
		t.Error("expected width mismatch error between ax and al")
	}
}

func TestCheckWidthImmediateTooWideFails(t *testing.T) {
	m := newTestMachine(t)
	al := regOperand(m, "al", t)
	imm := immOperand(m, "1000", t) // word-width immediate
	if err := CheckWidth(al, imm, 0); err == nil {
		t.Error("expected error for a too-wide immediate into a byte dst")
	}
}
