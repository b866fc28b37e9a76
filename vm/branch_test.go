package vm

import "testing"

func TestExecCmpSetsFlagsWithoutWriteback(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteWord("ax", 3); err != nil {
		t.Fatal(err)
	}
	ax := regOperand(m, "ax", t)
	if err := m.execCmp(ax, immOperand(m, "3", t), 0); err != nil {
		t.Fatalf("execCmp: %v", err)
	}
	v, _ := m.Registers.ReadWord("ax")
	if v != 3 {
		t.Errorf("cmp must not write back; ax = %d, want 3", v)
	}
	if !m.Registers.Zero() {
		t.Error("expected Zero set comparing equal values")
	}
}

func TestExecCmpUnsignedCarry(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteWord("ax", 1); err != nil {
		t.Fatal(err)
	}
	ax := regOperand(m, "ax", t)
	if err := m.execCmp(ax, immOperand(m, "2", t), 0); err != nil {
		t.Fatalf("execCmp: %v", err)
	}
	if !m.Registers.Carry() {
		t.Error("expected Carry set when a < b unsigned")
	}
}

func TestJumpConditionTable(t *testing.T) {
	cases := []struct {
		mnemonic string
		setup    func(r *Registers)
		want     bool
	}{
		{"je", func(r *Registers) { r.SetZero(true) }, true},
		{"jne", func(r *Registers) { r.SetZero(true) }, false},
		{"jg", func(r *Registers) { r.SetZero(false); r.SetSign(false); r.SetOverflow(false) }, true},
		{"jg", func(r *Registers) { r.SetZero(true) }, false},
		{"jge", func(r *Registers) { r.SetSign(true); r.SetOverflow(true) }, true},
		{"jl", func(r *Registers) { r.SetSign(true); r.SetOverflow(false) }, true},
		{"jle", func(r *Registers) { r.SetZero(true) }, true},
		{"ja", func(r *Registers) { r.SetCarry(false); r.SetZero(false) }, true},
		{"ja", func(r *Registers) { r.SetCarry(false); r.SetZero(true) }, false},
		{"jae", func(r *Registers) { r.SetCarry(false) }, true},
		{"jb", func(r *Registers) { r.SetCarry(true) }, true},
		{"jbe", func(r *Registers) { r.SetCarry(false); r.SetZero(true) }, true},
	}
	for _, c := range cases {
		r := NewRegisters()
		c.setup(r)
		got := jumpConditions[c.mnemonic](r)
		if got != c.want {
			t.Errorf("%s: got %v, want %v", c.mnemonic, got, c.want)
		}
	}
}

func TestExecJumpToLabel(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Labels.Define("top", 5); err != nil {
		t.Fatal(err)
	}
	if err := m.execJump("jmp", "top", 0); err != nil {
		t.Fatalf("execJump: %v", err)
	}
	ip, _, _ := m.Registers.Read("ip")
	if ip != 5 {
		t.Errorf("ip = %d, want 5", ip)
	}
}

func TestExecJumpNotTakenLeavesIP(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteWord("ip", 9); err != nil {
		t.Fatal(err)
	}
	if err := m.Labels.Define("top", 5); err != nil {
		t.Fatal(err)
	}
	m.Registers.SetZero(false)
	if err := m.execJump("je", "top", 0); err != nil {
		t.Fatalf("execJump: %v", err)
	}
	ip, _, _ := m.Registers.Read("ip")
	if ip != 9 {
		t.Errorf("ip = %d, want 9 (untaken jump leaves IP alone)", ip)
	}
}

func TestExecJumpOutOfRangeFails(t *testing.T) {
	m := newTestMachine(t)
	if err := m.execJump("jmp", "99999", 0); err == nil {
		t.Error("expected InvalidPointer for an out-of-range jump target")
	}
}

func TestExecPushPopThroughOperands(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteWord("bx", 0x1234); err != nil {
		t.Fatal(err)
	}
	if err := m.execPush(regOperand(m, "bx", t), 0); err != nil {
		t.Fatalf("execPush: %v", err)
	}
	if err := m.execPop(regOperand(m, "cx", t), 0); err != nil {
		t.Fatalf("execPop: %v", err)
	}
	v, _ := m.Registers.ReadWord("cx")
	if v != 0x1234 {
		t.Errorf("cx = %#x, want 0x1234", v)
	}
}

func TestExecPopByteFails(t *testing.T) {
	m := newTestMachine(t)
	if err := m.execPop(regOperand(m, "al", t), 0); err == nil {
		t.Error("expected InvalidValue popping into a byte register")
	}
}

func TestExecCallAndRet(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteWord("ip", 2); err != nil {
		t.Fatal(err)
	}
	if err := m.execCall("10", 2); err != nil {
		t.Fatalf("execCall: %v", err)
	}
	ip, _, _ := m.Registers.Read("ip")
	if ip != 10 {
		t.Errorf("ip after call = %d, want 10", ip)
	}
	if err := m.execRet(0, 10); err != nil {
		t.Fatalf("execRet: %v", err)
	}
	ip, _, _ = m.Registers.Read("ip")
	if ip != 3 {
		t.Errorf("ip after ret = %d, want 3 (return line pushed by call)", ip)
	}
}
