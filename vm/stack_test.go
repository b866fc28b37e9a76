package vm

import "testing"

func TestPushPopRoundTrip(t *testing.T) {
	m := newTestMachine(t)
	sp0, _, err := m.Registers.Read("sp")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Push(0xBEEF, WidthWord, 0); err != nil {
		t.Fatalf("Push: %v", err)
	}
	v, err := m.Pop(WidthWord, 0)
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if v != 0xBEEF {
		t.Errorf("popped %#x, want 0xBEEF", v)
	}
	sp1, _, _ := m.Registers.Read("sp")
	if sp1 != sp0 {
		t.Errorf("sp after push+pop = %d, want %d (unchanged)", sp1, sp0)
	}
}

func TestStackGrowsUpward(t *testing.T) {
	m := newTestMachine(t)
	sp0, _, _ := m.Registers.Read("sp")
	if err := m.Push(1, WidthByte, 0); err != nil {
		t.Fatalf("Push: %v", err)
	}
	sp1, _, _ := m.Registers.Read("sp")
	if sp1 != sp0+1 {
		t.Errorf("sp after push = %d, want %d (stack grows upward)", sp1, sp0+1)
	}
}

func TestPopUnderflowFails(t *testing.T) {
	m := newTestMachine(t)
	if _, err := m.Pop(WidthWord, 0); err == nil {
		t.Error("expected StackUnderflow popping an empty stack")
	}
}

func TestPushOverflowFails(t *testing.T) {
	m := newTestMachine(t)
	if err := m.Registers.WriteWord("sp", uint16(MemorySize-1)); err != nil {
		t.Fatal(err)
	}
	if err := m.Push(0, WidthDword, 0); err == nil {
		t.Error("expected StackOverflow pushing past memory end")
	}
}
