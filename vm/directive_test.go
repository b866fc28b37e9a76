package vm

import "testing"

func TestExecVariableDirectiveIntegers(t *testing.T) {
	m := newTestMachine(t)
	if err := m.execVariableDirective("arr", WidthByte, "1, 2, 3", 0); err != nil {
		t.Fatalf("execVariableDirective: %v", err)
	}
	v, err := m.Variables.Lookup("arr", 0)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if v.ByteLength != 3 {
		t.Errorf("ByteLength = %d, want 3", v.ByteLength)
	}
	for i, want := range []byte{1, 2, 3} {
		got, err := m.Memory.ReadByte(v.Start+uint32(i), 0)
		if err != nil {
			t.Fatalf("ReadByte: %v", err)
		}
		if got != want {
			t.Errorf("byte %d = %d, want %d", i, got, want)
		}
	}
}

func TestExecVariableDirectiveQuotedString(t *testing.T) {
	m := newTestMachine(t)
	if err := m.execVariableDirective("msg", WidthByte, `'HI'`, 0); err != nil {
		t.Fatalf("execVariableDirective: %v", err)
	}
	v, err := m.Variables.Lookup("msg", 0)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if v.ByteLength != 2 {
		t.Fatalf("ByteLength = %d, want 2", v.ByteLength)
	}
	b0, _ := m.Memory.ReadByte(v.Start, 0)
	b1, _ := m.Memory.ReadByte(v.Start+1, 0)
	if b0 != 'H' || b1 != 'I' {
		t.Errorf("got [%c %c], want [H I]", b0, b1)
	}
}

func TestExecVariableDirectiveDuplicateFails(t *testing.T) {
	m := newTestMachine(t)
	if err := m.execVariableDirective("x", WidthByte, "1", 0); err != nil {
		t.Fatal(err)
	}
	if err := m.execVariableDirective("x", WidthByte, "2", 0); err == nil {
		t.Error("expected VariableAlreadyExists for a duplicate name")
	}
}

func TestSplitVariableDirectiveRecognizesForm(t *testing.T) {
	name, w, rest, ok := splitVariableDirective("counter dw 0, 1, 2")
	if !ok {
		t.Fatal("expected a recognized variable directive")
	}
	if name != "counter" || w != WidthWord || rest != "0, 1, 2" {
		t.Errorf("got (%q, %v, %q), want (counter, word, \"0, 1, 2\")", name, w, rest)
	}
}

func TestSplitVariableDirectiveNameContainingKeyword(t *testing.T) {
	// The directive keyword must be located as the second token, not by a
	// substring search that would land inside a name like "mydb".
	name, w, rest, ok := splitVariableDirective("mydb db 7")
	if !ok {
		t.Fatal("expected a recognized variable directive")
	}
	if name != "mydb" || w != WidthByte || rest != "7" {
		t.Errorf("got (%q, %v, %q), want (mydb, byte, \"7\")", name, w, rest)
	}
}

func TestSplitVariableDirectiveRejectsMnemonics(t *testing.T) {
	if _, _, _, ok := splitVariableDirective("mov ax, bx"); ok {
		t.Error("mov must not be mistaken for a variable directive")
	}
}

func TestFormatCodepointPrintableAndFallback(t *testing.T) {
	if got := formatCodepoint('A'); got != "A" {
		t.Errorf("formatCodepoint('A') = %q, want A", got)
	}
	if got := formatCodepoint(3); got != "3" {
		t.Errorf("formatCodepoint(3) = %q, want 3 (falls back to decimal outside printable range)", got)
	}
}
