package vm

import "testing"

func TestScanLabelsFindsDefinitions(t *testing.T) {
	lines := []string{
		"mov ax, 1",
		"loop:",
		"inc ax",
		"jmp loop",
	}
	labels, err := ScanLabels(lines)
	if err != nil {
		t.Fatalf("ScanLabels: %v", err)
	}
	idx, ok := labels.Lookup("loop")
	if !ok || idx != 1 {
		t.Errorf("loop = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestScanLabelsDuplicateFails(t *testing.T) {
	lines := []string{"start:", "nop", "start:"}
	if _, err := ScanLabels(lines); err == nil {
		t.Error("expected VariableAlreadyExists for a duplicate label")
	}
}

func TestScanLabelsSkipsBlankAndCommentLines(t *testing.T) {
	lines := []string{"", "; just a comment", "top:", "nop"}
	labels, err := ScanLabels(lines)
	if err != nil {
		t.Fatalf("ScanLabels: %v", err)
	}
	idx, ok := labels.Lookup("top")
	if !ok || idx != 2 {
		t.Errorf("top = (%d, %v), want (2, true)", idx, ok)
	}
}

func TestLabelDefinitionRecognizesValidNames(t *testing.T) {
	if _, ok := labelDefinition("not_a_label"); ok {
		t.Error("a line without a trailing colon is not a label definition")
	}
	if name, ok := labelDefinition("  my_label:  "); !ok || name != "my_label" {
		t.Errorf("got (%q, %v), want (my_label, true)", name, ok)
	}
	if _, ok := labelDefinition("bad-name:"); ok {
		t.Error("label names may only contain letters and underscores")
	}
}
