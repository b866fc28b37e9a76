package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLinesPreservesBlankAndCommentLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.asm")
	content := "mov ax, 1\n\n; a comment\nadd ax, 2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	lines, err := LoadLines(path)
	if err != nil {
		t.Fatalf("LoadLines: %v", err)
	}
	want := []string{"mov ax, 1", "", "; a comment", "add ax, 2"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLoadLinesMissingFileFails(t *testing.T) {
	if _, err := LoadLines(filepath.Join(t.TempDir(), "nope.asm")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
