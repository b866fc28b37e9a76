// Package loader is the engine's sole file-I/O collaborator: it reads a
// source file into an ordered slice of raw text lines and nothing else.
package loader

import (
	"bufio"
	"fmt"
	"os"
)

// LoadLines reads path and returns one slice entry per line of text,
// trailing newline stripped, preserving blank and comment-only lines so
// the engine's line cursor can index directly into the result.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	return lines, nil
}
