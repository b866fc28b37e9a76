package vm

import (
	"regexp"
	"strings"

	"sim8086/parser"
)

var labelNamePattern = regexp.MustCompile(`^[A-Za-z_]+$`)

// Labels is the name-to-line-index table produced by the dispatcher's
// first pass over the program text.
type Labels struct {
	byName map[string]int
}

// NewLabels returns an empty label table.
func NewLabels() *Labels {
	return &Labels{byName: make(map[string]int)}
}

// Define records name at lineIndex. Fails with VariableAlreadyExists on a
// duplicate definition.
func (l *Labels) Define(name string, lineIndex int) error {
	if _, exists := l.byName[name]; exists {
		return &VariableAlreadyExistsError{Line: lineIndex, Name: name}
	}
	l.byName[name] = lineIndex
	return nil
}

// Lookup returns the line index recorded for name.
func (l *Labels) Lookup(name string) (int, bool) {
	idx, ok := l.byName[name]
	return idx, ok
}

// labelDefinition reports whether line is of the form "name:" with a
// valid label name, and if so returns the bare name.
func labelDefinition(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasSuffix(trimmed, ":") {
		return "", false
	}
	name := strings.TrimSuffix(trimmed, ":")
	if !labelNamePattern.MatchString(name) {
		return "", false
	}
	return name, true
}

// ScanLabels performs the dispatcher's first pass: any line whose sole
// token is "name:" with a valid name is recorded at its line index. All
// other lines are skipped without side effects.
func ScanLabels(lines []string) (*Labels, error) {
	labels := NewLabels()
	for i, raw := range lines {
		line, ok := parser.Preprocess(raw)
		if !ok {
			continue
		}
		if name, ok := labelDefinition(line); ok {
			if err := labels.Define(name, i); err != nil {
				return nil, err
			}
		}
	}
	return labels, nil
}
