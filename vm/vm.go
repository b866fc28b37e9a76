// Package vm implements the execution engine for the simplified
// 8086/IA-32-flavored assembly dialect: register file, flat segmented
// memory, variable and label tables, effective-address evaluation,
// instruction dispatch, and flag-producing arithmetic/control flow.
package vm

import (
	"fmt"
	"io"
	"os"

	"sim8086/parser"
)

// State is the run state of a Machine.
type State int

const (
	StateReady State = iota
	StateRunning
	StateHalted
	StateError
)

// Machine ties together every collaborator the engine owns for its
// lifetime: the register file, memory, variable and label tables, the
// program text, and the line cursor that drives the interpreter loop.
type Machine struct {
	Registers *Registers
	Memory    *Memory
	Variables *Variables
	Labels    *Labels

	Lines  []string
	cursor int

	State    State
	LastErr  error
	Output   io.Writer
	MaxLines int // 0 means unbounded
	executed uint64
}

// New constructs a Machine over the given program text. Labels are
// scanned immediately; the cursor starts at line 0 and SP is initialized
// to the base of the stack segment.
func New(lines []string) (*Machine, error) {
	labels, err := ScanLabels(lines)
	if err != nil {
		return nil, err
	}
	m := &Machine{
		Registers: NewRegisters(),
		Memory:    NewMemory(),
		Variables: NewVariables(),
		Labels:    labels,
		Lines:     lines,
		Output:    os.Stdout,
		State:     StateReady,
	}
	if err := m.Registers.WriteWord("sp", uint16(StackSegmentBase)); err != nil {
		return nil, err
	}
	return m, nil
}

// Cursor returns the current line index.
func (m *Machine) Cursor() int { return m.cursor }

// Run executes the program from the current cursor until it runs past
// the last line, a fatal error is raised, or MaxLines lines have been
// stepped (the host's guard against runaway loops). Blank, comment-only
// and label lines count toward MaxLines like instruction lines.
func (m *Machine) Run() error {
	m.State = StateRunning
	for m.cursor >= 0 && m.cursor < len(m.Lines) {
		if m.MaxLines > 0 && m.executed >= uint64(m.MaxLines) {
			return fmt.Errorf("line %d: exceeded max-lines limit of %d", m.cursor, m.MaxLines)
		}
		if err := m.Step(); err != nil {
			m.State = StateError
			m.LastErr = err
			return err
		}
		m.executed++
	}
	m.State = StateHalted
	return nil
}

// Step executes exactly one source line (a blank/comment-only or
// label-definition line only advances the cursor) and synchronizes the
// line cursor from IP afterward, so jumps performed through IP writes
// take effect on the next fetch.
func (m *Machine) Step() error {
	raw := m.Lines[m.cursor]
	line, ok := parser.Preprocess(raw)
	if !ok {
		m.cursor++
		return nil
	}
	if _, isLabel := labelDefinition(line); isLabel {
		m.cursor++
		return nil
	}

	next := uint32(m.cursor + 1)
	if err := m.Registers.WriteWord("ip", uint16(next)); err != nil {
		return err
	}

	if err := m.dispatch(line, m.cursor); err != nil {
		return err
	}

	ip, _, err := m.Registers.Read("ip")
	if err != nil {
		return err
	}
	m.cursor = int(ip)
	return nil
}
