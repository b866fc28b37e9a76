// Package debugger wraps a vm.Machine with breakpoints, stepping, and
// both a terminal (tcell/tview) and a desktop (fyne) front end.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"sim8086/vm"
)

// Debugger holds a running Machine plus the interactive state around it:
// breakpoints, command history, and a text output buffer the front ends
// drain and render.
type Debugger struct {
	Machine *vm.Machine

	Breakpoints *BreakpointManager
	History     *CommandHistory

	Running     bool
	LastCommand string

	Output strings.Builder
}

// NewDebugger wraps machine for interactive stepping.
func NewDebugger(machine *vm.Machine) *Debugger {
	return &Debugger{
		Machine:     machine,
		Breakpoints: NewBreakpointManager(),
		History:     NewCommandHistory(),
	}
}

// Printf appends formatted text to the output buffer.
func (d *Debugger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&d.Output, format, args...)
}

// Println appends a line to the output buffer.
func (d *Debugger) Println(args ...interface{}) {
	fmt.Fprintln(&d.Output, args...)
}

// GetOutput returns and clears the output buffer.
func (d *Debugger) GetOutput() string {
	out := d.Output.String()
	d.Output.Reset()
	return out
}

// ExecuteCommand parses and runs one debugger command line.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}
	return d.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "run", "r":
		return d.cmdRun()
	case "continue", "c":
		return d.cmdContinue()
	case "step", "s":
		return d.cmdStep()
	case "break", "b":
		return d.cmdBreak(args, false)
	case "tbreak", "tb":
		return d.cmdBreak(args, true)
	case "delete", "d":
		return d.cmdDelete(args)
	case "enable":
		return d.cmdSetEnabled(args, true)
	case "disable":
		return d.cmdSetEnabled(args, false)
	case "print", "p":
		return d.cmdPrint(args)
	case "info", "i":
		return d.cmdInfo(args)
	case "list", "l":
		return d.cmdList(args)
	case "reset":
		return d.cmdReset()
	case "help", "h", "?":
		return d.cmdHelp()
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// ShouldBreak reports whether execution should pause at the current line
// cursor (a breakpoint is there and is enabled).
func (d *Debugger) ShouldBreak() (bool, string) {
	bp := d.Breakpoints.ProcessHit(d.Machine.Cursor())
	if bp == nil {
		return false, ""
	}
	return true, fmt.Sprintf("breakpoint %d", bp.ID)
}

func (d *Debugger) cmdRun() error {
	d.Running = true
	return d.runUntilBreakOrHalt()
}

func (d *Debugger) cmdContinue() error {
	if !d.Running {
		return fmt.Errorf("program is not running")
	}
	return d.runUntilBreakOrHalt()
}

func (d *Debugger) runUntilBreakOrHalt() error {
	for d.Machine.Cursor() < len(d.Machine.Lines) {
		if err := d.Machine.Step(); err != nil {
			d.Running = false
			return err
		}
		if hit, reason := d.ShouldBreak(); hit {
			d.Println(reason)
			return nil
		}
	}
	d.Running = false
	d.Println("program exited")
	return nil
}

func (d *Debugger) cmdStep() error {
	if d.Machine.Cursor() >= len(d.Machine.Lines) {
		return fmt.Errorf("program has already exited")
	}
	d.Running = true
	if err := d.Machine.Step(); err != nil {
		d.Running = false
		return err
	}
	d.Printf("line %d\n", d.Machine.Cursor())
	return nil
}

func (d *Debugger) cmdBreak(args []string, temporary bool) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: break <line>")
	}
	line, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid line number: %s", args[0])
	}
	bp := d.Breakpoints.Add(line, temporary)
	d.Printf("breakpoint %d at line %d\n", bp.ID, bp.Line)
	return nil
}

func (d *Debugger) cmdDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint id: %s", args[0])
	}
	return d.Breakpoints.Delete(id)
}

func (d *Debugger) cmdSetEnabled(args []string, enabled bool) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: enable|disable <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint id: %s", args[0])
	}
	return d.Breakpoints.SetEnabled(id, enabled)
}

func (d *Debugger) cmdPrint(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: print <register>")
	}
	v, w, err := d.Machine.Registers.Read(args[0])
	if err != nil {
		return err
	}
	d.Printf("%s = %d (0x%X, %s)\n", args[0], v, v, w)
	return nil
}

func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info registers|flags|breakpoints")
	}
	switch args[0] {
	case "registers", "reg":
		for _, name := range []string{"eax", "ebx", "ecx", "edx", "esi", "edi", "ebp", "sp", "ip"} {
			v, _, _ := d.Machine.Registers.Read(name)
			d.Printf("%-4s 0x%08X\n", name, v)
		}
	case "flags":
		r := d.Machine.Registers
		d.Printf("C=%v P=%v Z=%v S=%v O=%v\n", r.Carry(), r.Parity(), r.Zero(), r.Sign(), r.Overflow())
	case "breakpoints":
		for _, bp := range d.Breakpoints.All() {
			d.Printf("%d: line %d enabled=%v hits=%d\n", bp.ID, bp.Line, bp.Enabled, bp.HitCount)
		}
	default:
		return fmt.Errorf("unknown info topic: %s", args[0])
	}
	return nil
}

func (d *Debugger) cmdList(args []string) error {
	center := d.Machine.Cursor()
	if len(args) == 1 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			center = n
		}
	}
	lo, hi := center-5, center+5
	if lo < 0 {
		lo = 0
	}
	if hi >= len(d.Machine.Lines) {
		hi = len(d.Machine.Lines) - 1
	}
	for i := lo; i <= hi; i++ {
		marker := "  "
		if i == d.Machine.Cursor() {
			marker = "->"
		}
		d.Printf("%s %4d %s\n", marker, i, d.Machine.Lines[i])
	}
	return nil
}

func (d *Debugger) cmdReset() error {
	m, err := vm.New(d.Machine.Lines)
	if err != nil {
		return err
	}
	m.Output = d.Machine.Output
	m.MaxLines = d.Machine.MaxLines
	d.Machine = m
	d.Running = false
	d.Println("machine reset")
	return nil
}

func (d *Debugger) cmdHelp() error {
	d.Println("run|r, continue|c, step|s, break|b <line>, tbreak|tb <line>, delete|d <id>,")
	d.Println("enable|disable <id>, print|p <reg>, info|i registers|flags|breakpoints,")
	d.Println("list|l [line], reset, help|h")
	return nil
}
