package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is the full-screen terminal front end over a Debugger, built on
// tcell/tview: a source pane tracking the line cursor, register/flag/
// memory/breakpoint panes, an output log, and a command input line.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application
	Pages    *tview.Pages

	MainLayout *tview.Flex
	LeftPanel  *tview.Flex
	RightPanel *tview.Flex

	SourceView      *tview.TextView
	RegisterView    *tview.TextView
	MemoryView      *tview.TextView
	BreakpointsView *tview.TextView
	OutputView      *tview.TextView
	CommandInput    *tview.InputField

	MemoryAddress uint32
}

// NewTUI builds a TUI wrapping debugger.
func NewTUI(debugger *Debugger) *TUI {
	t := &TUI{Debugger: debugger}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	t.App = tview.NewApplication()

	t.SourceView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.SourceView.SetBorder(true).SetTitle(" Source ")

	t.RegisterView = tview.NewTextView().SetDynamicColors(true).SetScrollable(false)
	t.RegisterView.SetBorder(true).SetTitle(" Registers / Flags ")

	t.MemoryView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.BreakpointsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.BreakpointsView.SetBorder(true).SetTitle(" Breakpoints ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
	t.CommandInput.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			if prev := t.Debugger.History.Previous(); prev != "" {
				t.CommandInput.SetText(prev)
			}
			return nil
		case tcell.KeyDown:
			t.CommandInput.SetText(t.Debugger.History.Next())
			return nil
		}
		return event
	})
}

func (t *TUI) buildLayout() {
	t.LeftPanel = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.SourceView, 0, 3, false)

	rightTop := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 9, 0, false).
		AddItem(t.MemoryView, 0, 1, false)

	t.RightPanel = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(rightTop, 0, 3, false).
		AddItem(t.BreakpointsView, 8, 0, false)

	mainContent := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(t.LeftPanel, 0, 2, false).
		AddItem(t.RightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			t.executeCommand("help")
			return nil
		case tcell.KeyF5:
			t.executeCommand("continue")
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd != "" {
		t.executeCommand(cmd)
		t.CommandInput.SetText("")
	}
}

func (t *TUI) executeCommand(cmd string) {
	t.Debugger.Output.Reset()
	err := t.Debugger.ExecuteCommand(cmd)
	output := t.Debugger.GetOutput()
	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]error:[white] %v\n", err))
	}
	if output != "" {
		t.WriteOutput(output)
	}
	t.RefreshAll()
}

// WriteOutput appends text to the output pane.
func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

// RefreshAll redraws every pane from current machine state.
func (t *TUI) RefreshAll() {
	t.UpdateSourceView()
	t.UpdateRegisterView()
	t.UpdateMemoryView()
	t.UpdateBreakpointsView()
	t.App.Draw()
}

// UpdateSourceView shows source lines around the current line cursor,
// marking the cursor and any breakpoints.
func (t *TUI) UpdateSourceView() {
	t.SourceView.Clear()
	m := t.Debugger.Machine
	cursor := m.Cursor()

	lo, hi := cursor-10, cursor+20
	if lo < 0 {
		lo = 0
	}
	if hi >= len(m.Lines) {
		hi = len(m.Lines) - 1
	}

	var lines []string
	for i := lo; i <= hi; i++ {
		marker := "  "
		color := "white"
		if i == cursor {
			marker = "->"
			color = "yellow"
		}
		if t.Debugger.Breakpoints.At(i) != nil {
			marker = "* "
		}
		lines = append(lines, fmt.Sprintf("[%s]%s %4d: %s[white]", color, marker, i, m.Lines[i]))
	}
	t.SourceView.SetText(strings.Join(lines, "\n"))
}

// UpdateRegisterView shows the ten registers and the five flags.
func (t *TUI) UpdateRegisterView() {
	t.RegisterView.Clear()
	r := t.Debugger.Machine.Registers

	var lines []string
	names := [][2]string{{"eax", "A"}, {"ebx", "B"}, {"ecx", "C"}, {"edx", "D"}, {"esi", "SI"}, {"edi", "DI"}, {"ebp", "BP"}}
	var cols []string
	for _, n := range names {
		v, _, _ := r.Read(n[0])
		cols = append(cols, fmt.Sprintf("%-2s: 0x%08X", n[1], v))
		if len(cols) == 2 {
			lines = append(lines, strings.Join(cols, "  "))
			cols = nil
		}
	}
	if len(cols) > 0 {
		lines = append(lines, strings.Join(cols, "  "))
	}
	sp, _, _ := r.Read("sp")
	ip, _, _ := r.Read("ip")
	lines = append(lines, fmt.Sprintf("SP: 0x%04X  IP: 0x%04X", sp, ip))
	lines = append(lines, fmt.Sprintf("C=%v P=%v Z=%v S=%v O=%v", r.Carry(), r.Parity(), r.Zero(), r.Sign(), r.Overflow()))

	t.RegisterView.SetText(strings.Join(lines, "\n"))
}

// UpdateMemoryView shows 16 rows of 16 bytes starting at MemoryAddress.
func (t *TUI) UpdateMemoryView() {
	t.MemoryView.Clear()
	mem := t.Debugger.Machine.Memory

	var lines []string
	lines = append(lines, fmt.Sprintf("[yellow]address: 0x%04X[white]", t.MemoryAddress))

	for row := 0; row < 16; row++ {
		rowAddr := t.MemoryAddress + uint32(row*16)
		line := fmt.Sprintf("0x%04X: ", rowAddr)
		var hexBytes []string
		var ascii []byte
		for col := 0; col < 16; col++ {
			b, err := mem.ReadByte(rowAddr+uint32(col), 0)
			if err != nil {
				hexBytes = append(hexBytes, "??")
				ascii = append(ascii, '.')
				continue
			}
			hexBytes = append(hexBytes, fmt.Sprintf("%02X", b))
			if b >= 32 && b < 127 {
				ascii = append(ascii, b)
			} else {
				ascii = append(ascii, '.')
			}
		}
		line += strings.Join(hexBytes, " ") + "  " + string(ascii)
		lines = append(lines, line)
	}
	t.MemoryView.SetText(strings.Join(lines, "\n"))
}

// UpdateBreakpointsView lists every breakpoint and its hit count.
func (t *TUI) UpdateBreakpointsView() {
	t.BreakpointsView.Clear()
	var lines []string
	bps := t.Debugger.Breakpoints.All()
	if len(bps) == 0 {
		lines = append(lines, "[yellow]no breakpoints set[white]")
	}
	for _, bp := range bps {
		status, color := "enabled", "green"
		if !bp.Enabled {
			status, color = "disabled", "red"
		}
		lines = append(lines, fmt.Sprintf("  %d: [%s]%s[white] line %d (hits: %d)", bp.ID, color, status, bp.Line, bp.HitCount))
	}
	t.BreakpointsView.SetText(strings.Join(lines, "\n"))
}

// Run starts the TUI event loop.
func (t *TUI) Run() error {
	t.RefreshAll()
	t.WriteOutput("[green]debugger TUI[white]\n")
	t.WriteOutput("F1 help, F5 continue, F11 step; type 'help' for the full command list\n\n")
	return t.App.SetRoot(t.Pages, true).SetFocus(t.CommandInput).Run()
}

// Stop halts the TUI event loop.
func (t *TUI) Stop() {
	t.App.Stop()
}
