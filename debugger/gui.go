package debugger

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// GUI is the desktop front end for a Debugger, built on fyne: a
// lightweight register/flag/memory viewer with Step/Run/Reset buttons,
// bound to the line cursor instead of a program counter.
type GUI struct {
	Debugger *Debugger
	App      fyne.App
	Window   fyne.Window

	SourceView      *widget.TextGrid
	RegisterView    *widget.TextGrid
	MemoryView      *widget.TextGrid
	BreakpointsList *widget.List
	ConsoleOutput   *widget.TextGrid
	StatusLabel     *widget.Label
	Toolbar         *widget.Toolbar

	MemoryAddress uint32

	breakpoints []string

	consoleBuffer strings.Builder
	consoleMutex  sync.Mutex
}

// guiWriter redirects machine output to the GUI console.
type guiWriter struct {
	gui *GUI
}

func (w *guiWriter) Write(p []byte) (int, error) {
	w.gui.consoleMutex.Lock()
	defer w.gui.consoleMutex.Unlock()
	w.gui.consoleBuffer.Write(p)
	w.gui.updateConsole()
	return len(p), nil
}

// RunGUI runs the desktop debugger until the window is closed.
func RunGUI(dbg *Debugger) error {
	gui := newGUI(dbg)
	gui.Window.ShowAndRun()
	return nil
}

func newGUI(debugger *Debugger) *GUI {
	myApp := app.New()
	myWindow := myApp.NewWindow("sim8086 debugger")

	g := &GUI{
		Debugger: debugger,
		App:      myApp,
		Window:   myWindow,
	}

	g.initializeViews()
	g.buildLayout()
	g.setupToolbar()

	debugger.Machine.Output = &guiWriter{gui: g}

	myWindow.Resize(fyne.NewSize(1200, 800))
	return g
}

func (g *GUI) initializeViews() {
	g.SourceView = widget.NewTextGrid()
	g.updateSource()

	g.RegisterView = widget.NewTextGrid()
	g.updateRegisters()

	g.MemoryView = widget.NewTextGrid()
	g.updateMemory()

	g.breakpoints = []string{}
	g.BreakpointsList = widget.NewList(
		func() int { return len(g.breakpoints) },
		func() fyne.CanvasObject { return widget.NewLabel("template") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(g.breakpoints[id])
		},
	)
	g.updateBreakpoints()

	g.ConsoleOutput = widget.NewTextGrid()
	g.ConsoleOutput.SetText("")

	g.StatusLabel = widget.NewLabel("Ready")
}

func (g *GUI) buildLayout() {
	sourcePanel := container.NewBorder(widget.NewLabel("Source"), nil, nil, nil, container.NewScroll(g.SourceView))
	registerPanel := container.NewBorder(widget.NewLabel("Registers / Flags"), nil, nil, nil, container.NewScroll(g.RegisterView))
	memoryPanel := container.NewBorder(widget.NewLabel("Memory"), nil, nil, nil, container.NewScroll(g.MemoryView))
	breakpointsPanel := container.NewBorder(widget.NewLabel("Breakpoints"), nil, nil, nil, container.NewScroll(g.BreakpointsList))
	consolePanel := container.NewBorder(widget.NewLabel("Console"), nil, nil, nil, container.NewScroll(g.ConsoleOutput))

	rightTop := container.NewVSplit(registerPanel, breakpointsPanel)
	rightTop.SetOffset(0.5)

	bottomTabs := container.NewAppTabs(
		container.NewTabItem("Memory", memoryPanel),
		container.NewTabItem("Console", consolePanel),
	)

	rightPanel := container.NewVSplit(rightTop, bottomTabs)
	rightPanel.SetOffset(0.5)

	mainSplit := container.NewHSplit(sourcePanel, rightPanel)
	mainSplit.SetOffset(0.55)

	statusBar := container.NewBorder(nil, nil, nil, nil, g.StatusLabel)
	content := container.NewBorder(g.Toolbar, statusBar, nil, nil, mainSplit)
	g.Window.SetContent(content)
}

func (g *GUI) setupToolbar() {
	g.Toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.MediaPlayIcon(), func() { g.runProgram() }),
		widget.NewToolbarAction(theme.MediaSkipNextIcon(), func() { g.stepProgram() }),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() { g.resetProgram() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentAddIcon(), func() { g.addBreakpoint() }),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() { g.clearBreakpoints() }),
	)
}

func (g *GUI) updateViews() {
	g.updateSource()
	g.updateRegisters()
	g.updateMemory()
	g.updateBreakpoints()
	g.updateConsole()
}

func (g *GUI) updateSource() {
	var sb strings.Builder
	m := g.Debugger.Machine
	cursor := m.Cursor()

	lo, hi := cursor-10, cursor+30
	if lo < 0 {
		lo = 0
	}
	if hi >= len(m.Lines) {
		hi = len(m.Lines) - 1
	}
	for i := lo; i <= hi; i++ {
		prefix := "  "
		if i == cursor {
			prefix = "> "
		}
		if g.Debugger.Breakpoints.At(i) != nil {
			prefix = "* "
		}
		sb.WriteString(fmt.Sprintf("%s%4d: %s\n", prefix, i, m.Lines[i]))
	}
	g.SourceView.SetText(sb.String())
}

func (g *GUI) updateRegisters() {
	var sb strings.Builder
	r := g.Debugger.Machine.Registers

	sb.WriteString("Registers:\n")
	for _, name := range []string{"eax", "ebx", "ecx", "edx", "esi", "edi", "ebp"} {
		v, _, _ := r.Read(name)
		sb.WriteString(fmt.Sprintf("%-4s 0x%08X  (%d)\n", name, v, v))
	}
	sp, _, _ := r.Read("sp")
	ip, _, _ := r.Read("ip")
	sb.WriteString(fmt.Sprintf("sp   0x%04X\n", sp))
	sb.WriteString(fmt.Sprintf("ip   0x%04X\n", ip))

	sb.WriteString("\nFlags:\n")
	sb.WriteString(fmt.Sprintf("Carry=%v Parity=%v Zero=%v Sign=%v Overflow=%v\n",
		r.Carry(), r.Parity(), r.Zero(), r.Sign(), r.Overflow()))

	g.RegisterView.SetText(sb.String())
}

func (g *GUI) updateMemory() {
	var sb strings.Builder
	mem := g.Debugger.Machine.Memory
	addr := g.MemoryAddress & 0xFFFFFFF0

	sb.WriteString(fmt.Sprintf("Memory at 0x%04X:\n", addr))
	for row := uint32(0); row < 16; row++ {
		lineAddr := addr + row*16
		sb.WriteString(fmt.Sprintf("%04X: ", lineAddr))
		var ascii strings.Builder
		for col := uint32(0); col < 16; col++ {
			b, err := mem.ReadByte(lineAddr+col, 0)
			if err != nil {
				sb.WriteString("?? ")
				ascii.WriteString(".")
				continue
			}
			sb.WriteString(fmt.Sprintf("%02X ", b))
			if b >= 32 && b < 127 {
				ascii.WriteByte(b)
			} else {
				ascii.WriteString(".")
			}
		}
		sb.WriteString(" " + ascii.String() + "\n")
	}
	g.MemoryView.SetText(sb.String())
}

func (g *GUI) updateBreakpoints() {
	bps := g.Debugger.Breakpoints.All()
	g.breakpoints = make([]string, 0, len(bps))
	for _, bp := range bps {
		status := "enabled"
		if !bp.Enabled {
			status = "disabled"
		}
		g.breakpoints = append(g.breakpoints, fmt.Sprintf("%d: line %d (%s, hits %d)", bp.ID, bp.Line, status, bp.HitCount))
	}
	g.BreakpointsList.Refresh()
}

func (g *GUI) updateConsole() {
	g.consoleMutex.Lock()
	defer g.consoleMutex.Unlock()
	g.ConsoleOutput.SetText(g.consoleBuffer.String())
}

func (g *GUI) runProgram() {
	g.StatusLabel.SetText("Running...")
	go func() {
		for g.Debugger.Machine.Cursor() < len(g.Debugger.Machine.Lines) {
			if err := g.Debugger.Machine.Step(); err != nil {
				g.StatusLabel.SetText(fmt.Sprintf("error: %v", err))
				g.updateViews()
				return
			}
			if hit, reason := g.Debugger.ShouldBreak(); hit {
				g.StatusLabel.SetText(reason)
				g.updateViews()
				return
			}
		}
		g.StatusLabel.SetText("program exited")
		g.updateViews()
	}()
}

func (g *GUI) stepProgram() {
	m := g.Debugger.Machine
	if m.Cursor() >= len(m.Lines) {
		g.StatusLabel.SetText("program has already exited")
		return
	}
	if err := m.Step(); err != nil {
		g.StatusLabel.SetText(fmt.Sprintf("error: %v", err))
	} else {
		g.StatusLabel.SetText(fmt.Sprintf("stepped to line %d", m.Cursor()))
	}
	g.updateViews()
}

func (g *GUI) resetProgram() {
	if err := g.Debugger.cmdReset(); err != nil {
		g.StatusLabel.SetText(fmt.Sprintf("error: %v", err))
		return
	}
	g.Debugger.Machine.Output = &guiWriter{gui: g}
	g.StatusLabel.SetText("machine reset")
	g.updateViews()
}

func (g *GUI) addBreakpoint() {
	line := g.Debugger.Machine.Cursor()
	bp := g.Debugger.Breakpoints.Add(line, false)
	g.updateBreakpoints()
	g.StatusLabel.SetText(fmt.Sprintf("breakpoint %d at line %d", bp.ID, bp.Line))
}

func (g *GUI) clearBreakpoints() {
	g.Debugger.Breakpoints.Clear()
	g.updateBreakpoints()
	g.StatusLabel.SetText("all breakpoints cleared")
}
