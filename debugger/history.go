package debugger

// CommandHistory keeps the debugger commands entered so far and a cursor
// for up/down recall in the TUI input line. An empty string from Previous
// or Next means the edge of the history was reached.
type CommandHistory struct {
	commands []string
	maxSize  int
	cursor   int
}

// NewCommandHistory returns an empty history bounded to maxSize entries.
func NewCommandHistory() *CommandHistory {
	return &CommandHistory{maxSize: 1000}
}

// Add records cmd and resets the recall cursor to the end. Empty commands
// and immediate repeats of the last command are not recorded.
func (h *CommandHistory) Add(cmd string) {
	if cmd == "" {
		return
	}
	if n := len(h.commands); n == 0 || h.commands[n-1] != cmd {
		h.commands = append(h.commands, cmd)
		if len(h.commands) > h.maxSize {
			h.commands = h.commands[len(h.commands)-h.maxSize:]
		}
	}
	h.cursor = len(h.commands)
}

// Previous moves the recall cursor one entry back and returns it.
func (h *CommandHistory) Previous() string {
	if h.cursor == 0 {
		return ""
	}
	h.cursor--
	return h.commands[h.cursor]
}

// Next moves the recall cursor one entry forward and returns it, or ""
// once the cursor is past the newest entry.
func (h *CommandHistory) Next() string {
	if h.cursor >= len(h.commands)-1 {
		h.cursor = len(h.commands)
		return ""
	}
	h.cursor++
	return h.commands[h.cursor]
}

// Size returns the number of recorded commands.
func (h *CommandHistory) Size() int {
	return len(h.commands)
}
