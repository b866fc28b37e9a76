package vm

import "strings"

// Width identifies the size of a register view, memory access, or decoded
// operand value.
type Width int

const (
	WidthByte  Width = 1
	WidthWord  Width = 2
	WidthDword Width = 4
)

func (w Width) String() string {
	switch w {
	case WidthByte:
		return "byte"
	case WidthWord:
		return "word"
	case WidthDword:
		return "dword"
	default:
		return "unknown"
	}
}

// Mask returns the bitmask that isolates a value of this width.
func (w Width) Mask() uint32 {
	switch w {
	case WidthByte:
		return 0xFF
	case WidthWord:
		return 0xFFFF
	default:
		return 0xFFFFFFFF
	}
}

// cell indices for the ten backing 32-bit registers.
const (
	cellA = iota
	cellB
	cellC
	cellD
	cellSI
	cellDI
	cellBP
	cellSP
	cellIP
	cellFLAG
	cellCount
)

// registerView describes one named window onto a backing cell: its
// width, and the bit shift needed to reach it (0 for low byte/word/dword,
// 8 for a high-byte view).
type registerView struct {
	cell  int
	width Width
	shift uint
}

var registerViews = map[string]registerView{
	"al": {cellA, WidthByte, 0}, "ah": {cellA, WidthByte, 8}, "ax": {cellA, WidthWord, 0}, "eax": {cellA, WidthDword, 0},
	"bl": {cellB, WidthByte, 0}, "bh": {cellB, WidthByte, 8}, "bx": {cellB, WidthWord, 0}, "ebx": {cellB, WidthDword, 0},
	"cl": {cellC, WidthByte, 0}, "ch": {cellC, WidthByte, 8}, "cx": {cellC, WidthWord, 0}, "ecx": {cellC, WidthDword, 0},
	"dl": {cellD, WidthByte, 0}, "dh": {cellD, WidthByte, 8}, "dx": {cellD, WidthWord, 0}, "edx": {cellD, WidthDword, 0},
	"si": {cellSI, WidthWord, 0}, "esi": {cellSI, WidthDword, 0},
	"di": {cellDI, WidthWord, 0}, "edi": {cellDI, WidthDword, 0},
	"bp": {cellBP, WidthWord, 0}, "ebp": {cellBP, WidthDword, 0},
	"sp": {cellSP, WidthWord, 0},
	"ip": {cellIP, WidthWord, 0},
	"flag": {cellFLAG, WidthWord, 0},
}

// IsRegisterName reports whether tok names a known register view,
// case-insensitively.
func IsRegisterName(tok string) bool {
	_, ok := registerViews[strings.ToLower(tok)]
	return ok
}

// Registers is the ten-cell register file: A/B/C/D with
// byte-low/byte-high/word/dword views, SI/DI/BP with word/dword views,
// and SP/IP/FLAG as word-only cells.
type Registers struct {
	cells [cellCount]uint32
}

// NewRegisters returns a register file with every cell zeroed.
func NewRegisters() *Registers {
	return &Registers{}
}

func lookupView(name string) (registerView, error) {
	v, ok := registerViews[strings.ToLower(name)]
	if !ok {
		return registerView{}, &InvalidRegisterError{Name: name}
	}
	return v, nil
}

// WidthOf returns the fixed width of a named register view.
func (r *Registers) WidthOf(name string) (Width, error) {
	v, err := lookupView(name)
	if err != nil {
		return 0, err
	}
	return v.width, nil
}

// ReadByte returns bits 7..0 (shift 0) or 15..8 (shift 8) of the backing
// cell for a byte-width view such as AL or AH.
func (r *Registers) ReadByte(name string) (uint8, error) {
	v, err := lookupView(name)
	if err != nil {
		return 0, err
	}
	if v.width != WidthByte {
		return 0, &InvalidValueError{Msg: name + " is not a byte register"}
	}
	return uint8((r.cells[v.cell] >> v.shift) & 0xFF), nil
}

// ReadWord returns the low 16 bits of the backing cell for a word-width
// view.
func (r *Registers) ReadWord(name string) (uint16, error) {
	v, err := lookupView(name)
	if err != nil {
		return 0, err
	}
	if v.width != WidthWord {
		return 0, &InvalidValueError{Msg: name + " is not a word register"}
	}
	return uint16(r.cells[v.cell] & 0xFFFF), nil
}

// ReadDword returns the full backing cell for a dword-width view.
func (r *Registers) ReadDword(name string) (uint32, error) {
	v, err := lookupView(name)
	if err != nil {
		return 0, err
	}
	if v.width != WidthDword {
		return 0, &InvalidValueError{Msg: name + " is not a dword register"}
	}
	return r.cells[v.cell], nil
}

// Read returns the current value of a named view, widened to uint32,
// along with its width. Any view may be read through this entry point;
// it is the one the operand decoder and effective-address evaluator use.
func (r *Registers) Read(name string) (uint32, Width, error) {
	v, err := lookupView(name)
	if err != nil {
		return 0, 0, err
	}
	value := (r.cells[v.cell] >> v.shift) & v.width.Mask()
	return value, v.width, nil
}

// WriteByte writes an 8-bit value into a byte-width view, leaving the
// remaining bits of the backing cell untouched.
func (r *Registers) WriteByte(name string, value uint8) error {
	v, err := lookupView(name)
	if err != nil {
		return err
	}
	if v.width != WidthByte {
		return &InvalidValueError{Msg: name + " is not a byte register"}
	}
	clearMask := uint32(0xFF) << v.shift
	r.cells[v.cell] = (r.cells[v.cell] &^ clearMask) | (uint32(value) << v.shift)
	return nil
}

// WriteWord writes a 16-bit value into a word-width view, preserving the
// upper 16 bits of the backing cell.
func (r *Registers) WriteWord(name string, value uint16) error {
	v, err := lookupView(name)
	if err != nil {
		return err
	}
	if v.width != WidthWord {
		return &InvalidValueError{Msg: name + " is not a word register"}
	}
	if v.cell == cellFLAG {
		value &= FlagCarry | FlagParity | FlagZero | FlagSign | FlagOverflow
	}
	r.cells[v.cell] = (r.cells[v.cell] &^ 0xFFFF) | uint32(value)
	return nil
}

// WriteDword writes a full 32-bit value into a dword-width view.
func (r *Registers) WriteDword(name string, value uint32) error {
	v, err := lookupView(name)
	if err != nil {
		return err
	}
	if v.width != WidthDword {
		return &InvalidValueError{Msg: name + " is not a dword register"}
	}
	r.cells[v.cell] = value
	return nil
}

// Write stores value (already masked to its own width by the caller) into
// the named view at that view's fixed width.
func (r *Registers) Write(name string, value uint32) error {
	v, err := lookupView(name)
	if err != nil {
		return err
	}
	switch v.width {
	case WidthByte:
		return r.WriteByte(name, uint8(value))
	case WidthWord:
		return r.WriteWord(name, uint16(value))
	default:
		return r.WriteDword(name, value)
	}
}
