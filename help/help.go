// Package help holds the static mnemonic-to-usage-string catalog the
// dispatcher consults when a line fails to match any recognized
// syntactic form.
package help

var catalog = map[string]string{
	"mov":   "mov dst, src - copy src into dst",
	"lea":   "lea reg, [addr] - load effective address into reg",
	"push":  "push src - push src onto the stack",
	"pop":   "pop dst - pop the stack into dst (not a byte operand)",
	"add":   "add dst, src - dst := dst + src",
	"sub":   "sub dst, src - dst := dst - src",
	"inc":   "inc dst - dst := dst + 1",
	"dec":   "dec dst - dst := dst - 1",
	"mul":   "mul src - unsigned accumulator *= src",
	"imul":  "imul src - signed accumulator *= src",
	"div":   "div src - unsigned accumulator /= src",
	"idiv":  "idiv src - signed accumulator /= src",
	"and":   "and dst, src - dst := dst & src",
	"or":    "or dst, src - dst := dst | src",
	"xor":   "xor dst, src - dst := dst ^ src",
	"not":   "not dst - dst := ^dst",
	"neg":   "neg dst - dst := -dst",
	"shl":   "shl dst, count - dst := dst << count",
	"shr":   "shr dst, count - dst := dst >> count",
	"cmp":   "cmp a, b - set flags from a - b, no writeback",
	"jmp":   "jmp target - unconditional jump",
	"je":    "je target - jump if Zero",
	"jz":    "jz target - jump if Zero",
	"jne":   "jne target - jump if not Zero",
	"jnz":   "jnz target - jump if not Zero",
	"jg":    "jg target - jump if greater (signed)",
	"jge":   "jge target - jump if greater or equal (signed)",
	"jl":    "jl target - jump if less (signed)",
	"jle":   "jle target - jump if less or equal (signed)",
	"ja":    "ja target - jump if above (unsigned)",
	"jae":   "jae target - jump if above or equal (unsigned)",
	"jb":    "jb target - jump if below (unsigned)",
	"jbe":   "jbe target - jump if below or equal (unsigned)",
	"call":  "call target - push return line, jump to target",
	"ret":   "ret [N] - pop return line, optionally discard N bytes",
	"print": "print expr | print N, [addr] - optionally prefixed with char",
	"nop":   "nop - no operation",
	"db":    "name db v1, v2, ... - declare byte-sized variable",
	"dw":    "name dw v1, v2, ... - declare word-sized variable",
	"dd":    "name dd v1, v2, ... - declare dword-sized variable",
}

// For returns the usage string for mnemonic, or a generic fallback when
// the mnemonic itself is unrecognized.
func For(mnemonic string) string {
	if s, ok := catalog[mnemonic]; ok {
		return s
	}
	return "unrecognized mnemonic " + mnemonic
}
