package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"sim8086/config"
	"sim8086/debugger"
	"sim8086/loader"
	"sim8086/vm"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		debugMode   = flag.Bool("debug", false, "Start in CLI debugger mode")
		tuiMode     = flag.Bool("tui", false, "Start in TUI debugger mode")
		guiMode     = flag.Bool("gui", false, "Start in desktop GUI debugger mode")
		maxLines    = flag.Int("max-lines", 0, "Maximum lines executed before halt (0 = use config default)")
		verboseMode = flag.Bool("verbose", false, "Print a register/flag dump after the program halts")
		configPath  = flag.String("config", "", "Config file path (default: platform config dir)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("sim8086 %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "error: missing assembly file")
		printHelp()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)
		os.Exit(1)
	}

	lines, err := loader.LoadLines(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	machine, err := vm.New(lines)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *maxLines > 0 {
		machine.MaxLines = *maxLines
	} else if cfg.Execution.MaxLines > 0 {
		machine.MaxLines = cfg.Execution.MaxLines
	}

	switch {
	case *guiMode:
		dbg := debugger.NewDebugger(machine)
		if err := debugger.RunGUI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return

	case *tuiMode:
		dbg := debugger.NewDebugger(machine)
		t := debugger.NewTUI(dbg)
		if err := t.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return

	case *debugMode:
		runInteractiveCLI(machine)
		return
	}

	if err := machine.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *verboseMode {
		printRegisterDump(machine)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// runInteractiveCLI drives the debugger's command loop directly against
// stdin/stdout, without a terminal UI.
func runInteractiveCLI(machine *vm.Machine) {
	dbg := debugger.NewDebugger(machine)
	fmt.Println("sim8086 debugger. Type 'help' for commands, 'run' to start.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("(dbg) ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "q" {
			break
		}
		if err := dbg.ExecuteCommand(line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
		if out := dbg.GetOutput(); out != "" {
			fmt.Print(out)
		}
	}
}

func printRegisterDump(m *vm.Machine) {
	fmt.Println("\n-- registers --")
	for _, name := range []string{"eax", "ebx", "ecx", "edx", "esi", "edi", "ebp", "sp", "ip"} {
		v, _, _ := m.Registers.Read(name)
		fmt.Printf("%-4s 0x%08X\n", name, v)
	}
	r := m.Registers
	fmt.Printf("flags: C=%v P=%v Z=%v S=%v O=%v\n", r.Carry(), r.Parity(), r.Zero(), r.Sign(), r.Overflow())
}

func printHelp() {
	fmt.Printf(`sim8086 %s

Usage: sim8086 [options] <assembly-file>

Options:
  -help              Show this help message
  -version           Show version information
  -debug             Start in CLI debugger mode
  -tui               Start in TUI (terminal) debugger mode
  -gui               Start in desktop GUI debugger mode
  -max-lines N       Maximum lines executed before halt (0 = config default)
  -verbose           Print a register/flag dump after the program halts
  -config FILE       Config file path (default: platform config dir)

Examples:
  sim8086 program.asm
  sim8086 -tui program.asm
  sim8086 -debug program.asm
`, Version)
}
