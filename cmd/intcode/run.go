package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/commonlog/simple"

	"github.com/chazu/intcode/manifest"
	"github.com/chazu/intcode/pkg/intcode"
	"github.com/chazu/intcode/pkg/wire"
)

var log = commonlog.GetLogger("intcode.cli")

// options is the merged result of the manifest and the command line.
type options struct {
	cfg         *manifest.Manifest
	programFile string
	disassemble bool
	initDir     string
	packPath    string
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	configureLogging(opts.cfg)

	if opts.initDir != "" {
		if err := writeManifest(opts); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	program, err := loadProgram(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.packPath != "" {
		if err := packProgram(opts.packPath, program); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	mem := intcode.Load(program)

	if opts.disassemble {
		fmt.Fprint(stdout, intcode.Disassemble(mem, 0, mem.Len()))
		return 0
	}

	if err := execute(opts.cfg, mem, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseArgs reads the manifest (explicit or discovered) and applies any
// flags given on the command line on top of it.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("intcode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Path to an intcode.toml manifest (default: search upward from the working directory)")
	input := fs.String("i", "", "Comma-separated input values")
	noun := fs.Int64("noun", 0, "Value written to address 1 (tuned mode)")
	verb := fs.Int64("verb", 0, "Value written to address 2 (tuned mode)")
	diag := fs.Int64("diag", 0, "Run in diagnostic mode with this single input")
	trace := fs.Bool("trace", false, "Log every executed instruction")
	verbosity := fs.Int("v", 0, "Log verbosity (-4 none .. 2 debug)")
	logFile := fs.String("log", "", "Log to this file instead of stderr")
	dis := fs.Bool("dis", false, "Print a disassembly of the program and exit")
	format := fs.String("format", "", "Result format: text or cbor")
	out := fs.String("o", "", "Write the result to this file instead of stdout")
	initDir := fs.String("init", "", "Write an intcode.toml for the given program into this directory and exit")
	pack := fs.String("pack", "", "Write the program in CBOR form to this file and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: intcode [options] [program-file]\n\n")
		fmt.Fprintf(stderr, "Runs an intcode program to completion and prints its output.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  intcode prog.txt                  # Run with no input\n")
		fmt.Fprintf(stderr, "  intcode -i 1 prog.txt             # Run with input 1\n")
		fmt.Fprintf(stderr, "  intcode -noun 12 -verb 2 prog.txt # Print address 0 after patching 1 and 2\n")
		fmt.Fprintf(stderr, "  intcode -diag 5 prog.txt          # Print the single diagnostic code\n")
		fmt.Fprintf(stderr, "  intcode -format cbor -o state.cbor prog.txt\n")
		fmt.Fprintf(stderr, "  intcode -pack prog.cbor prog.txt  # Program files may be text or CBOR\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one program file, got %d", fs.NArg())
	}

	cfg, err := findManifest(*configPath)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["i"] {
		values, err := parseInput(*input)
		if err != nil {
			return nil, fmt.Errorf("-i: %w", err)
		}
		cfg.Run.Input = values
	}
	if set["noun"] || set["verb"] {
		cfg.Run.Mode = manifest.ModeTuned
		if set["noun"] {
			cfg.Run.Noun = *noun
		}
		if set["verb"] {
			cfg.Run.Verb = *verb
		}
	}
	if set["diag"] {
		cfg.Run.Mode = manifest.ModeDiagnostic
		cfg.Run.Input = []int64{*diag}
	}
	if set["trace"] {
		cfg.Run.Trace = *trace
	}
	if set["v"] {
		cfg.Log.Verbosity = *verbosity
	}
	if set["log"] {
		cfg.Log.File = *logFile
	}
	if set["format"] {
		cfg.Output.Format = *format
	}
	if set["o"] {
		cfg.Output.Path = *out
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &options{
		cfg:         cfg,
		programFile: fs.Arg(0),
		disassemble: *dis,
		initDir:     *initDir,
		packPath:    *pack,
	}, nil
}

func findManifest(path string) (*manifest.Manifest, error) {
	if path != "" {
		return manifest.LoadFile(path)
	}
	m, err := manifest.FindAndLoad(".")
	if err != nil {
		return nil, err
	}
	if m == nil {
		return manifest.Default(), nil
	}
	return m, nil
}

func parseInput(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return intcode.ParseProgram(s)
}

func configureLogging(cfg *manifest.Manifest) {
	verbosity := cfg.Log.Verbosity
	if cfg.Run.Trace && verbosity < 2 {
		verbosity = 2
	}

	backend := simple.NewBackend()
	backend.Buffered = false
	commonlog.SetBackend(backend)

	if path := cfg.LogFile(); path != "" {
		commonlog.Configure(verbosity, &path)
	} else {
		commonlog.Configure(verbosity, nil)
	}
}

func loadProgram(opts *options) ([]int64, error) {
	if opts.programFile != "" {
		data, err := os.ReadFile(opts.programFile)
		if err != nil {
			return nil, err
		}
		if wire.IsEncoded(data) {
			log.Info("loading encoded program", "path", opts.programFile)
			return wire.UnmarshalProgram(data)
		}
		log.Info("loading program", "path", opts.programFile)
		return intcode.ReadProgram(bytes.NewReader(data))
	}

	src, err := opts.cfg.ProgramSource()
	if err != nil {
		return nil, err
	}
	return intcode.ParseProgram(src)
}

func writeManifest(opts *options) error {
	cfg := *opts.cfg
	if opts.programFile != "" {
		abs, err := filepath.Abs(opts.programFile)
		if err != nil {
			return err
		}
		dir, err := filepath.Abs(opts.initDir)
		if err != nil {
			return err
		}
		cfg.Program = manifest.Program{Path: abs}
		if rel, err := filepath.Rel(dir, abs); err == nil {
			cfg.Program.Path = rel
		}
	}
	return cfg.Save(opts.initDir)
}

func packProgram(path string, program []int64) error {
	data, err := wire.MarshalProgram(program)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	log.Info("packed program", "path", path, "words", len(program))
	return nil
}
