// Package manifest handles intcode.toml run configuration.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file looked up by Load and FindAndLoad.
const FileName = "intcode.toml"

// Run modes.
const (
	ModeRun        = "run"
	ModeTuned      = "tuned"
	ModeDiagnostic = "diagnostic"
)

// Output formats.
const (
	FormatText = "text"
	FormatCBOR = "cbor"
)

// Manifest represents an intcode.toml configuration.
type Manifest struct {
	Program Program      `toml:"program"`
	Run     RunConfig    `toml:"run"`
	Log     LogConfig    `toml:"log"`
	Output  OutputConfig `toml:"output"`

	// Dir is the directory containing the intcode.toml file (set at load time).
	Dir string `toml:"-"`
}

// Program locates the program text.
type Program struct {
	Path   string `toml:"path,omitempty"`
	Source string `toml:"source,omitempty"`
}

// RunConfig selects how the program is driven.
type RunConfig struct {
	Mode  string  `toml:"mode"`
	Input []int64 `toml:"input,omitempty"`
	Noun  int64   `toml:"noun,omitempty"`
	Verb  int64   `toml:"verb,omitempty"`
	Trace bool    `toml:"trace,omitempty"`
}

// LogConfig configures the commonlog backend.
type LogConfig struct {
	Verbosity int    `toml:"verbosity,omitempty"`
	File      string `toml:"file,omitempty"`
}

// OutputConfig configures where results are written.
type OutputConfig struct {
	Format string `toml:"format"`
	Path   string `toml:"path,omitempty"`
}

// Load parses an intcode.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses a manifest from an explicit path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	m.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find an intcode.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Default returns a manifest with every default applied.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Run.Mode == "" {
		m.Run.Mode = ModeRun
	}
	if m.Output.Format == "" {
		m.Output.Format = FormatText
	}
}

// Validate checks that the manifest describes a runnable configuration.
func (m *Manifest) Validate() error {
	if m.Program.Path != "" && m.Program.Source != "" {
		return fmt.Errorf("program: path and source are mutually exclusive")
	}

	switch m.Run.Mode {
	case ModeRun, ModeTuned:
	case ModeDiagnostic:
		if len(m.Run.Input) != 1 {
			return fmt.Errorf("run: diagnostic mode needs exactly one input, got %d", len(m.Run.Input))
		}
	default:
		return fmt.Errorf("run: unknown mode %q", m.Run.Mode)
	}

	switch m.Output.Format {
	case FormatText, FormatCBOR:
	default:
		return fmt.Errorf("output: unknown format %q", m.Output.Format)
	}

	if m.Log.Verbosity < -4 || m.Log.Verbosity > 2 {
		return fmt.Errorf("log: verbosity %d out of range [-4, 2]", m.Log.Verbosity)
	}
	return nil
}

// ProgramPath returns the absolute program path, or "" if the program is
// given inline or not at all.
func (m *Manifest) ProgramPath() string {
	if m.Program.Path == "" {
		return ""
	}
	if filepath.IsAbs(m.Program.Path) {
		return m.Program.Path
	}
	return filepath.Join(m.Dir, m.Program.Path)
}

// ProgramSource returns the program text, reading the program file if the
// manifest does not carry the source inline.
func (m *Manifest) ProgramSource() (string, error) {
	if m.Program.Source != "" {
		return m.Program.Source, nil
	}
	path := m.ProgramPath()
	if path == "" {
		return "", fmt.Errorf("no program configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read program %s: %w", path, err)
	}
	return string(data), nil
}

// LogFile returns the absolute log file path, or "" to log to stderr.
func (m *Manifest) LogFile() string {
	if m.Log.File == "" || filepath.IsAbs(m.Log.File) {
		return m.Log.File
	}
	return filepath.Join(m.Dir, m.Log.File)
}

// Encode renders the manifest as TOML.
func (m *Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the manifest to dir/intcode.toml.
func (m *Manifest) Save(dir string) error {
	data, err := m.Encode()
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}
