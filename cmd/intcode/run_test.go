package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/chazu/intcode/manifest"
	"github.com/chazu/intcode/pkg/intcode"
	"github.com/chazu/intcode/pkg/wire"
)

const comparisonProgram = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
	"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
	"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99\n"

// writeProgram writes program text into a fresh directory and returns its path.
func writeProgram(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.txt")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// cli runs the command with an empty manifest so the test does not pick up
// an intcode.toml from the working directory.
func cli(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cfgDir := t.TempDir()
	if err := manifest.Default().Save(cfgDir); err != nil {
		t.Fatal(err)
	}
	args = append([]string{"-config", filepath.Join(cfgDir, manifest.FileName)}, args...)

	var stdout, stderr bytes.Buffer
	code := runCLI(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestCLIRun(t *testing.T) {
	path := writeProgram(t, "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99\n")

	out, errOut, code := cli(t, path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	if out != "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestCLIInput(t *testing.T) {
	path := writeProgram(t, comparisonProgram)

	tests := []struct {
		input string
		want  string
	}{
		{"7", "999\n"},
		{"8", "1000\n"},
		{" 9 ", "1001\n"},
	}
	for _, tt := range tests {
		out, errOut, code := cli(t, "-i", tt.input, path)
		if code != 0 {
			t.Fatalf("-i %s: exit code %d, stderr: %s", tt.input, code, errOut)
		}
		if out != tt.want {
			t.Errorf("-i %s: stdout = %q, want %q", tt.input, out, tt.want)
		}
	}
}

func TestCLITuned(t *testing.T) {
	path := writeProgram(t, "1,0,0,3,2,3,11,0,99,30,40,50")

	out, errOut, code := cli(t, "-noun", "9", "-verb", "10", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	if out != "3500\n" {
		t.Errorf("stdout = %q, want 3500", out)
	}
}

func TestCLIDiagnostic(t *testing.T) {
	path := writeProgram(t, comparisonProgram)

	out, errOut, code := cli(t, "-diag", "9", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	if out != "1001\n" {
		t.Errorf("stdout = %q, want 1001", out)
	}
}

func TestCLIDiagnosticFailure(t *testing.T) {
	path := writeProgram(t, "3,0,104,1,104,2,99")

	_, errOut, code := cli(t, "-diag", "1", path)
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(errOut, "multiple non-zero diagnostic outputs") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestCLIRunError(t *testing.T) {
	path := writeProgram(t, "1105,1,4,99,42")

	out, errOut, code := cli(t, path)
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing", out)
	}
	if !strings.Contains(errOut, "pc=4") || !strings.Contains(errOut, "invalid opcode") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestCLIDisassemble(t *testing.T) {
	path := writeProgram(t, "1002,4,3,4,33")

	out, errOut, code := cli(t, "-dis", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	if !strings.HasPrefix(out, "0000  MUL   [4] #3 ->[4]\n") {
		t.Errorf("stdout = %q", out)
	}
}

func TestCLICBOROutput(t *testing.T) {
	path := writeProgram(t, "3,0,4,0,3,0,99")
	outPath := filepath.Join(t.TempDir(), "state.cbor")

	_, _, code := cli(t, "-i", "5", "-format", "cbor", "-o", outPath, path)
	if code != 1 {
		t.Fatalf("exit code %d, want 1 for exhausted input", code)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	s, err := wire.UnmarshalSnapshot(data)
	if err != nil {
		t.Fatal(err)
	}
	if s.PC != 4 || s.Halted {
		t.Errorf("snapshot pc=%d halted=%v, want pc=4 halted=false", s.PC, s.Halted)
	}
	if !reflect.DeepEqual(s.Output, []int64{5}) {
		t.Errorf("snapshot output = %v, want [5]", s.Output)
	}
}

func TestCLIPackedProgram(t *testing.T) {
	path := writeProgram(t, comparisonProgram)
	packed := filepath.Join(t.TempDir(), "prog.cbor")

	if _, errOut, code := cli(t, "-pack", packed, path); code != 0 {
		t.Fatalf("-pack: exit code %d, stderr: %s", code, errOut)
	}
	data, err := os.ReadFile(packed)
	if err != nil {
		t.Fatal(err)
	}
	program, err := wire.UnmarshalProgram(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(program) != 47 || program[0] != 3 || program[46] != 99 {
		t.Errorf("packed program = %v", program)
	}

	// The packed file runs like the text it came from.
	out, errOut, code := cli(t, "-i", "8", packed)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	if out != "1000\n" {
		t.Errorf("stdout = %q, want 1000", out)
	}
}

func TestCLIEncodedProgramKindMismatch(t *testing.T) {
	data, err := wire.MarshalSnapshot(intcode.Snapshot{Memory: []int64{99}, Length: 1})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "state.cbor")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, errOut, code := cli(t, path)
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(errOut, "unmarshal program") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestCLIManifestProgram(t *testing.T) {
	dir := t.TempDir()
	m := manifest.Default()
	m.Program.Source = "3,9,8,9,10,9,4,9,99,-1,8"
	m.Run.Input = []int64{8}
	if err := m.Save(dir); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := runCLI([]string{"-config", filepath.Join(dir, manifest.FileName)}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if stdout.String() != "1\n" {
		t.Errorf("stdout = %q, want 1", stdout.String())
	}

	// Flags override the manifest.
	stdout.Reset()
	code = runCLI([]string{"-config", filepath.Join(dir, manifest.FileName), "-i", "7"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if stdout.String() != "0\n" {
		t.Errorf("stdout = %q, want 0", stdout.String())
	}
}

func TestCLIInit(t *testing.T) {
	path := writeProgram(t, "99")
	dir := t.TempDir()

	_, errOut, code := cli(t, "-init", dir, "-diag", "5", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}

	m, err := manifest.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.ProgramPath() != path {
		t.Errorf("ProgramPath() = %q, want %q", m.ProgramPath(), path)
	}
	if m.Run.Mode != manifest.ModeDiagnostic || !reflect.DeepEqual(m.Run.Input, []int64{5}) {
		t.Errorf("run = %+v", m.Run)
	}
}

func TestCLIUsageErrors(t *testing.T) {
	tests := [][]string{
		{"a.txt", "b.txt"},
		{"-i", "1,x", "a.txt"},
		{"-format", "yaml", "a.txt"},
		{"-nosuchflag"},
		{filepath.Join(os.TempDir(), "does-not-exist", "prog.txt")},
	}
	for _, args := range tests {
		if _, _, code := cli(t, args...); code != 1 {
			t.Errorf("args %v: exit code %d, want 1", args, code)
		}
	}
}
