package intcode

import (
	"strings"
	"testing"
)

func TestDisassemble(t *testing.T) {
	mem := Load([]int64{1002, 4, 3, 4, 33})
	got := Disassemble(mem, 0, mem.Len())
	want := "0000  MUL   [4] #3 ->[4]\n" +
		"0004  DATA  33\n"
	if got != want {
		t.Errorf("Disassemble =\n%s\nwant\n%s", got, want)
	}
}

func TestDisassembleAllModes(t *testing.T) {
	mem := Load([]int64{109, 19, 204, -34, 21101, 1, 2, 3, 1106, 0, 0, 99})
	got := Disassemble(mem, 0, mem.Len())

	for _, line := range []string{
		"0000  ARB   #19",
		"0002  OUT   [rb-34]",
		"0004  ADD   #1 #2 ->[rb+3]",
		"0008  JF    #0 #0",
		"0011  HALT",
	} {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("listing missing %q:\n%s", line, got)
		}
	}
}

func TestDisassembleRange(t *testing.T) {
	mem := Load([]int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50})
	got := Disassemble(mem, 4, 9)
	want := "0004  MUL   [3] [11] ->[0]\n" +
		"0008  HALT\n"
	if got != want {
		t.Errorf("Disassemble(4, 9) =\n%s\nwant\n%s", got, want)
	}
}
