package intcode

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseProgram parses comma-separated signed decimal integers.
// Surrounding whitespace and a trailing newline are ignored.
func ParseProgram(text string) ([]int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty program")
	}

	fields := strings.Split(text, ",")
	program := make([]int64, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, fmt.Errorf("field %d: empty value", i)
		}
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		program[i] = v
	}
	return program, nil
}

// ReadProgram parses the first line of r as a program.
func ReadProgram(r io.Reader) ([]int64, error) {
	sc := bufio.NewScanner(r)
	// Programs are a single line that can be far longer than the default token size.
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read program: %w", err)
		}
		return nil, fmt.Errorf("empty program")
	}
	return ParseProgram(sc.Text())
}

// FormatProgram renders a program in its comma-separated text form.
func FormatProgram(program []int64) string {
	var sb strings.Builder
	for i, v := range program {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}
