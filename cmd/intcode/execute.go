package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chazu/intcode/manifest"
	"github.com/chazu/intcode/pkg/intcode"
	"github.com/chazu/intcode/pkg/wire"
)

// execute runs mem according to the manifest and writes the result.
// In cbor format the machine snapshot is written even when the run fails,
// so the faulting state can be inspected.
func execute(cfg *manifest.Manifest, mem *intcode.Memory, stdout io.Writer) error {
	if cfg.Run.Mode == manifest.ModeTuned {
		if err := mem.Write(1, cfg.Run.Noun); err != nil {
			return err
		}
		if err := mem.Write(2, cfg.Run.Verb); err != nil {
			return err
		}
	}

	m := intcode.NewMachine(mem,
		intcode.WithInputValues(cfg.Run.Input...),
		intcode.WithTrace(cfg.Run.Trace))
	log.Info("running", "machine", m.ID, "mode", cfg.Run.Mode, "inputs", len(cfg.Run.Input))

	runErr := m.Run()
	if runErr != nil {
		log.Error("run failed", "machine", m.ID, "error", runErr.Error())
	} else {
		log.Info("halted", "machine", m.ID, "steps", m.Steps())
	}

	var (
		data []byte
		err  error
	)
	switch cfg.Output.Format {
	case manifest.FormatCBOR:
		data, err = wire.MarshalSnapshot(m.Snapshot())
		if err != nil {
			return errors.Join(runErr, fmt.Errorf("encode snapshot: %w", err))
		}
	default:
		if runErr != nil {
			return runErr
		}
		text, err := formatText(cfg.Run.Mode, m)
		if err != nil {
			return err
		}
		data = []byte(text + "\n")
	}

	if err := writeResult(cfg.Output.Path, data, stdout); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// formatText renders the result of a halted machine for the given mode.
func formatText(mode string, m *intcode.Machine) (string, error) {
	switch mode {
	case manifest.ModeTuned:
		v, err := m.Memory().Read(0)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil
	case manifest.ModeDiagnostic:
		code, err := intcode.DiagnosticCode(m.Output())
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(code, 10), nil
	default:
		return intcode.FormatProgram(m.Output()), nil
	}
}

func writeResult(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}
