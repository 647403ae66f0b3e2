// Package wire encodes machine snapshots and programs as canonical CBOR.
package wire

import (
	"fmt"

	"github.com/chazu/intcode/pkg/intcode"
	"github.com/fxamacker/cbor/v2"
)

// FormatVersion is written into every envelope. Increment when making
// incompatible changes to the encoded layout.
const FormatVersion uint16 = 1

// Kind tags the payload of an envelope.
type Kind uint8

const (
	KindSnapshot Kind = 1
	KindProgram  Kind = 2
)

// envelope wraps every payload so decoders can reject foreign data.
type envelope struct {
	Version uint16          `cbor:"1,keyasint"`
	Kind    Kind            `cbor:"2,keyasint"`
	Body    cbor.RawMessage `cbor:"3,keyasint"`
}

// cborEncMode uses canonical mode for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

func marshal(kind Kind, v any) ([]byte, error) {
	body, err := cborEncMode.Marshal(v)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(envelope{Version: FormatVersion, Kind: kind, Body: body})
}

func unmarshal(data []byte, kind Kind, v any) error {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Version != FormatVersion {
		return fmt.Errorf("unsupported format version %d", env.Version)
	}
	if env.Kind != kind {
		return fmt.Errorf("payload kind %d, want %d", env.Kind, kind)
	}
	return cbor.Unmarshal(env.Body, v)
}

// MarshalSnapshot serializes a machine snapshot to CBOR bytes.
func MarshalSnapshot(s intcode.Snapshot) ([]byte, error) {
	return marshal(KindSnapshot, s)
}

// UnmarshalSnapshot deserializes a machine snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (intcode.Snapshot, error) {
	var s intcode.Snapshot
	if err := unmarshal(data, KindSnapshot, &s); err != nil {
		return intcode.Snapshot{}, fmt.Errorf("wire: unmarshal snapshot: %w", err)
	}
	return s, nil
}

// IsEncoded reports whether data starts like an envelope written by this
// package. Program text never begins with a CBOR map header.
func IsEncoded(data []byte) bool {
	return len(data) > 0 && data[0]>>5 == 5
}

// MarshalProgram serializes a program to CBOR bytes.
func MarshalProgram(program []int64) ([]byte, error) {
	return marshal(KindProgram, program)
}

// UnmarshalProgram deserializes a program from CBOR bytes.
func UnmarshalProgram(data []byte) ([]int64, error) {
	var program []int64
	if err := unmarshal(data, KindProgram, &program); err != nil {
		return nil, fmt.Errorf("wire: unmarshal program: %w", err)
	}
	return program, nil
}
