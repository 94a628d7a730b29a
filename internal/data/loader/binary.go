package loader

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Raw recording files are flat little-endian arrays with no header. The
// readers below slurp the whole file; recordings are loaded once per session
// and shared read-only afterwards, so there is nothing to stream.

// readAligned reads a file and verifies its size is a whole number of
// elementSize-byte values.
func readAligned(path string, elementSize int) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw)%elementSize != 0 {
		return nil, fmt.Errorf("%s: %d bytes is not a multiple of the %d-byte element size",
			path, len(raw), elementSize)
	}
	return raw, nil
}

// ReadFloat32File reads a flat array of little-endian float32 values.
func ReadFloat32File(path string) ([]float32, error) {
	raw, err := readAligned(path, 4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// ReadInt16File reads a flat array of little-endian int16 values.
func ReadInt16File(path string) ([]int16, error) {
	raw, err := readAligned(path, 2)
	if err != nil {
		return nil, err
	}
	out := make([]int16, len(raw)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return out, nil
}

// ReadUint16File reads a flat array of little-endian uint16 values.
func ReadUint16File(path string) ([]uint16, error) {
	raw, err := readAligned(path, 2)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, len(raw)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return out, nil
}
