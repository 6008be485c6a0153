package database

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeDescriptor serializes a float32 descriptor to the opaque BLOB form
// stored by the MariaDB backend (little-endian IEEE 754, 4 bytes per element).
func EncodeDescriptor(descriptor []float32) []byte {
	buf := make([]byte, 4*len(descriptor))
	for i, v := range descriptor {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// DecodeDescriptor deserializes a descriptor BLOB produced by EncodeDescriptor.
func DecodeDescriptor(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("descriptor blob length %d is not a multiple of 4", len(data))
	}
	descriptor := make([]float32, len(data)/4)
	for i := range descriptor {
		descriptor[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return descriptor, nil
}
