package hses

import (
	"encoding/binary"
	"math"
)

// Every multi-byte field on the wire is little-endian (spec.md §3.1). These
// helpers exist so payload codecs read as a sequence of named field
// conversions rather than raw binary.LittleEndian calls, following the
// style of simonvetter-modbus/encoding.go.

func putU16(buf []byte, v uint16) { binary.LittleEndian.PutUint16(buf, v) }
func putU32(buf []byte, v uint32) { binary.LittleEndian.PutUint32(buf, v) }
func getU16(buf []byte) uint16    { return binary.LittleEndian.Uint16(buf) }
func getU32(buf []byte) uint32    { return binary.LittleEndian.Uint32(buf) }

func putI32(buf []byte, v int32) { putU32(buf, uint32(v)) }
func getI32(buf []byte) int32    { return int32(getU32(buf)) }

func putI16(buf []byte, v int16) { putU16(buf, uint16(v)) }
func getI16(buf []byte) int16    { return int16(getU16(buf)) }

func putF32(v float32) []byte {
	b := make([]byte, 4)
	putU32(b, math.Float32bits(v))
	return b
}

func getF32(buf []byte) float32 {
	return math.Float32frombits(getU32(buf))
}
