package hses

// Index range enforced by the mock for scalar and plural variable access
// (spec.md §3.5: "index range per type is 0..99 (mock enforces; real
// controller may extend)").
const (
	variableIndexMin = 0
	variableIndexMax = 99
)

// Per-type plural element caps (spec.md §3.5).
const (
	pluralByteCap    = 474
	pluralInt16Cap   = 237
	pluralInt32Cap   = 118
	pluralFloat32Cap = 118
)

func pluralCap(t VariableType) int {
	switch t {
	case ByteVar:
		return pluralByteCap
	case Int16Var:
		return pluralInt16Cap
	case Int32Var:
		return pluralInt32Cap
	case Float32Var:
		return pluralFloat32Cap
	}
	return 0
}

// SerializeByte/Int16/Int32/Float32 encode a single scalar variable cell.
func SerializeByte(v uint8) []byte    { return []byte{v} }
func SerializeInt16(v int16) []byte   { b := make([]byte, 2); putI16(b, v); return b }
func SerializeInt32(v int32) []byte   { b := make([]byte, 4); putI32(b, v); return b }
func SerializeFloat32(v float32) []byte {
	return putF32(v)
}

func DeserializeByte(raw []byte) uint8    { return raw[0] }
func DeserializeInt16(raw []byte) int16   { return getI16(raw) }
func DeserializeInt32(raw []byte) int32   { return getI32(raw) }
func DeserializeFloat32(raw []byte) float32 {
	return getF32(raw)
}

// SerializeStringVar encodes a string variable cell: fixed 16 bytes,
// right-padded with NULs (spec.md §3.5). Strings longer than 16 bytes
// (after text encoding) are truncated rather than rejected; the string
// read/write family trims at the first NUL on decode.
func SerializeStringVar(enc TextEncoding, s string) []byte {
	b, _ := encodeText(enc, s, 16)
	return b
}

// DeserializeStringVar decodes a string variable cell, stopping at the
// first NUL and applying the connection's text encoding.
func DeserializeStringVar(enc TextEncoding, raw []byte) string {
	return decodeText(enc, raw)
}

// serializePluralCount/deserializePluralCount implement the plural
// read/write wire shape: a 4-byte count followed by count elements
// (spec.md §3.5, §4.2).
func serializePluralCount(count int) []byte {
	b := make([]byte, 4)
	putU32(b, uint32(count))
	return b
}

func deserializePluralCount(raw []byte) (int, error) {
	if len(raw) < 4 {
		return 0, ErrTruncatedFrame
	}
	return int(getU32(raw[0:4])), nil
}

// EncodePluralCount and DecodePluralCount are the exported forms of
// serializePluralCount/deserializePluralCount, used by the mock server to
// build and parse plural read/write payloads the same way the client does.
func EncodePluralCount(count int) []byte { return serializePluralCount(count) }

func DecodePluralCount(raw []byte) (int, error) { return deserializePluralCount(raw) }
