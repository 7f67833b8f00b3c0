package hses

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// textCodec turns a TextEncoding setting into the golang.org/x/text codec
// used for every text field on the wire (spec.md §3.1, §9: the encoding is
// connection-wide, never per-field).
func textCodec(enc TextEncoding) encoding.Encoding {
	if enc == ShiftJIS {
		return japanese.ShiftJIS
	}
	return encoding.Nop
}

// encodeText transcodes s into a fixed-width, right-zero-padded field of
// exactly width bytes. It truncates rather than panicking if the encoded
// form doesn't fit (spec.md §4.1), and reports whether truncation happened
// so callers that must reject an oversized value (e.g. job select, spec.md
// §4.2 0x87) can do so.
func encodeText(enc TextEncoding, s string, width int) (out []byte, truncated bool) {
	encoded, err := textCodec(enc).NewEncoder().Bytes([]byte(s))
	if err != nil {
		// fall back to a lossy, best-effort encoding of whatever bytes we
		// can produce rather than failing the whole call.
		encoded = []byte(s)
	}

	out = make([]byte, width)
	if len(encoded) > width {
		truncated = true
		copy(out, encoded[:width])
		return
	}

	copy(out, encoded)
	return
}

// EncodeText is the exported form of encodeText, for callers outside this
// package (e.g. the mock server) that need to encode a text field using the
// connection's text encoding without going through one of the payload
// codecs above.
func EncodeText(enc TextEncoding, s string, width int) (out []byte, truncated bool) {
	return encodeText(enc, s, width)
}

// DecodeText is the exported form of decodeText.
func DecodeText(enc TextEncoding, raw []byte) string {
	return decodeText(enc, raw)
}

// decodeText reads a fixed-width text field, stopping at the first NUL
// (spec.md §4.1), and decodes it using the connection's text encoding. If
// the bytes are not valid in that encoding, decoding falls back to a lossy
// substitution so the caller always gets a string back (never an error).
func decodeText(enc TextEncoding, raw []byte) string {
	if i := bytes.IndexByte(raw, 0x00); i >= 0 {
		raw = raw[:i]
	}

	decoded, err := textCodec(enc).NewDecoder().Bytes(raw)
	if err != nil {
		// lossy fallback: replace invalid sequences can't fully recover the
		// original text, but the caller is guaranteed a string, never an
		// error, per spec.md §4.1.
		return string(bytes.ToValidUTF8(raw, []byte("�")))
	}

	return string(decoded)
}
