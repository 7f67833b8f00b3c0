package hses

import (
	"encoding/binary"
)

// RequestSubHeader is the 8-byte sub-header carried by request frames
// (spec.md §3.1).
type RequestSubHeader struct {
	Command   uint16
	Instance  uint16
	Attribute uint8
	Service   uint8
}

// ResponseSubHeader is the 8-byte sub-header carried by response frames
// (spec.md §3.1).
type ResponseSubHeader struct {
	Service         uint8
	Status          uint8
	AddedStatusSize uint8
	Reserved        uint8
	AddedStatus     uint16
}

// Frame is a fully decoded HSES datagram, request or response.
type Frame struct {
	Division    Division
	Ack         uint8
	RequestID   uint8
	BlockNumber uint32
	Request     *RequestSubHeader
	Response    *ResponseSubHeader
	Payload     []byte
}

// EncodeRequest serializes a request frame: common header, request
// sub-header, and payload (spec.md §4.1).
func EncodeRequest(division Division, requestID uint8, command, instance uint16, attribute, service uint8, payload []byte) ([]byte, error) {
	if len(payload) > 0xFFFF {
		return nil, ErrPayloadTooLarge
	}

	buf := make([]byte, commonHeaderSize+subHeaderSize+len(payload))
	writeCommonHeader(buf, division, 0, requestID, 0)
	// payload size field excludes the whole header block (common header +
	// sub-header); it counts only the variable payload that follows it.
	binary.LittleEndian.PutUint16(buf[6:8], uint16(len(payload)))

	off := commonHeaderSize
	binary.LittleEndian.PutUint16(buf[off:off+2], command)
	binary.LittleEndian.PutUint16(buf[off+2:off+4], instance)
	buf[off+4] = attribute
	buf[off+5] = service
	// buf[off+6:off+8] padding, left zero

	copy(buf[off+subHeaderSize:], payload)

	return buf, nil
}

// EncodeResponse serializes a response frame: common header (ack=1, block
// number high bit set), response sub-header (service echoed with the high
// bit set), and payload (spec.md §4.1).
func EncodeResponse(division Division, requestID uint8, requestService, status uint8, addedStatus uint16, payload []byte) ([]byte, error) {
	if len(payload) > 0xFFFF {
		return nil, ErrPayloadTooLarge
	}

	buf := make([]byte, commonHeaderSize+subHeaderSize+len(payload))
	writeCommonHeader(buf, division, 1, requestID, ackHighBit)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(len(payload)))

	off := commonHeaderSize
	buf[off] = requestService | serviceResponseBit
	buf[off+1] = status
	buf[off+2] = 2 // added-status-size is always 2 bytes
	buf[off+3] = 0 // reserved
	binary.LittleEndian.PutUint16(buf[off+4:off+6], addedStatus)
	// buf[off+6:off+8] padding, left zero

	copy(buf[off+subHeaderSize:], payload)

	return buf, nil
}

func writeCommonHeader(buf []byte, division Division, ack uint8, requestID uint8, blockNumber uint32) {
	copy(buf[0:4], magicYERC)
	binary.LittleEndian.PutUint16(buf[4:6], headerSize)
	// buf[6:8] (payload size) is filled in by the caller
	buf[8] = reservedMagic
	buf[9] = uint8(division)
	buf[10] = ack
	buf[11] = requestID
	binary.LittleEndian.PutUint32(buf[12:16], blockNumber)
	copy(buf[16:24], reservedASCII)
}

// DecodeFrame parses a raw datagram into a Frame, validating the magic,
// header size, ack bit, and that the declared payload size agrees with the
// slice length (spec.md §4.1, §8).
func DecodeFrame(raw []byte) (*Frame, error) {
	if len(raw) < commonHeaderSize+subHeaderSize {
		return nil, ErrTruncatedFrame
	}

	if string(raw[0:4]) != magicYERC {
		return nil, ErrBadMagic
	}

	if binary.LittleEndian.Uint16(raw[4:6]) != headerSize {
		return nil, ErrInvalidHeader
	}

	payloadSize := int(binary.LittleEndian.Uint16(raw[6:8]))
	if raw[8] != reservedMagic {
		return nil, ErrBadMagic
	}

	if commonHeaderSize+subHeaderSize+payloadSize != len(raw) {
		return nil, ErrInvalidHeader
	}

	f := &Frame{
		Division:    Division(raw[9]),
		Ack:         raw[10],
		RequestID:   raw[11],
		BlockNumber: binary.LittleEndian.Uint32(raw[12:16]),
	}

	sub := raw[commonHeaderSize : commonHeaderSize+subHeaderSize]
	f.Payload = raw[commonHeaderSize+subHeaderSize:]

	switch f.Ack {
	case 0:
		f.Request = &RequestSubHeader{
			Command:   binary.LittleEndian.Uint16(sub[0:2]),
			Instance:  binary.LittleEndian.Uint16(sub[2:4]),
			Attribute: sub[4],
			Service:   sub[5],
		}
	case 1:
		f.Response = &ResponseSubHeader{
			Service:         sub[0],
			Status:          sub[1],
			AddedStatusSize: sub[2],
			Reserved:        sub[3],
			AddedStatus:     binary.LittleEndian.Uint16(sub[4:6]),
		}
	default:
		return nil, ErrInvalidHeader
	}

	return f, nil
}
