package hses

import (
	"bytes"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	raw, err := EncodeRequest(DivisionRobot, 7, uint16(CmdStatus), 1, 0, ServiceGetAll, payload)
	if err != nil {
		t.Fatalf("EncodeRequest: %v", err)
	}

	frame, err := DecodeFrame(raw)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}

	if frame.Request == nil {
		t.Fatal("expected a request sub-header")
	}
	if frame.Request.Command != uint16(CmdStatus) || frame.Request.Instance != 1 ||
		frame.Request.Attribute != 0 || frame.Request.Service != ServiceGetAll {
		t.Fatalf("sub-header mismatch: %+v", frame.Request)
	}
	if !bytes.Equal(frame.Payload, payload) {
		t.Fatalf("payload mismatch: got %v want %v", frame.Payload, payload)
	}
	if frame.RequestID != 7 {
		t.Fatalf("request id mismatch: got %d want 7", frame.RequestID)
	}
	if frame.Division != DivisionRobot {
		t.Fatalf("division mismatch: got %v want %v", frame.Division, DivisionRobot)
	}
}

func TestResponseRoundTrip(t *testing.T) {
	payload := []byte{9, 9}
	raw, err := EncodeResponse(DivisionRobot, 42, ServiceGetAll, 0, 0, payload)
	if err != nil {
		t.Fatalf("EncodeResponse: %v", err)
	}

	frame, err := DecodeFrame(raw)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}

	if frame.Response == nil {
		t.Fatal("expected a response sub-header")
	}
	if frame.Response.Service != ServiceGetAll|serviceResponseBit {
		t.Fatalf("service echo mismatch: got 0x%02x", frame.Response.Service)
	}
	if frame.Response.Status != 0 {
		t.Fatalf("expected status 0, got %d", frame.Response.Status)
	}
	if !bytes.Equal(frame.Payload, payload) {
		t.Fatalf("payload mismatch: got %v want %v", frame.Payload, payload)
	}
}

func TestDecodeFrameRejectsBadMagic(t *testing.T) {
	raw, _ := EncodeRequest(DivisionRobot, 1, uint16(CmdStatus), 1, 0, ServiceGetAll, nil)
	raw[0] = 'X'

	if _, err := DecodeFrame(raw); err != ErrBadMagic {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestDecodeFrameRejectsTruncated(t *testing.T) {
	if _, err := DecodeFrame([]byte{1, 2, 3}); err != ErrTruncatedFrame {
		t.Fatalf("expected ErrTruncatedFrame, got %v", err)
	}
}

func TestDecodeFrameRejectsSizeMismatch(t *testing.T) {
	raw, _ := EncodeRequest(DivisionRobot, 1, uint16(CmdStatus), 1, 0, ServiceGetAll, []byte{1, 2, 3, 4})
	truncated := raw[:len(raw)-1]

	if _, err := DecodeFrame(truncated); err != ErrInvalidHeader {
		t.Fatalf("expected ErrInvalidHeader, got %v", err)
	}
}

func TestDecodeFrameRejectsUnknownAck(t *testing.T) {
	raw, _ := EncodeRequest(DivisionRobot, 1, uint16(CmdStatus), 1, 0, ServiceGetAll, nil)
	raw[10] = 2 // ack byte, valid values are only 0 (request) and 1 (response)

	if _, err := DecodeFrame(raw); err != ErrInvalidHeader {
		t.Fatalf("expected ErrInvalidHeader, got %v", err)
	}
}
