package hses

import (
	"errors"
	"testing"
)

func TestValidateRequestUnknownCommand(t *testing.T) {
	sub := RequestSubHeader{Command: 0x9999, Instance: 1, Attribute: 0, Service: ServiceGetAll}
	err := ValidateRequest(CommandID(sub.Command), sub, nil)
	if !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("expected ErrInvalidCommand, got %v", err)
	}
}

func TestValidateRequestOutOfRangeInstance(t *testing.T) {
	sub := RequestSubHeader{Command: uint16(CmdAlarmData), Instance: 5, Attribute: uint8(AlarmAll), Service: ServiceGetAll}
	err := ValidateRequest(CmdAlarmData, sub, nil)
	if !errors.Is(err, ErrInvalidInstance) {
		t.Fatalf("expected ErrInvalidInstance, got %v", err)
	}
}

func TestValidateRequestBadAttribute(t *testing.T) {
	sub := RequestSubHeader{Command: uint16(CmdStatus), Instance: 1, Attribute: 9, Service: ServiceGetAll}
	err := ValidateRequest(CmdStatus, sub, nil)
	if !errors.Is(err, ErrInvalidAttribute) {
		t.Fatalf("expected ErrInvalidAttribute, got %v", err)
	}
}

func TestValidateRequestBadService(t *testing.T) {
	sub := RequestSubHeader{Command: uint16(CmdStatus), Instance: 1, Attribute: 0, Service: ServiceSetSingle}
	err := ValidateRequest(CmdStatus, sub, nil)
	if !errors.Is(err, ErrInvalidService) {
		t.Fatalf("expected ErrInvalidService, got %v", err)
	}
}

func TestValidateRequestPayloadLengthMismatch(t *testing.T) {
	sub := RequestSubHeader{Command: uint16(CmdRegister), Instance: 10, Attribute: 0, Service: ServiceSetSingle}
	err := ValidateRequest(CmdRegister, sub, []byte{1, 2, 3})
	var im *InvalidMessageError
	if !errors.As(err, &im) {
		t.Fatalf("expected an *InvalidMessageError, got %v", err)
	}
}

func TestValidateRequestAccepts(t *testing.T) {
	sub := RequestSubHeader{Command: uint16(CmdRegister), Instance: 10, Attribute: 0, Service: ServiceSetSingle}
	if err := ValidateRequest(CmdRegister, sub, SerializeRegister(42)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateRequestJobSelectBounds(t *testing.T) {
	sub := RequestSubHeader{Command: uint16(CmdJobSelect), Instance: uint16(MasterTask), Attribute: 1, Service: ServiceSetAll}

	oversizedName := ""
	for i := 0; i < 33; i++ {
		oversizedName += "A"
	}
	if _, err := EncodeJobSelectPayload(UTF8, oversizedName, 0); err == nil {
		t.Fatal("expected EncodeJobSelectPayload to reject a 33-byte name")
	}

	okPayload, err := EncodeJobSelectPayload(UTF8, "TEST", 9999)
	if err != nil {
		t.Fatalf("EncodeJobSelectPayload: %v", err)
	}
	if err := ValidateRequest(CmdJobSelect, sub, okPayload); err != nil {
		t.Fatalf("expected line 9999 to validate, got %v", err)
	}

	if _, err := EncodeJobSelectPayload(UTF8, "TEST", 10000); err == nil {
		t.Fatal("expected EncodeJobSelectPayload to reject line 10000")
	}
}

func TestValidateRequestPluralByteCountMustBeEven(t *testing.T) {
	sub := RequestSubHeader{Command: uint16(CmdPluralVarByte), Instance: 0, Attribute: 0, Service: ServiceWritePlural}
	payload := append(EncodePluralCount(3), []byte{1, 2, 3}...)
	err := ValidateRequest(CmdPluralVarByte, sub, payload)
	var im *InvalidMessageError
	if !errors.As(err, &im) {
		t.Fatalf("expected an *InvalidMessageError for an odd byte count, got %v", err)
	}
}

func TestValidateRequestPluralByteReadCountMustBeEven(t *testing.T) {
	sub := RequestSubHeader{Command: uint16(CmdPluralVarByte), Instance: 0, Attribute: 0, Service: ServiceReadPlural}
	err := ValidateRequest(CmdPluralVarByte, sub, EncodePluralCount(3))
	var im *InvalidMessageError
	if !errors.As(err, &im) {
		t.Fatalf("expected an *InvalidMessageError for an odd byte read count, got %v", err)
	}
}

func TestValidateRequestPluralVarWindowOutOfRange(t *testing.T) {
	sub := RequestSubHeader{Command: uint16(CmdPluralVarInt16), Instance: 95, Attribute: 0, Service: ServiceReadPlural}
	err := ValidateRequest(CmdPluralVarInt16, sub, EncodePluralCount(10))
	var im *InvalidMessageError
	if !errors.As(err, &im) {
		t.Fatalf("expected an *InvalidMessageError for a window reaching past index 99, got %v", err)
	}
}

func TestValidateRequestIOWriteRequiresOneByte(t *testing.T) {
	sub := RequestSubHeader{Command: uint16(CmdIO), Instance: 1, Attribute: 0, Service: ServiceSetSingle}
	if err := ValidateRequest(CmdIO, sub, []byte{1}); err != nil {
		t.Fatalf("expected a single-byte write to validate, got %v", err)
	}
	if err := ValidateRequest(CmdIO, sub, []byte{1, 0}); err == nil {
		t.Fatal("expected a two-byte write payload to be rejected")
	}
}
