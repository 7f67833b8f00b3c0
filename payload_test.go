package hses

import "testing"

func TestStatusRoundTrip(t *testing.T) {
	s := Status{
		StatusData1: StatusData1{Continuous: true, Running: true, Play: true},
		StatusData2: StatusData2{Alarm: true, ServoOn: true},
	}
	got := DeserializeStatus(SerializeStatus(s))
	if got != s {
		t.Fatalf("status round trip mismatch: got %+v want %+v", got, s)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	p := Position{
		Type:         CartesianType,
		Form:         1,
		Tool:         2,
		UserCoord:    3,
		ExtendedForm: 4,
		Axes:         [6]int32{100000, -200000, 300000, 0, 0, 0},
	}
	got, err := DeserializePosition(SerializePosition(p))
	if err != nil {
		t.Fatalf("DeserializePosition: %v", err)
	}
	if got != p {
		t.Fatalf("position round trip mismatch: got %+v want %+v", got, p)
	}
}

func TestPositionUnitConversions(t *testing.T) {
	if got := ToMillimeters(ToMicrometers(123.5)); got != 123.5 {
		t.Fatalf("millimeter round trip: got %v want 123.5", got)
	}
	if got := ToDegrees(ToWireAngle(45.125)); got != 45.125 {
		t.Fatalf("degree round trip: got %v want 45.125", got)
	}
}

func TestAlarmRecordRoundTrip(t *testing.T) {
	for _, enc := range []TextEncoding{UTF8, ShiftJIS} {
		rec := AlarmRecord{
			Code:      1001,
			Data:      7,
			AlarmType: 2,
			Time:      "2026/01/01 00:00",
			Name:      "Servo Error",
		}
		raw := SerializeAlarmRecord(enc, rec)
		got, err := DeserializeAlarmRecord(enc, raw)
		if err != nil {
			t.Fatalf("DeserializeAlarmRecord(%v): %v", enc, err)
		}
		if got.Code != rec.Code || got.Data != rec.Data || got.AlarmType != rec.AlarmType ||
			got.Time != rec.Time || got.Name != rec.Name {
			t.Fatalf("alarm record round trip mismatch (%v): got %+v want %+v", enc, got, rec)
		}
	}
}

func TestJobInfoRoundTrip(t *testing.T) {
	j := JobInfo{JobName: "TEST", LineNumber: 12, StepNumber: 3, SpeedOverride: 8000}
	raw := SerializeJobInfo(UTF8, j)
	got, err := DeserializeJobInfo(UTF8, raw)
	if err != nil {
		t.Fatalf("DeserializeJobInfo: %v", err)
	}
	if got != j {
		t.Fatalf("job info round trip mismatch: got %+v want %+v", got, j)
	}
	if got.SpeedOverridePercent() != 80 {
		t.Fatalf("SpeedOverridePercent: got %v want 80", got.SpeedOverridePercent())
	}
}

func TestJobSelectPayloadBounds(t *testing.T) {
	if _, err := EncodeJobSelectPayload(UTF8, "TEST", jobSelectMaxLine+1); err == nil {
		t.Fatal("expected an error for a line number past the bound")
	}

	oversizedName := ""
	for i := 0; i < 33; i++ {
		oversizedName += "A"
	}
	if _, err := EncodeJobSelectPayload(UTF8, oversizedName, 0); err == nil {
		t.Fatal("expected an error for a 33-byte job name")
	}

	raw, err := EncodeJobSelectPayload(UTF8, "TEST", 9999)
	if err != nil {
		t.Fatalf("EncodeJobSelectPayload: %v", err)
	}
	name, line, err := DecodeJobSelectPayload(UTF8, raw)
	if err != nil {
		t.Fatalf("DecodeJobSelectPayload: %v", err)
	}
	if name != "TEST" || line != 9999 {
		t.Fatalf("job select payload round trip mismatch: got (%q, %d)", name, line)
	}
}

func TestVariableRoundTrip(t *testing.T) {
	if got := DeserializeByte(SerializeByte(200)); got != 200 {
		t.Fatalf("byte round trip: got %d want 200", got)
	}
	if got := DeserializeInt16(SerializeInt16(-1234)); got != -1234 {
		t.Fatalf("int16 round trip: got %d want -1234", got)
	}
	if got := DeserializeInt32(SerializeInt32(-123456789)); got != -123456789 {
		t.Fatalf("int32 round trip: got %d want -123456789", got)
	}
	if got := DeserializeFloat32(SerializeFloat32(3.25)); got != 3.25 {
		t.Fatalf("float32 round trip: got %v want 3.25", got)
	}
}

func TestStringVariableRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		enc TextEncoding
		s   string
	}{
		{UTF8, "hello"},
		{ShiftJIS, "テスト"},
	} {
		raw := SerializeStringVar(tc.enc, tc.s)
		if len(raw) != 16 {
			t.Fatalf("string variable must be 16 bytes, got %d", len(raw))
		}
		got := DeserializeStringVar(tc.enc, raw)
		if got != tc.s {
			t.Fatalf("string round trip (%v): got %q want %q", tc.enc, got, tc.s)
		}
	}
}

func TestPluralCountRoundTrip(t *testing.T) {
	n, err := DecodePluralCount(EncodePluralCount(37))
	if err != nil {
		t.Fatalf("DecodePluralCount: %v", err)
	}
	if n != 37 {
		t.Fatalf("plural count round trip: got %d want 37", n)
	}
}
