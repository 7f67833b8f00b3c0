package hses

// StatusData1 is word 1 of the status payload (spec.md §3.3).
type StatusData1 struct {
	Step         bool
	OneCycle     bool
	Continuous   bool
	Running      bool
	SpeedLimited bool
	Teach        bool
	Play         bool
	Remote       bool
}

// StatusData2 is word 2 of the status payload (spec.md §3.3).
type StatusData2 struct {
	TeachPendantHold bool
	ExternalHold     bool
	CommandHold      bool
	Alarm            bool
	Error            bool
	ServoOn          bool
}

// Status is the combined decoding of both status words.
type Status struct {
	StatusData1
	StatusData2
}

func serializeStatusData1(d StatusData1) []byte {
	var b byte
	setBit(&b, 0, d.Step)
	setBit(&b, 1, d.OneCycle)
	setBit(&b, 2, d.Continuous)
	setBit(&b, 3, d.Running)
	setBit(&b, 4, d.SpeedLimited)
	setBit(&b, 5, d.Teach)
	setBit(&b, 6, d.Play)
	setBit(&b, 7, d.Remote)
	return []byte{b, 0, 0, 0}
}

func deserializeStatusData1(raw []byte) StatusData1 {
	b := raw[0]
	return StatusData1{
		Step:         bit(b, 0),
		OneCycle:     bit(b, 1),
		Continuous:   bit(b, 2),
		Running:      bit(b, 3),
		SpeedLimited: bit(b, 4),
		Teach:        bit(b, 5),
		Play:         bit(b, 6),
		Remote:       bit(b, 7),
	}
}

func serializeStatusData2(d StatusData2) []byte {
	var b byte
	setBit(&b, 0, d.TeachPendantHold)
	setBit(&b, 1, d.ExternalHold)
	setBit(&b, 2, d.CommandHold)
	setBit(&b, 3, d.Alarm)
	setBit(&b, 4, d.Error)
	setBit(&b, 5, d.ServoOn)
	return []byte{b, 0, 0, 0}
}

func deserializeStatusData2(raw []byte) StatusData2 {
	b := raw[0]
	return StatusData2{
		TeachPendantHold: bit(b, 0),
		ExternalHold:     bit(b, 1),
		CommandHold:      bit(b, 2),
		Alarm:            bit(b, 3),
		Error:            bit(b, 4),
		ServoOn:          bit(b, 5),
	}
}

// SerializeStatus encodes the combined status (attribute 0 response: both
// words concatenated, spec.md §3.3).
func SerializeStatus(s Status) []byte {
	out := make([]byte, 0, 8)
	out = append(out, serializeStatusData1(s.StatusData1)...)
	out = append(out, serializeStatusData2(s.StatusData2)...)
	return out
}

// DeserializeStatus decodes the combined 8-byte status payload.
func DeserializeStatus(raw []byte) Status {
	return Status{
		StatusData1: deserializeStatusData1(raw[0:4]),
		StatusData2: deserializeStatusData2(raw[4:8]),
	}
}

func setBit(b *byte, pos uint, v bool) {
	if v {
		*b |= 1 << pos
	}
}

func bit(b byte, pos uint) bool {
	return (b>>pos)&0x01 == 0x01
}
