package hses

// PositionType discriminates a Position payload's shape (spec.md §3.4).
type PositionType uint32

const (
	PulseType     PositionType = 0
	CartesianType PositionType = 16
)

// Position is the decoded form of either a pulse or Cartesian position
// payload. For PulseType, Axes holds raw axis pulses. For CartesianType,
// Axes holds micrometres/1e-4-degrees on the wire, exposed to callers in
// millimetres/degrees through ToMillimeters/ToDegrees (spec.md §3.4).
type Position struct {
	Type         PositionType
	Form         uint32
	Tool         uint32
	UserCoord    uint32
	ExtendedForm uint32
	Axes         [6]int32
}

const (
	cartesianLinearScale = 1000  // micrometres -> millimetres
	cartesianAngularScale = 10000 // 1e-4 degrees -> degrees
)

// ToMillimeters converts a Cartesian X/Y/Z wire value (micrometres) to
// millimetres.
func ToMillimeters(wire int32) float64 {
	return float64(wire) / cartesianLinearScale
}

// ToMicrometers converts a millimetre value back to the wire scale.
func ToMicrometers(mm float64) int32 {
	return int32(mm * cartesianLinearScale)
}

// ToDegrees converts a Cartesian Rx/Ry/Rz wire value (1e-4 degrees) to
// degrees.
func ToDegrees(wire int32) float64 {
	return float64(wire) / cartesianAngularScale
}

// ToWireAngle converts a degree value back to the wire scale.
func ToWireAngle(deg float64) int32 {
	return int32(deg * cartesianAngularScale)
}

// SerializePosition encodes a Position into its 20-byte header + 24-byte
// axis/coordinate block (spec.md §3.4). Form and ExtendedForm round-trip
// exactly as given: this function performs no validation of their packed
// bit meaning, only encodes them.
func SerializePosition(p Position) []byte {
	out := make([]byte, 44)
	putU32(out[0:4], uint32(p.Type))
	putU32(out[4:8], p.Form)
	putU32(out[8:12], p.Tool)
	putU32(out[12:16], p.UserCoord)
	putU32(out[16:20], p.ExtendedForm)
	for i, v := range p.Axes {
		putI32(out[20+4*i:24+4*i], v)
	}
	return out
}

// DeserializePosition decodes a position payload produced by
// SerializePosition.
func DeserializePosition(raw []byte) (Position, error) {
	if len(raw) < 44 {
		return Position{}, ErrTruncatedFrame
	}

	p := Position{
		Type:         PositionType(getU32(raw[0:4])),
		Form:         getU32(raw[4:8]),
		Tool:         getU32(raw[8:12]),
		UserCoord:    getU32(raw[12:16]),
		ExtendedForm: getU32(raw[16:20]),
	}
	for i := range p.Axes {
		p.Axes[i] = getI32(raw[20+4*i : 24+4*i])
	}

	if p.Type != PulseType && p.Type != CartesianType {
		return Position{}, ErrPositionError
	}

	return p, nil
}
