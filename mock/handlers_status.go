package mock

import "github.com/robotics-tools/hses"

// handleStatus implements 0x72 (spec.md §3.3, §4.2): attribute 0 returns
// both status words, attribute 1 returns word 1 alone, attribute 2 returns
// word 2 alone.
func handleStatus(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	switch sub.Attribute {
	case 1:
		return hses.SerializeStatus(st.status)[0:4], nil
	case 2:
		return hses.SerializeStatus(st.status)[4:8], nil
	default:
		return hses.SerializeStatus(st.status), nil
	}
}

// handleAxisNames implements 0x74: a fixed 6-axis name table. Axis naming
// is not detailed beyond the command id itself, so this returns the
// conventional Yaskawa 6-axis vertical-arm naming as a stable default.
func handleAxisNames(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	names := [6]string{"S", "L", "U", "R", "B", "T"}
	out := make([]byte, 0, 48)
	for _, n := range names {
		field, _ := hses.EncodeText(enc, n, 8)
		out = append(out, field...)
	}
	return out, nil
}
