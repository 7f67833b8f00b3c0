package mock

import "github.com/robotics-tools/hses"

// positionHandler builds a handlerFunc for one of the three position-shaped
// reads (current position 0x75, position error 0x76, torque 0x77), each of
// which shares the 44-byte Position wire shape and differs only in which
// per-control-group map it reads (spec.md §3.4, §4.2).
func positionHandler(read func(st *State, group hses.ControlGroup) hses.Position) handlerFunc {
	return func(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
		group := hses.ControlGroup(sub.Instance)
		return hses.SerializePosition(read(st, group)), nil
	}
}
