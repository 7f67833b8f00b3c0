package mock

import "github.com/robotics-tools/hses"

// variableHandler registers the scalar read/write handler for one variable
// type (commands 0x7A..0x81, spec.md §3.5, §4.2): ServiceGetSingle/GetAll
// read the cell, ServiceSetSingle/SetAll write it.
func variableHandler(h map[hses.CommandID]handlerFunc, id hses.CommandID, t hses.VariableType) {
	size := t.ElementSize()

	h[id] = func(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
		index := int(sub.Instance)

		switch sub.Service {
		case hses.ServiceGetSingle, hses.ServiceGetAll:
			cur := append([]byte(nil), st.variableBytes(t, index, size)...)
			return cur, nil
		default:
			st.setVariableBytes(t, index, payload)
			return nil, nil
		}
	}
}

// pluralVariableHandler registers the plural read/write handler for one
// variable type (commands 0x302..0x305, spec.md §3.5, §4.2): the request
// payload carries a starting index in the instance field and a 4-byte
// count header; elements are read/written contiguously starting at that
// index.
func pluralVariableHandler(h map[hses.CommandID]handlerFunc, id hses.CommandID, t hses.VariableType) {
	size := t.ElementSize()

	h[id] = func(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
		start := int(sub.Instance)

		switch sub.Service {
		case hses.ServiceReadPlural:
			count, err := hses.DecodePluralCount(payload)
			if err != nil {
				return nil, err
			}
			out := hses.EncodePluralCount(count)
			for i := 0; i < count; i++ {
				out = append(out, st.variableBytes(t, start+i, size)...)
			}
			return out, nil
		default:
			count, err := hses.DecodePluralCount(payload)
			if err != nil {
				return nil, err
			}
			for i := 0; i < count; i++ {
				off := 4 + i*size
				st.setVariableBytes(t, start+i, payload[off:off+size])
			}
			return nil, nil
		}
	}
}
