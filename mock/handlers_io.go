package mock

import "github.com/robotics-tools/hses"

// handleIO implements 0x78 (spec.md §3.8, §4.2): single I/O point
// read/write. Writes to a non-writable range are rejected, classified the
// same way the client classifies them defensively (hses.ClassifyIO).
func handleIO(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	number := int(sub.Instance)

	if sub.Service == hses.ServiceGetSingle {
		return []byte{boolByte(st.io[number])}, nil
	}

	_, writable, ok := hses.ClassifyIO(number)
	if !ok || !writable {
		return nil, hses.ErrInvalidInstance
	}
	st.io[number] = payload[0] != 0
	return nil, nil
}

// handlePluralIO implements 0x300: a contiguous run of I/O points starting
// at the instance, as packed bytes (one byte per point, 0/1).
func handlePluralIO(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	start := int(sub.Instance)

	if sub.Service == hses.ServiceReadPlural {
		count, err := hses.DecodePluralCount(payload)
		if err != nil {
			return nil, err
		}
		out := hses.EncodePluralCount(count)
		for i := 0; i < count; i++ {
			out = append(out, boolByte(st.io[start+i]))
		}
		return out, nil
	}

	count, err := hses.DecodePluralCount(payload)
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		number := start + i
		_, writable, ok := hses.ClassifyIO(number)
		if !ok || !writable {
			return nil, hses.ErrInvalidInstance
		}
		st.io[number] = payload[4+i] != 0
	}
	return nil, nil
}

// handleRegister implements 0x79 (spec.md §3.8, §4.2): single register
// read/write, 0..999 readable, 0..559 writable.
func handleRegister(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	number := int(sub.Instance)

	if sub.Service == hses.ServiceGetSingle {
		return hses.SerializeRegister(st.registers[number]), nil
	}

	if !hses.RegisterWritable(number) {
		return nil, hses.ErrInvalidInstance
	}
	st.registers[number] = hses.DeserializeRegister(payload)
	return nil, nil
}

// handlePluralRegister implements 0x301: a contiguous run of registers.
func handlePluralRegister(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	start := int(sub.Instance)

	if sub.Service == hses.ServiceReadPlural {
		count, err := hses.DecodePluralCount(payload)
		if err != nil {
			return nil, err
		}
		out := hses.EncodePluralCount(count)
		for i := 0; i < count; i++ {
			out = append(out, hses.SerializeRegisterPlural(st.registers[start+i])...)
		}
		return out, nil
	}

	count, err := hses.DecodePluralCount(payload)
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		number := start + i
		if !hses.RegisterWritable(number) {
			return nil, hses.ErrInvalidInstance
		}
		off := 4 + i*2
		st.registers[number] = hses.DeserializeRegister(payload[off : off+2])
	}
	return nil, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
