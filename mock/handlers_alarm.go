package mock

import "github.com/robotics-tools/hses"

// handleAlarmData implements 0x70 (spec.md §3.6, §4.2): instance 1..4
// selects one of the 4 active-alarm slots. An unset slot reads back as a
// zero-valued record rather than an error, matching a controller with no
// alarm active in that slot.
func handleAlarmData(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	idx := int(sub.Instance) - 1
	var rec hses.AlarmRecord
	if st.alarms[idx] != nil {
		rec = *st.alarms[idx]
	}
	return encodeAlarmAttribute(enc, rec, sub.Service, hses.AlarmAttribute(sub.Attribute))
}

// handleAlarmHistory implements 0x71: instance selects a position within
// one of the 5 disjoint alarm-history windows (spec.md §3.2, §3.9). An
// instance past the end of the category's recorded history reads back as
// a zero-valued record.
func handleAlarmHistory(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	cat, ok := hses.AlarmCategoryForInstance(int(sub.Instance))
	if !ok {
		return nil, hses.ErrInvalidInstance
	}
	first, _ := hses.AlarmHistoryWindow(cat)
	pos := int(sub.Instance) - first

	var rec hses.AlarmRecord
	if list := st.history[cat]; pos >= 0 && pos < len(list) {
		rec = list[pos]
	}
	return encodeAlarmAttribute(enc, rec, sub.Service, hses.AlarmAttribute(sub.Attribute))
}

func encodeAlarmAttribute(enc hses.TextEncoding, rec hses.AlarmRecord, service uint8, attr hses.AlarmAttribute) ([]byte, error) {
	full := hses.SerializeAlarmRecord(enc, rec)
	if service == hses.ServiceGetAll {
		return full, nil
	}

	offset, length, ok := hses.AlarmAttributeSlice(attr)
	if !ok {
		return nil, hses.ErrInvalidAttribute
	}
	return full[offset : offset+length], nil
}

// handleAlarmResetCancel implements 0x82 (spec.md §4.2: "instance 1 clears
// the active-alarm list and clears the alarm bit; instance 2 clears the
// error bit").
func handleAlarmResetCancel(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	switch sub.Instance {
	case 1:
		for i := range st.alarms {
			st.alarms[i] = nil
		}
		st.status.Alarm = false
	case 2:
		st.status.Error = false
	default:
		return nil, hses.ErrInvalidInstance
	}
	return nil, nil
}
