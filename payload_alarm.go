package hses

// Alarm record attributes (spec.md §3.6): a single-attribute read returns
// only the named slice of the 268-byte record; attribute 0 ("all") returns
// the whole record.
type AlarmAttribute uint8

const (
	AlarmAll AlarmAttribute = iota
	AlarmCode
	AlarmData
	AlarmType
	AlarmTime
	AlarmName
	AlarmSubCodeInfo
	AlarmSubCodeData
	AlarmSubCodeReverse
)

const alarmRecordSize = 268

// AlarmRecord is the fixed 268-byte alarm record (spec.md §3.6).
type AlarmRecord struct {
	Code            uint32
	Data            uint32
	AlarmType       uint32
	Time            string
	Name            string
	SubCodeInfo     [16]byte
	SubCodeData     [96]byte
	SubCodeReverse  [96]byte
}

// Alarm history is partitioned into disjoint instance windows by category
// (spec.md §3.2, §3.9).
type AlarmCategory int

const (
	AlarmCategoryMajor AlarmCategory = iota
	AlarmCategoryMonitor
	AlarmCategoryUserSystem
	AlarmCategoryUserUser
	AlarmCategoryOffline
)

// AlarmHistoryWindow is the (first, last) instance range for each category
// (spec.md §3.2: "1..100, 1001..1100, 2001..2100, 3001..3100, 4001..4100").
func AlarmHistoryWindow(cat AlarmCategory) (first, last int) {
	switch cat {
	case AlarmCategoryMajor:
		return 1, 100
	case AlarmCategoryMonitor:
		return 1001, 1100
	case AlarmCategoryUserSystem:
		return 2001, 2100
	case AlarmCategoryUserUser:
		return 3001, 3100
	case AlarmCategoryOffline:
		return 4001, 4100
	}
	return 0, 0
}

// AlarmCategoryForInstance returns the category an alarm-history instance
// falls into, and false if the instance is in none of the valid windows.
func AlarmCategoryForInstance(instance int) (AlarmCategory, bool) {
	for _, cat := range []AlarmCategory{
		AlarmCategoryMajor, AlarmCategoryMonitor, AlarmCategoryUserSystem,
		AlarmCategoryUserUser, AlarmCategoryOffline,
	} {
		first, last := AlarmHistoryWindow(cat)
		if instance >= first && instance <= last {
			return cat, true
		}
	}
	return 0, false
}

// SerializeAlarmRecord encodes the full 268-byte alarm record.
func SerializeAlarmRecord(enc TextEncoding, a AlarmRecord) []byte {
	out := make([]byte, alarmRecordSize)
	putU32(out[0:4], a.Code)
	putU32(out[4:8], a.Data)
	putU32(out[8:12], a.AlarmType)

	timeBytes, _ := encodeText(enc, a.Time, 16)
	copy(out[12:28], timeBytes)

	nameBytes, _ := encodeText(enc, a.Name, 32)
	copy(out[28:60], nameBytes)

	copy(out[60:76], a.SubCodeInfo[:])
	copy(out[76:172], a.SubCodeData[:])
	copy(out[172:268], a.SubCodeReverse[:])

	return out
}

// DeserializeAlarmRecord decodes the full 268-byte alarm record.
func DeserializeAlarmRecord(enc TextEncoding, raw []byte) (AlarmRecord, error) {
	if len(raw) < alarmRecordSize {
		return AlarmRecord{}, ErrTruncatedFrame
	}

	a := AlarmRecord{
		Code:      getU32(raw[0:4]),
		Data:      getU32(raw[4:8]),
		AlarmType: getU32(raw[8:12]),
		Time:      decodeText(enc, raw[12:28]),
		Name:      decodeText(enc, raw[28:60]),
	}
	copy(a.SubCodeInfo[:], raw[60:76])
	copy(a.SubCodeData[:], raw[76:172])
	copy(a.SubCodeReverse[:], raw[172:268])

	return a, nil
}

// AlarmAttributeSlice is the exported form of alarmAttributeSlice, used by
// the mock server to slice a serialized alarm record the same way the
// client parses a single-attribute alarm response.
func AlarmAttributeSlice(attr AlarmAttribute) (offset, length int, ok bool) {
	return alarmAttributeSlice(attr)
}

// alarmAttributeSlice returns the byte offset and length of the field named
// by attr within a serialized alarm record, for single-attribute reads.
func alarmAttributeSlice(attr AlarmAttribute) (offset, length int, ok bool) {
	switch attr {
	case AlarmCode:
		return 0, 4, true
	case AlarmData:
		return 4, 4, true
	case AlarmType:
		return 8, 4, true
	case AlarmTime:
		return 12, 16, true
	case AlarmName:
		return 28, 32, true
	case AlarmSubCodeInfo:
		return 60, 16, true
	case AlarmSubCodeData:
		return 76, 96, true
	case AlarmSubCodeReverse:
		return 172, 96, true
	case AlarmAll:
		return 0, alarmRecordSize, true
	}
	return 0, 0, false
}
