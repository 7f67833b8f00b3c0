package hses

// JobInfo is the 44-byte executing-job info record (spec.md §3.7).
type JobInfo struct {
	JobName        string
	LineNumber     uint32
	StepNumber     uint32
	SpeedOverride  uint32 // wire units of 0.01%; SpeedOverridePercent converts to percent
}

const jobInfoSize = 44

// SpeedOverridePercent converts the wire's 0.01%-unit speed override field
// into a percentage (spec.md §3.7: "divide by 100 to obtain percent").
func (j JobInfo) SpeedOverridePercent() float64 {
	return float64(j.SpeedOverride) / 100
}

// SerializeJobInfo encodes the 44-byte executing-job info record.
func SerializeJobInfo(enc TextEncoding, j JobInfo) []byte {
	out := make([]byte, jobInfoSize)
	nameBytes, _ := encodeText(enc, j.JobName, 32)
	copy(out[0:32], nameBytes)
	putU32(out[32:36], j.LineNumber)
	putU32(out[36:40], j.StepNumber)
	putU32(out[40:44], j.SpeedOverride)
	return out
}

// DeserializeJobInfo decodes a 44-byte executing-job info record.
func DeserializeJobInfo(enc TextEncoding, raw []byte) (JobInfo, error) {
	if len(raw) < jobInfoSize {
		return JobInfo{}, ErrTruncatedFrame
	}

	return JobInfo{
		JobName:       decodeText(enc, raw[0:32]),
		LineNumber:    getU32(raw[32:36]),
		StepNumber:    getU32(raw[36:40]),
		SpeedOverride: getU32(raw[40:44]),
	}, nil
}

// jobSelectMaxLine is the inclusive upper bound on a job select line number
// (spec.md §4.2, 0x87: "line ≤ 9999").
const jobSelectMaxLine = 9999

// EncodeJobSelectPayload encodes the 0x87 job select request payload: a
// 32-byte encoded job name followed by a 4-byte line number. Returns
// InvalidMessage if the name doesn't fit in 32 encoded bytes or the line
// number exceeds the protocol's bound (spec.md §4.2, §8 scenario 6).
func EncodeJobSelectPayload(enc TextEncoding, jobName string, line uint32) ([]byte, error) {
	if line > jobSelectMaxLine {
		return nil, invalidMessage("line number %d exceeds %d", line, jobSelectMaxLine)
	}

	nameBytes, truncated := encodeText(enc, jobName, 32)
	if truncated {
		return nil, invalidMessage("job name %q does not fit in 32 bytes", jobName)
	}

	out := make([]byte, 36)
	copy(out[0:32], nameBytes)
	putU32(out[32:36], line)
	return out, nil
}

// DecodeJobSelectPayload decodes a 0x87 job select request payload.
func DecodeJobSelectPayload(enc TextEncoding, raw []byte) (jobName string, line uint32, err error) {
	if len(raw) != 36 {
		return "", 0, invalidMessage("job select payload must be 36 bytes, got %d", len(raw))
	}

	jobName = decodeText(enc, raw[0:32])
	line = getU32(raw[32:36])
	if line > jobSelectMaxLine {
		return "", 0, invalidMessage("line number %d exceeds %d", line, jobSelectMaxLine)
	}

	return jobName, line, nil
}
