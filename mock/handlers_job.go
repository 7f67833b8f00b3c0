package mock

import "github.com/robotics-tools/hses"

// handleExecutingJobInfo implements 0x73 (spec.md §3.7, §4.2): instance
// 1..6 selects the master task or one of 5 sub-tasks, attribute 0..4
// selects the whole record or one field.
func handleExecutingJobInfo(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	task := hses.TaskType(sub.Instance)
	info := st.executingJob[task]
	full := hses.SerializeJobInfo(enc, info)

	if sub.Service == hses.ServiceGetAll {
		return full, nil
	}

	switch sub.Attribute {
	case 1:
		return full[0:32], nil
	case 2:
		return full[32:36], nil
	case 3:
		return full[36:40], nil
	case 4:
		return full[40:44], nil
	default:
		return full, nil
	}
}

// handleHoldServoHlock implements 0x83 (spec.md §4.2): instance 1 holds,
// instance 2 toggles servo power, instance 3 toggles the hardware lock.
func handleHoldServoHlock(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	on := payload[0] != 0

	switch sub.Instance {
	case 1:
		st.hold = on
		st.status.CommandHold = on
	case 2:
		st.servo = on
		st.status.ServoOn = on
	case 3:
		st.hlock = on
	default:
		return nil, hses.ErrInvalidInstance
	}
	return nil, nil
}

// handleCycleMode implements 0x84: sets the controller's execution cycle
// mode (spec.md §4.2, §4.6).
func handleCycleMode(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	mode := hses.CycleMode(payload[0])
	st.cycle = mode

	switch mode {
	case hses.CycleStep:
		st.status.Step = true
		st.status.OneCycle = false
		st.status.Continuous = false
	case hses.CycleOneCycle:
		st.status.Step = false
		st.status.OneCycle = true
		st.status.Continuous = false
	case hses.CycleContinuous:
		st.status.Step = false
		st.status.OneCycle = false
		st.status.Continuous = true
	}
	return nil, nil
}

// handleJobStart implements 0x86 (spec.md §4.2: "effect: sets running =
// true").
func handleJobStart(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	if st.hlock {
		return nil, hses.ErrServerDeviceFailure
	}
	st.status.Running = true
	return nil, nil
}

// handleJobSelect implements 0x87 (spec.md §4.2, §8 scenario 6): binds a
// job name and line number to the instance's task slot.
func handleJobSelect(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	name, line, err := hses.DecodeJobSelectPayload(enc, payload)
	if err != nil {
		return nil, err
	}

	st.selectedJob[hses.JobSelectType(sub.Instance)] = selectedJob{name: name, line: line}
	return nil, nil
}
