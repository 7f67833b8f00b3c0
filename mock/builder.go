package mock

import "github.com/robotics-tools/hses"

// Builder pre-seeds a State before a Server is started, following
// simonvetter-modbus's DummyHandler "construct with defaults, let the
// caller override" pattern, generalized into a fluent builder since State
// has far more independently-seedable pieces than DummyHandler's four
// data classes.
type Builder struct {
	state *State
}

// NewBuilder starts from a freshly defaulted State.
func NewBuilder() *Builder {
	return &Builder{state: NewState()}
}

// WithTextEncoding sets the connection-wide text encoding applied to every
// text field in both directions (spec.md §3.1, §3.9).
func (b *Builder) WithTextEncoding(enc hses.TextEncoding) *Builder {
	b.state.encoding = enc
	return b
}

// WithStatus seeds the full status record.
func (b *Builder) WithStatus(s hses.Status) *Builder {
	b.state.status = s
	return b
}

// WithPosition seeds the current position of a control group.
func (b *Builder) WithPosition(group hses.ControlGroup, p hses.Position) *Builder {
	b.state.position[group] = p
	return b
}

// WithPositionError seeds the position-error reading of a control group.
func (b *Builder) WithPositionError(group hses.ControlGroup, p hses.Position) *Builder {
	b.state.positionError[group] = p
	return b
}

// WithTorque seeds the torque reading of a control group.
func (b *Builder) WithTorque(group hses.ControlGroup, p hses.Position) *Builder {
	b.state.torque[group] = p
	return b
}

// WithIO seeds a single I/O point.
func (b *Builder) WithIO(number int, on bool) *Builder {
	b.state.io[number] = on
	return b
}

// WithRegister seeds a single register.
func (b *Builder) WithRegister(number int, v int16) *Builder {
	b.state.registers[number] = v
	return b
}

// WithByte seeds a single byte-type variable cell.
func (b *Builder) WithByte(index int, v uint8) *Builder {
	b.state.setVariableBytes(hses.ByteVar, index, []byte{v})
	return b
}

// WithInt16 seeds a single int16-type variable cell.
func (b *Builder) WithInt16(index int, v int16) *Builder {
	b.state.setVariableBytes(hses.Int16Var, index, hses.SerializeInt16(v))
	return b
}

// WithInt32 seeds a single int32-type variable cell.
func (b *Builder) WithInt32(index int, v int32) *Builder {
	b.state.setVariableBytes(hses.Int32Var, index, hses.SerializeInt32(v))
	return b
}

// WithFloat32 seeds a single float32-type variable cell.
func (b *Builder) WithFloat32(index int, v float32) *Builder {
	b.state.setVariableBytes(hses.Float32Var, index, hses.SerializeFloat32(v))
	return b
}

// WithString seeds a single string-type variable cell.
func (b *Builder) WithString(index int, v string) *Builder {
	b.state.setVariableBytes(hses.StringVar, index, hses.SerializeStringVar(b.state.encoding, v))
	return b
}

// WithAlarm seeds one of the 4 active-alarm slots (1-indexed per spec.md
// §3.9: "instance = index+1").
func (b *Builder) WithAlarm(instance int, rec hses.AlarmRecord) *Builder {
	if instance >= 1 && instance <= len(b.state.alarms) {
		r := rec
		b.state.alarms[instance-1] = &r
		b.state.status.Alarm = true
	}
	return b
}

// WithAlarmHistory appends a record to a category's alarm history.
func (b *Builder) WithAlarmHistory(cat hses.AlarmCategory, rec hses.AlarmRecord) *Builder {
	b.state.history[cat] = append(b.state.history[cat], rec)
	return b
}

// WithSelectedJob seeds the job bound to a task slot.
func (b *Builder) WithSelectedJob(selectType hses.JobSelectType, name string, line uint32) *Builder {
	b.state.selectedJob[selectType] = selectedJob{name: name, line: line}
	return b
}

// WithExecutingJob seeds the executing-job info record for a task slot.
func (b *Builder) WithExecutingJob(task hses.TaskType, info hses.JobInfo) *Builder {
	b.state.executingJob[task] = info
	return b
}

// WithCycleMode seeds the controller's execution cycle mode.
func (b *Builder) WithCycleMode(mode hses.CycleMode) *Builder {
	b.state.cycle = mode
	return b
}

// WithServo seeds the servo-on flag.
func (b *Builder) WithServo(on bool) *Builder {
	b.state.servo = on
	b.state.status.ServoOn = on
	return b
}

// WithFile seeds a file in the mock file table.
func (b *Builder) WithFile(name string, content []byte) *Builder {
	cp := make([]byte, len(content))
	copy(cp, content)
	b.state.files[name] = cp
	return b
}

// Build returns the seeded State, ready to pass to NewServer.
func (b *Builder) Build() *State {
	return b.state
}
