package hses

import (
	"fmt"
	"log"
	"time"
)

// Configuration stores the configuration needed to create a Client
// (spec.md §4.4). Every field has a documented default applied by
// NewClient when left zero-valued.
type Configuration struct {
	// Host is the robot controller's address or hostname.
	Host string
	// Port is the robot-control UDP port. Defaults to DefaultRobotPort.
	Port int
	// Timeout bounds a single request attempt. Defaults to 300ms.
	Timeout time.Duration
	// RetryCount is how many times a timed-out request is retried.
	// Defaults to 3.
	RetryCount int
	// RetryDelay is how long to wait between retries. Defaults to 100ms.
	RetryDelay time.Duration
	// BufferSize sizes the UDP receive buffer. Defaults to 8192.
	BufferSize int
	// TextEncoding is applied to every text field, in both directions,
	// for the lifetime of the connection. Defaults to UTF8.
	TextEncoding TextEncoding
	// Logger provides a custom sink for log messages. If nil, messages
	// are written to stdout.
	Logger *log.Logger
}

func (c *Configuration) withDefaults() Configuration {
	out := *c
	if out.Port == 0 {
		out.Port = DefaultRobotPort
	}
	if out.Timeout == 0 {
		out.Timeout = 300 * time.Millisecond
	}
	if out.RetryCount == 0 {
		out.RetryCount = 3
	}
	if out.RetryDelay == 0 {
		out.RetryDelay = 100 * time.Millisecond
	}
	if out.BufferSize == 0 {
		out.BufferSize = 8192
	}
	return out
}

// Client is the typed operation facade over Codec + Registry + Transport
// (spec.md §4.4). A bare Client is safe for use from only one logical task
// at a time; SharedClient adds the mutex needed for concurrent callers.
type Client struct {
	conf   Configuration
	logger *logger
	robot  *Transport
}

// NewClient dials the robot-control UDP port and returns a ready Client.
// Client has no file-transfer operations; those live on FileClient, which
// dials the file-control port itself (see NewFileClient).
func NewClient(conf Configuration) (*Client, error) {
	full := conf.withDefaults()

	robot, err := NewTransport(DivisionRobot, TransportConfig{
		Host:       full.Host,
		Port:       full.Port,
		Timeout:    full.Timeout,
		Retries:    full.RetryCount,
		RetryDelay: full.RetryDelay,
		BufferSize: full.BufferSize,
		Logger:     full.Logger,
	}, DefaultRobotPort)
	if err != nil {
		return nil, err
	}

	return &Client{
		conf:   full,
		logger: newLogger(fmt.Sprintf("hses-client(%s:%d)", full.Host, full.Port), full.Logger),
		robot:  robot,
	}, nil
}

// Close shuts down the client's transport(s).
func (c *Client) Close() error {
	return c.robot.Close()
}

func (c *Client) encoding() TextEncoding {
	return c.conf.TextEncoding
}

// do sends one request through the registry (defensive validation) and the
// transport, then translates a non-zero response status into a
// *ProtocolError.
func (c *Client) do(ctx Context, command CommandID, instance uint16, attribute, service uint8, payload []byte) ([]byte, error) {
	sub := RequestSubHeader{Command: uint16(command), Instance: instance, Attribute: attribute, Service: service}
	if err := ValidateRequest(command, sub, payload); err != nil {
		return nil, err
	}

	frame, err := c.robot.Do(ctx, uint16(command), instance, attribute, service, payload)
	if err != nil {
		return nil, err
	}

	if frame.Response == nil {
		return nil, ErrProtocolError
	}

	if err := statusToError(frame.Response.Status, frame.Response.AddedStatus); err != nil {
		return nil, err
	}

	return frame.Payload, nil
}

// ReadStatus reads the full status record (spec.md §3.3, §4.4).
func (c *Client) ReadStatus(ctx Context) (Status, error) {
	payload, err := c.do(ctx, CmdStatus, 1, 0, ServiceGetAll, nil)
	if err != nil {
		return Status{}, err
	}
	if len(payload) < 8 {
		return Status{}, ErrTruncatedFrame
	}
	return DeserializeStatus(payload), nil
}

// ReadStatusData1 reads only the first status word (spec.md §3.3),
// mirroring the teacher's ReadRegister-calls-ReadRegisters-with-quantity-1
// convenience pattern.
func (c *Client) ReadStatusData1(ctx Context) (StatusData1, error) {
	payload, err := c.do(ctx, CmdStatus, 1, 1, ServiceGetSingle, nil)
	if err != nil {
		return StatusData1{}, err
	}
	if len(payload) < 4 {
		return StatusData1{}, ErrTruncatedFrame
	}
	return deserializeStatusData1(payload), nil
}

// ReadStatusData2 reads only the second status word (spec.md §3.3).
func (c *Client) ReadStatusData2(ctx Context) (StatusData2, error) {
	payload, err := c.do(ctx, CmdStatus, 1, 2, ServiceGetSingle, nil)
	if err != nil {
		return StatusData2{}, err
	}
	if len(payload) < 4 {
		return StatusData2{}, ErrTruncatedFrame
	}
	return deserializeStatusData2(payload), nil
}

// ReadPosition reads the current position of a control group (spec.md §3.4).
func (c *Client) ReadPosition(ctx Context, group ControlGroup) (Position, error) {
	payload, err := c.do(ctx, CmdCurrentPosition, uint16(group), 0, ServiceGetAll, nil)
	if err != nil {
		return Position{}, err
	}
	return DeserializePosition(payload)
}

// ReadPositionError reads the positioning error of a control group.
func (c *Client) ReadPositionError(ctx Context, group ControlGroup) (Position, error) {
	payload, err := c.do(ctx, CmdPositionError, uint16(group), 0, ServiceGetAll, nil)
	if err != nil {
		return Position{}, err
	}
	return DeserializePosition(payload)
}

// ReadTorque reads the instantaneous torque of a control group.
func (c *Client) ReadTorque(ctx Context, group ControlGroup) (Position, error) {
	payload, err := c.do(ctx, CmdTorque, uint16(group), 0, ServiceGetAll, nil)
	if err != nil {
		return Position{}, err
	}
	return DeserializePosition(payload)
}

// ReadByte reads a single byte-type variable cell (spec.md §3.5, §4.4).
func (c *Client) ReadByte(ctx Context, index int) (uint8, error) {
	payload, err := c.do(ctx, CmdVarByte, uint16(index), 1, ServiceGetSingle, nil)
	if err != nil {
		return 0, err
	}
	return DeserializeByte(payload), nil
}

// WriteByte writes a single byte-type variable cell.
func (c *Client) WriteByte(ctx Context, index int, v uint8) error {
	_, err := c.do(ctx, CmdVarByte, uint16(index), 1, ServiceSetSingle, SerializeByte(v))
	return err
}

// ReadInt16 reads a single int16-type variable cell.
func (c *Client) ReadInt16(ctx Context, index int) (int16, error) {
	payload, err := c.do(ctx, CmdVarInt16, uint16(index), 1, ServiceGetSingle, nil)
	if err != nil {
		return 0, err
	}
	return DeserializeInt16(payload), nil
}

// WriteInt16 writes a single int16-type variable cell.
func (c *Client) WriteInt16(ctx Context, index int, v int16) error {
	_, err := c.do(ctx, CmdVarInt16, uint16(index), 1, ServiceSetSingle, SerializeInt16(v))
	return err
}

// ReadInt32 reads a single int32-type variable cell.
func (c *Client) ReadInt32(ctx Context, index int) (int32, error) {
	payload, err := c.do(ctx, CmdVarInt32, uint16(index), 1, ServiceGetSingle, nil)
	if err != nil {
		return 0, err
	}
	return DeserializeInt32(payload), nil
}

// WriteInt32 writes a single int32-type variable cell.
func (c *Client) WriteInt32(ctx Context, index int, v int32) error {
	_, err := c.do(ctx, CmdVarInt32, uint16(index), 1, ServiceSetSingle, SerializeInt32(v))
	return err
}

// ReadFloat32 reads a single float32-type variable cell.
func (c *Client) ReadFloat32(ctx Context, index int) (float32, error) {
	payload, err := c.do(ctx, CmdVarFloat32, uint16(index), 1, ServiceGetSingle, nil)
	if err != nil {
		return 0, err
	}
	return DeserializeFloat32(payload), nil
}

// WriteFloat32 writes a single float32-type variable cell.
func (c *Client) WriteFloat32(ctx Context, index int, v float32) error {
	_, err := c.do(ctx, CmdVarFloat32, uint16(index), 1, ServiceSetSingle, SerializeFloat32(v))
	return err
}

// ReadString reads a single string-type variable cell. The returned string
// has already been trimmed at its first NUL (spec.md §3.5).
func (c *Client) ReadString(ctx Context, index int) (string, error) {
	payload, err := c.do(ctx, CmdVarString, uint16(index), 1, ServiceGetSingle, nil)
	if err != nil {
		return "", err
	}
	return DeserializeStringVar(c.encoding(), payload), nil
}

// WriteString writes a single string-type variable cell.
func (c *Client) WriteString(ctx Context, index int, s string) error {
	_, err := c.do(ctx, CmdVarString, uint16(index), 1, ServiceSetSingle, SerializeStringVar(c.encoding(), s))
	return err
}

// ReadMultipleBytes reads count byte-type variable cells starting at start
// (spec.md §3.5, §4.2 plural commands).
func (c *Client) ReadMultipleBytes(ctx Context, start, count int) ([]uint8, error) {
	payload, err := c.do(ctx, CmdPluralVarByte, uint16(start), 0, ServiceReadPlural, serializePluralCount(count))
	if err != nil {
		return nil, err
	}
	n, err := deserializePluralCount(payload)
	if err != nil {
		return nil, err
	}
	out := make([]uint8, n)
	copy(out, payload[4:])
	return out, nil
}

// WriteMultipleBytes writes count byte-type variable cells starting at start.
func (c *Client) WriteMultipleBytes(ctx Context, start int, values []uint8) error {
	payload := append(serializePluralCount(len(values)), values...)
	_, err := c.do(ctx, CmdPluralVarByte, uint16(start), 0, ServiceWritePlural, payload)
	return err
}

// ReadMultipleInt16 reads count int16-type variable cells starting at start.
func (c *Client) ReadMultipleInt16(ctx Context, start, count int) ([]int16, error) {
	payload, err := c.do(ctx, CmdPluralVarInt16, uint16(start), 0, ServiceReadPlural, serializePluralCount(count))
	if err != nil {
		return nil, err
	}
	n, err := deserializePluralCount(payload)
	if err != nil {
		return nil, err
	}
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		out[i] = getI16(payload[4+i*2 : 6+i*2])
	}
	return out, nil
}

// WriteMultipleInt16 writes count int16-type variable cells starting at start.
func (c *Client) WriteMultipleInt16(ctx Context, start int, values []int16) error {
	payload := serializePluralCount(len(values))
	for _, v := range values {
		payload = append(payload, SerializeInt16(v)...)
	}
	_, err := c.do(ctx, CmdPluralVarInt16, uint16(start), 0, ServiceWritePlural, payload)
	return err
}

// ReadMultipleInt32 reads count int32-type variable cells starting at start.
func (c *Client) ReadMultipleInt32(ctx Context, start, count int) ([]int32, error) {
	payload, err := c.do(ctx, CmdPluralVarInt32, uint16(start), 0, ServiceReadPlural, serializePluralCount(count))
	if err != nil {
		return nil, err
	}
	n, err := deserializePluralCount(payload)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = getI32(payload[4+i*4 : 8+i*4])
	}
	return out, nil
}

// WriteMultipleInt32 writes count int32-type variable cells starting at start.
func (c *Client) WriteMultipleInt32(ctx Context, start int, values []int32) error {
	payload := serializePluralCount(len(values))
	for _, v := range values {
		payload = append(payload, SerializeInt32(v)...)
	}
	_, err := c.do(ctx, CmdPluralVarInt32, uint16(start), 0, ServiceWritePlural, payload)
	return err
}

// ReadMultipleFloat32 reads count float32-type variable cells starting at start.
func (c *Client) ReadMultipleFloat32(ctx Context, start, count int) ([]float32, error) {
	payload, err := c.do(ctx, CmdPluralVarFloat32, uint16(start), 0, ServiceReadPlural, serializePluralCount(count))
	if err != nil {
		return nil, err
	}
	n, err := deserializePluralCount(payload)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = getF32(payload[4+i*4 : 8+i*4])
	}
	return out, nil
}

// WriteMultipleFloat32 writes count float32-type variable cells starting at start.
func (c *Client) WriteMultipleFloat32(ctx Context, start int, values []float32) error {
	payload := serializePluralCount(len(values))
	for _, v := range values {
		payload = append(payload, SerializeFloat32(v)...)
	}
	_, err := c.do(ctx, CmdPluralVarFloat32, uint16(start), 0, ServiceWritePlural, payload)
	return err
}

// ReadIO reads a single I/O point (spec.md §3.8).
func (c *Client) ReadIO(ctx Context, number int) (bool, error) {
	payload, err := c.do(ctx, CmdIO, uint16(number), 0, ServiceGetSingle, nil)
	if err != nil {
		return false, err
	}
	if len(payload) < 1 {
		return false, ErrTruncatedFrame
	}
	return payload[0] != 0, nil
}

// WriteIO writes a single writable I/O point. Returns ErrInvalidInstance if
// number falls outside a writable category.
func (c *Client) WriteIO(ctx Context, number int, on bool) error {
	if _, writable, ok := ClassifyIO(number); !ok || !writable {
		return ErrInvalidInstance
	}
	v := uint8(0)
	if on {
		v = 1
	}
	_, err := c.do(ctx, CmdIO, uint16(number), 0, ServiceSetSingle, []byte{v})
	return err
}

// ReadRegister reads a single register (spec.md §3.8).
func (c *Client) ReadRegister(ctx Context, number int) (int16, error) {
	payload, err := c.do(ctx, CmdRegister, uint16(number), 0, ServiceGetSingle, nil)
	if err != nil {
		return 0, err
	}
	return DeserializeRegister(payload), nil
}

// WriteRegister writes a single register. Returns ErrInvalidInstance if
// number is beyond the writable range (spec.md §3.8: 0..559).
func (c *Client) WriteRegister(ctx Context, number int, v int16) error {
	if !RegisterWritable(number) {
		return ErrInvalidInstance
	}
	_, err := c.do(ctx, CmdRegister, uint16(number), 0, ServiceSetSingle, SerializeRegister(v))
	return err
}

// ReadAlarmData reads one attribute of one of the 4 active-alarm slots
// (spec.md §3.6).
func (c *Client) ReadAlarmData(ctx Context, instance int, attr AlarmAttribute) (AlarmRecord, error) {
	return c.readAlarm(ctx, CmdAlarmData, instance, attr)
}

// ReadAlarmHistory reads one attribute of one alarm-history instance
// (spec.md §3.2, §3.6).
func (c *Client) ReadAlarmHistory(ctx Context, instance int, attr AlarmAttribute) (AlarmRecord, error) {
	return c.readAlarm(ctx, CmdAlarmHistory, instance, attr)
}

func (c *Client) readAlarm(ctx Context, cmd CommandID, instance int, attr AlarmAttribute) (AlarmRecord, error) {
	service := ServiceGetSingle
	if attr == AlarmAll {
		service = ServiceGetAll
	}
	payload, err := c.do(ctx, cmd, uint16(instance), uint8(attr), service, nil)
	if err != nil {
		return AlarmRecord{}, err
	}
	if attr == AlarmAll {
		return DeserializeAlarmRecord(c.encoding(), payload)
	}
	offset, length, ok := alarmAttributeSlice(attr)
	if !ok || len(payload) < length {
		return AlarmRecord{}, ErrDeserialization
	}
	full := make([]byte, alarmRecordSize)
	copy(full[offset:offset+length], payload)
	return DeserializeAlarmRecord(c.encoding(), full)
}

// ResetAlarm clears the active alarm and its alarm bit (spec.md §4.5, 0x82
// instance 1).
func (c *Client) ResetAlarm(ctx Context) error {
	_, err := c.do(ctx, CmdAlarmResetCancel, 1, 1, ServiceSetSingle, []byte{1, 0, 0, 0})
	return err
}

// CancelError clears the error bit (spec.md §4.5, 0x82 instance 2).
func (c *Client) CancelError(ctx Context) error {
	_, err := c.do(ctx, CmdAlarmResetCancel, 2, 1, ServiceSetSingle, []byte{1, 0, 0, 0})
	return err
}

// SetHold engages or releases hold (spec.md §4.2, 0x83 instance 1).
func (c *Client) SetHold(ctx Context, on bool) error {
	return c.setHoldServoHlock(ctx, 1, on)
}

// SetServo turns the servo power on or off (spec.md §4.2, 0x83 instance 2).
func (c *Client) SetServo(ctx Context, on bool) error {
	return c.setHoldServoHlock(ctx, 2, on)
}

// SetHLock engages or releases the operator panel hardlock (spec.md §4.2,
// 0x83 instance 3).
func (c *Client) SetHLock(ctx Context, on bool) error {
	return c.setHoldServoHlock(ctx, 3, on)
}

func (c *Client) setHoldServoHlock(ctx Context, instance uint16, on bool) error {
	v := uint8(0)
	if on {
		v = 1
	}
	_, err := c.do(ctx, CmdHoldServoHlock, instance, 1, ServiceSetSingle, []byte{v, 0, 0, 0})
	return err
}

// SetCycleMode sets the controller's execution cycle mode (spec.md §4.2,
// 0x84).
func (c *Client) SetCycleMode(ctx Context, mode CycleMode) error {
	_, err := c.do(ctx, CmdCycleMode, 2, 1, ServiceSetSingle, []byte{uint8(mode), 0, 0, 0})
	return err
}

// StartJob starts execution of the currently selected job (spec.md §4.2,
// 0x86).
func (c *Client) StartJob(ctx Context) error {
	_, err := c.do(ctx, CmdJobStart, 1, 1, ServiceSetSingle, []byte{1, 0, 0, 0})
	return err
}

// SelectJob selects a job and starting line for a task slot (spec.md §4.2,
// 0x87, §8 scenario 6).
func (c *Client) SelectJob(ctx Context, selectType JobSelectType, jobName string, line uint32) error {
	payload, err := EncodeJobSelectPayload(c.encoding(), jobName, line)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, CmdJobSelect, uint16(selectType), 1, ServiceSetAll, payload)
	return err
}

// ReadExecutingJobInfo reads one attribute of the job currently executing
// on a task slot (spec.md §3.7).
func (c *Client) ReadExecutingJobInfo(ctx Context, task TaskType, attr uint8) (JobInfo, error) {
	service := ServiceGetSingle
	if attr == 0 {
		service = ServiceGetAll
	}
	payload, err := c.do(ctx, CmdExecutingJobInfo, uint16(task), attr, service, nil)
	if err != nil {
		return JobInfo{}, err
	}
	if attr == 0 {
		return DeserializeJobInfo(c.encoding(), payload)
	}
	spans := map[uint8][2]int{1: {0, 32}, 2: {32, 4}, 3: {36, 4}, 4: {40, 4}}
	span, ok := spans[attr]
	if !ok || len(payload) < span[1] {
		return JobInfo{}, ErrDeserialization
	}
	full := make([]byte, jobInfoSize)
	copy(full[span[0]:span[0]+span[1]], payload)
	return DeserializeJobInfo(c.encoding(), full)
}
