package hses

import "fmt"

// commandEntry is a registry entry: the single source of truth for which
// instance/attribute/service combinations a command accepts and what shape
// its request payload must have (spec.md §4.2). Both the client (building
// requests) and the mock server (validating requests before dispatch) go
// through ValidateRequest against the same table.
type commandEntry struct {
	id            CommandID
	instanceSet   func(instance uint16) bool
	attributeSet  func(attribute uint8) bool
	services      []uint8
	validPayload  func(instance uint16, service uint8, attribute uint8, payload []byte) error
}

func instanceRange(lo, hi uint16) func(uint16) bool {
	return func(i uint16) bool { return i >= lo && i <= hi }
}

func instanceOneOf(values ...uint16) func(uint16) bool {
	set := make(map[uint16]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return func(i uint16) bool { return set[i] }
}

func instanceRanges(ranges ...[2]uint16) func(uint16) bool {
	return func(i uint16) bool {
		for _, r := range ranges {
			if i >= r[0] && i <= r[1] {
				return true
			}
		}
		return false
	}
}

func attrOneOf(values ...uint8) func(uint8) bool {
	set := make(map[uint8]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return func(a uint8) bool { return set[a] }
}

func hasService(allowed []uint8, s uint8) bool {
	for _, a := range allowed {
		if a == s {
			return true
		}
	}
	return false
}

func exactLen(n int) func(uint16, uint8, uint8, []byte) error {
	return func(_ uint16, _ uint8, _ uint8, payload []byte) error {
		if len(payload) != n {
			return invalidMessage("expected payload of %d bytes, got %d", n, len(payload))
		}
		return nil
	}
}

func emptyPayload(instance uint16, service uint8, attribute uint8, payload []byte) error {
	return exactLen(0)(instance, service, attribute, payload)
}

// registry is the exhaustive command table (spec.md §4.2).
var registry = buildRegistry()

func buildRegistry() map[CommandID]*commandEntry {
	reg := map[CommandID]*commandEntry{}

	add := func(e *commandEntry) { reg[e.id] = e }

	add(&commandEntry{
		id:       CmdFileControl,
		services: []uint8{ServiceGetFileList, ServiceSendFile, ServiceReceiveFile, ServiceDeleteFile},
		// File payload shapes (filename, filename+NUL+content, ...) vary
		// per service and are validated by FileClient/mock file handlers
		// directly rather than here (spec.md §6).
	})

	add(&commandEntry{
		id:           CmdAlarmData,
		instanceSet:  instanceRange(1, 4),
		attributeSet: attrOneOf(uint8(AlarmAll), uint8(AlarmCode), uint8(AlarmData), uint8(AlarmType), uint8(AlarmTime), uint8(AlarmName), uint8(AlarmSubCodeInfo), uint8(AlarmSubCodeData), uint8(AlarmSubCodeReverse)),
		services:     []uint8{ServiceGetSingle, ServiceGetAll},
		validPayload: emptyPayload,
	})

	add(&commandEntry{
		id: CmdAlarmHistory,
		instanceSet: instanceRanges(
			[2]uint16{1, 100}, [2]uint16{1001, 1100}, [2]uint16{2001, 2100},
			[2]uint16{3001, 3100}, [2]uint16{4001, 4100},
		),
		attributeSet: attrOneOf(uint8(AlarmAll), uint8(AlarmCode), uint8(AlarmData), uint8(AlarmType), uint8(AlarmTime), uint8(AlarmName), uint8(AlarmSubCodeInfo), uint8(AlarmSubCodeData), uint8(AlarmSubCodeReverse)),
		services:     []uint8{ServiceGetSingle, ServiceGetAll},
		validPayload: emptyPayload,
	})

	add(&commandEntry{
		id:           CmdStatus,
		instanceSet:  instanceOneOf(1),
		attributeSet: attrOneOf(0, 1, 2),
		services:     []uint8{ServiceGetAll, ServiceGetSingle},
		validPayload: emptyPayload,
	})

	add(&commandEntry{
		id:           CmdExecutingJobInfo,
		instanceSet:  instanceRange(1, 6),
		attributeSet: attrOneOf(0, 1, 2, 3, 4),
		services:     []uint8{ServiceGetAll, ServiceGetSingle},
		validPayload: emptyPayload,
	})

	add(&commandEntry{
		id:           CmdAxisNames,
		instanceSet:  instanceOneOf(1),
		attributeSet: attrOneOf(0),
		services:     []uint8{ServiceGetAll},
		validPayload: emptyPayload,
	})

	add(&commandEntry{
		id:           CmdCurrentPosition,
		instanceSet:  instanceOneOf(1, 2, 11, 12, 21, 22),
		attributeSet: attrOneOf(0),
		services:     []uint8{ServiceGetAll},
		validPayload: emptyPayload,
	})

	add(&commandEntry{
		id:           CmdPositionError,
		instanceSet:  instanceOneOf(1, 2, 11, 12, 21, 22),
		attributeSet: attrOneOf(0),
		services:     []uint8{ServiceGetAll},
		validPayload: emptyPayload,
	})

	add(&commandEntry{
		id:           CmdTorque,
		instanceSet:  instanceOneOf(1, 2, 11, 12, 21, 22),
		attributeSet: attrOneOf(0),
		services:     []uint8{ServiceGetAll},
		validPayload: emptyPayload,
	})

	add(&commandEntry{
		id:           CmdIO,
		instanceSet:  func(uint16) bool { return true }, // classified at handler/client level, spec.md §3.8
		attributeSet: attrOneOf(0),
		services:     []uint8{ServiceGetSingle, ServiceSetSingle},
		validPayload: func(instance uint16, service uint8, _ uint8, payload []byte) error {
			if service == ServiceGetSingle {
				return exactLen(0)(instance, service, 0, payload)
			}
			return exactLen(1)(instance, service, 0, payload)
		},
	})

	add(&commandEntry{
		id:           CmdRegister,
		instanceSet:  instanceRange(RegisterMin, RegisterMax),
		attributeSet: attrOneOf(0),
		services:     []uint8{ServiceGetSingle, ServiceSetSingle},
		validPayload: func(instance uint16, service uint8, _ uint8, payload []byte) error {
			if service == ServiceGetSingle {
				return exactLen(0)(instance, service, 0, payload)
			}
			return exactLen(4)(instance, service, 0, payload)
		},
	})

	addVariable := func(id CommandID, elemSize int) {
		add(&commandEntry{
			id:           id,
			instanceSet:  instanceRange(variableIndexMin, variableIndexMax),
			attributeSet: attrOneOf(0, 1),
			services:     []uint8{ServiceGetSingle, ServiceSetSingle, ServiceGetAll, ServiceSetAll},
			validPayload: func(instance uint16, service uint8, _ uint8, payload []byte) error {
				switch service {
				case ServiceGetSingle, ServiceGetAll:
					return exactLen(0)(instance, service, 0, payload)
				default:
					return exactLen(elemSize)(instance, service, 0, payload)
				}
			},
		})
	}
	addVariable(CmdVarByte, 1)
	addVariable(CmdVarInt16, 2)
	addVariable(CmdVarInt32, 4)
	addVariable(CmdVarFloat32, 4)
	addVariable(CmdVarString, 16)
	addVariable(CmdVarRobotPosition, 44)
	addVariable(CmdVarBasePosition, 44)
	addVariable(CmdVarExternalAxis, 44)

	add(&commandEntry{
		id:           CmdAlarmResetCancel,
		instanceSet:  instanceOneOf(1, 2),
		attributeSet: attrOneOf(1),
		services:     []uint8{ServiceSetSingle},
		validPayload: func(instance uint16, service uint8, _ uint8, payload []byte) error {
			if len(payload) != 4 || payload[0] != 1 || payload[1] != 0 || payload[2] != 0 || payload[3] != 0 {
				return invalidMessage("expected payload [1,0,0,0], got % x", payload)
			}
			return nil
		},
	})

	add(&commandEntry{
		id:           CmdHoldServoHlock,
		instanceSet:  instanceOneOf(1, 2, 3),
		attributeSet: attrOneOf(1),
		services:     []uint8{ServiceSetSingle},
		validPayload: func(instance uint16, service uint8, _ uint8, payload []byte) error {
			if len(payload) != 4 || (payload[0] != 0 && payload[0] != 1) || payload[1] != 0 || payload[2] != 0 || payload[3] != 0 {
				return invalidMessage("expected payload [0|1,0,0,0], got % x", payload)
			}
			return nil
		},
	})

	add(&commandEntry{
		id:           CmdCycleMode,
		instanceSet:  instanceOneOf(2),
		attributeSet: attrOneOf(1),
		services:     []uint8{ServiceSetSingle},
		validPayload: func(instance uint16, service uint8, _ uint8, payload []byte) error {
			if len(payload) != 4 || payload[0] < uint8(CycleStep) || payload[0] > uint8(CycleContinuous) ||
				payload[1] != 0 || payload[2] != 0 || payload[3] != 0 {
				return invalidMessage("expected payload [mode,0,0,0] with mode in 1..3, got % x", payload)
			}
			return nil
		},
	})

	add(&commandEntry{
		id:           CmdJobStart,
		instanceSet:  instanceOneOf(1),
		attributeSet: attrOneOf(1),
		services:     []uint8{ServiceSetSingle},
		validPayload: func(instance uint16, service uint8, _ uint8, payload []byte) error {
			if len(payload) != 4 || payload[0] != 1 || payload[1] != 0 || payload[2] != 0 || payload[3] != 0 {
				return invalidMessage("expected payload [1,0,0,0], got % x", payload)
			}
			return nil
		},
	})

	add(&commandEntry{
		id: CmdJobSelect,
		instanceSet: instanceRanges(
			[2]uint16{uint16(InExecution), uint16(InExecution)},
			[2]uint16{uint16(MasterTask), uint16(SubTask5)},
		),
		attributeSet: attrOneOf(1),
		services:     []uint8{ServiceSetAll},
		validPayload: exactLen(36),
	})

	addPluralVar := func(id CommandID, elemSize, cap int) {
		checkCount := func(count int) error {
			if count <= 0 || count > cap {
				return invalidMessage("count %d out of range 1..%d", count, cap)
			}
			if elemSize == 1 && count%2 != 0 {
				return invalidMessage("byte count %d must be a multiple of 2", count)
			}
			return nil
		}
		checkWindow := func(instance uint16, count int) error {
			start := int(instance)
			if start < variableIndexMin || start+count-1 > variableIndexMax {
				return invalidMessage("index window %d..%d outside %d..%d", start, start+count-1, variableIndexMin, variableIndexMax)
			}
			return nil
		}
		add(&commandEntry{
			id:           id,
			instanceSet:  func(uint16) bool { return true },
			attributeSet: attrOneOf(0),
			services:     []uint8{ServiceReadPlural, ServiceWritePlural},
			validPayload: func(instance uint16, service uint8, _ uint8, payload []byte) error {
				switch service {
				case ServiceReadPlural:
					if err := exactLen(4)(instance, service, 0, payload); err != nil {
						return err
					}
					count, err := deserializePluralCount(payload)
					if err != nil {
						return err
					}
					if err := checkCount(count); err != nil {
						return err
					}
					return checkWindow(instance, count)
				case ServiceWritePlural:
					count, err := deserializePluralCount(payload)
					if err != nil {
						return err
					}
					if err := checkCount(count); err != nil {
						return err
					}
					if len(payload) != 4+count*elemSize {
						return invalidMessage("expected %d bytes, got %d", 4+count*elemSize, len(payload))
					}
					return checkWindow(instance, count)
				}
				return fmt.Errorf("%w: service 0x%02x", ErrInvalidService, service)
			},
		})
	}
	addPluralVar(CmdPluralVarByte, 1, pluralByteCap)
	addPluralVar(CmdPluralVarInt16, 2, pluralInt16Cap)
	addPluralVar(CmdPluralVarInt32, 4, pluralInt32Cap)
	addPluralVar(CmdPluralVarFloat32, 4, pluralFloat32Cap)

	add(&commandEntry{
		id:           CmdPluralIO,
		instanceSet:  func(uint16) bool { return true },
		attributeSet: attrOneOf(0),
		services:     []uint8{ServiceReadPlural, ServiceWritePlural},
		validPayload: func(instance uint16, service uint8, _ uint8, payload []byte) error {
			if service == ServiceReadPlural {
				return exactLen(4)(instance, service, 0, payload)
			}
			count, err := deserializePluralCount(payload)
			if err != nil {
				return err
			}
			if count <= 0 {
				return invalidMessage("count must be > 0")
			}
			if len(payload) != 4+count {
				return invalidMessage("expected %d bytes, got %d", 4+count, len(payload))
			}
			return nil
		},
	})

	add(&commandEntry{
		id:           CmdPluralRegister,
		instanceSet:  instanceRange(RegisterMin, RegisterMax),
		attributeSet: attrOneOf(0),
		services:     []uint8{ServiceReadPlural, ServiceWritePlural},
		validPayload: func(instance uint16, service uint8, _ uint8, payload []byte) error {
			if service == ServiceReadPlural {
				return exactLen(4)(instance, service, 0, payload)
			}
			count, err := deserializePluralCount(payload)
			if err != nil {
				return err
			}
			if count <= 0 {
				return invalidMessage("count must be > 0")
			}
			if len(payload) != 4+count*2 {
				return invalidMessage("expected %d bytes, got %d", 4+count*2, len(payload))
			}
			return nil
		},
	})

	return reg
}

// lookupCommand returns the registry entry for a command id, or
// ErrInvalidCommand if none is registered.
func lookupCommand(id CommandID) (*commandEntry, error) {
	e, ok := registry[id]
	if !ok {
		return nil, ErrInvalidCommand
	}
	return e, nil
}

// ValidateRequest checks a decoded request's instance, attribute, service,
// and payload shape against the registry entry for its command id
// (spec.md §4.2). This is called identically by the client (defensively,
// before sending) and the mock server (authoritatively, before dispatch).
func ValidateRequest(command CommandID, sub RequestSubHeader, payload []byte) error {
	e, err := lookupCommand(command)
	if err != nil {
		return err
	}

	if e.instanceSet != nil && !e.instanceSet(sub.Instance) {
		return ErrInvalidInstance
	}

	if e.attributeSet != nil && !e.attributeSet(sub.Attribute) {
		return ErrInvalidAttribute
	}

	if !hasService(e.services, sub.Service) {
		return ErrInvalidService
	}

	if e.validPayload != nil {
		if err := e.validPayload(sub.Instance, sub.Service, sub.Attribute, payload); err != nil {
			return err
		}
	}

	return nil
}
