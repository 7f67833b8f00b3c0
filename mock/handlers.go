package mock

import "github.com/robotics-tools/hses"

// handlers is the command-id dispatch table the server consults after
// registry validation has already approved instance/attribute/service/
// payload shape (spec.md §4.5). Every entry here implements the
// authoritative semantics for one command id; the table composition
// mirrors registry.go's buildRegistry, one handler function per command
// family, assembled from the per-family files in this package.
var handlers = buildHandlers()

func buildHandlers() map[hses.CommandID]handlerFunc {
	h := map[hses.CommandID]handlerFunc{}

	h[hses.CmdFileControl] = handleFileControl

	h[hses.CmdStatus] = handleStatus
	h[hses.CmdExecutingJobInfo] = handleExecutingJobInfo
	h[hses.CmdAxisNames] = handleAxisNames

	h[hses.CmdCurrentPosition] = positionHandler(func(st *State, group hses.ControlGroup) hses.Position {
		return st.position[group]
	})
	h[hses.CmdPositionError] = positionHandler(func(st *State, group hses.ControlGroup) hses.Position {
		return st.positionError[group]
	})
	h[hses.CmdTorque] = positionHandler(func(st *State, group hses.ControlGroup) hses.Position {
		return st.torque[group]
	})

	h[hses.CmdIO] = handleIO
	h[hses.CmdPluralIO] = handlePluralIO
	h[hses.CmdRegister] = handleRegister
	h[hses.CmdPluralRegister] = handlePluralRegister

	variableHandler(h, hses.CmdVarByte, hses.ByteVar)
	variableHandler(h, hses.CmdVarInt16, hses.Int16Var)
	variableHandler(h, hses.CmdVarInt32, hses.Int32Var)
	variableHandler(h, hses.CmdVarFloat32, hses.Float32Var)
	variableHandler(h, hses.CmdVarString, hses.StringVar)
	variableHandler(h, hses.CmdVarRobotPosition, hses.RobotPositionVar)
	variableHandler(h, hses.CmdVarBasePosition, hses.BasePositionVar)
	variableHandler(h, hses.CmdVarExternalAxis, hses.ExternalAxisVar)

	pluralVariableHandler(h, hses.CmdPluralVarByte, hses.ByteVar)
	pluralVariableHandler(h, hses.CmdPluralVarInt16, hses.Int16Var)
	pluralVariableHandler(h, hses.CmdPluralVarInt32, hses.Int32Var)
	pluralVariableHandler(h, hses.CmdPluralVarFloat32, hses.Float32Var)

	h[hses.CmdAlarmData] = handleAlarmData
	h[hses.CmdAlarmHistory] = handleAlarmHistory
	h[hses.CmdAlarmResetCancel] = handleAlarmResetCancel

	h[hses.CmdHoldServoHlock] = handleHoldServoHlock
	h[hses.CmdCycleMode] = handleCycleMode
	h[hses.CmdJobStart] = handleJobStart
	h[hses.CmdJobSelect] = handleJobSelect

	return h
}
