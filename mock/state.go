// Package mock implements the HSES mock server: an in-process, protocol-
// authoritative UDP peer used as a test oracle for the hses client (spec.md
// §4.5). It binds the same two ports a real controller would (robot-control
// and file-control) and applies the same registry validation the client
// uses defensively, so tests exercise both sides of the wire against one
// source of truth.
package mock

import (
	"sync"

	"github.com/robotics-tools/hses"
)

// State is the process-wide mutable record behind the mock server (spec.md
// §3.9). All access goes through a sync.RWMutex: handlers take the write
// lock for the duration of request processing.
type State struct {
	mu sync.RWMutex

	status        hses.Status
	position      map[hses.ControlGroup]hses.Position
	positionError map[hses.ControlGroup]hses.Position
	torque        map[hses.ControlGroup]hses.Position

	variables map[hses.VariableType]map[int][]byte

	io        map[int]bool
	registers map[int]int16

	alarms  [4]*hses.AlarmRecord
	history map[hses.AlarmCategory][]hses.AlarmRecord

	executingJob map[hses.TaskType]hses.JobInfo
	selectedJob  map[hses.JobSelectType]selectedJob

	hold    bool
	servo   bool
	hlock   bool
	cycle   hses.CycleMode
	encoding hses.TextEncoding

	files map[string][]byte
}

type selectedJob struct {
	name string
	line uint32
}

// NewState returns a State with the defaults spec.md §3.9 implies: servo
// off, continuous cycle mode, UTF-8 text encoding, every variable cell
// zeroed on first touch, every I/O point false, every register 0.
func NewState() *State {
	return &State{
		position:      make(map[hses.ControlGroup]hses.Position),
		positionError: make(map[hses.ControlGroup]hses.Position),
		torque:        make(map[hses.ControlGroup]hses.Position),
		variables:    make(map[hses.VariableType]map[int][]byte),
		io:           make(map[int]bool),
		registers:    make(map[int]int16),
		history:      make(map[hses.AlarmCategory][]hses.AlarmRecord),
		executingJob: make(map[hses.TaskType]hses.JobInfo),
		selectedJob:  make(map[hses.JobSelectType]selectedJob),
		cycle:        hses.CycleContinuous,
		encoding:     hses.UTF8,
		files:        make(map[string][]byte),
	}
}

func (s *State) variableBytes(t hses.VariableType, index, size int) []byte {
	m, ok := s.variables[t]
	if !ok {
		m = make(map[int][]byte)
		s.variables[t] = m
	}
	b, ok := m[index]
	if !ok {
		b = make([]byte, size)
		m[index] = b
	}
	return b
}

func (s *State) setVariableBytes(t hses.VariableType, index int, v []byte) {
	m, ok := s.variables[t]
	if !ok {
		m = make(map[int][]byte)
		s.variables[t] = m
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	m[index] = cp
}
