package mock

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/robotics-tools/hses"
)

// handlerFunc implements the authoritative semantics of one command
// (spec.md §4.2, §4.5). It receives the decoded request and the shared
// State already locked for writing, and returns the response payload or an
// error to be translated into a status byte by errorToStatus.
type handlerFunc func(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error)

// stdoutLogger is the mock server's default logger, mirroring
// simonvetter-modbus's newLogger("modbus-server") default (server.go),
// adapted here since hses.newLogger is unexported outside its package.
type stdoutLogger struct{ prefix string }

func (l *stdoutLogger) Info(msg string)                          { fmt.Printf("%s [info]: %s\n", l.prefix, msg) }
func (l *stdoutLogger) Infof(f string, a ...interface{})         { fmt.Printf("%s [info]: %s\n", l.prefix, fmt.Sprintf(f, a...)) }
func (l *stdoutLogger) Warning(msg string)                       { fmt.Printf("%s [warn]: %s\n", l.prefix, msg) }
func (l *stdoutLogger) Warningf(f string, a ...interface{})       { fmt.Printf("%s [warn]: %s\n", l.prefix, fmt.Sprintf(f, a...)) }
func (l *stdoutLogger) Error(msg string)                          { fmt.Printf("%s [error]: %s\n", l.prefix, msg) }
func (l *stdoutLogger) Errorf(f string, a ...interface{})        { fmt.Printf("%s [error]: %s\n", l.prefix, fmt.Sprintf(f, a...)) }

var _ hses.LeveledLogger = (*stdoutLogger)(nil)

// Server is the HSES mock server: it binds the robot-control and
// file-control UDP ports and answers every request against a shared State,
// using the same command registry the client validates against (spec.md
// §4.5). Grounded on simonvetter-modbus's ModbusServer (server.go):
// functional options, a logger field, a lock-guarded lifecycle - but
// generalized from a TCP accept loop to two UDP receive loops, since HSES
// has no per-client connections to accept.
type Server struct {
	Host       string
	RobotPort  int
	FilePort   int
	ReadTimeout time.Duration

	logger hses.LeveledLogger
	state  *State

	lock       sync.Mutex
	robotConn  *net.UDPConn
	fileConn   *net.UDPConn
	wg         sync.WaitGroup
	started    bool
}

// Option configures a Server at construction time.
type Option func(*Server) error

// Logger sets the server's logger.
func Logger(logger hses.LeveledLogger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// Host sets the bind address (default "127.0.0.1").
func Host(host string) Option {
	return func(s *Server) error {
		s.Host = host
		return nil
	}
}

// RobotPort overrides the robot-control UDP port (default
// hses.DefaultRobotPort).
func RobotPort(port int) Option {
	return func(s *Server) error {
		s.RobotPort = port
		return nil
	}
}

// FilePort overrides the file-control UDP port (default
// hses.DefaultFilePort).
func FilePort(port int) Option {
	return func(s *Server) error {
		s.FilePort = port
		return nil
	}
}

// NewServer returns a Server bound to state, unstarted. state is typically
// produced by NewBuilder()...Build().
func NewServer(state *State, opts ...Option) (*Server, error) {
	if state == nil {
		state = NewState()
	}

	s := &Server{
		Host:      "127.0.0.1",
		RobotPort: hses.DefaultRobotPort,
		FilePort:  hses.DefaultFilePort,
		logger:    &stdoutLogger{prefix: "hses-mock"},
		state:     state,
	}

	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Start binds both UDP sockets and begins serving requests from dedicated
// goroutines, one per socket (spec.md §4.5, §5: "the mock server answers
// both ports as two independent receive loops against one shared state").
func (s *Server) Start() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.started {
		return errors.New("mock server already started")
	}

	robotConn, err := listenReusable(fmt.Sprintf("%s:%d", s.Host, s.RobotPort))
	if err != nil {
		return fmt.Errorf("binding robot-control port: %w", err)
	}

	fileConn, err := listenReusable(fmt.Sprintf("%s:%d", s.Host, s.FilePort))
	if err != nil {
		robotConn.Close()
		return fmt.Errorf("binding file-control port: %w", err)
	}

	s.robotConn = robotConn
	s.fileConn = fileConn
	s.started = true

	s.wg.Add(2)
	go s.serve(robotConn, hses.DivisionRobot)
	go s.serve(fileConn, hses.DivisionFile)

	return nil
}

// Stop closes both sockets and waits for the receive loops to exit.
func (s *Server) Stop() error {
	s.lock.Lock()
	if !s.started {
		s.lock.Unlock()
		return errors.New("mock server not started")
	}
	s.started = false
	robotConn, fileConn := s.robotConn, s.fileConn
	s.lock.Unlock()

	robotConn.Close()
	fileConn.Close()
	s.wg.Wait()

	return nil
}

// State returns the server's backing state, for assertions in tests
// written against the mock as a test oracle.
func (s *Server) State() *State {
	return s.state
}

// RobotAddr returns the bound robot-control address, including the actual
// port chosen by the OS if RobotPort was 0. Only valid after Start.
func (s *Server) RobotAddr() *net.UDPAddr {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.robotConn.LocalAddr().(*net.UDPAddr)
}

// FileAddr returns the bound file-control address, for the same reason as
// RobotAddr.
func (s *Server) FileAddr() *net.UDPAddr {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.fileConn.LocalAddr().(*net.UDPAddr)
}

const maxDatagramSize = 8192

// serve is the per-socket receive loop: decode, look up a handler by
// command id, invoke it against state, encode and send the response
// (spec.md §4.5: "receive datagram, decode frame (drop on error), look up
// handler by command id, if unknown reply with a status byte indicating
// unknown command, else invoke handler, build response frame, send to
// source address").
func (s *Server) serve(conn *net.UDPConn, division hses.Division) {
	defer s.wg.Done()

	buf := make([]byte, maxDatagramSize)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warningf("udp read failed: %v", err)
			continue
		}

		raw := make([]byte, n)
		copy(raw, buf[:n])

		frame, err := hses.DecodeFrame(raw)
		if err != nil {
			s.logger.Warningf("dropping malformed datagram from %v: %v", addr, err)
			continue
		}
		if frame.Request == nil {
			s.logger.Warningf("dropping non-request datagram from %v", addr)
			continue
		}

		resp := s.handle(division, frame)
		out, err := hses.EncodeResponse(division, frame.RequestID, frame.Request.Service, resp.status, resp.addedStatus, resp.payload)
		if err != nil {
			s.logger.Errorf("encoding response to %v: %v", addr, err)
			continue
		}

		if _, err := conn.WriteToUDP(out, addr); err != nil {
			s.logger.Warningf("writing response to %v: %v", addr, err)
		}
	}
}

type handlerResult struct {
	status      uint8
	addedStatus uint16
	payload     []byte
}

// handle validates and dispatches one request, translating any error into
// the response status byte a real controller would report.
func (s *Server) handle(division hses.Division, frame *hses.Frame) handlerResult {
	sub := *frame.Request
	command := hses.CommandID(sub.Command)

	if err := hses.ValidateRequest(command, sub, frame.Payload); err != nil {
		return handlerResult{status: hses.StatusForError(err)}
	}

	fn, ok := handlers[command]
	if !ok {
		return handlerResult{status: hses.StatusForError(hses.ErrInvalidCommand)}
	}

	s.state.mu.Lock()
	payload, err := fn(s.state, s.state.encoding, sub, frame.Payload)
	s.state.mu.Unlock()

	if err != nil {
		return handlerResult{status: hses.StatusForError(err)}
	}
	return handlerResult{payload: payload}
}
