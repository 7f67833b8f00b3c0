package hses

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GoAethereal/cancel"
)

// Context is the cancellation-aware context type accepted by every blocking
// Transport and Client operation. Using cancel.Context instead of plain
// context.Context lets a caller tear an in-flight request down immediately
// rather than waiting for its retry/timeout budget to run out, following
// the pattern GoAethereal-modbus's Client.Request threads through its
// request/response path.
type Context = cancel.Context

// Background returns a root Context with no deadline of its own, suitable
// for a long-lived Client or Transport that derives a fresh per-call
// timeout from TransportConfig.Timeout on every operation.
func Background() Context {
	return cancel.New()
}

// TransportConfig configures a Transport's socket, timeout and retry
// behavior (spec.md §4.3, §6).
type TransportConfig struct {
	// Host is the controller's address or hostname.
	Host string
	// Port is the UDP port to dial; defaults differ by Division.
	Port int
	// Timeout bounds how long a single request attempt waits for its
	// matching response before being retried or failing.
	Timeout time.Duration
	// Retries is how many additional attempts are made after the first
	// one times out. Zero means a single attempt, no retries.
	Retries int
	// RetryDelay is how long to wait before each retry.
	RetryDelay time.Duration
	// BufferSize sizes the datagram receive buffer.
	BufferSize int
	// Logger provides a custom sink for log messages. If nil, messages
	// are written to stdout.
	Logger *log.Logger
}

func (c *TransportConfig) setDefaults(defaultPort int) {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Timeout == 0 {
		c.Timeout = 300 * time.Millisecond
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = 100 * time.Millisecond
	}
	if c.BufferSize == 0 {
		c.BufferSize = 8192
	}
}

type pendingRequest struct {
	resp chan *Frame
	errc chan error
}

// Transport is the asynchronous UDP transport described in spec.md §4.3: it
// allocates 8-bit request ids, maintains a table of outstanding requests
// keyed by id, and correlates each inbound datagram to its request via a
// single receiver goroutine. Grounded on simonvetter-modbus's
// udp.go/tcp_transport.go transport-object shape, generalized from a
// byte-stream reassembler to a one-recv-one-frame datagram transport since
// HSES request ids (not a TCP connection) provide framing.
type Transport struct {
	conf     TransportConfig
	logger   *logger
	division Division

	conn *net.UDPConn

	mu      sync.Mutex
	pending map[uint8]*pendingRequest
	closed  bool

	nextID uint32 // atomic counter, truncated to uint8 per allocation

	stopCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup
}

// NewTransport dials a UDP socket to conf.Host:conf.Port and starts the
// receiver goroutine. division is stamped on every frame this transport
// sends (spec.md §3.1: robot-control vs file-control traffic).
func NewTransport(division Division, conf TransportConfig, defaultPort int) (*Transport, error) {
	conf.setDefaults(defaultPort)

	addr := fmt.Sprintf("%s:%d", conf.Host, conf.Port)
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	stopCtx, stop := context.WithCancel(context.Background())

	t := &Transport{
		conf:     conf,
		logger:   newLogger(fmt.Sprintf("hses-transport(%s)", addr), conf.Logger),
		division: division,
		conn:     conn,
		pending:  make(map[uint8]*pendingRequest),
		stopCtx:  stopCtx,
		stop:     stop,
	}

	t.wg.Add(1)
	go t.receiveLoop()

	return t, nil
}

// Close shuts down the receiver goroutine and the underlying socket. Any
// requests still waiting on a response fail with ErrNotConnected.
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTransportIsAlreadyClosed
	}
	t.closed = true
	for id, pr := range t.pending {
		select {
		case pr.errc <- ErrNotConnected:
		default:
		}
		delete(t.pending, id)
	}
	t.mu.Unlock()

	t.stop()
	err := t.conn.Close()
	t.wg.Wait()
	return err
}

func (t *Transport) allocateID() uint8 {
	return uint8(atomic.AddUint32(&t.nextID, 1))
}

// receiveLoop reads datagrams off the socket and dispatches each decoded
// response to the pending request matching its request id, until the
// socket is closed.
func (t *Transport) receiveLoop() {
	defer t.wg.Done()

	buf := make([]byte, t.conf.BufferSize)
	for {
		n, err := t.conn.Read(buf)
		if err != nil {
			select {
			case <-t.stopCtx.Done():
				return
			default:
			}
			t.logger.Warningf("receive error: %v", err)
			continue
		}

		raw := make([]byte, n)
		copy(raw, buf[:n])

		frame, err := DecodeFrame(raw)
		if err != nil {
			t.logger.Warningf("discarding malformed datagram: %v", err)
			continue
		}

		t.mu.Lock()
		pr, ok := t.pending[frame.RequestID]
		if ok {
			delete(t.pending, frame.RequestID)
		}
		t.mu.Unlock()

		if !ok {
			t.logger.Warningf("discarding response for unknown request id %d", frame.RequestID)
			continue
		}

		pr.resp <- frame
	}
}

// Do sends one request and waits for its matching response, retrying up to
// conf.Retries additional times on timeout (spec.md §4.3). A non-timeout
// error (send failure, cancellation) is returned immediately without
// retrying.
func (t *Transport) Do(ctx Context, command, instance uint16, attribute, service uint8, payload []byte) (*Frame, error) {
	var lastErr error

	for attempt := 0; attempt <= t.conf.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(t.conf.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		frame, err := t.doOnce(ctx, command, instance, attribute, service, payload)
		if err == nil {
			return frame, nil
		}
		lastErr = err
		if !errors.Is(err, ErrRequestTimedOut) {
			return nil, err
		}
	}

	return nil, lastErr
}

func (t *Transport) doOnce(ctx Context, command, instance uint16, attribute, service uint8, payload []byte) (*Frame, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, ErrNotConnected
	}
	t.mu.Unlock()

	deadline, cancelDeadline := context.WithTimeout(ctx, t.conf.Timeout)
	defer cancelDeadline()

	id := t.allocateID()
	reqBytes, err := EncodeRequest(t.division, id, command, instance, attribute, service, payload)
	if err != nil {
		return nil, err
	}

	pr := &pendingRequest{resp: make(chan *Frame, 1), errc: make(chan error, 1)}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, ErrNotConnected
	}
	t.pending[id] = pr
	t.mu.Unlock()

	cleanup := func() {
		t.mu.Lock()
		delete(t.pending, id)
		t.mu.Unlock()
	}

	sig := cancel.New().Propagate(deadline)
	defer sig.Cancel()

	if _, err := t.conn.Write(reqBytes); err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	select {
	case f := <-pr.resp:
		return f, nil
	case err := <-pr.errc:
		cleanup()
		return nil, err
	case <-sig.Done():
		cleanup()
		if errors.Is(deadline.Err(), context.DeadlineExceeded) {
			return nil, ErrRequestTimedOut
		}
		return nil, deadline.Err()
	}
}
