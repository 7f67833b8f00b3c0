package hses

import (
	"errors"
	"net"
	"testing"
	"time"
)

// echoServer answers every datagram it receives with a well-formed response
// frame that echoes the request's id and service, status 0, empty payload.
func echoServer(t *testing.T, conn *net.UDPConn) {
	t.Helper()
	go func() {
		buf := make([]byte, 2048)
		for {
			n, addr, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			frame, err := DecodeFrame(buf[:n])
			if err != nil || frame.Request == nil {
				continue
			}
			resp, err := EncodeResponse(frame.Division, frame.RequestID, frame.Request.Service, 0, 0, nil)
			if err != nil {
				continue
			}
			conn.WriteToUDP(resp, addr)
		}
	}()
}

func TestTransportRequestResponse(t *testing.T) {
	udpConn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	defer udpConn.Close()
	echoServer(t, udpConn)

	tr, err := NewTransport(DivisionRobot, TransportConfig{
		Host:    "127.0.0.1",
		Port:    udpConn.LocalAddr().(*net.UDPAddr).Port,
		Timeout: 200 * time.Millisecond,
	}, DefaultRobotPort)
	if err != nil {
		t.Fatalf("NewTransport: %v", err)
	}
	defer tr.Close()

	frame, err := tr.Do(Background(), uint16(CmdStatus), 1, 0, ServiceGetAll, nil)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if frame.Response == nil || frame.Response.Status != 0 {
		t.Fatalf("unexpected response: %+v", frame.Response)
	}
}

func TestTransportRetriesOnTimeout(t *testing.T) {
	// A socket that never answers - every attempt must time out.
	silent, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	defer silent.Close()

	received := make(chan struct{}, 8)
	go func() {
		buf := make([]byte, 2048)
		for {
			_, _, err := silent.ReadFromUDP(buf)
			if err != nil {
				return
			}
			received <- struct{}{}
		}
	}()

	tr, err := NewTransport(DivisionRobot, TransportConfig{
		Host:       "127.0.0.1",
		Port:       silent.LocalAddr().(*net.UDPAddr).Port,
		Timeout:    30 * time.Millisecond,
		Retries:    2,
		RetryDelay: 5 * time.Millisecond,
	}, DefaultRobotPort)
	if err != nil {
		t.Fatalf("NewTransport: %v", err)
	}
	defer tr.Close()

	_, err = tr.Do(Background(), uint16(CmdStatus), 1, 0, ServiceGetAll, nil)
	if !errors.Is(err, ErrRequestTimedOut) {
		t.Fatalf("expected ErrRequestTimedOut, got %v", err)
	}

	deadline := time.After(500 * time.Millisecond)
	count := 0
loop:
	for {
		select {
		case <-received:
			count++
			if count == 3 {
				break loop
			}
		case <-deadline:
			break loop
		}
	}
	if count != 3 {
		t.Fatalf("expected 3 attempts (1 initial + 2 retries), observed %d", count)
	}
}

func TestTransportCloseFailsPendingRequests(t *testing.T) {
	silent, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	defer silent.Close()

	tr, err := NewTransport(DivisionRobot, TransportConfig{
		Host:    "127.0.0.1",
		Port:    silent.LocalAddr().(*net.UDPAddr).Port,
		Timeout: 2 * time.Second,
	}, DefaultRobotPort)
	if err != nil {
		t.Fatalf("NewTransport: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := tr.Do(Background(), uint16(CmdStatus), 1, 0, ServiceGetAll, nil)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, ErrNotConnected) {
			t.Fatalf("expected ErrNotConnected, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Do did not return after Close")
	}
}
