package mock_test

import (
	"net"
	"testing"
	"time"

	"github.com/robotics-tools/hses"
	"github.com/robotics-tools/hses/mock"
)

// startServer boots a mock server on an OS-assigned loopback port and
// returns it alongside a Client already dialed to it, both torn down by
// t.Cleanup.
func startServer(t *testing.T, state *mock.State, enc hses.TextEncoding) (*mock.Server, *hses.Client) {
	t.Helper()

	srv, err := mock.NewServer(state, mock.Host("127.0.0.1"), mock.RobotPort(0), mock.FilePort(0))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { srv.Stop() })

	client, err := hses.NewClient(hses.Configuration{
		Host:         "127.0.0.1",
		Port:         srv.RobotAddr().Port,
		Timeout:      200 * time.Millisecond,
		RetryCount:   1,
		TextEncoding: enc,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return srv, client
}

func TestScenarioStatusRoundTrip(t *testing.T) {
	state := mock.NewBuilder().
		WithStatus(hses.Status{
			StatusData1: hses.StatusData1{Running: true, Continuous: true},
			StatusData2: hses.StatusData2{ServoOn: true},
		}).
		Build()
	_, client := startServer(t, state, hses.UTF8)

	got, err := client.ReadStatus(hses.Background())
	if err != nil {
		t.Fatalf("ReadStatus: %v", err)
	}
	if !got.Running || !got.Continuous || !got.ServoOn {
		t.Fatalf("status mismatch: %+v", got)
	}
}

func TestScenarioInt16WriteThenRead(t *testing.T) {
	state := mock.NewBuilder().Build()
	_, client := startServer(t, state, hses.UTF8)

	ctx := hses.Background()
	if err := client.WriteInt16(ctx, 5, -321); err != nil {
		t.Fatalf("WriteInt16: %v", err)
	}
	got, err := client.ReadInt16(ctx, 5)
	if err != nil {
		t.Fatalf("ReadInt16: %v", err)
	}
	if got != -321 {
		t.Fatalf("got %d want -321", got)
	}
}

func TestScenarioShiftJISStringRoundTrip(t *testing.T) {
	state := mock.NewBuilder().WithTextEncoding(hses.ShiftJIS).Build()
	_, client := startServer(t, state, hses.ShiftJIS)

	ctx := hses.Background()
	if err := client.WriteString(ctx, 0, "テスト"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	got, err := client.ReadString(ctx, 0)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "テスト" {
		t.Fatalf("got %q want %q", got, "テスト")
	}
}

func TestScenarioAlarmReset(t *testing.T) {
	state := mock.NewBuilder().
		WithAlarm(1, hses.AlarmRecord{Code: 4107, Name: "Servo Error"}).
		Build()
	_, client := startServer(t, state, hses.UTF8)

	ctx := hses.Background()
	status, err := client.ReadStatus(ctx)
	if err != nil {
		t.Fatalf("ReadStatus: %v", err)
	}
	if !status.Alarm {
		t.Fatal("expected the alarm bit to be set before reset")
	}

	if err := client.ResetAlarm(ctx); err != nil {
		t.Fatalf("ResetAlarm: %v", err)
	}

	status, err = client.ReadStatus(ctx)
	if err != nil {
		t.Fatalf("ReadStatus after reset: %v", err)
	}
	if status.Alarm {
		t.Fatal("expected the alarm bit to be cleared after reset")
	}

	rec, err := client.ReadAlarmData(ctx, 1, hses.AlarmAll)
	if err != nil {
		t.Fatalf("ReadAlarmData after reset: %v", err)
	}
	if rec.Code != 0 {
		t.Fatalf("expected slot 1 to read back empty, got %+v", rec)
	}
}

func TestScenarioCycleMode(t *testing.T) {
	state := mock.NewBuilder().Build()
	_, client := startServer(t, state, hses.UTF8)

	ctx := hses.Background()
	if err := client.SetCycleMode(ctx, hses.CycleStep); err != nil {
		t.Fatalf("SetCycleMode: %v", err)
	}

	status, err := client.ReadStatus(ctx)
	if err != nil {
		t.Fatalf("ReadStatus: %v", err)
	}
	if !status.Step || status.Continuous || status.OneCycle {
		t.Fatalf("expected step mode only, got %+v", status.StatusData1)
	}
}

func TestScenarioJobSelectBounds(t *testing.T) {
	state := mock.NewBuilder().Build()
	_, client := startServer(t, state, hses.UTF8)

	ctx := hses.Background()

	oversizedName := ""
	for i := 0; i < 33; i++ {
		oversizedName += "A"
	}
	if err := client.SelectJob(ctx, hses.MasterTask, oversizedName, 0); err == nil {
		t.Fatal("expected a 33-byte job name to be rejected")
	}

	if err := client.SelectJob(ctx, hses.MasterTask, "TEST", 9999); err != nil {
		t.Fatalf("expected line 9999 to be accepted, got %v", err)
	}

	if err := client.SelectJob(ctx, hses.MasterTask, "TEST", 10000); err == nil {
		t.Fatal("expected line 10000 to be rejected")
	}
}

func TestScenarioPluralByteVariable(t *testing.T) {
	state := mock.NewBuilder().Build()
	_, client := startServer(t, state, hses.UTF8)

	ctx := hses.Background()
	values := []uint8{1, 2, 3, 4, 5, 6}
	if err := client.WriteMultipleBytes(ctx, 90, values); err != nil {
		t.Fatalf("WriteMultipleBytes: %v", err)
	}

	got, err := client.ReadMultipleBytes(ctx, 90, len(values))
	if err != nil {
		t.Fatalf("ReadMultipleBytes: %v", err)
	}
	if len(got) != len(values) {
		t.Fatalf("got %d values, want %d", len(got), len(values))
	}
	for i, v := range values {
		if got[i] != v {
			t.Fatalf("index %d: got %d want %d", i, got[i], v)
		}
	}
}

func TestScenarioUnknownCommand(t *testing.T) {
	state := mock.NewBuilder().Build()
	srv, _ := startServer(t, state, hses.UTF8)

	raw, err := hses.EncodeRequest(hses.DivisionRobot, 1, 0x9999, 1, 0, hses.ServiceGetAll, nil)
	if err != nil {
		t.Fatalf("EncodeRequest: %v", err)
	}

	conn, err := net.Dial("udp", srv.RobotAddr().String())
	if err != nil {
		t.Fatalf("net.Dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write(raw); err != nil {
		t.Fatalf("write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	frame, err := hses.DecodeFrame(buf[:n])
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if frame.Ack != 1 {
		t.Fatalf("expected ack=1, got %d", frame.Ack)
	}
	if frame.Response == nil {
		t.Fatal("expected a response sub-header")
	}
	if frame.Response.Status == 0 {
		t.Fatal("expected a non-zero status for an unknown command")
	}
	if len(frame.Payload) != 0 {
		t.Fatalf("expected an empty payload, got %d bytes", len(frame.Payload))
	}
}

func TestScenarioIOWriteProtection(t *testing.T) {
	state := mock.NewBuilder().Build()
	_, client := startServer(t, state, hses.UTF8)

	ctx := hses.Background()
	if err := client.WriteIO(ctx, 1, true); err == nil {
		t.Fatal("expected a write to a read-only input range to be rejected")
	}
	if err := client.WriteIO(ctx, 2701, true); err != nil {
		t.Fatalf("expected a write to the network-input range to succeed, got %v", err)
	}
	got, err := client.ReadIO(ctx, 2701)
	if err != nil {
		t.Fatalf("ReadIO: %v", err)
	}
	if !got {
		t.Fatal("expected the written point to read back true")
	}
}

func TestScenarioRegisterWriteProtection(t *testing.T) {
	state := mock.NewBuilder().Build()
	_, client := startServer(t, state, hses.UTF8)

	ctx := hses.Background()
	if err := client.WriteRegister(ctx, 900, 7); err == nil {
		t.Fatal("expected a write past the writable bound to be rejected")
	}
	if err := client.WriteRegister(ctx, 10, 7); err != nil {
		t.Fatalf("expected a write within the writable bound to succeed, got %v", err)
	}
	got, err := client.ReadRegister(ctx, 10)
	if err != nil {
		t.Fatalf("ReadRegister: %v", err)
	}
	if got != 7 {
		t.Fatalf("got %d want 7", got)
	}
}

func TestSharedClientSerializesConcurrentCallers(t *testing.T) {
	state := mock.NewBuilder().Build()
	_, client := startServer(t, state, hses.UTF8)
	shared := hses.NewSharedClient(client)

	ctx := hses.Background()
	done := make(chan error, 20)
	for i := 0; i < 20; i++ {
		i := i
		go func() {
			done <- shared.WriteInt16(ctx, i%4, int16(i))
		}()
	}
	for i := 0; i < 20; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent WriteInt16: %v", err)
		}
	}
}

func TestScenarioFileTransfer(t *testing.T) {
	state := mock.NewBuilder().WithFile("EXISTING.JBI", []byte("pre-seeded")).Build()
	srv, err := mock.NewServer(state, mock.Host("127.0.0.1"), mock.RobotPort(0), mock.FilePort(0))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { srv.Stop() })

	fc, err := hses.NewFileClient(hses.Configuration{
		Host:    "127.0.0.1",
		Port:    srv.FileAddr().Port,
		Timeout: 200 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewFileClient: %v", err)
	}
	t.Cleanup(func() { fc.Close() })

	ctx := hses.Background()
	if err := fc.SendFile(ctx, "NEW.JBI", []byte("hello world")); err != nil {
		t.Fatalf("SendFile: %v", err)
	}

	content, err := fc.ReceiveFile(ctx, "NEW.JBI")
	if err != nil {
		t.Fatalf("ReceiveFile: %v", err)
	}
	if string(content) != "hello world" {
		t.Fatalf("got %q want %q", content, "hello world")
	}

	names, err := fc.ReadFileList(ctx, "*.JBI")
	if err != nil {
		t.Fatalf("ReadFileList: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 files listed, got %v", names)
	}

	if err := fc.DeleteFile(ctx, "EXISTING.JBI"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := fc.ReceiveFile(ctx, "EXISTING.JBI"); err == nil {
		t.Fatal("expected ReceiveFile to fail for a deleted file")
	}
}
