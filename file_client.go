package hses

import (
	"bytes"
	"fmt"
	"strings"
)

// FileClient is the file-control facade. It opens its own UDP transport to
// host:port, where port is conf.Port or DefaultFilePort when that is zero
// (division 2, spec.md §4.4, §6), and implements the file
// commands, which use command id 0 with the service byte alone
// distinguishing the operation (spec.md §6).
type FileClient struct {
	conf   Configuration
	logger *logger
	file   *Transport
	enc    TextEncoding
}

// NewFileClient dials the file-control UDP port. If conf.Port is zero, it
// defaults to DefaultFilePort (the robot-control default port + 1).
func NewFileClient(conf Configuration) (*FileClient, error) {
	full := conf.withDefaults()
	if conf.Port == 0 {
		full.Port = DefaultFilePort
	}

	file, err := NewTransport(DivisionFile, TransportConfig{
		Host:       full.Host,
		Port:       full.Port,
		Timeout:    full.Timeout,
		Retries:    full.RetryCount,
		RetryDelay: full.RetryDelay,
		BufferSize: full.BufferSize,
		Logger:     full.Logger,
	}, DefaultFilePort)
	if err != nil {
		return nil, err
	}

	return &FileClient{
		conf:   full,
		logger: newLogger(fmt.Sprintf("hses-file-client(%s:%d)", full.Host, full.Port), full.Logger),
		file:   file,
		enc:    full.TextEncoding,
	}, nil
}

// Close shuts down the file-control transport.
func (f *FileClient) Close() error {
	return f.file.Close()
}

func (f *FileClient) do(ctx Context, service uint8, payload []byte) ([]byte, error) {
	sub := RequestSubHeader{Command: uint16(CmdFileControl), Instance: 0, Attribute: 0, Service: service}
	if err := ValidateRequest(CmdFileControl, sub, payload); err != nil {
		return nil, err
	}

	frame, err := f.file.Do(ctx, uint16(CmdFileControl), 0, 0, service, payload)
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

// ReadFileList lists files matching pattern (spec.md §6: "entries separated
// by CR LF or NUL, filtered of empties").
func (f *FileClient) ReadFileList(ctx Context, pattern string) ([]string, error) {
	req, _ := encodeText(f.enc, pattern, len(pattern)+1)
	payload, err := f.do(ctx, ServiceGetFileList, req)
	if err != nil {
		return nil, err
	}

	raw := decodeText(f.enc, payload)
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\x00", "\n")

	var entries []string
	for _, e := range strings.Split(raw, "\n") {
		if e != "" {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// SendFile uploads content under name (spec.md §6: "filename NUL content").
func (f *FileClient) SendFile(ctx Context, name string, content []byte) error {
	nameBytes, truncated := encodeText(f.enc, name, len(name))
	if truncated {
		return invalidMessage("file name %q does not fit", name)
	}
	payload := append(append(nameBytes, 0), content...)
	_, err := f.do(ctx, ServiceSendFile, payload)
	return err
}

// ReceiveFile downloads a file by name (spec.md §6: response = "filename
// NUL content").
func (f *FileClient) ReceiveFile(ctx Context, name string) ([]byte, error) {
	req, _ := encodeText(f.enc, name, len(name)+1)
	payload, err := f.do(ctx, ServiceReceiveFile, req)
	if err != nil {
		return nil, err
	}

	idx := bytes.IndexByte(payload, 0)
	if idx < 0 {
		return nil, ErrDeserialization
	}
	return payload[idx+1:], nil
}

// DeleteFile removes a file by name.
func (f *FileClient) DeleteFile(ctx Context, name string) error {
	req, _ := encodeText(f.enc, name, len(name)+1)
	_, err := f.do(ctx, ServiceDeleteFile, req)
	return err
}
