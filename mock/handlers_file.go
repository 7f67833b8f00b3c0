package mock

import (
	"bytes"

	"github.com/robotics-tools/hses"
)

// handleFileControl implements command id 0 (spec.md §6): the file family
// uses no instance/attribute, dispatching purely on the service byte.
func handleFileControl(st *State, enc hses.TextEncoding, sub hses.RequestSubHeader, payload []byte) ([]byte, error) {
	switch sub.Service {
	case hses.ServiceGetFileList:
		return fileListResponse(st, enc), nil

	case hses.ServiceSendFile:
		idx := bytes.IndexByte(payload, 0)
		if idx < 0 {
			return nil, hses.ErrFileError
		}
		name := hses.DecodeText(enc, payload[:idx])
		content := append([]byte(nil), payload[idx+1:]...)
		st.files[name] = content
		return nil, nil

	case hses.ServiceReceiveFile:
		name := hses.DecodeText(enc, payload)
		content, ok := st.files[name]
		if !ok {
			return nil, hses.ErrFileError
		}
		nameBytes, _ := hses.EncodeText(enc, name, len(name)+1)
		out := append([]byte(nil), nameBytes...)
		out = append(out, content...)
		return out, nil

	case hses.ServiceDeleteFile:
		name := hses.DecodeText(enc, payload)
		if _, ok := st.files[name]; !ok {
			return nil, hses.ErrFileError
		}
		delete(st.files, name)
		return nil, nil
	}

	return nil, hses.ErrInvalidService
}

// fileListResponse builds the CR-LF-separated file listing the client's
// ReadFileList normalizes and splits (spec.md §6).
func fileListResponse(st *State, enc hses.TextEncoding) []byte {
	var buf bytes.Buffer
	for name := range st.files {
		buf.WriteString(name)
		buf.WriteString("\r\n")
	}

	out, _ := hses.EncodeText(enc, buf.String(), buf.Len())
	return out
}
