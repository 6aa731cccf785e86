// Package ipc implements the length-prefixed binary framing protocol the
// simulation service speaks over stdio, and the request-processing logic
// shared between that service and the cgo bridge.
package ipc

import (
	"encoding/binary"
	"errors"
	"io"
)

// Message type tags. Every frame is a 4-byte little-endian length prefix
// (covering the type byte plus payload), then the type byte, then payload.
const (
	MsgPing          byte = 1
	MsgSimulateBatch byte = 2
	MsgShutdown      byte = 3
	MsgPingOk        byte = 4
	MsgBatchResponse byte = 5
	MsgError         byte = 6
)

// Error codes carried in MsgError payloads.
const (
	ErrCodeBytecodeMalformed uint32 = 1
	ErrCodeUnsupportedOpcode uint32 = 2
	ErrCodeInvariant         uint32 = 3
	ErrCodeTimeout           uint32 = 4
	ErrCodeFraming           uint32 = 5
	ErrCodeUnknownMessage    uint32 = 6
)

// MaxFrameSize bounds a single frame so a corrupted length prefix can't
// force an unbounded allocation.
const MaxFrameSize = 64 << 20

var (
	ErrFrameTooLarge = errors.New("ipc: frame exceeds maximum size")
	ErrEmptyFrame    = errors.New("ipc: empty frame")
)

// ReadFrame reads one frame and splits its message-type byte from the
// payload that follows it.
func ReadFrame(r io.Reader) (msgType byte, payload []byte, err error) {
	var lenBuf [4]byte
	if _, err = io.ReadFull(r, lenBuf[:]); err != nil {
		return 0, nil, err
	}

	length := binary.LittleEndian.Uint32(lenBuf[:])
	if length == 0 {
		return 0, nil, ErrEmptyFrame
	}
	if length > MaxFrameSize {
		return 0, nil, ErrFrameTooLarge
	}

	body := make([]byte, length)
	if _, err = io.ReadFull(r, body); err != nil {
		return 0, nil, err
	}
	return body[0], body[1:], nil
}

// WriteFrame writes msgType and payload as one length-prefixed frame.
func WriteFrame(w io.Writer, msgType byte, payload []byte) error {
	frame := make([]byte, 5+len(payload))
	binary.LittleEndian.PutUint32(frame[:4], uint32(1+len(payload)))
	frame[4] = msgType
	copy(frame[5:], payload)
	_, err := w.Write(frame)
	return err
}

// EncodeError builds a MsgError payload: a uint32 code followed by the
// message text.
func EncodeError(code uint32, message string) []byte {
	payload := make([]byte, 4+len(message))
	binary.LittleEndian.PutUint32(payload[:4], code)
	copy(payload[4:], message)
	return payload
}

// DecodeError reverses EncodeError.
func DecodeError(payload []byte) (code uint32, message string) {
	if len(payload) < 4 {
		return 0, ""
	}
	return binary.LittleEndian.Uint32(payload[:4]), string(payload[4:])
}
