// Package protocol implements the length-framed pipe protocol: inbound
// command reassembly and dispatch, outbound frame emission, and the
// capability frame.
//
// Both directions use 4-byte big-endian length framing. Each inbound command
// is `00 00 00 L CMD [ARG]`, where L counts the bytes after the length field
// (the command code plus its arguments).
package protocol

import (
	"encoding/binary"
	"fmt"
)

// Format identifies a snapshot encoding requested by the consumer.
type Format uint8

const (
	FormatNone Format = iota
	FormatRGB24
	FormatRGB565
	FormatMono
	FormatMonoRotated
)

func (f Format) String() string {
	switch f {
	case FormatRGB24:
		return "rgb24"
	case FormatRGB565:
		return "rgb565"
	case FormatMono:
		return "mono"
	case FormatMonoRotated:
		return "mono-rotated"
	default:
		return "none"
	}
}

// ParseFormat parses a format name as used on the command line.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "rgb24":
		return FormatRGB24, nil
	case "rgb565":
		return FormatRGB565, nil
	case "mono":
		return FormatMono, nil
	case "mono-rotated":
		return FormatMonoRotated, nil
	}
	return FormatNone, fmt.Errorf("unknown format %q", s)
}

// Command codes. Codes 1 and 2 both request an RGB24 snapshot; 1 is a
// historical alias kept for consumer compatibility.
const (
	CmdSnapshotRGB24       byte = 2
	CmdSnapshotRGB565      byte = 3
	CmdSnapshotMono        byte = 4
	CmdSnapshotMonoRotated byte = 5
	CmdSetThreshold        byte = 6
	CmdSetDithering        byte = 7
)

// SnapshotCode returns the command code requesting a snapshot in the given
// format.
func SnapshotCode(f Format) byte {
	switch f {
	case FormatRGB24:
		return CmdSnapshotRGB24
	case FormatRGB565:
		return CmdSnapshotRGB565
	case FormatMono:
		return CmdSnapshotMono
	case FormatMonoRotated:
		return CmdSnapshotMonoRotated
	}
	return 0
}

// Command builds one wire command: three reserved zero bytes, the length of
// what follows, the code and its arguments.
func Command(code byte, args ...byte) []byte {
	cmd := make([]byte, 0, 5+len(args))
	cmd = append(cmd, 0, 0, 0, byte(1+len(args)), code)
	return append(cmd, args...)
}

// CapabilitySize is the fixed payload size of the capability frame: a
// 16-byte name field followed by five 32-bit fields.
const CapabilitySize = 36

// Capability is the frame the daemon emits once at startup, describing the
// backend and the negotiated capture geometry.
type Capability struct {
	BackendName   string
	DisplayID     uint32
	DisplayWidth  uint32
	DisplayHeight uint32
	CaptureWidth  uint32
	CaptureHeight uint32
}

// PutCapability writes the 36-byte capability payload into dst. The name is
// zero-padded or truncated to 16 bytes; the integer fields are big-endian.
func PutCapability(dst []byte, c *Capability) int {
	var name [16]byte
	copy(name[:], c.BackendName)
	copy(dst, name[:])
	binary.BigEndian.PutUint32(dst[16:], c.DisplayID)
	binary.BigEndian.PutUint32(dst[20:], c.DisplayWidth)
	binary.BigEndian.PutUint32(dst[24:], c.DisplayHeight)
	binary.BigEndian.PutUint32(dst[28:], c.CaptureWidth)
	binary.BigEndian.PutUint32(dst[32:], c.CaptureHeight)
	return CapabilitySize
}

// ParseCapability decodes a capability frame payload.
func ParseCapability(payload []byte) (*Capability, error) {
	if len(payload) != CapabilitySize {
		return nil, fmt.Errorf("capability frame is %d bytes, want %d", len(payload), CapabilitySize)
	}
	name := payload[:16]
	end := len(name)
	for end > 0 && name[end-1] == 0 {
		end--
	}
	return &Capability{
		BackendName:   string(name[:end]),
		DisplayID:     binary.BigEndian.Uint32(payload[16:]),
		DisplayWidth:  binary.BigEndian.Uint32(payload[20:]),
		DisplayHeight: binary.BigEndian.Uint32(payload[24:]),
		CaptureWidth:  binary.BigEndian.Uint32(payload[28:]),
		CaptureHeight: binary.BigEndian.Uint32(payload[32:]),
	}, nil
}
