package capture

import (
	"fmt"
	"strconv"
)

// Frame is one captured image in packed RGB565, row-major with the backend's
// row stride. Stride is in pixels and may exceed Width due to hardware row
// alignment; Pix holds Stride*Height entries.
type Frame struct {
	Pix    []uint16
	Width  int
	Height int
	Stride int
}

// Info describes an opened backend and its capture geometry.
type Info struct {
	Name          string // backend identifier, at most 16 bytes on the wire
	DisplayID     uint32
	DisplayWidth  uint32
	DisplayHeight uint32
	Width         int // capture width in pixels
	Height        int // capture height in pixels
	Stride        int // pixels per frame buffer row, Stride >= Width
}

// Backend supplies raw RGB565 frames from a display surface.
type Backend interface {
	Info() Info
	// Capture fills dst (Stride*Height pixels) with one frame.
	Capture(dst []uint16) error
	Close() error
}

// Open opens a capture backend for the given device identifier. The literal
// "test" selects the synthetic pattern backend; anything else is a numeric
// display/framebuffer index handled by the platform backend.
func Open(device string, width, height int) (Backend, error) {
	if device == "test" {
		return NewPattern(width, height), nil
	}
	id, err := strconv.ParseUint(device, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid device %q: %v", device, err)
	}
	return openDisplay(uint32(id), width, height)
}
