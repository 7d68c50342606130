// Package daemon ties the capture backend, the pixel encoders and the pipe
// protocol together into the single-threaded capture loop.
package daemon

import (
	"fmt"
	"io"

	"fbcast.app/fbcast/internal/capture"
	"fbcast.app/fbcast/internal/encode"
	"fbcast.app/fbcast/internal/protocol"
)

// DefaultThreshold is the monochrome threshold applied at startup. An
// arbitrary value that looks relatively good for content that was never
// designed for monochrome.
const DefaultThreshold = 25

// Session owns the capture backend, the three frame-cycle buffers and the
// mutable protocol state. Exactly one session exists per process; everything
// runs on the caller's goroutine.
type Session struct {
	backend capture.Backend
	info    capture.Info

	frame    capture.Frame // raw captured pixels, stride*height
	work     []byte        // prefix + worst-case payload, reused per emission
	residual []int16       // dither residuals, width*height

	threshold encode.Threshold
	ditherer  encode.Ditherer
	dithering bool
	pending   protocol.Format

	parser *protocol.Parser
	framer *protocol.Framer
}

var _ protocol.Handler = (*Session)(nil)

// New sizes the session buffers from the backend's confirmed capture
// geometry and applies the default configuration. The monochrome encodings
// pack 8 pixels per byte, so the capture dimensions must be multiples of 8.
func New(backend capture.Backend, out io.Writer) (*Session, error) {
	info := backend.Info()
	if info.Width <= 0 || info.Height <= 0 || info.Stride < info.Width {
		return nil, fmt.Errorf("invalid capture geometry %dx%d stride %d", info.Width, info.Height, info.Stride)
	}
	if info.Width%8 != 0 || info.Height%8 != 0 {
		return nil, fmt.Errorf("capture dimensions %dx%d must be multiples of 8", info.Width, info.Height)
	}

	s := &Session{
		backend: backend,
		info:    info,
		frame: capture.Frame{
			Pix:    make([]uint16, info.Stride*info.Height),
			Width:  info.Width,
			Height: info.Height,
			Stride: info.Stride,
		},
		work:      make([]byte, protocol.PrefixSize+3*info.Width*info.Height),
		residual:  make([]int16, info.Width*info.Height),
		threshold: encode.NewThreshold(DefaultThreshold),
		ditherer:  encode.FloydSteinberg{},
		framer:    protocol.NewFramer(out),
	}
	s.parser = protocol.NewParser(s)
	return s, nil
}

// Run emits the capability frame and then serves the command stream until
// end of stream (nil) or a fatal error. The blocking read on in is the only
// suspension point.
func (s *Session) Run(in io.Reader) error {
	if err := s.emitCapability(); err != nil {
		return err
	}
	for {
		if err := s.parser.Pump(in); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if s.pending == protocol.FormatNone {
			continue
		}
		if err := s.backend.Capture(s.frame.Pix); err != nil {
			return fmt.Errorf("capture: %v", err)
		}
		if err := s.emitSnapshot(s.pending); err != nil {
			return err
		}
		s.pending = protocol.FormatNone
	}
}

// Close releases the backend. The session buffers go with the process.
func (s *Session) Close() error {
	return s.backend.Close()
}

func (s *Session) emitCapability() error {
	n := protocol.PutCapability(s.work[protocol.PrefixSize:], &protocol.Capability{
		BackendName:   s.info.Name,
		DisplayID:     s.info.DisplayID,
		DisplayWidth:  s.info.DisplayWidth,
		DisplayHeight: s.info.DisplayHeight,
		CaptureWidth:  uint32(s.info.Width),
		CaptureHeight: uint32(s.info.Height),
	})
	return s.framer.WriteFrame(s.work, n)
}

func (s *Session) emitSnapshot(f protocol.Format) error {
	payload := s.work[protocol.PrefixSize:]
	var n int
	switch f {
	case protocol.FormatRGB24:
		n = encode.RGB24(payload, &s.frame)
	case protocol.FormatRGB565:
		n = encode.RGB565(payload, &s.frame)
	case protocol.FormatMono:
		if s.dithering {
			s.ditherer.Apply(&s.frame, s.residual)
			n = encode.MonoResidual(payload, s.residual, s.info.Width, s.info.Height)
		} else {
			n = encode.Mono(payload, &s.frame, s.threshold)
		}
	case protocol.FormatMonoRotated:
		if s.dithering {
			s.ditherer.Apply(&s.frame, s.residual)
			n = encode.MonoRotatedResidual(payload, s.residual, s.info.Width, s.info.Height)
		} else {
			n = encode.MonoRotated(payload, &s.frame, s.threshold)
		}
	default:
		return nil
	}
	return s.framer.WriteFrame(s.work, n)
}

// RequestSnapshot records the encoding for the next capture cycle,
// overwriting any request not yet served.
func (s *Session) RequestSnapshot(f protocol.Format) {
	s.pending = f
}

func (s *Session) SetThreshold(v uint8) {
	s.threshold = encode.NewThreshold(v)
}

func (s *Session) SetDithering(on bool) {
	s.dithering = on
}
