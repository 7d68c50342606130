package protocol

import (
	"fmt"
	"io"
)

// Handler receives decoded commands from the Parser.
type Handler interface {
	// RequestSnapshot records a pending snapshot request. A later request
	// overwrites an earlier one that has not been served yet.
	RequestSnapshot(f Format)
	SetThreshold(v uint8)
	SetDithering(on bool)
}

// commandBufferSize bounds bytes read but not yet resolved into commands.
// The fill index never reaches the last byte, so there is always room for
// at least one more read.
const commandBufferSize = 256

// A command needs at least the 4-byte length field plus the code byte.
const minCommand = 5

// Parser reassembles complete commands from a byte stream arriving in
// arbitrary-sized chunks and dispatches each to the handler. Trailing
// partial commands are kept, left-aligned, for the next chunk.
type Parser struct {
	h   Handler
	buf [commandBufferSize]byte
	n   int
}

func NewParser(h Handler) *Parser {
	return &Parser{h: h}
}

// Pump performs one read from r into the command buffer and dispatches every
// complete command now available. It returns io.EOF on end of stream, and a
// non-nil error for transport failures or protocol violations; both are
// terminal for the session.
func (p *Parser) Pump(r io.Reader) error {
	nr, err := r.Read(p.buf[p.n : len(p.buf)-1])
	if nr == 0 {
		if err == nil || err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("read command stream: %v", err)
	}
	p.n += nr
	if derr := p.drain(); derr != nil {
		return derr
	}
	if err != nil && err != io.EOF {
		return fmt.Errorf("read command stream: %v", err)
	}
	return nil
}

// Feed appends bytes to the command buffer and dispatches complete commands,
// as if they had arrived from the stream.
func (p *Parser) Feed(data []byte) error {
	for len(data) > 0 {
		free := len(p.buf) - 1 - p.n
		k := min(free, len(data))
		copy(p.buf[p.n:], data[:k])
		p.n += k
		data = data[k:]
		if err := p.drain(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) drain() error {
	for p.n >= minCommand {
		if p.buf[0] != 0 || p.buf[1] != 0 || p.buf[2] != 0 {
			// The reserved bytes double as the high-order length bytes of
			// the consumer's 4-byte framing; non-zero means the stream is
			// out of sync beyond recovery.
			return fmt.Errorf("malformed command header: % x", p.buf[:4])
		}
		total := int(p.buf[3]) + 4
		if total > len(p.buf)-1 {
			// Can never be fully buffered; the fill index stops one short
			// of the buffer's capacity.
			return fmt.Errorf("declared command length %d exceeds buffer", total)
		}
		if p.n < total {
			break
		}
		if total >= minCommand {
			p.dispatch(p.buf[4], p.buf[minCommand:total])
		}
		p.n -= total
		copy(p.buf[:], p.buf[total:total+p.n])
	}
	return nil
}

func (p *Parser) dispatch(code byte, args []byte) {
	switch code {
	case 1, CmdSnapshotRGB24:
		p.h.RequestSnapshot(FormatRGB24)
	case CmdSnapshotRGB565:
		p.h.RequestSnapshot(FormatRGB565)
	case CmdSnapshotMono:
		p.h.RequestSnapshot(FormatMono)
	case CmdSnapshotMonoRotated:
		p.h.RequestSnapshot(FormatMonoRotated)
	case CmdSetThreshold:
		if len(args) >= 1 {
			p.h.SetThreshold(args[0])
		}
	case CmdSetDithering:
		if len(args) >= 1 {
			p.h.SetDithering(args[0] != 0)
		}
	default:
		// Unknown codes are dropped silently.
	}
}
