package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// PrefixSize is the outbound length prefix: 4 bytes, big-endian.
const PrefixSize = 4

// Framer emits length-prefixed frames. The payload is expected to already
// sit PrefixSize bytes into the buffer so the whole frame goes out in one
// write; a short write means the consumer is gone and is terminal.
type Framer struct {
	w io.Writer
}

func NewFramer(w io.Writer) *Framer {
	return &Framer{w: w}
}

// WriteFrame stamps the length prefix into buf[:4] and writes the
// 4+payloadLen byte span as a single unit.
func (f *Framer) WriteFrame(buf []byte, payloadLen int) error {
	binary.BigEndian.PutUint32(buf, uint32(payloadLen))
	total := PrefixSize + payloadLen
	n, err := f.w.Write(buf[:total])
	if err != nil {
		return fmt.Errorf("write frame: %v", err)
	}
	if n != total {
		return fmt.Errorf("write frame: short write, %d of %d bytes", n, total)
	}
	return nil
}
