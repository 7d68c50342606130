// Package decode turns fbcast wire payloads back into images, for the
// viewer and for round-trip tests.
package decode

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"fbcast.app/fbcast/internal/protocol"
)

// ForFormat returns the decoder for one snapshot format at the session's
// capture dimensions.
func ForFormat(f protocol.Format, width, height int) (Decoder, error) {
	switch f {
	case protocol.FormatRGB24:
		return &RGB24Decoder{Width: width, Height: height}, nil
	case protocol.FormatRGB565:
		return &RGB565Decoder{Width: width, Height: height}, nil
	case protocol.FormatMono:
		return &MonoDecoder{Width: width, Height: height}, nil
	case protocol.FormatMonoRotated:
		return &MonoDecoder{Width: width, Height: height, Rotated: true}, nil
	}
	return nil, fmt.Errorf("no decoder for format %v", f)
}

// RGB24Decoder decodes 3-byte-per-pixel payloads.
type RGB24Decoder struct {
	Width, Height int
}

func (d *RGB24Decoder) Decode(payload []byte) (*image.RGBA, error) {
	if len(payload) != 3*d.Width*d.Height {
		return nil, fmt.Errorf("rgb24 payload is %d bytes, want %d", len(payload), 3*d.Width*d.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	for i := 0; i < d.Width*d.Height; i++ {
		img.Pix[i*4] = payload[i*3]
		img.Pix[i*4+1] = payload[i*3+1]
		img.Pix[i*4+2] = payload[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img, nil
}

// RGB565Decoder decodes raw packed-pixel payloads, expanding each channel to
// fill 8 bits the same way the daemon's RGB24 encoder does.
type RGB565Decoder struct {
	Width, Height int
}

func (d *RGB565Decoder) Decode(payload []byte) (*image.RGBA, error) {
	if len(payload) != 2*d.Width*d.Height {
		return nil, fmt.Errorf("rgb565 payload is %d bytes, want %d", len(payload), 2*d.Width*d.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	for i := 0; i < d.Width*d.Height; i++ {
		p := binary.LittleEndian.Uint16(payload[i*2:])
		img.Pix[i*4] = byte(p>>11) << 3
		img.Pix[i*4+1] = byte((p>>5)&0x3f) << 2
		img.Pix[i*4+2] = byte(p&0x1f) << 3
		img.Pix[i*4+3] = 0xff
	}
	return img, nil
}

// Pixels unpacks the payload into packed RGB565 values, for callers that
// want the raw pixels rather than an image.
func (d *RGB565Decoder) Pixels(payload []byte) ([]uint16, error) {
	if len(payload) != 2*d.Width*d.Height {
		return nil, fmt.Errorf("rgb565 payload is %d bytes, want %d", len(payload), 2*d.Width*d.Height)
	}
	pix := make([]uint16, d.Width*d.Height)
	for i := range pix {
		pix[i] = binary.LittleEndian.Uint16(payload[i*2:])
	}
	return pix, nil
}

// MonoDecoder decodes bit-packed monochrome payloads, row-major or the
// column-major rotated variant, into black and white.
type MonoDecoder struct {
	Width, Height int
	Rotated       bool
}

func (d *MonoDecoder) Decode(payload []byte) (*image.RGBA, error) {
	if len(payload) != d.Width*d.Height/8 {
		return nil, fmt.Errorf("mono payload is %d bytes, want %d", len(payload), d.Width*d.Height/8)
	}
	img := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	for i, b := range payload {
		for bit := 0; bit < 8; bit++ {
			var x, y int
			if d.Rotated {
				x = i / (d.Height / 8)
				y = i%(d.Height/8)*8 + bit
			} else {
				x = i%(d.Width/8)*8 + bit
				y = i / (d.Width / 8)
			}
			c := color.RGBA{A: 0xff}
			if b&(1<<bit) != 0 {
				c = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}
