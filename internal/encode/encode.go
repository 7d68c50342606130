// Package encode converts captured RGB565 frames into the wire encodings.
// Every encoder writes its payload into a caller-owned buffer and returns
// the payload length; framing is the caller's concern.
//
// The monochrome encoders assume the frame width is a multiple of 8, and the
// rotated variant additionally assumes the height is. Callers validate this
// once when the session is set up.
package encode

import (
	"encoding/binary"

	"fbcast.app/fbcast/internal/capture"
)

// RGB24 expands each pixel to 8-bit R,G,B (3 bytes per pixel, row-major),
// left-shifting each channel to fill the byte.
func RGB24(dst []byte, f *capture.Frame) int {
	n := 0
	for y := 0; y < f.Height; y++ {
		row := f.Pix[y*f.Stride:]
		for x := 0; x < f.Width; x++ {
			p := row[x]
			dst[n] = byte(p>>11) << 3
			dst[n+1] = byte((p>>5)&0x3f) << 2
			dst[n+2] = byte(p&0x1f) << 3
			n += 3
		}
	}
	return n
}

// RGB565 emits the packed pixels unchanged, two bytes per pixel
// least-significant byte first, row-major with stride padding dropped.
func RGB565(dst []byte, f *capture.Frame) int {
	n := 0
	for y := 0; y < f.Height; y++ {
		row := f.Pix[y*f.Stride : y*f.Stride+f.Width]
		for _, p := range row {
			binary.LittleEndian.PutUint16(dst[n:], p)
			n += 2
		}
	}
	return n
}

// Mono packs thresholded pixels 8 per byte, row-major, bit 0 carrying the
// first pixel of each group.
func Mono(dst []byte, f *capture.Frame, th Threshold) int {
	n := 0
	for y := 0; y < f.Height; y++ {
		row := f.Pix[y*f.Stride:]
		for x := 0; x < f.Width; x += 8 {
			var b byte
			for i := 0; i < 8; i++ {
				if th.On(row[x+i]) {
					b |= 1 << i
				}
			}
			dst[n] = b
			n++
		}
	}
	return n
}

// MonoRotated packs the same decisions column by column: each output byte
// covers 8 vertically adjacent pixels of one column, for targets rotated
// relative to the capture orientation.
func MonoRotated(dst []byte, f *capture.Frame, th Threshold) int {
	n := 0
	for x := 0; x < f.Width; x++ {
		for y := 0; y < f.Height; y += 8 {
			var b byte
			for i := 0; i < 8; i++ {
				if th.On(f.Pix[(y+i)*f.Stride+x]) {
					b |= 1 << i
				}
			}
			dst[n] = b
			n++
		}
	}
	return n
}

// MonoResidual is Mono over a precomputed residual buffer (width*height,
// no stride): any non-zero residual is an ON pixel.
func MonoResidual(dst []byte, residual []int16, width, height int) int {
	n := 0
	for y := 0; y < height; y++ {
		row := residual[y*width:]
		for x := 0; x < width; x += 8 {
			var b byte
			for i := 0; i < 8; i++ {
				if row[x+i] != 0 {
					b |= 1 << i
				}
			}
			dst[n] = b
			n++
		}
	}
	return n
}

// MonoRotatedResidual is MonoRotated over a precomputed residual buffer.
func MonoRotatedResidual(dst []byte, residual []int16, width, height int) int {
	n := 0
	for x := 0; x < width; x++ {
		for y := 0; y < height; y += 8 {
			var b byte
			for i := 0; i < 8; i++ {
				if residual[(y+i)*width+x] != 0 {
					b |= 1 << i
				}
			}
			dst[n] = b
			n++
		}
	}
	return n
}
