package encode

import (
	"bytes"
	"testing"

	"fbcast.app/fbcast/internal/capture"
	"fbcast.app/fbcast/internal/decode"
)

// makeFrame builds a frame with stride padding filled with 0xffff so a
// padding pixel leaking into an encoder is visible in the output.
func makeFrame(width, height, stride int, at func(x, y int) uint16) *capture.Frame {
	f := &capture.Frame{
		Pix:    make([]uint16, stride*height),
		Width:  width,
		Height: height,
		Stride: stride,
	}
	for i := range f.Pix {
		f.Pix[i] = 0xffff
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.Pix[y*stride+x] = at(x, y)
		}
	}
	return f
}

func gradient(x, y int) uint16 {
	return uint16(x&0x1f)<<11 | uint16(y&0x3f)<<5 | uint16((x+y)&0x1f)
}

func TestRGB565RoundTrip(t *testing.T) {
	const w, h, stride = 16, 8, 20
	f := makeFrame(w, h, stride, gradient)

	dst := make([]byte, 2*w*h)
	if n := RGB565(dst, f); n != 2*w*h {
		t.Fatalf("RGB565 payload = %d bytes, want %d", n, 2*w*h)
	}

	dec := &decode.RGB565Decoder{Width: w, Height: h}
	pix, err := dec.Pixels(dst)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if got, want := pix[y*w+x], gradient(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %04x, want %04x", x, y, got, want)
			}
		}
	}
}

func TestRGB24Expansion(t *testing.T) {
	tests := []struct {
		name  string
		pixel uint16
		want  [3]byte
	}{
		{"black", 0x0000, [3]byte{0, 0, 0}},
		{"white", 0xffff, [3]byte{0xf8, 0xfc, 0xf8}},
		{"high channel only", 0xf800, [3]byte{0xf8, 0, 0}},
		{"mid channel only", 0x07e0, [3]byte{0, 0xfc, 0}},
		{"low channel only", 0x001f, [3]byte{0, 0, 0xf8}},
		{"one bit each", 0x0841, [3]byte{0x08, 0x08, 0x08}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := makeFrame(8, 8, 8, func(x, y int) uint16 { return tc.pixel })
			dst := make([]byte, 3*8*8)
			if n := RGB24(dst, f); n != len(dst) {
				t.Fatalf("RGB24 payload = %d bytes, want %d", n, len(dst))
			}
			if got := [3]byte{dst[0], dst[1], dst[2]}; got != tc.want {
				t.Errorf("expanded %04x to % x, want % x", tc.pixel, got, tc.want)
			}
		})
	}
}

func TestMonoSingleRow(t *testing.T) {
	// Width 8, height 1, threshold 0: any non-zero channel turns the pixel
	// on, bit 0 carries the first pixel.
	pixels := []uint16{0, 0x0800, 0, 0x0020, 0x0001, 0, 0xffff, 0}
	f := makeFrame(8, 1, 8, func(x, y int) uint16 { return pixels[x] })

	dst := make([]byte, 1)
	if n := Mono(dst, f, NewThreshold(0)); n != 1 {
		t.Fatalf("Mono payload = %d bytes, want 1", n)
	}
	if want := byte(0b01011010); dst[0] != want {
		t.Errorf("Mono = %08b, want %08b", dst[0], want)
	}
}

func TestMonoSkipsStridePadding(t *testing.T) {
	const w, h = 16, 8
	black := func(x, y int) uint16 { return 0 }

	tight := makeFrame(w, h, w, black)
	padded := makeFrame(w, h, w+8, black) // padding pixels are 0xffff

	a := make([]byte, w*h/8)
	b := make([]byte, w*h/8)
	Mono(a, tight, NewThreshold(0))
	Mono(b, padded, NewThreshold(0))
	if !bytes.Equal(a, b) {
		t.Errorf("stride padding leaked into output: % x vs % x", a, b)
	}
	if !bytes.Equal(a, make([]byte, w*h/8)) {
		t.Errorf("all-black frame encoded as % x, want all zero", a)
	}
}

func TestThresholdMonotonic(t *testing.T) {
	// Raising the threshold must never turn a pixel from off to on.
	pixels := []uint16{0x0000, 0x0001, 0x001f, 0x0020, 0x07e0, 0x0800, 0xf800, 0x8410, 0xffff}
	for _, p := range pixels {
		prev := true
		for v := 0; v <= 255; v++ {
			on := NewThreshold(uint8(v)).On(p)
			if on && !prev {
				t.Fatalf("pixel %04x turned on when threshold rose to %d", p, v)
			}
			prev = on
		}
	}
}

func TestThresholdSaturation(t *testing.T) {
	// Threshold input 255 saturates every component; nothing exceeds it.
	th := NewThreshold(255)
	for _, p := range []uint16{0x0000, 0xffff, 0xf800, 0x07e0, 0x001f, 0x8410} {
		if th.On(p) {
			t.Errorf("pixel %04x is on at saturated threshold", p)
		}
	}
}

func TestThresholdComponents(t *testing.T) {
	tests := []struct {
		input      uint8
		r5, g6, b5 uint16
	}{
		{0, 0, 0, 0},
		{25, 3, 6 << 5, 3 << 11},
		{255, 31, 63 << 5, 31 << 11},
	}
	for _, tc := range tests {
		th := NewThreshold(tc.input)
		if th.R5 != tc.r5 || th.G6 != tc.g6 || th.B5 != tc.b5 {
			t.Errorf("NewThreshold(%d) = {%d %#x %#x}, want {%d %#x %#x}",
				tc.input, th.R5, th.G6, th.B5, tc.r5, tc.g6, tc.b5)
		}
	}
}

// decisions expands a row-major mono payload into per-pixel booleans.
func decisions(payload []byte, w, h int) []bool {
	out := make([]bool, w*h)
	for i := range out {
		out[i] = payload[i/8]&(1<<(i%8)) != 0
	}
	return out
}

// rotatedDecisions expands a column-major payload into the same row-major
// boolean layout as decisions.
func rotatedDecisions(payload []byte, w, h int) []bool {
	out := make([]bool, w*h)
	i := 0
	for x := 0; x < w; x++ {
		for y := 0; y < h; y += 8 {
			b := payload[i]
			i++
			for bit := 0; bit < 8; bit++ {
				out[(y+bit)*w+x] = b&(1<<bit) != 0
			}
		}
	}
	return out
}

func TestTransposeConsistency(t *testing.T) {
	const w, h, stride = 24, 16, 30
	f := makeFrame(w, h, stride, gradient)
	th := NewThreshold(25)

	rowMajor := make([]byte, w*h/8)
	colMajor := make([]byte, w*h/8)
	if n := Mono(rowMajor, f, th); n != w*h/8 {
		t.Fatalf("Mono payload = %d bytes, want %d", n, w*h/8)
	}
	if n := MonoRotated(colMajor, f, th); n != w*h/8 {
		t.Fatalf("MonoRotated payload = %d bytes, want %d", n, w*h/8)
	}

	a := decisions(rowMajor, w, h)
	b := rotatedDecisions(colMajor, w, h)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("decision for pixel (%d,%d) differs between traversals", i%w, i/w)
		}
	}
}

func TestResidualEncodersAgree(t *testing.T) {
	const w, h = 16, 8
	residual := make([]int16, w*h)
	for i := range residual {
		if i%3 == 0 {
			residual[i] = 255
		}
	}

	rowMajor := make([]byte, w*h/8)
	colMajor := make([]byte, w*h/8)
	MonoResidual(rowMajor, residual, w, h)
	MonoRotatedResidual(colMajor, residual, w, h)

	a := decisions(rowMajor, w, h)
	b := rotatedDecisions(colMajor, w, h)
	for i := range a {
		if want := residual[i] != 0; a[i] != want || b[i] != want {
			t.Fatalf("pixel %d: row=%v col=%v, want %v", i, a[i], b[i], want)
		}
	}
}
