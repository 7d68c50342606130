package encode

import (
	"testing"

	"fbcast.app/fbcast/internal/capture"
)

func benchFrame() *capture.Frame {
	const w, h, stride = 640, 480, 648
	f := &capture.Frame{
		Pix:    make([]uint16, stride*h),
		Width:  w,
		Height: h,
		Stride: stride,
	}
	for i := range f.Pix {
		f.Pix[i] = uint16(uint32(i) * 2654435761 >> 16)
	}
	return f
}

func BenchmarkRGB24(b *testing.B) {
	f := benchFrame()
	dst := make([]byte, 3*f.Width*f.Height)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RGB24(dst, f)
	}
}

func BenchmarkRGB565(b *testing.B) {
	f := benchFrame()
	dst := make([]byte, 2*f.Width*f.Height)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RGB565(dst, f)
	}
}

func BenchmarkMono(b *testing.B) {
	f := benchFrame()
	dst := make([]byte, f.Width*f.Height/8)
	th := NewThreshold(25)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Mono(dst, f, th)
	}
}

func BenchmarkMonoRotated(b *testing.B) {
	f := benchFrame()
	dst := make([]byte, f.Width*f.Height/8)
	th := NewThreshold(25)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		MonoRotated(dst, f, th)
	}
}

func BenchmarkFloydSteinberg(b *testing.B) {
	f := benchFrame()
	residual := make([]int16, f.Width*f.Height)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FloydSteinberg{}.Apply(f, residual)
	}
}
