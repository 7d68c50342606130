package capture

// Pattern is a synthetic backend producing a deterministic color gradient
// with a vertical band that advances one pixel per frame. It stands in for a
// real display device during development and in tests.
type Pattern struct {
	info Info
	tick int
}

// NewPattern creates a pattern backend with the given capture dimensions.
// The stride is padded past the width to exercise the same row math a
// hardware framebuffer requires.
func NewPattern(width, height int) *Pattern {
	return &Pattern{
		info: Info{
			Name:          "pattern",
			DisplayID:     0,
			DisplayWidth:  uint32(width),
			DisplayHeight: uint32(height),
			Width:         width,
			Height:        height,
			Stride:        width + 8,
		},
	}
}

func (p *Pattern) Info() Info { return p.info }

func (p *Pattern) Capture(dst []uint16) error {
	w, h, stride := p.info.Width, p.info.Height, p.info.Stride
	band := p.tick % w
	for y := 0; y < h; y++ {
		row := dst[y*stride:]
		for x := 0; x < w; x++ {
			if d := x - band; d >= 0 && d < 8 {
				row[x] = 0xffff
				continue
			}
			r := uint16(x * 31 / max(w-1, 1))
			g := uint16(y * 63 / max(h-1, 1))
			b := uint16((x + y) * 31 / max(w+h-2, 1))
			row[x] = r<<11 | g<<5 | b
		}
	}
	p.tick++
	return nil
}

func (p *Pattern) Close() error { return nil }
