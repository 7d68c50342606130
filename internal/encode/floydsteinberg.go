package encode

import "fbcast.app/fbcast/internal/capture"

// FloydSteinberg implements Ditherer with classic error diffusion over the
// expanded 8-bit luminance, quantizing at the midpoint. The residual buffer
// ends up holding 0 or 255 per pixel.
type FloydSteinberg struct{}

func (FloydSteinberg) Apply(f *capture.Frame, residual []int16) {
	w, h := f.Width, f.Height

	// Seed with luminance, then diffuse in place.
	for y := 0; y < h; y++ {
		row := f.Pix[y*f.Stride:]
		out := residual[y*w:]
		for x := 0; x < w; x++ {
			out[x] = int16(luma(row[x]))
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			old := int32(residual[i])
			var q int32
			if old >= 128 {
				q = 255
			}
			e := old - q
			residual[i] = int16(q)

			if x+1 < w {
				residual[i+1] += int16(e * 7 / 16)
			}
			if y+1 < h {
				if x > 0 {
					residual[i+w-1] += int16(e * 3 / 16)
				}
				residual[i+w] += int16(e * 5 / 16)
				if x+1 < w {
					residual[i+w+1] += int16(e / 16)
				}
			}
		}
	}
}

// luma expands the packed channels to 8 bits with bit replication (so full
// channels reach 255, keeping uniform frames stable under diffusion) and
// weighs them with the standard Rec. 601 coefficients.
func luma(p uint16) int32 {
	r5 := int32(p >> 11)
	g6 := int32((p >> 5) & 0x3f)
	b5 := int32(p & 0x1f)
	r := r5<<3 | r5>>2
	g := g6<<2 | g6>>4
	b := b5<<3 | b5>>2
	return (19595*r + 38470*g + 7471*b) >> 16
}
