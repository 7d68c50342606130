package encode

// Threshold holds the monochrome cutoff pre-shifted into the RGB565 bit
// positions, so the decision compares packed components without unpacking.
type Threshold struct {
	R5    uint16
	G6    uint16
	B5    uint16
	Input uint8 // the 8-bit value the components were derived from
}

// NewThreshold derives the per-channel components from one 8-bit value: the
// high 5 bits for the low channel, the high 6 bits shifted into bit 5, and
// the high 5 bits shifted into bit 11, matching the packed layout.
func NewThreshold(v uint8) Threshold {
	return Threshold{
		R5:    uint16(v >> 3),
		G6:    uint16(v>>2) << 5,
		B5:    uint16(v>>3) << 11,
		Input: v,
	}
}

// On reports the bi-level decision for a packed pixel: true if any channel
// exceeds its threshold component. This is an OR-of-exceeds rule on the
// native bit positions, not a luminance computation.
func (t Threshold) On(p uint16) bool {
	return p&0x001f > t.R5 || p&0x07e0 > t.G6 || p&0xf800 > t.B5
}
