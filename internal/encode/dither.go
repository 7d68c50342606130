package encode

import "fbcast.app/fbcast/internal/capture"

// Ditherer computes a per-pixel residual buffer from a frame. Consumers
// threshold each residual against zero for the bi-level decision; the
// algorithm behind that contract is replaceable.
type Ditherer interface {
	// Apply fills residual (Width*Height entries, row-major, no stride)
	// with one value per pixel. Must be deterministic for a given frame.
	Apply(f *capture.Frame, residual []int16)
}
