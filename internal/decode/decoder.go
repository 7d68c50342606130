package decode

import "image"

// Decoder converts one wire payload into an image.
type Decoder interface {
	Decode(payload []byte) (*image.RGBA, error)
}
