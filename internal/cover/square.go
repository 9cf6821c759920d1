package cover

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PlaceholderSize is the side length of the placeholder image.
const PlaceholderSize = 320

// PlaceholderColor is the neutral grey used for missing covers.
var PlaceholderColor = color.NRGBA{R: 230, G: 233, B: 235, A: 255}

var placeholder = imaging.New(PlaceholderSize, PlaceholderSize, PlaceholderColor)

// Placeholder returns the shared PlaceholderSize square filled with
// PlaceholderColor. Callers must treat it as read-only.
func Placeholder() *image.NRGBA {
	return placeholder
}

// IsPlaceholder reports whether img is the image returned by Placeholder.
// A downloaded cover that happens to be the same colour is not a
// placeholder.
func IsPlaceholder(img image.Image) bool {
	p, ok := img.(*image.NRGBA)
	return ok && p == placeholder
}

// Square center-crops img to min(width, height) on both sides.
//
// The crop offsets are ((w-edge)/2, (h-edge)/2). Square inputs are
// returned unchanged; nothing is upscaled.
func Square(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() == b.Dy() {
		return img
	}
	edge := min(b.Dx(), b.Dy())
	return imaging.CropCenter(img, edge, edge)
}
