package collage

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/handiism/topsters/internal/model"
)

// Composer lays covers out on a grid canvas.
type Composer struct {
	scaler draw.Scaler
}

// NewComposer creates a Composer using Catmull-Rom resampling.
func NewComposer() *Composer {
	return &Composer{scaler: draw.CatmullRom}
}

// Compose draws images onto a new canvas described by grid.
//
// Image i goes to row i/Dimension, column i%Dimension. Images beyond
// grid.Cells() are ignored; missing or nil images leave their cell as
// background. Each cover is scaled to CellSize×CellSize.
func (c *Composer) Compose(images []image.Image, grid model.GridSpec) *image.NRGBA {
	size := grid.CanvasSize()
	bg := grid.Background
	if bg == nil {
		bg = color.White
	}
	canvas := imaging.New(size, size, bg)

	if grid.Dimension <= 0 {
		return canvas
	}

	cell := grid.CellSize()
	stroke := grid.BorderStroke()
	n := min(len(images), grid.Cells())

	for i := 0; i < n; i++ {
		img := images[i]
		if img == nil {
			continue
		}
		x, y := grid.CellOrigin(i)
		rect := image.Rect(x, y, x+cell, y+cell)
		c.scaler.Scale(canvas, rect, img, img.Bounds(), draw.Over, nil)
		if stroke > 0 {
			drawFrame(canvas, rect, stroke, grid.Border)
		}
	}
	return canvas
}

// drawFrame outlines r with a stroke of width w drawn inside r.
func drawFrame(dst draw.Image, r image.Rectangle, w int, c color.Color) {
	w = min(w, r.Dx()/2, r.Dy()/2)
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w),
		image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y),
		image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Src)
	}
}
