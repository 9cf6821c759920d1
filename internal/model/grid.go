package model

import "image/color"

const (
	// MinGridDimension and MaxGridDimension bound GridSpec.Dimension.
	MinGridDimension = 2
	MaxGridDimension = 15

	// DefaultMinCellSize keeps tiles readable on large grids.
	DefaultMinCellSize = 80

	// DefaultBorderWidth is the stroke width of tile borders.
	DefaultBorderWidth = 2
)

// GridSpec describes how covers are laid out in a collage.
//
// Colours are already parsed; validation of user input happens in the
// config package before a GridSpec is built.
type GridSpec struct {
	// Dimension is the number of tiles per row and column (2-15).
	Dimension int

	// Gap is the space between tiles and around the edge, in pixels.
	Gap int

	// Background fills the canvas and any empty cells.
	Background color.Color

	// Border is the tile outline colour. No outline is drawn when it
	// equals Background.
	Border color.Color

	// BorderWidth is the outline stroke in pixels. Zero means
	// DefaultBorderWidth.
	BorderWidth int

	// ExportSize is the target side length of the exported image.
	ExportSize int

	// MinCellSize is the smallest tile side length. Zero means
	// DefaultMinCellSize.
	MinCellSize int
}

// Cells returns Dimension², the number of tiles the grid holds.
func (g GridSpec) Cells() int {
	return g.Dimension * g.Dimension
}

// CellSize returns the side length of one tile:
// max(MinCellSize, ExportSize/Dimension - Gap).
func (g GridSpec) CellSize() int {
	minCell := g.MinCellSize
	if minCell <= 0 {
		minCell = DefaultMinCellSize
	}
	if g.Dimension <= 0 {
		return minCell
	}
	return max(minCell, g.ExportSize/g.Dimension-g.Gap)
}

// CanvasSize returns the side length of the collage canvas:
// CellSize·Dimension + Gap·(Dimension+1).
func (g GridSpec) CanvasSize() int {
	return g.CellSize()*g.Dimension + g.Gap*(g.Dimension+1)
}

// CellOrigin returns the top-left corner of tile i in row-major order.
func (g GridSpec) CellOrigin(i int) (x, y int) {
	row, col := g.CellPosition(i)
	step := g.CellSize() + g.Gap
	return g.Gap + col*step, g.Gap + row*step
}

// CellPosition returns the row and column of tile i in row-major order.
func (g GridSpec) CellPosition(i int) (row, col int) {
	return i / g.Dimension, i % g.Dimension
}

// BorderStroke returns the effective border width, which is zero when the
// border colour matches the background.
func (g GridSpec) BorderStroke() int {
	if g.Border == nil || SameColor(g.Border, g.Background) {
		return 0
	}
	if g.BorderWidth <= 0 {
		return DefaultBorderWidth
	}
	return g.BorderWidth
}

// SameColor reports whether two colours are identical after conversion
// to 8-bit NRGBA. A nil colour only equals another nil colour.
func SameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	na := color.NRGBAModel.Convert(a).(color.NRGBA)
	nb := color.NRGBAModel.Convert(b).(color.NRGBA)
	return na == nb
}

// Theme holds list-image colours.
type Theme struct {
	Name       string
	Background color.Color
	Text       color.Color
}

var (
	// LightTheme matches the light dashboard palette.
	LightTheme = Theme{
		Name:       "light",
		Background: color.NRGBA{R: 0xfa, G: 0xfc, B: 0xff, A: 0xff},
		Text:       color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff},
	}

	// DarkTheme matches the dark dashboard palette.
	DarkTheme = Theme{
		Name:       "dark",
		Background: color.NRGBA{R: 0x23, G: 0x25, B: 0x29, A: 0xff},
		Text:       color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	}
)

// ThemeByName returns the named theme, defaulting to LightTheme.
func ThemeByName(name string) Theme {
	if name == DarkTheme.Name {
		return DarkTheme
	}
	return LightTheme
}
