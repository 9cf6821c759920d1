package collage

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/handiism/topsters/internal/logging"
	"github.com/handiism/topsters/internal/model"
)

// List layout in pixels.
const (
	ListWidth    = 720
	RowHeight    = 74
	ListMargin   = 48
	ListTopInset = 32
	ThumbSize    = 56
	ThumbX       = 22
	TextX        = 92
	TextOffsetY  = 12
	textRightPad = 16
	ellipsis     = "…"
)

// ListHeight returns the canvas height for n rows.
func ListHeight(n int) int {
	return RowHeight*n + ListMargin
}

// ListRenderer draws the ranked list image.
type ListRenderer struct {
	fonts    *FontSet
	fontSize float64
	scaler   draw.Scaler
}

// NewListRenderer creates a renderer. A nil FontSet uses DefaultFontPaths.
func NewListRenderer(fonts *FontSet) *ListRenderer {
	if fonts == nil {
		fonts = NewFontSet(DefaultFontPaths...)
	}
	return &ListRenderer{
		fonts:    fonts,
		fontSize: DefaultFontSize,
		scaler:   draw.CatmullRom,
	}
}

// Render draws one row per item. images[i] is the thumbnail for items[i];
// missing or nil images leave the thumbnail area blank.
//
// A thumbnail or label that fails to draw is skipped; the rest of the row
// and the canvas are still produced.
func (r *ListRenderer) Render(items []model.CatalogItem, images []image.Image, theme model.Theme) *image.NRGBA {
	bg, fg := theme.Background, theme.Text
	if bg == nil || fg == nil {
		bg, fg = model.LightTheme.Background, model.LightTheme.Text
	}
	canvas := imaging.New(ListWidth, ListHeight(len(items)), bg)

	face := r.fonts.Face(r.fontSize)
	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()

	y := ListTopInset
	for i, item := range items {
		var thumb image.Image
		if i < len(images) {
			thumb = images[i]
		}
		r.drawRow(canvas, drawer, ascent, i, y, item, thumb)
		y += RowHeight
	}
	return canvas
}

// drawRow draws the thumbnail and the label of one row. Each part recovers
// on its own so a broken cover still leaves the title.
func (r *ListRenderer) drawRow(canvas *image.NRGBA, d *font.Drawer, ascent, idx, y int, item model.CatalogItem, thumb image.Image) {
	if thumb != nil {
		r.drawThumb(canvas, idx, y, thumb)
	}
	r.drawLabel(d, ascent, idx, y, item)
}

func (r *ListRenderer) drawThumb(canvas *image.NRGBA, idx, y int, thumb image.Image) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Warn().Int("row", idx).Interface("panic", rec).Msg("list thumbnail skipped")
		}
	}()

	rect := image.Rect(ThumbX, y, ThumbX+ThumbSize, y+ThumbSize)
	r.scaler.Scale(canvas, rect, thumb, thumb.Bounds(), draw.Over, nil)
}

func (r *ListRenderer) drawLabel(d *font.Drawer, ascent, idx, y int, item model.CatalogItem) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Warn().Int("row", idx).Interface("panic", rec).Msg("list label skipped")
		}
	}()

	text := fitText(d, RowLabel(idx, item), ListWidth-TextX-textRightPad)
	d.Dot = freetype.Pt(TextX, y+TextOffsetY+ascent)
	d.DrawString(text)
}

// RowLabel returns the text of row idx: "rank. label".
func RowLabel(idx int, item model.CatalogItem) string {
	return fmt.Sprintf("%d. %s", idx+1, item.Label())
}

// fitText shortens s with an ellipsis until it fits in maxWidth pixels.
func fitText(d *font.Drawer, s string, maxWidth int) string {
	if d.MeasureString(s).Ceil() <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ellipsis
		if d.MeasureString(candidate).Ceil() <= maxWidth {
			return candidate
		}
	}
	return ""
}
