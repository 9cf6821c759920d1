package region

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/handiism/topsters/internal/collage"
	"github.com/handiism/topsters/internal/model"
)

const (
	chartWidth     = 720
	chartRowHeight = 48
	chartMargin    = 32
	chartLabelX    = 22
	chartBarX      = 200
	chartBarMaxW   = 420
	chartBarHeight = 24
	chartFontSize  = 20
)

// BarColor fills the available share of each bar.
var BarColor = color.NRGBA{R: 0x1d, G: 0xb9, B: 0x54, A: 0xff}

var trackColors = map[string]color.Color{
	model.LightTheme.Name: color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
	model.DarkTheme.Name:  color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
}

// Chart renders coverage bar charts.
type Chart struct {
	fonts *collage.FontSet
}

// NewChart creates a Chart. A nil FontSet uses collage.DefaultFontPaths.
func NewChart(fonts *collage.FontSet) *Chart {
	if fonts == nil {
		fonts = collage.NewFontSet(collage.DefaultFontPaths...)
	}
	return &Chart{fonts: fonts}
}

// RenderChart draws coverage with the default fonts.
func RenderChart(coverage []Coverage, theme model.Theme) *image.NRGBA {
	return NewChart(nil).Render(coverage, theme)
}

// ChartHeight returns the canvas height for n continents. An empty chart
// keeps one row for its message.
func ChartHeight(n int) int {
	return chartRowHeight*max(n, 1) + 2*chartMargin
}

// Render draws one bar per continent. The bar track spans the
// continent's tracked countries and the filled part its available ones.
func (c *Chart) Render(coverage []Coverage, theme model.Theme) *image.NRGBA {
	bg, fg := theme.Background, theme.Text
	if bg == nil || fg == nil {
		theme = model.LightTheme
		bg, fg = theme.Background, theme.Text
	}
	trackColor, ok := trackColors[theme.Name]
	if !ok {
		trackColor = trackColors[model.LightTheme.Name]
	}

	canvas := imaging.New(chartWidth, ChartHeight(len(coverage)), bg)
	face := c.fonts.Face(chartFontSize)
	d := &font.Drawer{Dst: canvas, Src: image.NewUniform(fg), Face: face}
	baseline := (chartRowHeight + face.Metrics().Ascent.Ceil() - face.Metrics().Descent.Ceil()) / 2

	if len(coverage) == 0 {
		d.Dot = freetype.Pt(chartLabelX, chartMargin+baseline)
		d.DrawString("No region data")
		return canvas
	}

	for i, cov := range coverage {
		top := chartMargin + i*chartRowHeight
		d.Dot = freetype.Pt(chartLabelX, top+baseline)
		d.DrawString(cov.Continent)

		barTop := top + (chartRowHeight-chartBarHeight)/2
		track := image.Rect(chartBarX, barTop, chartBarX+chartBarMaxW, barTop+chartBarHeight)
		draw.Draw(canvas, track, image.NewUniform(trackColor), image.Point{}, draw.Src)

		if tracked := cov.Tracked(); tracked > 0 {
			w := chartBarMaxW * len(cov.Available) / tracked
			fill := image.Rect(chartBarX, barTop, chartBarX+w, barTop+chartBarHeight)
			draw.Draw(canvas, fill, image.NewUniform(BarColor), image.Point{}, draw.Src)
		}

		d.Dot = freetype.Pt(chartBarX+chartBarMaxW+12, top+baseline)
		d.DrawString(fmt.Sprintf("%d/%d", len(cov.Available), cov.Tracked()))
	}
	return canvas
}
