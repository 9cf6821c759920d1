// Package collage draws the two exported rasters: the cover grid and the
// ranked list.
//
// # Grid
//
// Composer places square covers row-major on a canvas sized from a
// model.GridSpec:
//
//	spec := model.GridSpec{Dimension: 5, Gap: 4, ExportSize: 1000,
//	    Background: bg, Border: border}
//	canvas := collage.NewComposer().Compose(covers, spec)
//
// Cells without a cover keep the background colour. Tile outlines are
// only drawn when the border colour differs from the background.
//
// # List
//
// ListRenderer draws one 74px row per item: a 56x56 thumbnail followed by
// "rank. name — artist". Text uses the first font from a FontSet that
// loads, then the embedded Go Regular face, then the fixed 7x13 bitmap
// face. A font failure never aborts rendering.
//
//	list := collage.NewListRenderer(collage.NewFontSet(paths...)).
//	    Render(items, covers, model.LightTheme)
package collage
