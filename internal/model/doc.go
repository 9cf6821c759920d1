// Package model defines the core data structures used throughout
// the topsters application.
//
// # CatalogItem
//
// CatalogItem is an immutable album, track or artist record fetched from
// the music catalog:
//
//	item := model.CatalogItem{
//	    ID:      "4aawyAB9vmqN3uQ7FjRGTy",
//	    Kind:    model.KindAlbum,
//	    Name:    "Global Warming",
//	    Artists: []string{"Pitbull"},
//	    Images:  []model.Image{{URL: url, Width: 640, Height: 640}},
//	}
//	fmt.Println(item.CoverURL()) // best-resolution cover, "" if none
//
// # GridSpec
//
// GridSpec describes the collage layout:
//
//	spec := model.GridSpec{Dimension: 5, Gap: 4, ExportSize: 1000}
//	fmt.Println(spec.CellSize())   // 196
//	fmt.Println(spec.CanvasSize()) // 1004
package model
