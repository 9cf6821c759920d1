// Package selector picks the items that make up a collage.
//
// Catalog endpoints often return several entries sharing one cover: the
// top-tracks list of an album-heavy listener maps many tracks to the same
// album artwork. Select keeps the first item for each cover URL and drops
// the rest, without reordering:
//
//	items := selector.Select(candidates, grid.Cells())
//	if len(items) == 0 {
//	    // not enough data to draw anything
//	}
package selector
