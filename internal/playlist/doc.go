// Package playlist writes the selected items of a collage as a playlist
// of catalog links, so the grid can be played back in the same order.
//
//	creator := playlist.NewCreator(playlist.FormatM3U)
//	content := creator.Create("Top albums", items)
//	os.WriteFile("topsters.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (extended, with #EXTINF titles)
//   - PLS
//   - XSPF
//
// Items without a catalog link are skipped.
package playlist
