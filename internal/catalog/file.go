package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/handiism/topsters/internal/catalog/dto"
	"github.com/handiism/topsters/internal/model"
)

// FileSource reads candidates from a saved API response instead of the
// network. The file holds a paging document, {"items": [...]}, of tracks
// (for the album and track kinds) or artists (for the artist kind). For
// the album kind, items without an "album" field are read as albums.
//
// Example usage:
//
//	src := NewFileSource("top-tracks.json")
//	items, err := src.TopCandidates(ctx, model.KindAlbum, model.RangeShort, 50)
type FileSource struct {
	Path string
}

var _ Source = (*FileSource)(nil)

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// TopCandidates decodes the file and returns its first limit items. The
// time range is ignored.
func (s *FileSource) TopCandidates(ctx context.Context, kind model.ItemKind, _ model.TimeRange, limit int) ([]model.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}

	items, err := decodeItems(data, kind)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func decodeItems(data []byte, kind model.ItemKind) ([]model.CatalogItem, error) {
	switch kind {
	case model.KindArtist:
		var page dto.Paging[dto.Artist]
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, err
		}
		items := make([]model.CatalogItem, len(page.Items))
		for i := range page.Items {
			items[i] = page.Items[i].ToItem()
		}
		return items, nil

	case model.KindTrack:
		var page dto.Paging[dto.Track]
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, err
		}
		return tracksToItems(page.Items, kind), nil

	case model.KindAlbum:
		var page dto.Paging[json.RawMessage]
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, err
		}
		items := make([]model.CatalogItem, 0, len(page.Items))
		for _, raw := range page.Items {
			var track dto.Track
			if err := json.Unmarshal(raw, &track); err != nil {
				return nil, err
			}
			if album, ok := track.AlbumItem(); ok {
				items = append(items, album)
				continue
			}
			var album dto.Album
			if err := json.Unmarshal(raw, &album); err != nil {
				return nil, err
			}
			items = append(items, album.ToItem())
		}
		return items, nil

	default:
		return nil, fmt.Errorf("unsupported item kind %q", kind)
	}
}
