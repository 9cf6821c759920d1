package pipeline

import (
	"context"
	"path/filepath"

	"github.com/disintegration/imaging"

	ioutils "github.com/handiism/topsters/internal/io"
	"github.com/handiism/topsters/internal/model"
	"github.com/handiism/topsters/internal/playlist"
	"github.com/handiism/topsters/internal/region"
)

// Result holds the exported images of one run.
type Result struct {
	// Items are the selected items in grid order.
	Items []model.CatalogItem

	// Collage is the encoded grid image.
	Collage       []byte
	CollageFormat imaging.Format

	// List is the encoded PNG list image.
	List []byte

	// Playlist is empty unless a playlist format is configured.
	Playlist       []byte
	PlaylistFormat playlist.Format
}

// SavedFiles lists the paths written by Result.Save.
type SavedFiles struct {
	Collage  string
	List     string
	Playlist string
}

// Save writes <base>.<ext> and <base>_list.png into dir, plus the
// playlist when there is one.
func (r *Result) Save(ctx context.Context, dir, base string) (SavedFiles, error) {
	files := SavedFiles{
		Collage: collagePath(dir, base, r.CollageFormat),
		List:    listPath(dir, base),
	}
	if err := ioutils.WriteFile(ctx, files.Collage, r.Collage); err != nil {
		return SavedFiles{}, err
	}
	if err := ioutils.WriteFile(ctx, files.List, r.List); err != nil {
		return SavedFiles{}, err
	}
	if len(r.Playlist) > 0 {
		files.Playlist = filepath.Join(dir, base+r.PlaylistFormat.Extension())
		if err := ioutils.WriteFile(ctx, files.Playlist, r.Playlist); err != nil {
			return SavedFiles{}, err
		}
	}
	return files, nil
}

// RegionResult holds the market coverage of one album.
type RegionResult struct {
	Album        model.CatalogItem
	Coverage     []region.Coverage
	TotalMarkets int

	// Chart is the encoded PNG bar chart.
	Chart []byte
}

// Save writes <base>_regions.png into dir and returns its path.
func (r *RegionResult) Save(ctx context.Context, dir, base string) (string, error) {
	path := filepath.Join(dir, base+"_regions.png")
	if err := ioutils.WriteFile(ctx, path, r.Chart); err != nil {
		return "", err
	}
	return path, nil
}
