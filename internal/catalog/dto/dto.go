package dto

import (
	"github.com/handiism/topsters/internal/model"
)

// Image is an image object as returned by the catalog API. Width and
// Height are null for some user-uploaded images.
type Image struct {
	URL    string `json:"url"`
	Width  *int   `json:"width"`
	Height *int   `json:"height"`
}

// ToImage converts Image to a model.Image. Missing dimensions become 0.
func (ji Image) ToImage() model.Image {
	img := model.Image{URL: ji.URL}
	if ji.Width != nil {
		img.Width = *ji.Width
	}
	if ji.Height != nil {
		img.Height = *ji.Height
	}
	return img
}

func toImages(in []Image) []model.Image {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.Image, 0, len(in))
	for _, ji := range in {
		if ji.URL == "" {
			continue
		}
		out = append(out, ji.ToImage())
	}
	return out
}

// ExternalURLs holds public links of an object.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Artist is a full or simplified artist object.
type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// ToItem converts Artist to a model.CatalogItem of kind artist.
func (ja *Artist) ToItem() model.CatalogItem {
	return model.CatalogItem{
		ID:     ja.ID,
		Kind:   model.KindArtist,
		Name:   ja.Name,
		Images: toImages(ja.Images),
		URL:    ja.ExternalURLs.Spotify,
	}
}

func artistNames(artists []Artist) []string {
	if len(artists) == 0 {
		return nil
	}
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return names
}

// Album is a full or simplified album object.
type Album struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	AlbumType        string       `json:"album_type"`
	Artists          []Artist     `json:"artists"`
	Images           []Image      `json:"images"`
	ExternalURLs     ExternalURLs `json:"external_urls"`
	AvailableMarkets []string     `json:"available_markets"`
	ReleaseDate      string       `json:"release_date"`
}

// ToItem converts Album to a model.CatalogItem of kind album.
func (ja *Album) ToItem() model.CatalogItem {
	return model.CatalogItem{
		ID:      ja.ID,
		Kind:    model.KindAlbum,
		Name:    ja.Name,
		Artists: artistNames(ja.Artists),
		Images:  toImages(ja.Images),
		URL:     ja.ExternalURLs.Spotify,
		Markets: ja.AvailableMarkets,
	}
}

// Track is a full or simplified track object. Simplified tracks (from an
// album's track listing) have no Album.
type Track struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Artists          []Artist     `json:"artists"`
	Album            *Album       `json:"album"`
	ExternalURLs     ExternalURLs `json:"external_urls"`
	AvailableMarkets []string     `json:"available_markets"`
}

// ToItem converts Track to a model.CatalogItem of kind track. The images
// are those of the track's album.
func (jt *Track) ToItem() model.CatalogItem {
	item := model.CatalogItem{
		ID:      jt.ID,
		Kind:    model.KindTrack,
		Name:    jt.Name,
		Artists: artistNames(jt.Artists),
		URL:     jt.ExternalURLs.Spotify,
		Markets: jt.AvailableMarkets,
	}
	if jt.Album != nil {
		item.Images = toImages(jt.Album.Images)
	}
	return item
}

// AlbumItem returns the track's album as a model.CatalogItem.
// The second return value is false for simplified tracks.
func (jt *Track) AlbumItem() (model.CatalogItem, bool) {
	if jt.Album == nil {
		return model.CatalogItem{}, false
	}
	return jt.Album.ToItem(), true
}

// Paging is the envelope of every list endpoint.
type Paging[T any] struct {
	Items  []T    `json:"items"`
	Next   string `json:"next"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}
