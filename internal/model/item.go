package model

import (
	"fmt"
	"strings"
)

// ItemKind is the kind of catalog record a collage is built from.
type ItemKind string

const (
	KindAlbum  ItemKind = "album"
	KindTrack  ItemKind = "track"
	KindArtist ItemKind = "artist"
)

// ParseItemKind converts a string to an ItemKind.
func ParseItemKind(s string) (ItemKind, error) {
	switch k := ItemKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAlbum, KindTrack, KindArtist:
		return k, nil
	}
	return "", fmt.Errorf("unknown item kind %q", s)
}

// TimeRange is the listening-history window used for top items.
type TimeRange string

const (
	// RangeShort covers roughly the last month.
	RangeShort TimeRange = "short_term"

	// RangeMedium covers roughly the last six months.
	RangeMedium TimeRange = "medium_term"

	// RangeLong covers the whole listening history.
	RangeLong TimeRange = "long_term"
)

// ParseTimeRange converts a string to a TimeRange.
//
// Besides the API names, the short aliases "short", "medium" and "long"
// are accepted.
func ParseTimeRange(s string) (TimeRange, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short", string(RangeShort):
		return RangeShort, nil
	case "medium", string(RangeMedium):
		return RangeMedium, nil
	case "long", string(RangeLong):
		return RangeLong, nil
	}
	return "", fmt.Errorf("unknown time range %q", s)
}

// Image is one candidate rendition of a cover or portrait.
type Image struct {
	URL    string
	Width  int
	Height int
}

// Area returns Width×Height.
func (i Image) Area() int {
	return i.Width * i.Height
}

// CatalogItem represents an album, track or artist from the catalog.
//
// CatalogItem values are created once at the API boundary (see the
// catalog package) and are not modified afterwards. An item with no
// Images is valid but cannot appear in a collage.
type CatalogItem struct {
	// ID is the catalog identifier.
	ID string

	// Kind tells whether the item is an album, a track or an artist.
	Kind ItemKind

	// Name is the display name.
	Name string

	// Artists lists contributing artist names in credit order.
	// Empty for artist items.
	Artists []string

	// Images holds candidate cover images in various resolutions.
	// For tracks these are the images of the track's album.
	Images []Image

	// URL is the public web page of the item, if known.
	URL string

	// Markets lists the region codes where the item is available.
	// Only populated by album lookups.
	Markets []string
}

// BestImage returns the image with the largest area.
//
// Ties keep the earliest image. The second return value is false when
// the item has no images.
func (c CatalogItem) BestImage() (Image, bool) {
	if len(c.Images) == 0 {
		return Image{}, false
	}
	best := c.Images[0]
	for _, img := range c.Images[1:] {
		if img.Area() > best.Area() {
			best = img
		}
	}
	return best, true
}

// HasImages reports whether the item has at least one image.
func (c CatalogItem) HasImages() bool {
	return len(c.Images) > 0
}

// CoverURL returns the URL of the best-resolution image, or "" when the
// item has no images.
func (c CatalogItem) CoverURL() string {
	img, ok := c.BestImage()
	if !ok {
		return ""
	}
	return img.URL
}

// PrimaryArtist returns the first credited artist, or "" if none.
func (c CatalogItem) PrimaryArtist() string {
	if len(c.Artists) == 0 {
		return ""
	}
	return c.Artists[0]
}

// Label returns the text shown for the item in lists.
//
// Artists are labelled with their name only. Albums and tracks get
// "name — first artist", falling back to the name when no artist is
// credited.
func (c CatalogItem) Label() string {
	if c.Kind == KindArtist {
		return c.Name
	}
	artist := c.PrimaryArtist()
	if artist == "" {
		return c.Name
	}
	return c.Name + " — " + artist
}
