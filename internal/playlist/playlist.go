package playlist

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/handiism/topsters/internal/model"
)

// Format represents a playlist file format.
type Format int

const (
	// FormatM3U creates extended .m3u files.
	FormatM3U Format = iota

	// FormatPLS creates .pls files (INI style).
	FormatPLS

	// FormatXSPF creates .xspf files (XML Shareable Playlist Format).
	FormatXSPF
)

// ParseFormat converts a settings value ("m3u", "pls", "xspf") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m3u", "m3u8":
		return FormatM3U, nil
	case "pls":
		return FormatPLS, nil
	case "xspf":
		return FormatXSPF, nil
	}
	return 0, fmt.Errorf("unknown playlist format %q", s)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatPLS:
		return ".pls"
	case FormatXSPF:
		return ".xspf"
	default:
		return ".m3u"
	}
}

// Creator generates playlist content from catalog items.
type Creator struct {
	format Format
}

// NewCreator creates a new Creator.
func NewCreator(format Format) *Creator {
	return &Creator{format: format}
}

// Format returns the format this creator writes.
func (c *Creator) Format() Format {
	return c.format
}

// Create returns the playlist for items in order. title names the
// playlist where the format supports it.
func (c *Creator) Create(title string, items []model.CatalogItem) string {
	entries := make([]model.CatalogItem, 0, len(items))
	for _, it := range items {
		if it.URL != "" {
			entries = append(entries, it)
		}
	}

	switch c.format {
	case FormatPLS:
		return createPLS(entries)
	case FormatXSPF:
		return createXSPF(title, entries)
	default:
		return createM3U(entries)
	}
}

// createM3U writes
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Title
//	https://open.spotify.com/...
func createM3U(items []model.CatalogItem) string {
	var sb strings.Builder

	sb.WriteString("#EXTM3U\n")
	for _, it := range items {
		sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", entryTitle(it)))
		sb.WriteString(it.URL + "\n")
	}

	return sb.String()
}

func createPLS(items []model.CatalogItem) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")
	for i, it := range items {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, it.URL))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, entryTitle(it)))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}
	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(items)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

type xspfPlaylist struct {
	XMLName xml.Name    `xml:"playlist"`
	Version string      `xml:"version,attr"`
	Xmlns   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title,omitempty"`
	Tracks  []xspfTrack `xml:"trackList>track"`
}

type xspfTrack struct {
	Location string `xml:"location"`
	Title    string `xml:"title"`
	Creator  string `xml:"creator,omitempty"`
}

func createXSPF(title string, items []model.CatalogItem) string {
	pl := xspfPlaylist{
		Version: "1",
		Xmlns:   "http://xspf.org/ns/0/",
		Title:   title,
		Tracks:  make([]xspfTrack, len(items)),
	}
	for i, it := range items {
		pl.Tracks[i] = xspfTrack{Location: it.URL, Title: it.Name}
		if it.Kind != model.KindArtist {
			pl.Tracks[i].Creator = strings.Join(it.Artists, ", ")
		}
	}

	// Marshal cannot fail for these types.
	data, _ := xml.MarshalIndent(pl, "", "  ")
	return xml.Header + string(data) + "\n"
}

func entryTitle(it model.CatalogItem) string {
	if it.Kind == model.KindArtist || len(it.Artists) == 0 {
		return it.Name
	}
	return strings.Join(it.Artists, ", ") + " - " + it.Name
}
