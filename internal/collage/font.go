package collage

import (
	"errors"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/handiism/topsters/internal/logging"
)

// DefaultFontSize is the point size of list text.
const DefaultFontSize = 27

// DefaultFontPaths lists common system locations of a Unicode sans font.
var DefaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	"/Library/Fonts/Arial.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// Font sources reported by FontSet.Source.
const (
	SourceEmbedded = "embedded:goregular"
	SourceBitmap   = "builtin:basic7x13"
)

// FontSet resolves a text face from an ordered list of font files.
//
// The first file that parses as TrueType wins. When none does, the
// embedded Go Regular font is used, and as a last resort the 7x13 bitmap
// face. Resolution happens once; faces are created per call because
// truetype faces are not safe for concurrent use.
type FontSet struct {
	paths []string

	once   sync.Once
	ttf    *truetype.Font
	source string
}

// NewFontSet creates a FontSet trying paths in order.
func NewFontSet(paths ...string) *FontSet {
	return &FontSet{paths: paths}
}

func (s *FontSet) resolve() {
	for _, p := range s.paths {
		f, err := parseFontFile(p)
		if err != nil {
			logging.Debug().Err(err).Str("path", p).Msg("font candidate rejected")
			continue
		}
		s.ttf, s.source = f, p
		return
	}

	if len(s.paths) > 0 {
		logging.Warn().Strs("paths", s.paths).Msg("no configured font could be loaded, using embedded font")
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		logging.Warn().Err(err).Msg("embedded font unavailable, using bitmap font")
		s.source = SourceBitmap
		return
	}
	s.ttf, s.source = f, SourceEmbedded
}

func parseFontFile(path string) (*truetype.Font, error) {
	if path == "" {
		return nil, errors.New("empty font path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

// Source returns the path of the font in use, or SourceEmbedded /
// SourceBitmap.
func (s *FontSet) Source() string {
	s.once.Do(s.resolve)
	return s.source
}

// Face returns a new face at the given point size. It never returns nil.
func (s *FontSet) Face(size float64) font.Face {
	s.once.Do(s.resolve)
	if s.ttf == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(s.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
