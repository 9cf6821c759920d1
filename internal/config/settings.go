package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	ioutils "github.com/handiism/topsters/internal/io"
	"github.com/handiism/topsters/internal/model"
)

// EnvAccessToken names the environment variable holding the catalog token.
const EnvAccessToken = "SPOTIFY_ACCESS_TOKEN"

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Palette holds the collage colours of a theme.
type Palette struct {
	Background string
	Border     string
}

// Palettes maps theme names to their default collage colours.
var Palettes = map[string]Palette{
	"light": {Background: "#fafcff", Border: "#e0e0e0"},
	"dark":  {Background: "#232529", Border: "#333333"},
}

// Settings holds all configuration options.
type Settings struct {
	// Collage selection
	Kind      string `json:"kind" validate:"oneof=album track artist"`
	TimeRange string `json:"time_range" validate:"oneof=short_term medium_term long_term short medium long"`

	// Grid layout
	GridSize   int    `json:"grid_size" validate:"min=2,max=15"`
	Gap        int    `json:"gap" validate:"min=0,max=64"`
	Background string `json:"background" validate:"hexcolor"`
	Border     string `json:"border" validate:"hexcolor"`
	ExportSize int    `json:"export_size" validate:"min=100,max=8000"`
	Format     string `json:"format" validate:"oneof=png jpg jpeg"`
	Theme      string `json:"theme" validate:"oneof=light dark"`

	// Output
	OutputPath     string `json:"output_path" validate:"required"`
	FileNameFormat string `json:"file_name_format" validate:"required"`
	Playlist       string `json:"playlist" validate:"omitempty,oneof=m3u pls xspf"`

	// Fetching
	MaxConcurrentFetches int     `json:"max_concurrent_fetches" validate:"min=0,max=64"`
	FetchTimeout         float64 `json:"fetch_timeout" validate:"gt=0,lte=120"`
	CacheDir             string  `json:"cache_dir"`
	CacheTTLHours        float64 `json:"cache_ttl_hours" validate:"gte=0"`

	// List rendering
	FontPaths []string `json:"font_paths"`

	// Catalog API
	APIBaseURL  string `json:"api_base_url" validate:"omitempty,url"`
	AccessToken string `json:"-"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	light := Palettes["light"]

	return &Settings{
		Kind:      string(model.KindAlbum),
		TimeRange: string(model.RangeShort),

		GridSize:   5,
		Gap:        4,
		Background: light.Background,
		Border:     light.Border,
		ExportSize: 1000,
		Format:     "png",
		Theme:      "light",

		OutputPath:     filepath.Join(homeDir, "Pictures", "Topsters"),
		FileNameFormat: "topsters_{kind}_{range}",

		MaxConcurrentFetches: 0,
		FetchTimeout:         10,
		CacheDir:             filepath.Join(cacheDir, "topsters"),
		CacheTTLHours:        12,
	}
}

// DefaultPath returns the settings file location under the user config
// directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "topsters.json"
	}
	return filepath.Join(dir, "topsters", "settings.json")
}

// Load reads settings from a JSON file.
//
// A missing file yields DefaultSettings. The access token is taken from
// SPOTIFY_ACCESS_TOKEN. The result is validated.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	settings.ApplyEnv()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// ApplyEnv copies the access token from the environment when set.
func (s *Settings) ApplyEnv() {
	if token := os.Getenv(EnvAccessToken); token != "" {
		s.AccessToken = token
	}
}

// Save writes settings to a JSON file. The access token is never written.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyTheme switches the theme and resets both collage colours to the
// theme's palette.
func (s *Settings) ApplyTheme(name string) {
	p, ok := Palettes[name]
	if !ok {
		return
	}
	s.Theme = name
	s.Background = p.Background
	s.Border = p.Border
}

// ItemKind returns the parsed Kind.
func (s *Settings) ItemKind() (model.ItemKind, error) {
	return model.ParseItemKind(s.Kind)
}

// Range returns the parsed TimeRange.
func (s *Settings) Range() (model.TimeRange, error) {
	return model.ParseTimeRange(s.TimeRange)
}

// ToGridSpec converts settings to a GridSpec.
func (s *Settings) ToGridSpec() (model.GridSpec, error) {
	bg, err := ParseColor(s.Background)
	if err != nil {
		return model.GridSpec{}, fmt.Errorf("%w: background: %v", ErrInvalidSettings, err)
	}
	border, err := ParseColor(s.Border)
	if err != nil {
		return model.GridSpec{}, fmt.Errorf("%w: border: %v", ErrInvalidSettings, err)
	}

	return model.GridSpec{
		Dimension:  s.GridSize,
		Gap:        s.Gap,
		Background: bg,
		Border:     border,
		ExportSize: s.ExportSize,
	}, nil
}

// ToTheme returns the list theme.
func (s *Settings) ToTheme() model.Theme {
	return model.ThemeByName(s.Theme)
}

// FetchTimeoutDuration returns FetchTimeout as a duration.
func (s *Settings) FetchTimeoutDuration() time.Duration {
	return time.Duration(s.FetchTimeout * float64(time.Second))
}

// CacheTTL returns CacheTTLHours as a duration. Zero means the cache
// default.
func (s *Settings) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLHours * float64(time.Hour))
}

// FileBaseName expands FileNameFormat into a file name without extension.
//
// Supported placeholders: {kind}, {range}, {grid} (e.g. "5x5") and {date}
// (YYYY-MM-DD of now).
func (s *Settings) FileBaseName(now time.Time) string {
	grid := strconv.Itoa(s.GridSize)
	r := strings.NewReplacer(
		"{kind}", s.Kind,
		"{range}", strings.TrimSuffix(s.TimeRange, "_term"),
		"{grid}", grid+"x"+grid,
		"{date}", now.Format("2006-01-02"),
	)
	name := ioutils.SanitizeFileName(r.Replace(s.FileNameFormat))
	if name == "" {
		return "topsters"
	}
	return name
}

// ParseColor parses "#rgb" or "#rrggbb" into an opaque colour.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
