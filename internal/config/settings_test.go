package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/handiism/topsters/internal/model"
)

func TestDefaultSettings_Valid(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	grid, err := s.ToGridSpec()
	if err != nil {
		t.Fatalf("ToGridSpec failed: %v", err)
	}
	if grid.Dimension != 5 || grid.Gap != 4 || grid.ExportSize != 1000 {
		t.Errorf("unexpected grid %+v", grid)
	}
	if grid.BorderStroke() == 0 {
		t.Error("default border differs from background and should be drawn")
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Settings)
		wantField string
	}{
		{"grid too small", func(s *Settings) { s.GridSize = 1 }, "grid_size"},
		{"grid too large", func(s *Settings) { s.GridSize = 16 }, "grid_size"},
		{"negative gap", func(s *Settings) { s.Gap = -1 }, "gap"},
		{"bad background", func(s *Settings) { s.Background = "white" }, "background"},
		{"bad border", func(s *Settings) { s.Border = "#12345" }, "border"},
		{"bad format", func(s *Settings) { s.Format = "gif" }, "format"},
		{"bad kind", func(s *Settings) { s.Kind = "playlist" }, "kind"},
		{"bad range", func(s *Settings) { s.TimeRange = "forever" }, "time_range"},
		{"bad theme", func(s *Settings) { s.Theme = "sepia" }, "theme"},
		{"export too small", func(s *Settings) { s.ExportSize = 50 }, "export_size"},
		{"zero timeout", func(s *Settings) { s.FetchTimeout = 0 }, "fetch_timeout"},
		{"too many workers", func(s *Settings) { s.MaxConcurrentFetches = 100 }, "max_concurrent_fetches"},
		{"bad api url", func(s *Settings) { s.APIBaseURL = "not a url" }, "api_base_url"},
		{"bad playlist", func(s *Settings) { s.Playlist = "wpl" }, "playlist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)

			err := s.Validate()
			if !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("expected ErrInvalidSettings, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q does not name %s", err, tt.wantField)
			}
		})
	}
}

func TestSettings_ValidateReportsAllFields(t *testing.T) {
	s := DefaultSettings()
	s.GridSize = 0
	s.Format = "bmp"

	err := s.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, field := range []string{"grid_size", "format"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not name %s", err, field)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvAccessToken, "env-token")

	t.Run("missing file gives defaults", func(t *testing.T) {
		s, err := Load(filepath.Join(dir, "missing.json"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.GridSize != DefaultSettings().GridSize {
			t.Errorf("GridSize = %d", s.GridSize)
		}
		if s.AccessToken != "env-token" {
			t.Errorf("AccessToken = %q, want env value", s.AccessToken)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		os.WriteFile(path, []byte(`{"grid_size": 3, "kind": "artist"}`), 0644)

		s, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.GridSize != 3 || s.Kind != "artist" || s.Gap != 4 {
			t.Errorf("unexpected settings %+v", s)
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		os.WriteFile(path, []byte(`{"grid_size": 40}`), 0644)

		if _, err := Load(path); !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("expected ErrInvalidSettings, got %v", err)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		os.WriteFile(path, []byte(`{`), 0644)

		if _, err := Load(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s := DefaultSettings()
	s.GridSize = 7
	s.AccessToken = "secret"

	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "secret") {
		t.Error("access token must not be written to disk")
	}

	t.Setenv(EnvAccessToken, "")
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.GridSize != 7 || loaded.AccessToken != "" {
		t.Errorf("loaded %+v", loaded)
	}
}

func TestApplyTheme(t *testing.T) {
	s := DefaultSettings()
	s.ApplyTheme("dark")
	if s.Theme != "dark" || s.Background != "#232529" || s.Border != "#333333" {
		t.Errorf("dark theme not applied: %+v", s)
	}
	if s.ToTheme().Name != model.DarkTheme.Name {
		t.Errorf("ToTheme() = %q", s.ToTheme().Name)
	}

	s.ApplyTheme("unknown")
	if s.Theme != "dark" {
		t.Error("unknown theme should be ignored")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"#1db954", color.NRGBA{R: 0x1d, G: 0xb9, B: 0x54, A: 0xff}, false},
		{"#FAFCFF", color.NRGBA{R: 0xfa, G: 0xfc, B: 0xff, A: 0xff}, false},
		{"#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"red", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToGridSpec_BorderSuppressedCaseInsensitive(t *testing.T) {
	s := DefaultSettings()
	s.Background = "#FAFCFF"
	s.Border = "#fafcff"

	grid, err := s.ToGridSpec()
	if err != nil {
		t.Fatalf("ToGridSpec failed: %v", err)
	}
	if grid.BorderStroke() != 0 {
		t.Error("border equal to background must not be drawn")
	}
}

func TestFileBaseName(t *testing.T) {
	s := DefaultSettings()
	s.Kind = "track"
	s.TimeRange = "long_term"
	s.GridSize = 3
	s.FileNameFormat = "{kind}-{range}-{grid}-{date}"

	got := s.FileBaseName(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	if want := "track-long-3x3-2026-03-04"; got != want {
		t.Errorf("FileBaseName() = %q, want %q", got, want)
	}

	s.FileNameFormat = "a/b:c"
	if got := s.FileBaseName(time.Now()); got != "a_b_c" {
		t.Errorf("FileBaseName() = %q, want sanitized", got)
	}
}

func TestDurations(t *testing.T) {
	s := DefaultSettings()
	if got := s.FetchTimeoutDuration(); got != 10*time.Second {
		t.Errorf("FetchTimeoutDuration() = %v", got)
	}
	if got := s.CacheTTL(); got != 12*time.Hour {
		t.Errorf("CacheTTL() = %v", got)
	}
}
