package model

import (
	"image/color"
	"testing"
)

func TestCatalogItem_BestImage(t *testing.T) {
	tests := []struct {
		name    string
		images  []Image
		wantURL string
		wantOK  bool
	}{
		{"no images", nil, "", false},
		{"single", []Image{{URL: "a", Width: 64, Height: 64}}, "a", true},
		{
			name: "largest area wins",
			images: []Image{
				{URL: "small", Width: 64, Height: 64},
				{URL: "large", Width: 640, Height: 640},
				{URL: "medium", Width: 300, Height: 300},
			},
			wantURL: "large",
			wantOK:  true,
		},
		{
			name: "tie keeps first",
			images: []Image{
				{URL: "first", Width: 300, Height: 200},
				{URL: "second", Width: 200, Height: 300},
			},
			wantURL: "first",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := CatalogItem{Images: tt.images}
			img, ok := item.BestImage()
			if ok != tt.wantOK {
				t.Fatalf("BestImage() ok = %v, want %v", ok, tt.wantOK)
			}
			if img.URL != tt.wantURL {
				t.Errorf("BestImage().URL = %q, want %q", img.URL, tt.wantURL)
			}
			if got := item.CoverURL(); got != tt.wantURL {
				t.Errorf("CoverURL() = %q, want %q", got, tt.wantURL)
			}
		})
	}
}

func TestCatalogItem_Label(t *testing.T) {
	tests := []struct {
		item CatalogItem
		want string
	}{
		{CatalogItem{Kind: KindArtist, Name: "Björk", Artists: []string{"ignored"}}, "Björk"},
		{CatalogItem{Kind: KindAlbum, Name: "Homogenic", Artists: []string{"Björk", "Mark Bell"}}, "Homogenic — Björk"},
		{CatalogItem{Kind: KindTrack, Name: "Jóga", Artists: []string{"Björk"}}, "Jóga — Björk"},
		{CatalogItem{Kind: KindTrack, Name: "Untitled"}, "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.item.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseItemKind(t *testing.T) {
	for _, s := range []string{"album", "Track", " artist "} {
		if _, err := ParseItemKind(s); err != nil {
			t.Errorf("ParseItemKind(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseItemKind("playlist"); err == nil {
		t.Error("ParseItemKind(\"playlist\") expected error")
	}
}

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		input string
		want  TimeRange
	}{
		{"short", RangeShort},
		{"medium_term", RangeMedium},
		{"LONG", RangeLong},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeRange(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeRange(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	if _, err := ParseTimeRange("forever"); err == nil {
		t.Error("expected error for unknown range")
	}
}

func TestGridSpec_Geometry(t *testing.T) {
	tests := []struct {
		name       string
		spec       GridSpec
		wantCell   int
		wantCanvas int
	}{
		{"5x5 gap 4", GridSpec{Dimension: 5, Gap: 4, ExportSize: 1000}, 196, 1004},
		{"3x3 no gap", GridSpec{Dimension: 3, Gap: 0, ExportSize: 900}, 300, 900},
		{"15x15 clamps to min cell", GridSpec{Dimension: 15, Gap: 8, ExportSize: 1000}, 80, 80*15 + 8*16},
		{"custom min cell", GridSpec{Dimension: 10, Gap: 0, ExportSize: 500, MinCellSize: 64}, 64, 640},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.CellSize(); got != tt.wantCell {
				t.Errorf("CellSize() = %d, want %d", got, tt.wantCell)
			}
			if got := tt.spec.CanvasSize(); got != tt.wantCanvas {
				t.Errorf("CanvasSize() = %d, want %d", got, tt.wantCanvas)
			}
		})
	}
}

func TestGridSpec_CellPosition(t *testing.T) {
	spec := GridSpec{Dimension: 3, Gap: 4, ExportSize: 300}

	row, col := spec.CellPosition(7)
	if row != 2 || col != 1 {
		t.Errorf("CellPosition(7) = (%d, %d), want (2, 1)", row, col)
	}

	cell := spec.CellSize()
	x, y := spec.CellOrigin(7)
	if wantX, wantY := 4+1*(cell+4), 4+2*(cell+4); x != wantX || y != wantY {
		t.Errorf("CellOrigin(7) = (%d, %d), want (%d, %d)", x, y, wantX, wantY)
	}
}

func TestGridSpec_BorderStroke(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	grey := color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 255}

	tests := []struct {
		name string
		spec GridSpec
		want int
	}{
		{"same colour suppresses border", GridSpec{Background: white, Border: white}, 0},
		{"equivalent colour models", GridSpec{Background: white, Border: color.RGBA{R: 255, G: 255, B: 255, A: 255}}, 0},
		{"different colour uses default width", GridSpec{Background: white, Border: grey}, DefaultBorderWidth},
		{"explicit width", GridSpec{Background: white, Border: grey, BorderWidth: 5}, 5},
		{"nil border", GridSpec{Background: white}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.BorderStroke(); got != tt.want {
				t.Errorf("BorderStroke() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestThemeByName(t *testing.T) {
	if got := ThemeByName("dark"); got.Name != "dark" {
		t.Errorf("ThemeByName(dark) = %q", got.Name)
	}
	if got := ThemeByName("unknown"); got.Name != "light" {
		t.Errorf("ThemeByName(unknown) = %q, want light", got.Name)
	}
}
