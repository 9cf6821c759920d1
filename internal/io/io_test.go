package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"topsters_album.png", "topsters_album.png"},
		{"Top: Albums/2024", "Top_ Albums_2024"},
		{"file<with>brackets", "file_with_brackets"},
		{"file|with?pipes*", "file_with_pipes_"},
		{"trailing dots...", "trailing dots"},
		{"topsters_album_short_term...", "topsters_album_short_term"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.png")
	if err := WriteFile(context.Background(), path, []byte("data")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("content = %q, want %q", got, "data")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    imaging.Format
		wantErr bool
	}{
		{"png", imaging.PNG, false},
		{"PNG", imaging.PNG, false},
		{"jpg", imaging.JPEG, false},
		{".jpeg", imaging.JPEG, false},
		{"gif", 0, true},
		{"webp", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFormat(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestImageService_Encode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	svc := NewImageService()

	pngData, err := svc.Encode(context.Background(), img, imaging.PNG)
	if err != nil {
		t.Fatalf("Encode PNG failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		t.Fatalf("PNG output not decodable: %v", err)
	}
	if decoded.Bounds().Dx() != 16 || decoded.Bounds().Dy() != 8 {
		t.Errorf("PNG bounds = %v, want 16x8", decoded.Bounds())
	}

	jpegData, err := svc.Encode(context.Background(), img, imaging.JPEG)
	if err != nil {
		t.Fatalf("Encode JPEG failed: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(jpegData)); err != nil {
		t.Fatalf("JPEG output not decodable: %v", err)
	}

	if _, err := svc.Encode(context.Background(), img, imaging.GIF); err == nil {
		t.Error("expected error for GIF export")
	}
}

func TestImageService_EncodeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img := image.NewUniform(color.Black)
	if _, err := NewImageService().Encode(ctx, img, imaging.PNG); err == nil {
		t.Error("expected context error")
	}
}

func TestDiskCache_GetPut(t *testing.T) {
	cache := NewDiskCache(t.TempDir(), time.Hour)

	if _, ok := cache.Get("https://example.com/a.jpg"); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Put("https://example.com/a.jpg", []byte("cover"))
	data, ok := cache.Get("https://example.com/a.jpg")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if string(data) != "cover" {
		t.Errorf("cached data = %q, want %q", data, "cover")
	}

	if _, ok := cache.Get("https://example.com/b.jpg"); ok {
		t.Error("different URL should miss")
	}
}

func TestDiskCache_Disabled(t *testing.T) {
	var cache *DiskCache
	cache.Put("u", []byte("x"))
	if _, ok := cache.Get("u"); ok {
		t.Error("nil cache should always miss")
	}
	if n := cache.Sweep(time.Now()); n != 0 {
		t.Errorf("nil cache Sweep = %d, want 0", n)
	}

	empty := &DiskCache{}
	empty.Put("u", []byte("x"))
	if _, ok := empty.Get("u"); ok {
		t.Error("cache without dir should always miss")
	}
}

func TestDiskCache_Sweep(t *testing.T) {
	dir := t.TempDir()
	cache := NewDiskCache(dir, 12*time.Hour)

	cache.Put("old", []byte("old"))
	cache.Put("fresh", []byte("fresh"))

	old := time.Now().Add(-13 * time.Hour)
	if err := os.Chtimes(cache.path("old"), old, old); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	if removed := cache.Sweep(time.Now()); removed != 1 {
		t.Errorf("Sweep removed %d files, want 1", removed)
	}
	if _, err := os.Stat(cache.path("old")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
	if _, ok := cache.Get("fresh"); !ok {
		t.Error("fresh entry should survive sweep")
	}
}

func TestDiskCache_ExpiredEntryMisses(t *testing.T) {
	cache := NewDiskCache(t.TempDir(), time.Minute)
	cache.Put("u", []byte("x"))

	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(cache.path("u"), old, old); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	if _, ok := cache.Get("u"); ok {
		t.Error("expired entry should miss")
	}
}

func TestDiskCache_SweepMissingDir(t *testing.T) {
	cache := NewDiskCache(filepath.Join(t.TempDir(), "missing"), time.Hour)
	if n := cache.Sweep(time.Now()); n != 0 {
		t.Errorf("Sweep on missing dir = %d, want 0", n)
	}
}
