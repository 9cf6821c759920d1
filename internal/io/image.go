package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// JPEGQuality is the quality used for JPEG exports.
const JPEGQuality = 90

// ParseFormat maps "png", "jpg" or "jpeg" (with or without a leading dot)
// to an imaging.Format.
func ParseFormat(s string) (imaging.Format, error) {
	ext := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	f, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return 0, fmt.Errorf("unsupported export format %q", s)
	}
	if f != imaging.PNG && f != imaging.JPEG {
		return 0, fmt.Errorf("unsupported export format %q", s)
	}
	return f, nil
}

// Extension returns the file extension for f, including the dot.
func Extension(f imaging.Format) string {
	if f == imaging.JPEG {
		return ".jpg"
	}
	return ".png"
}

// MIMEType returns the content type for f.
func MIMEType(f imaging.Format) string {
	if f == imaging.JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// ImageService encodes rendered canvases for export.
//
// Example usage:
//
//	svc := NewImageService()
//	data, err := svc.Encode(ctx, collage, imaging.JPEG)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Encode serializes img in the given format.
//
// JPEG output uses quality 90, matching cover art conversion elsewhere.
// Only PNG and JPEG are accepted.
func (s *ImageService) Encode(ctx context.Context, img image.Image, format imaging.Format) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if format != imaging.PNG && format != imaging.JPEG {
		return nil, fmt.Errorf("unsupported export format %v", format)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
