// Package ioutils provides file system, caching and image encoding
// utilities.
//
// This package contains functions for:
//   - File writing and directory creation
//   - Filename sanitization for cross-platform compatibility
//   - A best-effort disk cache for downloaded covers
//   - Encoding rendered canvases as PNG or JPEG
//
// # File Operations
//
//	err := ioutils.EnsureDir("/tmp/topsters")
//	err = ioutils.WriteFile(ctx, "/tmp/topsters/collage.png", data)
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("Top: Albums/2024") // "Top_ Albums_2024"
//
// # Disk Cache
//
//	cache := ioutils.NewDiskCache(".cache/covers", 12*time.Hour)
//	if data, ok := cache.Get(url); ok {
//	    // use cached bytes
//	}
//	cache.Put(url, data)
//	removed := cache.Sweep(time.Now())
//
// # Image Encoding
//
//	svc := ioutils.NewImageService()
//	format, _ := ioutils.ParseFormat("jpg")
//	data, err := svc.Encode(ctx, canvas, format)
package ioutils
