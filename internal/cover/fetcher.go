package cover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"time"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/handiism/topsters/internal/http"
	ioutils "github.com/handiism/topsters/internal/io"
	"github.com/handiism/topsters/internal/logging"
)

// DefaultFetchTimeout bounds a single cover download.
const DefaultFetchTimeout = 10 * time.Second

// MaxCoverPixels bounds the declared size of a cover before it is decoded.
// Catalog covers are at most 640x640.
const MaxCoverPixels = 4096 * 4096

// Fetcher retrieves one cover as a square image.
//
// Implementations must not fail: on any error they return a placeholder.
type Fetcher interface {
	Fetch(ctx context.Context, url string) image.Image
}

// Getter is the subset of http.Client used by HTTPFetcher.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

var _ Getter = (*http.Client)(nil)

// HTTPFetcher downloads covers over HTTP, optionally through a DiskCache.
type HTTPFetcher struct {
	client  Getter
	cache   *ioutils.DiskCache
	timeout time.Duration
}

// NewHTTPFetcher creates a fetcher. cache may be nil.
func NewHTTPFetcher(client Getter, cache *ioutils.DiskCache) *HTTPFetcher {
	return &HTTPFetcher{
		client:  client,
		cache:   cache,
		timeout: DefaultFetchTimeout,
	}
}

// WithTimeout returns a copy of f using timeout d per fetch.
func (f *HTTPFetcher) WithTimeout(d time.Duration) *HTTPFetcher {
	cp := *f
	if d > 0 {
		cp.timeout = d
	}
	return &cp
}

// Fetch downloads url, decodes it and center-crops it to a square.
//
// A cached copy is used when available. Any failure returns Placeholder().
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) image.Image {
	img, err := f.fetch(ctx, url)
	if err != nil {
		logging.Debug().Err(err).Str("url", url).Msg("cover unavailable, using placeholder")
		return Placeholder()
	}
	return img
}

var (
	errEmptyURL      = errors.New("empty cover URL")
	errNotImage      = errors.New("response is not an image")
	errCoverTooLarge = errors.New("cover dimensions out of range")
)

func (f *HTTPFetcher) fetch(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, errEmptyURL
	}

	data, cached := f.cache.Get(url)
	if !cached {
		ctx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()

		var err error
		data, err = f.client.Get(ctx, url)
		if err != nil {
			return nil, err
		}
	}

	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("%w: %s", errNotImage, kind.MIME.Value)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxCoverPixels {
		return nil, fmt.Errorf("%w: %dx%d", errCoverTooLarge, cfg.Width, cfg.Height)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if !cached {
		f.cache.Put(url, data)
	}
	return Square(img), nil
}
