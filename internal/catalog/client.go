package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/handiism/topsters/internal/catalog/dto"
	topstershttp "github.com/handiism/topsters/internal/http"
	"github.com/handiism/topsters/internal/logging"
	"github.com/handiism/topsters/internal/model"
)

const (
	// DefaultBaseURL is the root of the catalog Web API.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// DefaultTimeout bounds one API request.
	DefaultTimeout = 15 * time.Second

	// PageLimit is the largest page the top-items endpoints return.
	PageLimit = 50

	maxRetries        = 2
	defaultRetryAfter = 2 * time.Second
)

// Source provides collage candidates.
type Source interface {
	TopCandidates(ctx context.Context, kind model.ItemKind, timeRange model.TimeRange, limit int) ([]model.CatalogItem, error)
}

// AlbumSource looks up single albums.
type AlbumSource interface {
	Album(ctx context.Context, id string) (model.CatalogItem, error)
}

var (
	_ Source      = (*Client)(nil)
	_ AlbumSource = (*Client)(nil)
)

// Getter is the subset of http.Client used by Client.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Client talks to the catalog Web API.
//
// Example usage:
//
//	client := NewClient(os.Getenv("SPOTIFY_ACCESS_TOKEN"))
//	items, err := client.TopCandidates(ctx, model.KindArtist, model.RangeLong, 25)
type Client struct {
	getter     Getter
	baseURL    string
	retryAfter time.Duration
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithGetter replaces the HTTP transport.
func WithGetter(g Getter) Option {
	return func(c *Client) {
		if g != nil {
			c.getter = g
		}
	}
}

// WithRetryAfter sets the wait used when a 429 response carries no
// Retry-After header.
func WithRetryAfter(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryAfter = d
		}
	}
}

// NewClient creates a client authenticated with token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		getter: topstershttp.NewClient(
			topstershttp.WithBearerToken(token),
			topstershttp.WithTimeout(DefaultTimeout),
		),
		baseURL:    DefaultBaseURL,
		retryAfter: defaultRetryAfter,
		breaker:    newBreaker(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TopCandidates returns up to limit candidate items of the given kind for
// the listener's time range, in ranking order.
//
//   - album: top tracks mapped to their albums (duplicates kept; the
//     selector removes them)
//   - track: top tracks, with album images
//   - artist: top artists
func (c *Client) TopCandidates(ctx context.Context, kind model.ItemKind, timeRange model.TimeRange, limit int) ([]model.CatalogItem, error) {
	if limit <= 0 {
		return nil, nil
	}

	switch kind {
	case model.KindAlbum, model.KindTrack:
		tracks, err := topPages[dto.Track](ctx, c, "tracks", timeRange, limit)
		if err != nil {
			return nil, err
		}
		return tracksToItems(tracks, kind), nil
	case model.KindArtist:
		artists, err := topPages[dto.Artist](ctx, c, "artists", timeRange, limit)
		if err != nil {
			return nil, err
		}
		items := make([]model.CatalogItem, len(artists))
		for i := range artists {
			items[i] = artists[i].ToItem()
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unsupported item kind %q", kind)
	}
}

func tracksToItems(tracks []dto.Track, kind model.ItemKind) []model.CatalogItem {
	items := make([]model.CatalogItem, 0, len(tracks))
	for i := range tracks {
		if kind == model.KindTrack {
			items = append(items, tracks[i].ToItem())
			continue
		}
		if album, ok := tracks[i].AlbumItem(); ok {
			items = append(items, album)
		}
	}
	return items
}

// topPages pages through /me/top/{typ} until limit items or the last page.
func topPages[T any](ctx context.Context, c *Client, typ string, timeRange model.TimeRange, limit int) ([]T, error) {
	var out []T
	for offset := 0; len(out) < limit; {
		q := url.Values{}
		q.Set("time_range", string(timeRange))
		q.Set("limit", strconv.Itoa(min(PageLimit, limit-len(out))))
		q.Set("offset", strconv.Itoa(offset))

		var page dto.Paging[T]
		if err := c.getJSON(ctx, "/me/top/"+typ, q, &page); err != nil {
			return nil, fmt.Errorf("top %s: %w", typ, err)
		}
		out = append(out, page.Items...)
		offset += len(page.Items)
		if page.Next == "" || len(page.Items) == 0 {
			break
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Album returns the album with its available markets.
//
// Some albums list no markets of their own; the markets of the album's
// first track are used instead.
func (c *Client) Album(ctx context.Context, id string) (model.CatalogItem, error) {
	var album dto.Album
	if err := c.getJSON(ctx, "/albums/"+url.PathEscape(id), nil, &album); err != nil {
		return model.CatalogItem{}, fmt.Errorf("album %s: %w", id, err)
	}

	item := album.ToItem()
	if len(item.Markets) > 0 {
		return item, nil
	}

	markets, err := c.firstTrackMarkets(ctx, id)
	if err != nil {
		logging.Warn().Err(err).Str("album", id).Msg("market fallback failed")
		return item, nil
	}
	item.Markets = markets
	return item, nil
}

func (c *Client) firstTrackMarkets(ctx context.Context, albumID string) ([]string, error) {
	q := url.Values{}
	q.Set("limit", "1")

	var tracks dto.Paging[dto.Track]
	if err := c.getJSON(ctx, "/albums/"+url.PathEscape(albumID)+"/tracks", q, &tracks); err != nil {
		return nil, err
	}
	if len(tracks.Items) == 0 || tracks.Items[0].ID == "" {
		return nil, nil
	}

	var track dto.Track
	if err := c.getJSON(ctx, "/tracks/"+url.PathEscape(tracks.Items[0].ID), nil, &track); err != nil {
		return nil, err
	}
	return track.AvailableMarkets, nil
}

// getJSON fetches path and decodes the body into out, retrying rate
// limited requests.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	for attempt := 0; ; attempt++ {
		data, err := c.breaker.Execute(func() ([]byte, error) {
			return c.getter.Get(ctx, u)
		})
		if err == nil {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}
			return nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		var se *topstershttp.StatusError
		if !errors.As(err, &se) {
			return err
		}

		switch se.Code {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case http.StatusTooManyRequests:
			if attempt >= maxRetries {
				return fmt.Errorf("%w: %v", ErrRateLimited, err)
			}
			wait := se.RetryAfter
			if wait <= 0 {
				wait = c.retryAfter
			}
			logging.Warn().Str("path", path).Dur("retry_after", wait).Int("attempt", attempt+1).Msg("rate limited, retrying")
			if err := sleep(ctx, wait); err != nil {
				return err
			}
		default:
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
