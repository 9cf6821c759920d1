package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"

	"github.com/handiism/topsters/internal/catalog"
	"github.com/handiism/topsters/internal/collage"
	"github.com/handiism/topsters/internal/config"
	"github.com/handiism/topsters/internal/cover"
	"github.com/handiism/topsters/internal/http"
	ioutils "github.com/handiism/topsters/internal/io"
	"github.com/handiism/topsters/internal/model"
	"github.com/handiism/topsters/internal/playlist"
	"github.com/handiism/topsters/internal/region"
	"github.com/handiism/topsters/internal/selector"
)

// ErrInsufficientData is returned when no candidate has a usable cover.
var ErrInsufficientData = errors.New("not enough data to build a collage")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager coordinates collage generation.
type Manager struct {
	settings     *config.Settings
	source       catalog.Source
	albums       catalog.AlbumSource
	fetcher      cover.Fetcher
	cache        *ioutils.DiskCache
	composer     *collage.Composer
	list         *collage.ListRenderer
	chart        *region.Chart
	imageService *ioutils.ImageService

	loadedCovers int32
	totalCovers  int32

	onProgress func(ProgressEvent)
}

// Option configures a Manager.
type Option func(*Manager)

// WithSource replaces the candidate source, e.g. with a catalog.FileSource.
func WithSource(src catalog.Source) Option {
	return func(m *Manager) {
		if src != nil {
			m.source = src
		}
	}
}

// WithAlbumSource replaces the album lookup used by RunRegions.
func WithAlbumSource(src catalog.AlbumSource) Option {
	return func(m *Manager) {
		if src != nil {
			m.albums = src
		}
	}
}

// WithFetcher replaces the cover fetcher.
func WithFetcher(f cover.Fetcher) Option {
	return func(m *Manager) {
		if f != nil {
			m.fetcher = f
		}
	}
}

// NewManager creates a new Manager.
//
// By default candidates and albums come from the catalog API using
// settings.AccessToken, and covers are fetched over HTTP through the disk
// cache in settings.CacheDir.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent), opts ...Option) *Manager {
	client := catalog.NewClient(settings.AccessToken, catalog.WithBaseURL(settings.APIBaseURL))
	cache := ioutils.NewDiskCache(settings.CacheDir, settings.CacheTTL())

	fontPaths := settings.FontPaths
	if len(fontPaths) == 0 {
		fontPaths = collage.DefaultFontPaths
	}
	fonts := collage.NewFontSet(fontPaths...)

	m := &Manager{
		settings:     settings,
		source:       client,
		albums:       client,
		fetcher:      cover.NewHTTPFetcher(http.NewClient(), cache).WithTimeout(settings.FetchTimeoutDuration()),
		cache:        cache,
		composer:     collage.NewComposer(),
		list:         collage.NewListRenderer(fonts),
		chart:        region.NewChart(fonts),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CandidateLimit returns how many candidates to request for a grid of
// the given number of cells. Track lists repeat album covers often, so
// album and track collages ask for at least one full API page.
func CandidateLimit(kind model.ItemKind, cells int) int {
	if kind == model.KindArtist {
		return cells
	}
	return max(catalog.PageLimit, 2*cells)
}

// Preview fetches candidates and returns the items a collage would use,
// without loading any cover.
func (m *Manager) Preview(ctx context.Context) ([]model.CatalogItem, error) {
	kind, err := m.settings.ItemKind()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidSettings, err)
	}
	timeRange, err := m.settings.Range()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidSettings, err)
	}
	cells := m.settings.GridSize * m.settings.GridSize

	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching top %ss (%s)", kind, timeRange), Level: LevelInfo})

	candidates, err := m.source.TopCandidates(ctx, kind, timeRange, CandidateLimit(kind, cells))
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Received %d candidates", len(candidates)), Level: LevelVerbose})

	items := selector.Select(candidates, cells)
	if len(items) == 0 {
		return nil, ErrInsufficientData
	}
	if len(items) < cells {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Only %d of %d cells can be filled", len(items), cells), Level: LevelWarning})
	}
	return items, nil
}

// Run executes the full pipeline and returns the encoded images.
func (m *Manager) Run(ctx context.Context) (*Result, error) {
	if err := m.settings.Validate(); err != nil {
		return nil, err
	}
	grid, err := m.settings.ToGridSpec()
	if err != nil {
		return nil, err
	}
	format, err := ioutils.ParseFormat(m.settings.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidSettings, err)
	}

	m.sweepCache()

	items, err := m.Preview(ctx)
	if err != nil {
		return nil, err
	}

	images := m.loadCovers(ctx, items)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{Message: "Composing collage", Level: LevelVerbose})
	collageImg := m.composer.Compose(images, grid)
	listImg := m.list.Render(items, images, m.settings.ToTheme())

	collageData, err := m.imageService.Encode(ctx, collageImg, format)
	if err != nil {
		return nil, fmt.Errorf("encode collage: %w", err)
	}
	listData, err := m.imageService.Encode(ctx, listImg, imaging.PNG)
	if err != nil {
		return nil, fmt.Errorf("encode list: %w", err)
	}

	result := &Result{
		Items:         items,
		Collage:       collageData,
		CollageFormat: format,
		List:          listData,
	}
	if m.settings.Playlist != "" {
		pf, err := playlist.ParseFormat(m.settings.Playlist)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidSettings, err)
		}
		title := fmt.Sprintf("Top %d %ss (%s)", len(items), m.settings.Kind, m.settings.TimeRange)
		result.Playlist = []byte(playlist.NewCreator(pf).Create(title, items))
		result.PlaylistFormat = pf
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Built %dx%d collage from %d covers", grid.Dimension, grid.Dimension, len(items)), Level: LevelSuccess})

	return result, nil
}

func (m *Manager) loadCovers(ctx context.Context, items []model.CatalogItem) []image.Image {
	n := len(items)
	atomic.StoreInt32(&m.totalCovers, int32(n))
	atomic.StoreInt32(&m.loadedCovers, 0)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Loading %d covers", n), Level: LevelInfo})

	loader := cover.NewLoader(m.fetcher, m.settings.MaxConcurrentFetches)
	images := loader.Load(ctx, selector.CoverURLs(items), func(fraction float64) {
		atomic.StoreInt32(&m.loadedCovers, int32(math.Round(fraction*float64(n))))
	})

	missing := 0
	for i, img := range images {
		if cover.IsPlaceholder(img) {
			missing++
			m.progress(ProgressEvent{Message: fmt.Sprintf("Cover unavailable: %s", items[i].Label()), Level: LevelVerbose})
		}
	}
	if missing > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%d covers replaced by placeholders", missing), Level: LevelWarning})
	}
	return images
}

func (m *Manager) sweepCache() {
	if m.cache == nil || m.cache.Dir == "" {
		return
	}
	if removed := m.cache.Sweep(time.Now()); removed > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Removed %d expired cache entries", removed), Level: LevelVerbose})
	}
}

// GetProgress returns how many covers have been loaded out of the total
// for the current run.
func (m *Manager) GetProgress() (loaded, total int32) {
	return atomic.LoadInt32(&m.loadedCovers), atomic.LoadInt32(&m.totalCovers)
}

// RunRegions looks up the album referenced by albumRef (link, URI or ID)
// and charts its market coverage.
func (m *Manager) RunRegions(ctx context.Context, albumRef string) (*RegionResult, error) {
	id, err := catalog.ExtractAlbumID(albumRef)
	if err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching album %s", id), Level: LevelInfo})
	album, err := m.albums.Album(ctx, id)
	if err != nil {
		return nil, err
	}

	coverage := region.Bucket(album.Markets)
	if len(album.Markets) == 0 {
		m.progress(ProgressEvent{Message: "Region info unavailable, the album may be new or restricted", Level: LevelWarning})
	}

	chart := m.chart.Render(coverage, m.settings.ToTheme())
	data, err := m.imageService.Encode(ctx, chart, imaging.PNG)
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}

	total := region.Total(album.Markets)
	m.progress(ProgressEvent{Message: fmt.Sprintf("%s is available in %d regions", album.Label(), total), Level: LevelSuccess})

	return &RegionResult{
		Album:        album,
		Coverage:     coverage,
		TotalMarkets: total,
		Chart:        data,
	}, nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

// collagePath and listPath follow the export naming scheme.
func collagePath(dir, base string, format imaging.Format) string {
	return filepath.Join(dir, base+ioutils.Extension(format))
}

func listPath(dir, base string) string {
	return filepath.Join(dir, base+"_list.png")
}
