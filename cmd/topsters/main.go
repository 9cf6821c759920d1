package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/handiism/topsters/internal/catalog"
	"github.com/handiism/topsters/internal/config"
	"github.com/handiism/topsters/internal/logging"
	"github.com/handiism/topsters/internal/pipeline"
)

func main() {
	// Command line flags
	var (
		configFlag  = flag.String("config", "", "Path to config file (default: user config dir)")
		kindFlag    = flag.String("kind", "", "Item kind: album, track or artist")
		rangeFlag   = flag.String("range", "", "Time range: short_term, medium_term or long_term")
		gridFlag    = flag.Int("grid", 0, "Grid dimension (2-15)")
		gapFlag     = flag.Int("gap", -1, "Gap between cells in pixels")
		bgFlag      = flag.String("bg", "", "Background colour (#rrggbb)")
		borderFlag  = flag.String("border", "", "Border colour (#rrggbb)")
		themeFlag   = flag.String("theme", "", "Theme: light or dark (resets colours)")
		formatFlag  = flag.String("format", "", "Collage format: png or jpg")
		sizeFlag    = flag.Int("size", 0, "Nominal export size in pixels")
		outputFlag  = flag.String("output", "", "Output directory (overrides config)")
		listFlag    = flag.String("playlist", "", "Also write a playlist: m3u, pls or xspf")
		inputFlag   = flag.String("input", "", "Read candidates from a JSON file instead of the API")
		tokenFlag   = flag.String("token", "", "Catalog API access token (default: $"+config.EnvAccessToken+")")
		albumFlag   = flag.String("album", "", "Album link, URI or ID: render its region chart instead of a collage")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag  = flag.Bool("dry-run", false, "Select items without loading covers")
	)

	flag.Parse()

	logging.Init(logging.ConfigFromEnv())

	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *themeFlag != "" {
		settings.ApplyTheme(*themeFlag)
	}
	if *kindFlag != "" {
		settings.Kind = *kindFlag
	}
	if *rangeFlag != "" {
		settings.TimeRange = *rangeFlag
	}
	if *gridFlag > 0 {
		settings.GridSize = *gridFlag
	}
	if *gapFlag >= 0 {
		settings.Gap = *gapFlag
	}
	if *bgFlag != "" {
		settings.Background = *bgFlag
	}
	if *borderFlag != "" {
		settings.Border = *borderFlag
	}
	if *formatFlag != "" {
		settings.Format = *formatFlag
	}
	if *sizeFlag > 0 {
		settings.ExportSize = *sizeFlag
	}
	if *outputFlag != "" {
		settings.OutputPath = *outputFlag
	}
	if *listFlag != "" {
		settings.Playlist = *listFlag
	}
	if *tokenFlag != "" {
		settings.AccessToken = *tokenFlag
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if settings.AccessToken == "" && *inputFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: no access token, set $%s, pass -token or use -input\n", config.EnvAccessToken)
		os.Exit(2)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	var opts []pipeline.Option
	if *inputFlag != "" {
		opts = append(opts, pipeline.WithSource(catalog.NewFileSource(*inputFlag)))
	}

	manager := pipeline.NewManager(settings, func(event pipeline.ProgressEvent) {
		if event.Level == pipeline.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case pipeline.LevelError:
			prefix = "❌ "
		case pipeline.LevelWarning:
			prefix = "⚠️  "
		case pipeline.LevelSuccess:
			prefix = "✅ "
		case pipeline.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	}, opts...)

	fmt.Println("🎵 Topsters")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if *albumFlag != "" {
		os.Exit(runRegions(ctx, manager, settings, *albumFlag))
	}

	if *dryRunFlag {
		items, err := manager.Preview(ctx)
		if err != nil {
			os.Exit(fail(ctx, err))
		}
		for i, item := range items {
			fmt.Printf("%3d. %s\n", i+1, item.Label())
		}
		fmt.Println("\n[Dry run - no covers loaded]")
		return
	}

	result, err := manager.Run(ctx)
	if err != nil {
		os.Exit(fail(ctx, err))
	}

	files, err := result.Save(ctx, settings.OutputPath, settings.FileBaseName(time.Now()))
	if err != nil {
		os.Exit(fail(ctx, err))
	}

	loaded, total := manager.GetProgress()
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! %d/%d covers\n", loaded, total)
	fmt.Printf("   Collage: %s\n", files.Collage)
	fmt.Printf("   List:    %s\n", files.List)
	if files.Playlist != "" {
		fmt.Printf("   Playlist: %s\n", files.Playlist)
	}
}

func runRegions(ctx context.Context, manager *pipeline.Manager, settings *config.Settings, albumRef string) int {
	result, err := manager.RunRegions(ctx, albumRef)
	if err != nil {
		return fail(ctx, err)
	}

	for _, c := range result.Coverage {
		fmt.Printf("   %-14s %d/%d\n", c.Continent, len(c.Available), c.Tracked())
	}

	path, err := result.Save(ctx, settings.OutputPath, "topsters_"+result.Album.ID)
	if err != nil {
		return fail(ctx, err)
	}
	fmt.Printf("\n✨ Chart saved to %s\n", filepath.Clean(path))
	return 0
}

// fail prints err and returns the process exit code for it.
func fail(ctx context.Context, err error) int {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		fmt.Println("\nCancelled.")
		return 130
	}

	switch {
	case errors.Is(err, pipeline.ErrInsufficientData):
		fmt.Fprintln(os.Stderr, "Not enough data: no items with cover art for this kind and time range.")
	case errors.Is(err, catalog.ErrUnauthorized):
		fmt.Fprintln(os.Stderr, "Access token rejected, it may have expired.")
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return 1
}
