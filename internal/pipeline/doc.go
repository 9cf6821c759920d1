// Package pipeline orchestrates one topsters request from catalog query
// to encoded images.
//
// The Manager coordinates the whole process:
//  1. Sweep expired entries from the cover cache
//  2. Fetch top candidates from a catalog.Source
//  3. Select unique-cover items (one per grid cell)
//  4. Load covers concurrently, in order
//  5. Compose the grid collage and render the list image
//  6. Encode both for export
//
// # Basic Usage
//
//	settings := config.DefaultSettings()
//	manager := pipeline.NewManager(settings, func(e pipeline.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//
//	result, err := manager.Run(ctx)
//	if errors.Is(err, pipeline.ErrInsufficientData) {
//	    // nothing to draw for this time range
//	}
//	paths, err := result.Save(ctx, settings.OutputPath, settings.FileBaseName(time.Now()))
//
// # Progress Tracking
//
// Progress is reported two ways:
//   - ProgressEvent callbacks for status messages
//   - GetProgress() for polling covers loaded vs. total
//
//	loaded, total := manager.GetProgress()
//	fmt.Printf("%d/%d covers\n", loaded, total)
//
// # Region Charts
//
// RunRegions looks up one album and charts its market coverage:
//
//	res, err := manager.RunRegions(ctx, "https://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy")
package pipeline
