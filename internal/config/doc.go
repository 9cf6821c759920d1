// Package config provides configuration management for topsters.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Validation of user input before it reaches the renderers
//   - Conversion to model.GridSpec and model.Theme for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// 5x5 album collage of the last month
//	// 1000px PNG export, light theme
//	// Output to ~/Pictures/Topsters
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/settings.json")
//	if errors.Is(err, config.ErrInvalidSettings) {
//	    // a value is out of range
//	}
//
// Missing files yield the defaults. The catalog access token is never
// stored in the file; it comes from SPOTIFY_ACCESS_TOKEN or a flag.
//
// # Validation
//
// Grid size must be 2-15, gap 0-64, export size 100-8000 and colours hex
// strings. Validate reports every failing field at once:
//
//	settings.GridSize = 20
//	err := settings.Validate()
//	// invalid settings: grid_size must be at most 15
package config
