// Package logging provides the zerolog-based logger used across topsters.
//
// Progress shown to the user goes through pipeline.ProgressEvent; this
// package is for operator diagnostics such as degraded fonts, placeholder
// substitution and cache housekeeping.
//
// # Usage
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//
//	logging.Info().Str("dir", dir).Msg("cache swept")
//	logging.Warn().Err(err).Msg("font unavailable")
//
// # Environment
//
// ConfigFromEnv reads LOG_LEVEL (trace, debug, info, warn, error) and
// LOG_FORMAT (json, console).
package logging
