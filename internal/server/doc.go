// Package server exposes the collage pipeline over HTTP.
//
// Routes:
//
//	GET /healthz                 liveness probe
//	GET /v1/collage              grid collage (PNG or JPEG)
//	GET /v1/list                 ranked list image (PNG)
//	GET /v1/regions/{album}      market coverage chart (PNG)
//
// Collage and list requests take the same query parameters as the CLI
// flags: kind, range, grid, gap, bg, border, theme, format and size.
// Colours may omit the leading '#'. Every /v1 request needs an
// "Authorization: Bearer <token>" header carrying the catalog access token.
//
// Errors are JSON bodies of the form
//
//	{"error": {"code": "INSUFFICIENT_DATA", "message": "..."}}
//
// with 400 for bad parameters, 401 for a missing or rejected token, 404
// for unknown albums, 422 when there is nothing to draw and 429 when the
// catalog keeps rate limiting.
package server
