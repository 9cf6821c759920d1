// Package http provides the HTTP client used for catalog API requests and
// cover image downloads.
//
// The Client in this package handles:
//   - User-Agent and bearer token headers
//   - Timeout handling
//   - Status checking, with Retry-After exposed on rate-limited responses
//
// # Basic Usage
//
//	client := http.NewClient(http.WithTimeout(10*time.Second))
//
//	// Download a cover
//	data, err := client.Get(ctx, "https://i.scdn.co/image/ab67616d0000b273...")
//
//	// Authenticated API call
//	api := http.NewClient(http.WithBearerToken(token))
//	body, err := api.Get(ctx, "https://api.spotify.com/v1/me/top/tracks")
//
// # Errors
//
// Non-200 responses are returned as *StatusError:
//
//	var se *http.StatusError
//	if errors.As(err, &se) && se.Code == 429 {
//	    time.Sleep(se.RetryAfter)
//	}
package http
