// Package catalog fetches top items and album details from the music
// catalog Web API.
//
// The package handles three concerns:
//
//  1. Top items of the authenticated listener, as collage candidates
//  2. Album lookups with market availability, for region charts
//  3. Offline candidate lists read from a JSON file
//
// # Top Items
//
// Albums have no "top" endpoint. They are derived from the listener's top
// tracks, each track contributing its album:
//
//	client := catalog.NewClient(token)
//	items, err := client.TopCandidates(ctx, model.KindAlbum, model.RangeShort, 50)
//	if errors.Is(err, catalog.ErrUnauthorized) {
//	    // token expired
//	}
//
// # Rate Limiting
//
// A 429 response is retried twice, waiting for the Retry-After interval
// (2s when absent). Calls go through a circuit breaker which opens when
// at least 60% of 10 or more requests in a minute fail.
//
// # Album IDs
//
// ExtractAlbumID accepts web links, URIs and bare IDs:
//
//	id, _ := catalog.ExtractAlbumID("https://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy?si=x")
//	id, _ = catalog.ExtractAlbumID("spotify:album:4aawyAB9vmqN3uQ7FjRGTy")
package catalog
