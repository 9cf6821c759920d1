// Package cover downloads cover art and normalizes it to square images.
//
// # Fetching
//
// HTTPFetcher retrieves one image and center-crops it to a square. It never
// returns an error: any failure (network, timeout, decode) yields the
// neutral Placeholder image so a collage is never blocked by one missing
// cover.
//
//	fetcher := cover.NewHTTPFetcher(client, cache)
//	img := fetcher.Fetch(ctx, url)
//
// # Loading
//
// Loader fetches many covers concurrently on a bounded worker pool and
// returns them in input order:
//
//	loader := cover.NewLoader(fetcher, 0)
//	images := loader.Load(ctx, urls, func(fraction float64) {
//	    fmt.Printf("%.0f%%\n", fraction*100)
//	})
//	// len(images) == len(urls), images[i] belongs to urls[i]
package cover
