package selector

import "github.com/handiism/topsters/internal/model"

// Select returns at most limit items from candidates, in source order,
// such that no two returned items share a best-resolution cover URL.
//
// Items without images are skipped. The result is shorter than limit when
// the candidates run out; callers decide whether that is an error.
func Select(candidates []model.CatalogItem, limit int) []model.CatalogItem {
	if limit <= 0 {
		return nil
	}

	selected := make([]model.CatalogItem, 0, min(limit, len(candidates)))
	seen := make(map[string]struct{}, limit)

	for _, item := range candidates {
		url := item.CoverURL()
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		selected = append(selected, item)
		if len(selected) == limit {
			break
		}
	}
	return selected
}

// CoverURLs returns the best cover URL of each item, index-aligned.
func CoverURLs(items []model.CatalogItem) []string {
	urls := make([]string, len(items))
	for i, item := range items {
		urls[i] = item.CoverURL()
	}
	return urls
}
