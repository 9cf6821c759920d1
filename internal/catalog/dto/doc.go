// Package dto holds the JSON wire types of the music catalog Web API.
//
// The types mirror only the fields topsters reads. Each converts to the
// domain model with ToItem:
//
//	var page dto.Paging[dto.Track]
//	json.Unmarshal(body, &page)
//	for _, t := range page.Items {
//	    item := t.ToItem()
//	}
package dto
