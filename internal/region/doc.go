// Package region groups an album's available markets by continent and
// renders the grouping as a bar chart.
//
// Only a fixed set of representative countries is tracked (see
// Continents); other market codes count towards the total but are not
// bucketed.
//
//	cov := region.Bucket(album.Markets)
//	chart := region.RenderChart(cov, model.LightTheme)
package region
