// Package biosearch provides a Go client for searching a biographical
// interview corpus held in an Azure-Cognitive-Search-compatible index.
//
// The client compiles facet selections, "born this day/week/month" windows,
// paging and sorting into a single request per call, and returns ranked
// documents, facet counts and total hit counts:
//
//	client, _ := biosearch.New(ctx,
//	    biosearch.WithSearchService("https://example.search.windows.net", apiKey),
//	    biosearch.WithIndexes("biographies", "stories"),
//	)
//	page, _ := client.Biographies().Search(ctx, biosearch.TextQuery{
//	    Text:   "aviation",
//	    Facets: biosearch.Facets{Gender: "Female", MakerCategories: []string{"ScienceMakers"}},
//	})
//	born, _ := client.Biographies().Born(ctx, biosearch.DateQuery{Window: biosearch.WindowWeek})
//	stories, _ := client.Stories().ByIDs(ctx, []string{"S12", "S7"})
//
// Restricted deployments pin facets on every query:
//
//	biosearch.WithForcedFacet(biosearch.FacetMakerCategories, "ScienceMakers")
//
// With WithRedis the client also serves stored transcripts and images through
// Blobs() and caches tag-frequency counts.
package biosearch
