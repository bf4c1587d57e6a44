package result

// Document is a single search hit.
type Document struct {
	ID         string              `json:"id"`
	Score      float64             `json:"score,omitempty"`
	Fields     map[string]any      `json:"fields"`
	Highlights map[string][]string `json:"highlights,omitempty"`
}

// Bucket is one facet value and the number of matching documents.
type Bucket struct {
	Value any   `json:"value"`
	Count int64 `json:"count"`
}

// Page is the outcome of a search: facet counts, the ranked documents and the total hit count.
type Page struct {
	Facets     map[string][]Bucket `json:"facets"`
	Documents  []Document          `json:"documents"`
	TotalCount int64               `json:"totalCount"`
}

// FacetBuckets returns the buckets of one facet, or nil.
func (p *Page) FacetBuckets(name string) []Bucket {
	if p == nil || p.Facets == nil {
		return nil
	}
	return p.Facets[name]
}
