package azsearch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/biosearch/internal/domain/search/request"
	"github.com/kailas-cloud/biosearch/internal/domain/search/result"
)

// queryType selects the simple query syntax, which supports +, | and - operators.
const queryType = "simple"

// searchBody is the POST docs/search request body.
type searchBody struct {
	Search           string   `json:"search"`
	SearchFields     string   `json:"searchFields,omitempty"`
	SearchMode       string   `json:"searchMode"`
	QueryType        string   `json:"queryType"`
	Filter           string   `json:"filter,omitempty"`
	Facets           []string `json:"facets,omitempty"`
	Select           string   `json:"select,omitempty"`
	Top              int      `json:"top"`
	Skip             int      `json:"skip,omitempty"`
	Count            bool     `json:"count"`
	Highlight        string   `json:"highlight,omitempty"`
	HighlightPreTag  string   `json:"highlightPreTag,omitempty"`
	HighlightPostTag string   `json:"highlightPostTag,omitempty"`
	OrderBy          string   `json:"orderby,omitempty"`
}

// MarshalSearch renders req as the JSON body the service receives.
func MarshalSearch(req *request.Request) ([]byte, error) {
	body, err := json.Marshal(toSearchBody(req))
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}
	return body, nil
}

func toSearchBody(req *request.Request) searchBody {
	b := searchBody{
		Search:           req.FreeText,
		SearchFields:     strings.Join(req.SearchFields, ","),
		SearchMode:       string(req.Mode),
		QueryType:        queryType,
		Filter:           req.Filter,
		Facets:           req.Facets,
		Select:           strings.Join(req.Select, ","),
		Top:              req.Top,
		Skip:             req.Skip,
		Count:            req.IncludeCount,
		Highlight:        strings.Join(req.HighlightFields, ","),
		HighlightPreTag:  req.HighlightPreTag,
		HighlightPostTag: req.HighlightPostTag,
	}
	if req.Sort != nil {
		b.OrderBy = req.Sort.OrderBy()
	}
	return b
}

// searchResponse is the docs/search response body.
type searchResponse struct {
	Count  *int64                       `json:"@odata.count"`
	Facets map[string][]result.Bucket   `json:"@search.facets"`
	Value  []map[string]json.RawMessage `json:"value"`
}

const (
	fieldScore      = "@search.score"
	fieldHighlights = "@search.highlights"
)

func (r *searchResponse) toPage(keyField string) (*result.Page, error) {
	docs := make([]result.Document, 0, len(r.Value))
	for i, raw := range r.Value {
		d, err := toDocument(raw, keyField)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		docs = append(docs, d)
	}

	total := int64(len(docs))
	if r.Count != nil {
		total = *r.Count
	}
	return &result.Page{Facets: r.Facets, Documents: docs, TotalCount: total}, nil
}

func toDocument(raw map[string]json.RawMessage, keyField string) (result.Document, error) {
	d := result.Document{Fields: make(map[string]any, len(raw))}

	for name, value := range raw {
		switch name {
		case fieldScore:
			if err := json.Unmarshal(value, &d.Score); err != nil {
				return result.Document{}, fmt.Errorf("decode score: %w", err)
			}
		case fieldHighlights:
			if err := json.Unmarshal(value, &d.Highlights); err != nil {
				return result.Document{}, fmt.Errorf("decode highlights: %w", err)
			}
		default:
			if strings.HasPrefix(name, "@") {
				continue
			}
			var v any
			if err := json.Unmarshal(value, &v); err != nil {
				return result.Document{}, fmt.Errorf("decode field %s: %w", name, err)
			}
			d.Fields[name] = v
		}
	}

	if keyField != "" {
		if id, ok := d.Fields[keyField].(string); ok {
			d.ID = id
		}
	}
	return d, nil
}
