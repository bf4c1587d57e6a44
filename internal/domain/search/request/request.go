package request

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/biosearch/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxPageSize is the largest page the remote index is asked for.
	MaxPageSize     = 500
	DefaultPageSize = 20
	// MaxQueryLength is the maximum allowed free-text query length.
	MaxQueryLength = 4096
	// Wildcard matches every document.
	Wildcard = "*"
)

// Sort is an order-by clause.
type Sort struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending,omitempty"`
}

// OrderBy renders the clause, e.g. "lastName asc".
func (s Sort) OrderBy() string {
	dir := "asc"
	if s.Descending {
		dir = "desc"
	}
	return s.Field + " " + dir
}

// Request is a fully compiled search against one index.
type Request struct {
	FreeText         string    `json:"search"`
	SearchFields     []string  `json:"searchFields,omitempty"`
	Mode             mode.Mode `json:"searchMode"`
	Filter           string    `json:"filter,omitempty"`
	Facets           []string  `json:"facets,omitempty"`
	Select           []string  `json:"select,omitempty"`
	Top              int       `json:"top"`
	Skip             int       `json:"skip"`
	IncludeCount     bool      `json:"count"`
	HighlightFields  []string  `json:"highlight,omitempty"`
	HighlightPreTag  string    `json:"highlightPreTag,omitempty"`
	HighlightPostTag string    `json:"highlightPostTag,omitempty"`
	Sort             *Sort     `json:"orderby,omitempty"`
	// KeyField names the document key, used to read IDs back from results.
	KeyField string `json:"-"`
}

// Validate checks the invariants every compiled request must hold.
func (r *Request) Validate() error {
	if r.Top < 0 || r.Top > MaxPageSize {
		return fmt.Errorf("top must be between 0 and %d, got %d", MaxPageSize, r.Top)
	}
	if r.Skip < 0 {
		return errors.New("skip must not be negative")
	}
	if !r.Mode.IsValid() {
		return fmt.Errorf("invalid search mode: %q", r.Mode)
	}
	if len(r.FreeText) > MaxQueryLength {
		return fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	return nil
}

// IsBrowseAll reports whether text matches every document.
func IsBrowseAll(text string) bool {
	text = strings.TrimSpace(text)
	return text == "" || text == Wildcard
}
