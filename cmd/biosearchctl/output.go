package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	biosearch "github.com/kailas-cloud/biosearch/pkg/sdk"
)

// displayFields are tried in order for the one-line label of a hit.
var displayFields = []string{"preferredName", "title", "lastName", "accession"}

func writeJSON(c *cli.Command, v any) error {
	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRaw(c *cli.Command, body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("formatting request body: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(c.Root().Writer)
	return err
}

func printPage(c *cli.Command, page biosearch.Page) error {
	if c.Bool("json") {
		return writeJSON(c, page)
	}

	w := c.Root().Writer
	if len(page.Documents) == 0 {
		_, err := fmt.Fprintln(w, "No results found")
		return err
	}
	fmt.Fprintf(w, "Showing %d of %d results:\n", len(page.Documents), page.TotalCount)
	for i, doc := range page.Documents {
		fmt.Fprintf(w, "%d. %s  %s", i+1, doc.ID, label(doc))
		if doc.Score > 0 {
			fmt.Fprintf(w, "  (score %.2f)", doc.Score)
		}
		fmt.Fprintln(w)
		printHighlights(w, doc.Highlights)
	}
	return nil
}

func printHighlights(w io.Writer, highlights map[string][]string) {
	for field, fragments := range highlights {
		for _, f := range fragments {
			fmt.Fprintf(w, "     %s: %s\n", field, f)
		}
	}
}

func label(doc biosearch.Document) string {
	for _, f := range displayFields {
		if s, ok := doc.Fields[f].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func printBuckets(c *cli.Command, buckets []biosearch.FacetBucket) error {
	if c.Bool("json") {
		return writeJSON(c, buckets)
	}

	w := c.Root().Writer
	if len(buckets) == 0 {
		_, err := fmt.Fprintln(w, "No tags found")
		return err
	}
	for _, b := range buckets {
		fmt.Fprintf(w, "%6d  %v\n", b.Count, b.Value)
	}
	return nil
}
