package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/biosearch/internal/config"
	biosearch "github.com/kailas-cloud/biosearch/pkg/sdk"
)

func writeConfig(t *testing.T, endpoint, extra string) string {
	t.Helper()
	t.Setenv("DOTENV", filepath.Join(t.TempDir(), "absent.env"))

	body := fmt.Sprintf("http:\n  port: 8080\nsearch:\n  endpoint: %s\n  biography_index: bios\n  story_index: tales\n%s", endpoint, extra)
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(context.Background(), append([]string{"biosearchctl"}, args...))
	return out.String(), err
}

func TestCompile_PrintsRequestBody(t *testing.T) {
	cfg := writeConfig(t, "http://localhost:7700", "  forced_facets:\n    maker_categories: ScienceMakers\n")

	out, err := run(t, "--config", cfg, "compile", "--entity", "story", "-q", "jazz", "--gender", "Female")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if body["search"] != "jazz" {
		t.Errorf("search = %v", body["search"])
	}
	filter, _ := body["filter"].(string)
	if !strings.Contains(filter, "gender eq 'Female'") ||
		!strings.Contains(filter, "makerCategories/any(x: x eq 'ScienceMakers')") {
		t.Errorf("filter = %q", filter)
	}
}

func TestCompile_UnknownEntity(t *testing.T) {
	cfg := writeConfig(t, "http://localhost:7700", "")

	if _, err := run(t, "--config", cfg, "compile", "--entity", "person"); err == nil {
		t.Fatal("expected error for unknown entity")
	}
}

func TestSearch_PrintsHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/indexes/tales/docs/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"@odata.count": 7, "value": [{"@search.score": 2.5, "id": "S1", "title": "Growing up in Harlem"}]}`))
	}))
	defer srv.Close()
	cfg := writeConfig(t, srv.URL, "")

	out, err := run(t, "--config", cfg, "search", "--entity", "story", "-q", "harlem")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Showing 1 of 7 results") {
		t.Errorf("missing summary line:\n%s", out)
	}
	if !strings.Contains(out, "1. S1  Growing up in Harlem  (score 2.50)") {
		t.Errorf("missing hit line:\n%s", out)
	}
}

func TestBorn_SendsDateFilter(t *testing.T) {
	filters := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Filter string `json:"filter"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		filters <- body.Filter
		_, _ = w.Write([]byte(`{"@odata.count": 0, "value": []}`))
	}))
	defer srv.Close()
	cfg := writeConfig(t, srv.URL, "")

	out, err := run(t, "--config", cfg, "born", "--date", "2024-07-04")
	if err != nil {
		t.Fatalf("born: %v", err)
	}
	if got := <-filters; !strings.Contains(got, "birthMonth eq 7 and birthDay eq 4") {
		t.Errorf("filter = %q", got)
	}
	if !strings.Contains(out, "No results found") {
		t.Errorf("output = %q", out)
	}
}

func TestCount_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/indexes/bios/docs/$count" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte("3412"))
	}))
	defer srv.Close()
	cfg := writeConfig(t, srv.URL, "")

	out, err := run(t, "--config", cfg, "--json", "count")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if strings.TrimSpace(out) != "{\n  \"count\": 3412\n}" {
		t.Errorf("output = %q", out)
	}
}

func TestGet_RequiresIDs(t *testing.T) {
	cfg := writeConfig(t, "http://localhost:7700", "")

	if _, err := run(t, "--config", cfg, "get"); err == nil {
		t.Fatal("expected error without IDs")
	}
}

func TestBlob_WithoutDatabase(t *testing.T) {
	cfg := writeConfig(t, "http://localhost:7700", "")

	_, err := run(t, "--config", cfg, "blob", "list", "transcripts")
	if err == nil || !strings.Contains(err.Error(), "database.addrs") {
		t.Fatalf("expected database error, got %v", err)
	}
}

func TestFacetsFrom(t *testing.T) {
	var got biosearch.Facets
	cmd := byTagsCommand()
	cmd.Name = "capture"
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		got = facetsFrom(c)
		return nil
	}
	app := newApp()
	app.Commands = []*cli.Command{cmd}

	err := app.Run(context.Background(), []string{"biosearchctl", "capture",
		"--tag", "Music", "--tag", "Family", "--birth-decade", "1940", "--last-initial", "B"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(got.Tags) != 2 || got.Tags[1] != "Family" {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.BirthDecade == nil || *got.BirthDecade != 1940 {
		t.Errorf("birth decade = %v", got.BirthDecade)
	}
	if got.LastInitial != "B" || got.Gender != "" {
		t.Errorf("facets = %+v", got)
	}
}

func TestFacetsFrom_BirthDecadeUnset(t *testing.T) {
	var got biosearch.Facets
	cmd := tagsCommand()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		got = facetsFrom(c)
		return nil
	}
	if err := cmd.Run(context.Background(), []string{"tags", "--gender", "Male"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.BirthDecade != nil || got.Gender != "Male" {
		t.Errorf("facets = %+v", got)
	}
}

func TestClientOptions_StoreOnlyWhenAsked(t *testing.T) {
	cfg := config.Config{}
	cfg.Search.Endpoint = "http://localhost:7700"
	cfg.Database.Addrs = []string{"localhost:6379"}
	cfg.Cache.TagCountsTTLSec = 60

	without := clientOptions(cfg, false)
	with := clientOptions(cfg, true)
	if len(with) != len(without)+2 {
		t.Errorf("expected redis and cache options, got %d vs %d", len(with), len(without))
	}
}
