package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/biosearch/internal/config"
	biosearch "github.com/kailas-cloud/biosearch/pkg/sdk"
)

func loadConfig(c *cli.Command) (config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load(c.String("env"))
}

// openClient builds an SDK client from the configuration. The database is
// only connected when withStore is set.
func openClient(ctx context.Context, c *cli.Command, withStore bool) (*biosearch.Client, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	opts := clientOptions(cfg, withStore)
	if c.Bool("debug") {
		h := slog.NewTextHandler(c.Root().ErrWriter, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, biosearch.WithLogger(slog.New(h)))
	}

	client, err := biosearch.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	return client, nil
}

func clientOptions(cfg config.Config, withStore bool) []biosearch.Option {
	s := cfg.Search
	opts := []biosearch.Option{
		biosearch.WithSearchService(s.Endpoint, s.APIKey),
		biosearch.WithIndexes(s.BiographyIndex, s.StoryIndex),
		biosearch.WithTimeout(s.RequestTimeout()),
		biosearch.WithPageSizes(s.DefaultPageSize, s.MaxPageSize),
		biosearch.WithDefaultSearchFields(s.BiographyDefaultFields, s.StoryDefaultFields),
		biosearch.WithHighlightTags(s.HighlightPreTag, s.HighlightPostTag),
	}
	if s.APIVersion != "" {
		opts = append(opts, biosearch.WithAPIVersion(s.APIVersion))
	}
	if s.TagFacetCount > 0 {
		opts = append(opts, biosearch.WithTagFacetCount(s.TagFacetCount))
	}
	for name, value := range s.ForcedFacets {
		opts = append(opts, biosearch.WithForcedFacet(biosearch.Facet(name), value))
	}
	if s.StrictFacets {
		vocab := make(map[biosearch.Facet][]string, len(s.Vocabulary))
		for name, values := range s.Vocabulary {
			vocab[biosearch.Facet(name)] = values
		}
		opts = append(opts, biosearch.WithStrictFacets(vocab))
	}

	if withStore && len(cfg.Database.Addrs) > 0 {
		db := cfg.Database
		opts = append(opts, biosearch.WithRedisConfig(db.Addrs, db.Username, db.Password, db.DB))
		if ttl := cfg.Cache.TagCountsTTL(); ttl > 0 {
			opts = append(opts, biosearch.WithTagCountCache(ttl))
		}
	}
	// An empty list permits any container.
	opts = append(opts, biosearch.WithBlobContainers(cfg.Blob.Containers...))
	return opts
}
