package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	biosearch "github.com/kailas-cloud/biosearch/pkg/sdk"
)

func facetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "gender", Usage: "Gender facet"},
		&cli.IntFlag{Name: "birth-decade", Usage: "Birth decade start year, e.g. 1950"},
		&cli.StringSliceFlag{Name: "maker-category", Usage: "Maker category (repeatable, all must match)"},
		&cli.StringSliceFlag{Name: "job-type", Usage: "Job type (repeatable, all must match)"},
		&cli.StringFlag{Name: "last-initial", Usage: "First letter of the last name"},
		&cli.StringFlag{Name: "biography-id", Usage: "Parent biography of stories"},
		&cli.StringSliceFlag{Name: "tag", Usage: "Story tag (repeatable, all must match)"},
	}
}

func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "page", Usage: "1-based page number"},
		&cli.IntFlag{Name: "page-size", Usage: "Results per page"},
		&cli.StringFlag{Name: "sort", Usage: "Sort field"},
		&cli.BoolFlag{Name: "desc", Usage: "Sort descending"},
	}
}

func textFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "entity", Usage: "biography or story", Value: string(biosearch.EntityBiography)},
		&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Free text, empty or * browses everything"},
		&cli.StringSliceFlag{Name: "field", Usage: "Field to search (repeatable)"},
		&cli.IntFlag{Name: "interview-year-from", Usage: "Earliest interview year"},
		&cli.IntFlag{Name: "interview-year-to", Usage: "Latest interview year"},
		&cli.BoolFlag{Name: "highlight", Usage: "Highlight matched terms"},
	}
	flags = append(flags, facetFlags()...)
	return append(flags, listFlags()...)
}

func facetsFrom(c *cli.Command) biosearch.Facets {
	f := biosearch.Facets{
		Gender:          c.String("gender"),
		MakerCategories: c.StringSlice("maker-category"),
		JobTypes:        c.StringSlice("job-type"),
		LastInitial:     c.String("last-initial"),
		ParentBiography: c.String("biography-id"),
		Tags:            c.StringSlice("tag"),
	}
	if c.IsSet("birth-decade") {
		d := c.Int("birth-decade")
		f.BirthDecade = &d
	}
	return f
}

func pagingFrom(c *cli.Command) (biosearch.Paging, biosearch.Sort) {
	return biosearch.Paging{Page: c.Int("page"), PageSize: c.Int("page-size")},
		biosearch.Sort{Field: c.String("sort"), Descending: c.Bool("desc")}
}

func entityFrom(c *cli.Command) (biosearch.Entity, error) {
	switch e := biosearch.Entity(strings.ToLower(c.String("entity"))); e {
	case biosearch.EntityBiography, biosearch.EntityStory:
		return e, nil
	default:
		return "", fmt.Errorf("unknown entity %q (want biography or story)", c.String("entity"))
	}
}

func textQueryFrom(c *cli.Command) biosearch.TextQuery {
	paging, sort := pagingFrom(c)
	return biosearch.TextQuery{
		Text:              c.String("query"),
		SearchFields:      c.StringSlice("field"),
		Facets:            facetsFrom(c),
		InterviewYearFrom: c.Int("interview-year-from"),
		InterviewYearTo:   c.Int("interview-year-to"),
		Paging:            paging,
		Sort:              sort,
		Highlight:         c.Bool("highlight"),
	}
}

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:  "compile",
		Usage: "Print the request body a text search would send, without sending it",
		Flags: textFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			entity, err := entityFrom(c)
			if err != nil {
				return err
			}
			client, err := openClient(ctx, c, false)
			if err != nil {
				return err
			}
			defer client.Close()

			body, err := client.Compile(entity, textQueryFrom(c))
			if err != nil {
				return err
			}
			return printRaw(c, body)
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Free-text search over biographies or stories",
		Flags: textFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			entity, err := entityFrom(c)
			if err != nil {
				return err
			}
			client, err := openClient(ctx, c, false)
			if err != nil {
				return err
			}
			defer client.Close()

			var page biosearch.Page
			if entity == biosearch.EntityStory {
				page, err = client.Stories().Search(ctx, textQueryFrom(c))
			} else {
				page, err = client.Biographies().Search(ctx, textQueryFrom(c))
			}
			if err != nil {
				return err
			}
			return printPage(c, page)
		},
	}
}

func bornCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "window", Usage: "day, week or month", Value: string(biosearch.WindowDay)},
		&cli.StringFlag{Name: "date", Usage: "Anchor date YYYY-MM-DD, default today"},
	}
	flags = append(flags, facetFlags()...)
	flags = append(flags, listFlags()...)

	return &cli.Command{
		Name:  "born",
		Usage: "Biographies born in the day, week or month of a date",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := openClient(ctx, c, false)
			if err != nil {
				return err
			}
			defer client.Close()

			paging, sort := pagingFrom(c)
			page, err := client.Biographies().Born(ctx, biosearch.DateQuery{
				Window: biosearch.Window(c.String("window")),
				Date:   c.String("date"),
				Facets: facetsFrom(c),
				Paging: paging,
				Sort:   sort,
			})
			if err != nil {
				return err
			}
			return printPage(c, page)
		},
	}
}

func byIDsCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch documents by ID, in the order given",
		ArgsUsage: "ID [ID...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "entity", Usage: "biography or story", Value: string(biosearch.EntityBiography)},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			entity, err := entityFrom(c)
			if err != nil {
				return err
			}
			ids := c.Args().Slice()
			if len(ids) == 0 {
				return fmt.Errorf("at least one ID is required")
			}
			client, err := openClient(ctx, c, false)
			if err != nil {
				return err
			}
			defer client.Close()

			var page biosearch.Page
			if entity == biosearch.EntityStory {
				page, err = client.Stories().ByIDs(ctx, ids)
			} else {
				page, err = client.Biographies().ByIDs(ctx, ids)
			}
			if err != nil {
				return err
			}
			return printPage(c, page)
		},
	}
}

func byTagsCommand() *cli.Command {
	flags := append(facetFlags(), listFlags()...)
	return &cli.Command{
		Name:  "by-tags",
		Usage: "Stories carrying every --tag",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := openClient(ctx, c, false)
			if err != nil {
				return err
			}
			defer client.Close()

			paging, sort := pagingFrom(c)
			page, err := client.Stories().ByTags(ctx, biosearch.TagQuery{
				Facets: facetsFrom(c),
				Paging: paging,
				Sort:   sort,
			})
			if err != nil {
				return err
			}
			return printPage(c, page)
		},
	}
}

func tagsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: "Story counts per tag under the given facets",
		Flags: facetFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := openClient(ctx, c, true)
			if err != nil {
				return err
			}
			defer client.Close()

			buckets, err := client.Stories().TagCounts(ctx, facetsFrom(c))
			if err != nil {
				return err
			}
			return printBuckets(c, buckets)
		},
	}
}

func countCommand() *cli.Command {
	return &cli.Command{
		Name:  "count",
		Usage: "Number of documents in an index",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "entity", Usage: "biography or story", Value: string(biosearch.EntityBiography)},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			entity, err := entityFrom(c)
			if err != nil {
				return err
			}
			client, err := openClient(ctx, c, false)
			if err != nil {
				return err
			}
			defer client.Close()

			var n int64
			if entity == biosearch.EntityStory {
				n, err = client.Stories().Count(ctx)
			} else {
				n, err = client.Biographies().Count(ctx)
			}
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return writeJSON(c, map[string]int64{"count": n})
			}
			_, err = fmt.Fprintln(c.Root().Writer, n)
			return err
		},
	}
}
