package main

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	biosearch "github.com/kailas-cloud/biosearch/pkg/sdk"
)

func blobCommand() *cli.Command {
	return &cli.Command{
		Name:  "blob",
		Usage: "Manage stored transcripts and images",
		Commands: []*cli.Command{
			{
				Name:      "put",
				Usage:     "Upload a file",
				ArgsUsage: "CONTAINER NAME FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "content-type", Usage: "Content type, detected from the file when empty"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 3 {
						return fmt.Errorf("usage: blob put CONTAINER NAME FILE")
					}
					path := c.Args().Get(2)
					data, err := os.ReadFile(filepath.Clean(path))
					if err != nil {
						return fmt.Errorf("reading %s: %w", path, err)
					}
					ct := c.String("content-type")
					if ct == "" {
						ct = detectContentType(path, data)
					}
					return withBlobs(ctx, c, func(blobs *biosearch.BlobService) error {
						return blobs.Put(ctx, c.Args().Get(0), c.Args().Get(1), biosearch.Blob{Data: data, ContentType: ct})
					})
				},
			},
			{
				Name:      "get",
				Usage:     "Download a blob to stdout or --out",
				ArgsUsage: "CONTAINER NAME",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 2 {
						return fmt.Errorf("usage: blob get CONTAINER NAME")
					}
					return withBlobs(ctx, c, func(blobs *biosearch.BlobService) error {
						b, err := blobs.Get(ctx, c.Args().Get(0), c.Args().Get(1))
						if err != nil {
							return err
						}
						if out := c.String("out"); out != "" {
							return os.WriteFile(filepath.Clean(out), b.Data, 0o600)
						}
						_, err = c.Root().Writer.Write(b.Data)
						return err
					})
				},
			},
			{
				Name:      "list",
				Usage:     "List blob names in a container",
				ArgsUsage: "CONTAINER",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("usage: blob list CONTAINER")
					}
					return withBlobs(ctx, c, func(blobs *biosearch.BlobService) error {
						names, err := blobs.List(ctx, c.Args().First())
						if err != nil {
							return err
						}
						if c.Bool("json") {
							return writeJSON(c, names)
						}
						for _, n := range names {
							fmt.Fprintln(c.Root().Writer, n)
						}
						return nil
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a blob",
				ArgsUsage: "CONTAINER NAME",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 2 {
						return fmt.Errorf("usage: blob delete CONTAINER NAME")
					}
					return withBlobs(ctx, c, func(blobs *biosearch.BlobService) error {
						return blobs.Delete(ctx, c.Args().Get(0), c.Args().Get(1))
					})
				},
			},
		},
	}
}

func withBlobs(ctx context.Context, c *cli.Command, fn func(*biosearch.BlobService) error) error {
	client, err := openClient(ctx, c, true)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := fn(client.Blobs()); err != nil {
		if errors.Is(err, biosearch.ErrBlobsNotConfigured) {
			return fmt.Errorf("blob commands need database.addrs in the configuration")
		}
		return err
	}
	return nil
}

func detectContentType(path string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
