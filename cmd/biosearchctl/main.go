// Command biosearchctl queries the biography and story indexes and manages
// stored blobs from the command line.
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/biosearch/internal/config"
	"github.com/kailas-cloud/biosearch/internal/version"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "biosearchctl",
		Usage:   "Search biographies and stories, inspect compiled queries, manage blobs",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "Configuration environment (local, dev, prod)",
				Value: config.GetEnv(),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path, overrides --env",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results as JSON",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log every SDK operation to stderr",
			},
		},
		Commands: []*cli.Command{
			compileCommand(),
			searchCommand(),
			bornCommand(),
			byIDsCommand(),
			byTagsCommand(),
			tagsCommand(),
			countCommand(),
			blobCommand(),
		},
	}
}
