// Command topics-export extracts Horizon Europe topics from a work programme
// and writes them as xlsx, csv, json or yaml.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/a3tai/horizon-topics/internal/config"
	"github.com/a3tai/horizon-topics/internal/export"
	"github.com/a3tai/horizon-topics/internal/topics"
)

var version = "dev"

func newApp() *cli.App {
	inputFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "work programme PDF, or a .txt file with its text",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "lookahead",
			Value: topics.DefaultLookahead,
			Usage: "lines after a section code searched for topic markers",
		},
		&cli.StringFlag{
			Name:  "stopmatch",
			Value: string(topics.StopPrefix),
			Usage: "section stop keyword matching: prefix or contains",
		},
		&cli.Int64Flag{
			Name:  "maxfilesize",
			Value: config.DefaultMaxFileSize,
			Usage: "maximum PDF file size in bytes",
		},
	}

	filterFlags := []cli.Flag{
		&cli.StringSliceFlag{Name: "type", Usage: "keep topics with this type of action (repeatable)"},
		&cli.StringSliceFlag{Name: "call", Usage: "keep topics of this call (repeatable)"},
		&cli.StringSliceFlag{Name: "trl", Usage: "keep topics with this TRL (repeatable)"},
		&cli.StringSliceFlag{Name: "destination", Usage: "keep topics of this destination (repeatable)"},
		&cli.Float64Flag{Name: "min-budget", Usage: "minimum budget per project in EUR"},
		&cli.Float64Flag{Name: "max-budget", Usage: "maximum budget per project in EUR"},
		&cli.StringFlag{Name: "deadline-from", Usage: "earliest deadline"},
		&cli.StringFlag{Name: "deadline-to", Usage: "latest deadline"},
		&cli.StringFlag{Name: "keyword", Aliases: []string{"k"}, Usage: "keyword that must appear in any field"},
	}

	outputFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   string(export.FormatXLSX),
			Usage:   "output format: xlsx, csv, json or yaml",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file (defaults to horizon_topics.<format> in the current directory, '-' for stdout)",
		},
	}

	return &cli.App{
		Name:    "topics-export",
		Usage:   "extract funding topics from Horizon Europe work programmes",
		Version: version,

		// Slice flags are repeated, never comma-split: destination titles
		// contain commas.
		DisableSliceFlagSeparator: true,

		Commands: []*cli.Command{
			{
				Name:   "extract",
				Usage:  "extract topics and write them to a file",
				Flags:  concat(inputFlags, filterFlags, outputFlags),
				Action: ExtractAction,
			},
			{
				Name:   "facets",
				Usage:  "print the filter values found in a document as yaml",
				Flags:  inputFlags,
				Action: FacetsAction,
			},
		},
	}
}

func concat(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
