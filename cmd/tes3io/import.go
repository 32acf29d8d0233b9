package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/skelsey/tes3io/internal/logger"
	"github.com/skelsey/tes3io/pkg/esmjson"
)

func importCmd(cfg Config) *cli.Command {
	var (
		inPath       string
		outPath      string
		unixNewlines bool
		trimTails    bool
	)

	return &cli.Command{
		Name:  "import",
		Usage: "Build a plugin file from a JSON document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to JSON document",
				Destination: &inPath,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output path for the binary file",
				Destination: &outPath,
				Required:    true,
			},
			&cli.BoolFlag{Name: "unix-newlines", Usage: "join multi-line text with \\n instead of \\r\\n", Destination: &unixNewlines},
			&cli.BoolFlag{Name: "trim-tails", Usage: "strip trailing NULs from adjustable strings", Destination: &trimTails},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)
			codec := cfg.codec(c.IsSet, unixNewlines, trimTails)

			doc, err := os.ReadFile(inPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %s: %v", inPath, err), 1)
			}
			f, err := esmjson.Unmarshal(doc)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: parse %s: %v", inPath, err), 1)
			}
			if err := codec.WriteFile(outPath, f); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %s: %v", outPath, err), 1)
			}
			log.Info("imported", "from", inPath, "to", outPath, "records", len(f.Records))
			return nil
		},
	}
}
