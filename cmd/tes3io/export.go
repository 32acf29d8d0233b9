package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/skelsey/tes3io/internal/logger"
	"github.com/skelsey/tes3io/pkg/esmjson"
)

func exportCmd(cfg Config) *cli.Command {
	var (
		inPath       string
		outPath      string
		unixNewlines bool
		trimTails    bool
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Convert a plugin file to an editable JSON document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to .esp/.esm/.ess file",
				Destination: &inPath,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output path (default: stdout)",
				Destination: &outPath,
			},
			&cli.BoolFlag{Name: "unix-newlines", Usage: "split multi-line text on \\n instead of \\r\\n", Destination: &unixNewlines},
			&cli.BoolFlag{Name: "trim-tails", Usage: "strip trailing NULs from adjustable strings", Destination: &trimTails},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)
			codec := cfg.codec(c.IsSet, unixNewlines, trimTails)

			f, err := codec.Open(inPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open %s: %v", inPath, err), 1)
			}
			doc, err := esmjson.Marshal(f)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: export %s: %v", inPath, err), 1)
			}

			if outPath == "" {
				fmt.Println(string(doc))
				return nil
			}
			if err := os.WriteFile(outPath, append(doc, '\n'), 0o644); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %s: %v", outPath, err), 1)
			}
			log.Info("exported", "from", inPath, "to", outPath, "records", len(f.Records))
			return nil
		},
	}
}
