package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/skelsey/tes3io/internal/logger"
)

func main() {
	cfg := LoadConfig()
	log := logger.Text(os.Stderr, logger.ParseLevel(cfg.LogLevel))
	ctx := logger.WithContext(context.Background(), log)

	app := &cli.Command{
		Name:  "tes3io",
		Usage: "Inspect, validate and convert TES3 plugin files",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			inspectCmd(),
			validateCmd(),
			exportCmd(cfg),
			importCmd(cfg),
			serveCmd(cfg),
			versionCmd(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
