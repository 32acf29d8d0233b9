package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/skelsey/tes3io/internal/logger"
	"github.com/skelsey/tes3io/pkg/esm"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check that files decode cleanly, reporting the failure offset when they do not",
		ArgsUsage: "FILE...",
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("error: validate needs at least one file", 1)
			}

			failed := 0
			for _, path := range paths {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Printf("%s: %v\n", path, err)
					failed++
					continue
				}
				if _, err := esm.Decode(data); err != nil {
					fmt.Printf("%s: %s\n", path, describeFailure(err))
					failed++
					continue
				}
				log.Debug("validated", "path", path, "bytes", len(data))
				fmt.Printf("%s: ok\n", path)
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d files failed", failed, len(paths)), 1)
			}
			return nil
		},
	}
}

func describeFailure(err error) string {
	var (
		end  *esm.UnexpectedEndError
		size *esm.SizeMismatchError
		sig  *esm.SignatureMismatchError
	)
	switch {
	case errors.Is(err, esm.ErrFormatNotRecognized):
		return "not a TES3 file"
	case errors.As(err, &end):
		return fmt.Sprintf("truncated at offset %d (reading %s)", end.Offset, end.Context)
	case errors.As(err, &size):
		return fmt.Sprintf("size mismatch at offset %d (declared %d, consumed %d)", size.Offset, size.Declared, size.Consumed)
	case errors.As(err, &sig):
		return fmt.Sprintf("bad signature at offset %d (expected %s, found %s)", sig.Offset, sig.Expected, sig.Actual)
	default:
		return err.Error()
	}
}
