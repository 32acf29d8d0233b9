package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/skelsey/tes3io/pkg/esm"
)

func inspectCmd() *cli.Command {
	var (
		path        string
		showRecords bool
		showMasters bool
		recordLimit int
		tagFilter   string
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Inspect the contents of a plugin, master or save file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to .esp/.esm/.ess file",
				Destination: &path,
				Required:    true,
			},
			&cli.BoolFlag{Name: "records", Usage: "list individual records", Destination: &showRecords},
			&cli.BoolFlag{Name: "masters", Usage: "list master-file dependencies", Destination: &showMasters},
			&cli.IntFlag{Name: "records-limit", Usage: "limit record listing (0 = no limit)", Value: 50, Destination: &recordLimit},
			&cli.StringFlag{Name: "tag", Usage: "only list records with this mark", Destination: &tagFilter},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			stat, err := os.Stat(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: stat %q: %v", path, err), 1)
			}
			if stat.IsDir() {
				return cli.Exit("error: tes3io inspect expects a file", 1)
			}

			f, err := esm.Open(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open %s: %v", path, err), 1)
			}

			fmt.Printf("TES3 Inspect: %s\n", path)
			fmt.Printf("File: %s (%s)\n", filepath.Base(path), formatBytes(uint64(stat.Size())))
			printHeader(f.Header)

			if showMasters || len(f.Header.Refs) > 0 {
				printMasters(f.Header.Refs)
			}

			printRecordSummary(f.Records)

			if showRecords {
				printRecords(f.Records, tagFilter, recordLimit)
			}
			return nil
		},
	}
}

func printHeader(h esm.FileHeader) {
	section("Header")
	row("type", h.Type.String())
	row("version", fmt.Sprintf("0x%08X", h.Version))
	row("author", h.Author)
	row("description", strings.Join(h.Description, " / "))
	rowInt("num_records", int(h.NumRecords))
	rowInt("masters", len(h.Refs))
}

func printMasters(refs []esm.FileRef) {
	section("Masters")
	if len(refs) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, ref := range refs {
		fmt.Printf("%-32s %s\n", ref.Name, formatBytes(ref.Size))
	}
}

func printRecordSummary(records []esm.Record) {
	section("Records")
	rowInt("total", len(records))

	counts := map[string]int{}
	fields := map[string]int{}
	for _, rec := range records {
		tag := rec.Tag.String()
		counts[tag]++
		fields[tag] += len(rec.Fields)
	}
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Printf("%-12s %6d records %6d fields\n", tag, counts[tag], fields[tag])
	}
}

func printRecords(records []esm.Record, filter string, limit int) {
	section("Record Listing")
	printed := 0
	for _, rec := range records {
		tag := rec.Tag.String()
		if filter != "" && tag != filter {
			continue
		}
		name := recordName(rec)
		line := fmt.Sprintf("%-8s fields=%-3d", tag, len(rec.Fields))
		if rec.Flags != 0 {
			line += fmt.Sprintf(" flags=0x%X", rec.Flags)
		}
		if name != "" {
			line += " " + name
		}
		fmt.Println(line)
		printed++
		if limit > 0 && printed >= limit {
			break
		}
	}
	if limit > 0 && printed >= limit && printed < len(records) {
		fmt.Printf("... (%d shown of %d)\n", printed, len(records))
	}
}

// recordName picks the record's NAME field when it is textual.
func recordName(rec esm.Record) string {
	for _, f := range rec.Fields {
		if f.Tag != esm.NAME {
			continue
		}
		if s, ok := f.Data.(esm.StringData); ok {
			return s.Value
		}
		return ""
	}
	return ""
}

func section(title string) {
	line := strings.Repeat("-", len(title)+8)
	fmt.Printf("\n%s\n--- %s ---\n%s\n", line, title, line)
}

func row(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%-16s %s\n", label+":", value)
}

func rowInt(label string, v int) {
	if v == 0 {
		return
	}
	row(label, fmt.Sprintf("%d", v))
}

func formatBytes(b uint64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.2f GiB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.2f MiB", float64(b)/float64(mb))
	case b >= kb:
		return fmt.Sprintf("%.2f KiB", float64(b)/float64(kb))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
