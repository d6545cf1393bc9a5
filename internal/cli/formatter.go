package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/JichouP/languatage/internal/languatage"
)

// PrintJSON outputs statistics in JSON format.
func PrintJSON(stats *languatage.Stats, writer io.Writer) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs statistics in human-readable table format.
// Percentages are rounded to two decimals and sizes are grouped with
// thousands separators; the engine itself never rounds.
func PrintTable(stats *languatage.Stats, writer io.Writer) error {
	if len(stats.Languages) == 0 {
		_, err := fmt.Fprintln(writer, "No files matched any language rule.")

		return err
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(writer)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	tbl.AppendHeader(table.Row{"Language", "Percentage", "Size"})

	for _, stat := range stats.Languages {
		tbl.AppendRow(table.Row{
			stat.Language,
			fmt.Sprintf("%.2f%%", stat.Percentage),
			humanize.Comma(int64(stat.Bytes)), //nolint:gosec // File size totals fit in int64
		})
	}

	tbl.AppendFooter(table.Row{
		fmt.Sprintf("%d files", stats.FileCount),
		"",
		humanize.Comma(int64(stats.TotalBytes)), //nolint:gosec // File size totals fit in int64
	})

	tbl.Render()

	return nil
}
