package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WillyV3/todobi/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the task list as JSON, CSV or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			if format == "" {
				format = formatFromPath(output)
			}

			var w io.Writer = a.stdout
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			report := export.Report{
				Tasks:  a.engine.Tasks(),
				Colors: a.engine.Colors(),
				Now:    a.engine.Now(),
			}
			if err := export.Write(w, export.Format(format), report); err != nil {
				return err
			}
			if f, ok := w.(*os.File); ok && f != os.Stdout {
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(a.stderr, "Exported %d tasks to %s\n", len(report.Tasks), output)
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "", "json, csv or pdf (default from the output extension, else json)")
	cmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	return cmd
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return string(export.FormatPDF)
	case ".csv":
		return string(export.FormatCSV)
	default:
		return string(export.FormatJSON)
	}
}
