// internal/cli/export.go
package mteb

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mwiater/mteb/internal/logging"
	"github.com/mwiater/mteb/internal/report"
	"github.com/mwiater/mteb/internal/tasks"
	"github.com/mwiater/mteb/internal/util"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

// exportCmd represents the 'export' command group.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Group commands for exporting task data",
	Long:  `The 'export' command groups subcommands that write task information to files.`,
}

// exportCatalogueCmd implements 'export catalogue'.
var exportCatalogueCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "Export the metadata of every registered task",
	Long:  `Export the metadata of every registered task as JSON, YAML, Markdown or HTML. Without --out the catalogue is written to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExportCatalogue(cmd.OutOrStdout(), tasks.Default, exportFormat, exportOut)
	},
}

func init() {
	exportCatalogueCmd.Flags().StringVar(&exportFormat, "format", "", "json, yaml, markdown or html (default: from --out extension, else json)")
	exportCatalogueCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file")
	exportCmd.AddCommand(exportCatalogueCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportCatalogue(out io.Writer, reg *tasks.Registry, formatName, path string) error {
	format := report.FormatJSON
	switch {
	case formatName != "":
		f, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}
		format = f
	case path != "":
		format = report.FormatFromPath(path)
	}

	all := reg.All()
	if path == "" {
		return report.ExportCatalogue(out, all, format)
	}
	var buf bytes.Buffer
	if err := report.ExportCatalogue(&buf, all, format); err != nil {
		return err
	}
	if err := util.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write catalogue: %w", err)
	}
	logging.LogEvent("catalogue of %d task(s) written to %s (%s)", len(all), path, format)
	return nil
}
