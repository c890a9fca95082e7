package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joescharf/revscore/internal/export"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export computed scores as JSON, CSV, or a table",
	Long: `Run the analysis and write the computed statistics, comparisons,
scores and rankings to stdout without touching the report file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportRun()
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, csv, table")
	rootCmd.AddCommand(exportCmd)
}

func exportRun() error {
	res := runPipeline(loadSettings(), logger)
	return export.Write(ui, exportFormat, export.Document{
		RunID:       res.Meta.RunID,
		GeneratedAt: res.Meta.GeneratedAt,
		Result:      res.Result,
	})
}
