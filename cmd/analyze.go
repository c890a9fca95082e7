package cmd

import (
	"fmt"
	"os"

	"github.com/joescharf/revscore/internal/export"
	"github.com/joescharf/revscore/internal/loader"
	"github.com/joescharf/revscore/internal/models"
	"github.com/joescharf/revscore/internal/output"
	"github.com/joescharf/revscore/internal/report"
)

// analyzeRun handles bare `revscore`: run the pipeline and write the report.
func analyzeRun() error {
	s := loadSettings()

	ui.Info("Collecting reviews for %d candidates from %s", len(s.Candidates), s.Layout.BaseDir)
	res := runPipeline(s, logger)
	printLoadSummary(res.Records)

	fmt.Fprintln(ui.Out)
	printCandidateCounts(res)

	fmt.Fprintln(ui.Out)
	ui.Info("Composite ranking:")
	if err := export.Table(ui, res.Result); err != nil {
		ui.Warning("render ranking table: %v", err)
	}
	fmt.Fprintln(ui.Out)

	if dryRun {
		ui.DryRunMsg("Would write report: %s", s.ReportPath)
		return nil
	}

	if err := report.New(s.Report).WriteFile(s.ReportPath, res.Result, res.Meta); err != nil {
		return err
	}

	if info, err := os.Stat(s.ReportPath); err == nil {
		ui.Success("Report written: %s (%d bytes)", s.ReportPath, info.Size())
	} else {
		ui.Success("Report written: %s", s.ReportPath)
	}
	return nil
}

func printLoadSummary(records []loader.Records) {
	for _, rec := range records {
		ui.VerboseLog("%s (%s)", rec.Candidate.Name, rec.Candidate.Hash)
		for _, src := range models.Sources {
			e := rec.Entries[src]
			switch e.Status {
			case loader.StatusFound:
				ui.VerboseLog("%s", output.SourceStatus(true, fmt.Sprintf("%s: %s", src.Label(), e.Path)))
			case loader.StatusMalformed:
				ui.VerboseLog("%s", output.SourceStatus(false, fmt.Sprintf("%s: malformed (%s)", src.Label(), e.Path)))
			default:
				ui.VerboseLog("%s", output.SourceStatus(false, fmt.Sprintf("%s: not found", src.Label())))
			}
		}
	}
}

func printCandidateCounts(res *pipelineResult) {
	table := ui.Table([]string{"Candidate", "Self", "Independent", "Security", "Bias"})
	for i, cs := range res.Result.Stats {
		c := res.Result.Comparisons[i]
		table.Append([]string{
			output.Cyan(cs.Candidate),
			fmt.Sprintf("%d (%.2f)", cs.Self.Total, cs.Self.AvgConfidence),
			fmt.Sprintf("%d (%.2f)", cs.Independent.Total, cs.Independent.AvgConfidence),
			fmt.Sprintf("%d (%.2f)", cs.Security.Total, cs.Security.AvgConfidence),
			fmt.Sprintf("%+d %s", c.Diff, output.BiasColor(c.Bias)),
		})
	}
	table.Render()
}
