package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/joescharf/revscore/internal/analysis"
	"github.com/joescharf/revscore/internal/output"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "table"}

// Document is the JSON export envelope.
type Document struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	*analysis.Result
}

// Write exports res in the named format.
func Write(ui *output.UI, format string, doc Document) error {
	switch format {
	case "json":
		return JSON(ui.Out, doc)
	case "csv":
		return CSV(ui.Out, doc.Result)
	case "table":
		return Table(ui, doc.Result)
	default:
		return fmt.Errorf("unknown format: %s (use: json, csv, table)", format)
	}
}

// JSON writes doc as indented JSON.
func JSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

var csvHeader = []string{
	"Rank", "Candidate",
	"SelfIssues", "IndependentIssues", "SecurityIssues",
	"SelfConfidence", "IndependentConfidence", "SecurityConfidence",
	"Diff", "Bias", "BiasRatio",
	"SelfScore", "IndependentScore", "SecurityScore", "Composite",
}

// CSV writes one row per candidate in lexicographic order.
func CSV(w io.Writer, res *analysis.Result) error {
	ranks := overallRanks(res)

	cw := csv.NewWriter(w)
	cw.Write(csvHeader)
	for i, st := range res.Stats {
		cmp := res.Comparisons[i]
		o := res.Overall[i]
		cw.Write([]string{
			strconv.Itoa(ranks[st.Candidate]),
			st.Candidate,
			strconv.Itoa(st.Self.Total),
			strconv.Itoa(st.Independent.Total),
			strconv.Itoa(st.Security.Total),
			ftoa(st.Self.AvgConfidence),
			ftoa(st.Independent.AvgConfidence),
			ftoa(st.Security.AvgConfidence),
			strconv.Itoa(cmp.Diff),
			string(cmp.Bias),
			ftoa(cmp.BiasRatio),
			ftoa(o.SelfScore),
			ftoa(o.IndependentScore),
			ftoa(o.SecurityScore),
			ftoa(o.Composite),
		})
	}
	cw.Flush()
	return cw.Error()
}

// Table prints the composite ranking as a console table.
func Table(ui *output.UI, res *analysis.Result) error {
	table := ui.Table([]string{"Rank", "Candidate", "Self", "Quality", "Security", "Composite", "Bias"})

	bias := make(map[string]string, len(res.Comparisons))
	for _, c := range res.Comparisons {
		bias[c.Candidate] = output.BiasColor(c.Bias)
	}

	for i, o := range res.OverallRanking {
		table.Append([]string{
			strconv.Itoa(i + 1),
			output.Cyan(o.Candidate),
			fmt.Sprintf("%.1f", o.SelfScore),
			fmt.Sprintf("%.1f", o.IndependentScore),
			fmt.Sprintf("%.1f", o.SecurityScore),
			output.ScoreColor(o.Composite),
			bias[o.Candidate],
		})
	}
	return table.Render()
}

func overallRanks(res *analysis.Result) map[string]int {
	ranks := make(map[string]int, len(res.OverallRanking))
	for i, o := range res.OverallRanking {
		ranks[o.Candidate] = i + 1
	}
	return ranks
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
