package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/revscore/internal/analysis"
	"github.com/joescharf/revscore/internal/models"
)

func sampleResult() *analysis.Result {
	return analysis.Analyze([]models.CandidateStats{
		{
			Candidate:   "B",
			Self:        models.Statistics{ByPriority: map[string]int{}},
			Independent: models.Statistics{ByPriority: map[string]int{}},
			Security:    models.Statistics{ByPriority: map[string]int{}},
		},
		{
			Candidate:   "A",
			Self:        models.Statistics{Total: 10, ByPriority: map[string]int{"P1": 4, "P2": 6}},
			Independent: models.Statistics{Total: 5, ByPriority: map[string]int{"PUnknown": 5}},
			Security:    models.Statistics{Total: 0, ByPriority: map[string]int{}, AvgConfidence: 0.9},
		},
	}, analysis.DefaultWeights())
}

func sampleMeta() Meta {
	return Meta{
		GeneratedAt: time.Date(2025, 10, 27, 22, 38, 0, 0, time.UTC),
		RunID:       "01JBCDEFGHJKMNPQRSTVWXYZ00",
		MissingSources: map[string][]models.Source{
			"B": {models.SourceSelf, models.SourceIndependent, models.SourceSecurity},
		},
	}
}

func render(t *testing.T, cfg Config) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, New(cfg).Render(&buf, sampleResult(), sampleMeta()))
	return buf.String()
}

func TestRender_TableRows(t *testing.T) {
	out := render(t, DefaultConfig())

	rows := []string{
		// executive summary
		"| 🥇 | A | 86.0 | 100.0 | 75.0 | 90.0 |",
		"| 🥈 | B | 80.0 | 0.0 | 100.0 | 100.0 |",
		// issue counts
		"| Candidate | Self-review | Independent review | Security review | Total |",
		"| A | 10 | 5 | 0 | 15 |",
		"| B | 0 | 0 | 0 | 0 |",
		// priority breakdown
		"| A | Self-review | P1: 4, P2: 6 | 0.00 |",
		"| A | Independent review | PUnknown: 5 | 0.00 |",
		// bias
		"| A | 10 | 5 | +5 | stricter | 100.0% |",
		"| B | 0 | 0 | +0 | neutral | 0.0% |",
		// security
		"| 🥇 | B | 100.0 | 0 | 0.00 |",
		"| 🥈 | A | 90.0 | 0 | 0.90 |",
		// composite breakdown
		"| A | 100.0 | 75.0 | 90.0 | **86.0** |",
		"| B | 0.0 | 100.0 | 100.0 | **80.0** |",
	}
	for _, row := range rows {
		assert.Contains(t, out, row+"\n")
	}
}

func TestRender_SummaryAndLists(t *testing.T) {
	out := render(t, DefaultConfig())

	assert.Contains(t, out, "- **Self-review mean**: 5.0 issues (median: 5.0)")
	assert.Contains(t, out, "- **Independent review mean**: 2.5 issues (median: 2.5)")
	assert.Contains(t, out, "- **Security review mean**: 0.0 issues (median: 0.0)")

	assert.Contains(t, out, "1. **A**: +5 issues (stricter)")
	lenient := out[strings.Index(out, "**Lenient"):]
	assert.Contains(t, lenient[:80], "_None._")

	assert.Contains(t, out, "🥇 **A**: 86.0 points")
	assert.Contains(t, out, "🥈 **B**: 80.0 points")
	assert.Contains(t, out, "Weights: self-review 20.0%, code quality 40.0%, security 40.0%.")
}

func TestRender_Narrative(t *testing.T) {
	out := render(t, DefaultConfig())

	assert.Contains(t, out, "### Winner: A")
	assert.Contains(t, out, "- **Composite score**: 86.0 points")
	assert.Contains(t, out, "- **Strengths**: accurate self-assessment, high code quality, strong security")

	profileB := out[strings.Index(out, "**B**:\n"):]
	profileB = profileB[:strings.Index(profileB, "\n\n")]
	assert.NotContains(t, profileB, "Thorough self-review")
	assert.Contains(t, profileB, "- High code quality (100 points)")
	assert.Contains(t, profileB, "- Sound security practices (100 points)")

	assert.Contains(t, out, "   - A: composite 86 points, target 70+")
	assert.Contains(t, out, "   - B: composite 80 points, target 70+")
}

func TestRender_DataQualityNote(t *testing.T) {
	out := render(t, DefaultConfig())
	assert.Contains(t, out, "### Data Quality Notes")
	assert.Contains(t, out, "- **B**: no security review record")

	var buf bytes.Buffer
	require.NoError(t, New(DefaultConfig()).Render(&buf, sampleResult(), Meta{}))
	assert.NotContains(t, buf.String(), "Data Quality Notes")
}

func TestRender_SectionOrder(t *testing.T) {
	out := render(t, DefaultConfig())
	sections := []string{
		"## Executive Summary",
		"## 1. Quantitative Comparison",
		"## 2. Self-Review vs Independent Review",
		"## 3. Security Ranking",
		"## 4. Composite Quality Score",
		"### Winner:",
		"### Candidate Profiles",
		"### Needs Improvement",
		"## Metadata",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.NotEqual(t, -1, idx, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestRender_Metadata(t *testing.T) {
	out := render(t, DefaultConfig())
	assert.Contains(t, out, "- **Total reviews**: 6 (2 candidates × 3 review types)")
	assert.Contains(t, out, "- **Review types**: Self-review, Independent review, Security review")
	assert.Contains(t, out, "- **Run ID**: `01JBCDEFGHJKMNPQRSTVWXYZ00`")
	assert.Contains(t, out, "- **Generated**: 2025-10-27T22:38:00Z")
}

func TestRender_NoMedals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Medals = false
	out := render(t, cfg)
	assert.NotContains(t, out, "🥇")
	assert.Contains(t, out, "| 1 | A | 86.0 |")
	assert.Contains(t, out, "1. **A**: 86.0 points")
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	res := analysis.Analyze(nil, analysis.DefaultWeights())
	require.NoError(t, New(DefaultConfig()).Render(&buf, res, Meta{}))
	out := buf.String()
	assert.Contains(t, out, "_No candidates were analyzed._")
	assert.Contains(t, out, "- **Total reviews**: 0 (0 candidates × 3 review types)")
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "REPORT.md")
	require.NoError(t, os.WriteFile(path, []byte("stale report contents"), 0644))

	r := New(DefaultConfig())
	require.NoError(t, r.WriteFile(path, sampleResult(), sampleMeta()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale report contents")
	assert.True(t, strings.HasPrefix(string(data), "# Self-Review Experiment"))
}

func TestWriteFile_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "REPORT.md")
	err := New(DefaultConfig()).WriteFile(path, sampleResult(), sampleMeta())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write report")
}
