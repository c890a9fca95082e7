package cmd

import (
	"crypto/rand"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/joescharf/revscore/internal/analysis"
	"github.com/joescharf/revscore/internal/loader"
	"github.com/joescharf/revscore/internal/models"
	"github.com/joescharf/revscore/internal/report"
	"github.com/joescharf/revscore/internal/review"
	"github.com/joescharf/revscore/internal/stats"
)

// nowFunc returns the run timestamp, replaceable in tests.
var nowFunc = time.Now

// settings is the effective run configuration resolved from viper.
type settings struct {
	Layout     loader.Layout
	Candidates []models.Candidate
	Weights    analysis.Weights
	Report     report.Config
	ReportPath string
}

func loadSettings() settings {
	layout := loader.DefaultLayout(viper.GetString("base_dir"))
	layout.UnifiedCandidate = viper.GetString("unified.candidate")
	layout.UnifiedFile = viper.GetString("unified.file")

	w := analysis.Weights{
		Self:        viper.GetFloat64("weights.self"),
		Independent: viper.GetFloat64("weights.independent"),
		Security:    viper.GetFloat64("weights.security"),
	}
	if err := w.Validate(); err != nil {
		ui.Warning("Invalid weights (%v), using defaults", err)
		w = analysis.DefaultWeights()
	}

	rc := report.DefaultConfig()
	rc.Thresholds = report.Thresholds{
		Self:        viper.GetFloat64("thresholds.self"),
		Independent: viper.GetFloat64("thresholds.independent"),
		Security:    viper.GetFloat64("thresholds.security"),
		NeedsWork:   viper.GetFloat64("thresholds.needs_work"),
	}

	return settings{
		Layout:     layout,
		Candidates: candidatesFromMap(viper.GetStringMapString("candidates")),
		Weights:    w,
		Report:     rc,
		ReportPath: viper.GetString("report_path"),
	}
}

// candidatesFromMap converts a name->hash map into candidates sorted by name.
func candidatesFromMap(m map[string]string) []models.Candidate {
	out := make([]models.Candidate, 0, len(m))
	for name, hash := range m {
		out = append(out, models.Candidate{Name: name, Hash: hash})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// pipelineResult is everything one run produces.
type pipelineResult struct {
	Records []loader.Records
	Result  *analysis.Result
	Meta    report.Meta
}

// runPipeline loads every record, extracts and summarizes findings, and
// derives scores and rankings. It never fails: absent data becomes zeros.
func runPipeline(s settings, log *zap.Logger) *pipelineResult {
	records := loader.New(s.Layout, log).Load(s.Candidates)

	cs := make([]models.CandidateStats, 0, len(records))
	missing := make(map[string][]models.Source)
	for _, rec := range records {
		name := rec.Candidate.Name
		cs = append(cs, models.CandidateStats{
			Candidate:   name,
			Self:        stats.Summarize(review.Extract(rec.Record(models.SourceSelf))),
			Independent: stats.Summarize(review.Extract(rec.Record(models.SourceIndependent))),
			Security:    stats.Summarize(review.Extract(rec.Record(models.SourceSecurity))),
		})
		for _, src := range models.Sources {
			if rec.Record(src) == nil {
				missing[name] = append(missing[name], src)
			}
		}
	}

	now := nowFunc()
	return &pipelineResult{
		Records: records,
		Result:  analysis.Analyze(cs, s.Weights),
		Meta: report.Meta{
			GeneratedAt:    now,
			RunID:          ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
			MissingSources: missing,
		},
	}
}
