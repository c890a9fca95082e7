package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joescharf/revscore/internal/analysis"
	"github.com/joescharf/revscore/internal/models"
	"github.com/joescharf/revscore/internal/stats"
)

// Meta carries run facts that are not derived from findings.
type Meta struct {
	GeneratedAt time.Time
	RunID       string
	// MissingSources lists, per candidate, the sources that had no usable record.
	MissingSources map[string][]models.Source
}

// Renderer formats analysis results as a markdown document. It only
// projects already-computed values; no score is derived here.
type Renderer struct {
	cfg Config
}

// New creates a Renderer.
func New(cfg Config) *Renderer {
	if len(cfg.Sources) == 0 {
		cfg.Sources = models.Sources
	}
	return &Renderer{cfg: cfg}
}

// WriteFile renders the report and writes it to path, replacing any
// previous report.
func (r *Renderer) WriteFile(path string, res *analysis.Result, meta Meta) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, res, meta); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Render writes the full report to w.
func (r *Renderer) Render(w io.Writer, res *analysis.Result, meta Meta) error {
	var b bytes.Buffer

	r.header(&b, meta)
	r.executiveSummary(&b, res)
	r.quantitative(&b, res)
	r.bias(&b, res)
	r.security(&b, res, meta)
	r.composite(&b, res)
	r.conclusions(&b, res)
	r.metadata(&b, res, meta)

	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func (r *Renderer) header(b *bytes.Buffer, meta Meta) {
	fmt.Fprintf(b, "# %s\n\n", r.cfg.Title)
	if !meta.GeneratedAt.IsZero() {
		fmt.Fprintf(b, "**Generated:** %s\n\n", meta.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	if meta.RunID != "" {
		fmt.Fprintf(b, "**Run ID:** `%s`\n\n", meta.RunID)
	}
}

func (r *Renderer) executiveSummary(b *bytes.Buffer, res *analysis.Result) {
	section(b, "Executive Summary")
	fmt.Fprintf(b, "### Composite Ranking: Top %d\n\n", r.cfg.TopN)

	t := newTable("Rank", "Candidate", "Composite", "Self-review", "Code quality", "Security")
	for i, o := range analysis.Top(res.OverallRanking, r.cfg.TopN) {
		t.row(r.rank(i+1, ""), o.Candidate,
			score(o.Composite), score(o.SelfScore), score(o.IndependentScore), score(o.SecurityScore))
	}
	t.write(b)
}

func (r *Renderer) quantitative(b *bytes.Buffer, res *analysis.Result) {
	section(b, "1. Quantitative Comparison")
	b.WriteString("### Issue Counts\n\n")

	headers := []string{"Candidate"}
	for _, src := range r.cfg.Sources {
		headers = append(headers, src.Label())
	}
	headers = append(headers, "Total")

	t := newTable(headers...)
	for _, cs := range res.Stats {
		cells := []string{cs.Candidate}
		total := 0
		for _, src := range r.cfg.Sources {
			n := cs.For(src).Total
			total += n
			cells = append(cells, fmt.Sprintf("%d", n))
		}
		cells = append(cells, fmt.Sprintf("%d", total))
		t.row(cells...)
	}
	t.write(b)

	b.WriteString("### Summary Statistics\n\n")
	for _, src := range r.cfg.Sources {
		totals := make([]int, 0, len(res.Stats))
		for _, cs := range res.Stats {
			totals = append(totals, cs.For(src).Total)
		}
		fmt.Fprintf(b, "- **%s mean**: %.1f issues (median: %.1f)\n",
			src.Label(), stats.Mean(totals), stats.Median(totals))
	}
	b.WriteString("\n")

	b.WriteString("### Priority Breakdown\n\n")
	pt := newTable("Candidate", "Source", "Priorities", "Mean confidence")
	for _, cs := range res.Stats {
		for _, src := range r.cfg.Sources {
			st := cs.For(src)
			if st.Total == 0 {
				continue
			}
			pt.row(cs.Candidate, src.Label(), priorities(st), fmt.Sprintf("%.2f", st.AvgConfidence))
		}
	}
	if len(pt.rows) == 0 {
		b.WriteString("_No findings reported._\n\n")
		return
	}
	pt.write(b)
}

func (r *Renderer) bias(b *bytes.Buffer, res *analysis.Result) {
	section(b, "2. Self-Review vs Independent Review")
	b.WriteString("### Self-Assessment Accuracy\n\n")

	t := newTable("Candidate", "Self-review", "Independent review", "Diff", "Bias", "Bias ratio")
	for _, c := range res.Comparisons {
		t.row(c.Candidate, fmt.Sprintf("%d", c.Self), fmt.Sprintf("%d", c.Independent),
			fmt.Sprintf("%+d", c.Diff), string(c.Bias), percent(c.BiasRatio))
	}
	t.write(b)

	b.WriteString("_Bias ratio is |diff| / independent count, reported as 0% when the independent review found nothing._\n\n")

	b.WriteString("### Self-Review Strictness Ranking\n\n")
	b.WriteString("**Stricter (self-review > independent review)**\n\n")
	biasList(b, analysis.Stricter(res.BiasRanking))
	b.WriteString("**Lenient (self-review < independent review)**\n\n")
	biasList(b, analysis.Lenient(res.BiasRanking))
}

func biasList(b *bytes.Buffer, list []models.Comparison) {
	if len(list) == 0 {
		b.WriteString("_None._\n\n")
		return
	}
	for i, c := range list {
		fmt.Fprintf(b, "%d. **%s**: %+d issues (%s)\n", i+1, c.Candidate, c.Diff, c.Bias)
	}
	b.WriteString("\n")
}

func (r *Renderer) security(b *bytes.Buffer, res *analysis.Result, meta Meta) {
	section(b, "3. Security Ranking")

	t := newTable("Rank", "Candidate", "Security score", "Issues", "Confidence")
	for i, s := range res.SecurityRanking {
		t.row(r.rank(i+1, ""), s.Candidate, score(s.Score),
			fmt.Sprintf("%d", s.Issues), fmt.Sprintf("%.2f", s.Confidence))
	}
	t.write(b)

	var notes []string
	for _, s := range res.Security {
		if hasSource(meta.MissingSources[s.Candidate], models.SourceSecurity) {
			notes = append(notes, fmt.Sprintf("- **%s**: no security review record; the score of %s is the unweighted base and may overstate quality.",
				s.Candidate, score(s.Score)))
		}
	}
	if len(notes) > 0 {
		b.WriteString("### Data Quality Notes\n\n")
		b.WriteString(strings.Join(notes, "\n"))
		b.WriteString("\n\n")
	}
}

func (r *Renderer) composite(b *bytes.Buffer, res *analysis.Result) {
	section(b, "4. Composite Quality Score")
	w := res.Weights
	fmt.Fprintf(b, "Weights: self-review %s, code quality %s, security %s.\n\n",
		percent(w.Self), percent(w.Independent), percent(w.Security))

	b.WriteString("### Score Breakdown\n\n")
	t := newTable("Candidate", "Self-review", "Code quality", "Security", "Composite")
	for _, o := range res.Overall {
		t.row(o.Candidate, score(o.SelfScore), score(o.IndependentScore), score(o.SecurityScore),
			"**"+score(o.Composite)+"**")
	}
	t.write(b)

	b.WriteString("### Final Ranking\n\n")
	for i, o := range res.OverallRanking {
		fmt.Fprintf(b, "%s **%s**: %s points\n\n", r.rank(i+1, "."), o.Candidate, score(o.Composite))
	}
}

func (r *Renderer) conclusions(b *bytes.Buffer, res *analysis.Result) {
	section(b, "Conclusions")

	if len(res.OverallRanking) == 0 {
		b.WriteString("_No candidates were analyzed._\n\n")
		return
	}

	winner := res.OverallRanking[0]
	fmt.Fprintf(b, "### Winner: %s\n\n", winner.Candidate)
	fmt.Fprintf(b, "- **Composite score**: %s points\n", score(winner.Composite))
	strengths := r.strengths(winner)
	if len(strengths) == 0 {
		strengths = []string{"balanced implementation"}
	}
	fmt.Fprintf(b, "- **Strengths**: %s\n\n", strings.Join(strengths, ", "))

	b.WriteString("### Candidate Profiles\n\n")
	th := r.cfg.Thresholds
	for _, o := range res.OverallRanking {
		fmt.Fprintf(b, "**%s**:\n", o.Candidate)
		if o.SelfScore >= th.Self {
			fmt.Fprintf(b, "- Thorough self-review (%.0f points)\n", o.SelfScore)
		}
		if o.IndependentScore >= th.Independent {
			fmt.Fprintf(b, "- High code quality (%.0f points)\n", o.IndependentScore)
		}
		if o.SecurityScore >= th.Security {
			fmt.Fprintf(b, "- Sound security practices (%.0f points)\n", o.SecurityScore)
		}
		if o.Composite < th.NeedsWork {
			fmt.Fprintf(b, "- Room for improvement (composite %.0f points)\n", o.Composite)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Needs Improvement\n\n")
	b.WriteString("1. **Raise the lowest scorers**:\n")
	for _, o := range analysis.Bottom(res.OverallRanking, r.cfg.BottomN) {
		fmt.Fprintf(b, "   - %s: composite %.0f points, target %.0f+\n", o.Candidate, o.Composite, r.cfg.TargetScore)
	}
	b.WriteString("\n")
	b.WriteString("2. **Share best practices**: apply the code patterns of the top candidates to the others.\n\n")
	b.WriteString("3. **Review continuously**: pair regular self-review with independent review.\n\n")
}

// strengths lists the qualitative strengths of o per the configured thresholds.
func (r *Renderer) strengths(o models.OverallScore) []string {
	th := r.cfg.Thresholds
	var out []string
	if o.SelfScore >= th.Self {
		out = append(out, "accurate self-assessment")
	}
	if o.IndependentScore >= th.Independent {
		out = append(out, "high code quality")
	}
	if o.SecurityScore >= th.Security {
		out = append(out, "strong security")
	}
	return out
}

func (r *Renderer) metadata(b *bytes.Buffer, res *analysis.Result, meta Meta) {
	section(b, "Metadata")
	if !meta.GeneratedAt.IsZero() {
		fmt.Fprintf(b, "- **Generated**: %s\n", meta.GeneratedAt.UTC().Format(time.RFC3339))
	}
	if meta.RunID != "" {
		fmt.Fprintf(b, "- **Run ID**: `%s`\n", meta.RunID)
	}
	n := len(res.Stats)
	fmt.Fprintf(b, "- **Total reviews**: %d (%d candidates × %d review types)\n",
		n*len(r.cfg.Sources), n, len(r.cfg.Sources))

	labels := make([]string, 0, len(r.cfg.Sources))
	for _, src := range r.cfg.Sources {
		labels = append(labels, src.Label())
	}
	fmt.Fprintf(b, "- **Review types**: %s\n", strings.Join(labels, ", "))
	fmt.Fprintf(b, "- **Analysis tool**: `revscore`\n")
}

// rank renders a 1-based rank, with medals for the podium when enabled.
func (r *Renderer) rank(n int, suffix string) string {
	if r.cfg.Medals {
		switch n {
		case 1:
			return "🥇"
		case 2:
			return "🥈"
		case 3:
			return "🥉"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func section(b *bytes.Buffer, title string) {
	fmt.Fprintf(b, "---\n\n## %s\n\n", title)
}

func score(v float64) string { return fmt.Sprintf("%.1f", v) }

func percent(v float64) string { return fmt.Sprintf("%.1f%%", v*100) }

func priorities(st models.Statistics) string {
	parts := make([]string, 0, len(st.ByPriority))
	for _, k := range stats.PriorityKeys(st) {
		parts = append(parts, fmt.Sprintf("%s: %d", k, st.ByPriority[k]))
	}
	return strings.Join(parts, ", ")
}

func hasSource(list []models.Source, src models.Source) bool {
	for _, s := range list {
		if s == src {
			return true
		}
	}
	return false
}
