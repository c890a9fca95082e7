package analysis

import (
	"math"
	"sort"

	"github.com/joescharf/revscore/internal/models"
	"github.com/joescharf/revscore/internal/stats"
)

// Result holds every derived structure for one run. Per-candidate slices are
// in lexicographic candidate order; rankings are sorted best-first.
type Result struct {
	Weights     Weights                 `json:"weights"`
	Stats       []models.CandidateStats `json:"stats"`
	Comparisons []models.Comparison     `json:"comparisons"`
	Security    []models.SecurityScore  `json:"security"`
	Overall     []models.OverallScore   `json:"overall"`

	BiasRanking     []models.Comparison    `json:"bias_ranking"`
	SecurityRanking []models.SecurityScore `json:"security_ranking"`
	OverallRanking  []models.OverallScore  `json:"overall_ranking"`
}

// Analyze derives comparisons, security scores, composite scores and
// rankings from per-candidate statistics. Every candidate in cs appears in
// every output slice.
func Analyze(cs []models.CandidateStats, w Weights) *Result {
	ordered := append([]models.CandidateStats(nil), cs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Candidate < ordered[j].Candidate
	})

	r := &Result{
		Weights:     w,
		Stats:       ordered,
		Comparisons: make([]models.Comparison, 0, len(ordered)),
		Security:    make([]models.SecurityScore, 0, len(ordered)),
		Overall:     make([]models.OverallScore, 0, len(ordered)),
	}

	for _, c := range ordered {
		sec := ScoreSecurity(c.Candidate, c.Security)
		r.Comparisons = append(r.Comparisons, CompareBias(c.Candidate, c.Self.Total, c.Independent.Total))
		r.Security = append(r.Security, sec)
		r.Overall = append(r.Overall, ScoreOverall(c, sec.Score, w))
	}

	r.BiasRanking = RankBias(r.Comparisons)
	r.SecurityRanking = RankSecurity(r.Security)
	r.OverallRanking = RankOverall(r.Overall)
	return r
}

// CompareBias contrasts self-reported and independently reported counts.
// The ratio is |diff| / independent and is 0 when independent is 0, which is
// a policy value rather than a true ratio.
func CompareBias(candidate string, self, independent int) models.Comparison {
	diff := self - independent

	bias := models.BiasNeutral
	switch {
	case diff > 0:
		bias = models.BiasStricter
	case diff < 0:
		bias = models.BiasLenient
	}

	return models.Comparison{
		Candidate:   candidate,
		Self:        self,
		Independent: independent,
		Diff:        diff,
		Bias:        bias,
		BiasRatio:   stats.SafeRatio(math.Abs(float64(diff)), float64(independent)),
	}
}

// ScoreSecurity rates a candidate's security review. The base loses
// SecurityPenaltyPerIssue per issue; a positive mean confidence scales it.
// Without confidence data the base is used unmodified, so a candidate with
// no security record scores MaxScore.
func ScoreSecurity(candidate string, st models.Statistics) models.SecurityScore {
	base := math.Max(0, MaxScore-float64(st.Total)*SecurityPenaltyPerIssue)
	score := base
	if st.AvgConfidence > 0 {
		score = base * st.AvgConfidence
	}
	return models.SecurityScore{
		Candidate:  candidate,
		Issues:     st.Total,
		Confidence: st.AvgConfidence,
		Score:      clamp(score),
	}
}

// SelfScore rewards self-review findings up to MaxScore.
func SelfScore(total int) float64 {
	return math.Min(MaxScore, float64(total)*SelfPointsPerFinding)
}

// IndependentScore deducts per independent-review issue, floored at 0.
func IndependentScore(total int) float64 {
	return math.Max(0, MaxScore-float64(total)*IndependentPenaltyPerIssue)
}

// Composite is the weighted sum of the three sub-scores.
func Composite(self, independent, security float64, w Weights) float64 {
	return w.Self*self + w.Independent*independent + w.Security*security
}

// ScoreOverall computes the sub-scores and composite for one candidate.
func ScoreOverall(c models.CandidateStats, securityScore float64, w Weights) models.OverallScore {
	o := models.OverallScore{
		Candidate:        c.Candidate,
		SelfScore:        SelfScore(c.Self.Total),
		IndependentScore: IndependentScore(c.Independent.Total),
		SecurityScore:    securityScore,
	}
	o.Composite = Composite(o.SelfScore, o.IndependentScore, o.SecurityScore, w)
	return o
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(MaxScore, v))
}
