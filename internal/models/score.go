package models

// Statistics summarizes the findings of one review record.
type Statistics struct {
	Total         int            `json:"total"`
	ByPriority    map[string]int `json:"by_priority"`
	AvgConfidence float64        `json:"avg_confidence"`
}

// CandidateStats holds the statistics of every source for one candidate.
type CandidateStats struct {
	Candidate   string     `json:"candidate"`
	Self        Statistics `json:"self"`
	Independent Statistics `json:"independent"`
	Security    Statistics `json:"security"`
}

// For returns the statistics for the given source.
func (c CandidateStats) For(src Source) Statistics {
	switch src {
	case SourceSelf:
		return c.Self
	case SourceIndependent:
		return c.Independent
	case SourceSecurity:
		return c.Security
	default:
		return Statistics{}
	}
}

// Bias labels how a self-review compares to the independent review.
type Bias string

const (
	BiasStricter Bias = "stricter" // self-review reported more issues
	BiasLenient  Bias = "lenient"  // self-review reported fewer issues
	BiasNeutral  Bias = "neutral"
)

// Comparison is the self-vs-independent result for one candidate.
type Comparison struct {
	Candidate   string  `json:"candidate"`
	Self        int     `json:"self"`
	Independent int     `json:"independent"`
	Diff        int     `json:"diff"`
	Bias        Bias    `json:"bias"`
	BiasRatio   float64 `json:"bias_ratio"`
}

// SecurityScore is the security rating for one candidate.
type SecurityScore struct {
	Candidate  string  `json:"candidate"`
	Issues     int     `json:"issues"`
	Confidence float64 `json:"confidence"`
	Score      float64 `json:"score"`
}

// OverallScore holds the three sub-scores and the weighted composite.
type OverallScore struct {
	Candidate        string  `json:"candidate"`
	SelfScore        float64 `json:"self_score"`
	IndependentScore float64 `json:"independent_score"`
	SecurityScore    float64 `json:"security_score"`
	Composite        float64 `json:"composite"`
}
