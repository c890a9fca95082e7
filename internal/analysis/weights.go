package analysis

import (
	"fmt"
	"math"
)

// Scoring constants. Each sub-score lives on a 0-100 scale.
const (
	MaxScore = 100.0

	// SelfPointsPerFinding rewards the presence of self-review findings,
	// capped at MaxScore. It measures effort, not accuracy.
	SelfPointsPerFinding = 10.0
	// IndependentPenaltyPerIssue is deducted per independent-review issue.
	IndependentPenaltyPerIssue = 5.0
	// SecurityPenaltyPerIssue is deducted per security-review issue.
	SecurityPenaltyPerIssue = 10.0
)

// Weights are the composite-score weights of the three sub-scores.
type Weights struct {
	Self        float64 `json:"self"`
	Independent float64 `json:"independent"`
	Security    float64 `json:"security"`
}

// DefaultWeights returns 20% self, 40% independent, 40% security.
func DefaultWeights() Weights {
	return Weights{Self: 0.2, Independent: 0.4, Security: 0.4}
}

// weightTolerance bounds the rounding error allowed in the weight sum.
const weightTolerance = 1e-9

// Validate rejects negative weights and weights that do not sum to 1,
// which keeps the composite on the 0-100 scale.
func (w Weights) Validate() error {
	if w.Self < 0 || w.Independent < 0 || w.Security < 0 {
		return fmt.Errorf("weights must be non-negative: %+v", w)
	}
	if sum := w.Self + w.Independent + w.Security; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights must sum to 1, got %g", sum)
	}
	return nil
}
