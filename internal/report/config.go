package report

import "github.com/joescharf/revscore/internal/models"

// Thresholds drive the qualitative strength labels. A sub-score at or above
// its threshold counts as a strength; a composite below NeedsWork is flagged.
type Thresholds struct {
	Self        float64 `json:"self"`
	Independent float64 `json:"independent"`
	Security    float64 `json:"security"`
	NeedsWork   float64 `json:"needs_work"`
}

// Config is the renderer configuration. It is read-only during rendering.
type Config struct {
	Title       string
	Thresholds  Thresholds
	TopN        int     // rows in the executive summary
	BottomN     int     // entries in the needs-improvement list
	TargetScore float64 // goal quoted for low scorers
	Medals      bool    // use medal glyphs for the first three ranks
	Sources     []models.Source
}

// DefaultConfig returns the standard report configuration.
func DefaultConfig() Config {
	return Config{
		Title: "Self-Review Experiment: Comprehensive Analysis Report",
		Thresholds: Thresholds{
			Self:        50,
			Independent: 70,
			Security:    70,
			NeedsWork:   50,
		},
		TopN:        3,
		BottomN:     3,
		TargetScore: 70,
		Medals:      true,
		Sources:     models.Sources,
	}
}
