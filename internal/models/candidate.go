package models

// Candidate is one code-generation agent's implementation under comparison.
type Candidate struct {
	Name string // e.g. "2-claude"
	Hash string // short commit hash used to locate review artifacts
}

// Source identifies where a set of findings came from.
type Source string

const (
	SourceSelf        Source = "self"
	SourceIndependent Source = "independent"
	SourceSecurity    Source = "security"
)

// Sources lists every review source in report order.
var Sources = []Source{SourceSelf, SourceIndependent, SourceSecurity}

// Label returns the human-readable name of the source.
func (s Source) Label() string {
	switch s {
	case SourceSelf:
		return "Self-review"
	case SourceIndependent:
		return "Independent review"
	case SourceSecurity:
		return "Security review"
	default:
		return string(s)
	}
}
