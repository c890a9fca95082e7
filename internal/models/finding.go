package models

// UnknownPriority is the bucket label used when a finding carries no priority.
const UnknownPriority = "Unknown"

// Finding is one reported issue from a review record.
type Finding struct {
	Priority   string   // raw priority rendered as text; empty when absent
	Confidence *float64 // nil when absent or not a number
}

// PriorityLabel returns the raw priority, or UnknownPriority when absent.
func (f Finding) PriorityLabel() string {
	if f.Priority == "" {
		return UnknownPriority
	}
	return f.Priority
}

// HasConfidence reports whether the finding carries a numeric confidence.
func (f Finding) HasConfidence() bool {
	return f.Confidence != nil
}
