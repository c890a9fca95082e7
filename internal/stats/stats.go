package stats

import (
	"sort"

	"github.com/joescharf/revscore/internal/models"
)

// PriorityPrefix marks every priority bucket key, e.g. "P1" or "PUnknown".
const PriorityPrefix = "P"

// Summarize reduces findings to their count, priority buckets and mean
// confidence. Only findings with a numeric confidence enter the mean; with
// none the mean is 0.
func Summarize(findings []models.Finding) models.Statistics {
	st := models.Statistics{
		Total:      len(findings),
		ByPriority: make(map[string]int),
	}

	var sum float64
	var n int
	for _, f := range findings {
		st.ByPriority[PriorityPrefix+f.PriorityLabel()]++
		if f.HasConfidence() {
			sum += *f.Confidence
			n++
		}
	}
	st.AvgConfidence = SafeRatio(sum, float64(n))
	return st
}

// SafeRatio returns num/den, or 0 when den is 0. Every ratio in the
// pipeline goes through here so the zero-denominator policy stays in one place.
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean(values []int) float64 {
	var sum int
	for _, v := range values {
		sum += v
	}
	return SafeRatio(float64(sum), float64(len(values)))
}

// Median returns the median of values, averaging the two middle values for
// an even count. An empty slice yields 0.
func Median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// PriorityKeys returns the bucket keys of st in sorted order.
func PriorityKeys(st models.Statistics) []string {
	keys := make([]string, 0, len(st.ByPriority))
	for k := range st.ByPriority {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
