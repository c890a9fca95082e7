package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joescharf/revscore/internal/models"
)

func conf(v float64) *float64 { return &v }

func TestSummarize_Empty(t *testing.T) {
	st := Summarize(nil)
	assert.Equal(t, 0, st.Total)
	assert.Empty(t, st.ByPriority)
	assert.Equal(t, 0.0, st.AvgConfidence)
}

func TestSummarize_TotalMatchesInput(t *testing.T) {
	for n := 0; n < 12; n++ {
		findings := make([]models.Finding, n)
		for i := range findings {
			if i%3 == 0 {
				findings[i].Confidence = conf(0.5)
			}
			if i%2 == 0 {
				findings[i].Priority = "2"
			}
		}
		assert.Equal(t, n, Summarize(findings).Total)
	}
}

func TestSummarize_Buckets(t *testing.T) {
	st := Summarize([]models.Finding{
		{Priority: "1"},
		{Priority: "1"},
		{Priority: "high"},
		{},
	})
	assert.Equal(t, map[string]int{"P1": 2, "Phigh": 1, "PUnknown": 1}, st.ByPriority)
	assert.Equal(t, []string{"P1", "PUnknown", "Phigh"}, PriorityKeys(st))
}

func TestSummarize_ConfidenceIgnoresMissing(t *testing.T) {
	st := Summarize([]models.Finding{
		{Priority: "1", Confidence: conf(0.8)},
		{Priority: "2", Confidence: conf(0.4)},
		{Priority: "3"},
	})
	assert.Equal(t, 3, st.Total)
	assert.InDelta(t, 0.6, st.AvgConfidence, 1e-12)
}

func TestSummarize_NoNumericConfidence(t *testing.T) {
	st := Summarize([]models.Finding{{Priority: "1"}, {Priority: "2"}})
	assert.Equal(t, 0.0, st.AvgConfidence)
}

func TestSafeRatio(t *testing.T) {
	assert.Equal(t, 0.0, SafeRatio(5, 0))
	assert.Equal(t, 0.0, SafeRatio(0, 0))
	assert.Equal(t, 2.5, SafeRatio(5, 2))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]int{1, 2, 3}), 1e-12)
	assert.InDelta(t, 2.5, Mean([]int{0, 5}), 1e-12)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 3.0, Median([]int{5, 3, 1}))
	assert.Equal(t, 2.5, Median([]int{4, 1, 3, 2}))

	in := []int{3, 1, 2}
	Median(in)
	assert.Equal(t, []int{3, 1, 2}, in, "input must not be reordered")
}
