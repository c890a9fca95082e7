package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/revscore/internal/models"
)

func mustParse(t *testing.T, s string) Document {
	t.Helper()
	doc, err := Parse([]byte(s))
	require.NoError(t, err)
	return doc
}

func TestParse_RejectsNonObject(t *testing.T) {
	for _, in := range []string{`[1,2]`, `"text"`, `null`, `{"findings": [`, ``} {
		_, err := Parse([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestExtract_NilRecord(t *testing.T) {
	assert.Empty(t, Extract(nil))
	assert.Empty(t, Extract(&Record{Source: models.SourceSelf}))
}

func TestExtract_TopLevelSources(t *testing.T) {
	doc := mustParse(t, `{"findings": [
		{"priority": 1, "confidence_score": 0.9},
		{"priority": "high"},
		{"confidence_score": "n/a"}
	]}`)

	for _, src := range []models.Source{models.SourceSelf, models.SourceSecurity} {
		findings := Extract(&Record{Source: src, Doc: doc})
		require.Len(t, findings, 3, "source %s", src)

		assert.Equal(t, "1", findings[0].Priority)
		require.True(t, findings[0].HasConfidence())
		assert.InDelta(t, 0.9, *findings[0].Confidence, 1e-12)

		assert.Equal(t, "high", findings[1].Priority)
		assert.False(t, findings[1].HasConfidence())

		assert.Equal(t, models.UnknownPriority, findings[2].PriorityLabel())
		assert.False(t, findings[2].HasConfidence())
	}
}

func TestExtract_IndependentUsesSummary(t *testing.T) {
	doc := mustParse(t, `{"ai": "alt", "review_summary": {"findings": [{"priority": 2}, {"priority": 3}]}}`)

	findings := Extract(&Record{Source: models.SourceIndependent, Doc: doc})
	require.Len(t, findings, 2)
	assert.Equal(t, "2", findings[0].Priority)
	assert.Equal(t, "3", findings[1].Priority)

	// The top-level layout is not read for the independent source.
	flat := mustParse(t, `{"findings": [{"priority": 1}]}`)
	assert.Empty(t, Extract(&Record{Source: models.SourceIndependent, Doc: flat}))
}

func TestExtract_SummaryLayoutIgnoredForSelf(t *testing.T) {
	doc := mustParse(t, `{"review_summary": {"findings": [{"priority": 1}]}}`)
	assert.Empty(t, Extract(&Record{Source: models.SourceSelf, Doc: doc}))
}

func TestExtract_UnexpectedShapes(t *testing.T) {
	tests := []struct {
		name string
		src  models.Source
		doc  string
	}{
		{"findings is object", models.SourceSelf, `{"findings": {"priority": 1}}`},
		{"findings is string", models.SourceSecurity, `{"findings": "none"}`},
		{"findings is null", models.SourceSelf, `{"findings": null}`},
		{"summary is array", models.SourceIndependent, `{"review_summary": []}`},
		{"summary without findings", models.SourceIndependent, `{"review_summary": {"total": 3}}`},
		{"unknown source", models.Source("lint"), `{"findings": [{"priority": 1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Extract(&Record{Source: tt.src, Doc: mustParse(t, tt.doc)}))
		})
	}
}

func TestExtract_SkipsNonObjectItems(t *testing.T) {
	doc := mustParse(t, `{"findings": [{"priority": 1}, 7, null, "x", {"priority": 2}]}`)
	findings := Extract(&Record{Source: models.SourceSelf, Doc: doc})
	require.Len(t, findings, 2)
	assert.Equal(t, "1", findings[0].Priority)
	assert.Equal(t, "2", findings[1].Priority)
}

func TestPriorityText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`1`, "1"},
		{`1.0`, "1.0"},
		{`"critical"`, "critical"},
		{`null`, ""},
		{`true`, "true"},
		{`[1, 2]`, "[1,2]"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, priorityText([]byte(tt.raw)))
		})
	}
	assert.Equal(t, "", priorityText(nil))
}

func TestConfidenceValue(t *testing.T) {
	v := confidenceValue([]byte(`0.75`))
	require.NotNil(t, v)
	assert.InDelta(t, 0.75, *v, 1e-12)

	v = confidenceValue([]byte(`1`))
	require.NotNil(t, v)
	assert.InDelta(t, 1.0, *v, 1e-12)

	assert.Nil(t, confidenceValue([]byte(`"0.5"`)))
	assert.Nil(t, confidenceValue([]byte(`null`)))
	assert.Nil(t, confidenceValue([]byte(`true`)))
	assert.Nil(t, confidenceValue(nil))
}
