package review

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/joescharf/revscore/internal/models"
)

// Document is a decoded review file: its top-level keys mapped to raw values.
type Document map[string]json.RawMessage

// Parse decodes review file contents. The top level must be a JSON object.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode review document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decode review document: top level is not an object")
	}
	return doc, nil
}

// Record is a review document tagged with the source that produced it.
type Record struct {
	Source models.Source
	Path   string
	Doc    Document
}

// Extractor pulls the findings out of one source's document layout.
type Extractor func(Document) []models.Finding

// extractors holds one extraction function per source layout. A new source
// type gets a new entry here rather than ad hoc key checks at call sites.
var extractors = map[models.Source]Extractor{
	models.SourceSelf:        topLevelFindings,
	models.SourceIndependent: summaryFindings,
	models.SourceSecurity:    topLevelFindings,
}

// Extract returns the findings held by rec in document order. A nil record,
// an unknown source, or an unexpected layout all yield an empty slice.
func Extract(rec *Record) []models.Finding {
	if rec == nil || rec.Doc == nil {
		return nil
	}
	fn, ok := extractors[rec.Source]
	if !ok {
		return nil
	}
	return fn(rec.Doc)
}

// topLevelFindings reads {"findings": [...]}.
func topLevelFindings(doc Document) []models.Finding {
	return decodeFindings(doc["findings"])
}

// summaryFindings reads {"review_summary": {"findings": [...]}}.
func summaryFindings(doc Document) []models.Finding {
	raw, ok := doc["review_summary"]
	if !ok {
		return nil
	}
	var summary Document
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil
	}
	return decodeFindings(summary["findings"])
}

func decodeFindings(raw json.RawMessage) []models.Finding {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	findings := make([]models.Finding, 0, len(items))
	for _, item := range items {
		var fields Document
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			// Not an object; nothing to count.
			continue
		}
		findings = append(findings, models.Finding{
			Priority:   priorityText(fields["priority"]),
			Confidence: confidenceValue(fields["confidence_score"]),
		})
	}
	return findings
}

// priorityText renders a raw priority as the text used for bucketing.
// Numbers keep their literal spelling so 1 and 1.0 stay distinct.
func priorityText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return ""
		}
		return buf.String()
	}
}

// confidenceValue returns the confidence when it is a JSON number.
func confidenceValue(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}
