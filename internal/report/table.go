package report

import (
	"bytes"
	"strings"
)

// mdTable accumulates a markdown pipe table.
type mdTable struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *mdTable {
	return &mdTable{headers: headers}
}

func (t *mdTable) row(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *mdTable) write(b *bytes.Buffer) {
	writeRow(b, t.headers)
	seps := make([]string, len(t.headers))
	for i, h := range t.headers {
		seps[i] = strings.Repeat("-", len(h)+2)
	}
	b.WriteString("|" + strings.Join(seps, "|") + "|\n")
	for _, r := range t.rows {
		writeRow(b, r)
	}
	b.WriteString("\n")
}

func writeRow(b *bytes.Buffer, cells []string) {
	b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
}
