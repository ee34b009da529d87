package pipeline

import (
	"encoding/csv"
	"strings"

	"mndotbids/internal"
)

// table is a parsed CSV segment: an ordered header and the data rows.
// Columns are addressed by header name for the stable fields and by
// position for the bidder price pairs.
type table struct {
	header []string
	rows   [][]string
	index  map[string]int
}

func parseTable(segment string) (*table, error) {
	reader := csv.NewReader(strings.NewReader(segment))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, internal.Structuralf("read csv segment: %v", err)
	}
	if len(records) == 0 {
		return nil, internal.Structuralf("empty csv segment")
	}

	header := make([]string, len(records[0]))
	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		header[i] = name
		index[name] = i
	}

	return &table{header: header, rows: records[1:], index: index}, nil
}

func (t *table) width() int { return len(t.header) }

func (t *table) column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, internal.Structuralf("missing column %q", name)
	}
	return i, nil
}

// field reads a named column from one row.
func (t *table) field(row []string, name string) (string, error) {
	i, err := t.column(name)
	if err != nil {
		return "", err
	}
	if i >= len(row) {
		return "", internal.Structuralf("row has %d fields, column %q is at %d", len(row), name, i)
	}
	return strings.TrimSpace(row[i]), nil
}

// at reads a positional column from one row. Reading past the end of
// the row is a structural defect, not a missing-bidder signal.
func (t *table) at(row []string, i int) (string, error) {
	if i >= len(row) {
		return "", internal.Structuralf("row has %d fields, wanted index %d", len(row), i)
	}
	return strings.TrimSpace(row[i]), nil
}
