package ledger

import "strings"

// Validate normalizes a decoded table onto the canonical schema:
// header tokens are trimmed and matched against known synonyms (the files
// carry both English and Indonesian spellings), duplicate columns are dropped
// keeping the first, and fully empty rows are removed.
//
// Pure function: the same input table always yields the same output, and the
// input is not mutated.
func Validate(t *Table) *Table {
	if t == nil {
		return nil
	}

	type keptCol struct {
		name string
		idx  int
	}

	var cols []keptCol
	seen := make(map[string]bool)
	for i, raw := range t.Header {
		name := canonicalName(raw)
		if seen[name] {
			continue // duplicate column: keep the first
		}
		seen[name] = true
		cols = append(cols, keptCol{name: name, idx: i})
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.name
	}

	var rows [][]string
	for _, row := range t.Rows {
		out := make([]string, len(cols))
		blank := true
		for i, c := range cols {
			v := cell(row, c.idx)
			out[i] = v
			if strings.TrimSpace(v) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, out)
	}

	return &Table{Header: header, Rows: rows}
}

// canonicalName fuzzy-maps a raw header token to the canonical column name.
// Substring matches cover the spelling drift seen in historical files
// ("name"/"nama", "time"/"waktu", "date"/"tanggal").
func canonicalName(raw string) string {
	token := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(token, "name") || token == "nama":
		return "Name"
	case strings.Contains(token, "time") || token == "waktu":
		return "Time"
	case strings.Contains(token, "date") || token == "tanggal":
		return "Date"
	case strings.Contains(token, "shift"):
		return "Shift"
	case strings.Contains(token, "status"):
		return "Status"
	}
	return strings.TrimSpace(raw)
}
