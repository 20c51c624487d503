package ledger

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// A strategy turns raw file bytes into a table. Strategies are pure: the same
// bytes always yield the same table. Kept as a data-driven list so malformed
// fixtures can be pushed through individual strategies in tests.
type strategy struct {
	name  string
	parse func(data []byte) (*Table, error)
}

// strategies in order of preference; the first success wins. A strategy error
// falls through to the next, never up to the caller.
var strategies = []strategy{
	{"structural-repair", parseStructuralRepair},
	{"lenient", parseLenient},
	{"raw", parseRaw},
}

var errNoData = errors.New("ledger: no decodable rows")

// Decode runs the strategy chain over raw day-file bytes.
func Decode(data []byte) (*Table, error) {
	var firstErr error
	for _, s := range strategies {
		t, err := s.parse(data)
		if err == nil && t != nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", s.name, err)
		}
	}
	if firstErr == nil {
		firstErr = errNoData
	}
	return nil, firstErr
}

// splitLines splits on \n, strips \r, and drops a trailing empty line.
func splitLines(data []byte) []string {
	lines := strings.Split(string(data), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// parseStructuralRepair handles the common mixed-format case: rows written by
// different program versions with 3, 4 or 5 comma-separated fields. It widens
// everything to the maximum column count seen anywhere in the file, padding
// short rows with empty strings. Rows are never truncated and never dropped,
// so no data-bearing column is lost.
func parseStructuralRepair(data []byte) (*Table, error) {
	lines := splitLines(data)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, errNoData
	}

	header := strings.Split(lines[0], ",")
	maxCols := len(header)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n := len(strings.Split(line, ",")); n > maxCols {
			maxCols = n
		}
	}

	// extend the header with the names the legacy writers omitted
	for i := len(header); i < maxCols; i++ {
		switch i {
		case 3:
			header = append(header, "Shift")
		case 4:
			header = append(header, "Status")
		default:
			header = append(header, fmt.Sprintf("Column_%d", i))
		}
	}

	var rows [][]string
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ",")
		for len(parts) < maxCols {
			parts = append(parts, "")
		}
		rows = append(rows, parts)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// delimiters tried by the lenient parse, default first.
var lenientDelimiters = []rune{',', ';', '\t', '|', ' '}

// parseLenient runs encoding/csv with per-row recovery, trying each delimiter
// until one yields at least two header columns.
func parseLenient(data []byte) (*Table, error) {
	for _, delim := range lenientDelimiters {
		t, err := parseWithDelimiter(data, delim)
		if err == nil && len(t.Header) >= 2 {
			return t, nil
		}
	}
	return nil, errNoData
}

func parseWithDelimiter(data []byte, delim rune) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, errNoData
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // unrecoverable row: skip, keep the rest
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		if len(row) > len(header) {
			row = row[:len(header)]
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// parseRaw is the last resort: manual comma split against the header width.
// Short rows are padded, long rows truncated to the header, blank rows dropped.
func parseRaw(data []byte) (*Table, error) {
	lines := splitLines(data)
	if len(lines) == 0 {
		return nil, errNoData
	}

	header := strings.Split(lines[0], ",")
	var rows [][]string
	for _, line := range lines[1:] {
		parts := strings.Split(line, ",")
		blank := true
		for _, p := range parts {
			if strings.TrimSpace(p) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}
		for len(parts) < len(header) {
			parts = append(parts, "")
		}
		rows = append(rows, parts[:len(header)])
	}

	return &Table{Header: header, Rows: rows}, nil
}
