package ledger

import (
	"strings"
	"testing"
)

// mixed 3/4/5-column file: the shape left behind by three program versions
// writing into the same day file.
const mixedFormat = `Name,Time,Date
Budi,08:01:00,2026-08-29
Sari,08:10:00,2026-08-29,morning
Agus,16:02:00,2026-08-29,night,on_time
`

func TestDecode_MixedColumnCounts(t *testing.T) {
	tab, err := Decode([]byte(mixedFormat))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(tab.Rows) != 3 {
		t.Fatalf("expected 3 rows preserved, got %d", len(tab.Rows))
	}
	if len(tab.Header) != 5 {
		t.Fatalf("expected header widened to 5 columns, got %d: %v", len(tab.Header), tab.Header)
	}
	if tab.Header[3] != "Shift" || tab.Header[4] != "Status" {
		t.Errorf("synthetic header names wrong: %v", tab.Header)
	}

	// short rows padded, never dropped or truncated
	for i, row := range tab.Rows {
		if len(row) != 5 {
			t.Errorf("row %d not padded to max width: %v", i, row)
		}
	}
	if tab.Rows[0][3] != "" || tab.Rows[0][4] != "" {
		t.Errorf("3-column row should be padded with empties: %v", tab.Rows[0])
	}
	if tab.Rows[2][4] != "on_time" {
		t.Errorf("5-column row lost data: %v", tab.Rows[2])
	}
}

func TestDecode_ExtraUnnamedColumns(t *testing.T) {
	data := "Name,Time\nBudi,08:00:00,x,y,z,extra\n"
	tab, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(tab.Header) != 6 {
		t.Fatalf("expected 6 columns, got %v", tab.Header)
	}
	// positions 3 and 4 get proper names, the rest are synthetic
	if tab.Header[3] != "Shift" || tab.Header[4] != "Status" || tab.Header[5] != "Column_5" {
		t.Errorf("unexpected synthetic names: %v", tab.Header)
	}
}

func TestDecode_BlankLinesSkipped(t *testing.T) {
	data := "Name,Time,Date\n\nBudi,08:00:00,2026-08-29\n\n"
	tab, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(tab.Rows) != 1 {
		t.Errorf("blank lines must be skipped, got %d rows", len(tab.Rows))
	}
}

func TestDecode_Empty(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Error("empty input should fail every strategy")
	}
	if _, err := Decode([]byte("\n\n")); err == nil {
		t.Error("whitespace-only input should fail every strategy")
	}
}

func TestParseLenient_SemicolonDelimiter(t *testing.T) {
	data := "Name;Time;Date\nBudi;08:00:00;2026-08-29\n"
	tab, err := parseLenient([]byte(data))
	if err != nil {
		t.Fatalf("parseLenient failed: %v", err)
	}
	if len(tab.Header) != 3 {
		t.Fatalf("semicolon header not split: %v", tab.Header)
	}
	if tab.Rows[0][0] != "Budi" {
		t.Errorf("unexpected first cell: %q", tab.Rows[0][0])
	}
}

func TestParseLenient_PipeDelimiter(t *testing.T) {
	data := "Name|Time\nBudi|08:00:00\n"
	tab, err := parseLenient([]byte(data))
	if err != nil {
		t.Fatalf("parseLenient failed: %v", err)
	}
	if len(tab.Header) != 2 || tab.Header[1] != "Time" {
		t.Errorf("pipe header not split: %v", tab.Header)
	}
}

func TestParseRaw_PadsAndTruncates(t *testing.T) {
	data := "Name,Time,Date\nBudi,08:00:00\nSari,09:00:00,2026-08-29,extra\n , , \n"
	tab, err := parseRaw([]byte(data))
	if err != nil {
		t.Fatalf("parseRaw failed: %v", err)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("expected blank row dropped, got %d rows", len(tab.Rows))
	}
	if len(tab.Rows[0]) != 3 || tab.Rows[0][2] != "" {
		t.Errorf("short row not padded to header width: %v", tab.Rows[0])
	}
	if len(tab.Rows[1]) != 3 {
		t.Errorf("long row not truncated to header width: %v", tab.Rows[1])
	}
}

func TestDecode_RowCountPreserved(t *testing.T) {
	// property: rows in == rows out, modulo blank lines
	var b strings.Builder
	b.WriteString("Name,Time,Date\n")
	for i := 0; i < 50; i++ {
		switch i % 3 {
		case 0:
			b.WriteString("A,08:00:00,2026-08-29\n")
		case 1:
			b.WriteString("B,08:00:00,2026-08-29,morning\n")
		default:
			b.WriteString("C,08:00:00,2026-08-29,night,late\n")
		}
	}
	tab, err := Decode([]byte(b.String()))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(tab.Rows) != 50 {
		t.Errorf("expected all 50 rows preserved, got %d", len(tab.Rows))
	}
}
