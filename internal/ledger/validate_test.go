package ledger

import (
	"reflect"
	"testing"
)

func TestValidate_IndonesianSynonyms(t *testing.T) {
	tab := &Table{
		Header: []string{"nama", "Waktu ", "tanggal", "SHIFT", "status absen"},
		Rows: [][]string{
			{"Budi", "08:01:00", "2026-08-29", "morning", "on_time"},
		},
	}

	got := Validate(tab)
	want := []string{"Name", "Time", "Date", "Shift", "Status"}
	if !reflect.DeepEqual(got.Header, want) {
		t.Errorf("header = %v, want %v", got.Header, want)
	}
}

func TestValidate_DuplicateColumnsKeepFirst(t *testing.T) {
	tab := &Table{
		Header: []string{"Name", "nama", "Time"},
		Rows: [][]string{
			{"Budi", "shadow", "08:00:00"},
		},
	}

	got := Validate(tab)
	if len(got.Header) != 2 {
		t.Fatalf("duplicate column not dropped: %v", got.Header)
	}
	if got.Rows[0][0] != "Budi" {
		t.Errorf("first occurrence must win, got %q", got.Rows[0][0])
	}
}

func TestValidate_DropsEmptyRows(t *testing.T) {
	tab := &Table{
		Header: []string{"Name", "Time"},
		Rows: [][]string{
			{"Budi", "08:00:00"},
			{"", ""},
			{" ", " "},
		},
	}

	got := Validate(tab)
	if len(got.Rows) != 1 {
		t.Errorf("empty rows must be dropped, got %d", len(got.Rows))
	}
}

func TestValidate_Pure(t *testing.T) {
	tab := &Table{
		Header: []string{"nama", "waktu"},
		Rows:   [][]string{{"Budi", "08:00:00"}},
	}

	first := Validate(tab)
	second := Validate(tab)
	if !reflect.DeepEqual(first, second) {
		t.Error("Validate must be deterministic for the same input")
	}
	// the input table must not be mutated
	if tab.Header[0] != "nama" {
		t.Error("Validate must not mutate its input")
	}
}

func TestValidate_Nil(t *testing.T) {
	if Validate(nil) != nil {
		t.Error("nil table stays nil")
	}
}

func TestRecords_ShortRows(t *testing.T) {
	tab := Validate(&Table{
		Header: []string{"Name", "Time", "Date", "Shift", "Status"},
		Rows: [][]string{
			{"Budi", "08:00:00"},
		},
	})

	recs := tab.Records()
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Name != "Budi" || recs[0].Shift != "" {
		t.Errorf("unexpected record: %+v", recs[0])
	}
}

func TestHasName(t *testing.T) {
	tab := Validate(&Table{
		Header: []string{"Name", "Time"},
		Rows:   [][]string{{"Budi ", "08:00:00"}},
	})

	if !tab.HasName("Budi") {
		t.Error("HasName should trim cell whitespace")
	}
	if tab.HasName("Sari") {
		t.Error("HasName must not match absent names")
	}
}
