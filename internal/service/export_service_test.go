package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/ledger"
)

func setupTestExportService(t *testing.T) (ExportService, *ledger.Store) {
	t.Helper()
	store := ledger.NewStore(t.TempDir(), zap.NewNop())
	return NewExportService(store, zap.NewNop()), store
}

var exportDay = time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)

func TestExportDay_NoData(t *testing.T) {
	svc, _ := setupTestExportService(t)

	_, _, err := svc.ExportDay(context.Background(), exportDay)
	if !errors.Is(err, ErrExportNoData) {
		t.Errorf("error = %v, want ErrExportNoData", err)
	}
}

func TestExportDay_Success(t *testing.T) {
	svc, store := setupTestExportService(t)

	rows := []ledger.Record{
		{Name: "Alice", Time: "08:01:00", Date: "2026-08-29", Shift: "morning", Status: "on_time"},
		{Name: "Bob", Time: "16:05:00", Date: "2026-08-29", Shift: "night", Status: "on_time"},
		{Name: "Citra", Time: "08:30:00", Date: "2026-08-29", Shift: "morning", Status: "late"},
	}
	for _, r := range rows {
		if err := store.Append(exportDay, r); err != nil {
			t.Fatal(err)
		}
	}

	buf, filename, err := svc.ExportDay(context.Background(), exportDay)
	if err != nil {
		t.Fatalf("ExportDay: %v", err)
	}
	if filename != "Absensi_2026-08-29.xlsx" {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue("Absensi", "A3")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Alice" {
		t.Errorf("A3 = %q, want Alice", name)
	}
	status, _ := f.GetCellValue("Absensi", "E5")
	if status != "late" {
		t.Errorf("E5 = %q, want late", status)
	}

	// Summary sheet exists and carries the morning count.
	cells, err := f.GetRows("Ringkasan")
	if err != nil {
		t.Fatalf("summary sheet: %v", err)
	}
	found := false
	for _, row := range cells {
		if len(row) >= 2 && row[0] == "morning" && row[1] == "2" {
			found = true
		}
	}
	if !found {
		t.Errorf("summary lacks morning=2: %v", cells)
	}
}
