package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/ledger"
)

var (
	ErrExportNoData       = errors.New("tidak ada data absensi untuk diekspor")
	ErrExportGenerateFail = errors.New("gagal membuat file Excel")
)

// ExportService renders a day ledger as an .xlsx workbook.
//
// Output format:
//   - sheet "Absensi": the validated rows, one per line
//   - sheet "Ringkasan": counts per shift and per status
//
// The buffer is returned to the handler, which sets the download headers.
type ExportService interface {
	ExportDay(ctx context.Context, day time.Time) (*bytes.Buffer, string, error)
}

type exportService struct {
	store  *ledger.Store
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(store *ledger.Store, logger *zap.Logger) ExportService {
	return &exportService{store: store, logger: logger}
}

func (s *exportService) ExportDay(_ context.Context, day time.Time) (*bytes.Buffer, string, error) {
	tbl := s.store.ReadDay(day)
	if tbl == nil {
		return nil, "", ErrExportNoData
	}
	tbl = ledger.Validate(tbl)
	records := tbl.Records()
	if len(records) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Absensi"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "C", 14)
	f.SetColWidth(sheet, "D", "E", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	dateLabel := day.Format("2006-01-02")
	f.SetCellValue(sheet, "A1", fmt.Sprintf("Absensi - %s", dateLabel))
	f.MergeCell(sheet, "A1", "E1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"Nama", "Waktu", "Tanggal", "Shift", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	shiftCount := map[string]int{}
	statusCount := map[string]int{}
	for i, rec := range records {
		row := i + 3
		values := []string{rec.Name, rec.Time, rec.Date, rec.Shift, rec.Status}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		shiftCount[rec.Shift]++
		statusCount[rec.Status]++
	}

	writeSummary(f, headerStyle, shiftCount, statusCount)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("excel write failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("Absensi_%s.xlsx", dateLabel)
	return buf, filename, nil
}

func writeSummary(f *excelize.File, headerStyle int, shiftCount, statusCount map[string]int) {
	const sheet = "Ringkasan"
	if _, err := f.NewSheet(sheet); err != nil {
		return
	}
	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 10)

	f.SetCellValue(sheet, "A1", "Per Shift")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)
	row := 2
	for _, k := range []string{"morning", "night", "outside_hours"} {
		if n, ok := shiftCount[k]; ok {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), k)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), n)
			row++
		}
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Per Status")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), headerStyle)
	row++
	for _, k := range []string{"on_time", "late", "checkout", "off_shift", "outside_hours", "wrong_shift", "overtime_checkin"} {
		if n, ok := statusCount[k]; ok {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), k)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), n)
			row++
		}
	}
}
