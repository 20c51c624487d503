package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/service"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the Excel export endpoint.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportDay downloads one day ledger as .xlsx.
// GET /api/v1/export/attendance?date=YYYY-MM-DD (date defaults to today)
func (h *ExportHandler) ExportDay(c *gin.Context) {
	day := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			response.BadRequest(c, 10001, "format tanggal harus YYYY-MM-DD")
			return
		}
		day = parsed
	}

	buf, filename, err := h.exportSvc.ExportDay(c.Request.Context(), day)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoData):
			response.NotFound(c, 14001, "tidak ada data absensi untuk diekspor")
		default:
			response.InternalError(c)
		}
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
