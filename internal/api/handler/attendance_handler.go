package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/dto"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/service"
	apperrors "github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/errors"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/response"
)

// AttendanceHandler serves the recognition and ledger endpoints.
type AttendanceHandler struct {
	attSvc service.AttendanceService
	calSvc service.CalendarService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attSvc service.AttendanceService, calSvc service.CalendarService) *AttendanceHandler {
	return &AttendanceHandler{attSvc: attSvc, calSvc: calSvc}
}

// Recognized receives one recognition event from a capture device.
// POST /api/v1/attendance/recognized
func (h *AttendanceHandler) Recognized(c *gin.Context) {
	var req dto.RecognizedFaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validasi parameter gagal")
		return
	}

	result, err := h.attSvc.ProcessRecognizedFace(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyName):
			response.BadRequest(c, 12001, "nama tidak boleh kosong")
		case errors.Is(err, apperrors.ErrLedgerAppend):
			response.Error(c, http.StatusInternalServerError, 12002, "gagal mencatat absensi")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// ShiftStatus classifies without recording.
// GET /api/v1/attendance/status/:name
func (h *AttendanceHandler) ShiftStatus(c *gin.Context) {
	name := c.Param("name")

	result, err := h.attSvc.GetShiftStatus(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			response.BadRequest(c, 12001, "nama tidak boleh kosong")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Today returns today's decoded ledger.
// GET /api/v1/attendance/today
func (h *AttendanceHandler) Today(c *gin.Context) {
	result, err := h.attSvc.GetToday(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoLedgerForDate) {
			response.OK(c, &dto.DayResponse{Date: time.Now().Format("2006-01-02")})
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// History returns the decoded ledger for a past date.
// GET /api/v1/attendance/history?date=YYYY-MM-DD
func (h *AttendanceHandler) History(c *gin.Context) {
	var req dto.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "format tanggal harus YYYY-MM-DD")
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		response.BadRequest(c, 10001, "format tanggal harus YYYY-MM-DD")
		return
	}

	result, err := h.attSvc.GetDay(c.Request.Context(), day)
	if err != nil {
		if errors.Is(err, service.ErrNoLedgerForDate) {
			response.NotFound(c, 12003, "tidak ada data absensi untuk tanggal tersebut")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Records lists the DB mirror (admin reporting).
// GET /api/v1/attendance/records?name=&date=
func (h *AttendanceHandler) Records(c *gin.Context) {
	var req dto.RecordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validasi parameter gagal")
		return
	}

	result, err := h.attSvc.ListRecords(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// AutoCheckout runs one auto-checkout sweep.
// POST /api/v1/attendance/auto-checkout
func (h *AttendanceHandler) AutoCheckout(c *gin.Context) {
	result, err := h.attSvc.AutoCheckout(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Devices lists registered capture devices.
// GET /api/v1/devices
func (h *AttendanceHandler) Devices(c *gin.Context) {
	result, err := h.attSvc.ListDevices(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ShiftCalendar serves an employee's shift windows as an ICS feed.
// GET /api/v1/shifts/:name/calendar.ics?days=14
func (h *AttendanceHandler) ShiftCalendar(c *gin.Context) {
	name := c.Param("name")
	days := 0
	if v, ok := c.GetQuery("days"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			response.BadRequest(c, 10001, "days harus bilangan positif")
			return
		}
		days = parsed
	}

	out, err := h.calSvc.ShiftCalendar(c.Request.Context(), name, days)
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			response.BadRequest(c, 12001, "nama tidak boleh kosong")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shift-calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(out))
}
