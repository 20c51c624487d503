package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/service"
	apperrors "github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/errors"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/response"
)

// CaptureHandler controls the external recognizer process.
type CaptureHandler struct {
	captureSvc service.CaptureService
}

// NewCaptureHandler creates a CaptureHandler.
func NewCaptureHandler(captureSvc service.CaptureService) *CaptureHandler {
	return &CaptureHandler{captureSvc: captureSvc}
}

// Start
// POST /api/v1/capture/start
func (h *CaptureHandler) Start(c *gin.Context) {
	st, err := h.captureSvc.Start()
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCaptureAlreadyRunning):
			response.Conflict(c, 15001, "proses kamera sudah berjalan")
		case errors.Is(err, service.ErrCaptureDisabled):
			response.BadRequest(c, 15002, "perintah kamera belum dikonfigurasi")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, st)
}

// Stop
// POST /api/v1/capture/stop
func (h *CaptureHandler) Stop(c *gin.Context) {
	if err := h.captureSvc.Stop(); err != nil {
		if errors.Is(err, apperrors.ErrCaptureNotRunning) {
			response.Conflict(c, 15003, "tidak ada proses kamera yang berjalan")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Status
// GET /api/v1/capture/status
func (h *CaptureHandler) Status(c *gin.Context) {
	response.OK(c, h.captureSvc.Status())
}
