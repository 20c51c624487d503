package handler

import "github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Attendance *AttendanceHandler
	Export     *ExportHandler
	Capture    *CaptureHandler
}

// NewHandler wires the handler layer.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Attendance: NewAttendanceHandler(svc.Attendance, svc.Calendar),
		Export:     NewExportHandler(svc.Export),
		Capture:    NewCaptureHandler(svc.Capture),
	}
}
