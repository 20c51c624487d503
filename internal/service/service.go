package service

import (
	"go.uber.org/zap"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/config"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/ledger"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/profile"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/repository"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/tracker"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/jwt"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/redis"
)

// Service aggregates all business services.
type Service struct {
	Auth       AuthService
	User       UserService
	Attendance AttendanceService
	Export     ExportService
	Calendar   CalendarService
	Capture    CaptureService
}

// NewService wires the service layer. repo and rdb may be nil when the
// database or Redis is unavailable; the attendance engine keeps working on
// the CSV ledger alone.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	store *ledger.Store,
	profiles *profile.Store,
	trk *tracker.Tracker,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	notifier := NewNotifier(&cfg.Notify, logger)
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, profiles, logger),
		Attendance: NewAttendanceService(cfg, store, profiles, trk, repo, notifier, logger),
		Export:     NewExportService(store, logger),
		Calendar:   NewCalendarService(profiles, logger),
		Capture:    NewCaptureService(&cfg.Capture, logger),
	}
}
