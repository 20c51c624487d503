package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/model"
)

// AttendanceRepository mirrors ledger rows into PostgreSQL for reporting.
type AttendanceRepository interface {
	Create(ctx context.Context, rec *model.AttendanceRecord) error
	ListByDate(ctx context.Context, date time.Time) ([]model.AttendanceRecord, error)
	ListByName(ctx context.Context, name string, limit int) ([]model.AttendanceRecord, error)
	List(ctx context.Context, name string, date *time.Time, limit int) ([]model.AttendanceRecord, error)
}

// attendanceRepo is the GORM implementation of AttendanceRepository.
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates an AttendanceRepository.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, rec *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *attendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]model.AttendanceRecord, error) {
	var recs []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("event_date = ?", date.Format("2006-01-02")).
		Order("event_time").
		Find(&recs).Error
	return recs, err
}

func (r *attendanceRepo) ListByName(ctx context.Context, name string, limit int) ([]model.AttendanceRecord, error) {
	var recs []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_name = ?", name).
		Order("event_time DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}

func (r *attendanceRepo) List(ctx context.Context, name string, date *time.Time, limit int) ([]model.AttendanceRecord, error) {
	q := r.db.WithContext(ctx).Model(&model.AttendanceRecord{})
	if name != "" {
		q = q.Where("employee_name = ?", name)
	}
	if date != nil {
		q = q.Where("event_date = ?", date.Format("2006-01-02"))
	}
	var recs []model.AttendanceRecord
	err := q.Order("event_time DESC").Limit(limit).Find(&recs).Error
	return recs, err
}
