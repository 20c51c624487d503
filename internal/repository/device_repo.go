package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/model"
)

// DeviceRepository tracks capture devices and their heartbeats.
type DeviceRepository interface {
	Upsert(ctx context.Context, dev *model.Device) error
	List(ctx context.Context) ([]model.Device, error)
}

// deviceRepo is the GORM implementation of DeviceRepository.
type deviceRepo struct {
	db *gorm.DB
}

// NewDeviceRepo creates a DeviceRepository.
func NewDeviceRepo(db *gorm.DB) DeviceRepository {
	return &deviceRepo{db: db}
}

// Upsert inserts the device or refreshes its metadata and last_active.
func (r *deviceRepo) Upsert(ctx context.Context, dev *model.Device) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "location", "status", "last_active"}),
		}).
		Create(dev).Error
}

func (r *deviceRepo) List(ctx context.Context) ([]model.Device, error) {
	var devs []model.Device
	err := r.db.WithContext(ctx).
		Order("last_active DESC").
		Find(&devs).Error
	return devs, err
}
