package model

import "time"

// Device is a capture device posting recognition events, table devices.
// Devices are upserted on each event, so the row doubles as a heartbeat.
type Device struct {
	DeviceID   string    `gorm:"type:varchar(100);primaryKey"           json:"device_id"`
	Name       string    `gorm:"type:varchar(100);not null;default:''"  json:"name"`
	Location   string    `gorm:"type:varchar(100);not null;default:''"  json:"location"`
	Status     string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	LastActive time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"last_active"`
}

// TableName specifies the table name.
func (Device) TableName() string { return "devices" }
