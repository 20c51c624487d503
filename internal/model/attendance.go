package model

import "time"

// AttendanceRecord mirrors one CSV ledger row into PostgreSQL, table
// attendance_records. The CSV ledger stays authoritative; this table only
// serves reporting queries, so inserts are best-effort.
type AttendanceRecord struct {
	RecordID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	EmployeeName string    `gorm:"type:varchar(100);not null;index:idx_attendance_records_name_date" json:"employee_name"`
	EventDate    time.Time `gorm:"type:date;not null;index:idx_attendance_records_date;index:idx_attendance_records_name_date" json:"event_date"`
	EventTime    time.Time `gorm:"not null"                            json:"event_time"`
	Shift        string    `gorm:"type:varchar(20);not null"           json:"shift"`
	Status       string    `gorm:"type:varchar(30);not null"           json:"status"`
	DeviceID     string    `gorm:"type:varchar(100);not null;default:''" json:"device_id"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"created_at"`
}

// TableName specifies the table name.
func (AttendanceRecord) TableName() string { return "attendance_records" }
