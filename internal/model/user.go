package model

import "time"

// User is a dashboard/API account, table users.
type User struct {
	UserID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string    `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	FullName     string    `gorm:"type:varchar(100);not null"                     json:"full_name"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'staff'"      json:"role"`
	Shift        string    `gorm:"type:varchar(20);not null;default:'morning'"    json:"shift"`
	IsActive     bool      `gorm:"not null;default:true"                          json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName specifies the table name.
func (User) TableName() string { return "users" }

// Roles accepted by the API. Admin manages users and devices; staff only
// reads attendance data.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)
