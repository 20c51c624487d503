package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/model"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // keyed by user_id and username
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("test-user-%d", m.seq)
	}
	m.users[user.UserID] = user
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	seen := map[string]bool{}
	var result []model.User
	for _, u := range m.users {
		if !seen[u.UserID] {
			seen[u.UserID] = true
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records []model.AttendanceRecord
	failing bool // simulate a down database
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

func (m *mockAttendanceRepo) Create(_ context.Context, rec *model.AttendanceRecord) error {
	if m.failing {
		return fmt.Errorf("connection refused")
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.EventDate.Format("2006-01-02") == date.Format("2006-01-02") {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByName(_ context.Context, name string, limit int) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.EmployeeName == name {
			result = append(result, r)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockAttendanceRepo) List(_ context.Context, name string, date *time.Time, limit int) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if name != "" && r.EmployeeName != name {
			continue
		}
		if date != nil && r.EventDate.Format("2006-01-02") != date.Format("2006-01-02") {
			continue
		}
		result = append(result, r)
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Mock DeviceRepository ──

type mockDeviceRepo struct {
	devices map[string]*model.Device
}

func newMockDeviceRepo() *mockDeviceRepo {
	return &mockDeviceRepo{devices: make(map[string]*model.Device)}
}

func (m *mockDeviceRepo) Upsert(_ context.Context, dev *model.Device) error {
	m.devices[dev.DeviceID] = dev
	return nil
}

func (m *mockDeviceRepo) List(_ context.Context) ([]model.Device, error) {
	var result []model.Device
	for _, d := range m.devices {
		result = append(result, *d)
	}
	return result, nil
}

// newMockRepository bundles the mocks into a repository.Repository.
func newMockRepository() (*repository.Repository, *mockUserRepo, *mockAttendanceRepo, *mockDeviceRepo) {
	users := newMockUserRepo()
	att := newMockAttendanceRepo()
	devs := newMockDeviceRepo()
	return &repository.Repository{User: users, Attendance: att, Device: devs}, users, att, devs
}
