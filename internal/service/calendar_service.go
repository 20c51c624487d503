package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/profile"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/shift"
)

// CalendarService renders an employee's upcoming shift windows as an
// iCalendar feed, one VEVENT per working day.
type CalendarService interface {
	// ShiftCalendar serializes `days` upcoming shift windows for name,
	// starting today.
	ShiftCalendar(ctx context.Context, name string, days int) (string, error)
}

type calendarService struct {
	profiles *profile.Store
	logger   *zap.Logger

	now func() time.Time
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(profiles *profile.Store, logger *zap.Logger) CalendarService {
	return &calendarService{profiles: profiles, logger: logger, now: time.Now}
}

const (
	calendarDefaultDays = 14
	calendarMaxDays     = 92
)

func (s *calendarService) ShiftCalendar(_ context.Context, name string, days int) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	if days <= 0 {
		days = calendarDefaultDays
	}
	if days > calendarMaxDays {
		days = calendarMaxDays
	}

	p := s.profiles.Lookup(name)
	startHour, endHour := shiftHours(p.Shift)

	now := s.now()
	loc := now.Location()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//absensi//shift-calendar//ID")
	cal.SetName(fmt.Sprintf("Shift %s", name))

	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, i)
		start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, loc)
		end := time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, loc)

		uid := fmt.Sprintf("%s-%s@absensi", day.Format("20060102"), string(p.Shift))
		evt := cal.AddEvent(uid)
		evt.SetCreatedTime(now)
		evt.SetDtStampTime(now)
		evt.SetStartAt(start)
		evt.SetEndAt(end)
		evt.SetSummary(fmt.Sprintf("Shift %s - %s", shiftLabel(p.Shift), name))
		evt.SetDescription(fmt.Sprintf("Jadwal shift %s (%02d:00 - %02d:00)", string(p.Shift), startHour, endHour))
	}

	return cal.Serialize(), nil
}

// shiftHours returns the working window hours for a shift kind.
func shiftHours(k shift.Kind) (startHour, endHour int) {
	if k == shift.Night {
		return 17, 22
	}
	return 8, 17
}
