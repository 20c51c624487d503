package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/config"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/dto"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/ledger"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/model"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/profile"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/repository"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/shift"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/tracker"
	apperrors "github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/errors"
)

var (
	ErrNoLedgerForDate = errors.New("tidak ada data absensi untuk tanggal tersebut")
	ErrEmptyName       = errors.New("nama tidak boleh kosong")
)

// AttendanceService reconciles recognition events against the day ledger.
//
// The CSV ledger is the ground truth: the checked-in decision always comes
// from the decoded file, never from the in-memory tracker alone. The DB
// mirror and the sound notifier are side effects and must never block or
// fail a recording.
type AttendanceService interface {
	// ProcessRecognizedFace classifies one recognition event, appends the
	// ledger row where the policy says so, and returns the outcome with a
	// display message.
	ProcessRecognizedFace(ctx context.Context, req *dto.RecognizedFaceRequest) (*dto.RecognitionResult, error)
	// GetShiftStatus classifies without recording anything.
	GetShiftStatus(ctx context.Context, name string) (*dto.ShiftStatusResponse, error)
	// GetDay returns the decoded, validated ledger for one day.
	GetDay(ctx context.Context, day time.Time) (*dto.DayResponse, error)
	// GetToday is GetDay for the current day.
	GetToday(ctx context.Context) (*dto.DayResponse, error)
	// AutoCheckout appends checkout rows for everyone who checked in today
	// but never checked out, once their shift window has closed.
	AutoCheckout(ctx context.Context) (*dto.AutoCheckoutResponse, error)
	// ListRecords queries the DB mirror.
	ListRecords(ctx context.Context, req *dto.RecordListRequest) ([]model.AttendanceRecord, error)
	// ListDevices returns registered capture devices.
	ListDevices(ctx context.Context) ([]dto.DeviceResponse, error)
}

type attendanceService struct {
	cfg      *config.Config
	store    *ledger.Store
	profiles *profile.Store
	tracker  *tracker.Tracker
	repo     *repository.Repository // nil when the DB mirror is disabled
	notifier Notifier
	logger   *zap.Logger

	now func() time.Time
}

// NewAttendanceService creates the reconciliation engine. repo may be nil;
// recording then skips the DB mirror.
func NewAttendanceService(
	cfg *config.Config,
	store *ledger.Store,
	profiles *profile.Store,
	trk *tracker.Tracker,
	repo *repository.Repository,
	notifier Notifier,
	logger *zap.Logger,
) AttendanceService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &attendanceService{
		cfg:      cfg,
		store:    store,
		profiles: profiles,
		tracker:  trk,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// classify runs the policy for name at now against the ledger state.
// Pure apart from the ledger read.
func (s *attendanceService) classify(name string, now time.Time) (assigned shift.Kind, zone shift.Zone, status shift.Status, isCheckout bool) {
	assigned = s.profiles.ShiftFor(name)
	zone = shift.CurrentZone(now)

	if zone == shift.ZoneAfterHours {
		return assigned, zone, shift.StatusOutsideHours, false
	}

	checkedIn := s.store.HasCheckedIn(now, name)
	isCheckout = shift.InCheckoutWindow(zone, now) && zoneMatches(assigned, zone)

	if isCheckout {
		if !checkedIn {
			return assigned, zone, shift.StatusNoCheckin, true
		}
		return assigned, zone, shift.StatusCheckout, true
	}

	if checkedIn {
		return assigned, zone, shift.StatusAlreadyCheckedIn, false
	}

	if s.cfg.Feature.CrossShiftPolicy {
		status = shift.ClassifyCrossShift(assigned, now)
	} else {
		status = shift.Classify(assigned, now)
	}
	return assigned, zone, status, false
}

// zoneMatches reports whether the wall-clock zone is the assigned shift's own
// window; checkout only counts at the end of one's own shift.
func zoneMatches(assigned shift.Kind, zone shift.Zone) bool {
	return (assigned == shift.Morning && zone == shift.ZoneMorning) ||
		(assigned == shift.Night && zone == shift.ZoneNight)
}

// recordable reports whether the status produces a ledger row. Duplicate
// check-ins and failed checkouts are reported but never written.
func recordable(status shift.Status) bool {
	switch status {
	case shift.StatusAlreadyCheckedIn, shift.StatusNoCheckin:
		return false
	}
	return true
}

func (s *attendanceService) ProcessRecognizedFace(ctx context.Context, req *dto.RecognizedFaceRequest) (*dto.RecognitionResult, error) {
	if req.Name == "" {
		return nil, ErrEmptyName
	}
	now := s.now()

	assigned, zone, status, isCheckout := s.classify(req.Name, now)

	result := &dto.RecognitionResult{
		Name:          req.Name,
		AssignedShift: string(assigned),
		CurrentShift:  zone.String(),
		Status:        string(status),
		IsCheckout:    isCheckout,
		Time:          now.Format("15:04:05"),
		Date:          now.Format("2006-01-02"),
	}

	// Cooldown guards against the recognizer firing several times per
	// second on the same face. It applies to every event class.
	if s.tracker.InCooldown(req.Name, now) {
		result.Recorded = false
		result.Message = fmt.Sprintf("⏳ Tunggu sebentar!\nNama: %s\nAbsensi baru saja dicatat.", req.Name)
		return result, nil
	}

	if recordable(status) {
		rec := ledger.Record{
			Name:   req.Name,
			Time:   result.Time,
			Date:   result.Date,
			Shift:  zone.String(),
			Status: string(status),
		}
		if err := s.store.Append(now, rec); err != nil {
			s.logger.Error("ledger append failed",
				zap.String("name", req.Name),
				zap.String("status", string(status)),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %v", apperrors.ErrLedgerAppend, err)
		}
		result.Recorded = true

		if status == shift.StatusOnTime || status == shift.StatusLate {
			s.tracker.RecordMark(req.Name, assigned, now)
		} else {
			s.tracker.Touch(req.Name, now)
		}
		s.mirror(ctx, req, rec, now)
	} else {
		// Rejected events still restart the cooldown so the recognizer
		// does not spam the same refusal.
		s.tracker.Touch(req.Name, now)
	}

	result.Message = statusMessage(req.Name, assigned, zone, status)
	s.notify(status)
	s.heartbeat(ctx, req, now)

	return result, nil
}

// mirror inserts the row into PostgreSQL. Best effort: a down database never
// fails a recording.
func (s *attendanceService) mirror(ctx context.Context, req *dto.RecognizedFaceRequest, rec ledger.Record, now time.Time) {
	if s.repo == nil {
		return
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	err := s.repo.Attendance.Create(ctx, &model.AttendanceRecord{
		EmployeeName: rec.Name,
		EventDate:    day,
		EventTime:    now,
		Shift:        rec.Shift,
		Status:       rec.Status,
		DeviceID:     req.DeviceID,
	})
	if err != nil {
		s.logger.Warn("attendance mirror insert failed", zap.Error(err))
	}
}

// heartbeat upserts the posting device. Best effort.
func (s *attendanceService) heartbeat(ctx context.Context, req *dto.RecognizedFaceRequest, now time.Time) {
	if s.repo == nil || req.DeviceID == "" {
		return
	}
	err := s.repo.Device.Upsert(ctx, &model.Device{
		DeviceID:   req.DeviceID,
		Name:       req.DeviceName,
		Location:   req.DeviceLocation,
		Status:     "active",
		LastActive: now,
	})
	if err != nil {
		s.logger.Warn("device heartbeat failed", zap.Error(err))
	}
}

// notify plays the outcome sound. Best effort.
func (s *attendanceService) notify(status shift.Status) {
	switch status {
	case shift.StatusOnTime, shift.StatusCheckout:
		s.notifier.Play(SoundSuccess)
	default:
		s.notifier.Play(SoundNotification)
	}
}

func (s *attendanceService) GetShiftStatus(_ context.Context, name string) (*dto.ShiftStatusResponse, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	now := s.now()
	assigned, zone, status, isCheckout := s.classify(name, now)
	return &dto.ShiftStatusResponse{
		Name:          name,
		AssignedShift: string(assigned),
		CurrentShift:  zone.String(),
		Status:        string(status),
		IsCheckout:    isCheckout,
	}, nil
}

func (s *attendanceService) GetDay(_ context.Context, day time.Time) (*dto.DayResponse, error) {
	tbl := s.store.ReadDay(day)
	if tbl == nil {
		return nil, ErrNoLedgerForDate
	}
	tbl = ledger.Validate(tbl)

	resp := &dto.DayResponse{Date: day.Format("2006-01-02")}
	for _, rec := range tbl.Records() {
		resp.Records = append(resp.Records, dto.AttendanceRowResponse{
			Name:   rec.Name,
			Time:   rec.Time,
			Date:   rec.Date,
			Shift:  rec.Shift,
			Status: rec.Status,
		})
	}
	resp.Count = len(resp.Records)
	return resp, nil
}

func (s *attendanceService) GetToday(ctx context.Context) (*dto.DayResponse, error) {
	return s.GetDay(ctx, s.now())
}

func (s *attendanceService) AutoCheckout(ctx context.Context) (*dto.AutoCheckoutResponse, error) {
	now := s.now()
	resp := &dto.AutoCheckoutResponse{Date: now.Format("2006-01-02")}

	tbl := s.store.ReadDay(now)
	if tbl == nil {
		return resp, nil
	}
	tbl = ledger.Validate(tbl)

	type state struct {
		shift      string
		checkedIn  bool
		checkedOut bool
	}
	people := map[string]*state{}
	order := []string{}
	for _, rec := range tbl.Records() {
		st, ok := people[rec.Name]
		if !ok {
			st = &state{}
			people[rec.Name] = st
			order = append(order, rec.Name)
		}
		switch shift.Status(rec.Status) {
		case shift.StatusOnTime, shift.StatusLate:
			st.checkedIn = true
			st.shift = rec.Shift
		case shift.StatusCheckout:
			st.checkedOut = true
		}
	}

	for _, name := range order {
		st := people[name]
		if !st.checkedIn || st.checkedOut {
			continue
		}
		kind, ok := shift.ParseKind(st.shift)
		if !ok {
			kind = s.profiles.ShiftFor(name)
		}
		if !shiftEnded(kind, now) {
			continue
		}

		rec := ledger.Record{
			Name:   name,
			Time:   now.Format("15:04:05"),
			Date:   resp.Date,
			Shift:  string(kind),
			Status: string(shift.StatusCheckout),
		}
		if err := s.store.Append(now, rec); err != nil {
			s.logger.Error("auto-checkout append failed",
				zap.String("name", name), zap.Error(err))
			continue
		}
		s.mirror(ctx, &dto.RecognizedFaceRequest{Name: name}, rec, now)
		resp.CheckedOut = append(resp.CheckedOut, name)
	}

	if len(resp.CheckedOut) > 0 {
		s.logger.Info("auto-checkout sweep",
			zap.String("date", resp.Date),
			zap.Strings("names", resp.CheckedOut))
	}
	return resp, nil
}

// shiftEnded reports whether kind's working window has closed at now.
func shiftEnded(kind shift.Kind, now time.Time) bool {
	m := now.Hour()*60 + now.Minute()
	switch kind {
	case shift.Morning:
		return m >= 17*60
	case shift.Night:
		return m >= 22*60
	}
	return false
}

func (s *attendanceService) ListRecords(ctx context.Context, req *dto.RecordListRequest) ([]model.AttendanceRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	var date *time.Time
	if req.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", req.Date, s.now().Location())
		if err != nil {
			return nil, err
		}
		date = &d
	}
	return s.repo.Attendance.List(ctx, req.Name, date, 500)
}

func (s *attendanceService) ListDevices(ctx context.Context) ([]dto.DeviceResponse, error) {
	if s.repo == nil {
		return nil, nil
	}
	devs, err := s.repo.Device.List(ctx)
	if err != nil {
		s.logger.Error("device listing failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.DeviceResponse, 0, len(devs))
	for _, d := range devs {
		out = append(out, dto.DeviceResponse{
			DeviceID:   d.DeviceID,
			Name:       d.Name,
			Location:   d.Location,
			Status:     d.Status,
			LastActive: d.LastActive.Format(time.RFC3339),
		})
	}
	return out, nil
}

// ── display messages ──────────────────────────────────────────────

// statusMessage builds the Indonesian message shown on the capture device.
func statusMessage(name string, assigned shift.Kind, zone shift.Zone, status shift.Status) string {
	switch status {
	case shift.StatusOutsideHours:
		return fmt.Sprintf("❌ Di luar jam kerja!\nNama: %s\n\nJam kerja:\nShift Pagi: 08:00 - 17:00\nShift Malam: 17:00 - 22:00", name)
	case shift.StatusOffShift:
		window := "Pagi: 08:00 - 17:00"
		if assigned == shift.Night {
			window = "Malam: 17:00 - 22:00"
		}
		return fmt.Sprintf("⚠️ Luar Shift Anda!\nNama: %s\nAnda terdaftar di shift %s\nWaktu shift Anda:\n%s\nAbsensi tetap dicatat dengan status 'off_shift'",
			name, shiftLabel(assigned), window)
	case shift.StatusNoCheckin:
		return fmt.Sprintf("❌ Tidak dapat melakukan checkout!\nNama: %s\nAnda belum melakukan check-in hari ini.", name)
	case shift.StatusAlreadyCheckedIn:
		return fmt.Sprintf("⚠️ Sudah absen masuk!\nNama: %s\nSilakan lakukan checkout di jam pulang.", name)
	case shift.StatusCheckout:
		return fmt.Sprintf("✅ Checkout berhasil!\nNama: %s\nTerima kasih atas kerja kerasnya hari ini!", name)
	case shift.StatusOnTime:
		return fmt.Sprintf("✅ Check-in tepat waktu!\nNama: %s\nShift: %s\nBatas: %s", name, shiftLabel(assigned), deadline(assigned))
	case shift.StatusLate:
		return fmt.Sprintf("⚠️ Check-in terlambat!\nNama: %s\nShift: %s\nBatas: %s", name, shiftLabel(assigned), deadline(assigned))
	case shift.StatusWrongShift:
		return fmt.Sprintf("⚠️ Shift salah!\nNama: %s\nAnda terdaftar di shift %s.", name, shiftLabel(assigned))
	case shift.StatusOvertimeCheckin:
		return fmt.Sprintf("⚠️ Check-in lembur dicatat.\nNama: %s", name)
	default:
		return fmt.Sprintf("ℹ️ Absensi tercatat\nNama: %s\nStatus: %s", name, status)
	}
}

func shiftLabel(k shift.Kind) string {
	if k == shift.Night {
		return "MALAM"
	}
	return "PAGI"
}

func deadline(k shift.Kind) string {
	if k == shift.Night {
		return "17:00"
	}
	return "08:00"
}
