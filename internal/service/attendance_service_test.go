package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/config"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/dto"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/ledger"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/profile"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/tracker"
)

// recordingNotifier captures the cues Play receives.
type recordingNotifier struct {
	mu     sync.Mutex
	sounds []Sound
}

func (n *recordingNotifier) Play(s Sound) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sounds = append(n.sounds, s)
}

// engineFixture wires a full attendance engine over temp dirs and mocks.
type engineFixture struct {
	svc      *attendanceService
	att      *mockAttendanceRepo
	devs     *mockDeviceRepo
	notifier *recordingNotifier
	store    *ledger.Store
}

func newEngineFixture(t *testing.T, registry string) *engineFixture {
	t.Helper()

	dir := t.TempDir()
	profilePath := filepath.Join(dir, "user_data.json")
	if registry == "" {
		registry = `{
			"Alice": {"shift": "morning", "role": "employee"},
			"Bob":   {"shift": "night",   "role": "employee"}
		}`
	}
	if err := os.WriteFile(profilePath, []byte(registry), 0o644); err != nil {
		t.Fatalf("write registry: %v", err)
	}

	cfg := &config.Config{}
	cfg.Attendance.Dir = filepath.Join(dir, "Attendance_Entry")
	cfg.Attendance.Cooldown = 300 * time.Second

	logger := zap.NewNop()
	store := ledger.NewStore(cfg.Attendance.Dir, logger)
	profiles := profile.NewStore(profilePath, logger)
	trk := tracker.New(cfg.Attendance.Cooldown)
	repo, _, att, devs := newMockRepository()
	notifier := &recordingNotifier{}

	svc := NewAttendanceService(cfg, store, profiles, trk, repo, notifier, logger).(*attendanceService)
	return &engineFixture{svc: svc, att: att, devs: devs, notifier: notifier, store: store}
}

// at pins the engine clock to the given local time on 2026-08-29.
func (f *engineFixture) at(hour, minute, second int) time.Time {
	now := time.Date(2026, 8, 29, hour, minute, second, 0, time.Local)
	f.svc.now = func() time.Time { return now }
	return now
}

func (f *engineFixture) process(t *testing.T, name string) *dto.RecognitionResult {
	t.Helper()
	res, err := f.svc.ProcessRecognizedFace(context.Background(), &dto.RecognizedFaceRequest{Name: name})
	if err != nil {
		t.Fatalf("ProcessRecognizedFace(%s): %v", name, err)
	}
	return res
}

func (f *engineFixture) ledgerRows(t *testing.T) []ledger.Record {
	t.Helper()
	return f.store.RecordsFor(time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local))
}

// ── end-to-end scenarios ──────────────────────────────────────────

func TestProcess_MorningOnTimeThenDuplicate(t *testing.T) {
	f := newEngineFixture(t, "")

	// Alice arrives five minutes early: on_time, one row appended.
	f.at(7, 55, 0)
	res := f.process(t, "Alice")
	if res.Status != "on_time" || !res.Recorded {
		t.Fatalf("07:55 = %s recorded=%v, want on_time recorded", res.Status, res.Recorded)
	}
	if res.AssignedShift != "morning" || res.CurrentShift != "morning" {
		t.Errorf("shifts = %s/%s, want morning/morning", res.AssignedShift, res.CurrentShift)
	}
	if !strings.Contains(res.Message, "tepat waktu") {
		t.Errorf("message %q lacks on-time wording", res.Message)
	}

	// Second pass at 09:00: rejected, no second row.
	f.at(9, 0, 0)
	res = f.process(t, "Alice")
	if res.Status != "already_checkedin" || res.Recorded {
		t.Fatalf("09:00 = %s recorded=%v, want already_checkedin unrecorded", res.Status, res.Recorded)
	}

	rows := f.ledgerRows(t)
	if len(rows) != 1 {
		t.Fatalf("ledger rows = %d, want exactly 1", len(rows))
	}
	if rows[0].Name != "Alice" || rows[0].Status != "on_time" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestProcess_NightShiftFullDay(t *testing.T) {
	f := newEngineFixture(t, "")

	// Early arrival at 16:05 counts as on_time for the night shift.
	f.at(16, 5, 0)
	if res := f.process(t, "Bob"); res.Status != "on_time" {
		t.Fatalf("16:05 = %s, want on_time", res.Status)
	}

	// Checkout at 22:05.
	f.at(22, 5, 0)
	res := f.process(t, "Bob")
	if res.Status != "checkout" || !res.IsCheckout || !res.Recorded {
		t.Fatalf("22:05 = %s checkout=%v recorded=%v", res.Status, res.IsCheckout, res.Recorded)
	}
	if !strings.Contains(res.Message, "Checkout berhasil") {
		t.Errorf("message %q lacks checkout wording", res.Message)
	}

	rows := f.ledgerRows(t)
	if len(rows) != 2 {
		t.Fatalf("ledger rows = %d, want 2", len(rows))
	}
	if rows[1].Status != "checkout" {
		t.Errorf("second row status = %s", rows[1].Status)
	}
}

func TestProcess_LateArrival(t *testing.T) {
	f := newEngineFixture(t, "")

	f.at(8, 16, 0)
	res := f.process(t, "Alice")
	if res.Status != "late" || !res.Recorded {
		t.Fatalf("08:16 = %s recorded=%v, want late recorded", res.Status, res.Recorded)
	}
	if !strings.Contains(res.Message, "terlambat") {
		t.Errorf("message %q lacks late wording", res.Message)
	}
}

func TestProcess_CheckoutWithoutCheckin(t *testing.T) {
	f := newEngineFixture(t, "")

	f.at(17, 5, 0)
	res := f.process(t, "Alice")
	if res.Status != "no_checkin" || res.Recorded {
		t.Fatalf("17:05 = %s recorded=%v, want no_checkin unrecorded", res.Status, res.Recorded)
	}
	if rows := f.ledgerRows(t); len(rows) != 0 {
		t.Errorf("ledger rows = %d, want none", len(rows))
	}
}

func TestProcess_OutsideHours(t *testing.T) {
	f := newEngineFixture(t, "")

	f.at(23, 0, 0)
	res := f.process(t, "Alice")
	if res.Status != "outside_hours" || !res.Recorded {
		t.Fatalf("23:00 = %s recorded=%v, want outside_hours recorded", res.Status, res.Recorded)
	}
	if res.CurrentShift != "outside_hours" {
		t.Errorf("current shift = %s", res.CurrentShift)
	}
	if !strings.Contains(res.Message, "Di luar jam kerja") {
		t.Errorf("message %q lacks outside-hours wording", res.Message)
	}
}

func TestProcess_OffShiftStillRecorded(t *testing.T) {
	f := newEngineFixture(t, "")

	// Bob is assigned the night shift; showing up at 10:00 is off_shift but
	// the mark still goes into the ledger.
	f.at(10, 0, 0)
	res := f.process(t, "Bob")
	if res.Status != "off_shift" || !res.Recorded {
		t.Fatalf("10:00 = %s recorded=%v, want off_shift recorded", res.Status, res.Recorded)
	}

	rows := f.ledgerRows(t)
	if len(rows) != 1 || rows[0].Status != "off_shift" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestProcess_CooldownSuppressesRapidRepeats(t *testing.T) {
	f := newEngineFixture(t, "")

	f.at(8, 0, 0)
	f.process(t, "Alice")

	// 30 seconds later the recognizer fires again on the same face.
	f.at(8, 0, 30)
	res := f.process(t, "Alice")
	if res.Recorded {
		t.Fatal("repeat within cooldown was recorded")
	}
	if !strings.Contains(res.Message, "Tunggu sebentar") {
		t.Errorf("message %q lacks cooldown wording", res.Message)
	}
	if rows := f.ledgerRows(t); len(rows) != 1 {
		t.Errorf("ledger rows = %d, want 1", len(rows))
	}
}

func TestProcess_UnknownNameDefaultsToMorning(t *testing.T) {
	f := newEngineFixture(t, "")

	f.at(8, 5, 0)
	res := f.process(t, "Stranger")
	if res.AssignedShift != "morning" || res.Status != "on_time" {
		t.Errorf("unknown name = %s/%s, want morning/on_time", res.AssignedShift, res.Status)
	}
}

func TestProcess_EmptyName(t *testing.T) {
	f := newEngineFixture(t, "")

	_, err := f.svc.ProcessRecognizedFace(context.Background(), &dto.RecognizedFaceRequest{})
	if err != ErrEmptyName {
		t.Errorf("empty name error = %v, want ErrEmptyName", err)
	}
}

func TestProcess_MirrorFailureDoesNotFailRecording(t *testing.T) {
	f := newEngineFixture(t, "")
	f.att.failing = true

	f.at(8, 0, 0)
	res := f.process(t, "Alice")
	if !res.Recorded {
		t.Fatal("DB mirror failure blocked the recording")
	}
	if rows := f.ledgerRows(t); len(rows) != 1 {
		t.Errorf("ledger rows = %d, want 1", len(rows))
	}
}

func TestProcess_DeviceHeartbeat(t *testing.T) {
	f := newEngineFixture(t, "")

	f.at(8, 0, 0)
	_, err := f.svc.ProcessRecognizedFace(context.Background(), &dto.RecognizedFaceRequest{
		Name:           "Alice",
		DeviceID:       "cam-lobby",
		DeviceName:     "Lobby Camera",
		DeviceLocation: "Lantai 1",
	})
	if err != nil {
		t.Fatal(err)
	}

	dev, ok := f.devs.devices["cam-lobby"]
	if !ok {
		t.Fatal("device was not upserted")
	}
	if dev.Location != "Lantai 1" || dev.Status != "active" {
		t.Errorf("device = %+v", dev)
	}
}

func TestProcess_NotificationSounds(t *testing.T) {
	f := newEngineFixture(t, "")

	f.at(8, 0, 0)
	f.process(t, "Alice")
	f.at(8, 20, 0)
	f.process(t, "Bob") // off_shift

	if len(f.notifier.sounds) != 2 {
		t.Fatalf("sounds = %v", f.notifier.sounds)
	}
	if f.notifier.sounds[0] != SoundSuccess || f.notifier.sounds[1] != SoundNotification {
		t.Errorf("sounds = %v, want [success notification]", f.notifier.sounds)
	}
}

func TestProcess_LedgerGroundTruthAfterRestart(t *testing.T) {
	f := newEngineFixture(t, "")

	f.at(8, 0, 0)
	f.process(t, "Alice")

	// Simulate a process restart: fresh tracker, same ledger directory.
	f.svc.tracker = tracker.New(300 * time.Second)

	f.at(9, 0, 0)
	res := f.process(t, "Alice")
	if res.Status != "already_checkedin" || res.Recorded {
		t.Fatalf("post-restart = %s recorded=%v, want already_checkedin unrecorded", res.Status, res.Recorded)
	}
}

// ── shift status (no recording) ───────────────────────────────────

func TestGetShiftStatus_DoesNotRecord(t *testing.T) {
	f := newEngineFixture(t, "")

	f.at(8, 5, 0)
	st, err := f.svc.GetShiftStatus(context.Background(), "Alice")
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != "on_time" || st.IsCheckout {
		t.Errorf("status = %+v", st)
	}
	if rows := f.ledgerRows(t); len(rows) != 0 {
		t.Errorf("GetShiftStatus appended %d rows", len(rows))
	}
}

// ── day retrieval ─────────────────────────────────────────────────

func TestGetDay(t *testing.T) {
	f := newEngineFixture(t, "")

	f.at(8, 0, 0)
	f.process(t, "Alice")

	day, err := f.svc.GetDay(context.Background(), time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatal(err)
	}
	if day.Count != 1 || day.Records[0].Name != "Alice" {
		t.Errorf("day = %+v", day)
	}

	_, err = f.svc.GetDay(context.Background(), time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local))
	if err != ErrNoLedgerForDate {
		t.Errorf("missing day error = %v, want ErrNoLedgerForDate", err)
	}
}

// ── auto checkout ─────────────────────────────────────────────────

func TestAutoCheckout(t *testing.T) {
	f := newEngineFixture(t, "")

	// Alice checks in but never checks out; Bob does a full night cycle.
	f.at(8, 0, 0)
	f.process(t, "Alice")
	f.at(16, 5, 0)
	f.process(t, "Bob")
	f.at(22, 5, 0)
	f.process(t, "Bob")

	// Sweep at 22:30: Alice's morning window closed at 17:00.
	f.at(22, 30, 0)
	resp, err := f.svc.AutoCheckout(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.CheckedOut) != 1 || resp.CheckedOut[0] != "Alice" {
		t.Fatalf("checked out = %v, want [Alice]", resp.CheckedOut)
	}

	rows := f.ledgerRows(t)
	if len(rows) != 4 {
		t.Fatalf("ledger rows = %d, want 4", len(rows))
	}
	last := rows[3]
	if last.Name != "Alice" || last.Status != "checkout" || last.Shift != "morning" {
		t.Errorf("appended row = %+v", last)
	}

	// A second sweep is a no-op.
	resp, err = f.svc.AutoCheckout(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.CheckedOut) != 0 {
		t.Errorf("second sweep checked out %v", resp.CheckedOut)
	}
}

func TestAutoCheckout_ShiftStillOpen(t *testing.T) {
	f := newEngineFixture(t, "")

	f.at(8, 0, 0)
	f.process(t, "Alice")

	// At 12:00 the morning window is still open: no checkout yet.
	f.at(12, 0, 0)
	resp, err := f.svc.AutoCheckout(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.CheckedOut) != 0 {
		t.Errorf("open shift was auto-checked-out: %v", resp.CheckedOut)
	}
}

// ── cross-shift policy variant ────────────────────────────────────

func TestProcess_CrossShiftPolicyVariant(t *testing.T) {
	f := newEngineFixture(t, "")
	f.svc.cfg.Feature.CrossShiftPolicy = true

	// Bob (night) appears at 10:00: the legacy variant flags wrong_shift
	// instead of off_shift.
	f.at(10, 0, 0)
	res := f.process(t, "Bob")
	if res.Status != "wrong_shift" || !res.Recorded {
		t.Fatalf("10:00 = %s recorded=%v, want wrong_shift recorded", res.Status, res.Recorded)
	}

	// Alice (morning) appears at 19:00: overtime_checkin.
	f.at(19, 0, 0)
	res = f.process(t, "Alice")
	if res.Status != "overtime_checkin" || !res.Recorded {
		t.Fatalf("19:00 = %s recorded=%v, want overtime_checkin recorded", res.Status, res.Recorded)
	}
}
