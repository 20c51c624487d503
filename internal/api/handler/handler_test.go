package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/dto"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/model"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/service"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/jwt"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── mock services ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	meResult      *dto.UserResponse
	meErr         error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error { return nil }
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

type mockAttendanceService struct {
	processResult *dto.RecognitionResult
	processErr    error
	statusResult  *dto.ShiftStatusResponse
	statusErr     error
	dayResult     *dto.DayResponse
	dayErr        error
	sweepResult   *dto.AutoCheckoutResponse
	sweepErr      error
}

func (m *mockAttendanceService) ProcessRecognizedFace(_ context.Context, _ *dto.RecognizedFaceRequest) (*dto.RecognitionResult, error) {
	return m.processResult, m.processErr
}
func (m *mockAttendanceService) GetShiftStatus(_ context.Context, _ string) (*dto.ShiftStatusResponse, error) {
	return m.statusResult, m.statusErr
}
func (m *mockAttendanceService) GetDay(_ context.Context, _ time.Time) (*dto.DayResponse, error) {
	return m.dayResult, m.dayErr
}
func (m *mockAttendanceService) GetToday(_ context.Context) (*dto.DayResponse, error) {
	return m.dayResult, m.dayErr
}
func (m *mockAttendanceService) AutoCheckout(_ context.Context) (*dto.AutoCheckoutResponse, error) {
	return m.sweepResult, m.sweepErr
}
func (m *mockAttendanceService) ListRecords(_ context.Context, _ *dto.RecordListRequest) ([]model.AttendanceRecord, error) {
	return nil, nil
}
func (m *mockAttendanceService) ListDevices(_ context.Context) ([]dto.DeviceResponse, error) {
	return nil, nil
}

type mockCalendarService struct {
	result string
	err    error
}

func (m *mockCalendarService) ShiftCalendar(_ context.Context, _ string, _ int) (string, error) {
	return m.result, m.err
}

// ── helpers ──

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var env response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	return env
}

// ── auth handler ──

func TestAuthLogin(t *testing.T) {
	svc := &mockAuthService{
		loginResult: &dto.TokenResponse{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 900},
	}
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/login", h.Login)

	w := performJSON(r, http.MethodPost, "/login", dto.LoginRequest{Username: "budi", Password: "x"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Code != 0 {
		t.Errorf("envelope code = %d", env.Code)
	}

	// Missing password fails binding.
	w = performJSON(r, http.MethodPost, "/login", map[string]string{"username": "budi"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing password status = %d", w.Code)
	}
}

func TestAuthLogin_InvalidCredentials(t *testing.T) {
	svc := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/login", h.Login)

	w := performJSON(r, http.MethodPost, "/login", dto.LoginRequest{Username: "budi", Password: "salah"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Code != 11001 {
		t.Errorf("envelope code = %d, want 11001", env.Code)
	}
}

// ── attendance handler ──

func TestAttendanceRecognized(t *testing.T) {
	svc := &mockAttendanceService{
		processResult: &dto.RecognitionResult{
			Name: "Alice", Status: "on_time", Recorded: true,
		},
	}
	h := NewAttendanceHandler(svc, &mockCalendarService{})

	r := gin.New()
	r.POST("/recognized", h.Recognized)

	w := performJSON(r, http.MethodPost, "/recognized", dto.RecognizedFaceRequest{Name: "Alice"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"on_time"`) {
		t.Errorf("body lacks status: %s", w.Body.String())
	}

	// Empty body fails binding on the required name.
	w = performJSON(r, http.MethodPost, "/recognized", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing name status = %d", w.Code)
	}
}

func TestAttendanceHistory(t *testing.T) {
	svc := &mockAttendanceService{
		dayResult: &dto.DayResponse{Date: "2026-08-29", Count: 1},
	}
	h := NewAttendanceHandler(svc, &mockCalendarService{})

	r := gin.New()
	r.GET("/history", h.History)

	w := performJSON(r, http.MethodGet, "/history?date=2026-08-29", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	w = performJSON(r, http.MethodGet, "/history?date=29-08-2026", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d", w.Code)
	}

	w = performJSON(r, http.MethodGet, "/history", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing date status = %d", w.Code)
	}
}

func TestAttendanceHistory_NotFound(t *testing.T) {
	svc := &mockAttendanceService{dayErr: service.ErrNoLedgerForDate}
	h := NewAttendanceHandler(svc, &mockCalendarService{})

	r := gin.New()
	r.GET("/history", h.History)

	w := performJSON(r, http.MethodGet, "/history?date=2026-08-29", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAttendanceShiftCalendar(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{}, &mockCalendarService{
		result: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
	})

	r := gin.New()
	r.GET("/shifts/:name/calendar.ics", h.ShiftCalendar)

	w := performJSON(r, http.MethodGet, "/shifts/Alice/calendar.ics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q", ct)
	}

	w = performJSON(r, http.MethodGet, "/shifts/Alice/calendar.ics?days=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad days status = %d", w.Code)
	}
}

func TestAttendanceAutoCheckout(t *testing.T) {
	svc := &mockAttendanceService{
		sweepResult: &dto.AutoCheckoutResponse{Date: "2026-08-29", CheckedOut: []string{"Alice"}},
	}
	h := NewAttendanceHandler(svc, &mockCalendarService{})

	r := gin.New()
	r.POST("/auto-checkout", h.AutoCheckout)

	w := performJSON(r, http.MethodPost, "/auto-checkout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Alice") {
		t.Errorf("body = %s", w.Body.String())
	}
}
