package dto

// ── attendance DTOs ──

// RecognizedFaceRequest is posted by a capture device when the recognizer
// identifies someone. The device fields are optional heartbeat metadata.
type RecognizedFaceRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	DeviceID       string `json:"device_id"`
	DeviceName     string `json:"device_name"`
	DeviceLocation string `json:"device_location"`
}

// RecognitionResult is the structured outcome of one recognition event.
type RecognitionResult struct {
	Name          string `json:"name"`
	AssignedShift string `json:"assigned_shift"`
	CurrentShift  string `json:"current_shift"`
	Status        string `json:"status"`
	IsCheckout    bool   `json:"is_checkout"`
	Recorded      bool   `json:"recorded"` // whether a ledger row was appended
	Message       string `json:"message"`  // human-readable, shown on the device
	Time          string `json:"time"`     // HH:MM:SS
	Date          string `json:"date"`     // YYYY-MM-DD
}

// ShiftStatusResponse is the classification quadruple without recording.
type ShiftStatusResponse struct {
	Name          string `json:"name"`
	AssignedShift string `json:"assigned_shift"`
	CurrentShift  string `json:"current_shift"`
	Status        string `json:"status"`
	IsCheckout    bool   `json:"is_checkout"`
}

// AttendanceRowResponse is one validated ledger row.
type AttendanceRowResponse struct {
	Name   string `json:"name"`
	Time   string `json:"time"`
	Date   string `json:"date"`
	Shift  string `json:"shift"`
	Status string `json:"status"`
}

// DayResponse is a decoded day ledger.
type DayResponse struct {
	Date    string                  `json:"date"`
	Count   int                     `json:"count"`
	Records []AttendanceRowResponse `json:"records"`
}

// HistoryRequest selects a ledger day.
type HistoryRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// RecordListRequest filters the DB mirror listing.
type RecordListRequest struct {
	Name string `form:"name" binding:"omitempty,max=100"`
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// AutoCheckoutResponse reports one auto-checkout sweep.
type AutoCheckoutResponse struct {
	Date       string   `json:"date"`
	CheckedOut []string `json:"checked_out"`
}

// DeviceResponse is one registered capture device.
type DeviceResponse struct {
	DeviceID   string `json:"device_id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Status     string `json:"status"`
	LastActive string `json:"last_active"`
}

// CaptureStatusResponse describes the external recognizer process.
type CaptureStatusResponse struct {
	Running   bool   `json:"running"`
	PID       int    `json:"pid,omitempty"`
	StartedAt string `json:"started_at,omitempty"`
}
