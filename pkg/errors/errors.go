package errors

import "errors"

// ErrLedgerAppend marks a failed write to the day ledger. Losing an attendance
// event silently is unacceptable, so callers must surface this.
var ErrLedgerAppend = errors.New("ledger append failed")

// ErrCaptureAlreadyRunning the external recognizer window is already up.
var ErrCaptureAlreadyRunning = errors.New("capture process already running")

// ErrCaptureNotRunning there is no recognizer process to stop.
var ErrCaptureNotRunning = errors.New("capture process not running")
