// Package shift holds the pure shift-classification rules.
//
// Two policy variants exist historically: the canonical strict variant keyed
// only on the employee's assigned shift, and a cross-shift-aware variant that
// flags wrong_shift / overtime_checkin when the event lands inside the other
// shift's window. The engine selects one via feature.cross_shift_policy;
// the strict variant is the default.
package shift

import (
	"strings"
	"time"
)

// Kind is an assigned or wall-clock shift.
type Kind string

const (
	Morning Kind = "morning"
	Night   Kind = "night"
)

// ParseKind normalizes a raw shift string. ok is false for anything that is
// not a known shift; callers degrade instead of failing.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning":
		return Morning, true
	case "night":
		return Night, true
	}
	return "", false
}

// Status is the outcome of classifying one recognition event.
type Status string

const (
	StatusOnTime           Status = "on_time"
	StatusLate             Status = "late"
	StatusOffShift         Status = "off_shift"
	StatusCheckout         Status = "checkout"
	StatusOutsideHours     Status = "outside_hours"
	StatusAlreadyCheckedIn Status = "already_checkedin"
	StatusNoCheckin        Status = "no_checkin"
	StatusWrongShift       Status = "wrong_shift"
	StatusOvertimeCheckin  Status = "overtime_checkin"
)

// Shift window constants, in minutes of day.
// Morning runs 08:00-17:00, night 17:00-22:00, with a 15-minute grace period
// at each start, early night arrival from 16:00, and a 15-minute checkout
// window at each end.
const (
	morningStart    = 8 * 60         // 08:00
	morningGraceEnd = 8*60 + 15      // 08:15
	morningEnd      = 17 * 60        // 17:00
	morningCoEnd    = 17*60 + 15     // 17:15
	nightEarly      = 16 * 60        // 16:00
	nightStart      = 17 * 60        // 17:00
	nightGraceEnd   = 17*60 + 15     // 17:15
	nightEnd        = 22 * 60        // 22:00
	nightCoEnd      = 22*60 + 15     // 22:15
)

func minuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Zone is the wall-clock position of an event, independent of any assignment.
// It is used only for outside-hours and checkout-window detection; lateness is
// always judged against the assigned shift.
type Zone int

const (
	// ZoneEarly is before 08:00: no window is open yet, but early arrivals
	// are still classified against the assigned shift rather than rejected.
	ZoneEarly Zone = iota
	// ZoneMorning covers the morning window plus its checkout tail (08:00-17:15).
	ZoneMorning
	// ZoneNight covers 17:15-22:15.
	ZoneNight
	// ZoneAfterHours is past the night checkout window; marks become outside_hours.
	ZoneAfterHours
)

// CurrentZone maps wall-clock time to a zone.
func CurrentZone(t time.Time) Zone {
	m := minuteOf(t)
	switch {
	case m < morningStart:
		return ZoneEarly
	case m <= morningCoEnd:
		return ZoneMorning
	case m <= nightCoEnd:
		return ZoneNight
	default:
		return ZoneAfterHours
	}
}

// String reports the zone the way the dashboard displays it. ZoneEarly
// renders as morning: an early arrival belongs to the upcoming window.
func (z Zone) String() string {
	switch z {
	case ZoneEarly, ZoneMorning:
		return string(Morning)
	case ZoneNight:
		return string(Night)
	default:
		return string(StatusOutsideHours)
	}
}

// InCheckoutWindow reports whether t falls in the checkout window of the
// current zone (morning 17:00-17:15, night 22:00-22:15).
func InCheckoutWindow(z Zone, t time.Time) bool {
	m := minuteOf(t)
	switch z {
	case ZoneMorning:
		return m >= morningEnd && m <= morningCoEnd
	case ZoneNight:
		return m >= nightEnd && m <= nightCoEnd
	}
	return false
}

// Classify is the canonical strict policy: status from the assigned shift and
// the event time only. Unknown shifts fall back to off_shift, never an error.
func Classify(assigned Kind, t time.Time) Status {
	m := minuteOf(t)

	switch assigned {
	case Morning:
		switch {
		case m <= morningGraceEnd:
			return StatusOnTime // early arrival and grace both count
		case m < morningEnd:
			return StatusLate
		case m <= morningCoEnd:
			return StatusCheckout
		default:
			return StatusOffShift
		}
	case Night:
		switch {
		case m < nightEarly:
			return StatusOffShift
		case m <= nightGraceEnd:
			return StatusOnTime // early arrival from 16:00 plus grace to 17:15
		case m < nightEnd:
			return StatusLate
		case m <= nightCoEnd:
			return StatusCheckout
		default:
			return StatusOffShift
		}
	}
	return StatusOffShift
}

// ClassifyCrossShift is the legacy cross-shift-aware variant: identical to
// Classify inside the assigned window, but an event inside the *other* shift's
// core window becomes wrong_shift (night holder during the morning) or
// overtime_checkin (morning holder during the night).
func ClassifyCrossShift(assigned Kind, t time.Time) Status {
	strict := Classify(assigned, t)
	if strict != StatusOffShift {
		return strict
	}

	m := minuteOf(t)
	switch assigned {
	case Morning:
		if m > morningCoEnd && m < nightEnd {
			return StatusOvertimeCheckin
		}
	case Night:
		if m >= morningStart && m < nightEarly {
			return StatusWrongShift
		}
	}
	return strict
}
