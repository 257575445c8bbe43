package models

import (
	"errors"
	"time"

	"github.com/julianstephens/dayquest/internal/constants"
)

// ErrValidation is wrapped by every Validate method when a required field is missing or out of range.
var ErrValidation = errors.New("validation failed")

// EntityKind identifies one of the synchronised record collections.
type EntityKind string

const (
	KindTask        EntityKind = "task"
	KindExpense     EntityKind = "expense"
	KindAppointment EntityKind = "appointment"
	KindReward      EntityKind = "reward"
	KindTrophy      EntityKind = "trophy"
)

// Kinds lists every record collection in reconciliation order.
var Kinds = []EntityKind{KindTask, KindExpense, KindAppointment, KindReward, KindTrophy}

// Record is a synchronised entity other than the profile.
type Record interface {
	Kind() EntityKind
	RecordID() string
	// DedupKey decides whether a local record already exists remotely.
	DedupKey() string
}

// CalendarDay returns the YYYY-MM-DD day of t in t's own location.
func CalendarDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return CalendarDay(a) == CalendarDay(b)
}
