package models

import (
	"fmt"
	"strings"
	"time"
)

type AppointmentCategory string

const (
	AppointmentCategoryMeeting  AppointmentCategory = "meeting"
	AppointmentCategoryPersonal AppointmentCategory = "personal"
	AppointmentCategoryHealth   AppointmentCategory = "health"
	AppointmentCategorySocial   AppointmentCategory = "social"
)

func (c AppointmentCategory) IsValid() bool {
	switch c {
	case AppointmentCategoryMeeting, AppointmentCategoryPersonal, AppointmentCategoryHealth, AppointmentCategorySocial:
		return true
	}
	return false
}

// Appointment is immutable once created.
type Appointment struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Date        time.Time           `json:"date"`
	DurationMin int                 `json:"duration_min"`
	Category    AppointmentCategory `json:"category"`
}

func (a Appointment) Kind() EntityKind { return KindAppointment }
func (a Appointment) RecordID() string { return a.ID }
func (a Appointment) DedupKey() string { return a.Title + "|" + CalendarDay(a.Date) }

func (a *Appointment) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: appointment title cannot be empty", ErrValidation)
	}
	if a.Date.IsZero() {
		return fmt.Errorf("%w: appointment date is required", ErrValidation)
	}
	if a.DurationMin <= 0 {
		return fmt.Errorf("%w: appointment duration must be greater than zero", ErrValidation)
	}
	if !a.Category.IsValid() {
		return fmt.Errorf("%w: invalid appointment category %q", ErrValidation, a.Category)
	}
	return nil
}
