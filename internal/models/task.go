package models

import (
	"fmt"
	"strings"
	"time"
)

type TaskCategory string

const (
	TaskCategoryHome     TaskCategory = "home"
	TaskCategoryWork     TaskCategory = "work"
	TaskCategoryPersonal TaskCategory = "personal"
	TaskCategoryHealth   TaskCategory = "health"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (c TaskCategory) IsValid() bool {
	switch c {
	case TaskCategoryHome, TaskCategoryWork, TaskCategoryPersonal, TaskCategoryHealth:
		return true
	}
	return false
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Completed    bool         `json:"completed"`
	Category     TaskCategory `json:"category"`
	Priority     Priority     `json:"priority"`
	EstimatedMin int          `json:"estimated_min"`
	ActualMin    *int         `json:"actual_min,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	XPAwarded    bool         `json:"xp_awarded"`
	WeekDay      *int         `json:"week_day,omitempty"` // 0 = Sunday
}

func (t Task) Kind() EntityKind { return KindTask }
func (t Task) RecordID() string { return t.ID }
func (t Task) DedupKey() string { return t.Title + "|" + CalendarDay(t.CreatedAt) }

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: invalid task category %q", ErrValidation, t.Category)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: invalid task priority %q", ErrValidation, t.Priority)
	}
	if t.EstimatedMin < 0 {
		return fmt.Errorf("%w: estimated time cannot be negative", ErrValidation)
	}
	if t.WeekDay != nil && (*t.WeekDay < 0 || *t.WeekDay > 6) {
		return fmt.Errorf("%w: week day must be between 0 and 6", ErrValidation)
	}
	return nil
}
