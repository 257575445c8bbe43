package tracker

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/writeback"
)

// AddExpense stores a new expense. Date defaults to now and the month label is
// derived from it.
func (t *Tracker) AddExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date.IsZero() {
		e.Date = t.now()
	}
	e.Normalize()
	if err := e.Validate(); err != nil {
		return models.Expense{}, err
	}

	err := t.do(ctx, func() error {
		return t.apply(func() []writeback.Op {
			t.ws.Expenses = append(t.ws.Expenses, e)
			return []writeback.Op{writeback.Create(t.ws.UserID, e)}
		})
	})
	if err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

func (t *Tracker) DeleteExpense(ctx context.Context, id string) error {
	return t.do(ctx, func() error {
		i := indexByID(t.ws.Expenses, id)
		if i < 0 {
			return fmt.Errorf("%w: expense %s", ErrRecordNotFound, id)
		}
		return t.apply(func() []writeback.Op {
			t.ws.Expenses = slices.Delete(t.ws.Expenses, i, i+1)
			return []writeback.Op{writeback.Delete(t.ws.UserID, models.KindExpense, id)}
		})
	})
}

func (t *Tracker) AddAppointment(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Category == "" {
		a.Category = models.AppointmentCategoryPersonal
	}
	if err := a.Validate(); err != nil {
		return models.Appointment{}, err
	}

	err := t.do(ctx, func() error {
		return t.apply(func() []writeback.Op {
			t.ws.Appointments = append(t.ws.Appointments, a)
			return []writeback.Op{writeback.Create(t.ws.UserID, a)}
		})
	})
	if err != nil {
		return models.Appointment{}, err
	}
	return a, nil
}

func (t *Tracker) DeleteAppointment(ctx context.Context, id string) error {
	return t.do(ctx, func() error {
		i := indexByID(t.ws.Appointments, id)
		if i < 0 {
			return fmt.Errorf("%w: appointment %s", ErrRecordNotFound, id)
		}
		return t.apply(func() []writeback.Op {
			t.ws.Appointments = slices.Delete(t.ws.Appointments, i, i+1)
			return []writeback.Op{writeback.Delete(t.ws.UserID, models.KindAppointment, id)}
		})
	})
}
