package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/dayquest/internal/constants"
)

type ExpenseCategory string

const (
	ExpenseCategoryFood          ExpenseCategory = "food"
	ExpenseCategoryTransport     ExpenseCategory = "transport"
	ExpenseCategoryEntertainment ExpenseCategory = "entertainment"
	ExpenseCategoryBills         ExpenseCategory = "bills"
	ExpenseCategoryShopping      ExpenseCategory = "shopping"
	ExpenseCategoryHealth        ExpenseCategory = "health"
)

// ExpenseCategories lists every category in display order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseCategoryFood, ExpenseCategoryTransport, ExpenseCategoryEntertainment,
	ExpenseCategoryBills, ExpenseCategoryShopping, ExpenseCategoryHealth,
}

func (c ExpenseCategory) IsValid() bool {
	return slices.Contains(ExpenseCategories, c)
}

// Expense is immutable once created.
type Expense struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Amount   float64         `json:"amount"`
	Category ExpenseCategory `json:"category"`
	Date     time.Time       `json:"date"`
	Month    string          `json:"month"`
}

func (e Expense) Kind() EntityKind { return KindExpense }
func (e Expense) RecordID() string { return e.ID }
func (e Expense) DedupKey() string {
	return e.Title + "|" + strconv.FormatFloat(e.Amount, 'f', -1, 64) + "|" + CalendarDay(e.Date)
}

// MonthLabel derives the month label shown for an expense date.
func MonthLabel(t time.Time) string {
	return t.Format(constants.MonthFormat)
}

func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: expense title cannot be empty", ErrValidation)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: expense amount must be positive", ErrValidation)
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("%w: invalid expense category %q", ErrValidation, e.Category)
	}
	return nil
}

// Normalize fills the derived month label when it is missing.
func (e *Expense) Normalize() {
	if e.Month == "" && !e.Date.IsZero() {
		e.Month = MonthLabel(e.Date)
	}
}
