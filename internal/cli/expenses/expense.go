package expenses

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/ui"
	"github.com/julianstephens/dayquest/internal/utils"
)

type ExpenseAddCmd struct {
	Title    string  `arg:"" help:"What the money was spent on."`
	Amount   float64 `arg:"" help:"Amount spent."`
	Category string  `short:"c" help:"Category (food|transport|entertainment|bills|shopping|health)." default:"food"`
	Date     string  `short:"d" help:"Date (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *ExpenseAddCmd) Run(ctx *cli.Context) error {
	date, err := utils.ParseDateInLocation(c.Date, time.Now(), ctx.Location())
	if err != nil {
		return err
	}

	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	e, err := tr.AddExpense(bg, models.Expense{
		Title:    c.Title,
		Amount:   c.Amount,
		Category: models.ExpenseCategory(c.Category),
		Date:     date,
	})
	if err != nil {
		return fmt.Errorf("failed to add expense: %w", err)
	}

	ctx.Printf("Added expense: %s %.2f on %s (ID: %s)\n", e.Title, e.Amount, e.Date.Format(time.DateOnly), e.ID)
	return nil
}

type ExpenseDeleteCmd struct {
	ID string `arg:"" help:"Expense ID to delete."`
}

func (c *ExpenseDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	if err := tr.DeleteExpense(bg, c.ID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	ctx.Printf("Deleted expense %s\n", c.ID)
	return nil
}

type ExpenseListCmd struct {
	Month string `short:"m" help:"Only show this month (e.g. \"March 2024\"). Defaults to the current month."`
	All   bool   `short:"a" help:"Show every month."`
}

func (c *ExpenseListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	ws, err := tr.Snapshot(bg)
	if err != nil {
		return err
	}
	s := ui.New(ws.Theme)

	month := c.Month
	if month == "" {
		month = models.MonthLabel(time.Now().In(ctx.Location()))
	}

	byCategory := map[models.ExpenseCategory]float64{}
	var total float64
	var shown int
	for _, e := range ws.Expenses {
		if !c.All && e.Month != month {
			continue
		}
		shown++
		total += e.Amount
		byCategory[e.Category] += e.Amount
		ctx.Printf("  %s  %-24s %8.2f  %s%s\n", e.Date.Format(time.DateOnly), e.Title, e.Amount, e.Category,
			s.Muted.Render(" (ID: "+e.ID+")"))
	}
	if shown == 0 {
		ctx.Println("No expenses found")
		return nil
	}

	ctx.Println(s.Section.Render("By category"))
	for _, cat := range models.ExpenseCategories {
		if amt, ok := byCategory[cat]; ok {
			ctx.Println(s.Row(string(cat), fmt.Sprintf("%.2f", amt)))
		}
	}
	ctx.Println(s.Row("Total", fmt.Sprintf("%.2f", total)))
	return nil
}
