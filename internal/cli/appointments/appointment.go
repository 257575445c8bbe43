package appointments

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/ui"
	"github.com/julianstephens/dayquest/internal/utils"
)

type AppointmentAddCmd struct {
	Title       string `arg:"" help:"Appointment title."`
	Date        string `short:"d" help:"When (\"YYYY-MM-DD HH:MM\", YYYY-MM-DD, today, tomorrow)." required:""`
	Duration    int    `short:"D" help:"Duration in minutes." default:"60"`
	Category    string `short:"c" help:"Category (meeting|personal|health|social)." default:"personal"`
	Description string `help:"Optional description."`
}

func (c *AppointmentAddCmd) Run(ctx *cli.Context) error {
	date, err := utils.ParseDateTimeInLocation(c.Date, time.Now(), ctx.Location())
	if err != nil {
		return err
	}

	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	a, err := tr.AddAppointment(bg, models.Appointment{
		Title:       c.Title,
		Description: c.Description,
		Date:        date,
		DurationMin: c.Duration,
		Category:    models.AppointmentCategory(c.Category),
	})
	if err != nil {
		return fmt.Errorf("failed to add appointment: %w", err)
	}

	ctx.Printf("Added appointment: %s at %s (ID: %s)\n", a.Title, a.Date.Format(constants.DateTimeFormat), a.ID)
	return nil
}

type AppointmentDeleteCmd struct {
	ID string `arg:"" help:"Appointment ID to delete."`
}

func (c *AppointmentDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	if err := tr.DeleteAppointment(bg, c.ID); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	ctx.Printf("Deleted appointment %s\n", c.ID)
	return nil
}

type AppointmentListCmd struct {
	Past bool `help:"Include appointments that already started."`
}

func (c *AppointmentListCmd) Run(ctx *cli.Context) error {
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

	list := slices.Clone(ws.Appointments)
	slices.SortFunc(list, func(a, b models.Appointment) int { return a.Date.Compare(b.Date) })

	now := time.Now()
	var shown int
	for _, a := range list {
		if !c.Past && a.Date.Add(time.Duration(a.DurationMin)*time.Minute).Before(now) {
			continue
		}
		shown++
		ctx.Printf("  %s  %s (%dm, %s)%s\n", a.Date.In(ctx.Location()).Format("Mon Jan 2 15:04"), a.Title,
			a.DurationMin, a.Category, s.Muted.Render(" (ID: "+a.ID+")"))
	}
	if shown == 0 {
		ctx.Println("No appointments found")
	}
	return nil
}
