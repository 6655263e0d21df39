package add

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/app"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/printers"
	"tableflip.dev/wayfare/pkg/reminder"
	"tableflip.dev/wayfare/pkg/store"
)

// Add creates and saves a new activity on a day. Omitted field flags fall
// back to the placeholders, so a bare add lands an untitled activity ready
// to be edited with `wayfare save` or the ui.
type Add struct {
	On     datekey.Key
	Fields activity.Patch

	Persistence store.Persistence
	Reminders   *reminder.Client
}

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}

	svc := app.New(ctx, n.Persistence, n.Reminders, nil)
	svc.Select(n.On)

	a := svc.AddActivity(n.On)

	saved, pending, err := svc.SaveActivity(n.On, a.ID, n.Fields)
	if err != nil {
		if errors.Is(err, app.ErrSubscriptionRequired) && pending != nil {
			fmt.Fprintln(os.Stderr, "saving new activities requires a subscription; run `wayfare upgrade` and add again")
			return nil
		}
		return err
	}
	scheduleBestEffort(ctx, svc, saved, n.On)

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.Title(n.On)
	pp.Timeline(svc.Engine.Statuses(), svc.Engine.View())

	return nil
}

// scheduleBestEffort fires the reminder call and only reports the outcome;
// the save above stands either way.
func scheduleBestEffort(ctx context.Context, svc *app.Service, a *activity.Activity, day datekey.Key) {
	err := svc.ScheduleReminder(ctx, a, day)
	switch {
	case err == nil:
	case errors.Is(err, reminder.ErrNoTime), errors.Is(err, reminder.ErrTooSoon):
		// Nothing to schedule; not worth the noise.
	default:
		fmt.Fprintf(os.Stderr, "reminder not scheduled: %v\n", err)
	}
}
