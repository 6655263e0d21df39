package save

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/app"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/printers"
	"tableflip.dev/wayfare/pkg/reminder"
	"tableflip.dev/wayfare/pkg/store"
)

// Save merges field edits into an existing activity by id (full id or the
// 8-character prefix the printers show).
type Save struct {
	On     datekey.Key
	ID     string
	Fields activity.Patch

	Persistence store.Persistence
	Reminders   *reminder.Client
}

func (n *Save) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not save, no persistence")
	}

	svc := app.New(ctx, n.Persistence, n.Reminders, nil)
	svc.Select(n.On)

	id, err := ResolveID(svc.Day(n.On), n.ID)
	if err != nil {
		return err
	}

	saved, pending, err := svc.SaveActivity(n.On, id, n.Fields)
	if err != nil {
		if errors.Is(err, app.ErrSubscriptionRequired) && pending != nil {
			fmt.Fprintln(os.Stderr, "saving new activities requires a subscription; run `wayfare upgrade` first")
			return nil
		}
		return err
	}

	if serr := svc.ScheduleReminder(ctx, saved, n.On); serr != nil {
		if !errors.Is(serr, reminder.ErrNoTime) && !errors.Is(serr, reminder.ErrTooSoon) {
			fmt.Fprintf(os.Stderr, "reminder not scheduled: %v\n", serr)
		}
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.Title(n.On)
	pp.Timeline(svc.Engine.Statuses(), svc.Engine.View())

	return nil
}

// ResolveID matches a full or prefix id against the day's list.
func ResolveID(list []*activity.Activity, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("requires an activity id")
	}
	var match string
	for _, a := range list {
		if a.ID == id {
			return a.ID, nil
		}
		if strings.HasPrefix(a.ID, id) {
			if match != "" {
				return "", fmt.Errorf("id %q is ambiguous", id)
			}
			match = a.ID
		}
	}
	if match == "" {
		return "", app.ErrNotFound
	}
	return match, nil
}
