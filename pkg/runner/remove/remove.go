package remove

import (
	"context"
	"errors"

	"tableflip.dev/wayfare/pkg/app"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/printers"
	"tableflip.dev/wayfare/pkg/runner/save"
	"tableflip.dev/wayfare/pkg/store"
)

// Remove deletes an activity from a day and re-clamps that day's timeline
// progress.
type Remove struct {
	On datekey.Key
	ID string

	Persistence store.Persistence
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not delete, no persistence")
	}

	svc := app.New(ctx, n.Persistence, nil, nil)
	svc.Select(n.On)

	id, err := save.ResolveID(svc.Day(n.On), n.ID)
	if err != nil {
		return err
	}
	if err := svc.DeleteActivity(n.On, id); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.Title(n.On)
	pp.Timeline(svc.Engine.Statuses(), svc.Engine.View())

	return nil
}
