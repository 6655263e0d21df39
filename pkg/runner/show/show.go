package show

import (
	"context"
	"errors"

	"tableflip.dev/wayfare/pkg/app"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/printers"
	"tableflip.dev/wayfare/pkg/store"
)

// Show renders one day's timeline.
type Show struct {
	On     datekey.Key
	Query  string
	ShowID bool

	Persistence store.Persistence
}

func (n *Show) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not show, no persistence")
	}

	svc := app.New(ctx, n.Persistence, nil, nil)
	svc.Select(n.On)
	if n.Query != "" {
		svc.SetQuery(n.Query)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.NewLine()
	pp.Title(n.On)
	pp.Timeline(svc.Engine.Statuses(), svc.Engine.View())

	return nil
}
