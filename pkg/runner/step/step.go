package step

import (
	"context"
	"errors"

	"tableflip.dev/wayfare/pkg/app"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/printers"
	"tableflip.dev/wayfare/pkg/store"
)

// Step processes a click on timeline row Index for a day: advancing past a
// pending step or rewinding to a completed one.
type Step struct {
	On    datekey.Key
	Index int

	Persistence store.Persistence
}

func (n *Step) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not step, no persistence")
	}

	svc := app.New(ctx, n.Persistence, nil, nil)
	svc.Select(n.On)

	if err := svc.StepClick(n.Index); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Title(n.On)
	pp.Timeline(svc.Engine.Statuses(), svc.Engine.View())
	pp.Summary(svc.Summary())

	return nil
}
