package today

import (
	"context"
	"errors"

	"tableflip.dev/wayfare/pkg/app"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/printers"
	"tableflip.dev/wayfare/pkg/store"
)

// Today prints the header summary for the current calendar day.
type Today struct {
	Persistence store.Persistence
}

func (n *Today) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not summarize, no persistence")
	}

	svc := app.New(ctx, n.Persistence, nil, nil)
	svc.Select(datekey.Today(svc.Now()))

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Summary(svc.Summary())

	return nil
}
