package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/wayfare/pkg/app"
	"tableflip.dev/wayfare/pkg/reminder"
	"tableflip.dev/wayfare/pkg/store"
	"tableflip.dev/wayfare/pkg/tui"
)

// UI opens the interactive timeline.
type UI struct {
	Persistence store.Persistence
	Reminders   *reminder.Client
}

func (d *UI) Do(ctx context.Context) error {
	if d.Persistence == nil {
		return errors.New("can not open ui, no persistence")
	}

	svc := app.New(ctx, d.Persistence, d.Reminders, nil)

	// Live refresh when another process writes to the store. The UI still
	// works without the watcher.
	events, err := d.Persistence.Watch(ctx)
	if err != nil {
		events = nil
	}

	p := tea.NewProgram(tui.New(svc, events), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
