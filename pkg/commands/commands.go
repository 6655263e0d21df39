package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/wayfare/pkg/reminder"
	"tableflip.dev/wayfare/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "wayfare",
		Short: base.Wrap80("Day-by-day itinerary tracking on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addShow(topLevel)
	addToday(topLevel)
	addAdd(topLevel)
	addSave(topLevel)
	addDelete(topLevel)
	addStep(topLevel)
	addUpgrade(topLevel)
	addServe(topLevel)
	addVersion(topLevel)
}

// loadStore loads config once and hands back both the persistence layer and
// the reminder client configured alongside it.
func loadStore() (store.Persistence, *reminder.Client, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	var rem *reminder.Client
	if cfg.ReminderURL() != "" {
		rem = &reminder.Client{URL: cfg.ReminderURL(), UserID: cfg.ReminderUserID()}
	}
	return p, rem, nil
}
