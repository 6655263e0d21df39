package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/wayfare/pkg/commands/options"
	"tableflip.dev/wayfare/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	fo := &options.FieldOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "add an activity to a day",
		Long: "Add an activity to a day's timeline and save it. Omitted fields\n" +
			"default to an untitled placeholder you can edit later with\n" +
			"`wayfare save` or the ui. Saving a new activity requires a\n" +
			"subscription, see `wayfare upgrade`.",
		Example: `
wayfare add --time 09:30 --title "Louvre" --location "Paris"
wayfare add --on 2025-12-03 --title "Check in"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := oo.GetOn(nil)
			if err != nil {
				return err
			}
			p, rem, err := loadStore()
			if err != nil {
				return err
			}
			s := add.Add{
				On:          on,
				Fields:      fo.Patch(cmd),
				Persistence: p,
				Reminders:   rem,
			}
			return s.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddFieldArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
