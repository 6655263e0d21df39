package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/wayfare/pkg/commands/options"
	"tableflip.dev/wayfare/pkg/runner/save"
)

func addSave(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	fo := &options.FieldOptions{}

	cmd := &cobra.Command{
		Use:   "save <id>",
		Short: "edit an activity's fields",
		Example: `
wayfare save 3fa85f64 --time 10:15
wayfare save 3fa85f64 --on 2025-12-03 --title "Check out" --notes "bags to lobby"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one activity id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := oo.GetOn(nil)
			if err != nil {
				return err
			}
			p, rem, err := loadStore()
			if err != nil {
				return err
			}
			s := save.Save{
				On:          on,
				ID:          args[0],
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
