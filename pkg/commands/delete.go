package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/wayfare/pkg/commands/options"
	"tableflip.dev/wayfare/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "delete an activity from a day",
		Example: `
wayfare delete 3fa85f64
wayfare delete 3fa85f64 --on 2025-12-03
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
			p, _, err := loadStore()
			if err != nil {
				return err
			}
			s := remove.Remove{
				On:          on,
				ID:          args[0],
				Persistence: p,
			}
			return s.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
