package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/wayfare/pkg/commands/options"
	"tableflip.dev/wayfare/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	so := &options.SearchOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "show a day's timeline",
		Example: `
wayfare show
wayfare show --on 2025-12-03
wayfare show --search museum
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := oo.GetOn(nil)
			if err != nil {
				return err
			}
			p, _, err := loadStore()
			if err != nil {
				return err
			}
			s := show.Show{
				On:          on,
				Query:       so.Query,
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return s.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddSearchArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
