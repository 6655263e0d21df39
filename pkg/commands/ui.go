package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/wayfare/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive timeline",
		Example: `
wayfare ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, rem, err := loadStore()
			if err != nil {
				return err
			}
			i := ui.UI{Persistence: p, Reminders: rem}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
