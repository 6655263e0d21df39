package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/wayfare/pkg/runner/today"
)

func addToday(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "summarize the current day",
		Example: `
wayfare today
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := loadStore()
			if err != nil {
				return err
			}
			s := today.Today{Persistence: p}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
