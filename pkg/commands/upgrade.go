package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/wayfare/pkg/runner/upgrade"
)

func addUpgrade(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "enable the subscription (mock payment)",
		Example: `
wayfare upgrade
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := loadStore()
			if err != nil {
				return err
			}
			s := upgrade.Upgrade{Persistence: p}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
