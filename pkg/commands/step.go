package commands

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/wayfare/pkg/commands/options"
	"tableflip.dev/wayfare/pkg/runner/step"
)

func addStep(topLevel *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "step <index>",
		Short: "click a timeline step by its position (0-based)",
		Long: "Click a timeline step. Clicking a pending or active step makes it\n" +
			"the current one; clicking a completed step rewinds to it. Only\n" +
			"today's timeline records completion.",
		Example: `
wayfare step 0
wayfare step 2 --on 2025-12-03
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one step index")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("step index must be a number")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := oo.GetOn(nil)
			if err != nil {
				return err
			}
			i, _ := strconv.Atoi(args[0])
			p, _, err := loadStore()
			if err != nil {
				return err
			}
			s := step.Step{
				On:          on,
				Index:       i,
				Persistence: p,
			}
			return s.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
