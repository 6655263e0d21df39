package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/wayfare/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	addr := ":8787"

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the reminder-scheduling proxy",
		Long: "Run the HTTP proxy that accepts reminder requests and forwards\n" +
			"them to the push-notification vendor. Reads ONESIGNAL_APP_ID and\n" +
			"ONESIGNAL_REST_API_KEY from the environment or a .env file.",
		Example: `
wayfare serve
wayfare serve --addr :9000
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := serve.Serve{Addr: addr}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "Address to listen on.")

	topLevel.AddCommand(cmd)
}
