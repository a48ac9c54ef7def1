package commands

import (
	"github.com/spf13/cobra"

	"github.com/guanana/immich-lib/internal/constants"
)

// NewAuthCommand creates the auth command
func NewAuthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Check the configured API key",
		Long:  "Check that the server is reachable and accepts the configured API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			version := client.CheckAuth(ctx)
			if version == nil {
				return constants.ErrAuthCheckFailed
			}

			handled, err := renderStructured(cmd.OutOrStdout(), version)
			if handled {
				return err
			}

			success(cmd.OutOrStdout(), "Authenticated against %s (Immich %s)", loadConfig().Server, version)

			return nil
		},
	}
}
