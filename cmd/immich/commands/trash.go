package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTrashCommand creates the trash command group
func NewTrashCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Manage trashed assets",
	}

	cmd.AddCommand(newTrashEmptyCommand())
	cmd.AddCommand(newTrashRestoreCommand())

	return cmd
}

func newTrashEmptyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "empty",
		Short: "Permanently delete every trashed asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			result, err := client.Trash().Empty(ctx)
			if err != nil {
				return fmt.Errorf("failed to empty trash: %w", err)
			}

			warning(cmd.OutOrStdout(), "Permanently deleted %d assets", result.Count)

			return nil
		},
	}
}

func newTrashRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [ASSET_ID...]",
		Short: "Restore trashed assets",
		Long:  "Restore the given assets, or every trashed asset when none are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				result, err := client.Trash().Restore(ctx)
				if err != nil {
					return fmt.Errorf("failed to restore trash: %w", err)
				}

				success(cmd.OutOrStdout(), "Restored %d assets", result.Count)

				return nil
			}

			result, err := client.Trash().RestoreAssets(ctx, args)
			if err != nil {
				return fmt.Errorf("failed to restore assets: %w", err)
			}

			success(cmd.OutOrStdout(), "Restored %d assets", result.Count)

			return nil
		},
	}
}
