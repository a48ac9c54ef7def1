package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immich"
)

// NewUsersCommand creates the users command group
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Show users",
	}

	cmd.AddCommand(newUsersMeCommand())
	cmd.AddCommand(newUsersListCommand())

	return cmd
}

func newUsersMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the user owning the API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Me(ctx)
			if err != nil {
				return fmt.Errorf("failed to get current user: %w", err)
			}

			return renderUsers(cmd.OutOrStdout(), user, []immich.User{*user})
		},
	}
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			users, err := client.Users().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return renderUsers(cmd.OutOrStdout(), users, users)
		},
	}
}

func renderUsers(w io.Writer, data interface{}, users []immich.User) error {
	return render(w, data, []string{"ID", "Name", "Email", "Admin", "Quota Used"}, func() [][]string {
		rows := make([][]string, 0, len(users))
		for _, user := range users {
			usage := constants.NotAvailable
			if user.QuotaUsageInBytes != nil {
				usage = formatBytes(*user.QuotaUsageInBytes)
			}

			rows = append(rows, []string{user.ID, user.Name, user.Email, yesNo(user.IsAdmin), usage})
		}

		return rows
	})
}
