package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immich"
)

// NewPeopleCommand creates the people command group
func NewPeopleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "people",
		Aliases: []string{"person"},
		Short:   "Manage recognized people",
	}

	cmd.AddCommand(newPeopleListCommand())
	cmd.AddCommand(newPeopleRenameCommand())

	return cmd
}

func newPeopleListCommand() *cobra.Command {
	var hidden bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List people",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			people, err := client.People().List(ctx, hidden)
			if err != nil {
				return fmt.Errorf("failed to list people: %w", err)
			}

			return render(cmd.OutOrStdout(), people, []string{"ID", "Name", "Birth Date", "Hidden", "Favorite"}, func() [][]string {
				rows := make([][]string, 0, len(people.People))
				for _, person := range people.People {
					birthDate := constants.NotAvailable
					if person.BirthDate != nil {
						birthDate = *person.BirthDate
					}

					rows = append(rows, []string{person.ID, orNotAvailable(person.Name), birthDate, yesNo(person.IsHidden), yesNo(person.IsFavorite)})
				}

				return rows
			})
		},
	}

	cmd.Flags().BoolVar(&hidden, "hidden", false, "include hidden people")

	return cmd
}

func newPeopleRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename PERSON_ID NAME",
		Short: "Rename a person",
		Args:  cobra.ExactArgs(2), //nolint:mnd // person and name
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			person, err := client.People().Update(ctx, args[0], &immich.PersonUpdateRequest{Name: &args[1]})
			if err != nil {
				return fmt.Errorf("failed to rename person: %w", err)
			}

			success(cmd.OutOrStdout(), "Renamed %s to %s", person.ID, person.Name)

			return nil
		},
	}
}
