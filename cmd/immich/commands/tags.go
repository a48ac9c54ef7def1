package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guanana/immich-lib/pkg/immich"
)

// NewTagsCommand creates the tags command group
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage tags",
	}

	cmd.AddCommand(newTagsListCommand())
	cmd.AddCommand(newTagsCreateCommand())
	cmd.AddCommand(newTagsDeleteCommand())
	cmd.AddCommand(newTagsAssignCommand())

	return cmd
}

func newTagsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			tags, err := client.Tags().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list tags: %w", err)
			}

			return render(cmd.OutOrStdout(), tags, []string{"ID", "Name", "Value", "Color"}, func() [][]string {
				rows := make([][]string, 0, len(tags))
				for _, tag := range tags {
					rows = append(rows, []string{tag.ID, tag.Name, tag.Value, orNotAvailable(tag.Color)})
				}

				return rows
			})
		},
	}
}

func newTagsCreateCommand() *cobra.Command {
	var (
		color    string
		parentID string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			tag, err := client.Tags().Create(ctx, &immich.TagCreateRequest{Name: args[0], Color: color, ParentID: parentID})
			if err != nil {
				return fmt.Errorf("failed to create tag: %w", err)
			}

			success(cmd.OutOrStdout(), "Created tag %s (%s)", tag.Name, tag.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "tag color, e.g. #ff0000")
	cmd.Flags().StringVar(&parentID, "parent", "", "parent tag ID")

	return cmd
}

func newTagsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TAG_ID",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			err = client.Tags().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete tag: %w", err)
			}

			success(cmd.OutOrStdout(), "Deleted tag %s", args[0])

			return nil
		},
	}
}

func newTagsAssignCommand() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "assign TAG_ID ASSET_ID...",
		Short: "Tag assets",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd // tag and at least one asset
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			assign := client.Tags().TagAssets
			if remove {
				assign = client.Tags().UntagAssets
			}

			results, err := assign(ctx, args[0], args[1:])
			if err != nil {
				return fmt.Errorf("failed to update tag assignments: %w", err)
			}

			return renderBulkResults(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "remove the tag instead")

	return cmd
}
