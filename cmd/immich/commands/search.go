package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immich"
)

// NewSearchCommand creates the search command group
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search assets and places",
		Long:  "Search assets by metadata or by natural language, and look up places",
	}

	cmd.AddCommand(newSearchSmartCommand())
	cmd.AddCommand(newSearchMetadataCommand())
	cmd.AddCommand(newSearchPlacesCommand())

	return cmd
}

func newSearchSmartCommand() *cobra.Command {
	var (
		assetType string
		page      int
		size      int
	)

	cmd := &cobra.Command{
		Use:   "smart QUERY...",
		Short: "Search assets by description",
		Long:  "Search assets with a natural-language query, such as \"dog on a beach\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			response, err := client.Search().Smart(ctx, &immich.SmartSearch{
				Query: strings.Join(args, " "),
				Type:  assetType,
				Page:  page,
				Size:  size,
			})
			if err != nil {
				return fmt.Errorf("failed to search: %w", err)
			}

			handled, err := renderStructured(cmd.OutOrStdout(), response)
			if handled {
				return err
			}

			return renderAssetTable(cmd.OutOrStdout(), response.Assets.Items)
		},
	}

	cmd.Flags().StringVar(&assetType, "type", "", "asset type (IMAGE, VIDEO)")
	cmd.Flags().IntVar(&page, "page", 0, "result page")
	cmd.Flags().IntVar(&size, "size", 0, "results per page")

	return cmd
}

func newSearchMetadataCommand() *cobra.Command {
	var (
		fileName    string
		city        string
		country     string
		cameraMake  string
		cameraModel string
	)

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Search assets by metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			response, err := client.Search().Metadata(ctx, &immich.AssetSearch{
				OriginalFileName: fileName,
				City:             city,
				Country:          country,
				Make:             cameraMake,
				Model:            cameraModel,
			})
			if err != nil {
				return fmt.Errorf("failed to search: %w", err)
			}

			handled, err := renderStructured(cmd.OutOrStdout(), response)
			if handled {
				return err
			}

			return renderAssetTable(cmd.OutOrStdout(), response.Assets.Items)
		},
	}

	cmd.Flags().StringVar(&fileName, "file-name", "", "original file name")
	cmd.Flags().StringVar(&city, "city", "", "city")
	cmd.Flags().StringVar(&country, "country", "", "country")
	cmd.Flags().StringVar(&cameraMake, "make", "", "camera make")
	cmd.Flags().StringVar(&cameraModel, "model", "", "camera model")

	return cmd
}

func newSearchPlacesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "places NAME",
		Short: "Look up places by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			places, err := client.Search().Places(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to search places: %w", err)
			}

			return render(cmd.OutOrStdout(), places, []string{"Name", "Region", "Latitude", "Longitude"}, func() [][]string {
				rows := make([][]string, 0, len(places))
				for _, place := range places {
					region := constants.NotAvailable
					if place.Admin1Name != nil {
						region = *place.Admin1Name
					}

					rows = append(rows, []string{
						place.Name,
						region,
						fmt.Sprintf("%.4f", place.Latitude),
						fmt.Sprintf("%.4f", place.Longitude),
					})
				}

				return rows
			})
		},
	}
}
