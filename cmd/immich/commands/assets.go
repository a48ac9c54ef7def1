package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immich"
)

// NewAssetsCommand creates the assets command group
func NewAssetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assets",
		Aliases: []string{"asset"},
		Short:   "Manage assets",
		Long:    "List, inspect, download, upload, and delete photos and videos",
	}

	cmd.AddCommand(newAssetsListCommand())
	cmd.AddCommand(newAssetsGetCommand())
	cmd.AddCommand(newAssetsDownloadCommand())
	cmd.AddCommand(newAssetsUploadCommand())
	cmd.AddCommand(newAssetsFavoriteCommand())
	cmd.AddCommand(newAssetsDeleteCommand())

	return cmd
}

func newAssetsListCommand() *cobra.Command {
	var (
		favorite  string
		archived  string
		assetType string
		city      string
		size      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		Long:  "List assets visible to the API key, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			isFavorite, err := parseBoolFlag(favorite)
			if err != nil {
				return err
			}

			isArchived, err := parseBoolFlag(archived)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			assets, err := client.Assets().List(ctx, &immich.AssetSearch{
				IsFavorite: isFavorite,
				IsArchived: isArchived,
				Type:       assetType,
				City:       city,
				Size:       size,
			})
			if err != nil {
				return fmt.Errorf("failed to list assets: %w", err)
			}

			handled, err := renderStructured(cmd.OutOrStdout(), assets)
			if handled {
				return err
			}

			return renderAssetTable(cmd.OutOrStdout(), assets)
		},
	}

	cmd.Flags().StringVar(&favorite, "favorite", "", "filter by favorite (true or false)")
	cmd.Flags().StringVar(&archived, "archived", "", "filter by archived (true or false)")
	cmd.Flags().StringVar(&assetType, "type", "", "filter by type (IMAGE, VIDEO, AUDIO, OTHER)")
	cmd.Flags().StringVar(&city, "city", "", "filter by city")
	cmd.Flags().IntVar(&size, "size", 0, "maximum number of assets returned by the server")

	return cmd
}

func newAssetsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ASSET_ID",
		Short: "Get asset details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			asset, err := client.Assets().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get asset: %w", err)
			}

			return render(cmd.OutOrStdout(), asset, []string{"Property", "Value"}, func() [][]string {
				rows := [][]string{
					{"ID", asset.ID},
					{"File Name", asset.OriginalFileName},
					{"Type", asset.Type},
					{"MIME Type", orNotAvailable(asset.OriginalMimeType)},
					{"Favorite", yesNo(asset.IsFavorite)},
					{"Archived", yesNo(asset.IsArchived)},
					{"Trashed", yesNo(asset.IsTrashed)},
					{"Created", formatTime(asset.FileCreatedAt)},
				}

				if exif := asset.ExifInfo; exif != nil {
					if exif.FileSizeInByte != nil {
						rows = append(rows, []string{"Size", formatBytes(*exif.FileSizeInByte)})
					}

					if exif.City != nil {
						rows = append(rows, []string{"City", *exif.City})
					}

					if exif.Make != nil && exif.Model != nil {
						rows = append(rows, []string{"Camera", *exif.Make + " " + *exif.Model})
					}
				}

				return rows
			})
		},
	}
}

func newAssetsDownloadCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "download ASSET_ID",
		Short: "Download an asset's original file",
		Long:  "Download an asset's original file to a path, or to standard output when no path is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			if outputPath == "" {
				download, err := client.Assets().Download(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to download asset: %w", err)
				}

				defer func() { _ = download.Close() }()

				_, err = io.Copy(cmd.OutOrStdout(), download)
				if err != nil {
					return fmt.Errorf("failed to write asset: %w", err)
				}

				return nil
			}

			if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
				asset, err := client.Assets().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get asset: %w", err)
				}

				outputPath = filepath.Join(outputPath, safeFileName(asset.OriginalFileName, asset.ID))
			}

			if !client.Assets().DownloadToFile(ctx, args[0], outputPath, NewProgressBar(cmd.ErrOrStderr())) {
				return constants.ErrDownloadFailed
			}

			success(cmd.ErrOrStderr(), "Saved %s", outputPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output-file", "o", "", "destination file or directory")

	return cmd
}

func newAssetsUploadCommand() *cobra.Command {
	var favorite bool

	cmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload files as new assets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			results := make([]immich.AssetUploadResult, 0, len(args))

			for _, path := range args {
				result, err := client.Assets().Upload(ctx, &immich.AssetUploadRequest{
					FilePath:   path,
					IsFavorite: favorite,
				})
				if err != nil {
					return fmt.Errorf("failed to upload %s: %w", path, err)
				}

				results = append(results, *result)
			}

			return render(cmd.OutOrStdout(), results, []string{"File", "ID", "Status"}, func() [][]string {
				rows := make([][]string, 0, len(results))
				for i, result := range results {
					rows = append(rows, []string{filepath.Base(args[i]), result.ID, result.Status})
				}

				return rows
			})
		},
	}

	cmd.Flags().BoolVar(&favorite, "favorite", false, "mark uploaded assets as favorites")

	return cmd
}

func newAssetsFavoriteCommand() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "favorite ASSET_ID",
		Short: "Mark an asset as favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			isFavorite := !remove

			asset, err := client.Assets().Update(ctx, args[0], &immich.AssetUpdateRequest{IsFavorite: &isFavorite})
			if err != nil {
				return fmt.Errorf("failed to update asset: %w", err)
			}

			success(cmd.OutOrStdout(), "%s favorite: %s", asset.OriginalFileName, yesNo(asset.IsFavorite))

			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "remove the favorite mark instead")

	return cmd
}

func newAssetsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ASSET_ID...",
		Short: "Delete assets",
		Long:  "Move assets to the trash, or delete them permanently with --force",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			err = client.Assets().Delete(ctx, &immich.AssetDeleteRequest{IDs: args, Force: force})
			if err != nil {
				return fmt.Errorf("failed to delete assets: %w", err)
			}

			if force {
				warning(cmd.OutOrStdout(), "Permanently deleted %d assets", len(args))
			} else {
				success(cmd.OutOrStdout(), "Moved %d assets to the trash", len(args))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete permanently instead of trashing")

	return cmd
}

func renderAssetTable(w io.Writer, assets []immich.Asset) error {
	rows := make([][]string, 0, len(assets))
	for _, asset := range assets {
		rows = append(rows, []string{
			asset.ID,
			asset.OriginalFileName,
			asset.Type,
			yesNo(asset.IsFavorite),
			formatTime(asset.FileCreatedAt),
		})
	}

	return renderTable(w, []string{"ID", "File Name", "Type", "Favorite", "Created"}, rows)
}
