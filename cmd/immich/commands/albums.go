package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immich"
)

// ErrOwnedAndShared is returned when both listing filters are given.
var ErrOwnedAndShared = errors.New("--owned and --shared are mutually exclusive")

// NewAlbumsCommand creates the albums command group
func NewAlbumsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "albums",
		Aliases: []string{"album"},
		Short:   "Manage albums",
		Long:    "List, inspect, create, delete, and download Immich albums",
	}

	cmd.AddCommand(newAlbumsListCommand())
	cmd.AddCommand(newAlbumsGetCommand())
	cmd.AddCommand(newAlbumsFindCommand())
	cmd.AddCommand(newAlbumsCreateCommand())
	cmd.AddCommand(newAlbumsDeleteCommand())
	cmd.AddCommand(newAlbumsAddAssetsCommand())
	cmd.AddCommand(newAlbumsRemoveAssetsCommand())
	cmd.AddCommand(newAlbumsDownloadCommand())

	return cmd
}

func newAlbumsListCommand() *cobra.Command {
	var (
		owned  bool
		shared bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List albums",
		Long:  "List owned and shared albums, or only one kind with --owned or --shared",
		RunE: func(cmd *cobra.Command, args []string) error {
			if owned && shared {
				return ErrOwnedAndShared
			}

			filter := immich.AlbumFilterUnspecified

			switch {
			case owned:
				filter = immich.AlbumFilterOwned
			case shared:
				filter = immich.AlbumFilterShared
			}

			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			albums, err := client.Albums().List(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list albums: %w", err)
			}

			return renderAlbums(cmd.OutOrStdout(), albums)
		},
	}

	cmd.Flags().BoolVar(&owned, "owned", false, "only albums owned by the current user")
	cmd.Flags().BoolVar(&shared, "shared", false, "only albums shared with the current user")

	return cmd
}

func newAlbumsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ALBUM_ID",
		Short: "Get album details",
		Long:  "Display an album and its assets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			album, err := client.Albums().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get album: %w", err)
			}

			return renderAlbumDetail(cmd.OutOrStdout(), album)
		},
	}
}

func newAlbumsFindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find NAME_OR_ID",
		Short: "Find an album by name or ID",
		Long:  "Find an album by exact ID or case-insensitive name among owned and shared albums",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			album, err := client.Albums().Find(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to find album: %w", err)
			}

			return renderAlbums(cmd.OutOrStdout(), []immich.Album{*album})
		},
	}
}

func newAlbumsCreateCommand() *cobra.Command {
	var (
		description string
		assetIDs    []string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			album, err := client.Albums().Create(ctx, &immich.AlbumCreateRequest{
				AlbumName:   args[0],
				Description: description,
				AssetIDs:    assetIDs,
			})
			if err != nil {
				return fmt.Errorf("failed to create album: %w", err)
			}

			handled, err := renderStructured(cmd.OutOrStdout(), album)
			if handled {
				return err
			}

			success(cmd.OutOrStdout(), "Created album %s (%s)", album.AlbumName, album.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "album description")
	cmd.Flags().StringSliceVar(&assetIDs, "asset", nil, "asset ID to add (repeatable)")

	return cmd
}

func newAlbumsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ALBUM_ID",
		Short: "Delete an album",
		Long:  "Delete an album. The assets it contains are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			err = client.Albums().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete album: %w", err)
			}

			success(cmd.OutOrStdout(), "Deleted album %s", args[0])

			return nil
		},
	}
}

func newAlbumsAddAssetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-assets ALBUM_ID ASSET_ID...",
		Short: "Add assets to an album",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd // album and at least one asset
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			results, err := client.Albums().AddAssets(ctx, args[0], args[1:])
			if err != nil {
				return fmt.Errorf("failed to add assets: %w", err)
			}

			return renderBulkResults(cmd.OutOrStdout(), results)
		},
	}
}

func newAlbumsRemoveAssetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-assets ALBUM_ID ASSET_ID...",
		Short: "Remove assets from an album",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd // album and at least one asset
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			results, err := client.Albums().RemoveAssets(ctx, args[0], args[1:])
			if err != nil {
				return fmt.Errorf("failed to remove assets: %w", err)
			}

			return renderBulkResults(cmd.OutOrStdout(), results)
		},
	}
}

func newAlbumsDownloadCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "download NAME_OR_ID",
		Short: "Download every asset of an album",
		Long:  "Download the original files of an album into a directory, one at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			album, err := client.Albums().Find(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to find album: %w", err)
			}

			if dir == "" {
				dir = safeFileName(album.AlbumName, album.ID)
			}

			err = os.MkdirAll(dir, constants.DownloadDirPerm)
			if err != nil {
				return fmt.Errorf("failed to create download directory: %w", err)
			}

			return downloadAlbum(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), client.Albums(), client.Assets(), album.ID, dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "target directory (default is the album name)")

	return cmd
}

// downloadAlbum fetches the album's assets and downloads them sequentially.
// Failed downloads are counted, not fatal.
func downloadAlbum(
	ctx context.Context,
	out, progressOut io.Writer,
	albums immich.AlbumsClient,
	assets immich.AssetsClient,
	albumID, dir string,
) error {
	album, err := albums.Get(ctx, albumID)
	if err != nil {
		return fmt.Errorf("failed to get album: %w", err)
	}

	failed := 0
	used := make(map[string]bool, len(album.Assets))

	for _, asset := range album.Assets {
		destination := filepath.Join(dir, uniqueFileName(safeFileName(asset.OriginalFileName, asset.ID), used))

		if !assets.DownloadToFile(ctx, asset.ID, destination, NewProgressBar(progressOut)) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d assets", constants.ErrSomeDownloadsFail, failed, len(album.Assets))
	}

	success(out, "Downloaded %d assets from %s to %s", len(album.Assets), album.AlbumName, dir)

	return nil
}

// uniqueFileName returns name, or name with a -N suffix before the extension
// when an earlier asset already took it. Names are compared case-insensitively
// so case-folding filesystems do not merge them.
func uniqueFileName(name string, used map[string]bool) string {
	candidate := name
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 2; used[strings.ToLower(candidate)]; n++ {
		candidate = stem + "-" + strconv.Itoa(n) + ext
	}

	used[strings.ToLower(candidate)] = true

	return candidate
}

func renderAlbums(w io.Writer, albums []immich.Album) error {
	return render(w, albums, []string{"ID", "Name", "Assets", "Shared", "Owner", "Updated"}, func() [][]string {
		rows := make([][]string, 0, len(albums))
		for _, album := range albums {
			owner := constants.NotAvailable
			if album.Owner != nil {
				owner = album.Owner.Name
			}

			rows = append(rows, []string{
				album.ID,
				album.AlbumName,
				strconv.Itoa(album.AssetCount),
				yesNo(album.Shared),
				owner,
				formatTime(album.UpdatedAt),
			})
		}

		return rows
	})
}

func renderAlbumDetail(w io.Writer, album *immich.Album) error {
	handled, err := renderStructured(w, album)
	if handled {
		return err
	}

	err = renderTable(w, []string{"Property", "Value"}, [][]string{
		{"ID", album.ID},
		{"Name", album.AlbumName},
		{"Description", orNotAvailable(album.Description)},
		{"Assets", strconv.Itoa(album.AssetCount)},
		{"Shared", yesNo(album.Shared)},
		{"Created", formatTime(album.CreatedAt)},
	})
	if err != nil {
		return err
	}

	if len(album.Assets) == 0 {
		return nil
	}

	return renderAssetTable(w, album.Assets)
}

func renderBulkResults(w io.Writer, results []immich.BulkIDResult) error {
	return render(w, results, []string{"ID", "Success", "Error"}, func() [][]string {
		rows := make([][]string, 0, len(results))
		for _, result := range results {
			rows = append(rows, []string{result.ID, yesNo(result.Success), result.Error})
		}

		return rows
	})
}
