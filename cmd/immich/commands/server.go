package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

// NewServerCommand creates the server command group
func NewServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Show server information",
		Long:  "Display version, statistics, storage, and feature information of the Immich server",
	}

	cmd.AddCommand(newServerVersionCommand())
	cmd.AddCommand(newServerInfoCommand())
	cmd.AddCommand(newServerStatsCommand())
	cmd.AddCommand(newServerStorageCommand())
	cmd.AddCommand(newServerFeaturesCommand())

	return cmd
}

func newServerVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the server version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			version, err := client.Server().Version(ctx)
			if err != nil {
				return fmt.Errorf("failed to get server version: %w", err)
			}

			return render(cmd.OutOrStdout(), version, []string{"Property", "Value"}, func() [][]string {
				return [][]string{{"Version", version.String()}}
			})
		},
	}
}

func newServerInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show server information",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			info, err := client.Server().Info(ctx)
			if err != nil {
				return fmt.Errorf("failed to get server info: %w", err)
			}

			return render(cmd.OutOrStdout(), info, []string{"Property", "Value"}, func() [][]string {
				keys := make([]string, 0, len(info))
				for key := range info {
					keys = append(keys, key)
				}

				sort.Strings(keys)

				rows := make([][]string, 0, len(keys))
				for _, key := range keys {
					rows = append(rows, []string{titleCase(key), fmt.Sprintf("%v", info[key])})
				}

				return rows
			})
		},
	}
}

func newServerStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Aliases: []string{"statistics"},
		Short:   "Show library statistics per user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			stats, err := client.Server().Statistics(ctx)
			if err != nil {
				return fmt.Errorf("failed to get server statistics: %w", err)
			}

			return render(cmd.OutOrStdout(), stats, []string{"User", "Photos", "Videos", "Usage"}, func() [][]string {
				rows := make([][]string, 0, len(stats.UsageByUser)+1)
				for _, usage := range stats.UsageByUser {
					rows = append(rows, []string{
						usage.UserName,
						strconv.Itoa(usage.Photos),
						strconv.Itoa(usage.Videos),
						formatBytes(usage.Usage),
					})
				}

				rows = append(rows, []string{"Total", strconv.Itoa(stats.Photos), strconv.Itoa(stats.Videos), formatBytes(stats.Usage)})

				return rows
			})
		},
	}
}

func newServerStorageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "storage",
		Short: "Show disk usage of the upload location",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			storage, err := client.Server().StorageInfo(ctx)
			if err != nil {
				return fmt.Errorf("failed to get storage info: %w", err)
			}

			return render(cmd.OutOrStdout(), storage, []string{"Property", "Value"}, func() [][]string {
				return [][]string{
					{"Disk Size", formatBytes(storage.DiskSizeRaw)},
					{"Disk Used", formatBytes(storage.DiskUseRaw)},
					{"Disk Available", formatBytes(storage.DiskAvailableRaw)},
					{"Usage", fmt.Sprintf("%.1f%%", storage.DiskUsagePercentage)},
				}
			})
		},
	}
}

func newServerFeaturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "Show which optional features are enabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			features, err := client.Features().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to get server features: %w", err)
			}

			return render(cmd.OutOrStdout(), features, []string{"Feature", "Enabled"}, func() [][]string {
				names := make([]string, 0, len(features))
				for name := range features {
					names = append(names, name)
				}

				sort.Strings(names)

				rows := make([][]string, 0, len(names))
				for _, name := range names {
					rows = append(rows, []string{titleCase(name), yesNo(features[name])})
				}

				return rows
			})
		},
	}
}
