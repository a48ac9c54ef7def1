package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immich"
	"github.com/guanana/immich-lib/pkg/immichclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Login to an Immich server",
		Long: `Verify a server URL and API key and store them in the CLI configuration.

Values given with --server and --api-key are used as-is; missing ones are
prompted for.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			reader := bufio.NewReader(os.Stdin)

			serverURL := viper.GetString(keyServer)
			if serverURL == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Server URL: ")
				serverURL, _ = reader.ReadString('\n')
				serverURL = strings.TrimSpace(serverURL)
			}

			serverURL = immichclient.NormalizeServerURL(serverURL)
			if serverURL == "" {
				return immich.ErrServerURLRequired
			}

			err := immichclient.PingWithLogger(ctx, serverURL, NewLogger(cmd.ErrOrStderr(), viper.GetBool("verbose")))
			if err != nil {
				return fmt.Errorf("cannot reach %s: %w", serverURL, err)
			}

			apiKey := viper.GetString(keyAPIKey)
			if apiKey == "" {
				fmt.Fprint(cmd.OutOrStdout(), "API key: ")

				keyBytes, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read API key: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout())

				apiKey = strings.TrimSpace(string(keyBytes))
			}

			if apiKey == "" {
				return immich.ErrAPIKeyRequired
			}

			client, err := immichclient.New(ctx, &immich.Config{
				ServerURL:     serverURL,
				APIKey:        apiKey,
				UserAgent:     cliUserAgent,
				Logger:        NewLogger(os.Stderr, viper.GetBool("verbose")),
				SkipTLSVerify: viper.GetBool(keySkipTLSVerify),
			})
			if err != nil {
				return fmt.Errorf("failed to create Immich client: %w", err)
			}

			version := client.CheckAuth(ctx)
			if version == nil {
				return constants.ErrAuthCheckFailed
			}

			config := loadConfig()
			config.Server = serverURL
			config.APIKey = apiKey

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			success(cmd.OutOrStdout(), "Logged in to %s (Immich %s)", serverURL, version)

			return nil
		},
	}
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		Long:  "Remove the API key from the CLI configuration, keeping the server URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = ""

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			success(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}
