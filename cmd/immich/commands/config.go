package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immichclient"
)

// Config represents the CLI configuration.
type Config struct {
	Server        string        `json:"server,omitempty"          yaml:"server,omitempty"`
	APIKey        string        `json:"api_key,omitempty"         yaml:"api_key,omitempty"`
	Output        string        `json:"output,omitempty"          yaml:"output,omitempty"`
	NoColor       bool          `json:"no_color,omitempty"        yaml:"no_color,omitempty"`
	SkipTLSVerify bool          `json:"skip_tls_verify,omitempty" yaml:"skip_tls_verify,omitempty"`
	Timeout       time.Duration `json:"timeout,omitempty"         yaml:"timeout,omitempty"`
}

// Configuration keys accepted by config set and unset.
const (
	keyServer        = "server"
	keyAPIKey        = "api_key"
	keyOutput        = "output"
	keyNoColor       = "no_color"
	keySkipTLSVerify = "skip_tls_verify"
	keyTimeout       = "timeout"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the server, API key, and output settings of the Immich CLI",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.APIKey != "" {
				config.APIKey = constants.MaskedSecret
			}

			timeout := constants.NotAvailable
			if config.Timeout > 0 {
				timeout = config.Timeout.String()
			}

			return render(cmd.OutOrStdout(), config, []string{"Property", "Value"}, func() [][]string {
				return [][]string{
					{"Server", orNotAvailable(config.Server)},
					{"API Key", orNotAvailable(config.APIKey)},
					{"Output", orNotAvailable(config.Output)},
					{"No Color", yesNo(config.NoColor)},
					{"Skip TLS Verify", yesNo(config.SkipTLSVerify)},
					{"Timeout", timeout},
					{"Config File", orNotAvailable(viper.ConfigFileUsed())},
				}
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of: server, api_key, output, no_color, skip_tls_verify, timeout",
		Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			shown := value
			if key == keyAPIKey {
				shown = constants.MaskedSecret
			}

			success(cmd.OutOrStdout(), "Set %s to %s", key, shown)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Reset a configuration value to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			err := unsetConfigValue(config, key)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			success(cmd.OutOrStdout(), "Unset %s", key)

			return nil
		},
	}
}

func loadConfig() *Config {
	return &Config{
		Server:        viper.GetString(keyServer),
		APIKey:        viper.GetString(keyAPIKey),
		Output:        viper.GetString(keyOutput),
		NoColor:       viper.GetBool(keyNoColor),
		SkipTLSVerify: viper.GetBool(keySkipTLSVerify),
		Timeout:       viper.GetDuration(keyTimeout),
	}
}

// setConfigValue validates and applies one key to config.
func setConfigValue(config *Config, key, value string) error {
	switch key {
	case keyServer:
		config.Server = immichclient.NormalizeServerURL(value)
	case keyAPIKey:
		config.APIKey = value
	case keyOutput:
		switch value {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value
		default:
			return fmt.Errorf("%w: %s (use table, json, or yaml)", constants.ErrInvalidOutput, value)
		}
	case keyNoColor, keySkipTLSVerify:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}

		if key == keyNoColor {
			config.NoColor = parsed
		} else {
			config.SkipTLSVerify = parsed
		}
	case keyTimeout:
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}

		config.Timeout = timeout
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case keyServer:
		config.Server = ""
	case keyAPIKey:
		config.APIKey = ""
	case keyOutput:
		config.Output = ""
	case keyNoColor:
		config.NoColor = false
	case keySkipTLSVerify:
		config.SkipTLSVerify = false
	case keyTimeout:
		config.Timeout = 0
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// configFilePath returns the file in use, or ~/.immich/config.yml.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ConfigDirName, ConfigFileName), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.Set(keyServer, config.Server)
	viper.Set(keyAPIKey, config.APIKey)
	viper.Set(keyOutput, config.Output)
	viper.Set(keyNoColor, config.NoColor)
	viper.Set(keySkipTLSVerify, config.SkipTLSVerify)
	viper.Set(keyTimeout, config.Timeout)

	return nil
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
