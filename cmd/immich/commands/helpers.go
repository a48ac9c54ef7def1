package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immich"
	"github.com/guanana/immich-lib/pkg/immichclient"
)

// Common string constants used throughout the commands package.
const (
	ConfigDirName  = ".immich"
	ConfigFileName = "config.yml"

	Yes = "yes"
	No  = "no"

	cliUserAgent = "immich-cli"
)

// newClient builds an API client from the merged flag, environment, and file
// configuration.
func newClient(ctx context.Context) (immich.Client, error) {
	config := loadConfig()

	if config.Server == "" {
		return nil, constants.ErrNoServerConfigured
	}

	if config.APIKey == "" {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	verbose := viper.GetBool("verbose")

	client, err := immichclient.New(ctx, &immich.Config{
		ServerURL:     config.Server,
		APIKey:        config.APIKey,
		HTTPTimeout:   config.Timeout,
		UserAgent:     cliUserAgent,
		Debug:         verbose,
		Logger:        NewLogger(os.Stderr, verbose),
		SkipTLSVerify: config.SkipTLSVerify,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Immich client: %w", err)
	}

	return client, nil
}

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	output := strings.ToLower(viper.GetString("output"))

	switch output {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return output, nil
	default:
		return "", fmt.Errorf("%w: %s (use table, json, or yaml)", constants.ErrInvalidOutput, output)
	}
}

// renderStructured writes data as JSON or YAML. It reports false when the
// selected format is table so the caller can render its own view.
func renderStructured(w io.Writer, data interface{}) (bool, error) {
	output, err := outputFormat()
	if err != nil {
		return true, err
	}

	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return true, encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)

		defer func() { _ = encoder.Close() }()

		return true, encoder.Encode(data)
	default:
		return false, nil
	}
}

// renderTable writes a header and rows with tablewriter.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)

	table.Header(toCells(header)...)

	for _, row := range rows {
		_ = table.Append(toCells(row)...)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}

	return cells
}

// render writes data in the selected format, falling back to the table
// produced by toTable.
func render(w io.Writer, data interface{}, header []string, toTable func() [][]string) error {
	handled, err := renderStructured(w, data)
	if handled {
		return err
	}

	return renderTable(w, header, toTable())
}

func success(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(w, color.GreenString("✓"), fmt.Sprintf(format, args...))
}

func warning(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(w, color.YellowString("!"), fmt.Sprintf(format, args...))
}

func yesNo(value bool) string {
	if value {
		return Yes
	}

	return No
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format("2006-01-02 15:04")
}

func formatBytes(n int64) string {
	if n < 0 {
		return constants.NotAvailable
	}

	return humanize.Bytes(uint64(n))
}

// titleCase turns a camelCase key such as "thumbnailGeneration" into
// "Thumbnail Generation".
func titleCase(key string) string {
	var words []string

	start := 0

	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			words = append(words, key[start:i])
			start = i
		}
	}

	words = append(words, key[start:])

	return cases.Title(language.English).String(strings.Join(words, " "))
}

// safeFileName returns a file name that cannot escape the download directory.
func safeFileName(name, fallback string) string {
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || name == "" {
		return fallback
	}

	return name
}

// parseBoolFlag parses an optional tri-state flag. An empty value yields nil.
func parseBoolFlag(value string) (*bool, error) {
	if value == "" {
		return nil, nil //nolint:nilnil // absent flag
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean %q: %w", value, err)
	}

	return &parsed, nil
}

// commandContext returns the command's context, defaulting to Background for
// commands executed outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
