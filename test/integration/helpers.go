//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	ServerURL  string
	APIKey     string
	ImmichPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		ServerURL:  os.Getenv("IMMICH_SERVER"),
		APIKey:     os.Getenv("IMMICH_API_KEY"),
		ImmichPath: getImmichPath(),
		Verbose:    os.Getenv("IMMICH_VERBOSE") == "true",
	}
}

// getImmichPath determines the path to the immich binary
func getImmichPath() string {
	if path := os.Getenv("IMMICH_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../immich",
		"./immich",
		"../immich",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "immich"
}

// SkipIfNoServer skips the test unless a server and API key are configured
func (config *TestConfig) SkipIfNoServer(t *testing.T) {
	t.Helper()

	if config.ServerURL == "" || config.APIKey == "" {
		t.Skip("IMMICH_SERVER or IMMICH_API_KEY not set, skipping integration test")
	}
}

// SkipIfNoBinary skips the test when the CLI binary cannot be found
func (config *TestConfig) SkipIfNoBinary(t *testing.T) {
	t.Helper()

	config.SkipIfNoServer(t)

	if _, err := exec.LookPath(config.ImmichPath); err != nil {
		t.Skipf("immich binary not found at %s, skipping integration test", config.ImmichPath)
	}
}

// CommandRunner runs the immich binary against the configured server
type CommandRunner struct {
	config    *TestConfig
	configDir string
	t         *testing.T
}

// NewCommandRunner creates a new command runner with an isolated config file
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:    config,
		configDir: t.TempDir(),
		t:         t,
	}
}

// Run executes an immich command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configDir + "/config.yml"}, args...)

	cmd := exec.Command(runner.config.ImmichPath, args...) // #nosec G204 -- test binary
	cmd.Env = append(os.Environ(),
		"IMMICH_SERVER="+runner.config.ServerURL,
		"IMMICH_API_KEY="+runner.config.APIKey,
	)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.ImmichPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
