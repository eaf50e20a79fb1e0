package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dmglicense/internal/config"
	"dmglicense/internal/testsupport"
)

const twoLanguageSpec = `{
  "body": [
    {"lang": ["en-US", "en-GB"], "text": "English terms", "default": true},
    {"lang": "de", "text": "Deutsche Bedingungen"}
  ]
}`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	specPath   string
	imagePath  string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Chdir(base)

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithStubbedBinaries()}, opts...)...)
	configPath := filepath.Join(base, "dmg-license.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		specPath:   testsupport.WriteText(t, base, "licenses.json", twoLanguageSpec),
		imagePath:  testsupport.WriteText(t, base, "app.dmg", "fake image contents"),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[hdiutil]\nbinary = %q\ntimeout_seconds = %d\n\n[logging]\nformat = %q\nlevel = %q\nfile = %q\n\n[assembly]\nwarnings_as_errors = %t\n",
		cfg.HDIUtil.Binary,
		cfg.HDIUtil.TimeoutSeconds,
		cfg.Logging.Format,
		cfg.Logging.Level,
		cfg.Logging.File,
		cfg.Assembly.WarningsAsErrors,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireExitCode(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected failure with exit code %d", want)
	}
	if got := exitCode(err); got != want {
		t.Fatalf("exit code = %d, want %d (err: %v)", got, want, err)
	}
}
