package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"dmglicense/internal/config"
)

// Files written by the stub hdiutil, relative to BaseDir.
const (
	CapturedPlist = "udifrez.plist"
	CapturedArgs  = "udifrez.args"
)

// stubHDIUtil records its arguments and the plist it receives on fd 3.
const stubHDIUtil = `#!/bin/sh
base="$(dirname "$0")/.."
echo "$@" > "$base/` + CapturedArgs + `"
cat <&3 > "$base/` + CapturedPlist + `"
exit 0
`

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp directory per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.File = filepath.Join(base, "logs", "dmg-license.log")
	cfgVal.HDIUtil.TimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithWarningsAsErrors makes skipped languages fatal.
func WithWarningsAsErrors() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Assembly.WarningsAsErrors = true
	}
}

// WithHDIUtilScript installs script as the hdiutil binary.
func WithHDIUtilScript(script string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.HDIUtil.Binary = writeStub(b, "hdiutil", script)
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, a recording hdiutil is stubbed
// and configured.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			b.cfg.HDIUtil.Binary = writeStub(b, "hdiutil", stubHDIUtil)
		}
		for _, name := range names {
			writeStub(b, name, "#!/bin/sh\nexit 0\n")
		}
		binDir := filepath.Join(b.baseDir, "bin")
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

func writeStub(b *configBuilder, name, script string) string {
	binDir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		b.t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Logging.File))
}

// Captured returns a file the stub hdiutil wrote, or nil when it never ran.
func Captured(t testing.TB, cfg *config.Config, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(BaseDir(cfg), name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read captured %s: %v", name, err)
	}
	return data
}
