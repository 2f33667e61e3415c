package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.dw1.io/re2/internal/dispatch"
	"go.dw1.io/re2/regexp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "re2.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, dispatch.Supported(), cfg.Blocking)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.Equal(t, int64(regexp.DefaultMaxMem), cfg.MaxMem)
	assert.Equal(t, regexp.EngineCore, cfg.Engine)
	assert.Zero(t, cfg.ResultLimit)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(regexp.DefaultMaxMem), cfg.MaxMem)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
dispatch:
  blocking: false
  workers: 3
compile:
  max_mem: 1MiB
  engine: pcre
result:
  limit: 64KiB
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Blocking)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, int64(1<<20), cfg.MaxMem)
	assert.Equal(t, regexp.EnginePCRE, cfg.Engine)
	assert.Equal(t, int64(64<<10), cfg.ResultLimit)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "compile:\n  max_mem: 1MiB\n")
	t.Setenv("RE2_COMPILE_MAX_MEM", "2MiB")
	t.Setenv("RE2_DISPATCH_WORKERS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(2<<20), cfg.MaxMem)
	assert.Equal(t, 5, cfg.Workers)
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"badMaxMem":   "compile:\n  max_mem: lots\n",
		"zeroMaxMem":  "compile:\n  max_mem: 0\n",
		"badEngine":   "compile:\n  engine: pcre2\n",
		"badLimit":    "result:\n  limit: -1\n",
		"badLevel":    "log:\n  level: loud\n",
		"zeroWorkers": "dispatch:\n  workers: 0\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
