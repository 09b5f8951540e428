package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ezerfernandes/docu/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "docu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, "pulumi", cfg.Command)
	assert.Equal(t, 1, cfg.Jobs)
	assert.False(t, cfg.Keep)
	assert.Empty(t, cfg.Environ())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
command: npx pulumi
dir: /var/tmp
keep: true
jobs: 3
env:
  PULUMI_SKIP_UPDATE_CHECK: "true"
  PULUMI_HOME: /opt/pulumi
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "npx pulumi", cfg.Command)
	assert.Equal(t, "/var/tmp", cfg.Dir)
	assert.True(t, cfg.Keep)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, []string{"PULUMI_HOME=/opt/pulumi", "PULUMI_SKIP_UPDATE_CHECK=true"}, cfg.Environ())
}

func TestLoadKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, "keep: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "pulumi", cfg.Command)
	assert.Equal(t, 1, cfg.Jobs)

	cfg, err = config.Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeConfig(t, "unknown: 1\n"))
	require.Error(t, err)

	_, err = config.Load(writeConfig(t, "jobs: -2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobs must not be negative")
}
