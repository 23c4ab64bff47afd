// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bocagrande/semmap/internal/config"
)

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFile_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semmap.yaml")
	doc := `
workers: 4
validator:
  command: ["java", "-jar", "HermiT.jar"]
  timeout_seconds: 30
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{"java", "-jar", "HermiT.jar"}, cfg.Validator.Command)
	assert.Equal(t, 30, cfg.Validator.TimeoutSeconds)
}

func TestLoadFile_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: -1\n"), 0o600))

	_, err := config.LoadFile(path)
	assert.Error(t, err)
}
