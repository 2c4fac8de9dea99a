// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "module", cfg.ModelsDir)
	assert.Equal(t, "locales", cfg.LocalesDir)
	assert.Equal(t, 10, cfg.FetchTimeoutSeconds)
	assert.False(t, cfg.Debug)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host: 127.0.0.1
port: 8080
debug: true
models-dir: /srv/models
github:
  client-id: abc
  client-secret: def
  redirect-url: http://localhost:8080/auth/github/callback
fetch-timeout-seconds: 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/srv/models", cfg.ModelsDir)
	assert.Equal(t, "abc", cfg.GitHub.ClientID)
	assert.Equal(t, "def", cfg.GitHub.ClientSecret)
	assert.Equal(t, 3, cfg.FetchTimeoutSeconds)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a scalar"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPort, "9999")
	t.Setenv(EnvSessionSecret, "top-secret")
	t.Setenv(EnvGitHubClientID, "env-id")
	t.Setenv(EnvGitHubClientSecret, "env-secret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\nsession-secret: from-file\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port, "env wins over file")
	assert.Equal(t, "top-secret", cfg.SessionSecret)
	assert.Equal(t, "env-id", cfg.GitHub.ClientID)
	assert.Equal(t, "env-secret", cfg.GitHub.ClientSecret)
}

func TestEnvPortIgnoredWhenNotNumeric(t *testing.T) {
	t.Setenv(EnvPort, "eighty")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: -1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
