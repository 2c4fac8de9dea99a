// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config provides configuration management for the
// QuickFactChecker server. Settings load from an optional YAML file and
// are overridden by environment variables, so a bare container with a
// PORT variable is enough to run.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	EnvPort               = "PORT"
	EnvSessionSecret      = "SESSION_SECRET"
	EnvGitHubClientID     = "GITHUB_CLIENT_ID"
	EnvGitHubClientSecret = "GITHUB_CLIENT_SECRET"
	EnvGitHubRedirectURL  = "GITHUB_REDIRECT_URL"
)

// Config represents the application's configuration, loaded from a YAML
// file plus environment overrides.
type Config struct {
	// Host is the interface the server binds. Empty binds all.
	Host string `yaml:"host"`
	// Port is the listening port.
	Port int `yaml:"port"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
	// LoggingToFile switches logs from stdout to rotating files.
	LoggingToFile bool `yaml:"logging-to-file"`

	// ModelsDir holds the serialized model artifacts.
	ModelsDir string `yaml:"models-dir"`
	// OnnxLibraryPath is the ONNX runtime shared library; empty uses
	// the platform default lookup.
	OnnxLibraryPath string `yaml:"onnx-library-path"`
	// LocalesDir holds the translation bundle JSON files.
	LocalesDir string `yaml:"locales-dir"`
	// ResultsFile is the offline evaluation results table.
	ResultsFile string `yaml:"results-file"`

	// SessionSecret signs session cookies.
	SessionSecret string `yaml:"session-secret"`

	// GitHub holds the optional OAuth application credentials. Empty
	// credentials disable the login flow.
	GitHub GitHubConfig `yaml:"github"`

	// FetchTimeoutSeconds bounds URL resolution.
	FetchTimeoutSeconds int `yaml:"fetch-timeout-seconds"`
	// FetchMaxTokens caps text extracted from a URL.
	FetchMaxTokens int `yaml:"fetch-max-tokens"`
}

// GitHubConfig holds OAuth application credentials.
type GitHubConfig struct {
	ClientID     string `yaml:"client-id"`
	ClientSecret string `yaml:"client-secret"`
	RedirectURL  string `yaml:"redirect-url"`
}

// Default returns the runnable zero-config defaults.
func Default() *Config {
	return &Config{
		Port:                5000,
		ModelsDir:           "module",
		LocalesDir:          "locales",
		ResultsFile:         "results.md",
		FetchTimeoutSeconds: 10,
	}
}

// Load reads the config file at path, falling back to defaults when the
// path is empty or the file does not exist, then applies environment
// overrides. A present but malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file; defaults plus env carry the day.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv(EnvSessionSecret); v != "" {
		c.SessionSecret = v
	}
	if v := os.Getenv(EnvGitHubClientID); v != "" {
		c.GitHub.ClientID = v
	}
	if v := os.Getenv(EnvGitHubClientSecret); v != "" {
		c.GitHub.ClientSecret = v
	}
	if v := os.Getenv(EnvGitHubRedirectURL); v != "" {
		c.GitHub.RedirectURL = v
	}
}
