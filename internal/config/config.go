// Package config loads the optional docu configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ezerfernandes/docu/internal/convert"
	"gopkg.in/yaml.v3"
)

// Config holds converter settings shared by all commands.
type Config struct {
	// Command is the conversion tool command line (default "pulumi").
	Command string `yaml:"command,omitempty"`
	// Dir is the parent directory of temporary projects.
	Dir string `yaml:"dir,omitempty"`
	// Keep leaves temporary projects on disk.
	Keep bool `yaml:"keep,omitempty"`
	// Jobs is the number of conversions run at once (default 1).
	Jobs int `yaml:"jobs,omitempty"`
	// Env holds extra environment variables for the conversion tool.
	Env map[string]string `yaml:"env,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{ //nolint:exhaustruct
		Command: convert.DefaultCommand,
		Jobs:    1,
	}
}

// Load reads a YAML configuration file. Fields missing from the file keep
// their Default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("%w: %d", errNegativeJobs, c.Jobs)
	}

	return nil
}

// Environ returns Env as sorted KEY=VALUE pairs.
func (c Config) Environ() []string {
	pairs := make([]string, 0, len(c.Env))

	for k, v := range c.Env {
		pairs = append(pairs, k+"="+v)
	}

	sort.Strings(pairs)

	return pairs
}

var errNegativeJobs = errors.New("jobs must not be negative")
