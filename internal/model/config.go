package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/inovacc/craft-stats/internal/application"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultOwner is the GitHub organisation owning the tracked projects
	DefaultOwner = "canonical"

	// DefaultRefreshIntervalDays bounds how stale a known issue may get
	DefaultRefreshIntervalDays = 7
)

// Config holds the tracked projects and collection settings
type Config struct {
	// Owner is the GitHub organisation or user owning every project
	Owner string `yaml:"owner"`

	// CraftProjects is the ordered list of GitHub repositories to collect issues for
	CraftProjects []string `yaml:"craft-projects"`

	// CraftLibraries lists the shared libraries
	CraftLibraries []string `yaml:"craft-libraries"`

	// CraftApplications lists the applications built on the libraries
	CraftApplications []string `yaml:"craft-applications"`

	// LaunchpadProjects lists the bug tracker projects to record status counts for
	LaunchpadProjects []string `yaml:"launchpad-projects,omitempty"`

	// RefreshIntervalDays is how old a record's refresh_date may get before it is fetched again
	RefreshIntervalDays int `yaml:"refresh-interval-days"`
}

// rawConfig mirrors Config with pointers so missing keys can be told apart from empty ones
type rawConfig struct {
	Owner               *string   `yaml:"owner"`
	CraftProjects       *[]string `yaml:"craft-projects"`
	CraftLibraries      []string  `yaml:"craft-libraries"`
	CraftApplications   []string  `yaml:"craft-applications"`
	LaunchpadProjects   []string  `yaml:"launchpad-projects"`
	RefreshIntervalDays *int      `yaml:"refresh-interval-days"`
}

// DefaultConfig returns a Config with defaults and no projects
func DefaultConfig() Config {
	return Config{
		Owner:               DefaultOwner,
		RefreshIntervalDays: DefaultRefreshIntervalDays,
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// ParseConfig decodes YAML configuration, rejecting unknown keys.
func ParseConfig(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw rawConfig
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if raw.CraftProjects == nil {
		return nil, errors.New("craft-projects is required")
	}

	cfg := DefaultConfig()
	cfg.CraftProjects = *raw.CraftProjects
	cfg.CraftLibraries = raw.CraftLibraries
	cfg.CraftApplications = raw.CraftApplications
	cfg.LaunchpadProjects = raw.LaunchpadProjects

	if raw.Owner != nil && *raw.Owner != "" {
		cfg.Owner = *raw.Owner
	}

	if raw.RefreshIntervalDays != nil {
		cfg.RefreshIntervalDays = *raw.RefreshIntervalDays
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// RefreshInterval returns RefreshIntervalDays as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalDays) * 24 * time.Hour
}

// Validate checks the configuration for values the collector cannot work with.
func (c *Config) Validate() error {
	if c.RefreshIntervalDays < 0 {
		return fmt.Errorf("refresh-interval-days must not be negative, got %d", c.RefreshIntervalDays)
	}

	seen := make(map[string]bool, len(c.CraftProjects))
	for _, project := range c.CraftProjects {
		if project == "" {
			return errors.New("craft-projects contains an empty name")
		}

		if project == application.AllProjects {
			return fmt.Errorf("craft-projects must not contain the reserved name %q", application.AllProjects)
		}

		if seen[project] {
			return fmt.Errorf("craft-projects lists %q twice", project)
		}

		seen[project] = true
	}

	return nil
}
