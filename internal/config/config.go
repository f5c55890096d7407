// Package config loads run settings from defaults and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"nobaidu/internal/filter"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Settings represents the YAML configuration structure
type Settings struct {
	DenyDomains     []string `yaml:"deny_domains"`
	Keywords        []string `yaml:"keywords"`
	MinLength       int      `yaml:"min_length"`
	PageLoadTimeout Duration `yaml:"page_load_timeout"`
	ReadyTimeout    Duration `yaml:"ready_timeout"`
	ResultsTimeout  Duration `yaml:"results_timeout"`
	VerifyTimeout   Duration `yaml:"verify_timeout"`
	VerifyPoll      Duration `yaml:"verify_poll"`
	Delay           Duration `yaml:"delay"`
	Proxy           string   `yaml:"proxy"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		DenyDomains:     append([]string(nil), filter.DefaultDenyDomains...),
		Keywords:        append([]string(nil), filter.DefaultKeywords...),
		MinLength:       filter.DefaultMinLength,
		PageLoadTimeout: Duration(30 * time.Second),
		ReadyTimeout:    Duration(10 * time.Second),
		ResultsTimeout:  Duration(10 * time.Second),
		VerifyTimeout:   Duration(5 * time.Minute),
		VerifyPoll:      Duration(time.Second),
		Delay:           Duration(200 * time.Millisecond),
	}
}

// Load returns the defaults overlaid with the file at path. Keys absent
// from the file keep their default. An empty path returns the defaults.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects settings the pipeline cannot run with.
func (s *Settings) Validate() error {
	if s.MinLength < 0 {
		return fmt.Errorf("min_length must not be negative")
	}
	if s.VerifyPoll <= 0 {
		return fmt.Errorf("verify_poll must be positive")
	}
	if s.ResultsTimeout <= 0 {
		return fmt.Errorf("results_timeout must be positive")
	}
	if s.VerifyTimeout < 0 || s.Delay < 0 || s.PageLoadTimeout < 0 || s.ReadyTimeout < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
