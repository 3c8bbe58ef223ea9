package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"

	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Config struct {
	Version string `yaml:"version" json:"version"`
	Store   Store  `yaml:"store" json:"store"`
	Tasks   Tasks  `yaml:"tasks" json:"tasks"`
	Log     Log    `yaml:"log" json:"log"`
}

type Store struct {
	// Driver is one of "file", "sqlite" or "memory".
	Driver string `yaml:"driver" json:"driver"`
	Path   string `yaml:"path" json:"path"`
	// Format applies to the file driver only. Empty means "by extension".
	Format string `yaml:"format" json:"format"`
}

type Tasks struct {
	Locale string `yaml:"locale" json:"locale"`
	// Priorities overrides the locale's labels, lowest first.
	Priorities    []string `yaml:"priorities" json:"priorities"`
	InitialStatus string   `yaml:"initial_status" json:"initial_status"`
}

type Log struct {
	Level string `yaml:"level" json:"level"`
}

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func (s *Store) ApplyDefaults() {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	if s.Driver == "" {
		s.Driver = DriverFile
	}
	if strings.TrimSpace(s.Path) == "" {
		switch s.Driver {
		case DriverSQLite:
			s.Path = "data/tasks.db"
		default:
			s.Path = "data/tasks_database.json"
		}
	}
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
}

func (t *Tasks) ApplyDefaults() {
	t.Locale = strings.ToLower(strings.TrimSpace(t.Locale))
	if t.Locale == "" {
		t.Locale = LocaleEN
	}
}

func (c *Config) ApplyDefaults() {
	c.Store.ApplyDefaults()
	c.Tasks.ApplyDefaults()
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverFile, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch c.Store.Format {
	case "", FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown store format %q", c.Store.Format)
	}
	if _, err := c.Tasks.Labels(); err != nil {
		return err
	}
	return nil
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}

// LoadOptional is Load, except a missing file yields the defaults.
// Environment overrides are applied in both cases.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) || strings.TrimSpace(path) == "" {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
