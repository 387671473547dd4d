package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "flexidash.yaml"

// Config represents the top-level flexidash.yaml configuration.
type Config struct {
	Storage   StorageConfig `yaml:"storage"`
	Logs      LogsConfig    `yaml:"logs"`
	Sync      SyncConfig    `yaml:"sync"`
	Report    ReportConfig  `yaml:"report"`
	EnvFile   string        `yaml:"env_file,omitempty"`
	Companies []Company     `yaml:"companies,omitempty"`
}

// StorageConfig locates the SQLite document store.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogsConfig locates the sync run log.
type LogsConfig struct {
	Dir string `yaml:"dir"`
}

// SyncConfig controls fetching from AbraFlexi.
type SyncConfig struct {
	Year        int      `yaml:"year,omitempty"` // 0 means the current calendar year
	Interval    Duration `yaml:"interval"`
	Timeout     Duration `yaml:"timeout"`
	Concurrency int      `yaml:"concurrency"`
}

// ReportConfig controls statement aggregation.
type ReportConfig struct {
	CurrentYearResult bool `yaml:"current_year_result"`
}

// Company is one AbraFlexi company. The password is never stored here.
type Company struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	User      string `yaml:"user"`
	Currency  string `yaml:"currency,omitempty"`
	ChartFile string `yaml:"chart_file,omitempty"`
}

// Syncable reports whether the company has an endpoint configured.
func (c Company) Syncable() bool {
	return c.URL != "" && c.User != ""
}

// Duration is a time.Duration written as "15m" in YAML.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalYAML writes d in time.Duration.String form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML accepts anything time.ParseDuration does.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Load reads a flexidash.yaml file from disk. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Path: "flexidash.db"},
		Logs:    LogsConfig{Dir: "logs"},
		Sync: SyncConfig{
			Interval:    Duration(15 * time.Minute),
			Timeout:     Duration(2 * time.Minute),
			Concurrency: 4,
		},
		EnvFile: ".env",
	}
}

// Validate checks the values Load cannot check by type alone.
func (c *Config) Validate() error {
	var errs []error
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path is empty"))
	}
	if c.Sync.Year != 0 && (c.Sync.Year < 1900 || c.Sync.Year > 9999) {
		errs = append(errs, fmt.Errorf("sync.year %d out of range", c.Sync.Year))
	}
	if c.Sync.Interval <= 0 {
		errs = append(errs, errors.New("sync.interval must be positive"))
	}
	if c.Sync.Timeout <= 0 {
		errs = append(errs, errors.New("sync.timeout must be positive"))
	}
	if c.Sync.Concurrency < 1 {
		errs = append(errs, errors.New("sync.concurrency must be at least 1"))
	}
	seen := make(map[string]bool, len(c.Companies))
	for i, co := range c.Companies {
		switch {
		case co.ID == "":
			errs = append(errs, fmt.Errorf("companies[%d]: id is empty", i))
		case seen[co.ID]:
			errs = append(errs, fmt.Errorf("companies[%d]: duplicate id %q", i, co.ID))
		}
		seen[co.ID] = true
	}
	return errors.Join(errs...)
}

// Company returns the company with the given id.
func (c *Config) Company(id string) (Company, bool) {
	for _, co := range c.Companies {
		if co.ID == id {
			return co, true
		}
	}
	return Company{}, false
}

// YearOr returns the configured sync year, or the year of now when unset.
func (c *Config) YearOr(now time.Time) int {
	if c.Sync.Year != 0 {
		return c.Sync.Year
	}
	return now.Year()
}

// ResolvePaths makes relative file paths relative to dir, normally the
// directory holding the config file.
func (c *Config) ResolvePaths(dir string) {
	resolve := func(p string) string {
		if p == "" || p == ":memory:" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Storage.Path = resolve(c.Storage.Path)
	c.Logs.Dir = resolve(c.Logs.Dir)
	c.EnvFile = resolve(c.EnvFile)
	for i := range c.Companies {
		c.Companies[i].ChartFile = resolve(c.Companies[i].ChartFile)
	}
}
