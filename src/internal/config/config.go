package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"roster/src/internal/names"
	"roster/src/internal/schema"
)

// EnvPath names the environment variable consulted when --config is not given.
const EnvPath = "ROSTER_CONFIG"

// DefaultHistoricalCSV is where the accumulated roster lives unless configured.
var DefaultHistoricalCSV = filepath.Join("seed", "Seattle-WA-Police-Department_Historical.csv")

// Config holds the settings that vary between department export formats.
type Config struct {
	// Renames maps source-column spellings to canonical column names.
	Renames map[string]string `yaml:"renames" toml:"renames"`
	// ReplaceRenames discards the built-in table instead of merging over it.
	ReplaceRenames bool     `yaml:"replace_renames" toml:"replace_renames"`
	Convention     string   `yaml:"convention" toml:"convention"`
	HistoricalCSV  string   `yaml:"historical_csv" toml:"historical_csv"`
	Columns        []string `yaml:"columns" toml:"columns"`
	Database       string   `yaml:"database" toml:"database"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Renames:       schema.DefaultRenames(),
		Convention:    names.CommaLastFirst.String(),
		HistoricalCSV: DefaultHistoricalCSV,
		Columns:       slices.Clone(schema.HistoricalColumns),
		Database:      "roster.db",
	}
}

// Load reads a YAML (.yaml/.yml) or TOML (.toml) file and layers it over the
// defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var file Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, fmt.Errorf("invalid TOML in %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .yaml, .yml or .toml)", filepath.Ext(path))
	}
	cfg := merge(Default(), &file)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func merge(base, file *Config) *Config {
	if file.ReplaceRenames {
		base.Renames = map[string]string{}
	}
	maps.Copy(base.Renames, file.Renames)
	base.ReplaceRenames = file.ReplaceRenames
	if s := strings.TrimSpace(file.Convention); s != "" {
		base.Convention = s
	}
	if s := strings.TrimSpace(file.HistoricalCSV); s != "" {
		base.HistoricalCSV = s
	}
	if len(file.Columns) > 0 {
		base.Columns = slices.Clone(file.Columns)
	}
	if s := strings.TrimSpace(file.Database); s != "" {
		base.Database = s
	}
	return base
}

// NameConvention returns the parsed name-splitting convention.
func (c *Config) NameConvention() (names.Convention, error) {
	return names.ParseConvention(c.Convention)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := c.NameConvention(); err != nil {
		return err
	}
	if len(c.Columns) == 0 {
		return errors.New("columns must not be empty")
	}
	for from, to := range c.Renames {
		if strings.TrimSpace(to) == "" {
			return fmt.Errorf("rename for %q has an empty target", from)
		}
	}
	return nil
}
