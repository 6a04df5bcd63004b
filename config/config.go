package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/bondpv/journal"
	"github.com/rustyeddy/bondpv/pv"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults used by the bondpv command.
type Config struct {
	Bond    BondConfig    `json:"bond" yaml:"bond"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// BondConfig contains the bond terms. Rates are annual percentages.
type BondConfig struct {
	NominalPrice float64 `json:"nominal_price" yaml:"nominal_price"`
	CouponRate   float64 `json:"coupon_rate" yaml:"coupon_rate"`
	DiscountRate float64 `json:"discount_rate" yaml:"discount_rate"`
	Duration     float64 `json:"duration" yaml:"duration"` // years
	Period       float64 `json:"period" yaml:"period"`     // payments per year
	Method       string  `json:"method,omitempty" yaml:"method,omitempty"`
}

// Inputs converts the bond terms for the calculator.
func (b BondConfig) Inputs() pv.Inputs {
	return pv.Inputs{
		NominalPrice: b.NominalPrice,
		CouponRate:   b.CouponRate,
		DiscountRate: b.DiscountRate,
		Duration:     b.Duration,
		Period:       b.Period,
		Method:       pv.Method(b.Method),
	}
}

// JournalConfig selects where valuations are recorded.
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // console or json
}

// LoadFromFile loads configuration from a file. Fields missing from the
// file keep their Default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks field ranges. Whether period * duration is a whole
// number is left to the calculator.
func (c *Config) Validate() error {
	b := c.Bond
	for name, v := range map[string]float64{
		"bond.nominal_price": b.NominalPrice,
		"bond.coupon_rate":   b.CouponRate,
		"bond.discount_rate": b.DiscountRate,
		"bond.duration":      b.Duration,
		"bond.period":        b.Period,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number", name)
		}
	}
	if b.NominalPrice < 0 {
		return fmt.Errorf("bond.nominal_price must not be negative")
	}
	if b.Duration < 0 {
		return fmt.Errorf("bond.duration must not be negative")
	}
	if b.Period <= 0 {
		return fmt.Errorf("bond.period must be positive")
	}
	if _, err := pv.ParseMethod(b.Method); err != nil {
		return fmt.Errorf("bond.method: %w", err)
	}

	switch c.Journal.Type {
	case "", journal.TypeNone:
	case journal.TypeCSV, journal.TypeSQLite:
		if c.Journal.Path == "" {
			return fmt.Errorf("journal.path required for %s journal", c.Journal.Type)
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Default returns the command's built-in defaults.
func Default() *Config {
	in := pv.DefaultInputs()
	return &Config{
		Bond: BondConfig{
			NominalPrice: in.NominalPrice,
			CouponRate:   in.CouponRate,
			DiscountRate: in.DiscountRate,
			Duration:     in.Duration,
			Period:       in.Period,
			Method:       string(in.Method),
		},
		Journal: JournalConfig{
			Type: journal.TypeNone,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultJournalPath is used when a journal type is chosen without a path.
func DefaultJournalPath(kind string) string {
	switch kind {
	case journal.TypeCSV:
		return "./valuations.csv"
	case journal.TypeSQLite:
		return "./bondpv.sqlite"
	}
	return ""
}
