// Package config resolves csvtool settings from flags, environment
// variables, and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bjaus/csvtool"
)

// EnvPrefix prefixes environment overrides, e.g. CSVTOOL_OUTFMT=table.
const EnvPrefix = "CSVTOOL"

// Config holds every resolved setting.
type Config struct {
	Join      string
	Filter    string
	Keep      string
	Headings  int
	InFormat  string
	Reader    string
	OutFormat string
	Writer    string
	Worksheet string
	NoneAs    string
	Debug     bool
	Test      bool
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Config {
	return Config{
		InFormat:  string(csvtool.InputCSV),
		Reader:    "default",
		OutFormat: string(csvtool.CSV),
		Writer:    "default",
	}
}

// Load layers the config file at path (if any), CSVTOOL_* environment
// variables, and the flags that were set explicitly, in increasing order
// of precedence.
func Load(flags *pflag.FlagSet, path string) (*Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("infmt", defaults.InFormat)
	v.SetDefault("reader", defaults.Reader)
	v.SetDefault("outfmt", defaults.OutFormat)
	v.SetDefault("writer", defaults.Writer)
	v.SetDefault("headings", defaults.Headings)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read config %s: %w", csvtool.ErrConfiguration, path, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := &Config{
		Join:      v.GetString("join"),
		Filter:    v.GetString("filter"),
		Keep:      v.GetString("keep"),
		Headings:  v.GetInt("headings"),
		InFormat:  v.GetString("infmt"),
		Reader:    v.GetString("reader"),
		OutFormat: v.GetString("outfmt"),
		Writer:    v.GetString("writer"),
		Worksheet: v.GetString("worksheet"),
		NoneAs:    v.GetString("none-as"),
		Debug:     v.GetBool("debug"),
		Test:      v.GetBool("test"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that can never work together.
func (c *Config) Validate() error {
	var errs []error
	if _, err := csvtool.ParseInputFormat(c.InFormat); err != nil {
		errs = append(errs, err)
	}
	if c.Headings < 0 {
		errs = append(errs, fmt.Errorf("%w: headings must not be negative, got %d", csvtool.ErrConfiguration, c.Headings))
	}
	if c.Worksheet != "" && c.InFormat != string(csvtool.InputExcel) {
		errs = append(errs, fmt.Errorf("%w: --worksheet can only be used with --infmt=excel", csvtool.ErrConfiguration))
	}
	return errors.Join(errs...)
}
