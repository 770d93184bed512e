// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ChrisMcGann/clusterqc/pkg/core"
	"github.com/ChrisMcGann/clusterqc/pkg/eval"
	"github.com/ChrisMcGann/clusterqc/pkg/filter"
	"github.com/ChrisMcGann/clusterqc/pkg/reader/psm"
)

// Config holds all application configuration.
type Config struct {
	// Evaluation parameters
	Evaluation EvaluationConfig `yaml:"evaluation"`

	// Input table layout
	Input InputConfig `yaml:"input"`

	// Result persistence
	Output OutputConfig `yaml:"output"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// EvaluationConfig holds evaluation settings.
type EvaluationConfig struct {
	MinClusterSize int    `envconfig:"CLUSTERQC_MIN_CLUSTER_SIZE" yaml:"min_cluster_size"` // 0 = no limit
	MaxClusterSize int    `envconfig:"CLUSTERQC_MAX_CLUSTER_SIZE" yaml:"max_cluster_size"` // 0 = no limit
	Charges        []int  `envconfig:"CLUSTERQC_CHARGES" yaml:"charges"`                   // empty = all
	Identity       string `envconfig:"CLUSTERQC_IDENTITY" yaml:"identity"`
	Workers        int    `envconfig:"CLUSTERQC_WORKERS" yaml:"workers"` // 0 = GOMAXPROCS
}

// InputConfig holds input table settings.
type InputConfig struct {
	Delimiter      string `envconfig:"CLUSTERQC_DELIMITER" yaml:"delimiter"` // empty = by extension
	IDColumn       string `envconfig:"CLUSTERQC_ID_COLUMN" yaml:"id_column"`
	ChargeColumn   string `envconfig:"CLUSTERQC_CHARGE_COLUMN" yaml:"charge_column"`
	ClusterColumn  string `envconfig:"CLUSTERQC_CLUSTER_COLUMN" yaml:"cluster_column"`
	SequenceColumn string `envconfig:"CLUSTERQC_SEQUENCE_COLUMN" yaml:"sequence_column"`
}

// OutputConfig holds result persistence settings.
type OutputConfig struct {
	Database string `envconfig:"CLUSTERQC_OUTPUT_DB" yaml:"database"` // empty = print only
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"CLUSTERQC_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"CLUSTERQC_LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from defaults, an optional YAML file and
// environment variables, in increasing priority.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	setDefaults(cfg)

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func setDefaults(cfg *Config) {
	cols := psm.DefaultColumns()
	cfg.Input = InputConfig{
		IDColumn:       cols.ID,
		ChargeColumn:   cols.Charge,
		ClusterColumn:  cols.Cluster,
		SequenceColumn: cols.Sequence,
	}

	cfg.Evaluation = EvaluationConfig{
		Identity: string(core.IdentityPeptidoform),
	}

	cfg.Log = LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.Evaluation.MinClusterSize < 0 {
		errs = append(errs, "min_cluster_size must be non-negative")
	}
	if c.Evaluation.MaxClusterSize < 0 {
		errs = append(errs, "max_cluster_size must be non-negative")
	}
	if c.Evaluation.Workers < 0 {
		errs = append(errs, "workers must be non-negative")
	}
	if _, err := core.ParseIdentityMode(c.Evaluation.Identity); err != nil {
		errs = append(errs, err.Error())
	}

	if _, err := c.Input.Comma(); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Input.ChargeColumn == "" || c.Input.ClusterColumn == "" || c.Input.SequenceColumn == "" {
		errs = append(errs, "charge, cluster and sequence column names must be set")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be text or json)", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// Comma returns the configured field delimiter, or 0 to detect it from the
// file extension. "tab" and "\t" select a tab.
func (i InputConfig) Comma() (rune, error) {
	switch i.Delimiter {
	case "":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	if utf8.RuneCountInString(i.Delimiter) != 1 {
		return 0, fmt.Errorf("invalid delimiter: %q (must be a single character)", i.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(i.Delimiter)
	return r, nil
}

// Columns returns the input column names.
func (i InputConfig) Columns() psm.Columns {
	return psm.Columns{
		ID:       i.IDColumn,
		Charge:   i.ChargeColumn,
		Cluster:  i.ClusterColumn,
		Sequence: i.SequenceColumn,
	}
}

// Params converts the evaluation settings into evaluation parameters.
func (e EvaluationConfig) Params() (eval.Params, error) {
	mode, err := core.ParseIdentityMode(e.Identity)
	if err != nil {
		return eval.Params{}, err
	}

	var charges []int
	if len(e.Charges) > 0 {
		charges = append(charges, e.Charges...)
	}

	return eval.Params{
		Config: filter.Config{
			Charges:        charges,
			MinClusterSize: e.MinClusterSize,
			MaxClusterSize: e.MaxClusterSize,
		},
		Identity: mode,
	}, nil
}
