// Package cmd provides CLI command implementations
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/clusterqc/pkg/config"
	"github.com/ChrisMcGann/clusterqc/pkg/core"
	"github.com/ChrisMcGann/clusterqc/pkg/logger"
	"github.com/ChrisMcGann/clusterqc/pkg/reader/psm"
)

var (
	// Global flags
	configFile string
	logLevel   string

	// Flags for evaluate command
	inputFile      string
	outputFile     string
	minClusterSize int
	maxClusterSize int
	charges        string
	identityMode   string
	workers        int
)

var rootCmd = &cobra.Command{
	Use:   "clusterqc",
	Short: "clusterqc - Spectrum clustering quality evaluation tool",
	Long: `clusterqc scores a clustering of mass-spectrometry spectra against
peptide identifications.

Statistics reported for each evaluation:
- Number of clustered and noise spectra
- Proportion of spectra clustered
- Proportion of identified spectra clustered with a different peptide
- Cluster homogeneity and completeness`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which is cancelled on
// interrupt by main.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summarizeCmd)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Evaluate command flags
	evaluateCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input cluster table, CSV or TSV (required)")
	evaluateCmd.Flags().StringVarP(&outputFile, "out", "o", "", "SQLite database to append the evaluation to")
	evaluateCmd.Flags().IntVar(&minClusterSize, "min-cluster-size", 0, "Minimum cluster size, inclusive (0 = no limit)")
	evaluateCmd.Flags().IntVar(&maxClusterSize, "max-cluster-size", 0, "Maximum cluster size, exclusive (0 = no limit)")
	evaluateCmd.Flags().StringVar(&charges, "charges", "", "Comma-separated precursor charges to keep (e.g., '2,3')")
	evaluateCmd.Flags().StringVar(&identityMode, "identity", "", "Identity comparison: peptidoform or sequence")
	evaluateCmd.Flags().IntVar(&workers, "workers", 0, "Number of worker goroutines (0 = GOMAXPROCS)")

	evaluateCmd.MarkFlagRequired("in")
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// newLogger builds the command logger from the loaded configuration.
func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Format)
}

// openTable opens path as a streaming cluster-table reader using the
// configured delimiter and column names.
func openTable(cfg *config.Config, path string) (*psm.Reader, func() error, error) {
	comma, err := cfg.Input.Comma()
	if err != nil {
		return nil, nil, err
	}
	if comma == 0 {
		if comma, err = psm.DelimiterFor(path); err != nil {
			return nil, nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}

	return psm.NewReader(f, comma, cfg.Input.Columns()), f.Close, nil
}

// readTable loads the whole table at path.
func readTable(cfg *config.Config, path string) (core.Table, error) {
	comma, err := cfg.Input.Comma()
	if err != nil {
		return nil, err
	}
	return psm.ReadFile(path, comma, cfg.Input.Columns())
}
