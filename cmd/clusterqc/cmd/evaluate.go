package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/clusterqc/pkg/config"
	"github.com/ChrisMcGann/clusterqc/pkg/eval"
	"github.com/ChrisMcGann/clusterqc/pkg/writer/sqlite"
)

// Statistic names in output order
var statNames = [6]string{
	"num_clustered",
	"num_noise",
	"prop_clustered",
	"prop_clustered_incorrect",
	"homogeneity",
	"completeness",
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a spectrum clustering against peptide identifications",
	Long: `Evaluate a clustering of spectra stored in a CSV or TSV table with the columns
precursor_charge, cluster and sequence (and optionally identifier).

Noise spectra (cluster -1) are first made into singleton clusters, then clusters
outside the size bounds are demoted back to noise. Statistics are printed as
tab-separated name/value lines.

Examples:
  # Evaluate with default settings
  clusterqc evaluate --in clusters.csv

  # Only charge 2 and 3 spectra, clusters of at least 2 spectra
  clusterqc evaluate --in clusters.tsv --charges 2,3 --min-cluster-size 2

  # Compare stripped sequences and append the result to a database
  clusterqc evaluate --in clusters.csv --identity sequence --out results.db`,
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyEvaluateFlags(cmd, cfg); err != nil {
		return err
	}

	log := newLogger(cfg).WithInput(inputFile)

	params, err := cfg.Evaluation.Params()
	if err != nil {
		return err
	}

	table, err := readTable(cfg, inputFile)
	if err != nil {
		return err
	}
	log.Info("loaded cluster table", "rows", len(table))

	evaluator := eval.New(
		eval.WithWorkers(cfg.Evaluation.Workers),
		eval.WithLogger(log),
	)

	started := time.Now()
	result, err := evaluator.Evaluate(cmd.Context(), table, params)
	if err != nil {
		return fmt.Errorf("failed to evaluate clusters: %w", err)
	}
	log.Info("evaluation complete",
		"clusters", len(result.Clusters),
		"duration", time.Since(started),
	)

	if err := printResult(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if cfg.Output.Database == "" {
		return nil
	}

	writer, err := sqlite.NewWriter(cfg.Output.Database)
	if err != nil {
		return fmt.Errorf("failed to create output database: %w", err)
	}
	defer writer.Close()

	runID, err := writer.WriteRun(sqlite.Run{
		InputPath: inputFile,
		Params:    params,
		Result:    result,
		CreatedAt: started,
	})
	if err != nil {
		return fmt.Errorf("failed to write evaluation: %w", err)
	}
	log.WithRun(runID).Info("stored evaluation", "database", cfg.Output.Database)

	return writer.Close()
}

// applyEvaluateFlags overrides config values with flags set on the command line.
func applyEvaluateFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("min-cluster-size") {
		cfg.Evaluation.MinClusterSize = minClusterSize
	}
	if flags.Changed("max-cluster-size") {
		cfg.Evaluation.MaxClusterSize = maxClusterSize
	}
	if flags.Changed("charges") {
		parsed, err := parseCharges(charges)
		if err != nil {
			return err
		}
		cfg.Evaluation.Charges = parsed
	}
	if flags.Changed("identity") {
		cfg.Evaluation.Identity = identityMode
	}
	if flags.Changed("workers") {
		cfg.Evaluation.Workers = workers
	}
	if flags.Changed("out") {
		cfg.Output.Database = outputFile
	}

	return cfg.Validate()
}

// parseCharges parses a comma-separated charge list such as "2,3".
// An empty string selects every charge.
func parseCharges(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		z, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid charge '%s' in --charges", part)
		}
		result = append(result, z)
	}
	return result, nil
}

// printResult writes the statistics as name<TAB>value lines.
func printResult(w io.Writer, result eval.Result) error {
	for i, v := range result.Values() {
		value := strconv.FormatFloat(v, 'g', -1, 64)
		if i < 2 {
			value = strconv.Itoa(int(v))
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", statNames[i], value); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}
