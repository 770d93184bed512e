package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/clusterqc/pkg/core"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize cluster table contents",
	Long:  `Print summary statistics about a cluster table including row count, per-charge counts, identification coverage and cluster sizes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		table, err := readTable(cfg, args[0])
		if err != nil {
			return err
		}

		printSummary(cmd.OutOrStdout(), table.Summarize())
		return nil
	},
}

func printSummary(w io.Writer, s core.Summary) {
	fmt.Fprintf(w, "rows\t%d\n", s.Rows)
	fmt.Fprintf(w, "identified\t%d\n", s.Identified)
	fmt.Fprintf(w, "noise\t%d\n", s.Noise)
	fmt.Fprintf(w, "clusters\t%d\n", s.Clusters)
	fmt.Fprintf(w, "singletons\t%d\n", s.Singletons)
	fmt.Fprintf(w, "largest_cluster\t%d\n", s.LargestCluster)
	for _, c := range s.Charges {
		fmt.Fprintf(w, "charge_%d\t%d\n", c.Charge, c.Count)
	}
}
