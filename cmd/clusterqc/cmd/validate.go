package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Maximum number of problems printed before only counting the rest
const maxReportedProblems = 50

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate cluster table format and contents",
	Long: `Validate that a cluster table is properly formatted: required columns are
present, charges are non-negative, cluster labels are -1 or greater and
sequences parse as peptides.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg).WithInput(path)

	reader, closeFile, err := openTable(cfg, path)
	if err != nil {
		return err
	}
	defer closeFile()

	out := cmd.OutOrStdout()
	rows, problems := 0, 0
	for reader.Next() {
		rows++
		record := reader.Record()
		if err := record.Validate(); err != nil {
			problems++
			if problems <= maxReportedProblems {
				fmt.Fprintf(out, "row %d (%s): %v\n", rows, record.Name(), err)
			}
		}
	}
	if err := reader.Err(); err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	log.Debug("validated cluster table", "rows", rows, "problems", problems)

	if problems > 0 {
		if problems > maxReportedProblems {
			fmt.Fprintf(out, "... %d more\n", problems-maxReportedProblems)
		}
		return fmt.Errorf("%d of %d rows are invalid", problems, rows)
	}

	fmt.Fprintf(out, "%s: %d rows OK\n", path, rows)
	return nil
}
