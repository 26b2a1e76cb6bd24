// Package export writes the filtered transactions to a CSV file.
package export

import (
	"fmt"

	"fjacquet/smart-finance/cmd/common"
	"fjacquet/smart-finance/cmd/root"

	"github.com/spf13/cobra"
)

var (
	outputPath string
	filterExpr string
	toStdout   bool
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered transactions to CSV",
	Long: `Export every transaction of the selected period and filters, not only the
current page, as Date,Description,Amount,Category,Type.

Without --output the file is written to the working directory as
transactions-YYYY-MM-DD.csv.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := root.Session()
		if err != nil {
			return err
		}
		return Run(cmd, s, filterExpr, outputPath, toStdout)
	},
}

func init() {
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file or directory")
	Cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "Filter expression (type, category, from, to, min, max)")
	Cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write CSV to standard output instead of a file")
}

// Run exports the view of s after applying filter.
func Run(cmd *cobra.Command, s *common.Session, filter, output string, stdout bool) error {
	spec, err := common.ParseFilter(filter)
	if err != nil {
		return err
	}
	s.SetFilter(spec)

	if stdout {
		_, err := s.Export(cmd.OutOrStdout())
		return err
	}

	path, err := s.ExportFile(output)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(s.View().Filtered), path)
	return err
}
