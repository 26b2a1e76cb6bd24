// Package view renders the dashboard once and exits.
package view

import (
	"fmt"

	"fjacquet/smart-finance/cmd/common"
	"fjacquet/smart-finance/cmd/root"

	"github.com/spf13/cobra"
)

var (
	filterExpr string
	page       int
)

// Cmd represents the view command
var Cmd = &cobra.Command{
	Use:   "view",
	Short: "Show the dashboard for the selected period",
	Long: `Show the stat cards, spending by category, monthly cash flow and one page of
transactions for the selected period.

Filters are key=value pairs, for example:
  smart-finance view -p 90d --filter "type=expense category=Food & Dining,Shopping min=100"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := root.Session()
		if err != nil {
			return err
		}
		return Run(cmd, s, filterExpr, page)
	},
}

func init() {
	Cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "Filter expression (type, category, from, to, min, max)")
	Cmd.Flags().IntVar(&page, "page", 1, "Page of transactions to show")
}

// Run applies the filter and page to s and writes the dashboard.
func Run(cmd *cobra.Command, s *common.Session, filter string, page int) error {
	spec, err := common.ParseFilter(filter)
	if err != nil {
		return err
	}
	s.SetFilter(spec)
	s.Page = page

	_, err = fmt.Fprintln(cmd.OutOrStdout(), s.Render())
	return err
}
