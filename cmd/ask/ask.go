// Package ask answers one question about the transactions.
package ask

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/smart-finance/cmd/common"
	"fjacquet/smart-finance/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the ask command
var Cmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about your spending",
	Long: `Ask a free-text question about your transactions, for example
"How much did I spend on food last week?".

Questions go to Gemini when GEMINI_API_KEY is set. Without a key, or when the
request fails, a local analysis answers instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := root.Session()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), cmd, s, strings.Join(args, " "))
	},
}

// Run asks question over the whole ledger of s and prints the answer.
func Run(ctx context.Context, cmd *cobra.Command, s *common.Session, question string) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("question cannot be empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), s.Ask(ctx, question))
	return err
}
