// Package categorize handles transaction categorization commands
package categorize

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/smart-finance/cmd/root"
	"fjacquet/smart-finance/internal/categorizer"
	"fjacquet/smart-finance/internal/store"

	"github.com/spf13/cobra"
)

var (
	label    string
	listAll  bool
	dumpPath string
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [description]",
	Short: "Categorize a transaction description using the keyword table",
	Long: `Categorize a transaction description using the keyword table and show which
keyword decided. A source label can be given with --label, as a CSV Category
column would supply it.

The built-in table can be listed with --list or written to a YAML file with
--dump, which is then editable and picked up through categorization.keywords_file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.AppContainer
		if c == nil {
			return fmt.Errorf("application is not initialized")
		}
		out := cmd.OutOrStdout()

		switch {
		case dumpPath != "":
			return Dump(out, c.GetKeywordStore(), c.GetCategorizer(), dumpPath)
		case listAll:
			return List(out, c.GetCategorizer())
		case len(args) == 0 && label == "":
			return fmt.Errorf("a description or --label is required")
		}
		return Explain(out, c.GetCategorizer(), strings.Join(args, " "), label)
	},
}

func init() {
	Cmd.Flags().StringVarP(&label, "label", "l", "", "Category label supplied by the source")
	Cmd.Flags().BoolVar(&listAll, "list", false, "List the active keyword rules")
	Cmd.Flags().StringVar(&dumpPath, "dump", "", "Write the active keyword rules to a YAML file")
}

// Explain prints the category of a description and the reason for it.
func Explain(w io.Writer, cat *categorizer.Categorizer, description, supplied string) error {
	category := cat.Classify(description, supplied)

	reason := "no keyword matched"
	if keyword, matched, ok := cat.Explain(description); ok && matched == category {
		reason = fmt.Sprintf("keyword %q", keyword)
	} else if strings.TrimSpace(supplied) != "" {
		reason = fmt.Sprintf("label %q", supplied)
	}

	_, err := fmt.Fprintf(w, "Category: %s (%s)\n", category, reason)
	return err
}

// List prints the active rules grouped by category, in table order.
func List(w io.Writer, cat *categorizer.Categorizer) error {
	byCategory := make(map[string][]string)
	for _, r := range cat.Rules() {
		byCategory[r.Category] = append(byCategory[r.Category], r.Keyword)
	}
	for _, category := range cat.Categories() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", category, strings.Join(byCategory[category], ", ")); err != nil {
			return err
		}
	}
	return nil
}

// Dump saves the active rules to path.
func Dump(w io.Writer, keywordStore *store.KeywordStore, cat *categorizer.Categorizer, path string) error {
	rules := cat.Rules()
	if err := keywordStore.SaveKeywordRules(path, rules); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Wrote %d keyword rules to %s\n", len(rules), path)
	return err
}
