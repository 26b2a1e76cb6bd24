// Package shell provides the interactive session: the dashboard stays in
// memory while transactions are added, edited, imported and queried.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fjacquet/smart-finance/cmd/common"
	"fjacquet/smart-finance/cmd/root"
	"fjacquet/smart-finance/internal/currencyutils"
	"fjacquet/smart-finance/internal/ledger"
	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"
	"fjacquet/smart-finance/internal/pagination"
	"fjacquet/smart-finance/internal/parsererror"

	"github.com/spf13/cobra"
)

// Cmd represents the shell command
var Cmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive dashboard session",
	Long: `Start an interactive session on the in-memory ledger. Type "help" for the
list of commands. The ledger is discarded when the session ends.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := root.Session()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return New(s, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
	},
}

const helpText = `Commands:
  view                                   show the dashboard
  add <desc> | <amount> | <category> [| <type> [| <date>]]
                                         add a transaction (type defaults to expense, date to today)
  edit <id> <desc> | <amount> | <category> [| <type> [| <date>]]
                                         replace a transaction
  delete <id>                            delete a transaction
  import <file.csv>                      import a CSV file
  period <7d|30d|90d|1y|all>             select the period
  filter <key=value ...>                 filter by type, category, from, to, min, max
  clear                                  remove all filters
  page <n|next|prev>                     show another page of transactions
  ask <question>                         ask about your spending
  export [path]                          export the filtered transactions to CSV
  help                                   show this help
  quit                                   leave the session`

// errQuit ends the read loop.
var errQuit = errors.New("quit")

// Shell reads commands line by line and applies them to a session.
type Shell struct {
	session  *common.Session
	reader   *bufio.Reader
	out      io.Writer
	logger   logging.Logger
	handlers map[string]func(context.Context, string) error
}

// New creates a shell reading from in and writing to out.
func New(s *common.Session, in io.Reader, out io.Writer) *Shell {
	sh := &Shell{
		session: s,
		reader:  bufio.NewReader(in),
		out:     out,
		logger:  s.Container().GetLogger().WithField(logging.FieldOperation, "shell"),
	}
	sh.handlers = map[string]func(context.Context, string) error{
		"view":   sh.view,
		"add":    sh.add,
		"edit":   sh.edit,
		"delete": sh.delete,
		"import": sh.importFile,
		"period": sh.period,
		"filter": sh.filter,
		"clear":  sh.clear,
		"page":   sh.page,
		"ask":    sh.ask,
		"export": sh.export,
		"help":   sh.help,
		"quit":   sh.quit,
		"exit":   sh.quit,
	}
	return sh
}

// Run shows the dashboard and then processes commands until quit or end of
// input. Command errors are printed and the session continues.
func (sh *Shell) Run(ctx context.Context) error {
	sh.printf("%s\n\nType \"help\" for commands.\n", sh.session.Render())

	for {
		sh.printf("%s", sh.prompt())
		line, err := sh.reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if execErr := sh.Execute(ctx, line); errors.Is(execErr, errQuit) {
				return nil
			} else if execErr != nil {
				sh.printf("Error: %v\n", execErr)
			}
		}
		if errors.Is(err, io.EOF) {
			sh.printf("\n")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
}

// Execute runs one command line.
func (sh *Shell) Execute(ctx context.Context, line string) error {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	handler, ok := sh.handlers[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown command %q (type \"help\")", name)
	}
	sh.logger.Debug("Shell command", logging.Field{Key: "command", Value: name})
	return handler(ctx, strings.TrimSpace(rest))
}

func (sh *Shell) prompt() string {
	return fmt.Sprintf("[%s | filter: %s | page %d] > ",
		sh.session.Period, common.DescribeFilter(sh.session.Filter), sh.session.Page)
}

func (sh *Shell) printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(sh.out, format, args...); err != nil {
		sh.logger.WithError(err).Warn("Failed to write output")
	}
}

func (sh *Shell) view(context.Context, string) error {
	sh.printf("%s\n", sh.session.Render())
	return nil
}

func (sh *Shell) add(_ context.Context, args string) error {
	d, err := common.ParseDraft(args)
	if err != nil {
		return err
	}
	tx, err := sh.session.Container().GetLedger().Add(d)
	if err != nil {
		return err
	}
	sh.printf("Added #%d %s (%s, %s)\n", tx.ID, tx.Description, tx.Category, sh.money(tx))
	return nil
}

func (sh *Shell) edit(_ context.Context, args string) error {
	idArg, rest, _ := strings.Cut(args, " ")
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	d, err := common.ParseDraft(rest)
	if err != nil {
		return err
	}
	tx, err := sh.session.Container().GetLedger().Update(id, d)
	if errors.Is(err, ledger.ErrNotFound) {
		return fmt.Errorf("no transaction #%d", id)
	}
	if err != nil {
		return err
	}
	sh.printf("Updated #%d %s (%s, %s)\n", tx.ID, tx.Description, tx.Category, sh.money(tx))
	return nil
}

func (sh *Shell) delete(_ context.Context, args string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	err = sh.session.Container().GetLedger().Delete(id)
	if errors.Is(err, ledger.ErrNotFound) {
		return fmt.Errorf("no transaction #%d", id)
	}
	if err != nil {
		return err
	}
	sh.printf("Deleted #%d\n", id)
	return nil
}

func (sh *Shell) importFile(_ context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("usage: import <file.csv>")
	}
	n, err := sh.session.ImportFile(path)
	if err != nil {
		var importErr *parsererror.ImportError
		if errors.As(err, &importErr) {
			return fmt.Errorf("import rejected:\n%w", err)
		}
		return err
	}
	mode := sh.session.Container().GetConfig().ImportMode()
	sh.printf("Imported %d transactions (%s).\n", n, mode)
	return nil
}

func (sh *Shell) period(ctx context.Context, args string) error {
	p, err := models.ParsePeriod(args)
	if err != nil {
		return err
	}
	sh.session.SetPeriod(p)
	return sh.view(ctx, "")
}

func (sh *Shell) filter(ctx context.Context, args string) error {
	spec, err := common.ParseFilter(args)
	if err != nil {
		return err
	}
	sh.session.SetFilter(spec)
	return sh.view(ctx, "")
}

func (sh *Shell) clear(ctx context.Context, _ string) error {
	sh.session.ClearFilter()
	return sh.view(ctx, "")
}

func (sh *Shell) page(_ context.Context, args string) error {
	view := sh.session.View()
	total := pagination.TotalPages(len(view.Filtered), sh.session.Container().GetConfig().Dashboard.PageSize)

	switch strings.ToLower(args) {
	case "next", "n", "":
		if sh.session.Page >= total {
			return fmt.Errorf("already on the last page")
		}
		sh.session.Page++
	case "prev", "p":
		if sh.session.Page <= 1 {
			return fmt.Errorf("already on the first page")
		}
		sh.session.Page--
	default:
		n, err := strconv.Atoi(args)
		if err != nil || n < 1 || n > total {
			return fmt.Errorf("invalid page %q (1-%d)", args, total)
		}
		sh.session.Page = n
	}

	current := sh.session.CurrentPage(view)
	sh.printf("%s\n", sh.session.Container().GetRenderer().Transactions(current))
	return nil
}

func (sh *Shell) ask(ctx context.Context, question string) error {
	if question == "" {
		return fmt.Errorf("usage: ask <question>")
	}
	sh.printf("Thinking...\n")
	sh.printf("%s\n", sh.session.Ask(ctx, question))
	return nil
}

func (sh *Shell) export(_ context.Context, path string) error {
	written, err := sh.session.ExportFile(path)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	sh.printf("Exported %d transactions to %s\n", len(sh.session.View().Filtered), written)
	return nil
}

func (sh *Shell) help(context.Context, string) error {
	sh.printf("%s\n", helpText)
	return nil
}

func (sh *Shell) quit(context.Context, string) error {
	return errQuit
}

func (sh *Shell) money(tx models.Transaction) string {
	return currencyutils.FormatAmount(tx.Amount, sh.session.Container().GetConfig().Display.CurrencySymbol)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid transaction id %q", s)
	}
	return id, nil
}
