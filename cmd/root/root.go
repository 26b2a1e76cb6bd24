// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/smart-finance/cmd/common"
	"fjacquet/smart-finance/internal/config"
	"fjacquet/smart-finance/internal/container"
	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	Input      string
	Period     string
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "smart-finance",
		Short: "A personal finance dashboard for CSV transaction exports.",
		Long: `smart-finance imports transactions from CSV files, categorizes them and
shows totals, spending by category and monthly cash flow for a chosen period.
Questions about your spending are answered by Gemini when GEMINI_API_KEY is set,
and by a local analysis otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := Configure(cmd.Context(), SharedFlags)
			if err != nil {
				return err
			}
			AppContainer = c
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				AppContainer.GetLogger().WithError(err).Warn("Failed to release resources")
			}
		},
		SilenceUsage: true,
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}

	// AppContainer is built before any subcommand runs
	AppContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "CSV file to import before running the command")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Period, "period", "p", "", "Period to show: 7d, 30d, 90d, 1y or all (default from config)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.smart-finance/config.yaml)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format: text or json")
}

// Configure loads .env and the configuration, applies flag overrides and
// builds the container.
func Configure(ctx context.Context, flags CommonFlags) (*container.Container, error) {
	config.LoadEnv()

	cfg, err := config.InitializeConfig(flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	if flags.LogLevel != "" {
		if _, err := logrus.ParseLevel(flags.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid --log-level: %w", err)
		}
		cfg.Log.Level = strings.ToLower(flags.LogLevel)
	}
	if flags.LogFormat != "" {
		format := strings.ToLower(flags.LogFormat)
		if format != "text" && format != "json" {
			return nil, fmt.Errorf("invalid --log-format %q (must be 'text' or 'json')", flags.LogFormat)
		}
		cfg.Log.Format = format
	}

	if ctx == nil {
		ctx = context.Background()
	}
	return container.NewContainer(ctx, cfg)
}

// OpenSession starts a session on c with the --period and --input flags
// applied.
func OpenSession(c *container.Container, flags CommonFlags) (*common.Session, error) {
	if c == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	s := common.NewSession(c)

	if flags.Period != "" {
		p, err := models.ParsePeriod(flags.Period)
		if err != nil {
			return nil, err
		}
		s.SetPeriod(p)
	}

	if flags.Input != "" {
		if _, err := s.ImportFile(flags.Input); err != nil {
			return nil, fmt.Errorf("import %s failed:\n%w", flags.Input, err)
		}
	}

	c.GetLogger().Debug("Session ready",
		logging.Field{Key: logging.FieldPeriod, Value: string(s.Period)},
		logging.Field{Key: logging.FieldCount, Value: c.GetLedger().Len()})
	return s, nil
}

// Session opens a session on the application container.
func Session() (*common.Session, error) {
	return OpenSession(AppContainer, SharedFlags)
}
