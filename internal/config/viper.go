// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/smart-finance/internal/aggregate"
	"fjacquet/smart-finance/internal/ledger"
	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SMARTFIN_LOG_LEVEL.
const EnvPrefix = "SMARTFIN"

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls import and export files.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// AIConfig controls the hosted question answering path.
type AIConfig struct {
	Enabled         bool    `mapstructure:"enabled" yaml:"enabled"`
	Model           string  `mapstructure:"model" yaml:"model"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens" yaml:"max_output_tokens"`
	Temperature     float64 `mapstructure:"temperature" yaml:"temperature"`
	APIKey          string  `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// DashboardConfig holds the view defaults.
type DashboardConfig struct {
	PageSize    int    `mapstructure:"page_size" yaml:"page_size"`
	Period      string `mapstructure:"period" yaml:"period"`
	TotalsScope string `mapstructure:"totals_scope" yaml:"totals_scope"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
}

// CategorizationConfig controls the keyword classifier.
type CategorizationConfig struct {
	KeywordsFile   string `mapstructure:"keywords_file" yaml:"keywords_file"`
	StrictTaxonomy bool   `mapstructure:"strict_taxonomy" yaml:"strict_taxonomy"`
}

// LedgerConfig controls the session ledger.
type LedgerConfig struct {
	SeedExamples bool   `mapstructure:"seed_examples" yaml:"seed_examples"`
	ImportMode   string `mapstructure:"import_mode" yaml:"import_mode"`
}

// CacheConfig sizes the view cache. Zero disables it.
type CacheConfig struct {
	Size int `mapstructure:"size" yaml:"size"`
}

// Config represents the complete application configuration
type Config struct {
	Log            LogConfig            `mapstructure:"log" yaml:"log"`
	CSV            CSVConfig            `mapstructure:"csv" yaml:"csv"`
	AI             AIConfig             `mapstructure:"ai" yaml:"ai"`
	Dashboard      DashboardConfig      `mapstructure:"dashboard" yaml:"dashboard"`
	Display        DisplayConfig        `mapstructure:"display" yaml:"display"`
	Categorization CategorizationConfig `mapstructure:"categorization" yaml:"categorization"`
	Ledger         LedgerConfig         `mapstructure:"ledger" yaml:"ledger"`
	Cache          CacheConfig          `mapstructure:"cache" yaml:"cache"`
}

// InitializeConfig loads configuration from defaults, an optional config
// file and the environment, in increasing order of precedence. configFile
// names an explicit file; when empty, config.yaml is searched in
// $HOME/.smart-finance, .smart-finance and the working directory.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.smart-finance")
		v.AddConfigPath(".smart-finance")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file. Only an explicitly named file is mandatory.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key is read from the unprefixed variable as well
	if err := v.BindEnv("ai.api_key", EnvPrefix+"_AI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the built-in configuration without reading files or the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// AI defaults
	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.model", "gemini-1.5-flash-latest")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.max_output_tokens", 200)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.api_key", "")

	// Dashboard defaults
	v.SetDefault("dashboard.page_size", 6)
	v.SetDefault("dashboard.period", string(models.Period30Days))
	v.SetDefault("dashboard.totals_scope", string(aggregate.ScopeFiltered))

	// Display defaults
	v.SetDefault("display.currency_symbol", "₱")

	// Categorization defaults
	v.SetDefault("categorization.keywords_file", "")
	v.SetDefault("categorization.strict_taxonomy", false)

	// Ledger defaults
	v.SetDefault("ledger.seed_examples", true)
	v.SetDefault("ledger.import_mode", string(ledger.ImportReplace))

	// Cache defaults
	v.SetDefault("cache.size", aggregate.DefaultCacheSize)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	// Validate AI configuration
	if config.AI.Enabled {
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
		if config.AI.MaxOutputTokens < 1 || config.AI.MaxOutputTokens > 8192 {
			return fmt.Errorf("ai.max_output_tokens must be between 1 and 8192, got: %d", config.AI.MaxOutputTokens)
		}
		if config.AI.Temperature < 0 || config.AI.Temperature > 2 {
			return fmt.Errorf("ai.temperature must be between 0.0 and 2.0, got: %f", config.AI.Temperature)
		}
	}

	// Validate dashboard settings
	if config.Dashboard.PageSize < 1 || config.Dashboard.PageSize > 100 {
		return fmt.Errorf("dashboard.page_size must be between 1 and 100, got: %d", config.Dashboard.PageSize)
	}
	if _, err := models.ParsePeriod(config.Dashboard.Period); err != nil {
		return fmt.Errorf("dashboard.period: %w", err)
	}
	if _, err := aggregate.ParseTotalsScope(config.Dashboard.TotalsScope); err != nil {
		return fmt.Errorf("dashboard.totals_scope: %w", err)
	}

	if strings.TrimSpace(config.Display.CurrencySymbol) == "" {
		return fmt.Errorf("display.currency_symbol must not be empty")
	}

	if _, err := ledger.ParseImportMode(config.Ledger.ImportMode); err != nil {
		return fmt.Errorf("ledger.import_mode: %w", err)
	}

	if config.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative, got: %d", config.Cache.Size)
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// AITimeout returns the per-question deadline of the hosted path.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// HostedAI reports whether the hosted answering path can be used.
func (c *Config) HostedAI() bool {
	return c.AI.Enabled && c.AI.APIKey != ""
}

// Period returns the parsed default dashboard period.
func (c *Config) Period() models.Period {
	p, err := models.ParsePeriod(c.Dashboard.Period)
	if err != nil {
		return models.Period30Days
	}
	return p
}

// TotalsScope returns the parsed totals scope.
func (c *Config) TotalsScope() aggregate.TotalsScope {
	s, err := aggregate.ParseTotalsScope(c.Dashboard.TotalsScope)
	if err != nil {
		return aggregate.ScopeFiltered
	}
	return s
}

// ImportMode returns the parsed import mode.
func (c *Config) ImportMode() ledger.ImportMode {
	m, err := ledger.ParseImportMode(c.Ledger.ImportMode)
	if err != nil {
		return ledger.ImportReplace
	}
	return m
}

// ConfigureLoggingFromConfig builds the application logger from the log
// section.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}
