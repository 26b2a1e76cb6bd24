// Package container provides dependency injection for the smart-finance application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"fjacquet/smart-finance/internal/aggregate"
	"fjacquet/smart-finance/internal/assistant"
	"fjacquet/smart-finance/internal/categorizer"
	"fjacquet/smart-finance/internal/common"
	"fjacquet/smart-finance/internal/config"
	"fjacquet/smart-finance/internal/dashboard"
	"fjacquet/smart-finance/internal/ledger"
	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"
	"fjacquet/smart-finance/internal/normalizer"
	"fjacquet/smart-finance/internal/store"
)

// Option customizes NewContainer.
type Option func(*options)

type options struct {
	logger    logging.Logger
	generator assistant.TextGenerator
	now       func() time.Time
}

// WithLogger replaces the logger built from the log configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithGenerator supplies the language model instead of opening a Gemini
// client. It is used even when no API key is configured.
func WithGenerator(generator assistant.TextGenerator) Option {
	return func(o *options) { o.generator = generator }
}

// WithClock sets the clock used for import dates and view evaluation.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Container holds all application dependencies and provides methods to access them.
// It acts as the central registry for dependency injection, ensuring that all
// components receive their required dependencies through constructors.
//
// Container is immutable after creation; the ledger it hands out is the only
// mutable state and guards itself.
type Container struct {
	logger       logging.Logger
	config       *config.Config
	keywordStore *store.KeywordStore
	categorizer  *categorizer.Categorizer
	normalizer   *normalizer.Normalizer
	csv          *common.CSVIO
	ledger       *ledger.Store
	engine       *aggregate.Engine
	viewCache    *aggregate.ViewCache
	renderer     *dashboard.Renderer
	assistant    *assistant.Client
	closers      []io.Closer
	now          func() time.Time
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	keywordStore := store.NewKeywordStore(cfg.Categorization.KeywordsFile, logger)
	cat := categorizer.NewCategorizerFromSource(keywordStore,
		categorizer.Options{StrictTaxonomy: cfg.Categorization.StrictTaxonomy}, logger)

	var seed []models.Transaction
	if cfg.Ledger.SeedExamples {
		seed = ledger.Seed()
	}

	engine := aggregate.NewEngine(cfg.TotalsScope())
	var viewCache *aggregate.ViewCache
	if cfg.Cache.Size > 0 {
		viewCache = aggregate.NewViewCache(engine, cfg.Cache.Size)
	}

	c := &Container{
		logger:       logger,
		config:       cfg,
		keywordStore: keywordStore,
		categorizer:  cat,
		normalizer:   normalizer.NewNormalizer(cat, logger, o.now),
		csv:          common.NewCSVIO(cfg.Delimiter(), logger),
		ledger:       ledger.NewStore(seed, logger, o.now),
		engine:       engine,
		viewCache:    viewCache,
		renderer:     dashboard.NewRenderer(cfg.Display.CurrencySymbol),
		now:          o.now,
	}

	// Create the hosted answerer (if enabled)
	generator := o.generator
	if generator == nil && cfg.HostedAI() {
		gemini, err := assistant.NewGeminiGenerator(ctx, cfg.AI.APIKey, assistant.GeminiOptions{
			Model:           cfg.AI.Model,
			Temperature:     float32(cfg.AI.Temperature),
			MaxOutputTokens: int32(cfg.AI.MaxOutputTokens),
		}, logger)
		if err != nil {
			logger.WithError(err).Warn("Hosted assistant unavailable, answering locally")
		} else {
			generator = gemini
			c.closers = append(c.closers, gemini)
		}
	} else if cfg.AI.Enabled && generator == nil {
		logger.Info("No GEMINI_API_KEY set, answering questions locally")
	}

	var hosted assistant.Answerer
	if generator != nil {
		hosted = assistant.NewService(generator, cfg.Display.CurrencySymbol, logger)
	}
	c.assistant = assistant.NewClient(hosted,
		assistant.NewLocalAnalyst(cfg.Display.CurrencySymbol), cfg.AITimeout(), logger)

	logger.Debug("Container initialized",
		logging.Field{Key: logging.FieldCount, Value: c.ledger.Len()},
		logging.Field{Key: "hosted_ai", Value: hosted != nil},
		logging.Field{Key: "view_cache", Value: viewCache != nil})

	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetKeywordStore returns the keyword file store.
func (c *Container) GetKeywordStore() *store.KeywordStore {
	return c.keywordStore
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetNormalizer returns the record normalizer.
func (c *Container) GetNormalizer() *normalizer.Normalizer {
	return c.normalizer
}

// GetCSV returns the CSV reader and exporter.
func (c *Container) GetCSV() *common.CSVIO {
	return c.csv
}

// GetLedger returns the session ledger.
func (c *Container) GetLedger() *ledger.Store {
	return c.ledger
}

// GetRenderer returns the dashboard renderer.
func (c *Container) GetRenderer() *dashboard.Renderer {
	return c.renderer
}

// GetAssistant returns the question answering client.
func (c *Container) GetAssistant() *assistant.Client {
	return c.assistant
}

// GetViewCache returns the view cache, or nil when caching is disabled.
func (c *Container) GetViewCache() *aggregate.ViewCache {
	return c.viewCache
}

// Now returns the container clock's current time.
func (c *Container) Now() time.Time {
	return c.now()
}

// ComputeView evaluates the ledger for period and filter at the current time,
// through the view cache when it is enabled.
func (c *Container) ComputeView(period models.Period, spec models.FilterSpec) aggregate.View {
	records, version := c.ledger.Snapshot()
	now := c.now()
	if c.viewCache != nil {
		return c.viewCache.ComputeView(records, version, period, spec, now)
	}
	return c.engine.ComputeView(records, period, spec, now)
}

// Close releases resources held by the container, such as the Gemini client.
func (c *Container) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
