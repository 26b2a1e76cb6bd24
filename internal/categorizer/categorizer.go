// Package categorizer assigns a category to a transaction from its
// description and an optional source-supplied label, using an ordered keyword
// table.
package categorizer

import (
	"errors"
	"os"
	"strings"

	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"
)

// RuleSource provides an override for the built-in keyword table.
type RuleSource interface {
	LoadKeywordRules() ([]models.KeywordRule, error)
}

// Options tunes classification.
type Options struct {
	// StrictTaxonomy coerces supplied labels outside the taxonomy to Other.
	StrictTaxonomy bool
}

// Categorizer classifies descriptions. It is immutable after construction
// and safe for concurrent use.
type Categorizer struct {
	rules      []models.KeywordRule
	strategies []Strategy
	logger     logging.Logger
}

// NewCategorizer builds a categorizer over rules; nil or empty rules select
// DefaultRules. Keywords are lower-cased and rules with a blank keyword or
// category are dropped.
func NewCategorizer(rules []models.KeywordRule, opts Options, logger logging.Logger) *Categorizer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	owned := make([]models.KeywordRule, 0, len(rules))
	for _, r := range rules {
		keyword := strings.ToLower(strings.TrimSpace(r.Keyword))
		if keyword == "" || strings.TrimSpace(r.Category) == "" {
			continue
		}
		owned = append(owned, models.KeywordRule{Keyword: keyword, Category: strings.TrimSpace(r.Category)})
	}

	return &Categorizer{
		rules: owned,
		strategies: []Strategy{
			NewSuppliedKeywordStrategy(owned),
			NewDescriptionKeywordStrategy(owned),
			&SuppliedLabelStrategy{Strict: opts.StrictTaxonomy},
		},
		logger: logging.OrDefault(logger),
	}
}

// NewCategorizerFromSource loads the rule table from source. A missing file
// silently selects the built-in table; any other load failure is logged as a
// warning and also falls back.
func NewCategorizerFromSource(source RuleSource, opts Options, logger logging.Logger) *Categorizer {
	logger = logging.OrDefault(logger)
	var rules []models.KeywordRule
	if source != nil {
		loaded, err := source.LoadKeywordRules()
		switch {
		case err == nil:
			rules = loaded
		case errors.Is(err, os.ErrNotExist):
			logger.Debug("No keyword override file, using built-in rules")
		default:
			logger.WithError(err).Warn("Failed to load keyword rules, using built-in rules")
		}
	}
	return NewCategorizer(rules, opts, logger)
}

// Classify returns the category for a transaction. It never returns an empty
// string: when no strategy decides, the result is Other.
func (c *Categorizer) Classify(description, supplied string) string {
	for _, s := range c.strategies {
		category, found := s.Categorize(description, supplied)
		if !found {
			continue
		}
		c.logger.Debug("Transaction categorized",
			logging.Field{Key: "strategy", Value: s.Name()},
			logging.Field{Key: logging.FieldCategory, Value: category})
		return category
	}
	return models.CategoryOther
}

// Rules returns a copy of the active keyword table.
func (c *Categorizer) Rules() []models.KeywordRule {
	out := make([]models.KeywordRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Categories lists the distinct categories of the table in first-rule order.
func (c *Categorizer) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range c.rules {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	return out
}

// Explain reports which keyword of the description decided the category, if
// any. It is used by the categorize command to show its reasoning.
func (c *Categorizer) Explain(description string) (keyword, category string, ok bool) {
	return NewDescriptionKeywordStrategy(c.rules).match(description)
}
