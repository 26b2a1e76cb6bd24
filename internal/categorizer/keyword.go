package categorizer

import (
	"strings"

	"fjacquet/smart-finance/internal/models"
)

// DefaultRules returns the built-in keyword table. The order is significant:
// a description containing keywords of several categories resolves to the
// earliest rule.
func DefaultRules() []models.KeywordRule {
	groups := []struct {
		category string
		keywords []string
	}{
		{models.CategoryFoodDining, []string{"food", "dining", "restaurant", "grocery", "groceries", "supermarket", "cafe", "coffee", "lunch", "dinner", "breakfast", "snack", "takeout", "delivery"}},
		{models.CategoryShopping, []string{"shopping", "mall", "retail", "store", "purchase", "buy", "amazon", "online", "clothes", "clothing", "shoes", "electronics"}},
		{models.CategoryTransport, []string{"transport", "transportation", "car", "gas", "fuel", "uber", "taxi", "bus", "train", "parking", "toll", "maintenance"}},
		{models.CategoryBills, []string{"bill", "bills", "utility", "utilities", "electric", "electricity", "water", "internet", "phone", "mobile", "rent", "mortgage", "insurance"}},
		{models.CategoryEntertainment, []string{"entertainment", "movie", "cinema", "game", "gaming", "netflix", "spotify", "subscription", "hobby"}},
		{models.CategoryHealth, []string{"health", "medical", "doctor", "hospital", "pharmacy", "medicine", "dental", "clinic"}},
		{models.CategoryIncome, []string{"salary", "wage", "income", "pay", "paycheck", "bonus", "freelance", "refund"}},
	}

	var rules []models.KeywordRule
	for _, g := range groups {
		for _, k := range g.keywords {
			rules = append(rules, models.KeywordRule{Keyword: k, Category: g.category})
		}
	}
	return rules
}

// SuppliedKeywordStrategy maps a supplied category label that is itself a
// keyword, e.g. "groceries", to its category.
type SuppliedKeywordStrategy struct {
	index map[string]string
}

// NewSuppliedKeywordStrategy indexes rules by keyword. When a keyword appears
// twice the earlier rule wins.
func NewSuppliedKeywordStrategy(rules []models.KeywordRule) *SuppliedKeywordStrategy {
	index := make(map[string]string, len(rules))
	for _, r := range rules {
		if _, seen := index[r.Keyword]; !seen {
			index[r.Keyword] = r.Category
		}
	}
	return &SuppliedKeywordStrategy{index: index}
}

// Name returns the name of this strategy for logging and debugging.
func (s *SuppliedKeywordStrategy) Name() string { return "SuppliedKeyword" }

// Categorize implements Strategy.
func (s *SuppliedKeywordStrategy) Categorize(_, supplied string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(supplied))
	if key == "" {
		return "", false
	}
	category, ok := s.index[key]
	return category, ok
}

// DescriptionKeywordStrategy scans the description for the first rule whose
// keyword occurs in it as a substring.
type DescriptionKeywordStrategy struct {
	rules []models.KeywordRule
}

// NewDescriptionKeywordStrategy keeps rules in table order.
func NewDescriptionKeywordStrategy(rules []models.KeywordRule) *DescriptionKeywordStrategy {
	return &DescriptionKeywordStrategy{rules: rules}
}

// Name returns the name of this strategy for logging and debugging.
func (s *DescriptionKeywordStrategy) Name() string { return "DescriptionKeyword" }

// Categorize implements Strategy.
func (s *DescriptionKeywordStrategy) Categorize(description, _ string) (string, bool) {
	_, category, ok := s.match(description)
	return category, ok
}

func (s *DescriptionKeywordStrategy) match(description string) (string, string, bool) {
	desc := strings.ToLower(description)
	if strings.TrimSpace(desc) == "" {
		return "", "", false
	}
	for _, r := range s.rules {
		if strings.Contains(desc, r.Keyword) {
			return r.Keyword, r.Category, true
		}
	}
	return "", "", false
}
