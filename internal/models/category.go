package models

import "strings"

// Category names of the fixed taxonomy.
const (
	CategoryFoodDining    = "Food & Dining"
	CategoryTransport     = "Transportation"
	CategoryShopping      = "Shopping"
	CategoryBills         = "Bills & Utilities"
	CategoryEntertainment = "Entertainment"
	CategoryHealth        = "Health & Medical"
	CategoryEducation     = "Education"
	CategoryIncome        = "Income"
	CategorySalary        = "Salary"
	CategoryFreelance     = "Freelance"
	CategoryBusiness      = "Business"
	CategoryInvestment    = "Investment"
	CategoryGift          = "Gift"
	CategoryRefund        = "Refund"
	CategoryOtherIncome   = "Other Income"
	CategoryOther         = "Other"
)

// ExpenseCategories are offered for manual expense entries.
var ExpenseCategories = []string{
	CategoryFoodDining,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryEntertainment,
	CategoryHealth,
	CategoryEducation,
	CategoryOther,
}

// IncomeCategories are offered for manual income entries.
var IncomeCategories = []string{
	CategorySalary,
	CategoryFreelance,
	CategoryBusiness,
	CategoryInvestment,
	CategoryGift,
	CategoryRefund,
	CategoryOtherIncome,
}

// KeywordRule maps a lower-case keyword to a category.
type KeywordRule struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

// CategoryKeywords is the grouped form of keyword rules: every keyword of the
// group maps to Name.
type CategoryKeywords struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// KeywordsConfig is the on-disk shape of a keyword table override. Either
// flat rules or grouped categories may be given; rules come first.
type KeywordsConfig struct {
	Rules      []KeywordRule      `yaml:"rules,omitempty"`
	Categories []CategoryKeywords `yaml:"categories,omitempty"`
}

// Flatten returns the rules in table order, followed by the grouped
// categories expanded keyword by keyword. Keywords are lower-cased and blank
// entries skipped.
func (c KeywordsConfig) Flatten() []KeywordRule {
	var out []KeywordRule
	add := func(keyword, category string) {
		k := strings.ToLower(strings.TrimSpace(keyword))
		cat := strings.TrimSpace(category)
		if k == "" || cat == "" {
			return
		}
		out = append(out, KeywordRule{Keyword: k, Category: cat})
	}
	for _, r := range c.Rules {
		add(r.Keyword, r.Category)
	}
	for _, g := range c.Categories {
		for _, k := range g.Keywords {
			add(k, g.Name)
		}
	}
	return out
}

// CanonicalCategory returns the taxonomy spelling of name, matched
// case-insensitively, and whether it is a member. "Income" is included since
// the keyword table maps to it.
func CanonicalCategory(name string) (string, bool) {
	n := strings.TrimSpace(name)
	if strings.EqualFold(n, CategoryIncome) {
		return CategoryIncome, true
	}
	for _, list := range [][]string{ExpenseCategories, IncomeCategories} {
		for _, c := range list {
			if strings.EqualFold(n, c) {
				return c, true
			}
		}
	}
	return "", false
}
