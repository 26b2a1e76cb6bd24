package categorizer

import (
	"strings"

	"fjacquet/smart-finance/internal/models"
)

// SuppliedLabelStrategy keeps a non-blank supplied label verbatim. In strict
// mode labels outside the taxonomy become Other, and taxonomy members are
// returned in their canonical spelling.
type SuppliedLabelStrategy struct {
	Strict bool
}

// Name returns the name of this strategy for logging and debugging.
func (s *SuppliedLabelStrategy) Name() string { return "SuppliedLabel" }

// Categorize implements Strategy.
func (s *SuppliedLabelStrategy) Categorize(_, supplied string) (string, bool) {
	if strings.TrimSpace(supplied) == "" {
		return "", false
	}
	if !s.Strict {
		return supplied, true
	}
	if canonical, ok := models.CanonicalCategory(supplied); ok {
		return canonical, true
	}
	return models.CategoryOther, true
}
