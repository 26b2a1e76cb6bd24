package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"fjacquet/smart-finance/internal/aggregate"
	"fjacquet/smart-finance/internal/currencyutils"
	"fjacquet/smart-finance/internal/dateutils"
	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"

	"github.com/shopspring/decimal"
)

const promptPreamble = "You are a financial advisor AI assistant. Analyze the user's transaction data and provide helpful insights. Use Philippine Peso (₱) currency format. Keep responses concise and specific."

var sumQuestionRe = regexp.MustCompile(`(how much|total).*(spend|spent|expenses?)`)

type focusRule struct {
	keyword  string
	category string
}

// focusRules map question words to the category a spending sum is narrowed
// to. The first keyword found in the question wins.
var focusRules = []focusRule{
	{"transport", models.CategoryTransport},
	{"transportation", models.CategoryTransport},
	{"car", models.CategoryTransport},
	{"gas", models.CategoryTransport},
	{"fuel", models.CategoryTransport},
	{"uber", models.CategoryTransport},
	{"taxi", models.CategoryTransport},
	{"bus", models.CategoryTransport},
	{"train", models.CategoryTransport},
	{"parking", models.CategoryTransport},
	{"toll", models.CategoryTransport},
	{"maintenance", models.CategoryTransport},
	{"food", models.CategoryFoodDining},
	{"dining", models.CategoryFoodDining},
	{"restaurant", models.CategoryFoodDining},
	{"grocery", models.CategoryFoodDining},
	{"groceries", models.CategoryFoodDining},
	{"cafe", models.CategoryFoodDining},
	{"coffee", models.CategoryFoodDining},
	{"shopping", models.CategoryShopping},
	{"retail", models.CategoryShopping},
	{"mall", models.CategoryShopping},
	{"amazon", models.CategoryShopping},
	{"bill", models.CategoryBills},
	{"bills", models.CategoryBills},
	{"utilities", models.CategoryBills},
	{"internet", models.CategoryBills},
	{"electricity", models.CategoryBills},
	{"rent", models.CategoryBills},
	{"entertainment", models.CategoryEntertainment},
	{"movie", models.CategoryEntertainment},
	{"netflix", models.CategoryEntertainment},
	{"health", models.CategoryHealth},
	{"medical", models.CategoryHealth},
	{"pharmacy", models.CategoryHealth},
}

// Service is the hosted answering path. Spending-sum questions are answered
// from the data directly; everything else goes to the TextGenerator with a
// financial summary as context.
type Service struct {
	generator TextGenerator
	symbol    string
	logger    logging.Logger
	now       func() time.Time
}

// NewService creates a Service. generator may be nil, in which case only
// the deterministic answers succeed and the rest return ErrNotConfigured.
func NewService(generator TextGenerator, symbol string, logger logging.Logger) *Service {
	if symbol == "" {
		symbol = currencyutils.DefaultSymbol
	}
	return &Service{
		generator: generator,
		symbol:    symbol,
		logger:    logging.OrDefault(logger),
		now:       time.Now,
	}
}

// Answer implements Answerer.
func (s *Service) Answer(ctx context.Context, req Request) (Response, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return Response{}, ErrEmptyQuestion
	}
	lower := strings.ToLower(question)

	if !IsFinanceQuestion(lower) {
		return Response{Answer: RefusalMessage}, nil
	}
	if len(req.Transactions) == 0 {
		return Response{Answer: NoDataMessage}, nil
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = s.now()
	}

	scoped := req.Transactions
	tf, ranged := DetectTimeframe(lower, asOf)
	if ranged {
		scoped = tf.Apply(req.Transactions)
	}

	if sumQuestionRe.MatchString(lower) {
		return Response{Answer: s.spendingSum(lower, scoped, tf, ranged)}, nil
	}

	if s.generator == nil {
		return Response{}, ErrNotConfigured
	}

	prompt := s.Prompt(question, s.Context(scoped, len(req.Transactions), tf, ranged, asOf))
	s.logger.Debug("Sending question to language model",
		logging.Field{Key: logging.FieldCount, Value: len(scoped)})

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return Response{}, fmt.Errorf("language model request failed: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Response{}, ErrEmptyAnswer
	}
	return Response{Answer: text}, nil
}

// Context renders the financial summary handed to the model.
func (s *Service) Context(scoped []models.Transaction, total int, tf Timeframe, ranged bool, asOf time.Time) string {
	totals := aggregate.ComputeTotals(scoped)
	top := aggregate.TopCategories(aggregate.Breakdown(scoped), 3)
	savings := decimal.Zero
	for _, tx := range scoped {
		if tx.IsSavings() {
			savings = savings.Add(tx.Amount)
		}
	}

	parts := make([]string, 0, len(top))
	for _, c := range top {
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Category, s.money(c.Total)))
	}

	header := "Financial Summary"
	if ranged {
		header += " for " + tf.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s:\n", header)
	fmt.Fprintf(&b, "- Total Income: %s\n", s.money(totals.Income))
	fmt.Fprintf(&b, "- Total Expenses: %s\n", s.money(totals.Expenses))
	fmt.Fprintf(&b, "- Total Savings: %s\n", s.money(savings))
	fmt.Fprintf(&b, "- Net Balance: %s\n", s.money(totals.Balance))
	fmt.Fprintf(&b, "- Top Spending Categories: %s\n", strings.Join(parts, ", "))
	fmt.Fprintf(&b, "- Transactions Analyzed: %d out of %d total\n", len(scoped), total)
	fmt.Fprintf(&b, "- Current Date: %s\n", dateutils.ToISODate(asOf))
	return b.String()
}

// Prompt combines the instructions, the context and the question.
func (s *Service) Prompt(question, summary string) string {
	return fmt.Sprintf("%s\n\n%s\n\nQuestion: %s", promptPreamble, summary, question)
}

func (s *Service) spendingSum(lower string, scoped []models.Transaction, tf Timeframe, ranged bool) string {
	focus := ""
	for _, r := range focusRules {
		if strings.Contains(lower, r.keyword) {
			focus = r.category
			break
		}
	}

	sum := decimal.Zero
	count := 0
	for _, tx := range scoped {
		if !tx.IsExpense() || !matchesFocus(tx.Category, focus) {
			continue
		}
		sum = sum.Add(tx.Amount)
		count++
	}

	label := "expenses"
	if focus != "" {
		label = strings.ToLower(focus)
	}
	rangeText := "for all time"
	if ranged {
		rangeText = tf.String()
	}
	plural := "s"
	if count == 1 {
		plural = ""
	}
	return fmt.Sprintf("You spent %s on %s %s (based on %d transaction%s).",
		s.money(sum), label, rangeText, count, plural)
}

// matchesFocus compares categories by containment. Transportation also
// accepts any of its synonyms so labels like "Car" or "Fuel" count.
func matchesFocus(category, focus string) bool {
	if focus == "" {
		return true
	}
	lc := strings.ToLower(category)
	if focus == models.CategoryTransport {
		for _, r := range focusRules {
			if r.category == models.CategoryTransport && strings.Contains(lc, r.keyword) {
				return true
			}
		}
		return false
	}
	return strings.Contains(lc, strings.ToLower(focus))
}

func (s *Service) money(d decimal.Decimal) string {
	return currencyutils.FormatCompact(d, s.symbol)
}
