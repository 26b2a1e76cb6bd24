package assistant

import (
	"context"
	"errors"
	"testing"

	"fjacquet/smart-finance/internal/ledger"
	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func newService(gen TextGenerator) *Service {
	return NewService(gen, "₱", logging.NewMockLogger())
}

func ask(t *testing.T, s *Service, question string) (Response, error) {
	t.Helper()
	return s.Answer(context.Background(), Request{Question: question, Transactions: ledger.Seed(), AsOf: asOf})
}

func TestService_RefusesNonFinanceQuestions(t *testing.T) {
	gen := &fakeGenerator{reply: "nope"}
	resp, err := ask(t, newService(gen), "Tell me a joke")
	require.NoError(t, err)
	assert.Equal(t, RefusalMessage, resp.Answer)
	assert.Empty(t, gen.prompts)
}

func TestService_NoData(t *testing.T) {
	resp, err := newService(nil).Answer(context.Background(), Request{Question: "How much did I spend?"})
	require.NoError(t, err)
	assert.Equal(t, NoDataMessage, resp.Answer)
}

func TestService_EmptyQuestion(t *testing.T) {
	_, err := ask(t, newService(nil), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestService_SpendingSum(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{
			name:     "category focus",
			question: "How much did I spend on transportation?",
			want:     "You spent ₱535 on transportation for all time (based on 3 transactions).",
		},
		{
			name:     "food synonym",
			question: "Total spent on groceries?",
			want:     "You spent ₱771.5 on food & dining for all time (based on 3 transactions).",
		},
		{
			name:     "date range without focus",
			question: "How much did I spend sep 5 to 7?",
			want:     "You spent ₱845.14 on expenses from 2025-09-05 to 2025-09-07 (based on 6 transactions).",
		},
		{
			name:     "single transaction is singular",
			question: "How much did I spend at the pharmacy?",
			want:     "You spent ₱22.5 on health & medical for all time (based on 1 transaction).",
		},
		{
			name:     "focus matches the category not the description",
			question: "How much did I spend on netflix?",
			want:     "You spent ₱39.99 on entertainment for all time (based on 2 transactions).",
		},
		{
			name:     "all expenses",
			question: "what are my total expenses",
			want:     "You spent ₱1,989.38 on expenses for all time (based on 13 transactions).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{reply: "should not be used"}
			resp, err := ask(t, newService(gen), tt.question)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Answer)
			assert.Empty(t, gen.prompts)
		})
	}
}

func TestService_AsksModelWithContext(t *testing.T) {
	gen := &fakeGenerator{reply: "  Food is your largest category.  "}
	resp, err := ask(t, newService(gen), "Which expense category should I cut?")
	require.NoError(t, err)
	assert.Equal(t, "Food is your largest category.", resp.Answer)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "You are a financial advisor AI assistant.")
	assert.Contains(t, prompt, "Financial Summary:\n")
	assert.Contains(t, prompt, "- Total Income: ₱5,800\n")
	assert.Contains(t, prompt, "- Total Expenses: ₱1,989.38\n")
	assert.Contains(t, prompt, "- Total Savings: ₱0\n")
	assert.Contains(t, prompt, "- Net Balance: ₱3,810.62\n")
	assert.Contains(t, prompt, "- Top Spending Categories: Food & Dining (₱771.5), Transportation (₱535), Shopping (₱409.99)\n")
	assert.Contains(t, prompt, "- Transactions Analyzed: 15 out of 15 total\n")
	assert.Contains(t, prompt, "- Current Date: 2025-09-15\n")
	assert.Contains(t, prompt, "Question: Which expense category should I cut?")
}

func TestService_ContextIncludesSavings(t *testing.T) {
	s := newService(&fakeGenerator{})
	txs := []models.Transaction{
		{ID: 1, Date: "2025-09-01", Description: "Salary", Amount: decimal.NewFromInt(5000), Category: models.CategorySalary, Type: models.TypeIncome},
		{ID: 2, Date: "2025-09-02", Description: "Emergency fund", Amount: decimal.NewFromInt(1500), Category: models.CategoryOther, Type: models.TypeSavings},
		{ID: 3, Date: "2025-09-03", Description: "Time deposit", Amount: decimal.RequireFromString("250.50"), Category: models.CategoryOther, Type: models.TypeSavings},
	}

	summary := s.Context(txs, len(txs), Timeframe{}, false, asOf)
	assert.Contains(t, summary, "- Total Savings: ₱1,750.5\n")
	assert.Contains(t, summary, "- Net Balance: ₱5,000\n")
}

func TestService_ContextUsesTimeframe(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	_, err := ask(t, newService(gen), "What did I buy last week?")
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Financial Summary for from 2025-09-08 to 2025-09-15:")
	assert.Contains(t, gen.prompts[0], "- Transactions Analyzed: 4 out of 15 total")
}

func TestService_ModelFailures(t *testing.T) {
	boom := errors.New("quota exceeded")

	_, err := ask(t, newService(&fakeGenerator{err: boom}), "Any budget advice?")
	assert.ErrorIs(t, err, boom)

	_, err = ask(t, newService(&fakeGenerator{reply: " \n "}), "Any budget advice?")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	_, err = ask(t, newService(nil), "Any budget advice?")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestIsFinanceQuestion(t *testing.T) {
	assert.True(t, IsFinanceQuestion("What did I BUY?"))
	assert.True(t, IsFinanceQuestion("medical costs"))
	assert.False(t, IsFinanceQuestion("what's the weather like"))
}
