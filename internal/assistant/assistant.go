// Package assistant answers free-text questions about a transaction
// snapshot. A hosted language model path (Service) is tried first and a
// rule-based LocalAnalyst takes over whenever it fails.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"fjacquet/smart-finance/internal/models"
)

// Fixed answers of the hosted path.
const (
	RefusalMessage = "I'm a financial assistant focused on helping you understand your spending and income patterns. Please ask questions related to your transactions, expenses, income, or financial habits."
	NoDataMessage  = "I don't have any transaction data to analyze yet. Please upload your CSV file or add some transactions first."
)

var (
	// ErrNotConfigured is returned by Service when no generator is set.
	ErrNotConfigured = errors.New("language model not configured")
	// ErrEmptyAnswer is returned when the model produced no text.
	ErrEmptyAnswer = errors.New("no response generated")
	// ErrEmptyQuestion is returned for blank questions.
	ErrEmptyQuestion = errors.New("missing question")
)

// Request is one question with the snapshot it is asked against.
type Request struct {
	Question     string
	Transactions []models.Transaction
	// AsOf is the current date for relative timeframes. Zero means now.
	AsOf time.Time
}

// Response carries the answer text.
type Response struct {
	Answer string
}

// Answerer answers a question against an explicit snapshot.
type Answerer interface {
	Answer(ctx context.Context, req Request) (Response, error)
}

// TextGenerator turns a prompt into model text. GeminiGenerator is the
// production implementation.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var financeKeywords = []string{
	"spend", "spent", "expense", "income", "money", "budget", "cost", "paid", "earn", "earned",
	"transaction", "purchase", "buy", "bought", "sale", "financial", "finance", "cash", "amount",
	"category", "food", "transport", "shopping", "bill", "entertainment", "health", "medical",
}

// IsFinanceQuestion reports whether the question mentions any finance
// keyword. Matching is substring based and case-insensitive.
func IsFinanceQuestion(question string) bool {
	lower := strings.ToLower(question)
	for _, kw := range financeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
