package assistant

import (
	"context"
	"strings"
	"time"

	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"
)

// Client is what the CLI talks to. It tries the hosted Answerer and falls
// back to the LocalAnalyst on any error, so Ask always produces an answer.
type Client struct {
	hosted  Answerer
	local   *LocalAnalyst
	timeout time.Duration
	logger  logging.Logger
}

// NewClient creates a Client. hosted may be nil to run local-only. A zero
// timeout leaves the caller's context deadline untouched.
func NewClient(hosted Answerer, local *LocalAnalyst, timeout time.Duration, logger logging.Logger) *Client {
	if local == nil {
		local = NewLocalAnalyst("")
	}
	return &Client{
		hosted:  hosted,
		local:   local,
		timeout: timeout,
		logger:  logging.OrDefault(logger),
	}
}

// Hosted reports whether a hosted answerer is configured.
func (c *Client) Hosted() bool {
	return c.hosted != nil
}

// Ask answers question against a copy of snapshot. A blank question yields
// an empty answer.
func (c *Client) Ask(ctx context.Context, question string, snapshot []models.Transaction, asOf time.Time) Response {
	if strings.TrimSpace(question) == "" {
		return Response{}
	}

	req := Request{
		Question:     question,
		Transactions: models.CloneTransactions(snapshot),
		AsOf:         asOf,
	}

	if c.hosted != nil {
		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		resp, err := c.hosted.Answer(callCtx, req)
		if err == nil {
			return resp
		}
		c.logger.WithError(err).Warn("Hosted answer failed, using local analysis",
			logging.Field{Key: logging.FieldCount, Value: len(req.Transactions)})
	}

	resp, _ := c.local.Answer(ctx, req)
	return resp
}
