package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quoteshare/internal/domain"
)

// QuotesCall wraps a call returning ([]domain.Quote, error).
type QuotesCall struct {
	*mock.Call
}

// Return sets the return values.
func (c *QuotesCall) Return(quotes []domain.Quote, err error) *QuotesCall {
	c.Call.Return(quotes, err)
	return c
}

// Once limits the expectation to a single call.
func (c *QuotesCall) Once() *QuotesCall {
	c.Call.Once()
	return c
}

// Times limits the expectation to n calls.
func (c *QuotesCall) Times(n int) *QuotesCall {
	c.Call.Times(n)
	return c
}

// QuoteCall wraps a call returning (*domain.Quote, error).
type QuoteCall struct {
	*mock.Call
}

// Return sets the return values.
func (c *QuoteCall) Return(q *domain.Quote, err error) *QuoteCall {
	c.Call.Return(q, err)
	return c
}

// Once limits the expectation to a single call.
func (c *QuoteCall) Once() *QuoteCall {
	c.Call.Once()
	return c
}

// ErrorCall wraps a call returning only an error.
type ErrorCall struct {
	*mock.Call
}

// Return sets the return value.
func (c *ErrorCall) Return(err error) *ErrorCall {
	c.Call.Return(err)
	return c
}

// Once limits the expectation to a single call.
func (c *ErrorCall) Once() *ErrorCall {
	c.Call.Once()
	return c
}

// TokenCall wraps a call returning (string, error).
type TokenCall struct {
	*mock.Call
}

// Return sets the return values.
func (c *TokenCall) Return(token string, err error) *TokenCall {
	c.Call.Return(token, err)
	return c
}

func quotesAt(args mock.Arguments, i int) []domain.Quote {
	v, _ := args.Get(i).([]domain.Quote)
	return v
}

func quoteAt(args mock.Arguments, i int) *domain.Quote {
	v, _ := args.Get(i).(*domain.Quote)
	return v
}
