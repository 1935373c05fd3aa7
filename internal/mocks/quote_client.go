// Package mocks contains testify mocks for the ports interfaces, written in
// the mockery expecter style.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

// MockQuoteClient is a mock implementation of ports.QuoteClient.
type MockQuoteClient struct {
	mock.Mock
}

var _ ports.QuoteClient = (*MockQuoteClient)(nil)

// NewMockQuoteClient creates a mock and registers AssertExpectations on cleanup.
func NewMockQuoteClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuoteClient {
	m := &MockQuoteClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockQuoteClientExpecter provides typed expectation helpers.
type MockQuoteClientExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter.
func (m *MockQuoteClient) EXPECT() *MockQuoteClientExpecter {
	return &MockQuoteClientExpecter{mock: &m.Mock}
}

// ListAll provides a mock function.
func (m *MockQuoteClient) ListAll(ctx context.Context) ([]domain.Quote, error) {
	ret := m.Called(ctx)

	return quotesAt(ret, 0), ret.Error(1)
}

// ListMine provides a mock function.
func (m *MockQuoteClient) ListMine(ctx context.Context, tokens ports.TokenSource) ([]domain.Quote, error) {
	ret := m.Called(ctx, tokens)

	return quotesAt(ret, 0), ret.Error(1)
}

// Create provides a mock function.
func (m *MockQuoteClient) Create(ctx context.Context, input domain.QuoteInput, tokens ports.TokenSource) (*domain.Quote, error) {
	ret := m.Called(ctx, input, tokens)

	return quoteAt(ret, 0), ret.Error(1)
}

// Update provides a mock function.
func (m *MockQuoteClient) Update(ctx context.Context, id string, input domain.QuoteInput, tokens ports.TokenSource) (*domain.Quote, error) {
	ret := m.Called(ctx, id, input, tokens)

	return quoteAt(ret, 0), ret.Error(1)
}

// Delete provides a mock function.
func (m *MockQuoteClient) Delete(ctx context.Context, id string, tokens ports.TokenSource) error {
	ret := m.Called(ctx, id, tokens)

	return ret.Error(0)
}

// ListAll sets up an expectation.
func (e *MockQuoteClientExpecter) ListAll(ctx any) *QuotesCall {
	return &QuotesCall{Call: e.mock.On("ListAll", ctx)}
}

// ListMine sets up an expectation.
func (e *MockQuoteClientExpecter) ListMine(ctx, tokens any) *QuotesCall {
	return &QuotesCall{Call: e.mock.On("ListMine", ctx, tokens)}
}

// Create sets up an expectation.
func (e *MockQuoteClientExpecter) Create(ctx, input, tokens any) *QuoteCall {
	return &QuoteCall{Call: e.mock.On("Create", ctx, input, tokens)}
}

// Update sets up an expectation.
func (e *MockQuoteClientExpecter) Update(ctx, id, input, tokens any) *QuoteCall {
	return &QuoteCall{Call: e.mock.On("Update", ctx, id, input, tokens)}
}

// Delete sets up an expectation.
func (e *MockQuoteClientExpecter) Delete(ctx, id, tokens any) *ErrorCall {
	return &ErrorCall{Call: e.mock.On("Delete", ctx, id, tokens)}
}
