package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

// MockQuoteRepository is a mock implementation of ports.QuoteRepository.
type MockQuoteRepository struct {
	mock.Mock
}

var _ ports.QuoteRepository = (*MockQuoteRepository)(nil)

// NewMockQuoteRepository creates a mock and registers AssertExpectations on cleanup.
func NewMockQuoteRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuoteRepository {
	m := &MockQuoteRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockQuoteRepositoryExpecter provides typed expectation helpers.
type MockQuoteRepositoryExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter.
func (m *MockQuoteRepository) EXPECT() *MockQuoteRepositoryExpecter {
	return &MockQuoteRepositoryExpecter{mock: &m.Mock}
}

// List provides a mock function.
func (m *MockQuoteRepository) List(ctx context.Context) ([]domain.Quote, error) {
	ret := m.Called(ctx)

	return quotesAt(ret, 0), ret.Error(1)
}

// ListByOwner provides a mock function.
func (m *MockQuoteRepository) ListByOwner(ctx context.Context, owner string) ([]domain.Quote, error) {
	ret := m.Called(ctx, owner)

	return quotesAt(ret, 0), ret.Error(1)
}

// Get provides a mock function.
func (m *MockQuoteRepository) Get(ctx context.Context, id string) (*domain.Quote, error) {
	ret := m.Called(ctx, id)

	return quoteAt(ret, 0), ret.Error(1)
}

// Insert provides a mock function.
func (m *MockQuoteRepository) Insert(ctx context.Context, q *domain.Quote) error {
	return m.Called(ctx, q).Error(0)
}

// Replace provides a mock function.
func (m *MockQuoteRepository) Replace(ctx context.Context, q *domain.Quote) error {
	return m.Called(ctx, q).Error(0)
}

// Delete provides a mock function.
func (m *MockQuoteRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// List sets up an expectation.
func (e *MockQuoteRepositoryExpecter) List(ctx any) *QuotesCall {
	return &QuotesCall{Call: e.mock.On("List", ctx)}
}

// ListByOwner sets up an expectation.
func (e *MockQuoteRepositoryExpecter) ListByOwner(ctx, owner any) *QuotesCall {
	return &QuotesCall{Call: e.mock.On("ListByOwner", ctx, owner)}
}

// Get sets up an expectation.
func (e *MockQuoteRepositoryExpecter) Get(ctx, id any) *QuoteCall {
	return &QuoteCall{Call: e.mock.On("Get", ctx, id)}
}

// Insert sets up an expectation.
func (e *MockQuoteRepositoryExpecter) Insert(ctx, q any) *ErrorCall {
	return &ErrorCall{Call: e.mock.On("Insert", ctx, q)}
}

// Replace sets up an expectation.
func (e *MockQuoteRepositoryExpecter) Replace(ctx, q any) *ErrorCall {
	return &ErrorCall{Call: e.mock.On("Replace", ctx, q)}
}

// Delete sets up an expectation.
func (e *MockQuoteRepositoryExpecter) Delete(ctx, id any) *ErrorCall {
	return &ErrorCall{Call: e.mock.On("Delete", ctx, id)}
}

// MockTokenSource is a mock implementation of ports.TokenSource.
type MockTokenSource struct {
	mock.Mock
}

var _ ports.TokenSource = (*MockTokenSource)(nil)

// NewMockTokenSource creates a mock and registers AssertExpectations on cleanup.
func NewMockTokenSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenSource {
	m := &MockTokenSource{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Token provides a mock function.
func (m *MockTokenSource) Token(ctx context.Context) (string, error) {
	ret := m.Called(ctx)

	return ret.String(0), ret.Error(1)
}

// MockTokenSourceExpecter provides typed expectation helpers.
type MockTokenSourceExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter.
func (m *MockTokenSource) EXPECT() *MockTokenSourceExpecter {
	return &MockTokenSourceExpecter{mock: &m.Mock}
}

// Token sets up an expectation.
func (e *MockTokenSourceExpecter) Token(ctx any) *TokenCall {
	return &TokenCall{Call: e.mock.On("Token", ctx)}
}
