package dto

import (
	"time"

	"github.com/jsamuelsen/quoteshare/internal/domain"
)

// QuoteRequest is the body of POST /quotes and PUT /quotes/:id.
// Any other field in the body is ignored.
type QuoteRequest struct {
	Text   string `json:"text"   validate:"required,notblank"`
	Author string `json:"author" validate:"required,notblank"`
}

// ToDomain converts the request to domain input.
func (r *QuoteRequest) ToDomain() domain.QuoteInput {
	return domain.QuoteInput{Text: r.Text, Author: r.Author}
}

// QuoteResponse is the wire form of a quote.
type QuoteResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewQuoteResponse converts a domain quote to its wire form.
func NewQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		UserID:    q.UserID,
		UserEmail: q.UserEmail,
		CreatedAt: q.CreatedAt.UTC(),
		UpdatedAt: q.UpdatedAt.UTC(),
	}
}

// NewQuoteListResponse converts a list of quotes. The result is never nil,
// so an empty list encodes as [].
func NewQuoteListResponse(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, NewQuoteResponse(&quotes[i]))
	}

	return out
}

// MessageResponse is a body carrying only a message.
type MessageResponse struct {
	Message string `json:"message"`
}
