// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
)

// Quote represents a quotation shared by one user.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the unique identifier for this quote, assigned on creation.
	ID string

	// Text is the body of the quote.
	Text string

	// Author is who said or wrote the quote. Free text.
	Author string

	// UserID is the subject of the owning identity.
	UserID string

	// UserEmail is the email of the owning identity.
	UserEmail string

	// CreatedAt is when the quote was created.
	CreatedAt time.Time

	// UpdatedAt equals CreatedAt until the first edit.
	UpdatedAt time.Time
}

// OwnedBy reports whether the identity owns the quote.
func (q *Quote) OwnedBy(id Identity) bool {
	return q.UserID != "" && q.UserID == id.Subject
}

// QuoteInput is the only part of a quote a caller may supply.
type QuoteInput struct {
	Text   string
	Author string
}

// Validate rejects input whose text or author is blank.
func (in QuoteInput) Validate() error {
	if strings.TrimSpace(in.Text) == "" {
		return NewValidationError("text", "must not be empty")
	}

	if strings.TrimSpace(in.Author) == "" {
		return NewValidationError("author", "must not be empty")
	}

	return nil
}

// Identity is the authenticated caller as asserted by a verified bearer token.
type Identity struct {
	Subject string
	Email   string
}
