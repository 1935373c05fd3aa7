package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/quoteshare/internal/domain"
)

// errReported marks an error whose banner was already written to stderr.
var errReported = errors.New("reported")

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	authorStyle = lipgloss.NewStyle().Italic(true)
	metaStyle   = lipgloss.NewStyle().Faint(true)
)

type printer struct {
	out  io.Writer
	err  io.Writer
	json bool
}

func newPrinter(out, errOut io.Writer, format string) *printer {
	return &printer{out: out, err: errOut, json: format == "json"}
}

// quoteJSON is the wire shape printed with -o json.
type quoteJSON struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toJSON(q *domain.Quote) quoteJSON {
	return quoteJSON{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		UserID:    q.UserID,
		UserEmail: q.UserEmail,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func (p *printer) quotes(quotes []domain.Quote) error {
	if p.json {
		out := make([]quoteJSON, 0, len(quotes))
		for i := range quotes {
			out = append(out, toJSON(&quotes[i]))
		}

		return p.encode(out)
	}

	if len(quotes) == 0 {
		_, err := fmt.Fprintln(p.out, "No quotes yet.")
		return err
	}

	for i := range quotes {
		if err := p.text(&quotes[i]); err != nil {
			return err
		}
	}

	return nil
}

func (p *printer) quote(q *domain.Quote) error {
	if p.json {
		return p.encode(toJSON(q))
	}

	return p.text(q)
}

func (p *printer) message(msg string) error {
	if p.json {
		return p.encode(map[string]string{"message": msg})
	}

	_, err := fmt.Fprintln(p.out, msg)

	return err
}

func (p *printer) text(q *domain.Quote) error {
	edited := ""
	if q.UpdatedAt.After(q.CreatedAt) {
		edited = ", edited"
	}

	_, err := fmt.Fprintf(p.out, "%q\n  %s\n  %s\n\n",
		q.Text,
		authorStyle.Render("- "+q.Author),
		metaStyle.Render(fmt.Sprintf("%s · %s · %s%s", q.ID, q.UserEmail, q.CreatedAt.Format(time.DateTime), edited)),
	)

	return err
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// failure writes err as the error banner and returns it marked as reported.
func (p *printer) failure(err error) error {
	fmt.Fprintln(p.err, bannerStyle.Render(bannerText(err)))

	return fmt.Errorf("%w: %w", errReported, err)
}

// notice writes a banner for an error that did not fail the command, such
// as a list reload after a successful mutation. nil writes nothing.
func (p *printer) notice(err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(p.err, bannerStyle.Render(bannerText(err)))
}

// bannerText is the short, user-facing line for a board error.
func bannerText(err error) string {
	switch {
	case domain.IsUnauthorized(err):
		return "Not authenticated: pass --token or --as."
	case domain.IsForbidden(err):
		return "Not authorized: that quote belongs to someone else."
	case domain.IsNotFound(err):
		return "Quote not found."
	case domain.IsValidation(err):
		return "Invalid quote: " + err.Error()
	case domain.IsNetwork(err):
		return "Cannot reach the Quotes API: " + err.Error()
	default:
		return "Something went wrong: " + err.Error()
	}
}
