package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quoteshare/internal/adapters/auth"
	"github.com/jsamuelsen/quoteshare/internal/domain"
)

type connectFunc func(cmd *cobra.Command) (*session, error)

func newListAllCmd(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "list-all",
		Aliases: []string{"all"},
		Short:   "List every shared quote",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := connect(cmd)
			if err != nil {
				return err
			}

			if err := s.board.RefreshAll(cmd.Context()); err != nil {
				return s.out.failure(err)
			}

			return s.out.quotes(s.board.All())
		},
	}
}

func newListMineCmd(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "list-mine",
		Aliases: []string{"mine"},
		Short:   "List your own quotes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := connect(cmd)
			if err != nil {
				return err
			}

			if err := s.board.RefreshMine(cmd.Context()); err != nil {
				return s.out.failure(err)
			}

			return s.out.quotes(s.board.Mine())
		},
	}
}

// quoteFlags binds --text and --author.
func quoteFlags(cmd *cobra.Command, input *domain.QuoteInput) {
	cmd.Flags().StringVar(&input.Text, "text", "", "quote text")
	cmd.Flags().StringVar(&input.Author, "author", "", "who said it")
}

func newCreateCmd(connect connectFunc) *cobra.Command {
	var input domain.QuoteInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Share a new quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := connect(cmd)
			if err != nil {
				return err
			}

			q, err := s.board.Create(cmd.Context(), input)
			if err != nil {
				return s.out.failure(err)
			}

			s.out.notice(s.board.Err())

			return s.out.quote(q)
		},
	}

	quoteFlags(cmd, &input)

	return cmd
}

func newUpdateCmd(connect connectFunc) *cobra.Command {
	var input domain.QuoteInput

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace the text and author of one of your quotes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := connect(cmd)
			if err != nil {
				return err
			}

			q, err := s.board.Update(cmd.Context(), args[0], input)
			if err != nil {
				return s.out.failure(err)
			}

			s.out.notice(s.board.Err())

			return s.out.quote(q)
		},
	}

	quoteFlags(cmd, &input)

	return cmd
}

func newDeleteCmd(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one of your quotes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := connect(cmd)
			if err != nil {
				return err
			}

			if err := s.board.Delete(cmd.Context(), args[0]); err != nil {
				return s.out.failure(err)
			}

			s.out.notice(s.board.Err())

			return s.out.message("Quote deleted")
		},
	}
}

// newTokenCmd mints a development token with the configured auth secret.
func newTokenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a development bearer token for --as",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.subject == "" {
				return errors.New("--as is required")
			}

			cfg, err := opts.config()
			if err != nil {
				return err
			}

			token, err := auth.NewIssuer(cfg.Auth).Issue(domain.Identity{Subject: opts.subject, Email: opts.email})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)

			return nil
		},
	}
}
