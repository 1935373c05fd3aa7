// Package main is quotesctl, a command-line client for the Quotes API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quoteshare/internal/adapters/auth"
	"github.com/jsamuelsen/quoteshare/internal/adapters/clients"
	"github.com/jsamuelsen/quoteshare/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quoteshare/internal/app"
	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/platform/config"
	"github.com/jsamuelsen/quoteshare/internal/platform/logging"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

// Version is injected via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)

	stop()

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}

// options are the persistent flags shared by every subcommand.
type options struct {
	profile  string
	baseURL  string
	token    string
	subject  string
	email    string
	output   string
	logLevel string
}

// session is what a subcommand runs against.
type session struct {
	board *app.Board
	out   *printer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "quotesctl",
		Short:         "Browse and manage shared quotes",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.profile, "profile", envOr("APP_ENVIRONMENT", "local"), "config profile (configs/{profile}.yaml)")
	flags.StringVar(&opts.baseURL, "base-url", "", "Quotes API origin (default services.quotes.base_url)")
	flags.StringVar(&opts.token, "token", os.Getenv("QUOTES_TOKEN"), "bearer token for protected commands")
	flags.StringVar(&opts.subject, "as", "", "mint a token for this subject with the configured auth secret")
	flags.StringVar(&opts.email, "email", "", "email claim for tokens minted with --as")
	flags.StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	connect := func(cmd *cobra.Command) (*session, error) {
		s, err := opts.session(cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}

		s.out = newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.output)

		return s, nil
	}

	root.AddCommand(
		newListAllCmd(connect),
		newListMineCmd(connect),
		newCreateCmd(connect),
		newUpdateCmd(connect),
		newDeleteCmd(connect),
		newTokenCmd(opts),
	)

	return root
}

// session loads configuration and wires client, token source and board.
func (o *options) session(stderr io.Writer) (*session, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   o.logLevel,
		Format:  "pretty",
		Service: "quotesctl",
		Version: Version,
	}, stderr)

	baseURL := cfg.Services.Quotes.BaseURL
	if o.baseURL != "" {
		baseURL = o.baseURL
	}

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     baseURL,
		ServiceName: cfg.Services.Quotes.Name,
		Timeout:     cfg.Client.Timeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	board := app.NewBoard(app.BoardConfig{
		Client: acl.NewQuoteClient(acl.QuoteClientConfig{Client: httpClient, Logger: logger}),
		Tokens: o.tokenSource(cfg.Auth),
		Logger: logger,
	})

	return &session{board: board}, nil
}

func (o *options) config() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(o.profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// tokenSource picks the caller's credentials: an explicit token first,
// then a locally minted one. With neither, protected commands fail with
// "not authenticated" before any request.
func (o *options) tokenSource(cfg config.AuthConfig) ports.TokenSource {
	switch {
	case o.token != "":
		return auth.StaticToken(o.token)
	case o.subject != "":
		return auth.NewIssuer(cfg).Source(domain.Identity{Subject: o.subject, Email: o.email})
	default:
		return nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
