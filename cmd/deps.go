package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/config"
	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/hints"
	"github.com/abhisek/leitner/internal/llm"
	"github.com/abhisek/leitner/internal/logging"
	"github.com/abhisek/leitner/internal/metrics"
	"github.com/abhisek/leitner/internal/store"
)

// depsOptions selects the optional parts of the dependency graph.
type depsOptions struct {
	// metrics registers a Prometheus collector when the config enables it.
	metrics bool
	// hints builds the LLM hint suggester when a provider is configured.
	hints bool
	// quiet discards logs. The TUI owns the terminal.
	quiet bool
}

// deps is everything a command needs to work on the deck.
type deps struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	deck     *deck.Deck
	recorder metrics.Recorder
	registry *prometheus.Registry
}

// loadConfig reads --config (if any), applies LEITNER_* variables and the
// persistent flag overrides, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs go to the command's stderr so
// stdout stays parseable.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// openDeps opens the store and builds the deck around it. The caller must
// call Close.
func openDeps(cmd *cobra.Command, opts depsOptions) (*deps, error) {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := logging.Nop()
	if !opts.quiet {
		logger, err = newLogger(cmd, cfg)
		if err != nil {
			return nil, err
		}
	}

	d := &deps{cfg: cfg, logger: logger, recorder: metrics.NewNop()}
	if opts.metrics && cfg.Metrics.Enabled {
		d.registry = prometheus.NewRegistry()
		d.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		d.recorder = metrics.NewPrometheus(d.registry, cfg.Metrics.Namespace)
	}

	dbPath, err := resolveDBPath(cmd, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	d.store, err = store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "path", dbPath)

	deckOpts := []deck.Option{
		deck.WithRepo(d.store.DeckRepo()),
		deck.WithLogger(logger),
		deck.WithMetrics(d.recorder),
	}

	seed, err := seedCards(cfg.Seed)
	if err != nil {
		d.store.Close()
		return nil, err
	}
	deckOpts = append(deckOpts, deck.WithSeed(seed))

	if opts.hints {
		suggester, err := newSuggester(cmd, cfg, logger)
		switch {
		case errors.Is(err, llm.ErrDisabled):
			logger.Debug("hint suggestions disabled", "reason", "no llm provider")
		case err != nil:
			fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
			fmt.Fprintln(cmd.ErrOrStderr(), "Hint suggestions will be unavailable.")
		default:
			deckOpts = append(deckOpts, deck.WithHintSuggester(suggester))
		}
	}

	d.deck, err = deck.New(ctx, deckOpts...)
	if err != nil {
		d.store.Close()
		return nil, fmt.Errorf("open deck: %w", err)
	}
	return d, nil
}

// Close releases the deck and the database.
func (d *deps) Close() error {
	return errors.Join(d.deck.Close(), d.store.Close())
}

// seedCards returns the cards placed into an empty deck.
func seedCards(cfg config.SeedConfig) ([]deck.SeedCard, error) {
	switch {
	case cfg.Disabled:
		return nil, nil
	case cfg.File != "":
		cards, err := deck.LoadSeedFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("load seed file: %w", err)
		}
		return cards, nil
	default:
		return deck.DefaultSeed(), nil
	}
}

// newSuggester builds the LLM provider chain and the hint service on top.
// It returns llm.ErrDisabled when no provider is selected.
func newSuggester(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*hints.Service, error) {
	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, logger)
	if err != nil {
		return nil, err
	}
	return hints.NewService(provider, hints.DefaultConfig()), nil
}
