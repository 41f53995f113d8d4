package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/roach88/lexibot/internal/bot"
	"github.com/roach88/lexibot/internal/config"
	"github.com/roach88/lexibot/internal/dict"
	"github.com/roach88/lexibot/internal/journal"
	"github.com/roach88/lexibot/internal/lexfile"
)

// App is the wired bot: configuration, store, dispatcher, persistence.
// Commands construct one in RunE so flag parsing errors never touch the
// dictionary file.
type App struct {
	Config   config.Config
	Store    *dict.Store
	Registry *bot.Registry
	Handlers *bot.Handlers
	Flusher  *lexfile.Flusher
	Journal  *journal.Journal // nil when the journal could not be opened
	Logger   *slog.Logger

	// Quarantined counts records excluded at load; surfaced by `check`
	// and logged everywhere else.
	Quarantined int
}

// OpenApp loads configuration, the dictionary, and the journal, and wires
// the command registry.
//
// Load failures follow the configured policy: with strict_load a missing
// or malformed dictionary is a startup failure; otherwise the bot logs
// and continues with an empty store.
func OpenApp(opts *RootOptions) (*App, error) {
	logger := newLogger(opts.Verbose)

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, ErrCodeConfig, "loading config", err)
		}
		cfg = loaded
	}

	var entries []dict.Entry
	quarantined := 0
	result, err := lexfile.Load(cfg.DictionaryPath)
	switch {
	case err != nil && cfg.StrictLoad:
		return nil, WrapExitError(ExitCommandError, ErrCodeLoadFailed, "loading dictionary", err)
	case err != nil:
		logger.Warn("dictionary load failed, starting empty",
			"path", cfg.DictionaryPath,
			"error", err,
		)
	default:
		entries = result.Entries
		quarantined = len(result.Quarantined)
		for _, q := range result.Quarantined {
			logger.Warn("quarantined dictionary record",
				"index", q.Index,
				"error", q.Err,
			)
		}
	}

	store := dict.NewStore(dict.NewComparator(cfg.LocaleTag()), entries)
	store.Init()
	logger.Info("dictionary loaded",
		"path", cfg.DictionaryPath,
		"entries", store.Count(),
		"quarantined", quarantined,
	)

	notifier, err := bot.LoadNotifier(cfg.NotifyPath)
	if err != nil {
		if cfg.StrictLoad {
			return nil, WrapExitError(ExitCommandError, ErrCodeLoadFailed, "loading notify sidecar", err)
		}
		logger.Warn("notify sidecar unreadable, starting empty",
			"path", cfg.NotifyPath,
			"error", err,
		)
		notifier = bot.NewNotifier(cfg.NotifyPath)
	}

	// The journal is an audit trail; if it cannot be opened the bot still
	// answers, it just stops keeping records.
	var recorder bot.Recorder
	jnl, err := journal.Open(cfg.JournalPath)
	if err != nil {
		logger.Warn("journal unavailable", "path", cfg.JournalPath, "error", err)
		jnl = nil
	} else {
		recorder = jnl
	}

	flusher := lexfile.NewFlusher(cfg.DictionaryPath, logger)
	handlers := &bot.Handlers{Store: store, Flusher: flusher, Notifier: notifier}

	registry := bot.NewRegistry(nil, recorder, logger)
	if err := handlers.RegisterAll(registry); err != nil {
		if jnl != nil {
			jnl.Close()
		}
		return nil, WrapExitError(ExitCommandError, ErrCodeGeneric, "registering commands", err)
	}

	return &App{
		Config:      cfg,
		Store:       store,
		Registry:    registry,
		Handlers:    handlers,
		Flusher:     flusher,
		Journal:     jnl,
		Logger:      logger,
		Quarantined: quarantined,
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() error {
	if a.Journal != nil {
		return a.Journal.Close()
	}
	return nil
}

// StartFlusher runs the flush loop in the background and returns a stop
// function that drains pending writes and waits for the loop to exit.
func (a *App) StartFlusher(ctx context.Context) (stop func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Flusher.Run(ctx)
	}()
	return func() {
		a.Flusher.Close()
		<-done
	}
}

// newLogger builds the process logger. Verbose enables debug level.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
