package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roach88/folio/internal/repo"
	"github.com/roach88/folio/internal/settings"
	"github.com/roach88/folio/internal/store"
)

// App bundles the shared dependencies a command needs: the open store,
// the repository over it, the settings registry, and the logger.
// Commands open it at the start of RunE and close it on return.
type App struct {
	Store    *store.Store
	Repo     *repo.Repository
	View     *repo.View
	Registry *settings.Registry
	Log      *zap.Logger
}

// openApp opens the database named by the global flags and wires the
// component stack over it.
func openApp(opts *RootOptions) (*App, error) {
	log, err := newLogger(opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if dir := filepath.Dir(opts.DB); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	s, err := store.Open(opts.DB)
	if err != nil {
		return nil, err
	}

	return &App{
		Store:    s,
		Repo:     repo.New(s, repo.WithLogger(log)),
		View:     repo.NewView(),
		Registry: settings.NewRegistry(s, log),
		Log:      log,
	}, nil
}

// Close releases the store and flushes the logger.
func (a *App) Close() {
	_ = a.Log.Sync()
	_ = a.Store.Close()
}

// newLogger builds the production zap logger; --verbose drops the
// level to debug. Logs go to stderr so stdout stays machine-parseable.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return config.Build()
}
