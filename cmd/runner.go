package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/favorites"
	"github.com/desertthunder/tunes/internal/repositories"
	"github.com/desertthunder/tunes/internal/services"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	catalog     services.Catalog
	ownsCatalog bool
	logger      *log.Logger
	output      io.Writer
	openStorage func(shared.StorageConfig) (*sql.DB, error)
	db          *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Catalog     services.Catalog // Built from [shared.SearchConfig] when nil
	Logger      *log.Logger
	Output      io.Writer
	OpenStorage func(shared.StorageConfig) (*sql.DB, error) // Defaults to [shared.OpenStorage]
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.OpenStorage == nil {
		opts.OpenStorage = shared.OpenStorage
	}

	return &Runner{
		config:      opts.Config,
		catalog:     opts.Catalog,
		logger:      opts.Logger,
		output:      opts.Output,
		openStorage: opts.OpenStorage,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, searchCommand, favoritesCommand, shareCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by the runner and the components it builds afterwards.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	if r.ownsCatalog {
		r.catalog = nil
		r.ownsCatalog = false
	}
}

// service returns the catalog client, building one from the search settings on first use.
func (r *Runner) service() services.Catalog {
	if r.catalog == nil {
		r.catalog = newCatalog(r.config.Search, r.logger)
		r.ownsCatalog = true
	}
	return r.catalog
}

func newCatalog(cfg shared.SearchConfig, logger *log.Logger) *services.ITunesService {
	return services.NewITunesService(services.ITunesOpts{
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout()},
		Limiter:    services.NewLimiter(cfg.RequestsPerMinute, cfg.Burst),
		Logger:     logger,
	})
}

// Close releases the storage connection, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// database opens the configured storage once and reuses it for later calls.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	r.logger.Debug("opening storage", "path", r.config.Storage.Path)
	db, err := r.openStorage(r.config.Storage)
	if err != nil {
		return nil, err
	}
	r.db = db
	return db, nil
}

// favoritesStore returns the favorites store backed by the configured storage.
func (r *Runner) favoritesStore() (*favorites.KVStore, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return favorites.NewKVStore(repositories.NewKeyValueRepository(db)), nil
}

// loadFavorites returns a loaded favorites manager.
func (r *Runner) loadFavorites(ctx context.Context) (*favorites.Manager, error) {
	store, err := r.favoritesStore()
	if err != nil {
		return nil, err
	}

	manager := favorites.NewManager(store, r.logger)
	if err := manager.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return manager, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
