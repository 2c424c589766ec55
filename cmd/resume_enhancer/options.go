package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/jonathan/resume-enhancer/internal/catalog"
	"github.com/jonathan/resume-enhancer/internal/config"
	"github.com/jonathan/resume-enhancer/internal/observability"
	"github.com/jonathan/resume-enhancer/internal/review"
	"github.com/jonathan/resume-enhancer/internal/storage"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath     string
	catalogPath    string
	watchCatalog   bool
	jobID          string
	storageBackend string
	storageDir     string
	breaker        bool
	verbose        bool
}

func (o *globalOptions) bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.StringVar(&o.catalogPath, "catalog", "", "Path to a YAML candidate catalog (default: built-in candidates)")
	flags.BoolVar(&o.watchCatalog, "watch-catalog", false, "Reload the catalog file when it changes (serve only)")
	flags.StringVar(&o.jobID, "job", "", "Job context suggestions are generated for")
	flags.StringVar(&o.storageBackend, "storage", "", "Storage backend: memory, file, postgres or redis (default: STORAGE_BACKEND or file)")
	flags.StringVar(&o.storageDir, "storage-dir", "", "Directory for the file backend (default: STORAGE_DIR or "+config.DefaultStorageDir+")")
	flags.BoolVar(&o.breaker, "breaker", false, "Wrap the storage backend in a circuit breaker")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Print detailed session information")
}

// resolve loads the config file when given and applies explicitly set flags on top.
func (o *globalOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog = o.catalogPath
	}
	if flags.Changed("watch-catalog") {
		cfg.WatchCatalog = o.watchCatalog
	}
	if flags.Changed("job") {
		cfg.JobID = o.jobID
	}
	if flags.Changed("storage") {
		cfg.StorageBackend = o.storageBackend
	}
	if flags.Changed("storage-dir") {
		cfg.StorageDir = o.storageDir
	}
	if flags.Changed("breaker") {
		cfg.Breaker = o.breaker
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{JobID: catalog.DefaultJobID})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Verbose && o.configPath != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Loaded config from: %s\n", o.configPath)
	}
	return cfg, nil
}

// openCatalog returns the configured provider. The watcher is non-nil only when
// the catalog file should be hot reloaded.
func openCatalog(cfg config.Config) (catalog.Provider, func(ctx context.Context) error, error) {
	if cfg.Catalog == "" {
		return catalog.Builtin(), nil, nil
	}
	if cfg.WatchCatalog {
		r, err := catalog.NewReloading(cfg.Catalog, catalog.DefaultDebounce)
		if err != nil {
			return nil, nil, err
		}
		r.OnReload(func() { log.Printf("[catalog] reloaded %s", cfg.Catalog) })
		return r, r.Watch, nil
	}
	s, err := catalog.LoadFile(cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}
	return s, nil, nil
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	sc, err := cfg.Storage()
	if err != nil {
		return nil, err
	}
	return storage.Open(ctx, sc)
}

// sessionEnv is what a one-shot CLI command needs to work on a candidate.
type sessionEnv struct {
	cfg     config.Config
	catalog catalog.Provider
	store   storage.Store
	session *review.Session
	printer *observability.Printer
	out     io.Writer
}

// openSession resolves configuration, opens the catalog and store and starts a
// review session for the candidate. Callers must call close.
func (o *globalOptions) openSession(cmd *cobra.Command, candidateID string) (*sessionEnv, error) {
	cfg, err := o.resolve(cmd)
	if err != nil {
		return nil, err
	}
	provider, _, err := openCatalog(cfg)
	if err != nil {
		return nil, err
	}
	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	session, err := review.Open(cmd.Context(), review.OpenOptions{
		CandidateID: candidateID,
		JobID:       cfg.JobID,
		Catalog:     provider,
		Store:       store,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	out := cmd.OutOrStdout()
	return &sessionEnv{
		cfg:     cfg,
		catalog: provider,
		store:   store,
		session: session,
		printer: observability.NewPrinter(out),
		out:     out,
	}, nil
}

func (e *sessionEnv) close() {
	e.session.Close()
	if err := e.store.Close(); err != nil {
		log.Printf("[storage] close failed: %v", err)
	}
}

// describe prints the session in verbose mode.
func (e *sessionEnv) describe() {
	if !e.cfg.Verbose {
		return
	}
	job := e.catalog.JobRequirements(e.session.JobID())
	e.printer.PrintJobRequirements(&job)
	e.printer.PrintSuggestions(e.session.Suggestions())
	e.printer.PrintBreakdown(e.session.Breakdown())
}
