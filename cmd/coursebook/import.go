package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ashby/coursebook/internal/app/repositories"
	"github.com/ashby/coursebook/internal/config"
	"github.com/ashby/coursebook/internal/db"
	"github.com/ashby/coursebook/internal/importer"
	"github.com/ashby/coursebook/internal/importer/source"
	"github.com/ashby/coursebook/internal/pkg/apperrors"
	"github.com/ashby/coursebook/internal/pkg/logger"
)

type importOptions struct {
	configPath    string
	source        string
	path          string
	year          int
	numYears      int
	batchSize     int
	includeOnline bool
	lock          bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Populate the database from the Book CSV or the ODS database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "config.yaml", "Path to the config file")
	cmd.Flags().StringVarP(&opts.source, "source", "s", source.SelectorODS, "Data source, either 'book' or 'ods'")
	cmd.Flags().StringVar(&opts.path, "path", "", "Path to the Book CSV file (book source only)")
	cmd.Flags().IntVarP(&opts.year, "year", "y", 0, "Starting year to import, e.g. 2015 (default: current year)")
	cmd.Flags().IntVar(&opts.numYears, "num-years", 0, "Lookback window in years (default: from config)")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0, "Rows per store flush (default: from config)")
	cmd.Flags().BoolVar(&opts.includeOnline, "include-online", false, "Include online-only sections")
	cmd.Flags().BoolVar(&opts.lock, "lock", false, "Hold a cross-process advisory lock for the run")

	return cmd
}

func runImport(ctx context.Context, opts importOptions) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
	}
	configureLogging(cfg)

	// Source selection is validated before anything touches the store.
	if opts.source != source.SelectorBook && opts.source != source.SelectorODS {
		return apperrors.ErrUnknownSource
	}

	runID := uuid.New().String()
	log := logger.WithFields(map[string]interface{}{
		"run_id": runID,
		"source": opts.source,
	})

	pg, err := db.NewPostgresDB(cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	defer pg.Close()

	store := repositories.NewStore(pg)

	if opts.lock {
		acquired, err := store.AcquireImportLock(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrStore, err)
		}
		if !acquired {
			return apperrors.ErrImportLocked
		}
		defer store.ReleaseImportLock(ctx)
	}

	reader, err := openReader(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer reader.Close()

	reconciler := importer.NewReconciler(store)
	reconciler.SetIncludeOnline(opts.includeOnline || cfg.Import.IncludeOnline)

	batchSize := opts.batchSize
	if batchSize == 0 {
		batchSize = cfg.Import.BatchSize
	}

	progress := func(processed, total int) {
		log.Info().
			Int("processed", processed).
			Int("total", total).
			Msg("Import progress")
	}

	log.Info().Msg("Import starting")
	started := time.Now()

	runner := importer.NewRunner(reader, reconciler, store, batchSize, progress)
	stats, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Int("rows", stats.RowsRead).
		Int("skipped", stats.RowsSkipped).
		Int("sections", stats.SectionsWritten).
		Int("duplicate_crns", stats.DuplicateCRNs).
		Dur("elapsed", time.Since(started)).
		Msg("Import finished")

	return nil
}

// openReader builds the reader for the selected source, failing fast on
// anything that would prevent a complete run.
func openReader(ctx context.Context, cfg *config.Config, opts importOptions) (source.Reader, error) {
	switch opts.source {
	case source.SelectorBook:
		path := opts.path
		if path == "" {
			path = cfg.Import.CSVPath
		}
		return source.NewCSVReader(path)

	case source.SelectorODS:
		ods, err := db.NewOdsDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrSourceIO, err)
		}

		lookback := opts.numYears
		if lookback == 0 {
			lookback = cfg.Import.LookbackYears
		}

		start, stop := source.AcademicPeriodRange(opts.year, lookback, time.Now())
		reader, err := source.NewODSReader(ctx, ods.DB, start, stop)
		// The result set is materialized, so the connection is done either way.
		ods.Close()
		if err != nil {
			return nil, err
		}
		return reader, nil
	}

	return nil, apperrors.ErrUnknownSource
}

func configureLogging(cfg *config.Config) {
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})
}
