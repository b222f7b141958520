package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/grocery-price-tracker/internal/engine"
	"github.com/donaldgifford/grocery-price-tracker/internal/metrics"
	"github.com/donaldgifford/grocery-price-tracker/internal/report"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

type batchOptions struct {
	output string
	sqlite string
	resume bool
	fresh  bool
}

func batchCmd() *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch <products.csv>",
		Short: "Match every product in a CSV file",
		Long: "Match each row of a products CSV against every retailer and write a\n" +
			"results CSV with the best match and per-retailer prices.\n\n" +
			"Progress is recorded in a SQLite file as rows complete, so an interrupted\n" +
			"batch can continue with --resume instead of starting over.",
		Example: `  # Match a shopping list
  grocery-price-tracker batch products.csv --output results.csv

  # Continue a batch that was interrupted
  grocery-price-tracker batch products.csv --output results.csv --resume`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "results CSV path (default <output.dir>/<input>_results.csv)")
	cmd.Flags().StringVar(&opts.sqlite, "sqlite", "", "progress database path (default output.sqlite_path)")
	cmd.Flags().BoolVar(&opts.resume, "resume", false, "skip rows already completed by a previous run")
	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "ignore cached results")

	return cmd
}

func runBatch(cmd *cobra.Command, input string, opts *batchOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queries, err := report.FileLoader{Path: input}.LoadQueries(ctx)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		output = filepath.Join(cfg.Output.Dir, base+"_results.csv")
	}
	progressPath := opts.sqlite
	if progressPath == "" {
		progressPath = cfg.Output.SQLitePath
	}

	progress, err := report.OpenSQLite(ctx, progressPath)
	if err != nil {
		return err
	}
	defer progress.Close()

	if !opts.resume {
		if err := progress.Reset(ctx); err != nil {
			return err
		}
	}
	done, err := progress.Completed(ctx)
	if err != nil {
		return err
	}
	pending := report.Pending(queries, done)
	metrics.BatchRowsTotal.WithLabelValues("skipped").Add(float64(len(queries) - len(pending)))

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	rc, err := openCache(cfg, db)
	if err != nil {
		return err
	}

	m, err := buildMatcher(cfg, log, rc)
	if err != nil {
		return err
	}

	runID := uuid.New()
	if err := progress.BeginRun(ctx, runID); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Matching %d products (%d already done) against %s\n",
		len(pending), len(queries)-len(pending), strings.Join(m.Sources(), ", "))

	log.Info("batch starting", "run_id", runID, "input", input, "pending", len(pending))
	start := time.Now()

	matchCtx := ctx
	if opts.fresh {
		matchCtx = engine.WithFreshResults(ctx)
	}
	matchErr := m.MatchEach(matchCtx, pending, func(_ int, r *domain.MatchResult) error {
		status := "not_found"
		if r.Found {
			status = "found"
		}
		metrics.BatchRowsTotal.WithLabelValues(status).Inc()
		done[r.Query.ID] = r
		// The batch context may already be cancelled; completed rows are
		// still recorded so --resume can pick up after them.
		return progress.Save(context.WithoutCancel(ctx), runID, r)
	})
	if matchErr != nil {
		metrics.BatchRowsTotal.WithLabelValues("error").Inc()
		if !errors.Is(matchErr, context.Canceled) {
			return matchErr
		}
		_, _ = fmt.Fprintf(out, "Interrupted after %d of %d products; rerun with --resume to continue\n",
			len(done), len(queries))
		return matchErr
	}

	results := report.Ordered(queries, done)
	if err := report.WriteFile(output, m.Sources(), results); err != nil {
		return err
	}

	if db != nil {
		if err := db.SaveResults(ctx, runID, results); err != nil {
			log.Warn("saving batch to database", "error", err)
		}
	}

	log.Info("batch complete", "run_id", runID, "results", len(results), "elapsed", time.Since(start).Round(time.Millisecond))
	_, _ = fmt.Fprintf(out, "Wrote %d results to %s\n", len(results), output)
	_, _ = fmt.Fprintf(out, "Levels: %s\n", levelSummary(results))
	return nil
}
