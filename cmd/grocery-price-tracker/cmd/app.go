package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/donaldgifford/grocery-price-tracker/internal/cache"
	"github.com/donaldgifford/grocery-price-tracker/internal/config"
	"github.com/donaldgifford/grocery-price-tracker/internal/engine"
	"github.com/donaldgifford/grocery-price-tracker/internal/retailer"
	"github.com/donaldgifford/grocery-price-tracker/internal/store"
	"github.com/donaldgifford/grocery-price-tracker/pkg/extract"
	"github.com/donaldgifford/grocery-price-tracker/pkg/logger"
	"github.com/donaldgifford/grocery-price-tracker/pkg/normalize"
	"github.com/donaldgifford/grocery-price-tracker/pkg/pricecheck"
	"github.com/donaldgifford/grocery-price-tracker/pkg/similarity"
)

// resultCache is a cache backend that can also report and clear itself.
type resultCache interface {
	cache.Cache
	cache.Admin
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

// openStore connects to Postgres when a database is configured. A nil store
// and nil error mean match history is disabled.
func openStore(ctx context.Context, cfg *config.Config) (*store.PostgresStore, error) {
	if !cfg.Database.Enabled() {
		return nil, nil
	}
	s, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), store.WithCacheTTL(cfg.Cache.TTL))
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return s, nil
}

// openCache selects the configured cache backend. It returns nil for the
// none backend.
func openCache(cfg *config.Config, db *store.PostgresStore) (resultCache, error) {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return nil, nil
	case config.CachePostgres:
		if db == nil {
			return nil, fmt.Errorf("cache backend postgres needs a database")
		}
		return db, nil
	default:
		fc, err := cache.NewFileCache(cfg.Cache.Dir, cache.WithTTL(cfg.Cache.TTL))
		if err != nil {
			return nil, fmt.Errorf("opening file cache: %w", err)
		}
		return fc, nil
	}
}

// buildSources creates one source per configured retailer. The returned
// corpus holds every fixture listing name, for the vector scorer.
func buildSources(cfg *config.Config) ([]retailer.Source, []string, error) {
	var (
		sources  []retailer.Source
		corpus   []string
		fixtures = map[string]retailer.Fixtures{}
	)

	for i := range cfg.Retailers {
		rc := &cfg.Retailers[i]
		switch rc.Kind {
		case config.SourceStatic:
			f, ok := fixtures[rc.FixtureFile]
			if !ok {
				var err error
				f, err = retailer.LoadFixtures(rc.FixtureFile)
				if err != nil {
					return nil, nil, fmt.Errorf("retailer %s: %w", rc.Name, err)
				}
				fixtures[rc.FixtureFile] = f
			}
			products, ok := f[rc.Name]
			if !ok {
				return nil, nil, fmt.Errorf("retailer %s: %s has no listings for it", rc.Name, rc.FixtureFile)
			}
			for _, p := range products {
				corpus = append(corpus, p.Name)
			}
			sources = append(sources, retailer.NewStaticSource(rc.Name, products))
		default:
			rl := retailer.NewRateLimiter(rc.RateLimit.PerSecond, rc.RateLimit.Burst, rc.RateLimit.DailyLimit)
			sources = append(sources, retailer.NewHTTPSource(rc.Name, rc.BaseURL,
				retailer.WithTimeout(rc.Timeout),
				retailer.WithUserAgent(rc.UserAgent),
				retailer.WithRateLimiter(rl),
			))
		}
	}

	return sources, corpus, nil
}

// buildStates turns configured strategies into cascade states.
func buildStates(cfg *config.Config) ([]engine.State, error) {
	states := make([]engine.State, 0, len(cfg.Matching.Strategies))
	for _, sc := range cfg.Matching.Strategies {
		st, err := engine.StateFor(sc.Name, sc.Threshold, sc.MaxCandidates)
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	return states, nil
}

func readCorpus(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // corpus path from trusted config
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}
	return lines, nil
}

// buildMatcher assembles the matching engine from configuration. c may be
// nil to disable caching.
func buildMatcher(cfg *config.Config, log *slog.Logger, c resultCache) (*engine.Matcher, error) {
	norm, err := normalize.New(cfg.Matching.NoisePhrases)
	if err != nil {
		return nil, err
	}

	ex, err := extract.New(cfg.Matching.Rules())
	if err != nil {
		return nil, fmt.Errorf("building extractor: %w", err)
	}

	sources, corpus, err := buildSources(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Matching.CorpusFile != "" {
		corpus, err = readCorpus(cfg.Matching.CorpusFile)
		if err != nil {
			return nil, err
		}
	}

	scorer, err := similarity.New(cfg.Matching.Scorer, corpus)
	if err != nil {
		return nil, err
	}

	states, err := buildStates(cfg)
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithLogger(logger.Component(log, "engine")),
		engine.WithPriority(cfg.Matching.Priority...),
		engine.WithScorer(scorer),
		engine.WithValidator(pricecheck.New(cfg.Validation, norm)),
		engine.WithStates(states...),
		engine.WithEarlyExit(cfg.Matching.EarlyExit),
		engine.WithWeights(cfg.Matching.Weights),
		engine.WithConcurrency(cfg.Matching.Concurrency),
	}
	if c != nil {
		opts = append(opts, engine.WithCache(c))
	}

	return engine.NewMatcher(sources, norm, ex, opts...), nil
}
