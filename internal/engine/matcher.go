// Package engine runs the matching cascade: it searches retailers with
// progressively looser query text, scores every listing against the query
// and picks one winner across retailers.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/donaldgifford/grocery-price-tracker/internal/cache"
	"github.com/donaldgifford/grocery-price-tracker/internal/metrics"
	"github.com/donaldgifford/grocery-price-tracker/internal/retailer"
	"github.com/donaldgifford/grocery-price-tracker/pkg/extract"
	"github.com/donaldgifford/grocery-price-tracker/pkg/normalize"
	"github.com/donaldgifford/grocery-price-tracker/pkg/pricecheck"
	score "github.com/donaldgifford/grocery-price-tracker/pkg/scorer"
	"github.com/donaldgifford/grocery-price-tracker/pkg/similarity"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Matcher matches free-text queries against retailer listings. It is safe
// for concurrent use once constructed.
type Matcher struct {
	sources   []retailer.Source
	norm      *normalize.Normalizer
	extractor *extract.Extractor
	scorer    similarity.Scorer
	validator *pricecheck.Validator
	cache     cache.Cache
	log       *slog.Logger

	priority    Priority
	states      []State
	weights     score.Weights
	earlyExit   float64
	concurrency int
}

// Option configures the Matcher.
type Option func(*Matcher)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Matcher) {
		m.log = l
	}
}

// WithCache enables result caching.
func WithCache(c cache.Cache) Option {
	return func(m *Matcher) {
		m.cache = c
	}
}

// WithPriority sets the retailer tie-break order. Sources are also queried
// in this order.
func WithPriority(names ...string) Option {
	return func(m *Matcher) {
		m.priority = NewPriority(names...)
	}
}

// WithScorer replaces the default token scorer.
func WithScorer(s similarity.Scorer) Option {
	return func(m *Matcher) {
		m.scorer = s
	}
}

// WithValidator replaces the default price validator.
func WithValidator(v *pricecheck.Validator) Option {
	return func(m *Matcher) {
		m.validator = v
	}
}

// WithStates replaces the default cascade.
func WithStates(states ...State) Option {
	return func(m *Matcher) {
		m.states = states
	}
}

// WithEarlyExit sets the confidence at which a round stops querying
// further retailers.
func WithEarlyExit(v float64) Option {
	return func(m *Matcher) {
		m.earlyExit = v
	}
}

// WithWeights sets the confidence weights.
func WithWeights(w score.Weights) Option {
	return func(m *Matcher) {
		m.weights = w
	}
}

// WithConcurrency bounds how many queries MatchBatch runs at once.
func WithConcurrency(n int) Option {
	return func(m *Matcher) {
		m.concurrency = n
	}
}

// NewMatcher creates a Matcher over sources. norm and ex must be the same
// rule tables used for every query so profiles stay comparable.
func NewMatcher(
	sources []retailer.Source,
	norm *normalize.Normalizer,
	ex *extract.Extractor,
	opts ...Option,
) *Matcher {
	m := &Matcher{
		norm:        norm,
		extractor:   ex,
		scorer:      similarity.NewTokenScorer(),
		log:         slog.Default(),
		states:      DefaultStates(),
		weights:     score.DefaultWeights(),
		earlyExit:   DefaultEarlyExit,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.validator == nil {
		m.validator = pricecheck.New(pricecheck.DefaultConfig(), norm)
	}

	m.sources = append([]retailer.Source(nil), sources...)
	sortSources(m.sources, m.priority)

	return m
}

// Sources returns the retailer names in query order.
func (m *Matcher) Sources() []string {
	names := make([]string, 0, len(m.sources))
	for _, s := range m.sources {
		names = append(names, s.Name())
	}
	return names
}

// Profile normalizes text and extracts its attributes.
func (m *Matcher) Profile(text string) domain.Profile {
	normalized := m.norm.Normalize(text)
	return domain.Profile{
		Raw:        text,
		Normalized: normalized,
		Attributes: m.extractor.Extract(normalized),
	}
}

// queryProfile applies the caller's quantity hint on top of what the text
// says.
func (m *Matcher) queryProfile(q domain.Query) domain.Profile {
	p := m.Profile(q.Name)
	if q.Quantity > 0 {
		p.Attributes.PackQuantity = q.Quantity
	}
	return p
}

// Score scores one candidate against a query profile.
func (m *Matcher) Score(qp *domain.Profile, c *domain.Candidate) domain.ScoredCandidate {
	cp := m.Profile(c.Name)
	if c.Multipack {
		cp.Attributes.Multipack = true
	}

	sim := m.scorer.Score(qp, &cp)
	b := score.Confidence(sim.Score, score.SignalsFor(&qp.Attributes, &cp.Attributes, c), m.weights)

	return domain.ScoredCandidate{
		Candidate:  *c,
		Attributes: cp.Attributes,
		Score: domain.MatchScore{
			Similarity:  sim.Score,
			Base:        sim.Base,
			Adjustments: sim.Adjustments,
			Confidence:  b.Total,
			Level:       b.Level,
		},
	}
}

// MatchProduct runs the cascade for one query. It only fails when ctx is
// done; retailer failures become issues on the result and a query nothing
// matches yields a NOT_FOUND result.
func (m *Matcher) MatchProduct(ctx context.Context, q domain.Query) (*domain.MatchResult, error) {
	start := time.Now()
	log := m.log.With("query", q.Name)

	key := cache.Key(m.norm, q)
	if r, ok := m.cacheGet(ctx, log, key); ok {
		r.Query = q
		return r, nil
	}

	r, err := m.cascade(ctx, log, q)
	if err != nil {
		return nil, err
	}

	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	metrics.MatchesTotal.WithLabelValues(string(r.Score.Level), string(r.Strategy)).Inc()
	if r.Found {
		metrics.ConfidenceDistribution.Observe(r.Score.Confidence)
	}

	m.cachePut(ctx, log, key, r)
	return r, nil
}

func (m *Matcher) cascade(ctx context.Context, log *slog.Logger, q domain.Query) (*domain.MatchResult, error) {
	qp := m.queryProfile(q)

	var issues []string
	for i := range m.states {
		st := &m.states[i]
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("cascade canceled before %s: %w", st.Name, err)
		}

		text := st.Transform(&qp, m.extractor)
		if text == "" {
			issues = append(issues, skipIssue(st.Name))
			continue
		}

		metrics.CascadeStatesTotal.WithLabelValues(string(st.Name)).Inc()
		best, roundIssues := m.round(ctx, log, st, &qp, text)
		issues = append(issues, roundIssues...)

		winner := Aggregate(best, m.priority)
		if winner == nil {
			log.Debug("no candidate cleared threshold",
				"strategy", st.Name,
				"threshold", st.Threshold,
				"search", text,
			)
			continue
		}

		log.Debug("match found",
			"strategy", st.Name,
			"retailer", winner.Candidate.Retailer,
			"candidate", winner.Candidate.Name,
			"confidence", winner.Score.Confidence,
		)
		return m.result(q, &qp, st.Name, winner, best, issues), nil
	}

	return domain.NotFound(q, m.minThreshold(), issues...), nil
}

// round searches every source with text and keeps each retailer's best
// candidate clearing the state's threshold. A retailer reaching the early
// exit confidence ends the round.
func (m *Matcher) round(
	ctx context.Context,
	log *slog.Logger,
	st *State,
	qp *domain.Profile,
	text string,
) (map[string]*domain.ScoredCandidate, []string) {
	best := make(map[string]*domain.ScoredCandidate)
	var issues []string

	for _, src := range m.sources {
		name := src.Name()
		candidates, err := src.Search(ctx, text, st.MaxCandidates)
		if err != nil {
			log.Warn("retailer search failed",
				"retailer", name,
				"strategy", st.Name,
				"error", err,
			)
			issues = append(issues, fmt.Sprintf("%s: search failed: %v", name, err))
			continue
		}

		if len(candidates) > st.MaxCandidates {
			candidates = candidates[:st.MaxCandidates]
		}

		var top *domain.ScoredCandidate
		for i := range candidates {
			sc := m.Score(qp, &candidates[i])
			if sc.Score.Similarity < st.Threshold {
				continue
			}
			if top == nil || sc.Score.Confidence > top.Score.Confidence {
				top = &sc
			}
		}
		if top == nil {
			continue
		}
		best[name] = top

		if top.Score.Confidence >= m.earlyExit {
			break
		}
	}
	return best, issues
}

func (m *Matcher) result(
	q domain.Query,
	qp *domain.Profile,
	strategy domain.Strategy,
	winner *domain.ScoredCandidate,
	best map[string]*domain.ScoredCandidate,
	issues []string,
) *domain.MatchResult {
	cand := winner.Candidate

	validation := m.validator.Check(qp, &cand, &winner.Attributes)
	metrics.ValidationIssuesTotal.Add(float64(len(validation)))

	offers := make(map[string]domain.Offer, len(best))
	for name, sc := range best {
		offers[name] = domain.Offer{
			Name:       sc.Candidate.Name,
			Price:      sc.Candidate.Price,
			URL:        sc.Candidate.URL,
			Confidence: sc.Score.Confidence,
			Level:      sc.Score.Level,
		}
	}

	return &domain.MatchResult{
		Query:      q,
		Found:      true,
		Candidate:  &cand,
		Score:      winner.Score,
		Issues:     append(issues, validation...),
		MatchType:  matchType(strategy, &qp.Attributes, &winner.Attributes),
		Strategy:   strategy,
		ProductKey: extract.ProductKey(winner.Attributes),
		Retailers:  offers,
		MatchedAt:  time.Now().UTC(),
	}
}

func (m *Matcher) minThreshold() float64 {
	if len(m.states) == 0 {
		return 0
	}
	return m.states[len(m.states)-1].Threshold
}

func (m *Matcher) cacheGet(ctx context.Context, log *slog.Logger, key string) (*domain.MatchResult, bool) {
	if m.cache == nil || skipCacheRead(ctx) {
		return nil, false
	}

	r, ok, err := m.cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn("cache lookup failed", "error", err)
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, false
	case !ok:
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, false
	default:
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return r, true
	}
}

func (m *Matcher) cachePut(ctx context.Context, log *slog.Logger, key string, r *domain.MatchResult) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Put(ctx, key, r); err != nil {
		log.Warn("cache write failed", "error", err)
		metrics.CacheWriteFailuresTotal.Inc()
	}
}

// matchType records which signals agreed on the winner, or which fallback
// state produced it.
func matchType(strategy domain.Strategy, q, c *domain.Attributes) string {
	switch strategy {
	case domain.StrategyBrandOnly:
		return domain.MatchTypeBrandOnly
	case domain.StrategySimplifiedTerms:
		return domain.MatchTypeSimplified
	}

	brand := q.BrandKnown() && q.Brand == c.Brand
	weight := sameSize(q.Size, c.Size)
	switch {
	case brand && weight:
		return domain.MatchTypeBrandWeight
	case brand:
		return domain.MatchTypeBrand
	case weight:
		return domain.MatchTypeWeight
	default:
		return domain.MatchTypeFuzzy
	}
}

func sameSize(a, b *domain.Measure) bool {
	if a == nil || b == nil {
		return false
	}
	va, ua := a.Base()
	vb, ub := b.Base()
	return ua == ub && math.Abs(va-vb) < 1e-9
}

func skipIssue(s domain.Strategy) string {
	if s == domain.StrategyBrandOnly {
		return "skipped brand_only: no brand recognized"
	}
	return fmt.Sprintf("skipped %s: empty search text", s)
}

func sortSources(sources []retailer.Source, p Priority) {
	slices.SortStableFunc(sources, func(a, b retailer.Source) int {
		return p.Compare(a.Name(), b.Name())
	})
}
