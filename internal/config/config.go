// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/grocery-price-tracker/internal/engine"
	"github.com/donaldgifford/grocery-price-tracker/pkg/extract"
	"github.com/donaldgifford/grocery-price-tracker/pkg/normalize"
	"github.com/donaldgifford/grocery-price-tracker/pkg/pricecheck"
	score "github.com/donaldgifford/grocery-price-tracker/pkg/scorer"
	"github.com/donaldgifford/grocery-price-tracker/pkg/similarity"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Cache backends.
const (
	CacheFile     = "file"
	CachePostgres = "postgres"
	CacheNone     = "none"
)

// Retailer source kinds.
const (
	SourceHTTP   = "http"
	SourceStatic = "static"
)

// DefaultPriority is the retailer tie-break order used when none is configured.
var DefaultPriority = []string{"tesco", "morrisons", "ocado", "sainsburys", "asda", "wilko", "coop"}

// Config is the top-level application configuration.
type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Database   DatabaseConfig    `yaml:"database"`
	Cache      CacheConfig       `yaml:"cache"`
	Retailers  []RetailerConfig  `yaml:"retailers"`
	Matching   MatchingConfig    `yaml:"matching"`
	Validation pricecheck.Config `yaml:"validation"`
	Schedule   ScheduleConfig    `yaml:"schedule"`
	Output     OutputConfig      `yaml:"output"`
	Logging    LoggingConfig     `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings. The database is
// optional; an empty host disables match history.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// Enabled reports whether a database is configured.
func (d *DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s pool_max_conns=%d",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode, d.PoolSize,
	)
}

// CacheConfig selects the match result cache.
type CacheConfig struct {
	Backend string        `yaml:"backend"` // file, postgres, none
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// RetailerConfig describes one candidate source.
type RetailerConfig struct {
	Name        string          `yaml:"name"`
	Kind        string          `yaml:"kind"` // http, static
	BaseURL     string          `yaml:"base_url"`
	FixtureFile string          `yaml:"fixture_file"`
	Timeout     time.Duration   `yaml:"timeout"`
	UserAgent   string          `yaml:"user_agent"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines per-retailer request pacing.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// StrategyConfig is one cascade state.
type StrategyConfig struct {
	Name          domain.Strategy `yaml:"name"`
	Threshold     float64         `yaml:"threshold"`
	MaxCandidates int             `yaml:"max_candidates"`
}

// MatchingConfig defines the scorer, cascade and rule tables.
type MatchingConfig struct {
	Scorer       string               `yaml:"scorer"` // token, vector
	CorpusFile   string               `yaml:"corpus_file"`
	EarlyExit    float64              `yaml:"early_exit"`
	Concurrency  int                  `yaml:"concurrency"`
	Priority     []string             `yaml:"priority"`
	Weights      score.Weights        `yaml:"weights"`
	Strategies   []StrategyConfig     `yaml:"strategies"`
	NoisePhrases []string             `yaml:"noise_phrases"`
	Brands       []extract.BrandRule  `yaml:"brands"`
	ExtraBrands  []extract.BrandRule  `yaml:"extra_brands"`
	Sizes        []extract.WeightRule `yaml:"sizes"`
}

// Rules returns the extraction table: configured brands (or the defaults)
// plus any extra brands, and configured size rules (or the defaults).
func (m *MatchingConfig) Rules() extract.Rules {
	r := extract.DefaultRules()
	if len(m.Brands) > 0 {
		r.Brands = slices.Clone(m.Brands)
	}
	r.Brands = append(r.Brands, m.ExtraBrands...)
	if len(m.Sizes) > 0 {
		r.Weights = slices.Clone(m.Sizes)
	}
	return r
}

// ScheduleConfig defines the periodic re-match of a products file.
type ScheduleConfig struct {
	Enabled         bool          `yaml:"enabled"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	ProductsFile    string        `yaml:"products_file"`
	OutputFile      string        `yaml:"output_file"`
}

// OutputConfig defines where batch results go.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a validated configuration with every default applied and
// the given retailers.
func Default(retailers ...RetailerConfig) *Config {
	cfg := &Config{Retailers: retailers}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyCacheDefaults(&cfg.Cache)
	for i := range cfg.Retailers {
		applyRetailerDefaults(&cfg.Retailers[i])
	}
	applyMatchingDefaults(&cfg.Matching)
	applyValidationDefaults(&cfg.Validation)
	applyScheduleDefaults(&cfg.Schedule)
	applyOutputDefaults(&cfg.Output)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 120 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyCacheDefaults(c *CacheConfig) {
	if c.Backend == "" {
		c.Backend = CacheFile
	}
	if c.Dir == "" {
		c.Dir = ".cache/matches"
	}
	if c.TTL == 0 {
		c.TTL = 24 * time.Hour
	}
}

func applyRetailerDefaults(r *RetailerConfig) {
	if r.Kind == "" {
		r.Kind = SourceHTTP
	}
	if r.Timeout == 0 {
		r.Timeout = 30 * time.Second
	}
	if r.UserAgent == "" {
		r.UserAgent = "grocery-price-tracker/1.0"
	}
	if r.RateLimit.PerSecond == 0 {
		r.RateLimit.PerSecond = 1.0
	}
	if r.RateLimit.Burst == 0 {
		r.RateLimit.Burst = 2
	}
	if r.RateLimit.DailyLimit == 0 {
		r.RateLimit.DailyLimit = 2000
	}
}

// DefaultStrategies returns the engine's default cascade states in
// escalation order, as configurable thresholds and limits.
func DefaultStrategies() []StrategyConfig {
	states := engine.DefaultStates()
	out := make([]StrategyConfig, len(states))
	for i, st := range states {
		out[i] = StrategyConfig{Name: st.Name, Threshold: st.Threshold, MaxCandidates: st.MaxCandidates}
	}
	return out
}

func applyMatchingDefaults(m *MatchingConfig) {
	if m.Scorer == "" {
		m.Scorer = similarity.KindToken
	}
	if m.EarlyExit == 0 {
		m.EarlyExit = 0.85
	}
	if m.Concurrency == 0 {
		m.Concurrency = 4
	}
	if len(m.Priority) == 0 {
		m.Priority = slices.Clone(DefaultPriority)
	}
	if m.Weights == (score.Weights{}) {
		m.Weights = score.DefaultWeights()
	}
	if len(m.Strategies) == 0 {
		m.Strategies = DefaultStrategies()
	}
	for i := range m.Strategies {
		if m.Strategies[i].MaxCandidates == 0 {
			m.Strategies[i].MaxCandidates = 8
		}
	}
}

func applyValidationDefaults(v *pricecheck.Config) {
	def := pricecheck.DefaultConfig()
	if len(v.Categories) == 0 {
		v.Categories = def.Categories
	}
	if v.UnitPriceTolerance == 0 {
		v.UnitPriceTolerance = def.UnitPriceTolerance
	}
	if v.MinSize == 0 {
		v.MinSize = def.MinSize
	}
	if v.MaxSize == 0 {
		v.MaxSize = def.MaxSize
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RefreshInterval == 0 {
		s.RefreshInterval = 24 * time.Hour
	}
}

func applyOutputDefaults(o *OutputConfig) {
	if o.Dir == "" {
		o.Dir = "output"
	}
	if o.SQLitePath == "" {
		o.SQLitePath = "output/results.db"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Enabled() {
		if cfg.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required"))
		}
	}

	switch cfg.Cache.Backend {
	case CacheFile, CacheNone:
	case CachePostgres:
		if !cfg.Database.Enabled() {
			errs = append(errs, fmt.Errorf("database.host is required when cache.backend is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"cache.backend must be one of: file, postgres, none (got %q)", cfg.Cache.Backend))
	}

	errs = append(errs, validateRetailers(cfg.Retailers)...)
	errs = append(errs, validateMatching(&cfg.Matching)...)

	if err := cfg.Validation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("validation: %w", err))
	}

	if cfg.Schedule.Enabled && cfg.Schedule.ProductsFile == "" {
		errs = append(errs, fmt.Errorf("schedule.products_file is required when schedule is enabled"))
	}

	return errors.Join(errs...)
}

func validateRetailers(rs []RetailerConfig) []error {
	var errs []error

	if len(rs) == 0 {
		errs = append(errs, fmt.Errorf("at least one retailer is required"))
	}

	seen := make(map[string]bool, len(rs))
	for i, r := range rs {
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("retailers[%d].name is required", i))
		} else if seen[r.Name] {
			errs = append(errs, fmt.Errorf("retailers[%d].name %q is duplicated", i, r.Name))
		}
		seen[r.Name] = true

		switch r.Kind {
		case SourceHTTP:
			if r.BaseURL == "" {
				errs = append(errs, fmt.Errorf("retailers[%d].base_url is required when kind is http", i))
			}
		case SourceStatic:
			if r.FixtureFile == "" {
				errs = append(errs, fmt.Errorf("retailers[%d].fixture_file is required when kind is static", i))
			}
		default:
			errs = append(errs, fmt.Errorf(
				"retailers[%d].kind must be one of: http, static (got %q)", i, r.Kind))
		}
	}

	return errs
}

var knownStrategies = []domain.Strategy{
	domain.StrategyStandard,
	domain.StrategyLoweredThreshold,
	domain.StrategySimplifiedTerms,
	domain.StrategyBrandOnly,
}

func validateMatching(m *MatchingConfig) []error {
	var errs []error

	switch m.Scorer {
	case similarity.KindToken, similarity.KindVector:
	default:
		errs = append(errs, fmt.Errorf(
			"matching.scorer must be one of: token, vector (got %q)", m.Scorer))
	}

	if m.EarlyExit <= 0 || m.EarlyExit > 1 {
		errs = append(errs, fmt.Errorf("matching.early_exit must be in (0, 1], got %.2f", m.EarlyExit))
	}
	if m.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("matching.concurrency must be >= 1, got %d", m.Concurrency))
	}

	w := m.Weights
	if w.Similarity < 0 || w.Availability < 0 || w.Brand < 0 || w.Quantity < 0 {
		errs = append(errs, fmt.Errorf("matching.weights must be non-negative"))
	}

	prev := 1.0
	for i, s := range m.Strategies {
		if !slices.Contains(knownStrategies, s.Name) {
			errs = append(errs, fmt.Errorf("matching.strategies[%d].name %q is not a known strategy", i, s.Name))
		}
		if s.Threshold <= 0 || s.Threshold > 1 {
			errs = append(errs, fmt.Errorf("matching.strategies[%d].threshold must be in (0, 1], got %.2f", i, s.Threshold))
		}
		if i > 0 && s.Threshold >= prev {
			errs = append(errs, fmt.Errorf(
				"matching.strategies[%d].threshold %.2f must be lower than the previous state's %.2f",
				i, s.Threshold, prev))
		}
		if s.MaxCandidates < 1 {
			errs = append(errs, fmt.Errorf("matching.strategies[%d].max_candidates must be >= 1", i))
		}
		prev = s.Threshold
	}

	if _, err := normalize.New(m.NoisePhrases); err != nil {
		errs = append(errs, fmt.Errorf("matching.noise_phrases: %w", err))
	}
	if err := extract.ValidateRules(m.Rules()); err != nil {
		errs = append(errs, fmt.Errorf("matching rules: %w", err))
	}

	return errs
}
