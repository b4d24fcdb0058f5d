package destination

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/go-travel-recommendation/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-recommendation/internal/catalog"
)

var (
	// ErrCatalogNotLoaded is returned before the first successful load.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
	// ErrDestinationNotFound is returned for an unknown destination ID.
	ErrDestinationNotFound = errors.New("destination not found")
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the destination catalog operations.
type Service interface {
	Reload(ctx context.Context) (*catalog.Catalog, error)
	Catalog() (*catalog.Catalog, error)
	Query(ctx context.Context, params catalog.QueryParams) (catalog.QueryResult, error)
	Search(ctx context.Context, keyword string) (catalog.SearchResult, error)
	GetDestination(ctx context.Context, id uuid.UUID) (catalog.Destination, error)
	Tags(ctx context.Context) ([]catalog.TagCount, error)
}

// ServiceConfig tunes ServiceImpl. Zero values fall back to defaults.
type ServiceConfig struct {
	Locale               language.Tag
	ReloadTimeout        time.Duration
	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration
	Clock                func() time.Time
}

// ServiceImpl keeps the current catalog and answers queries against it.
type ServiceImpl struct {
	logger  *slog.Logger
	repo    DatasetRepository
	metrics *metrics.AppMetrics
	cache   *cache.Cache
	locale  language.Tag
	now     func() time.Time

	reloadTimeout time.Duration

	current atomic.Pointer[catalog.Catalog]
	reloads singleflight.Group
}

// NewDestinationService creates a service with no catalog installed. Call
// Reload before querying.
func NewDestinationService(repo DatasetRepository, logger *slog.Logger, m *metrics.AppMetrics, cfg ServiceConfig) *ServiceImpl {
	if cfg.ReloadTimeout <= 0 {
		cfg.ReloadTimeout = 30 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.CacheCleanupInterval <= 0 {
		cfg.CacheCleanupInterval = 10 * time.Minute
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Locale == language.Und {
		cfg.Locale = language.English
	}

	return &ServiceImpl{
		logger:  logger,
		repo:    repo,
		metrics: m,
		cache:   cache.New(cfg.CacheTTL, cfg.CacheCleanupInterval),
		locale:  cfg.Locale,
		now:     cfg.Clock,

		reloadTimeout: cfg.ReloadTimeout,
	}
}

// Reload fetches and normalizes the dataset and installs the result. On
// failure the previous catalog, if any, stays installed. Concurrent calls
// share one fetch, bounded by ReloadTimeout rather than by any caller's
// context.
func (s *ServiceImpl) Reload(ctx context.Context) (*catalog.Catalog, error) {
	ctx, span := otel.Tracer("DestinationService").Start(ctx, "Reload", trace.WithAttributes(
		attribute.String("dataset.source", s.repo.Source()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Reload"), slog.String("source", s.repo.Source()))
	l.DebugContext(ctx, "Loading dataset")

	// The fetch outlives any single caller so that cancelling one request
	// does not fail the others waiting on it.
	ch := s.reloads.DoChan("reload", func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.reloadTimeout)
		defer cancel()

		ds, err := s.repo.Fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c, err := catalog.New(ds, s.repo.Source(), catalog.WithLocale(s.locale))
		if err != nil {
			return nil, err
		}
		s.current.Store(c)
		s.cache.Flush()
		return c, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		l.WarnContext(ctx, "Reload abandoned by caller", slog.Any("error", ctx.Err()))
		span.RecordError(ctx.Err())
		span.SetStatus(codes.Error, "Reload abandoned by caller")
		return nil, fmt.Errorf("error loading dataset: %w", ctx.Err())
	}

	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		s.metrics.DatasetLoadErrorsTotal.Add(ctx, 1)
		l.ErrorContext(ctx, "Failed to load dataset", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load dataset")
		return nil, fmt.Errorf("error loading dataset: %w", err)
	}

	c := v.(*catalog.Catalog)
	if !shared {
		s.metrics.DatasetLoadsTotal.Add(ctx, 1)
		s.metrics.CatalogSize.Record(ctx, int64(c.Len()))
	}

	l.InfoContext(ctx, "Dataset loaded",
		slog.Int("destinations", c.Len()),
		slog.String("generation", c.Generation().String()),
		slog.Bool("shared", shared))
	span.SetAttributes(attribute.String("catalog.generation", c.Generation().String()))
	span.SetStatus(codes.Ok, "Dataset loaded")
	return c, nil
}

// Catalog returns the installed catalog.
func (s *ServiceImpl) Catalog() (*catalog.Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, ErrCatalogNotLoaded
	}
	return c, nil
}

// Query runs a grid query. Results are cached per catalog generation.
func (s *ServiceImpl) Query(ctx context.Context, params catalog.QueryParams) (catalog.QueryResult, error) {
	ctx, span := otel.Tracer("DestinationService").Start(ctx, "Query", trace.WithAttributes(
		attribute.String("query.keyword", params.Keyword),
		attribute.StringSlice("query.tags", params.ActiveTags),
	))
	defer span.End()

	start := time.Now()
	l := s.logger.With(slog.String("method", "Query"))

	c, err := s.Catalog()
	if err != nil {
		span.SetStatus(codes.Error, "Catalog not loaded")
		return catalog.QueryResult{}, err
	}

	cacheKey := queryCacheKey(c.Generation(), params)
	span.SetAttributes(attribute.String("cache.key", cacheKey))
	s.metrics.QueryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", "grid")))

	if cached, found := s.cache.Get(cacheKey); found {
		s.metrics.QueryCacheHitsTotal.Add(ctx, 1)
		l.DebugContext(ctx, "Serving query from cache", slog.String("cache_key", cacheKey))
		span.SetStatus(codes.Ok, "Query served from cache")
		return cached.(catalog.QueryResult).Clone(), nil
	}

	res := c.Query(params)
	s.cache.Set(cacheKey, res.Clone(), cache.DefaultExpiration)
	s.metrics.QueryDurationSeconds.Record(ctx, time.Since(start).Seconds())

	l.DebugContext(ctx, "Query completed",
		slog.Int("matched", res.Matched),
		slog.Int("shown", len(res.Shown)),
		slog.Int("placeholders", res.Placeholders))
	span.SetStatus(codes.Ok, "Query completed")
	return res, nil
}

// Search runs the category shortcut search using the service clock.
func (s *ServiceImpl) Search(ctx context.Context, keyword string) (catalog.SearchResult, error) {
	ctx, span := otel.Tracer("DestinationService").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("search.keyword", keyword),
	))
	defer span.End()

	start := time.Now()
	l := s.logger.With(slog.String("method", "Search"))

	c, err := s.Catalog()
	if err != nil {
		span.SetStatus(codes.Error, "Catalog not loaded")
		return catalog.SearchResult{}, err
	}

	s.metrics.QueryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", "search")))
	res := c.Search(keyword, s.now())
	s.metrics.QueryDurationSeconds.Record(ctx, time.Since(start).Seconds())

	l.DebugContext(ctx, "Search completed",
		slog.String("keyword", res.Keyword),
		slog.String("category", string(res.Category)),
		slog.Int("matched", res.Matched))
	span.SetStatus(codes.Ok, "Search completed")
	return res, nil
}

func (s *ServiceImpl) GetDestination(ctx context.Context, id uuid.UUID) (catalog.Destination, error) {
	_, span := otel.Tracer("DestinationService").Start(ctx, "GetDestination", trace.WithAttributes(
		attribute.String("destination.id", id.String()),
	))
	defer span.End()

	c, err := s.Catalog()
	if err != nil {
		span.SetStatus(codes.Error, "Catalog not loaded")
		return catalog.Destination{}, err
	}

	d, ok := c.Get(id)
	if !ok {
		span.SetStatus(codes.Error, "Destination not found")
		return catalog.Destination{}, fmt.Errorf("%w: %s", ErrDestinationNotFound, id)
	}
	span.SetStatus(codes.Ok, "Destination found")
	return d, nil
}

func (s *ServiceImpl) Tags(ctx context.Context) ([]catalog.TagCount, error) {
	_, span := otel.Tracer("DestinationService").Start(ctx, "Tags")
	defer span.End()

	c, err := s.Catalog()
	if err != nil {
		span.SetStatus(codes.Error, "Catalog not loaded")
		return nil, err
	}
	span.SetStatus(codes.Ok, "Tags listed")
	return c.Tags(), nil
}

// queryCacheKey ignores tag order and duplicates since the tag filter is a
// set intersection.
func queryCacheKey(generation uuid.UUID, params catalog.QueryParams) string {
	tags := slices.Clone(params.ActiveTags)
	slices.Sort(tags)
	tags = slices.Compact(tags)
	return fmt.Sprintf("query:%s:%s:%s", generation, strings.Join(tags, "\x1f"), strings.TrimSpace(params.Keyword))
}
