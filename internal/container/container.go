package container

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/FACorreiaa/go-travel-recommendation/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-recommendation/config"
	"github.com/FACorreiaa/go-travel-recommendation/internal/api/destination"
	"github.com/FACorreiaa/go-travel-recommendation/internal/catalog"
)

// Container holds all application dependencies
type Container struct {
	Config             *config.Config
	Logger             *slog.Logger
	DestinationService *destination.ServiceImpl
	DestinationHandler *destination.HandlerImpl
}

// NewContainer wires the dataset repository, the destination service and its
// handler. No dataset is loaded yet; call LoadCatalog.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	locale, err := language.Parse(cfg.Dataset.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset locale %q: %w", cfg.Dataset.Locale, err)
	}

	repo := destination.NewDatasetRepository(cfg.Dataset.Source, cfg.Dataset.FetchTimeout, logger)
	service := destination.NewDestinationService(repo, logger, metrics.InitAppMetrics(), destination.ServiceConfig{
		Locale:               locale,
		ReloadTimeout:        cfg.Dataset.FetchTimeout,
		CacheTTL:             cfg.Cache.TTL,
		CacheCleanupInterval: cfg.Cache.CleanupInterval,
	})
	handler := destination.NewHandlerImpl(service, logger)

	return &Container{
		Config:             cfg,
		Logger:             logger,
		DestinationService: service,
		DestinationHandler: handler,
	}, nil
}

// LoadCatalog performs the initial dataset load. A failure is logged and
// returned, and the service keeps answering 503 until a reload succeeds.
func (c *Container) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	cat, err := c.DestinationService.Reload(ctx)
	if err != nil {
		c.Logger.ErrorContext(ctx, "Initial dataset load failed", slog.Any("error", err))
		return nil, err
	}
	return cat, nil
}
