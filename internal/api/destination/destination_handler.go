package destination

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-recommendation/internal/api"
	"github.com/FACorreiaa/go-travel-recommendation/internal/catalog"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListDestinations(w http.ResponseWriter, r *http.Request)
	QueryDestinations(w http.ResponseWriter, r *http.Request)
	GetDestination(w http.ResponseWriter, r *http.Request)
	SearchDestinations(w http.ResponseWriter, r *http.Request)
	GetTags(w http.ResponseWriter, r *http.Request)
	GetCatalog(w http.ResponseWriter, r *http.Request)
	ReloadCatalog(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

// CatalogSummary describes the installed catalog.
type CatalogSummary struct {
	Generation uuid.UUID `json:"generation"`
	Source     string    `json:"source"`
	Locale     string    `json:"locale"`
	LoadedAt   time.Time `json:"loadedAt"`
	Size       int       `json:"size"`
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

// ListDestinations godoc
// @Summary      Query the destination grid
// @Description  Filters destinations by tag and keyword and returns at most 12, with the number of empty grid slots
// @Tags         Destinations
// @Produce      json
// @Param        keyword query string false "Case-insensitive substring of a tag, country or name"
// @Param        tag     query []string false "Active tag filter, repeatable" collectionFormat(multi)
// @Param        tags    query string false "Comma-separated active tag filters"
// @Success      200 {object} catalog.QueryResult
// @Failure      503 {object} api.Response "Catalog not loaded"
// @Router       /destinations [get]
func (h *HandlerImpl) ListDestinations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "ListDestinations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/destinations"),
	))
	defer span.End()

	l := h.logger.With(slog.String("HandlerImpl", "ListDestinations"))

	q := r.URL.Query()
	params := catalog.QueryParams{
		Keyword:    q.Get("keyword"),
		ActiveTags: parseTags(q["tag"], q.Get("tags")),
	}
	l.DebugContext(ctx, "Querying destinations",
		slog.String("keyword", params.Keyword),
		slog.Any("tags", params.ActiveTags))

	res, err := h.service.Query(ctx, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query destinations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to query destinations")
		writeServiceError(w, r, err)
		return
	}

	span.SetStatus(codes.Ok, "Destinations queried")
	api.WriteJSONResponse(w, r, http.StatusOK, res)
}

// QueryDestinations godoc
// @Summary      Query the destination grid with a JSON body
// @Tags         Destinations
// @Accept       json
// @Produce      json
// @Param        query body catalog.QueryParams true "Keyword and active tags"
// @Success      200 {object} catalog.QueryResult
// @Failure      400 {object} api.Response "Invalid request"
// @Failure      503 {object} api.Response "Catalog not loaded"
// @Router       /destinations/query [post]
func (h *HandlerImpl) QueryDestinations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "QueryDestinations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/destinations/query"),
	))
	defer span.End()

	l := h.logger.With(slog.String("HandlerImpl", "QueryDestinations"))

	var params catalog.QueryParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.service.Query(ctx, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query destinations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to query destinations")
		writeServiceError(w, r, err)
		return
	}

	span.SetStatus(codes.Ok, "Destinations queried")
	api.WriteJSONResponse(w, r, http.StatusOK, res)
}

// GetDestination godoc
// @Summary      Get one destination
// @Tags         Destinations
// @Produce      json
// @Param        destinationID path string true "Destination ID"
// @Success      200 {object} catalog.Destination
// @Failure      400 {object} api.Response "Invalid destination ID"
// @Failure      404 {object} api.Response "Destination not found"
// @Router       /destinations/{destinationID} [get]
func (h *HandlerImpl) GetDestination(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "GetDestination", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/destinations/{destinationID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("HandlerImpl", "GetDestination"))

	id, err := uuid.Parse(chi.URLParam(r, "destinationID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid destination ID format", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid destination ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid destination ID format")
		return
	}

	d, err := h.service.GetDestination(ctx, id)
	if err != nil {
		l.WarnContext(ctx, "Failed to get destination", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get destination")
		writeServiceError(w, r, err)
		return
	}

	span.SetStatus(codes.Ok, "Destination retrieved")
	api.WriteJSONResponse(w, r, http.StatusOK, d)
}

// SearchDestinations godoc
// @Summary      Shortcut search
// @Description  Category keywords (beach, temple, country, city and plurals) return that whole category. Other keywords match by substring. At most 2 results; cities carry the local time of their country.
// @Tags         Search
// @Produce      json
// @Param        q query string true "Keyword"
// @Success      200 {object} catalog.SearchResult
// @Failure      503 {object} api.Response "Catalog not loaded"
// @Router       /search [get]
func (h *HandlerImpl) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "SearchDestinations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/search"),
	))
	defer span.End()

	l := h.logger.With(slog.String("HandlerImpl", "SearchDestinations"))

	res, err := h.service.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		l.ErrorContext(ctx, "Failed to search destinations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to search destinations")
		writeServiceError(w, r, err)
		return
	}

	if res.Matched == 0 {
		l.InfoContext(ctx, "No results", slog.String("keyword", res.Keyword))
	}
	span.SetStatus(codes.Ok, "Search completed")
	api.WriteJSONResponse(w, r, http.StatusOK, res)
}

// GetTags godoc
// @Summary      List tags
// @Description  Every distinct tag with the number of destinations carrying it
// @Tags         Destinations
// @Produce      json
// @Success      200 {array} catalog.TagCount
// @Failure      503 {object} api.Response "Catalog not loaded"
// @Router       /tags [get]
func (h *HandlerImpl) GetTags(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "GetTags", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/tags"),
	))
	defer span.End()

	tags, err := h.service.Tags(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list tags", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list tags")
		writeServiceError(w, r, err)
		return
	}

	span.SetStatus(codes.Ok, "Tags listed")
	api.WriteJSONResponse(w, r, http.StatusOK, tags)
}

// GetCatalog godoc
// @Summary      Describe the installed catalog
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} CatalogSummary
// @Failure      503 {object} api.Response "Catalog not loaded"
// @Router       /catalog [get]
func (h *HandlerImpl) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "GetCatalog", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/catalog"),
	))
	defer span.End()

	l := h.logger.With(slog.String("HandlerImpl", "GetCatalog"))

	c, err := h.service.Catalog()
	if err != nil {
		l.WarnContext(ctx, "Catalog unavailable", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Catalog unavailable")
		writeServiceError(w, r, err)
		return
	}

	l.DebugContext(ctx, "Describing catalog", slog.String("generation", c.Generation().String()))
	span.SetStatus(codes.Ok, "Catalog described")
	api.WriteJSONResponse(w, r, http.StatusOK, summarize(c))
}

// ReloadCatalog godoc
// @Summary      Reload the dataset
// @Description  Fetches and normalizes the dataset again. On failure the previous catalog stays installed.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} CatalogSummary
// @Failure      422 {object} api.Response "Malformed dataset"
// @Failure      502 {object} api.Response "Dataset could not be fetched"
// @Router       /catalog/reload [post]
func (h *HandlerImpl) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "ReloadCatalog", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/catalog/reload"),
	))
	defer span.End()

	c, err := h.service.Reload(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to reload catalog")
		writeServiceError(w, r, err)
		return
	}

	span.SetStatus(codes.Ok, "Catalog reloaded")
	api.WriteJSONResponse(w, r, http.StatusOK, summarize(c))
}

func summarize(c *catalog.Catalog) CatalogSummary {
	return CatalogSummary{
		Generation: c.Generation(),
		Source:     c.Source(),
		Locale:     c.Locale().String(),
		LoadedAt:   c.LoadedAt(),
		Size:       c.Len(),
	}
}

// parseTags merges repeated tag params with a comma-separated list.
func parseTags(repeated []string, csv string) []string {
	var out []string
	for _, t := range repeated {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrCatalogNotLoaded):
		api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Destination catalog is not loaded")
	case errors.Is(err, ErrDestinationNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "Destination not found")
	case errors.Is(err, catalog.ErrMalformedInput):
		api.ErrorResponse(w, r, http.StatusUnprocessableEntity, "Dataset is malformed")
	case errors.Is(err, catalog.ErrFetchFailure):
		api.ErrorResponse(w, r, http.StatusBadGateway, "Dataset could not be fetched")
	default:
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
