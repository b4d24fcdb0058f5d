package destination

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/FACorreiaa/go-travel-recommendation/internal/catalog"
)

const maxDatasetBytes = 10 << 20

var (
	_ DatasetRepository = (*FileDatasetRepository)(nil)
	_ DatasetRepository = (*HTTPDatasetRepository)(nil)
)

// DatasetRepository retrieves the raw travel dataset.
type DatasetRepository interface {
	Fetch(ctx context.Context) (catalog.Dataset, error)
	Source() string
}

// NewDatasetRepository picks an HTTP repository for http(s) sources and a
// file repository for everything else.
func NewDatasetRepository(source string, timeout time.Duration, logger *slog.Logger) DatasetRepository {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPDatasetRepository(source, &http.Client{Timeout: timeout}, logger)
	}
	return NewFileDatasetRepository(source, logger)
}

type FileDatasetRepository struct {
	logger *slog.Logger
	path   string
}

func NewFileDatasetRepository(path string, logger *slog.Logger) *FileDatasetRepository {
	return &FileDatasetRepository{
		logger: logger,
		path:   path,
	}
}

func (r *FileDatasetRepository) Source() string { return r.path }

func (r *FileDatasetRepository) Fetch(ctx context.Context) (catalog.Dataset, error) {
	ctx, span := otel.Tracer("DatasetRepository").Start(ctx, "FetchFile", trace.WithAttributes(
		attribute.String("dataset.source", r.path),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "FetchFile"), slog.String("path", r.path))

	if err := ctx.Err(); err != nil {
		return catalog.Dataset{}, fmt.Errorf("%w: %w", catalog.ErrFetchFailure, err)
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		l.ErrorContext(ctx, "Failed to read dataset file", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read dataset file")
		return catalog.Dataset{}, fmt.Errorf("%w: reading %s: %w", catalog.ErrFetchFailure, r.path, err)
	}

	ds, err := decodeDataset(raw, formatFromExt(filepath.Ext(r.path)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode dataset")
		return catalog.Dataset{}, err
	}

	l.DebugContext(ctx, "Dataset file read", slog.Int("bytes", len(raw)))
	span.SetStatus(codes.Ok, "Dataset read")
	return ds, nil
}

type HTTPDatasetRepository struct {
	logger   *slog.Logger
	client   *http.Client
	url      string
	maxBytes int64
}

func NewHTTPDatasetRepository(url string, client *http.Client, logger *slog.Logger) *HTTPDatasetRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPDatasetRepository{
		logger:   logger,
		client:   client,
		url:      url,
		maxBytes: maxDatasetBytes,
	}
}

func (r *HTTPDatasetRepository) Source() string { return r.url }

func (r *HTTPDatasetRepository) Fetch(ctx context.Context) (catalog.Dataset, error) {
	ctx, span := otel.Tracer("DatasetRepository").Start(ctx, "FetchHTTP", trace.WithAttributes(
		attribute.String("dataset.source", r.url),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "FetchHTTP"), slog.String("url", r.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("%w: building request: %w", catalog.ErrFetchFailure, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := r.client.Do(req)
	if err != nil {
		l.ErrorContext(ctx, "Dataset request failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Dataset request failed")
		return catalog.Dataset{}, fmt.Errorf("%w: %w", catalog.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		l.ErrorContext(ctx, "Dataset request returned non-success status", slog.Int("status", resp.StatusCode))
		span.SetStatus(codes.Error, "Unexpected status")
		return catalog.Dataset{}, fmt.Errorf("%w: unexpected status %d from %s", catalog.ErrFetchFailure, resp.StatusCode, r.url)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read body")
		return catalog.Dataset{}, fmt.Errorf("%w: reading body: %w", catalog.ErrFetchFailure, err)
	}
	if int64(len(raw)) > r.maxBytes {
		l.ErrorContext(ctx, "Dataset exceeds size limit", slog.Int64("limit_bytes", r.maxBytes))
		span.SetStatus(codes.Error, "Dataset too large")
		return catalog.Dataset{}, fmt.Errorf("%w: dataset from %s exceeds %d bytes", catalog.ErrFetchFailure, r.url, r.maxBytes)
	}

	format := formatFromContentType(resp.Header.Get("Content-Type"))
	if format == formatUnknown {
		format = formatFromURL(r.url)
	}

	ds, err := decodeDataset(raw, format)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode dataset")
		return catalog.Dataset{}, err
	}

	l.DebugContext(ctx, "Dataset downloaded", slog.Int("bytes", len(raw)))
	span.SetStatus(codes.Ok, "Dataset downloaded")
	return ds, nil
}

type datasetFormat int

const (
	formatUnknown datasetFormat = iota
	formatJSON
	formatYAML
)

func formatFromExt(ext string) datasetFormat {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return formatYAML
	case ".json":
		return formatJSON
	}
	return formatUnknown
}

func formatFromURL(raw string) datasetFormat {
	u, err := url.Parse(raw)
	if err != nil {
		return formatUnknown
	}
	return formatFromExt(path.Ext(u.Path))
}

func formatFromContentType(ct string) datasetFormat {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return formatUnknown
	}
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return formatJSON
	case strings.Contains(mediaType, "yaml"):
		return formatYAML
	}
	return formatUnknown
}

// decodeDataset parses raw as JSON unless format says YAML. Shape errors are
// reported as catalog.ErrMalformedInput.
func decodeDataset(raw []byte, format datasetFormat) (catalog.Dataset, error) {
	var ds catalog.Dataset
	var err error
	if format == formatYAML {
		err = yaml.Unmarshal(raw, &ds)
	} else {
		err = json.Unmarshal(raw, &ds)
	}
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("%w: %w", catalog.ErrMalformedInput, err)
	}
	return ds, nil
}
