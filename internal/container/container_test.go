package container

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-recommendation/config"
	"github.com/FACorreiaa/go-travel-recommendation/internal/catalog"
)

func TestNewContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "travel.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"countries":[],"temples":[{"name":"Borobudur"}],"beaches":[]}`), 0o600))

	var cfg config.Config
	cfg.Dataset.Source = path
	cfg.Dataset.Locale = "en"

	c, err := NewContainer(&cfg, slog.Default())
	require.NoError(t, err)

	cat, err := c.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())
}

func TestNewContainerLoadFailure(t *testing.T) {
	var cfg config.Config
	cfg.Dataset.Source = filepath.Join(t.TempDir(), "missing.json")
	cfg.Dataset.Locale = "en"

	c, err := NewContainer(&cfg, slog.Default())
	require.NoError(t, err)

	_, err = c.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, catalog.ErrFetchFailure)
}

func TestNewContainerBadLocale(t *testing.T) {
	var cfg config.Config
	cfg.Dataset.Source = "travel.json"
	cfg.Dataset.Locale = "not a locale!"

	_, err := NewContainer(&cfg, slog.Default())
	assert.Error(t, err)
}
