package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"eatery_catalog/internal/shared"
	"eatery_catalog/internal/storage"
)

func TestOpen_Dir(t *testing.T) {
	cfg := shared.Default()
	cfg.CatalogDir = t.TempDir()

	src, closeFn, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, "dir:"+cfg.CatalogDir, src.String())
	require.NoError(t, closeFn())
}

func TestOpen_UnknownSource(t *testing.T) {
	cfg := shared.Default()
	cfg.CatalogSource = "ftp"

	_, _, err := storage.Open(context.Background(), cfg)
	require.Error(t, err)
}
