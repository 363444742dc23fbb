package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/vitrine/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })
	return d
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

// stubUploader is an in-memory assetstore.Uploader for tests.
type stubUploader struct {
	mu       sync.Mutex
	uploaded [][]byte
	err      error
}

func (u *stubUploader) Upload(_ context.Context, _ string, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploaded = append(u.uploaded, data)
	return "https://cdn.example.com/asset.jpg", nil
}

var errProviderDown = errors.New("provider unavailable")
