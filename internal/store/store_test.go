package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"nobaidu/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "nobaidu.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveAndLoadRun(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	ctx := context.Background()
	started := time.Now().UTC().Truncate(time.Second)

	run := &store.Run{
		ID:        uuid.NewString(),
		Query:     "量子计算",
		Mode:      "plus",
		StartedAt: started,
		Findings: []store.Finding{
			{URL: "https://example.com/a", Text: "第一段保留下来的内容", LinkIndexed: true},
			{URL: "https://example.com/b", Text: "第二段保留下来的内容", LinkIndexed: false},
		},
	}

	require.NoError(t, s.SaveRun(ctx, run))

	got, err := s.LoadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Query, got.Query)
	assert.Equal(t, run.Mode, got.Mode)
	assert.True(t, started.Equal(got.StartedAt), "started_at %v != %v", got.StartedAt, started)
	assert.Equal(t, run.Findings, got.Findings)
}

func TestStore_RunWithoutFindings(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	ctx := context.Background()
	run := &store.Run{ID: uuid.NewString(), Query: "go", Mode: "diff", StartedAt: time.Now()}

	require.NoError(t, s.SaveRun(ctx, run))

	got, err := s.LoadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Findings)
}

func TestStore_DuplicateRunIDIsRejected(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	ctx := context.Background()
	run := &store.Run{ID: "fixed", Query: "go", Mode: "diff", StartedAt: time.Now()}

	require.NoError(t, s.SaveRun(ctx, run))
	assert.Error(t, s.SaveRun(ctx, run))
}

func TestStore_LoadMissingRun(t *testing.T) {
	t.Parallel()

	s := openStore(t)

	_, err := s.LoadRun(context.Background(), "missing")

	assert.ErrorIs(t, err, sql.ErrNoRows)
}
