package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/agentic-research/a11yname/internal/linter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result() *linter.Result {
	return &linter.Result{
		Files: []string{"a.tsx", "b.tsx"},
		Diagnostics: []linter.Diagnostic{
			{File: "b.tsx", Rule: "image-needs-alt", MessageID: "missingAlt", Message: "Image needs alt.", Line: 9, Column: 2},
			{File: "a.tsx", Rule: "avatar-needs-name", MessageID: "missingAriaLabel", Message: "Avatar needs a name.", Line: 0, Column: 0},
		},
	}
}

func TestRecord(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	started := time.Unix(1700000000, 0)

	id, err := Record(dbPath, result(), started, started.Add(time.Second))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	r, err := OpenReader(dbPath)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	runs, err := r.Runs(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, 2, runs[0].Files)
	assert.Equal(t, 2, runs[0].Problems)
	assert.True(t, runs[0].StartedAt.Equal(started))
	assert.Equal(t, time.Second, runs[0].FinishedAt.Sub(runs[0].StartedAt))

	rows, err := r.Diagnostics(t.Context(), id)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{File: "a.tsx", Line: 1, Column: 1, Rule: "avatar-needs-name", MessageID: "missingAriaLabel", Message: "Avatar needs a name."}, rows[0])
	assert.Equal(t, 10, rows[1].Line)
}

func TestRecord_AppendsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	base := time.Unix(1700000000, 0)

	first, err := Record(dbPath, result(), base, base)
	require.NoError(t, err)
	second, err := Record(dbPath, &linter.Result{Files: []string{"a.tsx"}}, base.Add(time.Hour), base.Add(time.Hour))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	r, err := OpenReader(dbPath)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	runs, err := r.Runs(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, second, runs[0].ID, "newest first")

	rows, err := r.Diagnostics(t.Context(), second)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = r.Diagnostics(t.Context(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestSQLiteWriter_Batches(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	w, err := NewSQLiteWriter(dbPath)
	require.NoError(t, err)
	w.batchSize = 3

	id, err := w.BeginRun(time.Now())
	require.NoError(t, err)
	for i := range 10 {
		require.NoError(t, w.Add(id, linter.Diagnostic{File: "a.tsx", Rule: "r", MessageID: "m", Message: "x", Line: uint32(i)}))
	}
	require.NoError(t, w.FinishRun(id, time.Now(), 1, 10))
	require.NoError(t, w.Close())

	r, err := OpenReader(dbPath)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	rows, err := r.Diagnostics(t.Context(), id)
	require.NoError(t, err)
	assert.Len(t, rows, 10)
}
