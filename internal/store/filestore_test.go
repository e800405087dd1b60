package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(filepath.Join(dir, "queue.txt")), dir
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs, _ := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, []string{"UAAA", "UBBB", "UCCC"}))
	got, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"UAAA", "UBBB", "UCCC"}, got)

	// Empty queue round-trips too.
	require.NoError(t, fs.Save(ctx, nil))
	got, err = fs.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadMissingFileMeansEmptyQueue(t *testing.T) {
	fs, _ := newTestFileStore(t)

	got, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadRejectsMalformedSnapshot(t *testing.T) {
	cases := map[string]string{
		"blank interior line": "UAAA\n\nUBBB\n",
		"whitespace in entry": "UAAA extra\n",
		"carriage return":     "UAAA\r\n",
		"lone newline":        "\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			fs, _ := newTestFileStore(t)
			require.NoError(t, os.WriteFile(fs.path, []byte(content), 0o644))

			_, err := fs.Load(context.Background())
			assert.ErrorIs(t, err, ErrMalformedSnapshot)
		})
	}
}

func TestSaveReplacesAtomically(t *testing.T) {
	fs, dir := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, []string{"UAAA"}))
	require.NoError(t, fs.Save(ctx, []string{"UBBB", "UCCC"}))

	got, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"UBBB", "UCCC"}, got)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "queue.txt", entries[0].Name())
}

func TestSaveRespectsCanceledContext(t *testing.T) {
	fs, _ := newTestFileStore(t)
	ctx := context.Background()
	require.NoError(t, fs.Save(ctx, []string{"UAAA"}))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, fs.Save(canceled, []string{"UBBB"}))

	// The previous snapshot is untouched.
	got, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"UAAA"}, got)
}
