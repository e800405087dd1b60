package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps the order in a single line-delimited file, one user ID per
// line, front first. Writes go to a temp file in the same directory which is
// fsynced and renamed over the target, so a crash mid-write never corrupts
// the previous snapshot.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", f.path, err)
	}
	return parseSnapshot(string(raw))
}

func (f *FileStore) Save(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(id)
		sb.WriteByte('\n')
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".queue-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once the rename lands

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return syncDir(dir)
}

// parseSnapshot validates the line-delimited format. Only a trailing newline
// may leave an empty line; anything else means the file was truncated or
// hand-edited, and that must not silently become user state.
func parseSnapshot(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	lines := strings.Split(strings.TrimSuffix(raw, "\n"), "\n")
	ids := make([]string, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			return nil, fmt.Errorf("%w: empty entry at line %d", ErrMalformedSnapshot, i+1)
		}
		if strings.ContainsAny(line, " \t\r") {
			return nil, fmt.Errorf("%w: whitespace in entry at line %d", ErrMalformedSnapshot, i+1)
		}
		ids = append(ids, line)
	}
	return ids, nil
}

// syncDir flushes the directory entry so the rename itself survives a crash.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
