package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FS stores each blob as one file under a root directory.
type FS struct {
	root string
}

func NewFS(root string) (*FS, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create root %s: %w", root, err)
	}
	return &FS{root: root}, nil
}

func (f *FS) path(name string) string {
	return filepath.Join(f.root, name+".txt")
}

func (f *FS) Read(ctx context.Context, name string) (string, error) {
	b, err := os.ReadFile(f.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("blob: read %s: %w", name, err)
	}
	return string(b), nil
}

// Write replaces the whole file via a temp file and rename, so a reader
// never observes a half-written blob.
func (f *FS) Write(ctx context.Context, name, content string) error {
	tmp, err := os.CreateTemp(f.root, name+".*")
	if err != nil {
		return fmt.Errorf("blob: write %s: %w", name, err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("blob: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("blob: write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), f.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("blob: write %s: %w", name, err)
	}
	return nil
}

func (f *FS) Append(ctx context.Context, name, chunk string) error {
	return appendViaRewrite(ctx, f, name, chunk)
}
