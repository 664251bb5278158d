package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalDisk is the local-filesystem driver.
type LocalDisk struct {
	root    string // absolute root directory
	baseURL string // public URL prefix for URL()
}

// NewLocalDisk stores files under root. A relative root is resolved against
// the working directory.
func NewLocalDisk(root, baseURL string) (*LocalDisk, error) {
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("storage/local: resolve root: %w", err)
		}
		root = abs
	}
	return &LocalDisk{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (d *LocalDisk) Name() string { return "local" }

// abs maps a slash path into root. Paths that would escape root are rejected.
func (d *LocalDisk) abs(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" {
		return "", fmt.Errorf("storage/local: empty path")
	}
	return filepath.Join(d.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (d *LocalDisk) Put(ctx context.Context, p string, content []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := d.abs(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}

	// Write to a sibling temp file and rename so readers never see a partial card.
	tmp, err := os.CreateTemp(filepath.Dir(full), ".put-*")
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", p, err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("storage/local: write %s: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storage/local: write %s: %w", p, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storage/local: rename %s: %w", p, err)
	}
	return nil
}

func (d *LocalDisk) Get(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := d.abs(p)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage/local: read %s: %w", p, err)
	}
	return b, nil
}

func (d *LocalDisk) Exists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	full, err := d.abs(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	}
	return false, fmt.Errorf("storage/local: stat %s: %w", p, err)
}

func (d *LocalDisk) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := d.abs(p)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage/local: delete %s: %w", p, err)
	}
	return nil
}

func (d *LocalDisk) URL(p string) string {
	return d.baseURL + "/" + strings.TrimLeft(p, "/")
}
