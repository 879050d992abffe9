// Package files adapts an afero filesystem to the domain's file content and
// file listing capabilities.
package files

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/afero"

	"filetags/internal/domain"
)

const filePerm = 0o644

type store struct {
	fs afero.Fs
}

// NewStore returns a FileStore that reads and writes files on fs. Names are
// slash-separated paths relative to the root of fs.
func NewStore(fs afero.Fs) domain.FileStore {
	return &store{fs: fs}
}

// NewRootedFs returns an OS-backed filesystem confined to root.
func NewRootedFs(root string) afero.Fs {
	return afero.NewBasePathFs(afero.NewOsFs(), root)
}

func (s *store) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := cleanPath(name)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *store) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := cleanPath(name)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, p, content, filePerm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// cleanPath normalizes a tracked file name and rejects names that leave the
// root.
func cleanPath(name string) (string, error) {
	p := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if p == "." || path.IsAbs(p) || p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("invalid file path %q", name)
	}
	return p, nil
}
