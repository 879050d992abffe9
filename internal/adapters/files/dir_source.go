package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"filetags/internal/domain"
)

type dirSource struct {
	fs afero.Fs
}

// NewDirSource returns a FileSource listing every regular file under the
// root of fs. Hidden directories are skipped.
func NewDirSource(fs afero.Fs) domain.FileSource {
	return &dirSource{fs: fs}
}

func (s *dirSource) ListFiles(ctx context.Context) ([]string, error) {
	var paths []string
	err := afero.Walk(s.fs, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			if p != "." && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode().IsRegular() {
			paths = append(paths, filepath.ToSlash(p))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}
