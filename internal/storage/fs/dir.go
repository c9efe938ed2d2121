package fs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"eatery_catalog/internal/adapters/observability"
)

const sourceLabel = "dir"

// DirSource treats every entry of one directory as a blob. It does not
// recurse; a sub-directory shows up as a blob that fails to read.
type DirSource struct{ dir string }

func NewDirSource(dir string) *DirSource { return &DirSource{dir: dir} }

func (s *DirSource) String() string { return "dir:" + s.dir }

func (s *DirSource) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *DirSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	b, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	observability.ObserveSourceRead(sourceLabel, err, time.Since(start))
	return b, err
}
