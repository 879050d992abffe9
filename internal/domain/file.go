package domain

import (
	"context"
	"slices"
)

// TaggedFile is a read-only view of a tracked file and the names of the
// tags applied to it.
// swagger:model TaggedFile
type TaggedFile struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// HasTag reports whether the file carried tag when it was observed.
func (f TaggedFile) HasTag(tag string) bool {
	return slices.Contains(f.Tags, tag)
}

// FileStore is the byte-level content capability used by bulk operations.
// Writes must be visible to subsequent reads as soon as WriteFile returns.
type FileStore interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	WriteFile(ctx context.Context, name string, content []byte) error
}

// FileSource enumerates the files handed to TagManager.Init.
type FileSource interface {
	ListFiles(ctx context.Context) ([]string, error)
}

// SeedSource is a FileSource that also supplies tag assignments to apply
// once the manager is initialized.
type SeedSource interface {
	FileSource
	Assignments(ctx context.Context) ([]TagAssignment, error)
}
