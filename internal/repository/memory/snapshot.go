package memory

import (
	"slices"

	"filetags/internal/domain"
)

// Snapshot is an immutable view of the catalog as of one write. Readers that
// hold no lock read only snapshots. Every accessor returns copies.
type Snapshot struct {
	tags      []domain.Tag
	tagIndex  map[string]int
	members   [][]FileID
	files     []domain.TaggedFile
	fileIndex map[string]FileID
}

// Tags returns every tag in creation order.
func (s *Snapshot) Tags() []domain.Tag {
	return slices.Clone(s.tags)
}

// Tag returns the tag called name.
func (s *Snapshot) Tag(name string) (domain.Tag, bool) {
	i, ok := s.tagIndex[name]
	if !ok {
		return domain.Tag{}, false
	}
	return s.tags[i], true
}

// Files returns every file in Init order.
func (s *Snapshot) Files() []domain.TaggedFile {
	out := make([]domain.TaggedFile, len(s.files))
	for i, f := range s.files {
		out[i] = cloneFile(f)
	}
	return out
}

// FilesByTag returns the files carrying the tag called name, in membership
// order.
func (s *Snapshot) FilesByTag(name string) ([]domain.TaggedFile, bool) {
	i, ok := s.tagIndex[name]
	if !ok {
		return nil, false
	}
	ids := s.members[i]
	out := make([]domain.TaggedFile, len(ids))
	for j, id := range ids {
		out[j] = cloneFile(s.files[id])
	}
	return out, true
}

// TagsOf returns the tags applied to the file at path.
func (s *Snapshot) TagsOf(path string) ([]domain.Tag, bool) {
	id, ok := s.fileIndex[path]
	if !ok {
		return nil, false
	}
	names := s.files[id].Tags
	out := make([]domain.Tag, 0, len(names))
	for _, n := range names {
		if t, ok := s.Tag(n); ok {
			out = append(out, t)
		}
	}
	return out, true
}

func cloneFile(f domain.TaggedFile) domain.TaggedFile {
	return domain.TaggedFile{Name: f.Name, Tags: slices.Clone(f.Tags)}
}
