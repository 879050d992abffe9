package files

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"filetags/internal/domain"
)

// Manifest is the on-disk layout of a manifest file:
//
//	files:
//	  - notes/a.txt
//	  - notes/b.txt
//	tags:
//	  work: [notes/a.txt]
//
// Tags keep their document order so seeding is deterministic.
type Manifest struct {
	Files []string  `yaml:"files"`
	Tags  yaml.Node `yaml:"tags"`
}

type manifestSource struct {
	fs   afero.Fs
	path string
}

// NewManifestSource returns a SeedSource reading the YAML manifest at path
// on fs.
func NewManifestSource(fs afero.Fs, path string) domain.SeedSource {
	return &manifestSource{fs: fs, path: path}
}

func (s *manifestSource) ListFiles(ctx context.Context) ([]string, error) {
	m, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(m.Files))
	for _, f := range m.Files {
		p, err := cleanPath(f)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", s.path, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (s *manifestSource) Assignments(ctx context.Context) ([]domain.TagAssignment, error) {
	m, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if m.Tags.Kind == 0 {
		return nil, nil
	}
	if m.Tags.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("manifest %s: tags must be a mapping (line %d)", s.path, m.Tags.Line)
	}
	assignments := make([]domain.TagAssignment, 0, len(m.Tags.Content)/2)
	for i := 0; i+1 < len(m.Tags.Content); i += 2 {
		key, value := m.Tags.Content[i], m.Tags.Content[i+1]
		var files []string
		if err := value.Decode(&files); err != nil {
			return nil, fmt.Errorf("manifest %s: tag %q (line %d): %w", s.path, key.Value, value.Line, err)
		}
		for j, f := range files {
			p, err := cleanPath(f)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: tag %q: %w", s.path, key.Value, err)
			}
			files[j] = p
		}
		assignments = append(assignments, domain.TagAssignment{Tag: key.Value, Files: files})
	}
	return assignments, nil
}

func (s *manifestSource) load(ctx context.Context) (*Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", s.path, err)
	}
	return &m, nil
}
