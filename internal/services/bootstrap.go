package services

import (
	"context"
	"errors"
	"fmt"

	"filetags/internal/domain"
)

// Bootstrap lists the files of src and initializes m with them. If src is a
// domain.SeedSource its tag assignments are applied afterwards.
func Bootstrap(ctx context.Context, m domain.TagManager, src domain.FileSource) error {
	paths, err := src.ListFiles(ctx)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}
	if err := m.Init(paths); err != nil {
		return fmt.Errorf("init tag manager: %w", err)
	}
	seeds, ok := src.(domain.SeedSource)
	if !ok {
		return nil
	}
	assignments, err := seeds.Assignments(ctx)
	if err != nil {
		return fmt.Errorf("load tag assignments: %w", err)
	}
	return ApplyAssignments(m, assignments)
}

// ApplyAssignments creates each assigned tag if it does not exist yet and
// attaches it to the listed files. Assigning the untagged sentinel is a
// no-op.
func ApplyAssignments(m domain.TagManager, assignments []domain.TagAssignment) error {
	for _, a := range assignments {
		if _, err := m.AddTag(a.Tag); err != nil && !errors.Is(err, domain.ErrTagAlreadyExists) {
			return fmt.Errorf("add tag %q: %w", a.Tag, err)
		}
		for _, file := range a.Files {
			if _, err := m.TagFile(file, a.Tag); err != nil {
				return fmt.Errorf("tag %q with %q: %w", file, a.Tag, err)
			}
		}
	}
	return nil
}
