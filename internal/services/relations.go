package services

import (
	"fmt"

	"filetags/internal/domain"
	"filetags/internal/repository/memory"
)

func (m *tagManager) ListAllFiles() []domain.TaggedFile {
	var files []domain.TaggedFile
	m.lock.ReadOptimistic(func() {
		files = m.catalog.Snapshot().Files()
	})
	return files
}

func (m *tagManager) ListFilesByTag(tag string) ([]domain.TaggedFile, error) {
	var (
		files []domain.TaggedFile
		ok    bool
	)
	m.lock.ReadOptimistic(func() {
		files, ok = m.catalog.Snapshot().FilesByTag(tag)
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSuchTag, tag)
	}
	return files, nil
}

func (m *tagManager) GetTags(file string) ([]domain.Tag, error) {
	var (
		tags []domain.Tag
		ok   bool
	)
	m.lock.ReadOptimistic(func() {
		tags, ok = m.catalog.Snapshot().TagsOf(file)
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSuchFile, file)
	}
	return tags, nil
}

func (m *tagManager) TagFile(file, tag string) (bool, error) {
	if domain.IsReservedTagName(tag) {
		return false, nil
	}
	g := m.lock.Write()
	defer g.Release()
	f, t, err := m.resolve(file, tag)
	if err != nil {
		return false, err
	}
	changed := m.catalog.Attach(f, t)
	if changed {
		m.logger.Debug("file tagged", "file", file, "tag", tag)
	}
	return changed, nil
}

func (m *tagManager) RemoveTag(file, tag string) (bool, error) {
	if domain.IsReservedTagName(tag) {
		return false, nil
	}
	g := m.lock.Write()
	defer g.Release()
	f, t, err := m.resolve(file, tag)
	if err != nil {
		return false, err
	}
	changed := m.catalog.Detach(f, t)
	if changed {
		m.logger.Debug("file untagged", "file", file, "tag", tag)
	}
	return changed, nil
}

// resolve looks up a file and a tag, tag first. The caller holds the lock.
func (m *tagManager) resolve(file, tag string) (memory.FileID, memory.TagID, error) {
	t, ok := m.catalog.LookupTag(tag)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", domain.ErrNoSuchTag, tag)
	}
	f, ok := m.catalog.LookupFile(file)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", domain.ErrNoSuchFile, file)
	}
	return f, t, nil
}
