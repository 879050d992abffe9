package services

import (
	"fmt"
	"log/slog"

	"filetags/internal/domain"
	"filetags/internal/lock"
	"filetags/internal/repository/memory"
)

// tagManager guards one memory.Catalog with one process-wide StampedLock.
// The catalog is created here and never handed out, so every access to it
// goes through the locking below.
type tagManager struct {
	lock    lock.StampedLock
	catalog *memory.Catalog
	files   domain.FileStore
	logger  *slog.Logger
}

// NewTagManager returns an uninitialized TagManager whose bulk operations
// read and write content through files.
func NewTagManager(files domain.FileStore, logger *slog.Logger) domain.TagManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &tagManager{
		catalog: memory.NewCatalog(),
		files:   files,
		logger:  logger,
	}
}

func (m *tagManager) Init(paths []string) error {
	g := m.lock.Write()
	defer g.Release()
	if err := m.catalog.Init(paths); err != nil {
		return err
	}
	m.logger.Info("tag manager initialized", "files", len(m.catalog.Members(m.catalog.Untagged())))
	return nil
}

// mutate runs check under a read lock, upgrades to a write lock and runs
// apply. If the upgrade had to release the read lock, check runs again
// under the write lock first, since another writer may have run in the gap.
func (m *tagManager) mutate(check, apply func() error) error {
	g := m.lock.Read()
	defer g.Release()
	if err := check(); err != nil {
		return err
	}
	if !g.Upgrade() {
		if err := check(); err != nil {
			return err
		}
	}
	return apply()
}

func (m *tagManager) ListTags() []domain.Tag {
	var tags []domain.Tag
	m.lock.ReadOptimistic(func() {
		tags = m.catalog.Snapshot().Tags()
	})
	return tags
}

func (m *tagManager) AddTag(name string) (domain.Tag, error) {
	var tag domain.Tag
	err := m.mutate(
		func() error {
			if m.catalog.HasTag(name) {
				return fmt.Errorf("%w: %s", domain.ErrTagAlreadyExists, name)
			}
			return nil
		},
		func() error {
			var err error
			tag, err = m.catalog.CreateTag(name)
			return err
		},
	)
	if err != nil {
		return domain.Tag{}, err
	}
	m.logger.Debug("tag added", "tag", name)
	return tag, nil
}

func (m *tagManager) EditTag(oldName, newName string) (domain.Tag, error) {
	var (
		id  memory.TagID
		tag domain.Tag
	)
	err := m.mutate(
		func() error {
			var ok bool
			id, ok = m.catalog.LookupTag(oldName)
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrNoSuchTag, oldName)
			}
			if id == m.catalog.Untagged() {
				return domain.ErrReservedTag
			}
			if other, ok := m.catalog.LookupTag(newName); ok && other != id {
				return fmt.Errorf("%w: %s", domain.ErrTagAlreadyExists, newName)
			}
			return nil
		},
		func() error {
			var err error
			tag, err = m.catalog.RenameTag(id, newName)
			return err
		},
	)
	if err != nil {
		return domain.Tag{}, err
	}
	m.logger.Debug("tag renamed", "from", oldName, "to", newName)
	return tag, nil
}

func (m *tagManager) DeleteTag(name string) (domain.Tag, error) {
	var (
		id  memory.TagID
		tag domain.Tag
	)
	err := m.mutate(
		func() error {
			var ok bool
			id, ok = m.catalog.LookupTag(name)
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrNoSuchTag, name)
			}
			if id == m.catalog.Untagged() {
				return domain.ErrReservedTag
			}
			if m.catalog.Tag(id).HasFiles() {
				return fmt.Errorf("%w: %s", domain.ErrTagNotEmpty, name)
			}
			return nil
		},
		func() error {
			var err error
			tag, err = m.catalog.DeleteTag(id)
			return err
		},
	)
	if err != nil {
		return domain.Tag{}, err
	}
	m.logger.Debug("tag deleted", "tag", name)
	return tag, nil
}
