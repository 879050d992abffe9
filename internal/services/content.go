package services

import (
	"context"
	"fmt"
	"strings"

	"filetags/internal/domain"
	"filetags/internal/lock"
)

// CatAllFiles concatenates the content of every file under tag, in
// membership order. Membership and content are read under one read-lock
// holding, so neither can change part way through. Once the lock is held
// the read runs to completion even if ctx is canceled.
func (m *tagManager) CatAllFiles(ctx context.Context, tag string) (string, error) {
	g := m.lock.Read()
	defer g.Release()
	ctx = context.WithoutCancel(ctx)

	t, ok := m.catalog.LookupTag(tag)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrNoSuchTag, tag)
	}
	var b strings.Builder
	for _, path := range m.catalog.MemberPaths(t) {
		content, err := m.files.ReadFile(ctx, path)
		if err != nil {
			m.logger.ErrorContext(ctx, "cat failed", "tag", tag, "file", path, "err", err)
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		b.Write(content)
	}
	return b.String(), nil
}

// EchoToAllFiles captures the membership of tag under a read lock, then
// writes content to each captured file under the write lock. Concurrent
// readers see either none or all of the writes. A failed write stops the
// operation; earlier files keep the new content. Cancellation of ctx does
// not interrupt the writes, so every file ends up with content unless the
// store itself fails.
func (m *tagManager) EchoToAllFiles(ctx context.Context, tag, content string) error {
	g := m.lock.Read()
	t, ok := m.catalog.LookupTag(tag)
	if !ok {
		g.Release()
		return fmt.Errorf("%w: %s", domain.ErrNoSuchTag, tag)
	}
	paths := m.catalog.MemberPaths(t)
	g.Release()

	w := m.lock.Write()
	defer w.Release()
	ctx = context.WithoutCancel(ctx)
	data := []byte(content)
	for i, path := range paths {
		if err := m.files.WriteFile(ctx, path, data); err != nil {
			m.logger.ErrorContext(ctx, "echo failed", "tag", tag, "file", path, "written", i, "total", len(paths), "err", err)
			return fmt.Errorf("write %s (%d of %d files already written): %w", path, i, len(paths), err)
		}
	}
	m.logger.Debug("echo complete", "tag", tag, "files", len(paths))
	return nil
}

// LockFile blocks until the manager's read lock (or write lock, if
// forWrite) is held on behalf of the caller. Until UnlockFile, the caller
// must not call other TagManager methods from the same goroutine.
func (m *tagManager) LockFile(name string, forWrite bool) (uint64, error) {
	var g *lock.Guard
	if forWrite {
		g = m.lock.Write()
	} else {
		g = m.lock.Read()
	}
	if _, ok := m.catalog.LookupFile(name); !ok {
		g.Release()
		return 0, fmt.Errorf("%w: %s", domain.ErrNoSuchFile, name)
	}
	return uint64(g.Stamp()), nil
}

// UnlockFile releases a hold taken by LockFile. An unknown name, or a stamp
// that does not match a hold of the given kind, leaves the lock untouched
// and returns an error.
func (m *tagManager) UnlockFile(name string, stamp uint64, forWrite bool) error {
	if _, ok := m.catalog.LookupFile(name); !ok {
		return fmt.Errorf("%w: %s", domain.ErrNoSuchFile, name)
	}
	var released bool
	if forWrite {
		released = m.lock.TryUnlock(lock.Stamp(stamp))
	} else {
		released = m.lock.TryRUnlock(lock.Stamp(stamp))
	}
	if !released {
		return fmt.Errorf("%w: %d", domain.ErrInvalidStamp, stamp)
	}
	return nil
}
