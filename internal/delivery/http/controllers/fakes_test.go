package controllers

import (
	"context"
	"io"
	"log/slog"

	"filetags/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeTagManager implements domain.TagManager for handler tests. Each
// operation returns the configured result and records its arguments.
type fakeTagManager struct {
	tags    []domain.Tag
	files   []domain.TaggedFile
	tag     domain.Tag
	changed bool
	content string
	err     error

	lastTag     string
	lastNewName string
	lastFile    string
	lastContent string
}

func (f *fakeTagManager) Init([]string) error { return f.err }

func (f *fakeTagManager) ListTags() []domain.Tag { return f.tags }

func (f *fakeTagManager) AddTag(name string) (domain.Tag, error) {
	f.lastTag = name
	if f.err != nil {
		return domain.Tag{}, f.err
	}
	return domain.Tag{Name: name}, nil
}

func (f *fakeTagManager) EditTag(oldName, newName string) (domain.Tag, error) {
	f.lastTag, f.lastNewName = oldName, newName
	if f.err != nil {
		return domain.Tag{}, f.err
	}
	return domain.Tag{Name: newName, FileCount: f.tag.FileCount}, nil
}

func (f *fakeTagManager) DeleteTag(name string) (domain.Tag, error) {
	f.lastTag = name
	if f.err != nil {
		return domain.Tag{}, f.err
	}
	return domain.Tag{Name: name}, nil
}

func (f *fakeTagManager) ListAllFiles() []domain.TaggedFile { return f.files }

func (f *fakeTagManager) ListFilesByTag(tag string) ([]domain.TaggedFile, error) {
	f.lastTag = tag
	return f.files, f.err
}

func (f *fakeTagManager) GetTags(file string) ([]domain.Tag, error) {
	f.lastFile = file
	return f.tags, f.err
}

func (f *fakeTagManager) TagFile(file, tag string) (bool, error) {
	f.lastFile, f.lastTag = file, tag
	return f.changed, f.err
}

func (f *fakeTagManager) RemoveTag(file, tag string) (bool, error) {
	f.lastFile, f.lastTag = file, tag
	return f.changed, f.err
}

func (f *fakeTagManager) CatAllFiles(_ context.Context, tag string) (string, error) {
	f.lastTag = tag
	return f.content, f.err
}

func (f *fakeTagManager) EchoToAllFiles(_ context.Context, tag, content string) error {
	f.lastTag, f.lastContent = tag, content
	return f.err
}

func (f *fakeTagManager) LockFile(string, bool) (uint64, error) { return 0, f.err }

func (f *fakeTagManager) UnlockFile(string, uint64, bool) error { return f.err }

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	token        string
	err          error
	lastUsername string
}

func (f *fakeAuthService) Login(_ context.Context, username, _ string) (string, error) {
	f.lastUsername = username
	return f.token, f.err
}
