package domain

import "context"

// UntaggedTagName is the sentinel tag carried by every file that has no
// other tag. It is seeded by Init and cannot be created, renamed, deleted,
// attached or detached through tag operations.
const UntaggedTagName = "untagged"

// Tag is a read-only view of a tag at the moment it was observed.
// swagger:model Tag
type Tag struct {
	Name      string `json:"name"`
	FileCount int    `json:"file_count"`
}

// HasFiles reports whether any file carried the tag when it was observed.
func (t Tag) HasFiles() bool {
	return t.FileCount > 0
}

// IsReservedTagName reports whether name is the untagged sentinel.
func IsReservedTagName(name string) bool {
	return name == UntaggedTagName
}

// TagAssignment attaches Tag to every file in Files.
type TagAssignment struct {
	Tag   string
	Files []string
}

// TagManager is the concurrent tag/file association engine.
//
// Registry and relation operations are in-memory and never block on I/O.
// CatAllFiles and EchoToAllFiles hold the manager's lock for the whole of
// their file I/O.
type TagManager interface {
	// Init seeds the untagged sentinel and the file set. It must be called
	// exactly once, before any concurrent use.
	Init(paths []string) error

	ListTags() []Tag
	AddTag(name string) (Tag, error)
	EditTag(oldName, newName string) (Tag, error)
	DeleteTag(name string) (Tag, error)

	ListAllFiles() []TaggedFile
	ListFilesByTag(tag string) ([]TaggedFile, error)
	GetTags(file string) ([]Tag, error)
	// TagFile returns false without error when tag is the sentinel or the
	// file already carries it.
	TagFile(file, tag string) (bool, error)
	// RemoveTag returns false without error when tag is the sentinel or the
	// file does not carry it.
	RemoveTag(file, tag string) (bool, error)

	CatAllFiles(ctx context.Context, tag string) (string, error)
	// EchoToAllFiles writes content to every file under tag. A write error
	// stops the operation; files written before it keep the new content.
	EchoToAllFiles(ctx context.Context, tag, content string) error

	// LockFile acquires the manager's read or write lock on behalf of the
	// caller. The returned stamp must be passed to UnlockFile.
	LockFile(name string, forWrite bool) (uint64, error)
	// UnlockFile returns ErrInvalidStamp, leaving the lock as it was, when
	// stamp is not a current hold of the kind named by forWrite.
	UnlockFile(name string, stamp uint64, forWrite bool) error
}
