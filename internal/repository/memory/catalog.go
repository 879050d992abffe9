// Package memory holds the in-memory entity store for tags and tracked
// files. Tags and files live in arenas and refer to each other by arena
// index, never by pointer.
package memory

import (
	"fmt"
	"slices"
	"sync/atomic"

	"filetags/internal/domain"
)

// TagID is the arena index of a tag.
type TagID int

// FileID is the arena index of a file. Files are never removed, so a FileID
// is also the file's position in Init order.
type FileID int

type tagEntry struct {
	name  string
	files linkSet[FileID]
}

type fileEntry struct {
	path string
	tags linkSet[TagID]
	// names caches the tag names for snapshots; nil when stale.
	names []string
}

// Catalog is the single lock-guarded aggregate holding every tag, every file
// and the links between them.
//
// Catalog performs no locking of its own. Lookups require the caller to hold
// at least a read lock and mutations require a write lock; only Snapshot may
// be called without a lock. Every mutation keeps both sides of a link in
// step and publishes a new Snapshot before returning.
type Catalog struct {
	tags     []*tagEntry
	freeTags []TagID
	tagOrder []TagID
	byName   map[string]TagID
	files    []*fileEntry
	byPath   map[string]FileID
	untagged TagID
	ready    bool

	snap atomic.Pointer[Snapshot]
}

// NewCatalog returns an empty, uninitialized catalog.
func NewCatalog() *Catalog {
	c := &Catalog{
		byName: make(map[string]TagID),
		byPath: make(map[string]FileID),
	}
	c.publish()
	return c
}

// Init seeds the untagged sentinel and one file per distinct path, each
// carrying only the sentinel. Duplicate paths collapse to one file.
func (c *Catalog) Init(paths []string) error {
	if c.ready {
		return domain.ErrAlreadyInit
	}
	c.untagged = c.newTag(domain.UntaggedTagName)
	sentinel := c.tags[c.untagged]
	for _, p := range paths {
		if _, ok := c.byPath[p]; ok {
			continue
		}
		id := FileID(len(c.files))
		f := &fileEntry{path: p}
		f.tags.add(c.untagged)
		c.files = append(c.files, f)
		c.byPath[p] = id
		sentinel.files.add(id)
	}
	c.ready = true
	c.publish()
	return nil
}

// Untagged returns the sentinel tag's ID.
func (c *Catalog) Untagged() TagID {
	return c.untagged
}

// LookupTag returns the ID of the tag called name.
func (c *Catalog) LookupTag(name string) (TagID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// LookupFile returns the ID of the file at path.
func (c *Catalog) LookupFile(path string) (FileID, bool) {
	id, ok := c.byPath[path]
	return id, ok
}

// HasTag reports whether a tag called name exists.
func (c *Catalog) HasTag(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Linked reports whether file f carries tag t.
func (c *Catalog) Linked(f FileID, t TagID) bool {
	return c.files[f].tags.has(t)
}

// Tag returns a view of tag t.
func (c *Catalog) Tag(t TagID) domain.Tag {
	e := c.tags[t]
	return domain.Tag{Name: e.name, FileCount: e.files.len()}
}

// FilePath returns the path of file f.
func (c *Catalog) FilePath(f FileID) string {
	return c.files[f].path
}

// Members returns the files carrying tag t in membership order. The slice
// is shared and must not be modified. Members is safe under a shared read
// lock only because publish leaves every tag's set frozen; a mutation that
// skips publish must not be followed by Members under a read lock.
func (c *Catalog) Members(t TagID) []FileID {
	return c.tags[t].files.items()
}

// MemberPaths returns the paths of the files carrying tag t in membership
// order.
func (c *Catalog) MemberPaths(t TagID) []string {
	ids := c.Members(t)
	paths := make([]string, len(ids))
	for i, id := range ids {
		paths[i] = c.files[id].path
	}
	return paths
}

// CreateTag inserts a tag with no files.
func (c *Catalog) CreateTag(name string) (domain.Tag, error) {
	if c.HasTag(name) {
		return domain.Tag{}, fmt.Errorf("%w: %s", domain.ErrTagAlreadyExists, name)
	}
	id := c.newTag(name)
	c.publish()
	return c.Tag(id), nil
}

// RenameTag changes the name of tag t in place.
func (c *Catalog) RenameTag(t TagID, name string) (domain.Tag, error) {
	if t == c.untagged || domain.IsReservedTagName(name) {
		return domain.Tag{}, domain.ErrReservedTag
	}
	e := c.tags[t]
	if e.name == name {
		return c.Tag(t), nil
	}
	if c.HasTag(name) {
		return domain.Tag{}, fmt.Errorf("%w: %s", domain.ErrTagAlreadyExists, name)
	}
	delete(c.byName, e.name)
	e.name = name
	c.byName[name] = t
	for _, f := range e.files.items() {
		c.files[f].names = nil
	}
	c.publish()
	return c.Tag(t), nil
}

// DeleteTag removes tag t, which must have no files.
func (c *Catalog) DeleteTag(t TagID) (domain.Tag, error) {
	if t == c.untagged {
		return domain.Tag{}, domain.ErrReservedTag
	}
	e := c.tags[t]
	if e.files.len() > 0 {
		return domain.Tag{}, fmt.Errorf("%w: %s", domain.ErrTagNotEmpty, e.name)
	}
	view := c.Tag(t)
	delete(c.byName, e.name)
	c.tags[t] = nil
	c.freeTags = append(c.freeTags, t)
	i := slices.Index(c.tagOrder, t)
	c.tagOrder = slices.Delete(c.tagOrder, i, i+1)
	c.publish()
	return view, nil
}

// Attach links file f and tag t, dropping the sentinel from f if present.
// It returns false if f already carried t.
func (c *Catalog) Attach(f FileID, t TagID) bool {
	if t == c.untagged || c.Linked(f, t) {
		return false
	}
	c.unlink(f, c.untagged)
	c.link(f, t)
	c.publish()
	return true
}

// Detach unlinks file f and tag t, reattaching the sentinel if f is left
// without tags. It returns false if f did not carry t.
func (c *Catalog) Detach(f FileID, t TagID) bool {
	if t == c.untagged || !c.Linked(f, t) {
		return false
	}
	c.unlink(f, t)
	if c.files[f].tags.len() == 0 {
		c.link(f, c.untagged)
	}
	c.publish()
	return true
}

// Snapshot returns the most recently published snapshot. It is safe to call
// without holding any lock.
func (c *Catalog) Snapshot() *Snapshot {
	return c.snap.Load()
}

func (c *Catalog) newTag(name string) TagID {
	e := &tagEntry{name: name}
	var id TagID
	if n := len(c.freeTags); n > 0 {
		id = c.freeTags[n-1]
		c.freeTags = c.freeTags[:n-1]
		c.tags[id] = e
	} else {
		id = TagID(len(c.tags))
		c.tags = append(c.tags, e)
	}
	c.byName[name] = id
	c.tagOrder = append(c.tagOrder, id)
	return id
}

func (c *Catalog) link(f FileID, t TagID) {
	c.files[f].tags.add(t)
	c.files[f].names = nil
	c.tags[t].files.add(f)
}

func (c *Catalog) unlink(f FileID, t TagID) {
	if c.files[f].tags.remove(t) {
		c.files[f].names = nil
	}
	c.tags[t].files.remove(f)
}

func (c *Catalog) publish() {
	s := &Snapshot{
		tags:     make([]domain.Tag, 0, len(c.tagOrder)),
		tagIndex: make(map[string]int, len(c.tagOrder)),
		members:  make([][]FileID, 0, len(c.tagOrder)),
		files:    make([]domain.TaggedFile, len(c.files)),
	}
	// byPath is frozen once Init completes, so later snapshots share it.
	if c.ready {
		s.fileIndex = c.byPath
	}
	for _, id := range c.tagOrder {
		e := c.tags[id]
		s.tagIndex[e.name] = len(s.tags)
		s.tags = append(s.tags, domain.Tag{Name: e.name, FileCount: e.files.len()})
		s.members = append(s.members, e.files.items())
	}
	for i, f := range c.files {
		if f.names == nil {
			ids := f.tags.items()
			f.names = make([]string, len(ids))
			for j, t := range ids {
				f.names[j] = c.tags[t].name
			}
		}
		s.files[i] = domain.TaggedFile{Name: f.path, Tags: f.names}
	}
	c.snap.Store(s)
}
