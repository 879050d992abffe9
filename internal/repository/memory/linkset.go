package memory

import "slices"

// linkSet is an insertion-ordered set of arena indices with O(1) membership
// tests. items returns an immutable copy that is cached until the next
// change, so unchanged sets are shared between published snapshots.
//
// items fills the cache lazily, which is a write. Under a shared read lock
// it is only safe on a set that is already frozen; Catalog.publish freezes
// every tag's set at the end of each mutation.
type linkSet[T comparable] struct {
	order  []T
	index  map[T]struct{}
	frozen []T
}

func (s *linkSet[T]) has(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *linkSet[T]) add(v T) bool {
	if s.has(v) {
		return false
	}
	if s.index == nil {
		s.index = make(map[T]struct{})
	}
	s.index[v] = struct{}{}
	s.order = append(s.order, v)
	s.frozen = nil
	return true
}

func (s *linkSet[T]) remove(v T) bool {
	if !s.has(v) {
		return false
	}
	delete(s.index, v)
	i := slices.Index(s.order, v)
	s.order = slices.Delete(s.order, i, i+1)
	s.frozen = nil
	return true
}

func (s *linkSet[T]) len() int {
	return len(s.order)
}

func (s *linkSet[T]) isFrozen() bool {
	return s.frozen != nil
}

func (s *linkSet[T]) items() []T {
	if s.frozen == nil {
		s.frozen = slices.Clone(s.order)
		if s.frozen == nil {
			s.frozen = []T{}
		}
	}
	return s.frozen
}
