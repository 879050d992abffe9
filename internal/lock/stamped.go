// Package lock provides the process-wide stamped lock that guards the tag
// catalog. It supports optimistic reads validated by a version stamp, shared
// read locks, exclusive write locks and a non-blocking read-to-write
// conversion.
package lock

import (
	"sync"
	"sync/atomic"
)

// Stamp identifies one acquisition (or one optimistic observation) of a
// StampedLock. The zero Stamp is never valid.
type Stamp uint64

// StampedLock is a writer-preferring read/write lock with a version counter.
// The version is even while no writer holds the lock and odd while one does;
// every write acquisition and release advances it, which is what invalidates
// optimistic stamps.
//
// The zero value is an unlocked StampedLock. A StampedLock must not be copied
// after first use. It is not reentrant.
type StampedLock struct {
	mu             sync.Mutex
	cond           *sync.Cond
	readers        int
	writer         bool
	waitingWriters int
	version        atomic.Uint64
}

func stampOf(version uint64) Stamp {
	return Stamp(version + 1)
}

// wait blocks on the condition variable. l.mu must be held.
func (l *StampedLock) wait() {
	if l.cond == nil {
		l.cond = sync.NewCond(&l.mu)
	}
	l.cond.Wait()
}

// wake releases every goroutine blocked in wait. l.mu must be held.
func (l *StampedLock) wake() {
	if l.cond != nil {
		l.cond.Broadcast()
	}
}

// TryOptimisticRead returns a stamp for an optimistic read, or 0 when a
// writer currently holds the lock.
func (l *StampedLock) TryOptimisticRead() Stamp {
	v := l.version.Load()
	if v&1 == 1 {
		return 0
	}
	return stampOf(v)
}

// Validate reports whether no write lock has been acquired since the stamp
// was issued. It always returns false for the zero stamp.
func (l *StampedLock) Validate(s Stamp) bool {
	return s != 0 && stampOf(l.version.Load()) == s
}

// RLock acquires the lock for reading. New readers wait while a writer holds
// the lock or is waiting for it.
func (l *StampedLock) RLock() Stamp {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.writer || l.waitingWriters > 0 {
		l.wait()
	}
	l.readers++
	return stampOf(l.version.Load())
}

// RUnlock releases a read lock acquired with RLock. It panics if s is not
// a current read stamp.
func (l *StampedLock) RUnlock(s Stamp) {
	if !l.TryRUnlock(s) {
		panic("lock: RUnlock with invalid stamp")
	}
}

// TryRUnlock releases a read lock and reports whether s was a current read
// stamp. On false the lock is unchanged.
func (l *StampedLock) TryRUnlock(s Stamp) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.readers == 0 || l.writer || stampOf(l.version.Load()) != s {
		return false
	}
	l.readers--
	if l.readers == 0 {
		l.wake()
	}
	return true
}

// Lock acquires the lock for writing, blocking until every reader and any
// current writer have released it.
func (l *StampedLock) Lock() Stamp {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.waitingWriters++
	for l.writer || l.readers > 0 {
		l.wait()
	}
	l.waitingWriters--
	l.writer = true
	return stampOf(l.version.Add(1))
}

// Unlock releases a write lock acquired with Lock or TryConvertToWriteLock.
// It panics if s is not the current write stamp.
func (l *StampedLock) Unlock(s Stamp) {
	if !l.TryUnlock(s) {
		panic("lock: Unlock with invalid stamp")
	}
}

// TryUnlock releases a write lock and reports whether s was the current
// write stamp. On false the lock is unchanged.
func (l *StampedLock) TryUnlock(s Stamp) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.writer || stampOf(l.version.Load()) != s {
		return false
	}
	l.writer = false
	l.version.Add(1)
	l.wake()
	return true
}

// TryConvertToWriteLock atomically converts a held read lock into a write
// lock. It succeeds only when the caller is the sole reader and never blocks.
// Passing a write stamp returns it unchanged. On failure the read lock is
// still held and the returned stamp is 0.
func (l *StampedLock) TryConvertToWriteLock(s Stamp) (Stamp, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if stampOf(l.version.Load()) != s {
		return 0, false
	}
	if l.writer {
		return s, true
	}
	if l.readers != 1 {
		return 0, false
	}
	l.readers = 0
	l.writer = true
	return stampOf(l.version.Add(1)), true
}

// ReadOptimistic runs read without blocking, then validates. If a writer
// interfered, read runs again under a read lock. read must only touch data
// that is safe to observe concurrently with a writer.
func (l *StampedLock) ReadOptimistic(read func()) {
	g := l.Optimistic()
	defer g.Release()
	read()
	if !g.Validate() {
		g.Pessimize()
		read()
	}
}
