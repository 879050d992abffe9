package lock

import "fmt"

// Mode is the state of a Guard.
type Mode int

const (
	Unlocked Mode = iota
	OptimisticRead
	PessimisticRead
	PessimisticWrite
)

func (m Mode) String() string {
	switch m {
	case Unlocked:
		return "unlocked"
	case OptimisticRead:
		return "optimistic-read"
	case PessimisticRead:
		return "pessimistic-read"
	case PessimisticWrite:
		return "pessimistic-write"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Guard tracks one caller's hold on a StampedLock as an explicit state
// machine:
//
//	Unlocked        -> OptimisticRead | PessimisticRead | PessimisticWrite
//	OptimisticRead  -> PessimisticRead   (Pessimize)
//	PessimisticRead -> PessimisticWrite  (Upgrade)
//	any             -> Unlocked          (Release)
//
// Any other transition panics. A Guard is used by a single goroutine.
type Guard struct {
	lock  *StampedLock
	mode  Mode
	stamp Stamp
}

// Optimistic starts an optimistic read.
func (l *StampedLock) Optimistic() *Guard {
	return &Guard{lock: l, mode: OptimisticRead, stamp: l.TryOptimisticRead()}
}

// Read acquires a read lock.
func (l *StampedLock) Read() *Guard {
	return &Guard{lock: l, mode: PessimisticRead, stamp: l.RLock()}
}

// Write acquires a write lock.
func (l *StampedLock) Write() *Guard {
	return &Guard{lock: l, mode: PessimisticWrite, stamp: l.Lock()}
}

func (g *Guard) Mode() Mode { return g.mode }

func (g *Guard) Stamp() Stamp { return g.stamp }

// Validate reports whether data read so far is consistent. Pessimistic holds
// are always consistent; an optimistic read is consistent while no writer
// has intervened.
func (g *Guard) Validate() bool {
	switch g.mode {
	case PessimisticRead, PessimisticWrite:
		return true
	case OptimisticRead:
		return g.lock.Validate(g.stamp)
	default:
		return false
	}
}

// Pessimize abandons an optimistic read and acquires a read lock.
func (g *Guard) Pessimize() {
	g.must(OptimisticRead, PessimisticRead)
	g.stamp = g.lock.RLock()
	g.mode = PessimisticRead
}

// Upgrade converts a read hold into a write hold. It returns true when the
// conversion was atomic. When it returns false the read lock was released
// before the write lock was acquired, so another writer may have run in
// between and the caller must re-check anything it validated under the read
// lock.
func (g *Guard) Upgrade() bool {
	g.must(PessimisticRead, PessimisticWrite)
	if ws, ok := g.lock.TryConvertToWriteLock(g.stamp); ok {
		g.stamp = ws
		g.mode = PessimisticWrite
		return true
	}
	g.lock.RUnlock(g.stamp)
	g.mode = Unlocked
	g.stamp = g.lock.Lock()
	g.mode = PessimisticWrite
	return false
}

// Release returns the guard to Unlocked. Releasing an unlocked guard is a
// no-op, so Release is safe to defer.
func (g *Guard) Release() {
	switch g.mode {
	case PessimisticRead:
		g.lock.RUnlock(g.stamp)
	case PessimisticWrite:
		g.lock.Unlock(g.stamp)
	}
	g.mode = Unlocked
	g.stamp = 0
}

func (g *Guard) must(from, to Mode) {
	if g.mode != from {
		panic(fmt.Sprintf("lock: illegal transition %s -> %s", g.mode, to))
	}
}
