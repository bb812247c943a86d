package product

import (
	"sync"

	"github.com/google/uuid"
)

// recordLocks serializes mutations per record id. Writers to different
// records never contend; two writers on the same record run their
// check-then-commit sections one after the other.
type recordLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*recordLock
}

type recordLock struct {
	mu   sync.Mutex
	refs int
}

func newRecordLocks() *recordLocks {
	return &recordLocks{locks: make(map[uuid.UUID]*recordLock)}
}

// Lock acquires the mutex for id, creating it on first use.
func (l *recordLocks) Lock(id uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &recordLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the mutex for id and drops it from the table once no
// other writer is waiting, so deleted records do not leak lock entries.
func (l *recordLocks) Unlock(id uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if ok {
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
	}
	l.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}
