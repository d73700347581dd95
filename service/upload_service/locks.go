package upload_service

import "sync"

// uploadLocks serializes chunk writes, completion and cleanup per upload id.
// Chunk writes to different sessions proceed in parallel; operations on the
// same session take the session's mutex.
type uploadLocks struct {
	mu    sync.Mutex
	locks map[string]*uploadLock
}

type uploadLock struct {
	mu   sync.Mutex
	refs int
}

func newUploadLocks() *uploadLocks {
	return &uploadLocks{
		locks: make(map[string]*uploadLock),
	}
}

// Lock acquires the mutex for an upload id, creating it on first use
func (l *uploadLocks) Lock(uploadID string) {
	l.mu.Lock()
	entry, ok := l.locks[uploadID]
	if !ok {
		entry = &uploadLock{}
		l.locks[uploadID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the mutex, dropping the entry once no caller holds or
// waits on it
func (l *uploadLocks) Unlock(uploadID string) {
	l.mu.Lock()
	entry, ok := l.locks[uploadID]
	if !ok {
		l.mu.Unlock()
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, uploadID)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
