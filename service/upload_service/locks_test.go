package upload_service

import (
	"sync"
	"testing"
)

func TestUploadLocksSerializeSameID(t *testing.T) {
	locks := newUploadLocks()

	const workers = 50
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock("up-1")
			counter++
			locks.Unlock("up-1")
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestUploadLocksEntryDroppedWhenIdle(t *testing.T) {
	locks := newUploadLocks()

	locks.Lock("up-1")
	locks.Unlock("up-1")

	locks.mu.Lock()
	n := len(locks.locks)
	locks.mu.Unlock()
	if n != 0 {
		t.Errorf("lock table holds %d entries after release, want 0", n)
	}
}

func TestUploadLocksIndependentIDs(t *testing.T) {
	locks := newUploadLocks()

	locks.Lock("up-1")
	done := make(chan struct{})
	go func() {
		// Must not block on a different id
		locks.Lock("up-2")
		locks.Unlock("up-2")
		close(done)
	}()
	<-done
	locks.Unlock("up-1")
}
