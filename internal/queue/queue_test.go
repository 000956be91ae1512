package queue

import (
	"errors"
	"sync"
	"testing"
)

func TestRunReturnsJobError(t *testing.T) {
	manager := NewManager(4, 2)
	defer manager.Shutdown()

	wantErr := errors.New("job failed")
	if err := manager.Run(func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected job error, got %v", err)
	}
	if err := manager.Run(func() error { return nil }); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestSingleWorkerSerializesJobs(t *testing.T) {
	manager := NewManager(16, 1)
	defer manager.Shutdown()

	var mu sync.Mutex
	running := 0
	maxRunning := 0

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = manager.Run(func() error {
				mu.Lock()
				running++
				if running > maxRunning {
					maxRunning = running
				}
				mu.Unlock()

				mu.Lock()
				running--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if maxRunning != 1 {
		t.Fatalf("expected one job at a time, saw %d", maxRunning)
	}
}
