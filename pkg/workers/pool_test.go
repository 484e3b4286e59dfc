package workers

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmitExecutesEachTaskOnce(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		tasks int
	}{
		{name: "more tasks than workers", size: 4, tasks: 200},
		{name: "single worker", size: 1, tasks: 50},
		{name: "more workers than tasks", size: 16, tasks: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := New(tt.size)
			defer pool.Close()

			var completed atomic.Int64
			var wg sync.WaitGroup
			wg.Add(tt.tasks)
			for i := 0; i < tt.tasks; i++ {
				pool.Submit(func() {
					completed.Add(1)
					wg.Done()
				})
			}
			wg.Wait()

			if got := completed.Load(); got != int64(tt.tasks) {
				t.Errorf("completed = %d, want %d", got, tt.tasks)
			}
		})
	}
}

func TestSubmitNeverBlocks(t *testing.T) {
	pool := New(1)
	defer pool.Close()

	block := make(chan struct{})
	pool.Submit(func() { <-block })

	// With the only worker parked, submissions must still return
	// immediately: the queue is unbounded.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			pool.Submit(func() {})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked with a busy worker")
	}
	close(block)
}

func TestDefaultSize(t *testing.T) {
	pool := New(0)
	defer pool.Close()
	if pool.Size() != DefaultSize {
		t.Errorf("Size() = %d, want %d", pool.Size(), DefaultSize)
	}
}

func TestSubmitAfterCloseIsDropped(t *testing.T) {
	pool := New(2)
	pool.Close()

	var ran atomic.Bool
	pool.Submit(func() { ran.Store(true) })
	time.Sleep(50 * time.Millisecond)
	if ran.Load() {
		t.Error("task submitted after Close still ran")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	pool := New(2)
	pool.Close()
	pool.Close()
}

func TestNilTaskIgnored(t *testing.T) {
	pool := New(1)
	defer pool.Close()
	pool.Submit(nil)

	var wg sync.WaitGroup
	wg.Add(1)
	pool.Submit(func() { wg.Done() })
	wg.Wait()
}
