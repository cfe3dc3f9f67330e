package parallel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestForEach_VisitsEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 2, 7, 100} {
		const items = 50
		var counts [items]int32

		err := ForEach(context.Background(), items, workers, func(_ context.Context, i int) error {
			atomic.AddInt32(&counts[i], 1)
			return nil
		})
		if err != nil {
			t.Fatalf("workers=%d: ForEach() error = %v", workers, err)
		}
		for i, c := range counts {
			if c != 1 {
				t.Errorf("workers=%d: index %d visited %d times", workers, i, c)
			}
		}
	}
}

func TestForEach_SequentialOrder(t *testing.T) {
	var order []int
	err := ForEach(context.Background(), 5, 1, func(_ context.Context, i int) error {
		order = append(order, i)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("sequential order = %v", order)
		}
	}
}

func TestForEach_RespectsLimit(t *testing.T) {
	const limit = 3
	var inFlight, peak int32
	var mu sync.Mutex

	err := ForEach(context.Background(), 30, limit, func(_ context.Context, _ int) error {
		n := atomic.AddInt32(&inFlight, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		atomic.AddInt32(&inFlight, -1)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	if peak > limit {
		t.Errorf("peak concurrency %d exceeds limit %d", peak, limit)
	}
}

func TestForEach_ReturnsError(t *testing.T) {
	sentinel := errors.New("stop")
	err := ForEach(context.Background(), 10, 4, func(_ context.Context, i int) error {
		if i == 5 {
			return sentinel
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("ForEach() error = %v, want %v", err, sentinel)
	}
}

func TestForEach_ZeroItems(t *testing.T) {
	called := false
	if err := ForEach(context.Background(), 0, 4, func(context.Context, int) error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	if called {
		t.Error("fn should not be called for zero items")
	}
}

func TestWorkers(t *testing.T) {
	if got := Workers(3, 8); got != 3 {
		t.Errorf("Workers(3, 8) = %d, want 3", got)
	}
	if got := Workers(10, 4); got != 4 {
		t.Errorf("Workers(10, 4) = %d, want 4", got)
	}
	if got := Workers(0, 4); got != 1 {
		t.Errorf("Workers(0, 4) = %d, want 1", got)
	}
	if got := Workers(10, 0); got < 1 {
		t.Errorf("Workers(10, 0) = %d, want >= 1", got)
	}
}
