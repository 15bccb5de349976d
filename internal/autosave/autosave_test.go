package autosave

import (
	"context"
	"sync"
	"testing"
	"time"
)

// recorder collects saved payloads behind a mutex.
type recorder struct {
	mu    sync.Mutex
	saved []int
}

func (r *recorder) save(_ context.Context, payload int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, payload)
	return nil
}

func (r *recorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.saved))
	copy(out, r.saved)
	return out
}

func TestDebounceCoalescesEdits(t *testing.T) {
	rec := &recorder{}
	s := New(30*time.Millisecond, rec.save, nil)
	defer s.Close()

	// Three edits inside the quiet period: only the last may fire.
	s.Schedule(1)
	s.Schedule(2)
	s.Schedule(3)

	time.Sleep(150 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 || got[0] != 3 {
		t.Errorf("saved = %v, want [3]", got)
	}
}

func TestSeparateQuietPeriodsBothFire(t *testing.T) {
	rec := &recorder{}
	s := New(20*time.Millisecond, rec.save, nil)
	defer s.Close()

	s.Schedule(1)
	time.Sleep(100 * time.Millisecond)
	s.Schedule(2)
	time.Sleep(100 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("saved = %v, want [1 2]", got)
	}
}

func TestInFlightSaveIsCancelledBySuccessor(t *testing.T) {
	started := make(chan int, 2)
	cancelled := make(chan int, 2)
	rec := &recorder{}

	save := func(ctx context.Context, payload int) error {
		started <- payload
		if payload == 1 {
			// Simulate a slow request; it must be aborted when the next
			// save fires.
			select {
			case <-ctx.Done():
				cancelled <- payload
				return ctx.Err()
			case <-time.After(2 * time.Second):
				t.Error("first save was never cancelled")
				return nil
			}
		}
		return rec.save(ctx, payload)
	}

	s := New(10*time.Millisecond, save, nil)
	defer s.Close()

	s.Schedule(1)
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first save never started")
	}

	s.Schedule(2)

	select {
	case p := <-cancelled:
		if p != 1 {
			t.Errorf("cancelled payload = %d, want 1", p)
		}
	case <-time.After(time.Second):
		t.Fatal("in-flight save was not cancelled")
	}

	time.Sleep(100 * time.Millisecond)
	got := rec.snapshot()
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("saved = %v, want [2]", got)
	}
}

func TestFlushSavesImmediately(t *testing.T) {
	rec := &recorder{}
	s := New(time.Hour, rec.save, nil) // Debounce would never fire on its own
	defer s.Close()

	s.Schedule(42)
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	got := rec.snapshot()
	if len(got) != 1 || got[0] != 42 {
		t.Errorf("saved = %v, want [42]", got)
	}

	// Nothing pending anymore: a second flush is a no-op.
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("second flush: %v", err)
	}
	if got := rec.snapshot(); len(got) != 1 {
		t.Errorf("saved = %v, want exactly one entry", got)
	}
}

func TestCloseDropsPending(t *testing.T) {
	rec := &recorder{}
	s := New(30*time.Millisecond, rec.save, nil)

	s.Schedule(7)
	s.Close()

	time.Sleep(100 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("saved = %v, want none after Close", got)
	}

	// Schedule after Close is ignored.
	s.Schedule(8)
	time.Sleep(100 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("saved = %v, want none", got)
	}
}

func TestOnErrorReceivesFailures(t *testing.T) {
	errCh := make(chan error, 1)
	s := New(10*time.Millisecond, func(context.Context, int) error {
		return context.DeadlineExceeded
	}, func(err error) { errCh <- err })
	defer s.Close()

	s.Schedule(1)

	select {
	case err := <-errCh:
		if err != context.DeadlineExceeded {
			t.Errorf("err = %v, want DeadlineExceeded", err)
		}
	case <-time.After(time.Second):
		t.Fatal("onError was never called")
	}
}
