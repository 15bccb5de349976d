// Package autosave provides a debounced, single-flight saver for editing
// clients. While a training is being edited, every change is handed to
// Schedule; a save fires only after a quiet period, each new change restarts
// the timer, and a newer save cancels the context of any save still in
// flight. At most one save is outstanding at a time and it always carries the
// latest payload, so a stale autosave can never overwrite a newer one.
package autosave

import (
	"context"
	"errors"
	"sync"
	"time"
)

// SaveFunc performs one save. It must honor ctx cancellation; a cancelled
// save was superseded by a newer one and its error is discarded.
type SaveFunc[T any] func(ctx context.Context, payload T) error

// Saver is the single-slot pending-operation register. Zero value is not
// usable; construct with New.
type Saver[T any] struct {
	delay   time.Duration
	save    SaveFunc[T]
	onError func(error)

	mu             sync.Mutex
	timer          *time.Timer
	pending        T
	hasPending     bool
	gen            uint64 // Invalidates timers that lost the race to a newer Schedule
	cancelInFlight context.CancelFunc
	closed         bool

	wg sync.WaitGroup
}

// New creates a Saver that fires save after delay of quiet time. onError
// receives errors from fired saves (cancellations excluded); it may be nil.
func New[T any](delay time.Duration, save SaveFunc[T], onError func(error)) *Saver[T] {
	return &Saver[T]{
		delay:   delay,
		save:    save,
		onError: onError,
	}
}

// Schedule registers payload as the latest state and restarts the debounce
// timer. Any previously pending (not yet fired) save is replaced.
func (s *Saver[T]) Schedule(payload T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.pending = payload
	s.hasPending = true
	s.gen++
	gen := s.gen

	if s.timer != nil && s.timer.Stop() {
		s.wg.Done() // Stopped before firing; its callback will never run
	}
	s.wg.Add(1)
	s.timer = time.AfterFunc(s.delay, func() {
		defer s.wg.Done()
		s.fire(gen)
	})
}

// fire runs on the timer goroutine once the quiet period elapsed.
func (s *Saver[T]) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || !s.hasPending {
		// A newer Schedule superseded this timer.
		s.mu.Unlock()
		return
	}
	payload := s.pending
	s.hasPending = false

	// Abort any save still in flight before sending this one.
	if s.cancelInFlight != nil {
		s.cancelInFlight()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelInFlight = cancel
	s.mu.Unlock()

	s.run(ctx, payload)
}

func (s *Saver[T]) run(ctx context.Context, payload T) {
	err := s.save(ctx, payload)
	if err != nil && !errors.Is(err, context.Canceled) && s.onError != nil {
		s.onError(err)
	}
}

// Flush saves any pending payload synchronously, skipping the remaining
// debounce delay. Used when the editing session ends.
func (s *Saver[T]) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || !s.hasPending {
		s.mu.Unlock()
		return nil
	}
	payload := s.pending
	s.hasPending = false
	s.gen++ // Invalidate the armed timer
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	if s.cancelInFlight != nil {
		s.cancelInFlight()
	}
	s.mu.Unlock()

	return s.save(ctx, payload)
}

// Close stops the timer, cancels any in-flight save and waits for timer
// goroutines to finish. Pending unsaved state is dropped; call Flush first
// if it matters.
func (s *Saver[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	if s.cancelInFlight != nil {
		s.cancelInFlight()
	}
	s.mu.Unlock()

	s.wg.Wait()
}
