package budget

import (
	"sync"
	"time"
)

// fieldWriter serializes the persistence writes of a single storage key.
// Only the newest snapshot of a field matters, so an unstarted write is
// replaced rather than queued behind (last-write-wins coalescing); writes
// that have started always run to completion.
type fieldWriter struct {
	mu     sync.Mutex
	latest func()

	notify chan struct{}
	stop   chan struct{}
	done   chan struct{}
}

func newFieldWriter() *fieldWriter {
	w := &fieldWriter{
		notify: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *fieldWriter) run() {
	defer close(w.done)
	for {
		select {
		case <-w.notify:
			w.drain()
		case <-w.stop:
			w.drain()
			return
		}
	}
}

func (w *fieldWriter) drain() {
	for {
		w.mu.Lock()
		job := w.latest
		w.latest = nil
		w.mu.Unlock()
		if job == nil {
			return
		}
		job()
	}
}

// enqueue schedules job as the field's next write, replacing any write
// that has not started yet.
func (w *fieldWriter) enqueue(job func()) {
	w.mu.Lock()
	w.latest = job
	w.mu.Unlock()
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// discard drops a pending, not-yet-started write.
func (w *fieldWriter) discard() {
	w.mu.Lock()
	w.latest = nil
	w.mu.Unlock()
}

// barrier waits for the writer to go idle, so any write already in flight
// has finished. It takes the pending slot itself, so callers that must not
// lose a pending write should not use it; the reset path calls discard
// first precisely because it wants pending writes dropped. Reports false
// if the writer did not become idle within the timeout.
func (w *fieldWriter) barrier(timeout time.Duration) bool {
	idle := make(chan struct{})
	w.enqueue(func() { close(idle) })
	select {
	case <-idle:
		return true
	case <-time.After(timeout):
		return false
	case <-w.done:
		return true
	}
}

// close stops the writer after flushing any pending write, waiting at most
// timeout for it to finish.
func (w *fieldWriter) close(timeout time.Duration) bool {
	select {
	case <-w.stop:
		// already stopped
	default:
		close(w.stop)
	}
	select {
	case <-w.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
