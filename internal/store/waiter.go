package store

import "sync"

// waiter tracks the outstanding work of one awaited message. A nil waiter
// ignores every call.
type waiter struct {
	mu      sync.Mutex
	pending int
	err     error
	reply   chan error

	// root is true until the awaited message itself has been applied. Only
	// the loop goroutine reads or writes it.
	root bool
}

func newWaiter() *waiter {
	return &waiter{pending: 1, reply: make(chan error, 1), root: true}
}

func (w *waiter) add(n int) {
	if w == nil {
		return
	}

	w.mu.Lock()
	w.pending += n
	w.mu.Unlock()
}

// finish marks one unit of work as done, keeping the first error seen.
func (w *waiter) finish(err error) {
	if w == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err == nil {
		w.err = err
	}

	w.pending--
	if w.pending == 0 {
		w.reply <- w.err
	}
}
