// Package store runs a state.Model: messages are applied one at a time on a
// single goroutine while the commands they return run concurrently and post
// their results back.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/finny/internal/state"
)

var ErrStopped = errors.New("store stopped")

type envelope struct {
	msg tea.Msg
	w   *waiter
}

type Store struct {
	logger *slog.Logger
	inbox  chan envelope
	done   chan struct{}

	mu    sync.RWMutex
	model state.Model
	subs  map[int]chan state.Model
	next  int
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func New(model state.Model, opts ...Option) *Store {
	s := &Store{
		logger: slog.Default(),
		inbox:  make(chan envelope, 64),
		done:   make(chan struct{}),
		model:  model,
		subs:   make(map[int]chan state.Model),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run applies the model's startup command and then every dispatched message
// until ctx is cancelled.
func (s *Store) Run(ctx context.Context) error {
	defer s.stop()

	s.exec(s.Snapshot().Init(), nil)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-s.inbox:
			s.apply(env)
		}
	}
}

// Dispatch queues msg without waiting for it or its effects.
func (s *Store) Dispatch(msg tea.Msg) {
	s.post(envelope{msg: msg})
}

// Await dispatches msg and blocks until the operations it started have
// resolved. The returned error is the outcome of msg: its local validation
// error or the first failure among its results. Effects that follow from
// those results are not waited for.
func (s *Store) Await(ctx context.Context, msg tea.Msg) error {
	w := newWaiter()

	if !s.post(envelope{msg: msg, w: w}) {
		return ErrStopped
	}

	select {
	case err := <-w.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrStopped
	}
}

func (s *Store) Snapshot() state.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.model
}

// Subscribe returns a channel receiving the latest model after every applied
// message. Slow readers only ever see the most recent snapshot.
func (s *Store) Subscribe() (<-chan state.Model, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++

	ch := make(chan state.Model, 1)
	s.subs[id] = ch

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(ch)
			}
		})
	}
}

func (s *Store) apply(env envelope) {
	s.mu.Lock()
	model, cmd := s.model.Update(env.msg)
	s.model = model
	s.publish(model)
	s.mu.Unlock()

	if env.w == nil {
		s.exec(cmd, nil)
		return
	}

	if v, ok := env.msg.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			env.w.finish(err)
			s.exec(cmd, nil)

			return
		}
	}

	if env.w.root {
		// The awaited action itself: wait for what it started.
		env.w.root = false
		s.exec(cmd, env.w)
		env.w.finish(nil)

		return
	}

	// A result belonging to an awaited action.
	env.w.finish(errOf(env.msg))
	s.exec(cmd, nil)
}

// exec runs cmd on its own goroutine. Batches are expanded so every command
// in them runs concurrently.
func (s *Store) exec(cmd tea.Cmd, w *waiter) {
	if cmd == nil {
		return
	}

	w.add(1)

	go func() {
		msg := cmd()

		switch msg := msg.(type) {
		case nil:
			w.finish(nil)
		case tea.BatchMsg:
			for _, c := range msg {
				s.exec(c, w)
			}

			w.finish(nil)
		default:
			if !s.post(envelope{msg: msg, w: w}) {
				w.finish(ErrStopped)
			}
		}
	}()
}

func (s *Store) post(env envelope) bool {
	select {
	case s.inbox <- env:
		return true
	case <-s.done:
		return false
	}
}

// publish must be called with mu held.
func (s *Store) publish(model state.Model) {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}

		ch <- model
	}
}

func (s *Store) stop() {
	close(s.done)

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func errOf(msg tea.Msg) error {
	if r, ok := msg.(interface{ Err() error }); ok {
		return r.Err()
	}

	return nil
}
