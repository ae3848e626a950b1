// Package callqueue implements the handoff structure between background
// request completions and a single-threaded host loop. Background goroutines
// complete records concurrently; the host drains completed records once per
// tick and invokes their callbacks. Records are keyed by an internal,
// strictly increasing identifier that is never reused.
package callqueue

import "sync"

// ID correlates an issued request with its eventual completion. IDs are
// minted by Enqueue and stay internal to the queue's owner.
type ID uint64

// Callback receives the terminal result of one call. Exactly one of err and
// data is set.
type Callback[T any] func(err error, data T)

// Outcome is the terminal result written by a background completion.
// Exactly one of Err and Data is populated.
type Outcome[T any] struct {
	Err  error
	Data T
}

// Completion pairs a drained outcome with the callback registered for it.
type Completion[T any] struct {
	Callback Callback[T]
	Outcome  Outcome[T]
}

type record[T any] struct {
	cb   Callback[T]
	out  Outcome[T]
	done bool
}

// Queue is safe for concurrent completion by any number of goroutines and
// exclusive draining by the host loop. Ordering across calls is completion
// order: DrainReady returns records in the order their outcomes were
// written, not the order they were enqueued.
type Queue[T any] struct {
	mu      sync.Mutex
	nextID  ID
	pending map[ID]*record[T]
	ready   []ID
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{pending: make(map[ID]*record[T])}
}

// Enqueue registers a callback and mints the identifier for a new call.
// Called on the host thread before the background work starts, so the record
// exists before any possible completion.
func (q *Queue[T]) Enqueue(cb Callback[T]) ID {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	id := q.nextID
	q.pending[id] = &record[T]{cb: cb}
	return id
}

// Complete writes the terminal outcome for id. The first write wins; a
// second completion for the same id, or a completion for an unknown id, is
// dropped and reported as false.
func (q *Queue[T]) Complete(id ID, out Outcome[T]) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	rec, ok := q.pending[id]
	if !ok || rec.done {
		return false
	}

	rec.out = out
	rec.done = true
	q.ready = append(q.ready, id)
	return true
}

// DrainReady removes and returns every completed record in completion order.
// Records still awaiting an outcome are left in place. Called once per host
// tick; each record is returned at most once.
func (q *Queue[T]) DrainReady() []Completion[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ready) == 0 {
		return nil
	}

	out := make([]Completion[T], 0, len(q.ready))
	for _, id := range q.ready {
		rec, ok := q.pending[id]
		if !ok {
			continue
		}
		out = append(out, Completion[T]{Callback: rec.cb, Outcome: rec.out})
		delete(q.pending, id)
	}
	q.ready = q.ready[:0]
	return out
}

// Len reports the number of records currently held, completed or not.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
