// Package binding wraps a repository list query as cached, parameterized
// view state. A binding re-runs its query on first use, when its filter
// parameters change and when a writer invalidates it; between those points
// callers read the cached rows.
package binding

import (
	"log/slog"
	"sync"
)

// Binding caches the result of fetch for one set of filter parameters.
// P is the comparable parameter type (use struct{} for none), T the row
// type.
type Binding[P comparable, T any] struct {
	mu     sync.Mutex
	name   string
	fetch  func(P) ([]T, error)
	params P
	stale  bool
	rows   []T
}

// New creates a binding around a fetch function. The binding starts stale,
// so the first Rows call runs the query.
func New[P comparable, T any](name string, fetch func(P) ([]T, error)) *Binding[P, T] {
	return &Binding[P, T]{name: name, fetch: fetch, stale: true}
}

// SetParams changes the filter parameters. A real change marks the binding
// stale; setting identical parameters is a no-op.
func (b *Binding[P, T]) SetParams(p P) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p != b.params {
		b.params = p
		b.stale = true
	}
}

// Params returns the current filter parameters.
func (b *Binding[P, T]) Params() P {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.params
}

// Invalidate marks the binding stale so the next Rows call re-queries.
// Writers call this after a mutation instead of reloading everything.
func (b *Binding[P, T]) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stale = true
}

// Loading reports whether the next Rows call will hit the store.
func (b *Binding[P, T]) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stale
}

// Rows returns the bound rows, re-running the query first if the binding is
// stale. A failing query is logged and the previous successful result kept
// (an empty slice if the query has never succeeded); the error never reaches
// the caller.
func (b *Binding[P, T]) Rows() []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stale {
		rows, err := b.fetch(b.params)
		if err != nil {
			slog.Error("binding query failed, keeping previous result", "binding", b.name, "error", err)
		} else {
			b.rows = rows
		}
		b.stale = false
	}
	return b.rows
}
