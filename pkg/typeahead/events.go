package typeahead

import (
	"sort"
	"sync"

	"typeahead/pkg/source"
)

// handlerList is an ordered set of subscribers for one event kind.
// Dispatch is synchronous in subscription order so hosts observe
// lifecycle points deterministically.
type handlerList[T any] struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]func(T)
}

func (l *handlerList[T]) subscribe(fn func(T)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.entries == nil {
		l.entries = make(map[int]func(T))
	}
	id := l.nextID
	l.nextID++
	l.entries[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.entries, id)
	}
}

func (l *handlerList[T]) emit(v T) {
	l.mu.Lock()
	ids := make([]int, 0, len(l.entries))
	for id := range l.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.entries[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Emitter dispatches the widget lifecycle events with typed payloads.
// Every subscription returns its unsubscribe func; detaching is the
// host's responsibility when it outlives the widget.
type Emitter struct {
	init      handlerList[struct{}]
	fetch     handlerList[[]source.Record]
	results   handlerList[*Feedback]
	rendered  handlerList[*Feedback]
	selection handlerList[Selection]
	unInit    handlerList[struct{}]
}

// OnInit fires when the widget attaches (Widget.Init).
func (e *Emitter) OnInit(fn func()) func() {
	return e.init.subscribe(func(struct{}) { fn() })
}

// OnFetch fires with the fetched store whenever a provider actually runs.
func (e *Emitter) OnFetch(fn func(records []source.Record)) func() {
	return e.fetch.subscribe(fn)
}

// OnResults fires with the feedback object after matching, before any
// rendering.
func (e *Emitter) OnResults(fn func(fb *Feedback)) func() {
	return e.results.subscribe(fn)
}

// OnRendered fires after the results list was regenerated.
func (e *Emitter) OnRendered(fn func(fb *Feedback)) func() {
	return e.rendered.subscribe(fn)
}

// OnSelection fires when a result is chosen.
func (e *Emitter) OnSelection(fn func(sel Selection)) func() {
	return e.selection.subscribe(fn)
}

// OnUnInit fires when the widget closes.
func (e *Emitter) OnUnInit(fn func()) func() {
	return e.unInit.subscribe(func(struct{}) { fn() })
}
