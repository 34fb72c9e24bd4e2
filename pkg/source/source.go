// Package source provides the data-source variants a typeahead widget can
// draw records from: a static list, a synchronous provider function, or a
// context-aware asynchronous provider. Resolution is explicit and the
// resolved store can be cached for the lifetime of the widget.
package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoProvider is returned by Resolve when the source was constructed
// without records or a provider.
var ErrNoProvider = errors.New("source: no records or provider configured")

// Record is a single searchable item. Value is the primary text; Fields
// holds optional named fields for multi-key matching.
type Record struct {
	Value  string
	Fields map[string]string
}

// Key returns the text for a configured matching key. The empty key names
// the primary Value.
func (r Record) Key(name string) string {
	if name == "" {
		return r.Value
	}
	return r.Fields[name]
}

// Source is a tagged variant over the ways records can be supplied.
// Exactly one representation is active per instance.
type Source struct {
	static   []Record
	provider func() []Record
	fetch    func(context.Context) ([]Record, error)

	cache bool

	mu     sync.Mutex
	store  []Record
	loaded bool
}

// Static builds a source over a fixed record list.
func Static(records ...Record) *Source {
	return &Source{static: records, cache: true}
}

// Strings builds a static source where each value is its own record.
func Strings(values ...string) *Source {
	records := make([]Record, len(values))
	for i, v := range values {
		records[i] = Record{Value: v}
	}
	return Static(records...)
}

// FromFunc builds a source over a synchronous provider. The provider runs
// on every resolve unless caching is enabled.
func FromFunc(fn func() []Record) *Source {
	return &Source{provider: fn}
}

// FromFuncContext builds a source over an asynchronous provider. Fetch
// errors propagate to the Resolve caller unchanged in meaning; there are
// no retries.
func FromFuncContext(fn func(context.Context) ([]Record, error)) *Source {
	return &Source{fetch: fn}
}

// WithCache toggles store caching. Once enabled and the store is
// populated, the provider is not invoked again until Invalidate.
func (s *Source) WithCache(cache bool) *Source {
	s.cache = cache
	return s
}

// Resolve returns the current record store, invoking the provider when
// needed. Safe for concurrent use. With caching enabled resolves
// serialize so the provider fills the cache at most once per
// invalidation; uncached resolves may overlap.
func (s *Source) Resolve(ctx context.Context) ([]Record, error) {
	if s.static != nil {
		return s.static, nil
	}
	if !s.cache {
		return s.load(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.store, nil
	}
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.store = records
	s.loaded = true
	return records, nil
}

func (s *Source) load(ctx context.Context) ([]Record, error) {
	switch {
	case s.provider != nil:
		return s.provider(), nil
	case s.fetch != nil:
		records, err := s.fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve source: %w", err)
		}
		return records, nil
	}
	return nil, ErrNoProvider
}

// Cached reports whether a cached store is populated.
func (s *Source) Cached() bool {
	if s.static != nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache && s.loaded
}

// Invalidate clears the cached store so the next Resolve re-fetches.
func (s *Source) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = nil
	s.loaded = false
}
