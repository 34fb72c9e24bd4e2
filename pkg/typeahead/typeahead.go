// Package typeahead wires input events into a match/render/navigate
// pipeline: a debounced trigger resolves the data source, runs the
// configured search engine over it, and regenerates a single live results
// list that hosts can navigate and select from.
package typeahead

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"typeahead/internal/debounce"
	"typeahead/internal/listview"
	"typeahead/internal/logger"
	"typeahead/pkg/engine"
	"typeahead/pkg/source"
)

// Widget is one autocomplete instance. Configuration is immutable after
// New; list state and the last feedback are guarded by a mutex, and a
// monotonic generation counter discards searches overtaken by newer
// input.
type Widget struct {
	cfg    Config
	engine engine.Engine
	events Emitter
	deb    *debounce.Debouncer

	gen atomic.Uint64

	mu        sync.Mutex
	list      *listview.List
	index     *source.Index
	lastInput string
	feedback  *Feedback
	closed    bool
}

// New validates the config and builds a widget. Misconfiguration is an
// explicit construction-time error, never a silently inert instance.
//
// Build the Config with DefaultConfig and override fields: New fills in
// zero-valued numeric fields and the engine, but boolean behaviors that
// default to on (Trim, RenderList, Highlight, WrapNavigation) are only
// set by DefaultConfig. A literal Config gets them all off.
func New(cfg Config) (*Widget, error) {
	if cfg.Source == nil {
		return nil, ErrNoSource
	}
	if cfg.Threshold < 0 {
		return nil, ErrBadThreshold
	}
	if cfg.MaxResults < 0 {
		return nil, ErrBadMaxResults
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.MaxResults == 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Engine == nil {
		cfg.Engine = engine.NewStrict(engine.Options{Diacritics: cfg.Diacritics})
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	w := &Widget{
		cfg:    cfg,
		engine: cfg.Engine,
		deb:    debounce.New(cfg.Debounce),
	}
	w.list = listview.New(listview.DefaultStyles(), listview.Options{
		Highlight:  cfg.Highlight,
		MaxVisible: cfg.MaxVisible,
		Edge:       edgeMode(cfg.WrapNavigation),
		Customize:  w.customizer(),
	})
	return w, nil
}

func edgeMode(wrap bool) listview.EdgeMode {
	if wrap {
		return listview.Wrap
	}
	return listview.Clamp
}

// Events exposes the typed lifecycle emitter.
func (w *Widget) Events() *Emitter { return &w.events }

// Init marks the widget attached and fires the init event. Call it after
// subscribing.
func (w *Widget) Init() {
	w.events.init.emit(struct{}{})
}

// Input feeds a keystroke's worth of text through the debouncer. Errors
// from the resulting search go to OnError or the logger; superseded and
// closed results are dropped silently.
func (w *Widget) Input(text string) {
	w.deb.Call(func() {
		if _, err := w.Start(context.Background(), text); err != nil {
			if errors.Is(err, ErrSuperseded) || errors.Is(err, ErrClosed) {
				return
			}
			if w.cfg.OnError != nil {
				w.cfg.OnError(err)
				return
			}
			w.cfg.Logger.Errorf("search failed: %v", err)
		}
	})
}

// Start runs the full pipeline for a raw input: trim, query transform,
// trigger check, source resolution, matching, and list regeneration. A
// nil feedback with nil error means the trigger condition was not met
// (the open list, if any, was closed).
func (w *Widget) Start(ctx context.Context, input string) (*Feedback, error) {
	if w.isClosed() {
		return nil, ErrClosed
	}
	gen := w.gen.Add(1)

	raw := input
	if w.cfg.Trim {
		raw = strings.TrimSpace(input)
	}
	query := raw
	if w.cfg.Query != nil {
		query = w.cfg.Query(raw)
	}

	w.mu.Lock()
	w.lastInput = input
	w.mu.Unlock()

	if !w.triggered(query) {
		w.closeListAt(gen)
		return nil, nil
	}

	records, fetched, err := w.resolve(ctx)
	if err != nil {
		return nil, err
	}
	if w.superseded(gen) {
		return nil, ErrSuperseded
	}

	matches := w.listMatching(query, records, fetched)
	fb := &Feedback{Input: raw, Query: query, Matches: matches}
	if len(matches) > w.cfg.MaxResults {
		fb.Results = matches[:w.cfg.MaxResults]
	} else {
		fb.Results = matches
	}
	// Re-check after matching so observers never see a results event for
	// feedback a newer search already discarded.
	if w.superseded(gen) {
		return nil, ErrSuperseded
	}
	w.events.results.emit(fb)

	return fb, w.apply(gen, fb)
}

// Compose re-runs the pipeline for the last seen input.
func (w *Widget) Compose(ctx context.Context) (*Feedback, error) {
	w.mu.Lock()
	input := w.lastInput
	w.mu.Unlock()
	return w.Start(ctx, input)
}

func (w *Widget) triggered(query string) bool {
	if len([]rune(query)) >= w.cfg.Threshold {
		return true
	}
	return w.cfg.Condition != nil && w.cfg.Condition(query)
}

// resolve returns the record store and whether the provider actually ran.
func (w *Widget) resolve(ctx context.Context) ([]source.Record, bool, error) {
	wasCached := w.cfg.Source.Cached()
	records, err := w.cfg.Source.Resolve(ctx)
	if err != nil {
		return nil, false, err
	}
	fetched := !wasCached
	if fetched {
		w.events.fetch.emit(records)
	}
	return records, fetched, nil
}

// listMatching compares the query against every record's configured keys
// with the selected engine and orders the outcome: user comparator first,
// loose scores ascending next, original store order otherwise.
func (w *Widget) listMatching(query string, records []source.Record, fetched bool) []Match {
	keys := w.cfg.Keys
	if len(keys) == 0 {
		keys = []string{""}
	}

	var matches []Match
	for _, pos := range w.candidates(query, records, keys, fetched) {
		rec := records[pos]
		for _, key := range keys {
			value := rec.Key(key)
			if value == "" {
				continue
			}
			indexes, score, ok := w.engine.Match(query, value)
			if !ok {
				continue
			}
			matches = append(matches, Match{
				Record:  rec,
				Key:     key,
				Value:   value,
				Indexes: indexes,
				Score:   score,
				pos:     pos,
			})
			break // first matching key wins for a record
		}
	}

	switch {
	case w.cfg.Sort != nil:
		sort.SliceStable(matches, func(i, j int) bool {
			return w.cfg.Sort(matches[i], matches[j])
		})
	case w.engine.Name() == engine.NameLoose:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Score < matches[j].Score
		})
	}
	return matches
}

// candidates yields the record positions worth matching. The prefix
// engine can narrow them through the patricia index; everything else
// scans the whole store.
func (w *Widget) candidates(query string, records []source.Record, keys []string, fetched bool) []int {
	if w.cfg.IndexPrefix && w.engine.Name() == engine.NamePrefix {
		w.mu.Lock()
		if w.index == nil || fetched {
			w.index = source.BuildIndex(records, keys, engine.Folder(w.cfg.Diacritics))
		}
		ix := w.index
		w.mu.Unlock()
		return ix.Lookup(query)
	}

	positions := make([]int, len(records))
	for i := range records {
		positions[i] = i
	}
	return positions
}

// apply installs a finished search's outcome under the lock, re-checking
// the generation so a stale search can never clobber a newer list.
// Callbacks and events fire after the lock is released.
func (w *Widget) apply(gen uint64, fb *Feedback) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if gen != w.gen.Load() {
		w.mu.Unlock()
		return ErrSuperseded
	}

	var notify func()
	switch {
	case !w.cfg.RenderList:
		w.feedback = fb
		notify = func() {
			if w.cfg.OnFeedback != nil {
				w.cfg.OnFeedback(fb)
			}
		}
	case len(fb.Results) == 0:
		w.list.Close()
		w.feedback = fb
		notify = func() {
			if w.cfg.NoResults != nil {
				w.cfg.NoResults(fb)
			}
		}
	default:
		items := make([]listview.Item, len(fb.Results))
		for i, m := range fb.Results {
			items[i] = listview.Item{Text: m.Value, Indexes: m.Indexes, Payload: m}
		}
		w.list.SetItems(items)
		w.feedback = fb
		notify = func() { w.events.rendered.emit(fb) }
	}
	w.mu.Unlock()

	notify()
	return nil
}

// closeListAt closes the list for a below-threshold trigger unless a
// newer search took over in the meantime.
func (w *Widget) closeListAt(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen.Load() {
		return
	}
	w.list.Close()
}

func (w *Widget) customizer() listview.Customizer {
	if w.cfg.Customize == nil {
		return nil
	}
	return func(item listview.Item, line string) string {
		if m, ok := item.Payload.(Match); ok {
			return w.cfg.Customize(m, line)
		}
		return line
	}
}

func (w *Widget) superseded(gen uint64) bool {
	return gen != w.gen.Load()
}

func (w *Widget) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// ListOpen reports whether a results list is live.
func (w *Widget) ListOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.list.Open()
}

// Cursor returns the navigation cursor position, -1 when no list is
// open.
func (w *Widget) Cursor() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.list.Cursor()
}

// MoveNext and MovePrev step the navigation cursor (ArrowDown/ArrowUp).
func (w *Widget) MoveNext() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.list.Next()
}

func (w *Widget) MovePrev() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.list.Prev()
}

// View renders the live list; empty when closed.
func (w *Widget) View() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.list.Render()
}

// Select chooses the result at index, emits the selection, and closes
// the list (Enter semantics). A negative index selects at the cursor.
func (w *Widget) Select(index int) (Selection, bool) {
	w.mu.Lock()
	if !w.list.Open() || w.feedback == nil {
		w.mu.Unlock()
		return Selection{}, false
	}
	if index < 0 {
		index = w.list.Cursor()
	}
	if index < 0 || index >= len(w.feedback.Results) {
		w.mu.Unlock()
		return Selection{}, false
	}
	sel := Selection{
		Feedback: w.feedback,
		Index:    index,
		Match:    w.feedback.Results[index],
	}
	w.list.Close()
	w.mu.Unlock()

	w.events.selection.emit(sel)
	if w.cfg.OnSelection != nil {
		w.cfg.OnSelection(sel)
	}
	return sel, true
}

// CloseList dismisses the live list (Escape / outside-click semantics).
// Safe to call repeatedly.
func (w *Widget) CloseList() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.list.Close()
}

// Close releases the widget: the pending debounce timer is stopped, the
// list destroyed, and the unInit event fired. The widget is inert
// afterwards; Start and Compose return ErrClosed.
func (w *Widget) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.list.Close()
	w.mu.Unlock()

	w.deb.Stop()
	w.events.unInit.emit(struct{}{})
}
