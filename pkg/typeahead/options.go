package typeahead

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"typeahead/pkg/engine"
	"typeahead/pkg/source"
)

// Construction and pipeline errors.
var (
	// ErrNoSource is returned by New for a config without a data source.
	ErrNoSource = errors.New("typeahead: config has no data source")
	// ErrBadThreshold is returned by New for a negative trigger threshold.
	ErrBadThreshold = errors.New("typeahead: threshold must not be negative")
	// ErrBadMaxResults is returned by New for a negative result cap.
	ErrBadMaxResults = errors.New("typeahead: max results must not be negative")
	// ErrClosed is returned by operations on a widget after Close.
	ErrClosed = errors.New("typeahead: widget is closed")
	// ErrSuperseded is returned by a search that was overtaken by a newer
	// trigger while in flight; its results were discarded.
	ErrSuperseded = errors.New("typeahead: search superseded by newer input")
)

// Defaults applied by New for zero-valued numeric fields.
const (
	DefaultThreshold  = 1
	DefaultMaxResults = 20
)

// Config describes a widget. Build it with DefaultConfig and override
// fields; it is immutable after New.
type Config struct {
	// Source supplies the records to match against. Required.
	Source *source.Source

	// Keys are the record fields to match, tried in order per record;
	// empty means the record's primary value.
	Keys []string

	// Engine selects the matching algorithm; nil means strict substring
	// matching honoring Diacritics.
	Engine engine.Engine

	// Diacritics enables diacritic-insensitive matching when Engine is
	// nil.
	Diacritics bool

	// Threshold is the minimum query rune length that triggers a search.
	// Zero means DefaultThreshold.
	Threshold int

	// Condition optionally triggers a search regardless of threshold.
	Condition func(query string) bool

	// Query optionally transforms the trimmed input before matching.
	Query func(input string) string

	// Trim strips surrounding whitespace from the input before the query
	// transform runs.
	Trim bool

	// Debounce is the interval the Input path collapses keystrokes over.
	// Zero disables debouncing.
	Debounce time.Duration

	// MaxResults caps Feedback.Results. Zero means DefaultMaxResults.
	MaxResults int

	// Sort overrides the engine's result order.
	Sort func(a, b Match) bool

	// RenderList keeps a live results list on successful searches. When
	// false the OnFeedback callback receives the feedback instead and no
	// list state is touched.
	RenderList bool

	// Highlight styles matched rune ranges in the rendered list.
	Highlight bool

	// WrapNavigation wraps the cursor at the list edges instead of
	// clamping.
	WrapNavigation bool

	// MaxVisible caps the rendered rows; zero shows every result.
	MaxVisible int

	// Customize rewrites a rendered line for a result.
	Customize func(m Match, line string) string

	// IndexPrefix builds a patricia prefix index over the resolved store
	// when the engine is the prefix engine. Candidate narrowing only;
	// other engines always scan linearly.
	IndexPrefix bool

	// NoResults runs when a triggered search matches nothing.
	NoResults func(fb *Feedback)

	// OnFeedback receives the feedback object when RenderList is false.
	OnFeedback func(fb *Feedback)

	// OnSelection runs when a result is selected.
	OnSelection func(sel Selection)

	// OnError receives failures from the debounced Input path, which has
	// no caller to return them to.
	OnError func(err error)

	// Logger defaults to a discard logger.
	Logger *log.Logger
}

// DefaultConfig returns the stock widget behavior: strict matching,
// threshold 1, trimmed input, rendered list with highlighting and wrapping
// navigation.
func DefaultConfig(src *source.Source) Config {
	return Config{
		Source:         src,
		Threshold:      DefaultThreshold,
		Trim:           true,
		MaxResults:     DefaultMaxResults,
		RenderList:     true,
		Highlight:      true,
		WrapNavigation: true,
	}
}
