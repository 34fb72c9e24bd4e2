package typeahead

import "typeahead/pkg/source"

// Match is one matched record plus its match metadata. Derived per
// search, read-only, discarded with its feedback.
type Match struct {
	// Record is the matched store record.
	Record source.Record
	// Key is the configured key that matched ("" for the primary value).
	Key string
	// Value is the text of the matched key.
	Value string
	// Indexes are the matched rune positions of Value, for highlighting.
	Indexes []int
	// Score is the engine score; lower is better. Zero for engines that
	// keep store order.
	Score int

	pos int // original store position, tie-break order
}

// Feedback is the per-search result bundle passed to callbacks and
// events. Matches holds the full ordered match set; Results is Matches
// truncated to the configured cap. Created fresh on every search.
type Feedback struct {
	// Input is the (trimmed) raw input that triggered the search.
	Input string
	// Query is the input after the query transform.
	Query string
	// Matches is every matching record in final order.
	Matches []Match
	// Results is Matches capped at MaxResults.
	Results []Match
}

// Selection describes a chosen result.
type Selection struct {
	// Feedback is the search that produced the list.
	Feedback *Feedback
	// Index is the position inside Feedback.Results.
	Index int
	// Match is the chosen entry.
	Match Match
}
