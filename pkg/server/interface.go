/*
Package server implements msgpack IPC for typeahead query services.

The server speaks a request/response protocol over stdin/stdout. Clients
send structured msgpack messages and receive msgpack responses; stderr
carries the logs.

A query request looks like:

	{"id": "req_001", "q": "ame", "l": 24}

The server responds with the ordered matches:

	{"id": "req_001", "s": [{"v": "amenity", "r": 1, "h": [0, 1, 2]}], "c": 1, "t": 145}

The "h" field holds the matched rune positions of the value so clients
can highlight them. "t" is the query time in microseconds.

A ping request checks liveness without running a search:

	{"id": "hc_001", "cmd": "ping"}

Failures come back as an error message carrying the request id:

	{"id": "req_001", "e": "query exceeds maximum length", "c": 400}

msgpack encoding keeps messages roughly 30 to 50% smaller than JSON and
cheaper to parse, which matters when every keystroke can turn into a
request.
*/
package server

// QueryRequest - minimal query request
type QueryRequest struct {
	ID    string `msgpack:"id"`
	Query string `msgpack:"q"`
	Limit int    `msgpack:"l,omitempty"`
	Cmd   string `msgpack:"cmd,omitempty"` // "ping"
}

// ResultEntry - one match in a query response
type ResultEntry struct {
	Value   string `msgpack:"v"`
	Rank    int    `msgpack:"r"`
	Indexes []int  `msgpack:"h,omitempty"`
}

// QueryResponse - query response
type QueryResponse struct {
	ID        string        `msgpack:"id"`
	Results   []ResultEntry `msgpack:"s"`
	Count     int           `msgpack:"c"`
	TimeTaken int64         `msgpack:"t"`
}

// StatusResponse - liveness and readiness messages
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// QueryError holds basic error information for failed requests
type QueryError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
