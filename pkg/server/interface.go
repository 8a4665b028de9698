/*
Package server implements msgpack IPC for word completion services.

Clients write msgpack maps to the server's stdin and read one msgpack map back per
request from its stdout. Nothing else is written to stdout, logs go to stderr.

A completion request only needs a prefix and an optional limit:

	{"id": "req_001", "p": "happ", "l": 10}

The server answers with ranked suggestions, the count and the time taken in microseconds:

	{"id": "req_001", "s": [{"w": "happy", "r": 1, "f": 5}, {"w": "happen", "r": 2, "f": 3}], "c": 2, "t": 41}

Other actions are selected with the "action" key:

	{"id": "ins_1", "action": "insert", "w": "happiness", "s": 4}
	{"id": "bulk_1", "action": "bulk", "terms": [{"w": "cat"}, {"w": "car", "s": 2}]}
	{"id": "st_1", "action": "stats"}
	{"id": "h_1", "action": "health"}

Failed requests get a CompletionError carrying the request id, a message and a code.
*/
package server

import "github.com/bastiangx/wordindex/pkg/suggest"

// Actions understood by the server. An empty action means ActionComplete.
const (
	ActionComplete = "complete"
	ActionInsert   = "insert"
	ActionBulk     = "bulk"
	ActionStats    = "stats"
	ActionHealth   = "health"
)

// Request is the envelope for every message sent to the server.
type Request struct {
	ID     string          `msgpack:"id"`
	Action string          `msgpack:"action,omitempty"`
	Prefix string          `msgpack:"p,omitempty"`
	Limit  int             `msgpack:"l,omitempty"`
	Word   string          `msgpack:"w,omitempty"`
	Score  float64         `msgpack:"s,omitempty"`
	Terms  []suggest.Entry `msgpack:"terms,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word  string  `msgpack:"w"`
	Rank  uint16  `msgpack:"r"`
	Score float64 `msgpack:"f"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// StatusResponse answers insert and health requests and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// BulkResponse reports how a bulk request was absorbed.
type BulkResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Inserted int    `msgpack:"inserted"`
	Updated  int    `msgpack:"updated"`
	Repeated int    `msgpack:"repeated"`
	Rejected int    `msgpack:"rejected"`
}

// StatsResponse carries index counters.
type StatsResponse struct {
	ID     string        `msgpack:"id"`
	Status string        `msgpack:"status"`
	Stats  suggest.Stats `msgpack:"stats"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
