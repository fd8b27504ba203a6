/*
Package server implements msgpack IPC for grid generation services.

The server package provides a minimal interface for crossword grid filling
using msgpack serialization over stdin/stdout.

The protocol uses binary msgpack encoding. Messages are processed
synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured
messages via stdin and receive responses through stdout. Each message carries
an ID field the response echoes back.

Fill requests look like this (grid rows use '*' for blocked cells and '_' for
empty ones):

	{"id": "req_001", "g": ["___", "*__", "___"], "m": "recursive"}

The server responds with the filled rows and the committed assignments:

	{"id": "req_001", "g": ["cat", "*re", "wed"], "a": [...], "ok": true, "t": 145}

Lookup requests query the word sources directly, for clients that implement
their own editing loop:

	{"id": "look_001", "q": "c?t"}

Errors come back with the request ID and a code:

	{"id": "req_001", "e": "grid row 1 has 4 cells, want 3", "c": 400}

msgpack encoding keeps messages small and parsing cheap compared to JSON,
which matters for editors that re-fill on every layout change.
*/
package server

// FillRequest asks the server to fill a grid. Budget fields override the
// server's config when non-zero.
type FillRequest struct {
	ID           string   `msgpack:"id"`
	Rows         []string `msgpack:"g"`
	Strategy     string   `msgpack:"m,omitempty"` // "recursive" or "iterative"
	Words        []string `msgpack:"w,omitempty"` // extra words for this request only
	MaxAttempts  int      `msgpack:"ma,omitempty"`
	TimeoutMs    int      `msgpack:"t,omitempty"`
	Seed         int64    `msgpack:"s,omitempty"`
	Randomized   bool     `msgpack:"r,omitempty"`
	RequireFull  bool     `msgpack:"f,omitempty"`
	RepairBudget int      `msgpack:"rb,omitempty"`
}

// FillAssignment - one committed word
type FillAssignment struct {
	Row  int    `msgpack:"y"`
	Col  int    `msgpack:"x"`
	Dir  string `msgpack:"d"` // "across" or "down"
	Word string `msgpack:"w"`
}

// FillResponse - fill result
type FillResponse struct {
	ID          string           `msgpack:"id"`
	Rows        []string         `msgpack:"g"`
	Assignments []FillAssignment `msgpack:"a"`
	Complete    bool             `msgpack:"ok"`
	CellRatio   float64          `msgpack:"cr"`
	SlotRatio   float64          `msgpack:"sr"`
	Attempts    int              `msgpack:"n"`
	TimeTaken   int64            `msgpack:"t"`
}

// LookupRequest queries the word sources with a pattern ('?' for any letter).
type LookupRequest struct {
	ID      string `msgpack:"id"`
	Pattern string `msgpack:"q"`
	Limit   int    `msgpack:"l,omitempty"`
}

// LookupResponse - pattern lookup result
type LookupResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"w"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// FillError holds basic error information for failed requests
type FillError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
