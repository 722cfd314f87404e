/*
Package server bridges a host launcher to the unicode mode over stdin/stdout.

Every message is a single msgpack map, written back to back with no framing.
The server answers each request in order and exits cleanly when stdin closes.

# IPC

The host enters the mode first, then reports every change of its input line:

	{"id": "1", "op": "enter"}
	{"id": "2", "op": "query", "q": "snowman", "l": 8}

Query responses list one row per result with its display line, codepoint and rank:

	{"id": "2", "s": [{"d": "☃  SNOWMAN  (U+2603)", "c": 9731, "r": 1}], "n": 1, "t": 42}

When nothing matches, "m" may carry a hint such as `did you mean "snowman"?`.
"t" is the time spent searching, in microseconds.

Selections refer to the position in the last query response. A stale
position is answered with "ok": false and leaves the session untouched:

	{"id": "3", "op": "select", "i": 0}
	{"id": "3", "ok": true, "cp": 9731, "name": "SNOWMAN", "emit": "☃"}

"complete" returns the name of the entry at "i" so the host can replace its
input line, "info" reports catalog and limit details, and "exit" leaves the
mode while keeping the index for the next "enter".

# Errors

Failures are reported as {"id", "e", "c"} with an HTTP-like code; no other
top-level response uses the "e" or "c" keys:
400 for malformed requests, 409 for events sent while the mode is inactive,
and 503 when the mode could not be activated because the character data is
corrupt. The server keeps running after every error.
*/
package server

// Ops understood by the server
const (
	OpEnter    = "enter"
	OpExit     = "exit"
	OpQuery    = "query"
	OpSelect   = "select"
	OpComplete = "complete"
	OpInfo     = "info"
)

// Request - any host request
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Query string `msgpack:"q,omitempty"`
	Index int    `msgpack:"i,omitempty"`
	Limit int    `msgpack:"l,omitempty"`
}

// QueryRow - one result row
type QueryRow struct {
	Display   string `msgpack:"d"`
	Codepoint int32  `msgpack:"c"`
	Rank      uint16 `msgpack:"r"`
}

// QueryResponse - answer to "query"
type QueryResponse struct {
	ID        string     `msgpack:"id"`
	Rows      []QueryRow `msgpack:"s"`
	Count     int        `msgpack:"n"`
	TimeTaken int64      `msgpack:"t"`
	Message   string     `msgpack:"m,omitempty"`
}

// SelectResponse - answer to "select"
type SelectResponse struct {
	ID        string `msgpack:"id"`
	OK        bool   `msgpack:"ok"`
	Codepoint int32  `msgpack:"cp"`
	Name      string `msgpack:"name,omitempty"`
	Emit      string `msgpack:"emit,omitempty"`
	Reason    string `msgpack:"why,omitempty"`
}

// CompleteResponse - answer to "complete"
type CompleteResponse struct {
	ID   string `msgpack:"id"`
	OK   bool   `msgpack:"ok"`
	Text string `msgpack:"text,omitempty"`
}

// InfoResponse - answer to "info"
type InfoResponse struct {
	ID           string   `msgpack:"id"`
	State        string   `msgpack:"state"`
	Entries      int      `msgpack:"entries"`
	Tokens       int      `msgpack:"tokens"`
	DefaultLimit int      `msgpack:"default_limit"`
	MaxLimit     int      `msgpack:"max_limit"`
	Categories   []string `msgpack:"categories,omitempty"`
	Available    []string `msgpack:"available,omitempty"`
	ConfigPath   string   `msgpack:"config,omitempty"`
}

// StatusResponse - answer to "enter" and "exit", and the ready signal
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// Error codes
const (
	CodeBadRequest  = 400
	CodeInactive    = 409
	CodeUnavailable = 503
)
