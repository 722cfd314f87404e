// Package mode adapts the matcher to a launcher's mode protocol: the host
// enters and leaves the mode, reports every query change, selects an entry
// by its position in the last list and asks what text to emit for it.
//
// Calls are expected to be serialized by the host; a Mode is not safe for
// concurrent use. The index it searches is immutable and kept across
// deactivation so re-entering the mode is cheap.
package mode

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/unipick/pkg/catalog"
	"github.com/bastiangx/unipick/pkg/index"
	"github.com/bastiangx/unipick/pkg/search"
)

// DefaultLimit is the page size used when no limit source is configured.
const DefaultLimit = 32

// Adapter is the capability set a host launcher drives.
type Adapter interface {
	Activate() error
	Deactivate()
	OnQueryChanged(query string) []string
	OnEntrySelected(position int) Outcome
	OnActivate(entry catalog.Entry) string
}

// Outcome is the result of a selection event.
type Outcome struct {
	Action Action
	Entry  catalog.Entry
	Err    error
}

// IndexFunc produces the index on first activation.
type IndexFunc func() (*index.Index, error)

// QueryState is the per-session state: the current query and the results
// last shown to the host. It is replaced wholesale on every query.
type QueryState struct {
	Query   string
	Matches []search.Match
	Message string
}

// Config configures a Mode.
type Config struct {
	Name   string
	Limit  func() int // page size, read on every query
	Search search.Options
}

// Mode is the Adapter implementation backed by a search.Searcher.
type Mode struct {
	name     string
	build    IndexFunc
	limit    func() int
	opts     search.Options
	searcher *search.Searcher
	state    State
	session  *QueryState
}

// New creates an inactive Mode. The index is not built until Activate.
func New(build IndexFunc, cfg Config) *Mode {
	name := cfg.Name
	if name == "" {
		name = "unicode"
	}
	return &Mode{
		name:  name,
		build: build,
		limit: cfg.Limit,
		opts:  cfg.Search,
		state: StateInactive,
	}
}

// FromIndex returns an IndexFunc for an index that already exists.
func FromIndex(idx *index.Index) IndexFunc {
	return func() (*index.Index, error) { return idx, nil }
}

// Name returns the mode name shown by the host.
func (m *Mode) Name() string {
	return m.name
}

// State returns the current lifecycle state.
func (m *Mode) State() State {
	return m.state
}

// Activate enters the mode, building the index on the first call. A failed
// build leaves the mode inactive and is returned as *ActivationError; the
// next Activate tries again.
func (m *Mode) Activate() error {
	if m.state == StateActive {
		return nil
	}

	if m.searcher == nil {
		if m.build == nil {
			return &ActivationError{Err: ErrNoIndex}
		}
		idx, err := m.build()
		if err != nil {
			log.Errorf("Mode %s cannot activate: %v", m.name, err)
			return &ActivationError{Err: err}
		}
		s, err := search.NewSearcher(idx, m.opts)
		if err != nil {
			return &ActivationError{Err: err}
		}
		m.searcher = s
		log.Debugf("Mode %s ready with %d entries", m.name, idx.Len())
	}

	m.state = StateActive
	m.session = &QueryState{}
	return nil
}

// Deactivate leaves the mode. The session is dropped, the index is kept.
func (m *Mode) Deactivate() {
	m.state = StateInactive
	m.session = nil
}

// Configure changes the search options, taking effect on the next query.
func (m *Mode) Configure(opts search.Options) {
	m.opts = opts
	if m.searcher != nil {
		m.searcher.Configure(opts)
	}
}

// Searcher returns the searcher, or nil before the first activation.
func (m *Mode) Searcher() *search.Searcher {
	return m.searcher
}

func (m *Mode) pageSize() int {
	if m.limit == nil {
		return DefaultLimit
	}
	return m.limit()
}

// OnQueryChanged searches for query and returns one display line per result.
// While inactive it returns nil.
func (m *Mode) OnQueryChanged(query string) []string {
	if m.state != StateActive {
		log.Debugf("Query %q ignored: %v", query, ErrInactive)
		return nil
	}

	res := m.searcher.Search(query, m.pageSize())
	m.session = &QueryState{Query: query, Matches: res.Matches}
	if res.Correction != "" {
		m.session.Message = fmt.Sprintf("did you mean %q?", res.Correction)
	}

	lines := make([]string, len(res.Matches))
	for i, match := range res.Matches {
		lines[i] = FormatEntry(match.Entry)
	}
	return lines
}

// OnEntrySelected resolves position against the last result list. A stale
// position yields ActionNoOp with a *SelectionOutOfRangeError.
func (m *Mode) OnEntrySelected(position int) Outcome {
	if m.state != StateActive {
		return Outcome{Action: ActionNoOp, Err: ErrInactive}
	}

	matches := m.session.Matches
	if position < 0 || position >= len(matches) {
		err := &SelectionOutOfRangeError{Position: position, Length: len(matches)}
		log.Debugf("Ignoring selection: %v", err)
		return Outcome{Action: ActionNoOp, Err: err}
	}
	return Outcome{Action: ActionSelect, Entry: matches[position].Entry}
}

// OnActivate returns the text the host should insert for entry: the character itself.
func (m *Mode) OnActivate(entry catalog.Entry) string {
	return entry.String()
}

// OnComplete returns the primary name of the entry at position, for hosts
// that replace their input line on tab completion.
func (m *Mode) OnComplete(position int) (string, bool) {
	if m.state != StateActive {
		return "", false
	}
	if position < 0 || position >= len(m.session.Matches) {
		return "", false
	}
	return m.session.Matches[position].Entry.Name, true
}

// Query returns the query of the current session.
func (m *Mode) Query() string {
	if m.session == nil {
		return ""
	}
	return m.session.Query
}

// Message returns the hint for the last query, such as a suggested correction.
func (m *Mode) Message() string {
	if m.session == nil {
		return ""
	}
	return m.session.Message
}

// Results returns the entries last shown to the host.
func (m *Mode) Results() []catalog.Entry {
	if m.session == nil {
		return nil
	}
	out := make([]catalog.Entry, len(m.session.Matches))
	for i, match := range m.session.Matches {
		out[i] = match.Entry
	}
	return out
}

// FormatEntry renders entry as a result line: "<glyph>  <NAME>  (U+XXXX)".
func FormatEntry(entry catalog.Entry) string {
	return entry.Glyph() + "  " + entry.Name + "  (" + entry.Hex() + ")"
}

var _ Adapter = (*Mode)(nil)
