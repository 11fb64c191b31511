// Package query implements the list query state machine shared by every list
// page: debounced search, status filters, sort, and paging, with page-reset
// semantics and snapshot sequencing so stale fetch responses can be dropped.
//
// Every qualifying transition commits a new Snapshot and notifies the commit
// callback exactly once. The callback decides what to do with it (issue a
// fetch); the machine itself never performs I/O.
package query

import (
	"sync"
	"time"

	"github.com/pkordes/fleet-console/internal/domain"
)

// DefaultDebounce is the quiet period applied to search input.
const DefaultDebounce = 300 * time.Millisecond

// Snapshot is one committed query state plus its sequence number. The
// sequence lets fetch results be correlated back to the state that requested
// them: a response whose Seq no longer matches the machine is stale.
type Snapshot struct {
	State State
	Seq   uint64
}

// Machine owns the query state of one list page. All methods are safe for
// concurrent use; the debounce timer fires on its own goroutine.
type Machine struct {
	mu       sync.Mutex
	clock    Clock
	debounce time.Duration
	defaults Defaults
	onCommit func(Snapshot)

	state         State
	pendingSearch string
	searchTimer   Timer
	seq           uint64
	totalPages    int // -1 until the first result reports it
}

// NewMachine builds a machine at its defaults. onCommit is invoked (outside
// the machine's lock) after every committed transition; it may be nil.
func NewMachine(defaults Defaults, debounce time.Duration, clock Clock, onCommit func(Snapshot)) *Machine {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if clock == nil {
		clock = SystemClock
	}
	return &Machine{
		clock:      clock,
		debounce:   debounce,
		defaults:   defaults,
		onCommit:   onCommit,
		state:      stateFromDefaults(defaults),
		totalPages: -1,
	}
}

// State returns a copy of the committed state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// SetSearchTerm records the term and starts (or restarts) the debounce
// timer. Rapid successive calls coalesce: only the last value after the quiet
// period commits, resets the page to 1, and triggers the callback. A final
// value equal to the already-committed term commits nothing, so a search
// typed and erased within the quiet period never causes a fetch.
func (m *Machine) SetSearchTerm(term string) {
	m.mu.Lock()
	m.pendingSearch = term
	if m.searchTimer != nil {
		m.searchTimer.Stop()
	}
	m.searchTimer = m.clock.AfterFunc(m.debounce, m.commitSearch)
	m.mu.Unlock()
}

func (m *Machine) commitSearch() {
	m.mu.Lock()
	m.searchTimer = nil
	if m.pendingSearch == m.state.Search {
		m.mu.Unlock()
		return
	}
	m.state.Search = m.pendingSearch
	m.state.Page = 1
	snap := m.bump()
	m.mu.Unlock()
	m.notify(snap)
}

// ToggleFilter adds or removes value from the filter set and resets the page
// to 1 immediately (no debounce).
func (m *Machine) ToggleFilter(value string) {
	m.mu.Lock()
	if m.state.HasFilter(value) {
		kept := m.state.Filters[:0:0]
		for _, f := range m.state.Filters {
			if f != value {
				kept = append(kept, f)
			}
		}
		m.state.Filters = kept
	} else {
		m.state.Filters = append(m.state.Filters, value)
	}
	m.state.Page = 1
	snap := m.bump()
	m.mu.Unlock()
	m.notify(snap)
}

// SetSort flips the direction when column is already the sort column,
// otherwise sorts by column ascending. Either way the page resets to 1.
func (m *Machine) SetSort(column string) {
	m.mu.Lock()
	if m.state.SortBy == column {
		if m.state.SortOrder == domain.SortAsc {
			m.state.SortOrder = domain.SortDesc
		} else {
			m.state.SortOrder = domain.SortAsc
		}
	} else {
		m.state.SortBy = column
		m.state.SortOrder = domain.SortAsc
	}
	m.state.Page = 1
	snap := m.bump()
	m.mu.Unlock()
	m.notify(snap)
}

// SetPage moves to page n without resetting anything else. Out-of-range
// values (n < 1, or n beyond the last known total) are a no-op.
func (m *Machine) SetPage(n int) {
	m.mu.Lock()
	if n < 1 || (m.totalPages >= 0 && n > m.totalPages) {
		m.mu.Unlock()
		return
	}
	m.state.Page = n
	snap := m.bump()
	m.mu.Unlock()
	m.notify(snap)
}

// SetPageSize changes the page size and resets the page to 1. Non-positive
// sizes are a no-op.
func (m *Machine) SetPageSize(n int) {
	m.mu.Lock()
	if n < 1 {
		m.mu.Unlock()
		return
	}
	m.state.PageSize = n
	m.state.Page = 1
	snap := m.bump()
	m.mu.Unlock()
	m.notify(snap)
}

// ClearAll atomically resets search, filters, sort, page size, and page to
// the page's defaults and commits once. A pending debounced search is
// cancelled, so no partially-cleared or superseded fetch can ever fire.
func (m *Machine) ClearAll() {
	m.mu.Lock()
	if m.searchTimer != nil {
		m.searchTimer.Stop()
		m.searchTimer = nil
	}
	m.pendingSearch = ""
	m.state = stateFromDefaults(m.defaults)
	m.totalPages = -1
	snap := m.bump()
	m.mu.Unlock()
	m.notify(snap)
}

// Refresh re-commits the current state unchanged, forcing a new fetch with a
// fresh sequence. Used for the initial load and the user's retry affordance.
func (m *Machine) Refresh() {
	m.mu.Lock()
	snap := m.bump()
	m.mu.Unlock()
	m.notify(snap)
}

// Accept reports whether a fetch issued for seq is still current. Stale
// responses must be discarded by the caller, not applied.
func (m *Machine) Accept(seq uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return seq == m.seq
}

// ObserveTotalPages records the page count from the latest applied result so
// SetPage can enforce its upper bound.
func (m *Machine) ObserveTotalPages(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n >= 0 {
		m.totalPages = n
	}
}

// bump advances the sequence and snapshots the state. Callers hold mu.
func (m *Machine) bump() Snapshot {
	m.seq++
	return Snapshot{State: m.state.clone(), Seq: m.seq}
}

func (m *Machine) notify(snap Snapshot) {
	if m.onCommit != nil {
		m.onCommit(snap)
	}
}
