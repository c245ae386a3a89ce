// Package leaderboard holds the client-side state machine behind the
// leaderboard view: the state record, the reducers that transition it, the
// derived page view and the controller that runs fetch and sync against the
// backend.
package leaderboard

const (
	// DefaultPageSize is how many entries one view page shows.
	DefaultPageSize = 10
	// DefaultServerPageSize is how many entries one fetch loads.
	DefaultServerPageSize = 100

	// MsgFetchFailed is shown when loading the leaderboard fails for any reason.
	MsgFetchFailed = "Failed to load leaderboard data. Please try again."
	// MsgSyncFailed is shown when the backend sync fails.
	MsgSyncFailed = "Failed to sync leaderboard data. Please try again."
)

// State is the single record the view renders from. Err is empty when there
// is no error.
//
// IsLoaded flips to true once the first fetch settles, successful or not,
// and never reverts.
type State struct {
	Entries     []Entry
	CurrentPage int
	PageSize    int

	IsLoading bool
	IsSyncing bool
	IsLoaded  bool
	Err       string
}

// NewState returns the state of a freshly mounted view.
func NewState() State {
	return State{
		CurrentPage: 1,
		PageSize:    DefaultPageSize,
	}
}

// TotalPages is ceil(len(Entries)/PageSize), 0 for an empty set.
func (s State) TotalPages() int {
	size := s.pageSize()
	return (len(s.Entries) + size - 1) / size
}

func (s State) pageSize() int {
	if s.PageSize < 1 {
		return DefaultPageSize
	}
	return s.PageSize
}

// FetchStarted marks a fetch in flight and clears any previous error.
func FetchStarted(s State) State {
	s.IsLoading = true
	s.Err = ""
	return s
}

// FetchSucceeded replaces the entries wholesale. The current page is pulled
// back into range if the new set is shorter.
func FetchSucceeded(s State, entries []Entry) State {
	s.Entries = entries
	s.IsLoading = false
	s.IsLoaded = true
	if total := s.TotalPages(); s.CurrentPage > max(1, total) {
		s.CurrentPage = max(1, total)
	}
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
	return s
}

// FetchFailed keeps the previous entries and records the fetch error.
func FetchFailed(s State) State {
	s.IsLoading = false
	s.IsLoaded = true
	s.Err = MsgFetchFailed
	return s
}

// SyncStarted marks a sync in flight and clears any previous error.
func SyncStarted(s State) State {
	s.IsSyncing = true
	s.Err = ""
	return s
}

// SyncSucceeded starts the dependent re-fetch. IsSyncing stays set until
// that fetch settles (see SyncFinished).
func SyncSucceeded(s State) State {
	return FetchStarted(s)
}

// SyncFailed records the sync error. Entries are untouched and no fetch
// follows.
func SyncFailed(s State) State {
	s.IsSyncing = false
	s.Err = MsgSyncFailed
	return s
}

// SyncFinished clears IsSyncing once the re-fetch after a sync settled.
func SyncFinished(s State) State {
	s.IsSyncing = false
	return s
}

// PageChanged moves to page. Callers only offer pages in [1, TotalPages].
func PageChanged(s State, page int) State {
	s.CurrentPage = page
	return s
}
