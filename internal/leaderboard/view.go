package leaderboard

// View is the page of entries the presentation layer renders, plus the
// numbers behind "Showing X-Y of N".
type View struct {
	Entries    []Entry
	Page       int
	TotalPages int
	StartItem  int // 1-based, inclusive; 0 when Entries is empty
	EndItem    int // 1-based, inclusive; 0 when Entries is empty
	Total      int
}

// DerivedView slices the current page out of s. It is a pure function of
// s: a page past the end of the data yields an empty page, not an error.
func DerivedView(s State) View {
	size := s.pageSize()
	total := len(s.Entries)
	v := View{
		Page:       s.CurrentPage,
		TotalPages: s.TotalPages(),
		Total:      total,
	}

	start := (s.CurrentPage - 1) * size
	if start < 0 || start >= total {
		return v
	}
	end := min(s.CurrentPage*size, total)

	v.Entries = s.Entries[start:end:end]
	v.StartItem = start + 1
	v.EndItem = end
	return v
}
