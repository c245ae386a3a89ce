package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedViewTotalPages(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 9, 10, 11, 19, 20, 21, 99, 100} {
		s := FetchSucceeded(NewState(), makeEntries(n))
		want := (n + 9) / 10
		assert.Equal(t, want, DerivedView(s).TotalPages, "entries=%d", n)
	}
	assert.Equal(t, 0, DerivedView(NewState()).TotalPages)
}

func TestDerivedViewPageLengths(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 7, 10, 23, 100} {
		s := FetchSucceeded(NewState(), makeEntries(n))
		total := s.TotalPages()
		seen := 0
		for page := 1; page <= total; page++ {
			v := DerivedView(PageChanged(s, page))
			want := min(10, n-(page-1)*10)
			require.Len(t, v.Entries, want, "entries=%d page=%d", n, page)
			assert.Equal(t, (page-1)*10+1, v.StartItem)
			assert.Equal(t, min(page*10, n), v.EndItem)
			assert.Equal(t, n, v.Total)
			for i, e := range v.Entries {
				assert.Equal(t, (page-1)*10+i+1, e.Rank)
			}
			seen += len(v.Entries)
		}
		assert.Equal(t, n, seen)
	}
}

func TestDerivedViewPastTheEnd(t *testing.T) {
	t.Parallel()

	s := PageChanged(FetchSucceeded(NewState(), makeEntries(12)), 3)
	v := DerivedView(s)
	assert.Empty(t, v.Entries)
	assert.Equal(t, 0, v.StartItem)
	assert.Equal(t, 0, v.EndItem)
	assert.Equal(t, 2, v.TotalPages)
}

func TestDerivedViewEmpty(t *testing.T) {
	t.Parallel()

	v := DerivedView(FetchSucceeded(NewState(), nil))
	assert.Empty(t, v.Entries)
	assert.Equal(t, 0, v.TotalPages)
	assert.Equal(t, 0, v.Total)
}

func TestDerivedViewIsPure(t *testing.T) {
	t.Parallel()

	s := PageChanged(FetchSucceeded(NewState(), makeEntries(35)), 4)
	a := DerivedView(s)
	b := DerivedView(s)
	assert.Equal(t, a, b)

	// Appending to a page must not clobber the next page in the state.
	_ = append(DerivedView(PageChanged(s, 1)).Entries, Entry{Address: "0xdead"})
	assert.Equal(t, 11, s.Entries[10].Rank)
}
