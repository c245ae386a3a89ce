package leaderboard

// PageWindowSize is how many page numbers the pagination control shows.
const PageWindowSize = 5

// PageWindow returns the page numbers to offer around current, at most
// PageWindowSize of them, in ascending order.
func PageWindow(current, total int) []int {
	n := min(PageWindowSize, total)
	if n <= 0 {
		return nil
	}

	var first int
	switch {
	case total <= PageWindowSize:
		first = 1
	case current <= 3:
		first = 1
	case current >= total-2:
		first = total - PageWindowSize + 1
	default:
		first = current - 2
	}

	pages := make([]int, n)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}

// ShowLastPageJump reports whether the control should append an ellipsis and
// a jump to the last page after the window.
func ShowLastPageJump(current, total int) bool {
	return total > PageWindowSize && current < total-2
}

// HasPrev reports whether a previous-page action is available.
func HasPrev(current int) bool { return current > 1 }

// HasNext reports whether a next-page action is available.
func HasNext(current, total int) bool { return current < total }
