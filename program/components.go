package main

import (
	"fmt"
	"strconv"
	"strings"

	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/keilerkonzept/leaderboard-tui/internal/format"
	"github.com/keilerkonzept/leaderboard-tui/internal/leaderboard"
)

var (
	selectedColor = styles.AdaptiveColor{Light: "0", Dark: "9"}
	borderColor   = styles.AdaptiveColor{Light: "#555", Dark: "#555"}
	volumeColor   = styles.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	buyColor      = styles.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	sellColor     = styles.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	errorColor    = styles.AdaptiveColor{Light: "1", Dark: "9"}

	selectedFg = styles.NewStyle().Foreground(selectedColor)
	borderFg   = styles.NewStyle().Foreground(borderColor)
	volumeFg   = styles.NewStyle().Foreground(volumeColor).Bold(true)
	buyFg      = styles.NewStyle().Foreground(buyColor)
	sellFg     = styles.NewStyle().Foreground(sellColor)
	errorFg    = styles.NewStyle().Foreground(errorColor)
	titleStyle = styles.NewStyle().Bold(true)
	plotStyle  = styles.NewStyle().
			BorderStyle(styles.NormalBorder()).
			Foreground(borderColor).
			BorderForeground(borderColor)
)

// header is the title bar. onSync is nil for variants without a backend
// that can sync; such headers show no sync action.
type header struct {
	title    string
	subtitle string
	onSync   func() tui.Cmd
	syncing  bool
	spinner  string
}

func (h header) View(width int) string {
	title := titleStyle.Render(h.title)
	if h.subtitle != "" {
		title += "  " + borderFg.Render(h.subtitle)
	}
	if h.onSync == nil {
		return title
	}
	action := borderFg.Render("[s] sync")
	if h.syncing {
		action = selectedFg.Render(h.spinner + " syncing…")
	}
	gap := max(2, width-styles.Width(title)-styles.Width(action))
	return title + strings.Repeat(" ", gap) + action
}

// listItem is one leaderboard row as shown in the list.
type listItem struct {
	entry      leaderboard.Entry
	rankFormat string
	copied     bool
}

func (i listItem) Title() string {
	title := fmt.Sprintf(i.rankFormat, i.entry.Rank) + " " + format.TruncateAddress(i.entry.Address)
	if i.copied {
		title += "  ✓ copied"
	}
	return title
}

func (i listItem) Description() string {
	return fmt.Sprintf("%s  buys %s  sells %s  last %s",
		volumeFg.Render(format.Volume(i.entry.TotalVolume)),
		buyFg.Render(format.Count(i.entry.BuyCount)),
		sellFg.Render(format.Count(i.entry.SellCount)),
		format.RelativeTime(i.entry.LastTradeAt),
	)
}

func (i listItem) FilterValue() string { return i.entry.Address }

// rankFormat pads ranks to the width of the largest rank in the set.
func rankFormat(total int) string {
	digits := len(strconv.Itoa(max(1, total)))
	return "#%-" + strconv.Itoa(digits) + "d"
}

// renderPagination draws prev, the page window, an optional jump to the last
// page and next. Nothing is drawn when there are no pages.
func renderPagination(current, total int) string {
	if total <= 0 {
		return ""
	}
	var parts []string
	if leaderboard.HasPrev(current) {
		parts = append(parts, "‹")
	} else {
		parts = append(parts, borderFg.Render("‹"))
	}
	for _, p := range leaderboard.PageWindow(current, total) {
		if p == current {
			parts = append(parts, selectedFg.Render("["+strconv.Itoa(p)+"]"))
			continue
		}
		parts = append(parts, strconv.Itoa(p))
	}
	if leaderboard.ShowLastPageJump(current, total) {
		parts = append(parts, borderFg.Render("…"), strconv.Itoa(total))
	}
	if leaderboard.HasNext(current, total) {
		parts = append(parts, "›")
	} else {
		parts = append(parts, borderFg.Render("›"))
	}
	return strings.Join(parts, " ")
}

// showingLine renders "Showing X-Y of N addresses (Page P of T)".
func showingLine(v leaderboard.View) string {
	if v.Total == 0 {
		return "No addresses"
	}
	if len(v.Entries) == 0 {
		return fmt.Sprintf("Nothing on page %d of %d (%d addresses)", v.Page, v.TotalPages, v.Total)
	}
	return fmt.Sprintf("Showing %d-%d of %d addresses (Page %d of %d)", v.StartItem, v.EndItem, v.Total, v.Page, v.TotalPages)
}

// banner is the inline message shown above the rows after the first load.
func banner(mode leaderboard.Mode, s leaderboard.State, canSync bool) string {
	switch mode {
	case leaderboard.ModeInlineError:
		hint := "press r to reload"
		if canSync {
			hint += " or s to sync"
		}
		return errorFg.Render("⚠ " + s.Err + " (" + hint + ")")
	case leaderboard.ModeEmpty:
		if canSync {
			return borderFg.Render("No leaderboard data yet. Press s to sync from the chain.")
		}
		return borderFg.Render("No leaderboard data.")
	}
	return ""
}

// snapshotTable renders one page as a plain table for non-interactive output.
func snapshotTable(v leaderboard.View) string {
	t := table.New().
		Border(styles.NormalBorder()).
		Headers("RANK", "ADDRESS", "VOLUME", "BUYS", "SELLS", "FIRST TRADE", "LAST TRADE")
	for _, e := range v.Entries {
		t.Row(
			"#"+strconv.Itoa(e.Rank),
			format.ChecksumAddress(e.Address),
			format.Volume(e.TotalVolume),
			format.Count(e.BuyCount),
			format.Count(e.SellCount),
			format.RelativeTime(e.FirstTradeAt),
			format.RelativeTime(e.LastTradeAt),
		)
	}
	return t.String()
}
