package main

import (
	"math"
	"strconv"
	"strings"

	styles "github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"
	"github.com/shopspring/decimal"

	"github.com/keilerkonzept/leaderboard-tui/internal/leaderboard"
)

// volumeSeries maps the fetched entries to one value per rank. Unparseable
// volumes plot as zero.
func volumeSeries(entries []leaderboard.Entry, logScale bool) []float64 {
	series := make([]float64, len(entries))
	for i, e := range entries {
		v, err := decimal.NewFromString(e.TotalVolume)
		if err != nil || v.IsNegative() {
			continue
		}
		value := v.InexactFloat64()
		if logScale {
			value = math.Log10(max(1, value))
		}
		series[i] = value
	}
	return series
}

// pageSeries keeps only the points of the visible page so it can be drawn
// over the full series in the highlight color.
func pageSeries(full []float64, v leaderboard.View) []float64 {
	series := make([]float64, len(full))
	if v.StartItem == 0 {
		return series
	}
	for i := v.StartItem - 1; i < v.EndItem && i < len(full); i++ {
		series[i] = full[i]
	}
	return series
}

func (m *model) resizePlot(w int, h int) {
	p := plot.NewCanvas(w, h)
	p.NumDataPoints = m.plot.NumDataPoints
	p.ShowAxis = m.plot.ShowAxis
	p.LineColors = m.plot.LineColors
	m.plot = &p
	m.updatePlot()
}

func (m *model) updatePlot() {
	s := m.ctrl.State()
	if len(s.Entries) == 0 {
		return
	}

	var highlight, dim plot.Color
	if styles.DefaultRenderer().HasDarkBackground() {
		highlight, dim = plot.Red, plot.DimGray
	} else {
		highlight, dim = plot.Black, plot.LightGray
	}

	full := volumeSeries(s.Entries, m.logScale)
	if len(full) < 2 {
		full = append(full, make([]float64, 2-len(full))...)
	}
	page := pageSeries(full, m.ctrl.View())
	m.plot.NumDataPoints = len(full)
	m.plot.LineColors = []plot.Color{dim, highlight}
	m.plot.Fill([][]float64{full, page})
}

func (m *model) plotView() string {
	canvas := ""
	if len(m.ctrl.State().Entries) > 0 {
		canvas = m.plot.String()
	}
	if canvas == "" {
		canvas = emptyPlot(m.rightWidth()-2, m.list.Height()-2)
	}

	linColor, logColor := borderFg, borderFg
	if m.logScale {
		logColor = selectedFg
	} else {
		linColor = selectedFg
	}
	linLog := linColor.Render("LIN") + " " + logColor.Render("LOG")

	labels := " " + linLog
	n := len(m.ctrl.State().Entries)
	if w := m.rightWidth() - 2; n > 0 {
		leftLabel := "#1"
		rightLabel := "#" + strconv.Itoa(n)
		minWidth := len(leftLabel) + len(rightLabel) + len("LIN LOG") + 4
		// Only the scale hint fits on narrow panes.
		if w >= minWidth {
			spaceTotal := max(2, w-(len(leftLabel)+len(rightLabel)+len("LIN LOG")))
			leftGap := spaceTotal / 2
			rightGap := spaceTotal - leftGap
			labels = borderFg.Render(leftLabel) +
				strings.Repeat(" ", leftGap) +
				linLog +
				strings.Repeat(" ", rightGap) +
				borderFg.Render(rightLabel)
		}
	}
	return plotStyle.Render(styles.JoinVertical(styles.Top, canvas, labels))
}

func emptyPlot(w, h int) string {
	if w < 1 || h < 1 {
		return ""
	}
	var sb strings.Builder
	sb.Grow((w + 1) * h)
	spaces := strings.Repeat(" ", w)
	for range h {
		sb.WriteString(spaces)
		sb.WriteRune('\n')
	}
	return sb.String()
}
