package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"
	"go.uber.org/zap"

	"github.com/keilerkonzept/leaderboard-tui/internal/api"
	"github.com/keilerkonzept/leaderboard-tui/internal/format"
	"github.com/keilerkonzept/leaderboard-tui/internal/leaderboard"
)

const copiedResetAfter = 2 * time.Second

type copiedResetMsg struct{ seq int }

type healthMsg struct {
	health *api.Health
	err    error
}

type modelOptions struct {
	Title       string
	Subtitle    string
	ViewSplit   int
	LogScale    bool
	Stats       bool
	StatsWindow int
	MostActive  int

	// Health is probed once at startup when set.
	Health  func(ctx context.Context) (*api.Health, error)
	Context context.Context
	Logger  *zap.Logger
	// Copy writes to the system clipboard. Defaults to clipboard.WriteAll.
	Copy func(string) error
}

type model struct {
	width, height  int
	leftPaneWidth  int
	rightPaneWidth int
	viewSplit      int

	ctrl   *leaderboard.Controller
	header header

	list      list.Model
	listStyle styles.Style
	help      help.Model
	spinner   spinner.Model
	plot      *plot.Canvas
	logScale  bool

	metrics    *requestMetrics
	mostActive int
	healthLine string
	health     func(ctx context.Context) (*api.Health, error)
	ctx        context.Context
	logger     *zap.Logger

	copy     func(string) error
	copied   string
	copySeq  int
	copyNote string
}

func newModel(ctrl *leaderboard.Controller, opts modelOptions) *model {
	const (
		defaultWidth  = 80
		defaultHeight = 20
	)

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = styles.NewStyle().
		Border(styles.NormalBorder(), false, false, false, true).
		BorderForeground(borderColor).
		Foreground(selectedColor).
		Bold(false).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.
		Foreground(selectedColor)
	d.ShowDescription = true

	l := list.New(make([]list.Item, 0), d, defaultWidth/2-2, defaultHeight)
	l.Styles.NoItems = l.Styles.NoItems.
		Padding(0, 2)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)

	p := plot.NewCanvas(defaultWidth, defaultHeight)
	p.NumDataPoints = 2
	p.ShowAxis = false

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = selectedFg

	m := &model{
		viewSplit:  opts.ViewSplit,
		ctrl:       ctrl,
		list:       l,
		help:       help.New(),
		spinner:    s,
		plot:       &p,
		logScale:   opts.LogScale,
		metrics:    newRequestMetrics(opts.StatsWindow, opts.Stats),
		mostActive: opts.MostActive,
		health:     opts.Health,
		ctx:        opts.Context,
		logger:     opts.Logger,
		copy:       opts.Copy,
		header: header{
			title:    opts.Title,
			subtitle: opts.Subtitle,
		},
	}
	if ctrl.CanSync() {
		m.header.onSync = ctrl.Sync
	}
	if m.viewSplit == 0 {
		m.viewSplit = 55
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.copy == nil {
		m.copy = clipboard.WriteAll
	}
	if m.header.title == "" {
		m.header.title = "Leaderboard"
	}
	m.leftPaneWidth, m.rightPaneWidth = computePaneWidths(defaultWidth, m.viewSplit)
	return m
}

func (m *model) leftWidth() int {
	if m.leftPaneWidth > 0 {
		return m.leftPaneWidth
	}
	left, _ := computePaneWidths(m.width, m.viewSplit)
	return left
}

func (m *model) rightWidth() int {
	if m.rightPaneWidth > 0 {
		return m.rightPaneWidth
	}
	_, right := computePaneWidths(m.width, m.viewSplit)
	return right
}

func (m *model) healthCmd() tui.Cmd {
	if m.health == nil {
		return nil
	}
	probe, ctx := m.health, m.ctx
	return func() tui.Msg {
		h, err := probe(ctx)
		return healthMsg{health: h, err: err}
	}
}

func (m *model) Init() tui.Cmd {
	return tui.Batch(m.ctrl.Fetch(0, 0), m.spinner.Tick, m.healthCmd())
}

func (m *model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	switch msg := msg.(type) {
	case leaderboard.FetchResultMsg:
		m.metrics.observeFetch(msg.Duration, msg.Err)
		cmd := m.ctrl.Update(msg)
		m.refresh()
		return m, cmd
	case leaderboard.SyncResultMsg:
		m.metrics.observeSync(msg.Duration, msg.Err)
		cmd := m.ctrl.Update(msg)
		m.refresh()
		return m, cmd
	case healthMsg:
		if msg.err != nil {
			m.logger.Warn("backend health probe failed", zap.Error(msg.err))
			m.healthLine = "unreachable"
			return m, nil
		}
		m.logger.Info("backend health",
			zap.String("status", msg.health.Status),
			zap.String("service", msg.health.Service),
		)
		m.healthLine = strings.TrimSpace(msg.health.Status + " " + msg.health.Service)
		return m, nil
	case copiedResetMsg:
		if msg.seq == m.copySeq {
			m.copied, m.copyNote = "", ""
			m.refreshList()
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tui.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.header.spinner = m.spinner.View()
		return m, cmd
	case tui.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tui.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tui.Quit
		case key.Matches(msg, keys.Up):
			m.list.CursorUp()
			return m, nil
		case key.Matches(msg, keys.Down):
			m.list.CursorDown()
			return m, nil
		case key.Matches(msg, keys.Prev):
			v := m.ctrl.View()
			if leaderboard.HasPrev(v.Page) {
				m.setPage(v.Page - 1)
			}
			return m, nil
		case key.Matches(msg, keys.Next):
			v := m.ctrl.View()
			if leaderboard.HasNext(v.Page, v.TotalPages) {
				m.setPage(v.Page + 1)
			}
			return m, nil
		case key.Matches(msg, keys.First):
			if v := m.ctrl.View(); v.TotalPages > 0 {
				m.setPage(1)
			}
			return m, nil
		case key.Matches(msg, keys.Last):
			if v := m.ctrl.View(); v.TotalPages > 0 {
				m.setPage(v.TotalPages)
			}
			return m, nil
		case key.Matches(msg, keys.Sync):
			return m, m.requestSync()
		case key.Matches(msg, keys.Retry):
			if m.ctrl.State().IsLoading {
				return m, nil
			}
			cmd := m.ctrl.Fetch(0, 0)
			m.refresh()
			return m, cmd
		case key.Matches(msg, keys.Copy):
			return m, m.copySelected()
		case key.Matches(msg, keys.Scale):
			m.logScale = !m.logScale
			m.updatePlot()
			return m, nil
		}
	}
	var cmd tui.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) requestSync() tui.Cmd {
	if m.header.onSync == nil || m.ctrl.State().IsSyncing {
		return nil
	}
	cmd := m.header.onSync()
	m.refresh()
	return cmd
}

func (m *model) setPage(page int) {
	m.ctrl.SetPage(page)
	m.refresh()
	m.list.Select(0)
}

func (m *model) copySelected() tui.Cmd {
	selected, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return nil
	}
	address := format.ChecksumAddress(selected.entry.Address)
	if err := m.copy(address); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		m.copyNote = "copy failed: " + err.Error()
		m.copied = ""
	} else {
		m.copyNote = "copied " + address
		m.copied = selected.entry.Address
	}
	m.copySeq++
	m.refreshList()
	seq := m.copySeq
	return tui.Tick(copiedResetAfter, func(time.Time) tui.Msg {
		return copiedResetMsg{seq: seq}
	})
}

// refresh syncs the list, plot and header with the controller state.
func (m *model) refresh() {
	m.header.syncing = m.ctrl.State().IsSyncing
	m.refreshList()
	m.updatePlot()
}

func (m *model) refreshList() {
	v := m.ctrl.View()
	rf := rankFormat(v.Total)
	items := make([]list.Item, len(v.Entries))
	for i, e := range v.Entries {
		items[i] = listItem{
			entry:      e,
			rankFormat: rf,
			copied:     m.copied != "" && e.Address == m.copied,
		}
	}
	index := m.list.Index()
	m.list.SetItems(items)
	if index < len(items) {
		m.list.Select(index)
	}
}

func (m *model) statsLines() int {
	if !m.metrics.enabled {
		return 0
	}
	// title, fetch, sync, backend, most active
	return 5
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	m.leftPaneWidth, m.rightPaneWidth = computePaneWidths(m.width, m.viewSplit)

	// header, status line, banner, help
	const chromeLines = 4
	available := max(1, m.height-chromeLines-m.statsLines())

	leftW := max(1, m.leftWidth())
	rightW := max(1, m.rightWidth())

	m.list.SetSize(leftW, available)
	m.listStyle = styles.NewStyle().Width(leftW).Height(available)

	// Right side is the plot canvas plus one label line inside a border.
	plotHeight := max(1, available-3)
	plotWidth := max(1, rightW-2)
	m.resizePlot(plotWidth, plotHeight)
}

func (m *model) View() string {
	mode := m.ctrl.Mode()
	s := m.ctrl.State()
	if mode.FullScreen() {
		return m.fullScreenView(mode, s)
	}

	v := m.ctrl.View()
	status := showingLine(v)
	if s.IsLoading {
		status += "  " + m.spinner.View() + " refreshing"
	}
	if pages := renderPagination(v.Page, v.TotalPages); pages != "" {
		status += "    " + pages
	}

	notice := banner(mode, s, m.ctrl.CanSync())
	if notice == "" && m.copyNote != "" {
		notice = borderFg.Render(m.copyNote)
	}

	left := m.listStyle.Render(m.list.View())
	body := styles.JoinHorizontal(styles.Top, left, m.plotView())

	parts := []string{m.header.View(m.width), status, notice, body}
	if stats := m.statsView(s); stats != "" {
		parts = append(parts, stats)
	}
	parts = append(parts, m.help.View(keys))
	return styles.JoinVertical(styles.Left, parts...)
}

func (m *model) fullScreenView(mode leaderboard.Mode, s leaderboard.State) string {
	var content string
	switch mode {
	case leaderboard.ModeLoading:
		content = m.spinner.View() + " Loading leaderboard…"
	case leaderboard.ModeFatal:
		hint := "press r to retry"
		if m.ctrl.CanSync() {
			hint += " or s to sync"
		}
		content = styles.JoinVertical(styles.Center,
			errorFg.Render(s.Err),
			borderFg.Render(hint),
		)
	}
	if m.width < 1 || m.height < 2 {
		return content
	}
	body := styles.Place(m.width, m.height-1, styles.Center, styles.Center, content)
	return styles.JoinVertical(styles.Left, body, m.help.View(keys))
}

func (m *model) statsView(s leaderboard.State) string {
	if !m.metrics.enabled {
		return ""
	}
	health := m.healthLine
	if health == "" {
		health = "n/a"
	}
	sync := m.metrics.sync.String()
	if !m.ctrl.CanSync() {
		sync = "unavailable"
	}
	active := "-"
	if top := leaderboard.MostActive(s.Entries, m.mostActive); len(top) > 0 {
		names := make([]string, len(top))
		for i, a := range top {
			names[i] = fmt.Sprintf("%s (%s)", format.TruncateAddress(a.Address), format.Count(int64(a.Trades)))
		}
		active = strings.Join(names, ", ")
	}
	lines := []string{
		"REQUEST STATS",
		"fetch: " + m.metrics.fetch.String(),
		"sync: " + sync,
		"backend: " + health,
		"most active: " + active,
	}
	return borderFg.Render(strings.Join(lines, "\n"))
}

func computePaneWidths(totalWidth int, splitPercent int) (left, right int) {
	if totalWidth <= 1 {
		return 1, 1
	}
	left = totalWidth * splitPercent / 100
	left = min(max(1, left), totalWidth-1)
	right = totalWidth - left

	// Keep panes readable when the terminal is wide enough.
	const minPane = 18
	if totalWidth >= minPane*2 {
		if left < minPane {
			left = minPane
			right = totalWidth - left
		}
		if right < minPane {
			right = minPane
			left = totalWidth - right
		}
	}
	return max(1, left), max(1, right)
}
