package leaderboard

import (
	"context"
	"time"

	tui "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/keilerkonzept/leaderboard-tui/internal/api"
)

// Backend serves ranked traders, one server page at a time.
type Backend interface {
	Leaderboard(ctx context.Context, page, pageSize int) ([]api.Trader, error)
}

// Syncer is implemented by backends that can refresh their dataset.
// Backends without it get a view with no sync action.
type Syncer interface {
	Sync(ctx context.Context) error
}

// FetchResultMsg carries the outcome of one leaderboard fetch.
type FetchResultMsg struct {
	Gen       uint64
	Entries   []Entry
	Err       error
	AfterSync bool
	Duration  time.Duration
}

// SyncResultMsg carries the outcome of one sync request.
type SyncResultMsg struct {
	Err      error
	Duration time.Duration
}

// Controller owns the leaderboard State and turns fetch and sync into
// bubbletea commands. Its methods must be called from the Update goroutine;
// commands only do I/O and report back through messages.
//
// Each fetch is stamped with a generation. When fetches overlap, only the
// most recently issued one may change the entries; older responses are
// dropped on arrival.
type Controller struct {
	backend        Backend
	syncer         Syncer
	ctx            context.Context
	logger         *zap.Logger
	serverPageSize int

	state State
	gen   uint64
}

// Options configures a Controller.
type Options struct {
	// Context bounds every request. Defaults to context.Background.
	Context        context.Context
	Logger         *zap.Logger
	ServerPageSize int
	PageSize       int
}

// NewController creates a controller in its initial state.
func NewController(backend Backend, opts Options) *Controller {
	c := &Controller{
		backend:        backend,
		ctx:            opts.Context,
		logger:         opts.Logger,
		serverPageSize: opts.ServerPageSize,
		state:          NewState(),
	}
	if s, ok := backend.(Syncer); ok {
		c.syncer = s
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.serverPageSize < 1 {
		c.serverPageSize = DefaultServerPageSize
	}
	if opts.PageSize > 0 {
		c.state.PageSize = opts.PageSize
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// View derives the visible page from the current state.
func (c *Controller) View() View { return DerivedView(c.state) }

// Mode decides what to render for the current state.
func (c *Controller) Mode() Mode { return ModeOf(c.state) }

// CanSync reports whether the backend supports sync.
func (c *Controller) CanSync() bool { return c.syncer != nil }

// Fetch starts loading one server page (page 1, the configured server page
// size when zero values are given). It never cancels a fetch already in
// flight.
func (c *Controller) Fetch(page, serverPageSize int) tui.Cmd {
	return c.fetch(page, serverPageSize, false)
}

func (c *Controller) fetch(page, serverPageSize int, afterSync bool) tui.Cmd {
	if page < 1 {
		page = 1
	}
	if serverPageSize < 1 {
		serverPageSize = c.serverPageSize
	}
	c.gen++
	gen := c.gen
	c.state = FetchStarted(c.state)

	backend, ctx := c.backend, c.ctx
	return func() tui.Msg {
		start := time.Now()
		traders, err := backend.Leaderboard(ctx, page, serverPageSize)
		msg := FetchResultMsg{
			Gen:       gen,
			Err:       err,
			AfterSync: afterSync,
			Duration:  time.Since(start),
		}
		if err == nil {
			msg.Entries = EntriesFromTraders(traders)
		}
		return msg
	}
}

// Sync asks the backend to refresh and, once it has, re-fetches the first
// server page. Returns nil when the backend cannot sync.
func (c *Controller) Sync() tui.Cmd {
	if c.syncer == nil {
		return nil
	}
	c.state = SyncStarted(c.state)

	syncer, ctx := c.syncer, c.ctx
	return func() tui.Msg {
		start := time.Now()
		err := syncer.Sync(ctx)
		return SyncResultMsg{Err: err, Duration: time.Since(start)}
	}
}

// SetPage moves the view to page. No request is made.
func (c *Controller) SetPage(page int) {
	c.state = PageChanged(c.state, page)
}

// Update applies controller messages and returns any follow-up command.
// Other messages are ignored.
func (c *Controller) Update(msg tui.Msg) tui.Cmd {
	switch msg := msg.(type) {
	case FetchResultMsg:
		if msg.AfterSync {
			c.state = SyncFinished(c.state)
		}
		if msg.Gen != c.gen {
			c.logger.Debug("dropping stale leaderboard response",
				zap.Uint64("gen", msg.Gen),
				zap.Uint64("latest_gen", c.gen),
			)
			return nil
		}
		if msg.Err != nil {
			c.logger.Error("leaderboard fetch failed",
				zap.Error(msg.Err),
				zap.Duration("duration", msg.Duration),
			)
			c.state = FetchFailed(c.state)
			return nil
		}
		c.logger.Debug("leaderboard fetched",
			zap.Int("entries", len(msg.Entries)),
			zap.Duration("duration", msg.Duration),
		)
		c.state = FetchSucceeded(c.state, msg.Entries)
		return nil

	case SyncResultMsg:
		if msg.Err != nil {
			c.logger.Error("leaderboard sync failed",
				zap.Error(msg.Err),
				zap.Duration("duration", msg.Duration),
			)
			c.state = SyncFailed(c.state)
			return nil
		}
		c.logger.Info("leaderboard sync done", zap.Duration("duration", msg.Duration))
		c.state = SyncSucceeded(c.state)
		return c.fetch(1, c.serverPageSize, true)
	}
	return nil
}
