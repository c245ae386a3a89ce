// Command leaderboard shows the top traders ranked by volume, either as an
// interactive terminal view or as a one-shot table.
//
//nolint:gochecknoglobals // cobra flags and the state built from them live at package level
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keilerkonzept/leaderboard-tui/internal/api"
	"github.com/keilerkonzept/leaderboard-tui/internal/config"
	"github.com/keilerkonzept/leaderboard-tui/internal/leaderboard"
)

const demoSize = 100

var (
	configPath     string
	apiURL         string
	demo           bool
	pageSize       int
	serverPageSize int
	logFile        string
	logLevel       string
	colorMode      string
	noAltScreen    bool
	logScale       bool
	noStats        bool

	// initialized in PersistentPreRunE
	settings *config.Config
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Top traders ranked by volume",
	Long: `leaderboard fetches the ranked trader list from the leaderboard API and
shows it one page at a time.

In a terminal it runs an interactive view with paging, sync and copy. When
stdout is not a terminal it prints the first page as a table.

Example:
  leaderboard --api-url https://lb.example.com/api/v1
  leaderboard --demo
  leaderboard snapshot --page 3 | less`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initGlobals(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !term.IsTerminal(os.Stdout.Fd()) {
			return runSnapshot(cmd.Context(), cmd.OutOrStdout(), 1, false)
		}
		return runInteractive(cmd.Context())
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configPath, "config", config.DefaultPath(), "Config file (yaml)")
	f.StringVar(&apiURL, "api-url", "", "Leaderboard API base URL")
	f.BoolVar(&demo, "demo", false, "Use generated data instead of the API (no sync)")
	f.IntVar(&pageSize, "page-size", 0, "Rows per page")
	f.IntVar(&serverPageSize, "server-page-size", 0, "Entries requested per fetch")
	f.StringVar(&logFile, "log-file", "", "Write logs to this file (rotated)")
	f.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&colorMode, "color", "", "Color output: auto, always, never")
	f.BoolVar(&noAltScreen, "no-alt-screen", false, "Do not use the alternate screen buffer (recommended inside IDE terminals)")
	f.BoolVar(&logScale, "log-scale", false, "Use a logarithmic Y axis for the volume plot")
	f.BoolVar(&noStats, "no-stats", false, "Hide request stats")

	rootCmd.AddCommand(snapshotCmd, syncCmd, traderCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// initGlobals resolves settings from defaults, the config file, the
// environment and changed flags, in that order.
func initGlobals(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	config.ApplyEnvironment(cfg)

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.API.BaseURL = apiURL
	}
	if flags.Changed("demo") {
		cfg.View.Demo = demo
	}
	if flags.Changed("page-size") {
		cfg.View.PageSize = pageSize
	}
	if flags.Changed("server-page-size") {
		cfg.API.ServerPageSize = serverPageSize
	}
	if flags.Changed("log-file") {
		cfg.Log.FileName = logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("color") {
		cfg.View.Color = colorMode
	}
	if flags.Changed("no-alt-screen") {
		cfg.View.AltScreen = !noAltScreen
	}
	if flags.Changed("log-scale") {
		cfg.View.LogScale = logScale
	}
	if flags.Changed("no-stats") {
		cfg.View.Stats = !noStats
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err = config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	applyColorMode(cfg.View.Color)
	settings = cfg
	return nil
}

func cleanup() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func applyColorMode(mode string) {
	switch mode {
	case "never":
		styles.SetColorProfile(termenv.Ascii)
	case "always":
		styles.SetColorProfile(termenv.TrueColor)
	}
}

// newBackend returns the configured backend. client is nil in demo mode.
func newBackend() (backend leaderboard.Backend, client *api.Client, err error) {
	if settings.View.Demo {
		return newDemoBackend(demoSize, uint64(time.Now().UnixNano()), time.Now()), nil, nil
	}
	client, err = api.NewClient(settings.API.BaseURL, &api.ClientOptions{
		Timeout:       settings.API.Timeout,
		RatePerSecond: settings.API.RateLimit,
		Burst:         settings.API.RateBurst,
		Logger:        logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, client, nil
}

func newController(ctx context.Context, backend leaderboard.Backend) *leaderboard.Controller {
	return leaderboard.NewController(backend, leaderboard.Options{
		Context:        ctx,
		Logger:         logger,
		ServerPageSize: settings.API.ServerPageSize,
		PageSize:       settings.View.PageSize,
	})
}

func runInteractive(ctx context.Context) error {
	backend, client, err := newBackend()
	if err != nil {
		return err
	}
	opts := modelOptions{
		Title:       "Top Traders",
		ViewSplit:   settings.View.ViewSplit,
		LogScale:    settings.View.LogScale,
		Stats:       settings.View.Stats,
		StatsWindow: settings.View.StatsWindow,
		MostActive:  settings.View.MostActive,
		Context:     ctx,
		Logger:      logger,
	}
	if client != nil {
		opts.Subtitle = client.BaseURL()
		opts.Health = client.Health
	} else {
		opts.Subtitle = "demo data"
	}
	m := newModel(newController(ctx, backend), opts)

	logger.Info("starting leaderboard view",
		zap.Bool("demo", client == nil),
		zap.Int("page_size", settings.View.PageSize),
		zap.Int("server_page_size", settings.API.ServerPageSize),
	)
	programOpts := []tui.ProgramOption{tui.WithInputTTY(), tui.WithContext(ctx)}
	if settings.View.AltScreen {
		programOpts = append(programOpts, tui.WithAltScreen())
	}
	_, err = tui.NewProgram(m, programOpts...).Run()
	return err
}
