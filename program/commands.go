package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/keilerkonzept/leaderboard-tui/internal/api"
	"github.com/keilerkonzept/leaderboard-tui/internal/format"
	"github.com/keilerkonzept/leaderboard-tui/internal/leaderboard"
)

var (
	snapshotPage int
	snapshotJSON bool
	traderJSON   bool
)

var errNoHTTPBackend = errors.New("this command needs the HTTP backend; drop --demo")

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one page of the leaderboard and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSnapshot(cmd.Context(), cmd.OutOrStdout(), snapshotPage, snapshotJSON)
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Ask the backend to sync, then print the first page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		backend, client, err := newBackend()
		if err != nil {
			return err
		}
		if client == nil {
			return errNoHTTPBackend
		}
		ctrl := newController(cmd.Context(), backend)
		if err := settle(ctrl, ctrl.Sync()); err != nil {
			return err
		}
		return printPage(cmd.OutOrStdout(), ctrl.View(), false)
	},
}

var traderCmd = &cobra.Command{
	Use:   "trader <address>",
	Short: "Show one trader",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := newBackend()
		if err != nil {
			return err
		}
		if client == nil {
			return errNoHTTPBackend
		}
		trader, err := client.Trader(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printTrader(cmd.OutOrStdout(), trader, traderJSON)
	},
}

func init() {
	snapshotCmd.Flags().IntVar(&snapshotPage, "page", 1, "Page to print")
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "Print the page as JSON")
	traderCmd.Flags().BoolVar(&traderJSON, "json", false, "Print the trader as JSON")
}

func runSnapshot(ctx context.Context, w io.Writer, page int, asJSON bool) error {
	backend, _, err := newBackend()
	if err != nil {
		return err
	}
	ctrl := newController(ctx, backend)
	if err := settle(ctrl, ctrl.Fetch(0, 0)); err != nil {
		return err
	}
	if total := ctrl.View().TotalPages; page < 1 || (total > 0 && page > total) {
		return fmt.Errorf("page %d out of range [1, %d]", page, max(1, total))
	}
	ctrl.SetPage(page)
	return printPage(w, ctrl.View(), asJSON)
}

// settle runs cmd and every follow-up command against ctrl on the calling
// goroutine, returning the request errors seen on the way.
func settle(ctrl *leaderboard.Controller, cmd tui.Cmd) error {
	var errs error
	for cmd != nil {
		msg := cmd()
		switch msg := msg.(type) {
		case leaderboard.FetchResultMsg:
			errs = multierr.Append(errs, msg.Err)
		case leaderboard.SyncResultMsg:
			errs = multierr.Append(errs, msg.Err)
		}
		cmd = ctrl.Update(msg)
	}
	return errs
}

type pageJSON struct {
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Total      int                 `json:"total"`
	Entries    []leaderboard.Entry `json:"entries"`
}

func printPage(w io.Writer, v leaderboard.View, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pageJSON{
			Page:       v.Page,
			TotalPages: v.TotalPages,
			Total:      v.Total,
			Entries:    v.Entries,
		})
	}
	if v.Total == 0 {
		_, err := fmt.Fprintln(w, "No leaderboard data.")
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", showingLine(v), snapshotTable(v))
	return err
}

func printTrader(w io.Writer, t *api.Trader, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	}
	var first, last string
	if t.FirstTradeAt != nil {
		first = *t.FirstTradeAt
	}
	if t.LastTradeAt != nil {
		last = *t.LastTradeAt
	}
	out := table.New().
		Border(styles.NormalBorder()).
		Rows(
			[]string{"address", format.ChecksumAddress(t.Address)},
			[]string{"volume", format.Volume(t.TotalVolumeUSD)},
			[]string{"buys", format.Count(t.BuyCount)},
			[]string{"sells", format.Count(t.SellCount)},
			[]string{"first trade", format.RelativeTime(first)},
			[]string{"last trade", format.RelativeTime(last)},
		)
	_, err := fmt.Fprintln(w, out.String())
	return err
}
