// Package controller wires the dashboard together: it owns the canonical
// snapshot and the session state, applies commands and fetch results on a
// single goroutine, and drives the reconciling renderer. Racing fetches are
// applied in arrival order; the last response to arrive wins.
package controller

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgnsrekt/pulseboard/internal/derive"
	"github.com/dgnsrekt/pulseboard/internal/fetch"
	"github.com/dgnsrekt/pulseboard/internal/model"
	"github.com/dgnsrekt/pulseboard/internal/render"
	"github.com/dgnsrekt/pulseboard/internal/scheduler"
	"github.com/dgnsrekt/pulseboard/internal/session"
)

// Options configures an App.
type Options struct {
	Client       *fetch.Client
	Surface      render.Surface
	Logger       *slog.Logger
	PollInterval time.Duration
	SyncCadence  time.Duration
	PrefsPath    string
	Now          func() time.Time
}

type fetchResult struct {
	snap    *model.Snapshot
	series  *model.SeriesSnapshot
	status  model.SyncStatus
	hasStat bool
	animate bool
	err     error
}

// App is the single-goroutine application core. All state mutation happens
// inside Run; the other methods only post messages.
type App struct {
	client  *fetch.Client
	surface render.Surface
	log     *slog.Logger
	sched   *scheduler.Scheduler
	now     func() time.Time

	prefsPath string

	state   *session.State
	tracker fetch.Tracker
	cache   *render.Cache

	snapshot  *model.Snapshot
	series    *model.SeriesSnapshot
	status    model.SyncStatus
	detail    *model.StrategyData
	remaining time.Duration

	cmds       chan session.Command
	results    chan fetchResult
	details    chan *model.StrategyData
	refreshReq chan bool
	countdown  chan time.Duration
	visibility chan bool
}

// New builds an App with its scheduler wired but not started.
func New(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	var prefs session.Prefs
	if opts.PrefsPath != "" {
		p, err := session.LoadPrefs(opts.PrefsPath)
		if err != nil {
			opts.Logger.Warn("failed to load preferences", "error", err)
		} else {
			prefs = p
		}
	}

	a := &App{
		client:     opts.Client,
		surface:    opts.Surface,
		log:        opts.Logger,
		now:        opts.Now,
		prefsPath:  opts.PrefsPath,
		state:      session.NewState(prefs),
		cache:      render.NewCache(),
		remaining:  opts.SyncCadence,
		cmds:       make(chan session.Command, 16),
		results:    make(chan fetchResult, 4),
		details:    make(chan *model.StrategyData, 4),
		refreshReq: make(chan bool, 4),
		countdown:  make(chan time.Duration, 4),
		visibility: make(chan bool, 4),
	}
	a.sched = scheduler.New(opts.PollInterval, opts.SyncCadence,
		func(animate bool) { a.requestRefresh(animate) },
		func(remaining time.Duration) {
			select {
			case a.countdown <- remaining:
			default:
			}
		})
	return a
}

// Dispatch posts a parsed command to the run loop.
func (a *App) Dispatch(cmd session.Command) {
	a.cmds <- cmd
}

// SetVisible posts a visibility change. Hidden suspends polling; visible
// resumes it with an immediate suppressed refresh.
func (a *App) SetVisible(visible bool) {
	a.visibility <- visible
}

func (a *App) requestRefresh(animate bool) {
	select {
	case a.refreshReq <- animate:
	default:
	}
}

// Run executes the application loop until the context ends or a quit command
// arrives. The first render is a skeleton; polling starts after the first
// fetch completes, successful or not.
func (a *App) Run(ctx context.Context) error {
	a.renderFrame(false)

	a.startFetch(ctx, true)
	defer a.sched.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-a.cmds:
			if quit := a.applyCommand(ctx, cmd); quit {
				return nil
			}
		case res := <-a.results:
			a.applyResult(res)
		case data := <-a.details:
			// A stale detail landing after back is dropped.
			if a.state.View == session.ViewDetail {
				a.detail = data
				a.renderFrame(false)
			}
		case animate := <-a.refreshReq:
			a.startFetch(ctx, animate)
		case remaining := <-a.countdown:
			a.remaining = remaining
			a.renderFrame(false)
		case visible := <-a.visibility:
			if visible {
				a.sched.Resume()
			} else {
				a.sched.Suspend()
			}
		}
	}
}

// startFetch launches the snapshot, series, and status pulls off the run
// loop and posts one combined result.
func (a *App) startFetch(ctx context.Context, animate bool) {
	go func() {
		res := fetchResult{animate: animate}

		snap, err := a.client.Snapshot(ctx)
		if err != nil {
			res.err = err
			select {
			case a.results <- res:
			case <-ctx.Done():
			}
			return
		}
		res.snap = snap

		if series, err := a.client.Series(ctx); err != nil {
			a.log.Warn("series fetch failed", "error", err)
		} else {
			res.series = series
		}
		if status, err := a.client.SyncStatus(ctx); err != nil {
			a.log.Warn("sync status fetch failed", "error", err)
		} else {
			res.status = status
			res.hasStat = true
		}

		select {
		case a.results <- res:
		case <-ctx.Done():
		}
	}()
}

// applyResult installs a completed fetch. Failures keep the prior snapshot;
// the worst outcome of any failure is stale data.
func (a *App) applyResult(res fetchResult) {
	// Polling begins once the first fetch completes, successful or not; the
	// poll interval doubles as the retry policy after a failure.
	defer a.sched.Start()

	if res.err != nil {
		a.log.Warn("snapshot fetch failed", "error", res.err)
		return
	}

	changed, err := a.tracker.Changed(res.snap.Symbols)
	if err != nil {
		a.log.Warn("change detection failed", "error", err)
		changed = true
	}

	a.snapshot = res.snap
	if res.series != nil {
		a.series = res.series
	}
	if res.hasStat {
		a.status = res.status
		if t, ok := a.status.LastSyncTime(); ok {
			a.sched.SetLastSync(t)
			a.remaining = a.sched.Remaining()
		}
	}

	// An identical record list re-derives and re-renders nothing; the
	// one-second countdown tick keeps the status line current.
	if !changed {
		return
	}
	a.renderFrame(res.animate)
}

func (a *App) applyCommand(ctx context.Context, cmd session.Command) (quit bool) {
	switch c := cmd.(type) {
	case session.CmdCoin:
		a.state.SetCoin(c.Coin)
	case session.CmdView:
		a.state.SetView(c.View)
	case session.CmdRange:
		a.state.SetRange(c.Range)
	case session.CmdSearch:
		a.state.SetSearch(c.Term)
	case session.CmdSort:
		a.state.ToggleSort(c.Column)
	case session.CmdChart:
		a.state.ToggleChart()
	case session.CmdLogScale:
		a.state.ToggleLogScale()
	case session.CmdTheme:
		a.state.SetTheme(c.Theme)
		a.savePrefs()
	case session.CmdAccent:
		a.state.SetAccent(c.Accent)
		a.savePrefs()
	case session.CmdRefresh:
		a.startFetch(ctx, true)
		return false
	case session.CmdSelect:
		a.openDetail(ctx, c.Bucket, c.TSID)
		return false
	case session.CmdBack:
		a.state.LeaveDetail()
		a.detail = nil
	case session.CmdQuit:
		return true
	}

	// User-initiated changes render with entrance animation enabled.
	a.renderFrame(true)
	return false
}

func (a *App) savePrefs() {
	if a.prefsPath == "" {
		return
	}
	if err := session.SavePrefs(a.prefsPath, a.state.PrefsSnapshot()); err != nil {
		a.log.Warn("failed to save preferences", "error", err)
	}
}

// openDetail navigates to the per-strategy detail view. The payload is
// fetched off the run loop and applied when it lands; until then the detail
// panel renders empty.
func (a *App) openDetail(ctx context.Context, bucket, tsID string) {
	a.state.EnterDetail(bucket, tsID)
	a.detail = nil
	a.renderFrame(false)
	go func() {
		data, err := a.client.StrategyDetail(ctx, bucket, tsID)
		if err != nil {
			a.log.Warn("detail fetch failed", "bucket", bucket, "ts_id", tsID, "error", err)
			return
		}
		select {
		case a.details <- data:
		case <-ctx.Done():
		}
	}()
}

// renderFrame projects the current snapshot through the session state onto
// the surface.
func (a *App) renderFrame(animate bool) {
	a.surface.BeginFrame()

	countdown := a.remaining.Truncate(time.Second).String()
	a.surface.SetStatus(render.StatusLine{
		SyncState: a.status.State(),
		Countdown: countdown,
		Coin:      a.state.Coin,
		View:      string(a.state.View),
		Range:     string(a.state.Range),
		Search:    a.state.Search,
	})

	if a.snapshot == nil {
		a.surface.ShowSkeleton()
		if err := a.surface.Flush(); err != nil {
			a.log.Warn("render flush failed", "error", err)
		}
		return
	}

	if a.state.View == session.ViewDetail {
		a.surface.SetDetail(a.detail)
	} else {
		stats := derive.StatsFor(a.snapshot, a.state.Coin)
		a.surface.SetStats(a.state.Coin, render.StatFields(a.cache, a.state.Coin, stats))

		if a.state.View == session.ViewTop {
			a.surface.SetLeaderboards(derive.Leaderboards(a.snapshot, a.state.Coin))
		} else {
			rows := derive.Rows(a.snapshot, *a.state)
			a.surface.SetTable(render.TableHeader, render.TableRows(a.cache, rows, animate))
		}

		if a.state.ChartVisible {
			a.surface.SetChart(render.ChartView{
				Series:   derive.SeriesViews(a.series, *a.state, a.now()),
				LogScale: a.state.LogScale,
			})
		}
	}

	if err := a.surface.Flush(); err != nil {
		a.log.Warn("render flush failed", "error", err)
	}
}
