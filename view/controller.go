// Package view drives one dashboard view: selection changes go in, a fetch to the
// analysis API goes out, and the outcome comes back as a renderable state.
package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/presencedash/chart"
	"github.com/presencedash/models"
)

// Fetcher issues one request against the analysis API
type Fetcher interface {
	Fetch(ctx context.Context, path string) models.FetchOutcome
}

// Recorder receives fetch metrics
type Recorder interface {
	ObserveFetch(view, outcome string, elapsed time.Duration)
	RecordStale(view string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveFetch(string, string, time.Duration) {}
func (noopRecorder) RecordStale(string)                         {}

type State int

const (
	StateIdle State = iota
	StateLoading
	StateRendered
	StateEmpty
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ViewState is what the page shows for a view: the #loading, #chart-div and
// #data-error visibility plus the chart itself
type ViewState struct {
	View           string           `json:"view"`
	State          State            `json:"-"`
	StateName      string           `json:"state"`
	Selection      models.Selection `json:"selection"`
	ErrorText      string           `json:"error,omitempty"`
	LoadingVisible bool             `json:"loading"`
	ChartVisible   bool             `json:"chart_visible"`
	Adapter        string           `json:"adapter,omitempty"`
	Endpoint       string           `json:"endpoint,omitempty"`
	Generation     uint64           `json:"generation"`
	Chart          chart.Snippet    `json:"-"`
	Assets         []string         `json:"assets,omitempty"`
}

type Option func(*Controller)

func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.metrics = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller owns the selection and state of one view in one session.
// Each selection change bumps a generation counter; an outcome that comes back
// for an older generation is dropped.
type Controller struct {
	cfg       Config
	fetcher   Fetcher
	library   *chart.Library
	selection SelectionState
	metrics   Recorder
	logger    *slog.Logger

	mu         sync.Mutex
	generation uint64
	state      ViewState
}

func NewController(cfg Config, fetcher Fetcher, library *chart.Library, opts ...Option) *Controller {
	c := &Controller{
		cfg:     cfg,
		fetcher: fetcher,
		library: library,
		metrics: noopRecorder{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.library == nil {
		c.library = chart.NewLibrary("")
	}
	c.state = c.idle(models.Selection{}, 0)
	return c
}

func (c *Controller) Config() Config { return c.cfg }

// Selection returns a copy of the current filter tuple
func (c *Controller) Selection() models.Selection { return c.selection.Snapshot() }

// State returns the latest committed state
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Select replaces the selection and refreshes the view
func (c *Controller) Select(ctx context.Context, sel models.Selection) ViewState {
	c.selection.Apply(sel)
	return c.Refresh(ctx)
}

// SetSubject changes only the subject and refreshes the view
func (c *Controller) SetSubject(ctx context.Context, id string) ViewState {
	c.selection.SetSubject(id)
	return c.Refresh(ctx)
}

// SetPeriod changes only the period and refreshes the view
func (c *Controller) SetPeriod(ctx context.Context, key string) ViewState {
	c.selection.SetPeriod(key)
	return c.Refresh(ctx)
}

// SetGender changes only the gender filter and refreshes the view
func (c *Controller) SetGender(ctx context.Context, g models.Gender) ViewState {
	c.selection.SetGender(g)
	return c.Refresh(ctx)
}

// Refresh runs the fetch for the current selection and returns the resulting state.
// A selection that misses the view's required field goes back to idle without a fetch.
func (c *Controller) Refresh(ctx context.Context) ViewState {
	c.mu.Lock()
	sel := c.selection.Snapshot()
	c.generation++
	gen := c.generation

	branch, ok := c.cfg.Branch(sel)
	if !sel.Has(c.cfg.Requires) || !ok {
		c.state = c.idle(sel, gen)
		c.mu.Unlock()
		c.logger.Debug("view idle", "view", c.cfg.Name, "generation", gen)
		return c.state
	}

	path := branch.Path(sel)
	c.state = ViewState{
		View:           c.cfg.Name,
		State:          StateLoading,
		StateName:      StateLoading.String(),
		Selection:      sel,
		LoadingVisible: true,
		Endpoint:       path,
		Generation:     gen,
		Assets:         c.library.Assets(),
	}
	c.mu.Unlock()

	c.logger.Debug("view loading", "view", c.cfg.Name, "endpoint", path, "generation", gen)
	start := time.Now()
	outcome := c.fetcher.Fetch(ctx, path)
	next, kind := c.resolve(branch, outcome)
	c.metrics.ObserveFetch(c.cfg.Name, kind.String(), time.Since(start))

	next.View = c.cfg.Name
	next.StateName = next.State.String()
	next.Selection = sel
	next.Endpoint = path
	next.Generation = gen
	next.LoadingVisible = false

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.metrics.RecordStale(c.cfg.Name)
		c.logger.Info("discarding stale response", "view", c.cfg.Name, "generation", gen, "latest", c.generation)
		return c.state
	}
	c.state = next
	c.logger.Debug("view settled", "view", c.cfg.Name, "state", next.StateName, "outcome", kind.String(), "generation", gen)
	return c.state
}

// resolve turns a fetch outcome into the terminal state of a view
func (c *Controller) resolve(branch Branch, outcome models.FetchOutcome) (ViewState, models.OutcomeKind) {
	if outcome.Kind != models.OutcomeSuccess {
		c.logger.Debug("fetch failed", "view", c.cfg.Name, "error", outcome.Err())
		return failed(NoDataText), outcome.Kind
	}

	table, err := branch.Decode(outcome.Body)
	if err != nil {
		c.logger.Warn("failed to decode response", "view", c.cfg.Name, "error", err)
		return failed(NoDataText), models.OutcomeOtherError
	}

	if c.cfg.GuardColumn > 0 && !models.HasSignal(table.Rows, c.cfg.GuardColumn) {
		return ViewState{State: StateEmpty, ErrorText: c.cfg.EmptyText}, models.OutcomeEmpty
	}
	if len(c.cfg.TimeColumns) > 0 {
		models.NormalizeTimes(table.Rows, c.cfg.TimeColumns...)
	}

	assets := c.library.Load()

	ds, err := branch.Adapter.Build(table)
	if err != nil {
		c.logger.Warn("failed to build chart dataset", "view", c.cfg.Name, "adapter", branch.Adapter.Name(), "error", err)
		return failed(NoDataText), models.OutcomeOtherError
	}
	snippet, err := branch.Adapter.Draw(c.cfg.Name, ds)
	if err != nil {
		c.logger.Warn("failed to draw chart", "view", c.cfg.Name, "adapter", branch.Adapter.Name(), "error", err)
		return failed(NoDataText), models.OutcomeOtherError
	}

	return ViewState{
		State:        StateRendered,
		ChartVisible: true,
		Adapter:      branch.Adapter.Name(),
		Chart:        snippet,
		Assets:       assets,
	}, models.OutcomeSuccess
}

func (c *Controller) idle(sel models.Selection, gen uint64) ViewState {
	return ViewState{
		View:       c.cfg.Name,
		State:      StateIdle,
		StateName:  StateIdle.String(),
		Selection:  sel,
		Generation: gen,
		Assets:     c.library.Assets(),
	}
}

func failed(text string) ViewState {
	return ViewState{State: StateError, ErrorText: text}
}
