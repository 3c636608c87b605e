package search

import (
	"context"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bellsenawat/instantsearch/pkg/insights"
	"github.com/bellsenawat/instantsearch/pkg/state"
	"github.com/bellsenawat/instantsearch/pkg/types"
)

var (
	searchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instantsearch_searches_total",
		Help: "The total number of executed searches",
	})
	rendersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instantsearch_renders_total",
		Help: "The total number of widget renders",
	})
	refinementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instantsearch_refinements_total",
		Help: "The total number of refinement interactions",
	})
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instantsearch_cache_hits_total",
		Help: "The total number of result cache hits",
	})
)

// Engine executes one query against an index and returns its results.
type Engine interface {
	Search(ctx context.Context, st *state.State) (*Results, error)
}

// Widget is the connector lifecycle: Init runs exactly once before the first
// search completes, Render once per completed search thereafter.
type Widget interface {
	Init(InitOptions) error
	Render(RenderOptions) error
}

type InitOptions struct {
	Helper    *Driver
	State     *state.State
	CreateURL func(*state.State) string
}

type RenderOptions struct {
	Helper    *Driver
	State     *state.State
	Results   *Results
	CreateURL func(*state.State) string
}

// Driver owns the current state snapshot and drives the registered widgets
// through their lifecycle. It is callback-driven and not safe for concurrent
// use, callers serialize access.
type Driver struct {
	ctx       context.Context
	engine    Engine
	state     *state.State
	widgets   []Widget
	cache     *Cache
	events    *insights.Publisher
	createURL func(*state.State) string
	mounted   bool
	results   *Results
}

func NewDriver(engine Engine, initial *state.State) *Driver {
	if initial == nil {
		initial = state.New()
	}
	d := &Driver{
		ctx:    context.Background(),
		engine: engine,
		state:  initial,
	}
	d.createURL = func(s *state.State) string {
		return "?" + s.Encode().Encode()
	}
	return d
}

func (d *Driver) UseCache(cache *Cache) *Driver {
	d.cache = cache
	return d
}

func (d *Driver) UseEvents(events *insights.Publisher) *Driver {
	d.events = events
	return d
}

// CreateURLWith replaces the default query-string URL builder.
func (d *Driver) CreateURLWith(build func(*state.State) string) *Driver {
	d.createURL = build
	return d
}

func (d *Driver) AddWidgets(widgets ...Widget) error {
	if d.mounted {
		return &types.UsageError{Reason: "widgets must be added before Mount"}
	}
	d.widgets = append(d.widgets, widgets...)
	return nil
}

func (d *Driver) State() *state.State {
	return d.state
}

// Results returns the result set of the last completed search, nil before
// the first one.
func (d *Driver) Results() *Results {
	return d.results
}

// SetState swaps the current snapshot. Chain with Search to execute it.
func (d *Driver) SetState(s *state.State) *Driver {
	d.state = s
	return d
}

// Mount runs Init on every widget, once, before any search has completed.
func (d *Driver) Mount() error {
	if d.mounted {
		return &types.UsageError{Reason: "driver is already mounted"}
	}
	d.mounted = true
	for _, widget := range d.widgets {
		if err := widget.Init(InitOptions{
			Helper:    d,
			State:     d.state,
			CreateURL: d.createURL,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Search executes the current state and dispatches the results to every
// widget in registration order.
func (d *Driver) Search() error {
	if !d.mounted {
		return &types.UsageError{Reason: "driver must be mounted before searching"}
	}
	searchesTotal.Inc()
	results, err := d.execute()
	if err != nil {
		return err
	}
	d.results = results
	if d.events != nil {
		if err := d.events.Send(insights.Event{Type: insights.EventSearch, Value: d.state.Query}); err != nil {
			log.Printf("could not publish search event: %v", err)
		}
	}
	for _, widget := range d.widgets {
		rendersTotal.Inc()
		if err := widget.Render(RenderOptions{
			Helper:    d,
			State:     d.state,
			Results:   results,
			CreateURL: d.createURL,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) execute() (*Results, error) {
	key := "search:" + d.state.Encode().Encode()
	if d.cache != nil {
		if results, ok := d.cache.Get(key); ok {
			cacheHitsTotal.Inc()
			return results, nil
		}
	}
	results, err := d.engine.Search(d.ctx, d.state)
	if err != nil {
		return nil, err
	}
	if d.cache != nil {
		d.cache.Set(key, results)
	}
	return results, nil
}

// NotifyRefine reports a refinement interaction to the attached event
// publisher. Publishing failures are logged, never surfaced to the caller.
func (d *Driver) NotifyRefine(attribute string, value string) {
	refinementsTotal.Inc()
	if d.events == nil {
		return
	}
	if err := d.events.Send(insights.Event{
		Type:      insights.EventRefine,
		Attribute: attribute,
		Value:     value,
	}); err != nil {
		log.Printf("could not publish refine event for %s: %v", attribute, err)
	}
}
