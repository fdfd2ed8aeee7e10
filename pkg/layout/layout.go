// Package layout assigns time-bounded events to side-by-side columns so that
// overlapping events never share a column.
package layout

import (
	"io"
	"log/slog"

	"github.com/anrid/eventlayout/pkg/interval"
	"github.com/pkg/errors"
)

// DefaultWidth is the total width shared by the columns of a cluster when
// no width is configured.
const DefaultWidth = 600

var (
	// ErrNoEvents is returned by LayOut when SetEvents was never called.
	ErrNoEvents = errors.New("no events set")
	// ErrDuplicateID is returned by SetEvents when two events share an id.
	ErrDuplicateID = errors.New("duplicate event id")
)

// Positioned is an event together with its column and box geometry.
type Positioned struct {
	ID          string  `json:"id" yaml:"id"`
	Start       int64   `json:"start" yaml:"start"`
	End         int64   `json:"end" yaml:"end"`
	Duration    int64   `json:"duration" yaml:"duration"`
	ColumnIndex int     `json:"columnIndex" yaml:"column_index"`
	ColumnCount int     `json:"columnCount" yaml:"column_count"`
	Width       float64 `json:"width" yaml:"width"`
	Left        float64 `json:"left" yaml:"left"`
	Top         int64   `json:"top" yaml:"top"`
	Height      int64   `json:"height" yaml:"height"`
}

// Cluster describes one transitively overlapping group of events.
type Cluster struct {
	IDs     []string
	Columns int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWidth sets the total width divided between the columns of a cluster.
func WithWidth(w float64) Option {
	return func(e *Engine) {
		e.width = w
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// Engine lays out a set of events. An Engine must not be shared between
// goroutines; each LayOut call builds its own tree and column state.
type Engine struct {
	width    float64
	logger   *slog.Logger
	events   []interval.Interval
	clusters []Cluster
}

// NewEngine returns an Engine with DefaultWidth and a discarding logger.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		width:  DefaultWidth,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// SetEvents validates and stores the events for the next LayOut call.
// An empty, non-nil slice is accepted and lays out to nothing.
func (e *Engine) SetEvents(events []interval.Interval) error {
	seen := make(map[string]struct{}, len(events))
	for _, ev := range events {
		if err := ev.Validate(); err != nil {
			return err
		}
		if _, ok := seen[ev.ID]; ok {
			return errors.Wrapf(ErrDuplicateID, "%q", ev.ID)
		}
		seen[ev.ID] = struct{}{}
	}

	e.events = append(make([]interval.Interval, 0, len(events)), events...)
	return nil
}

// Clusters returns the clusters found by the last LayOut call, in the order
// they were discovered.
func (e *Engine) Clusters() []Cluster {
	return e.clusters
}

// LayOut assigns every event a column. Events are returned in the order
// they were first positioned; when a cluster grows after an event was
// first positioned, the event carries the final column count.
func (e *Engine) LayOut() ([]Positioned, error) {
	if e.events == nil {
		return nil, ErrNoEvents
	}

	tree := interval.NewIntervalTree()
	for _, ev := range e.events {
		tree.Insert(ev)
	}

	p := &packer{
		tree:     tree,
		width:    e.width,
		rendered: make(map[string]bool, len(e.events)),
		index:    make(map[string]int, len(e.events)),
	}

	e.clusters = e.clusters[:0]
	for _, ev := range tree.OrderedData() {
		if p.rendered[ev.ID] {
			continue
		}

		cols := &columns{}
		p.pack([]interval.Interval{ev}, cols)

		c := Cluster{Columns: len(cols.list)}
		for _, col := range cols.list {
			for _, placed := range col.events {
				c.IDs = append(c.IDs, placed.ID)
			}
		}
		e.clusters = append(e.clusters, c)
		e.logger.Debug("laid out cluster", "first", ev.ID, "events", len(c.IDs), "columns", c.Columns)
	}

	e.logger.Debug("layout done", "events", len(p.out), "clusters", len(e.clusters), "emissions", p.emissions)
	return p.out, nil
}

// LayOut lays out events across totalWidth with a throwaway Engine.
func LayOut(events []interval.Interval, totalWidth float64) ([]Positioned, error) {
	e := NewEngine(WithWidth(totalWidth))
	if err := e.SetEvents(events); err != nil {
		return nil, err
	}
	return e.LayOut()
}
