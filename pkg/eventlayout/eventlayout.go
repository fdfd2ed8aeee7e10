package eventlayout

import (
	"io"
	"log/slog"

	"github.com/anrid/eventlayout/pkg/eventio"
	"github.com/anrid/eventlayout/pkg/layout"
	"github.com/anrid/eventlayout/pkg/render"
	"github.com/pkg/errors"
)

// LayOutParams configures a single Run.
type LayOutParams struct {
	InputFileOrURL string
	TotalWidth     float64
	Inset          float64
	BorderBox      bool
	Format         render.Format
	Output         io.Writer
	Logger         *slog.Logger
}

// Run loads events, lays them out and renders the result to p.Output.
func Run(p LayOutParams) (numEvents int, err error) {
	if p.Output == nil {
		return 0, errors.New("no output writer given")
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	logger.Debug("reading events", "source", p.InputFileOrURL)
	records, err := eventio.Load(p.InputFileOrURL)
	if err != nil {
		return 0, err
	}

	events, labels, err := eventio.Intervals(records)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid event in %s", p.InputFileOrURL)
	}
	logger.Debug("loaded events", "count", len(events))

	engine := layout.NewEngine(layout.WithWidth(p.TotalWidth), layout.WithLogger(logger))
	if err := engine.SetEvents(events); err != nil {
		return 0, errors.Wrapf(err, "invalid event in %s", p.InputFileOrURL)
	}

	positioned, err := engine.LayOut()
	if err != nil {
		return 0, err
	}

	maxColumns := 0
	for _, c := range engine.Clusters() {
		maxColumns = max(maxColumns, c.Columns)
	}
	logger.Info("laid out events",
		"events", len(positioned),
		"clusters", len(engine.Clusters()),
		"max_columns", maxColumns,
	)

	err = render.Write(p.Output, p.Format, positioned, render.Options{
		Inset:     p.Inset,
		BorderBox: p.BorderBox,
		Labels:    labels,
	})
	if err != nil {
		return 0, err
	}

	return len(positioned), nil
}
