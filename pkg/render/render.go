// Package render turns positioned events into boxes and writes them out.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/anrid/eventlayout/pkg/layout"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatSVG   Format = "svg"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatSVG}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", errors.Errorf("unknown output format %q", s)
}

// Options controls how boxes are derived from positioned events.
type Options struct {
	// Inset is the combined border and padding of a box.
	Inset float64
	// BorderBox means width and height include the inset. When false the
	// inset is taken off the content size.
	BorderBox bool
	// Labels maps event ids to display labels.
	Labels map[string]string
}

// Box is the visual rectangle of one event.
type Box struct {
	ID          string  `json:"id" yaml:"id"`
	Label       string  `json:"label,omitempty" yaml:"label,omitempty"`
	Start       int64   `json:"start" yaml:"start"`
	End         int64   `json:"end" yaml:"end"`
	ColumnIndex int     `json:"columnIndex" yaml:"column_index"`
	ColumnCount int     `json:"columnCount" yaml:"column_count"`
	Left        float64 `json:"left" yaml:"left"`
	Top         float64 `json:"top" yaml:"top"`
	Width       float64 `json:"width" yaml:"width"`
	Height      float64 `json:"height" yaml:"height"`
}

// BoxFor applies o to a positioned event. The inset never influences the
// column assignment, only the final size.
func BoxFor(p layout.Positioned, o Options) Box {
	w, h := p.Width, float64(p.Height)
	if !o.BorderBox {
		w = max(w-o.Inset, 0)
		h = max(h-o.Inset, 0)
	}
	return Box{
		ID:          p.ID,
		Label:       o.Labels[p.ID],
		Start:       p.Start,
		End:         p.End,
		ColumnIndex: p.ColumnIndex,
		ColumnCount: p.ColumnCount,
		Left:        p.Left,
		Top:         float64(p.Top),
		Width:       w,
		Height:      h,
	}
}

// Boxes applies BoxFor to every event.
func Boxes(events []layout.Positioned, o Options) []Box {
	out := make([]Box, len(events))
	for i, p := range events {
		out[i] = BoxFor(p, o)
	}
	return out
}

// Write renders events to w in the given format.
func Write(w io.Writer, format Format, events []layout.Positioned, o Options) error {
	boxes := Boxes(events, o)

	switch format {
	case FormatTable:
		_, err := io.WriteString(w, Table(boxes)+"\n")
		return errors.Wrap(err, "failed to write table")
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(boxes), "failed to encode JSON")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(boxes); err != nil {
			return errors.Wrap(err, "failed to encode YAML")
		}
		return errors.Wrap(enc.Close(), "failed to flush YAML")
	case FormatSVG:
		_, err := io.WriteString(w, SVG(boxes))
		return errors.Wrap(err, "failed to write SVG")
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

// Table renders boxes as a plain text table.
func Table(boxes []Box) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"ID", "Label", "Start", "End", "Column", "Left", "Top", "Width", "Height"})

	for _, b := range boxes {
		tbl.AppendRow(table.Row{
			b.ID,
			b.Label,
			b.Start,
			b.End,
			fmt.Sprintf("%d/%d", b.ColumnIndex+1, b.ColumnCount),
			trimFloat(b.Left),
			trimFloat(b.Top),
			trimFloat(b.Width),
			trimFloat(b.Height),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d events", len(boxes))})
	return tbl.Render()
}

func trimFloat(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
