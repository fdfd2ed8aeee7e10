package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/anrid/eventlayout/pkg/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var positioned = []layout.Positioned{
	{ID: "1", Start: 20, End: 100, Duration: 80, ColumnIndex: 0, ColumnCount: 2, Width: 300, Left: 0, Top: 20, Height: 80},
	{ID: "2", Start: 40, End: 150, Duration: 110, ColumnIndex: 1, ColumnCount: 2, Width: 300, Left: 300, Top: 40, Height: 110},
}

func TestBoxForInset(t *testing.T) {
	r := require.New(t)

	p := positioned[0]
	b := BoxFor(p, Options{Inset: 6, BorderBox: true})
	r.Equal(300.0, b.Width)
	r.Equal(80.0, b.Height)

	b = BoxFor(p, Options{Inset: 6})
	r.Equal(294.0, b.Width)
	r.Equal(74.0, b.Height)
	r.Equal(0, b.ColumnIndex)
	r.Equal(20.0, b.Top)

	b = BoxFor(p, Options{Inset: 500})
	r.Zero(b.Width)
	r.Zero(b.Height)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	_, err = ParseFormat("pdf")
	require.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	r.NoError(Write(&buf, FormatJSON, positioned, Options{BorderBox: true, Labels: map[string]string{"2": "Review"}}))

	var boxes []Box
	r.NoError(json.Unmarshal(buf.Bytes(), &boxes))
	r.Len(boxes, 2)
	r.Equal("Review", boxes[1].Label)
	r.Equal(300.0, boxes[1].Left)
	r.Contains(buf.String(), `"columnCount": 2`)
}

func TestWriteYAML(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	r.NoError(Write(&buf, FormatYAML, positioned, Options{BorderBox: true}))

	var boxes []Box
	r.NoError(yaml.Unmarshal(buf.Bytes(), &boxes))
	r.Len(boxes, 2)
	r.Equal(1, boxes[1].ColumnIndex)
	r.Contains(buf.String(), "column_index: 1")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, positioned, Options{BorderBox: true, Labels: map[string]string{"1": "Standup"}}))

	out := buf.String()
	assert.Contains(t, out, "Standup")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "Total: 2 events")
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatSVG, positioned, Options{BorderBox: true, Labels: map[string]string{"1": "Q&A"}}))

	out := buf.String()
	assert.Contains(t, out, `<svg width="600" height="150"`)
	assert.Contains(t, out, `<rect x="300" y="40" width="300" height="110"`)
	assert.Contains(t, out, "Q&amp;A")
	assert.Contains(t, out, ">2</text>")
}

func TestWriteUnknownFormat(t *testing.T) {
	require.Error(t, Write(&bytes.Buffer{}, Format("pdf"), positioned, Options{}))
}
