package eventio

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anrid/eventlayout/pkg/interval"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `label, end, id, start
Standup, 100, 1, 20
Review, 150, 2, 40
Lunch, 300, 3, 160
`

const sampleYAML = `- id: "1"
  start: 20
  end: 100
  label: Standup
- id: "2"
  start: 40
  end: 150
`

func TestReadCSV(t *testing.T) {
	r := require.New(t)

	recs, err := ReadCSV(strings.NewReader(sampleCSV))
	r.NoError(err)
	r.Equal([]Record{
		{ID: "1", Start: 20, End: 100, Label: "Standup"},
		{ID: "2", Start: 40, End: 150, Label: "Review"},
		{ID: "3", Start: 160, End: 300, Label: "Lunch"},
	}, recs)
}

func TestReadCSVWithoutLabel(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader("id,start,end\na,1,2\n"))
	require.NoError(t, err)
	require.Equal(t, []Record{{ID: "a", Start: 1, End: 2}}, recs)
}

func TestReadCSVErrors(t *testing.T) {
	for name, input := range map[string]string{
		"empty":          "",
		"missing column": "id,start\n1,2\n",
		"bad start":      "id,start,end\n1,soon,5\n",
		"bad end":        "id,start,end\n1,2,later\n",
	} {
		_, err := ReadCSV(strings.NewReader(input))
		require.Error(t, err, name)
	}
}

func TestReadYAML(t *testing.T) {
	r := require.New(t)

	recs, err := ReadYAML(strings.NewReader(sampleYAML))
	r.NoError(err)
	r.Equal([]Record{
		{ID: "1", Start: 20, End: 100, Label: "Standup"},
		{ID: "2", Start: 40, End: 150},
	}, recs)

	recs, err = ReadYAML(strings.NewReader(""))
	r.NoError(err)
	r.Empty(recs)

	_, err = ReadYAML(strings.NewReader("id: not-a-list"))
	r.Error(err)
}

func TestLoadFile(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "events.csv")
	r.NoError(os.WriteFile(csvPath, []byte(sampleCSV), 0o644))
	recs, err := Load(csvPath)
	r.NoError(err)
	r.Len(recs, 3)

	yamlPath := filepath.Join(dir, "events.yml")
	r.NoError(os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))
	recs, err = Load(yamlPath)
	r.NoError(err)
	r.Len(recs, 2)
}

func TestLoadURL(t *testing.T) {
	r := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/events.yaml":
			w.Write([]byte(sampleYAML))
		case "/events.csv":
			w.Write([]byte(sampleCSV))
		default:
			http.NotFound(w, req)
		}
	}))
	defer srv.Close()

	recs, err := Load(srv.URL + "/events.yaml")
	r.NoError(err)
	r.Len(recs, 2)

	recs, err = Load(srv.URL + "/events.csv?rev=2")
	r.NoError(err)
	r.Len(recs, 3)

	_, err = Load(srv.URL + "/missing.csv")
	r.ErrorContains(err, "status code: 404")
}

func TestIntervals(t *testing.T) {
	r := require.New(t)

	ivs, labels, err := Intervals([]Record{
		{ID: "1", Start: 20, End: 100, Label: "Standup"},
		{ID: "2", Start: 40, End: 150},
	})
	r.NoError(err)
	r.Equal([]interval.Interval{{ID: "1", Start: 20, End: 100}, {ID: "2", Start: 40, End: 150}}, ivs)
	r.Equal(map[string]string{"1": "Standup"}, labels)

	_, _, err = Intervals([]Record{{ID: "x", Start: 5, End: 1}})
	r.ErrorIs(err, interval.ErrInvalidInterval)
}
