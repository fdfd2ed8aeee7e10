// Package eventio loads raw event records from CSV or YAML, either from a
// local file or from an http(s) URL.
package eventio

import (
	"encoding/csv"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anrid/eventlayout/pkg/interval"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Record is one raw event as read from input.
type Record struct {
	ID    string `yaml:"id"`
	Start int64  `yaml:"start"`
	End   int64  `yaml:"end"`
	Label string `yaml:"label,omitempty"`
}

// Load reads records from a local file, or downloads them if fileOrURL is
// not an existing file. Files ending in .yaml or .yml are read as YAML,
// everything else as CSV.
func Load(fileOrURL string) ([]Record, error) {
	file := fileOrURL

	_, err := os.Stat(fileOrURL)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "got unexpected error when trying to stat file (or URL): %s", fileOrURL)
		}

		// Treat this as a URL. Download its contents to a local temp location.
		file, err = downloadURLToTempFile(fileOrURL)
		if err != nil {
			return nil, err
		}
		defer os.Remove(file)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open events file: %s", file)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(strings.SplitN(fileOrURL, "?", 2)[0])) {
	case ".yaml", ".yml":
		return ReadYAML(f)
	default:
		return ReadCSV(f)
	}
}

// ReadCSV reads records from CSV with a header row naming the id, start and
// end columns and an optional label column, in any order.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("empty CSV input: missing header row")
		}
		return nil, errors.Wrap(err, "failed to read CSV header")
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{"id", "start", "end"} {
		if _, ok := col[name]; !ok {
			return nil, errors.Errorf("CSV header is missing the %q column", name)
		}
	}

	var records []Record
	recordNumber := 1

	for {
		rec, err := cr.Read()
		if err != nil {
			if err != io.EOF {
				return nil, errors.Wrapf(err, "failed to read CSV record %d", recordNumber+1)
			}
			// We're done.
			break
		}
		recordNumber++

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		start, err := strconv.ParseInt(field("start"), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "CSV record %d: bad start", recordNumber)
		}
		end, err := strconv.ParseInt(field("end"), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "CSV record %d: bad end", recordNumber)
		}

		records = append(records, Record{
			ID:    field("id"),
			Start: start,
			End:   end,
			Label: field("label"),
		})
	}

	return records, nil
}

// ReadYAML reads a YAML sequence of records.
func ReadYAML(r io.Reader) ([]Record, error) {
	var records []Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to decode YAML events")
	}
	return records, nil
}

// Intervals converts records into validated intervals and collects their
// labels by id.
func Intervals(records []Record) ([]interval.Interval, map[string]string, error) {
	ivs := make([]interval.Interval, 0, len(records))
	labels := make(map[string]string, len(records))

	for _, rec := range records {
		iv, err := interval.NewInterval(rec.ID, rec.Start, rec.End)
		if err != nil {
			return nil, nil, err
		}
		ivs = append(ivs, iv)
		if rec.Label != "" {
			labels[rec.ID] = rec.Label
		}
	}

	return ivs, labels, nil
}

func downloadURLToTempFile(url string) (filename string, err error) {
	res, err := http.Get(url)
	if err != nil {
		return "", errors.Wrapf(err, "failed to download data from URL: %s", url)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return "", errors.Errorf("failed to download data from URL: %s - got status code: %d", url, res.StatusCode)
	}

	// Create a temp file.
	f, err := os.CreateTemp(os.TempDir(), "events-to-lay-out")
	if err != nil {
		return "", errors.Wrapf(err, "failed to create a temp file to store data in")
	}
	defer f.Close()

	_, err = io.Copy(f, res.Body)
	if err != nil {
		os.Remove(f.Name())
		return "", errors.Wrapf(err, "failed to read data from HTTP response from URL: %s", url)
	}

	return f.Name(), nil
}
