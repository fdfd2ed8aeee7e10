package interval

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidInterval is returned for intervals that start below zero or
// do not end after they start.
var ErrInvalidInterval = errors.New("invalid interval")

// Interval marks a time range tagged with an id.
type Interval struct {
	ID    string
	Start int64
	End   int64
}

// NewInterval returns a new Interval or an error if end is not after start.
func NewInterval(id string, start, end int64) (Interval, error) {
	i := Interval{ID: id, Start: start, End: end}
	if err := i.Validate(); err != nil {
		return Interval{}, err
	}
	return i, nil
}

// Validate checks that the interval is well formed. The tree never calls it;
// callers validate at their boundary.
func (i Interval) Validate() error {
	if i.Start < 0 {
		return errors.Wrapf(ErrInvalidInterval, "%q starts at negative offset %d", i.ID, i.Start)
	}
	if i.End <= i.Start {
		return errors.Wrapf(ErrInvalidInterval, "%q ends at %d, not after its start %d", i.ID, i.End, i.Start)
	}
	return nil
}

// Duration returns End - Start.
func (i Interval) Duration() int64 {
	return i.End - i.Start
}

// Overlaps reports whether i and x share at least one point. Touching
// endpoints count as overlapping.
func (i Interval) Overlaps(x Interval) bool {
	return i.Start <= x.End && i.End >= x.Start
}

func (i Interval) String() string {
	return fmt.Sprintf("%s[%d - %d]", i.ID, i.Start, i.End)
}
