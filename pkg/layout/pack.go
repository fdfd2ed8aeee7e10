package layout

import "github.com/anrid/eventlayout/pkg/interval"

type column struct {
	max    int64
	events []interval.Interval
}

// columns is the column state of one cluster. It is passed down every
// recursive pack call so the whole cluster shares it.
type columns struct {
	list []*column
}

// place puts ev into the first column whose last event ends before ev
// starts, opening a new column when none does.
func (c *columns) place(ev interval.Interval) int {
	for i, col := range c.list {
		if col.max < ev.Start {
			col.events = append(col.events, ev)
			col.max = ev.End
			return i
		}
	}
	c.list = append(c.list, &column{max: ev.End, events: []interval.Interval{ev}})
	return len(c.list) - 1
}

type packer struct {
	tree     *interval.Tree
	width    float64
	rendered map[string]bool

	out       []Positioned
	index     map[string]int
	emissions int
}

// pack places every not yet rendered event of group, pulling in whatever
// overlaps it before positioning the columns.
func (p *packer) pack(group []interval.Interval, cols *columns) {
	for _, ev := range group {
		if p.rendered[ev.ID] {
			continue
		}
		p.rendered[ev.ID] = true

		cols.place(ev)
		p.pack(p.tree.SearchOverlapping(ev), cols)
		p.emit(cols)
	}
}

// emit positions every event currently held by cols. Later emissions for
// the same id overwrite earlier ones.
func (p *packer) emit(cols *columns) {
	count := len(cols.list)
	width := p.width / float64(count)

	for idx, col := range cols.list {
		for _, ev := range col.events {
			pos := Positioned{
				ID:          ev.ID,
				Start:       ev.Start,
				End:         ev.End,
				Duration:    ev.Duration(),
				ColumnIndex: idx,
				ColumnCount: count,
				Width:       width,
				Left:        float64(idx) * width,
				Top:         ev.Start,
				Height:      ev.Duration(),
			}

			if i, ok := p.index[ev.ID]; ok {
				p.out[i] = pos
			} else {
				p.index[ev.ID] = len(p.out)
				p.out = append(p.out, pos)
			}
			p.emissions++
		}
	}
}
