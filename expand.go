package tabart

import "fmt"

// Grid is a rectangular table produced by [Expand]. Every position holds a
// cell; a merged region is one leader cell plus continuation cells sharing
// its span identity.
type Grid struct {
	cells [][]Cell
	cols  int
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the number of columns. Every row has exactly this many cells.
func (g *Grid) Cols() int { return g.cols }

// At returns the cell at row i, column j.
func (g *Grid) At(i, j int) Cell { return g.cells[i][j] }

// Row returns a copy of row i.
func (g *Grid) Row(i int) []Cell {
	out := make([]Cell, len(g.cells[i]))
	copy(out, g.cells[i])
	return out
}

// Roles returns the role label of every cell, with merged cells labelled
// "span<id>". It is meant for debugging dumps.
func (g *Grid) Roles() [][]string {
	out := make([][]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.tag()
		}
	}
	return out
}

// pending is a continuation cell owed to a later row by a rowspan.
type pending struct {
	col  int
	span int
}

// slots is one row under construction. Unfilled positions are tracked
// explicitly so holes left by rowspans are found by the first-free search.
type slots struct {
	cells  []Cell
	filled []bool
	max    int
}

func (s *slots) isFilled(col int) bool {
	return col < len(s.filled) && s.filled[col]
}

// free returns the first unfilled column, or -1 when the row is at its bound.
func (s *slots) free() int {
	for i, ok := range s.filled {
		if !ok {
			return i
		}
	}
	if len(s.filled) < s.max {
		return len(s.filled)
	}
	return -1
}

func (s *slots) put(col int, c Cell) {
	for len(s.cells) <= col {
		s.cells = append(s.cells, Cell{})
		s.filled = append(s.filled, false)
	}
	s.cells[col] = c
	s.filled[col] = true
}

func (s *slots) empty() bool {
	for _, ok := range s.filled {
		if ok {
			return false
		}
	}
	return true
}

func continuation(span int) Cell {
	return Cell{Role: RoleSpan, Span: span, ColSpan: 1, RowSpan: 1, Continued: true}
}

// expander holds the state of one Expand call.
type expander struct {
	opts     Options
	maxRows  int
	maxCols  int
	backlog  map[int][]pending
	nextSpan int
	rows     []*slots

	warnedCols bool
}

// Expand lays a raw table out on a rectangular grid. Spanned cells become a
// leader plus continuation cells; short rows are padded with RoleNone cells.
// Expansion stops at the first row where nothing is placed. Rows or columns
// past the bounds in opts are dropped and reported to opts.Warn.
func Expand(t RawTable, opts Options) *Grid {
	e := &expander{
		opts:    opts,
		maxRows: opts.maxRows(),
		maxCols: opts.maxCols(),
		backlog: make(map[int][]pending),
	}
	for i := 0; ; i++ {
		owed := e.backlog[i]
		delete(e.backlog, i)
		var src []Cell
		if i < len(t) {
			src = t[i]
		}
		if len(owed) == 0 && len(src) == 0 {
			break
		}
		if i >= e.maxRows {
			e.opts.warn(fmt.Errorf("%w (limit %d)", ErrTooManyRows, e.maxRows))
			break
		}
		row := e.expandRow(i, owed, src)
		if row.empty() {
			break
		}
		e.rows = append(e.rows, row)
	}
	return e.grid()
}

func (e *expander) expandRow(i int, owed []pending, src []Cell) *slots {
	row := &slots{max: e.maxCols}
	for _, p := range owed {
		if p.col >= e.maxCols {
			e.tooManyCols()
			continue
		}
		if row.isFilled(p.col) {
			continue
		}
		row.put(p.col, continuation(p.span))
	}
	for _, c := range src {
		col := row.free()
		if col < 0 {
			e.tooManyCols()
			continue
		}
		cs, rs := c.colSpan(), c.rowSpan()
		if cs == 1 && rs == 1 {
			row.put(col, c)
			continue
		}
		id := e.nextSpan
		e.nextSpan++

		occupied := []int{col}
		row.put(col, Cell{}) // reserve before searching for the extent
		for k := 1; k < cs; k++ {
			next := row.free()
			if next < 0 {
				e.tooManyCols()
				break
			}
			row.put(next, continuation(id))
			occupied = append(occupied, next)
		}
		leader := c
		leader.Role = RoleSpan
		leader.Span = id
		leader.Continued = false
		leader.ColSpan = len(occupied)
		leader.RowSpan = rs
		row.put(col, leader)

		for dr := 1; dr < rs; dr++ {
			for _, oc := range occupied {
				e.backlog[i+dr] = append(e.backlog[i+dr], pending{col: oc, span: id})
			}
		}
	}
	return row
}

func (e *expander) tooManyCols() {
	if e.warnedCols {
		return
	}
	e.warnedCols = true
	e.opts.warn(fmt.Errorf("%w (limit %d)", ErrTooManyColumns, e.maxCols))
}

// grid densifies the built rows. Column count is the highest occupied
// column plus one across all rows.
func (e *expander) grid() *Grid {
	cols := 0
	for _, row := range e.rows {
		for j := len(row.filled) - 1; j >= 0; j-- {
			if row.filled[j] {
				cols = max(cols, j+1)
				break
			}
		}
	}
	g := &Grid{cells: make([][]Cell, len(e.rows)), cols: cols}
	for i, row := range e.rows {
		dense := make([]Cell, cols)
		for j := range dense {
			if row.isFilled(j) {
				dense[j] = row.cells[j]
			} else {
				dense[j] = NewCell("", RoleNone)
			}
		}
		g.cells[i] = dense
	}
	return g
}
