package tabart

import "slices"

// boxGap is the padding plus border a box table spends between two columns.
const boxGap = len(" | ")

type wideLeader struct {
	row, col, span int
}

// ColumnWidths computes the display width reserved for each grid column.
//
// A column is as wide as its widest unspanned cell or single-column span
// leader. Leaders spanning several columns are then fitted, narrower spans
// first: Box grows the last covered column when the leader does not fit the
// covered columns plus the gaps between them, the pipe dialects grow the
// first covered column, which is where they print the leader.
func ColumnWidths(g *Grid, d Dialect, o Oracle) []int {
	widths := make([]int, g.Cols())
	var wide []wideLeader
	for i := range g.Rows() {
		for j := range g.Cols() {
			c := g.At(i, j)
			switch {
			case c.IsContinuation():
			case c.IsLeader() && c.colSpan() > 1:
				span := min(c.colSpan(), g.Cols()-j)
				if span > 1 {
					wide = append(wide, wideLeader{row: i, col: j, span: span})
					continue
				}
				widths[j] = max(widths[j], o.Width(c.Text))
			default:
				widths[j] = max(widths[j], o.Width(c.Text))
			}
		}
	}

	// Stable so leaders of equal span keep row-major order.
	slices.SortStableFunc(wide, func(a, b wideLeader) int { return a.span - b.span })
	for _, l := range wide {
		need := o.Width(g.At(l.row, l.col).Text)
		if d == Box {
			avail := sumWidths(widths[l.col:l.col+l.span]) + (l.span-1)*boxGap
			if need > avail {
				widths[l.col+l.span-1] += need - avail
			}
			continue
		}
		if need > widths[l.col] {
			widths[l.col] = need
		}
	}
	return widths
}

func sumWidths(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w
	}
	return n
}
