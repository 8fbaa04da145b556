package tabart

import (
	"fmt"
	"io"
	"strings"
)

// boxRenderer draws every row inside a full border. Merged regions are drawn
// as one cell: no border inside them and their leader's text laid over the
// union of the covered columns.
//
//	+-------------+------+-------+
//	| Item        | Qty. | Price |
//	+-------------+------+-------+
//	| Paper       | 10   | 45.99 |
//	+-------------+------+-------+
//	| Subtotal           | 45.99 |
//	+--------------------+-------+
type boxRenderer struct{}

func (boxRenderer) render(w io.Writer, g *Grid, widths []int, l layout) error {
	for i := range g.Rows() {
		if _, err := fmt.Fprintln(w, boxRule(g, widths, i)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, boxRow(g, widths, i, l)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, boxBottom(g, widths))
	return err
}

// boxRule is the horizontal line drawn above row i.
func boxRule(g *Grid, widths []int, i int) string {
	var sb strings.Builder
	for j, width := range widths {
		sb.WriteString(boxJunction(g, i, j))
		if i > 0 && SameSpan(g.At(i-1, j), g.At(i, j)) {
			sb.WriteString(blank(width))
		} else {
			sb.WriteString(strings.Repeat("-", width+2))
		}
	}
	last := len(widths) - 1
	if i > 0 && SameSpan(g.At(i-1, last), g.At(i, last)) {
		sb.WriteString("|")
	} else {
		sb.WriteString("+")
	}
	return sb.String()
}

// boxJunction picks the glyph at the top-left corner of cell (i, j).
func boxJunction(g *Grid, i, j int) string {
	cur := g.At(i, j)
	if i == 0 {
		if j > 0 && SameSpan(g.At(0, j-1), cur) {
			return "-"
		}
		return "+"
	}
	if j == 0 {
		if SameSpan(g.At(i-1, 0), cur) {
			return "|"
		}
		return "+"
	}
	upLeft, up, left := g.At(i-1, j-1), g.At(i-1, j), g.At(i, j-1)
	switch {
	case SameSpan(upLeft, cur):
		return " "
	case SameSpan(upLeft, up) && SameSpan(left, cur):
		return "-"
	case SameSpan(upLeft, left) && SameSpan(up, cur):
		return "|"
	default:
		return "+"
	}
}

// boxRow is the content line of row i.
func boxRow(g *Grid, widths []int, i int, l layout) string {
	var sb strings.Builder
	sb.WriteString("|")
	for j, width := range widths {
		cur := g.At(i, j)
		below := i > 0 && SameSpan(g.At(i-1, j), cur)
		if j > 0 {
			switch {
			case !SameSpan(g.At(i, j-1), cur):
				sb.WriteString("|")
			case below:
				sb.WriteString(" ")
			}
		}
		switch {
		case !cur.IsSpan():
			sb.WriteString(l.pad(cur.Text, width, j))
		case cur.IsLeader():
			span := min(cur.colSpan(), len(widths)-j)
			union := sumWidths(widths[j:j+span]) + (span-1)*boxGap
			sb.WriteString(l.pad(cur.Text, union, j))
		case below:
			sb.WriteString(blank(width))
		}
	}
	sb.WriteString("|")
	return sb.String()
}

// boxBottom closes the table under the last row.
func boxBottom(g *Grid, widths []int) string {
	last := g.Rows() - 1
	var sb strings.Builder
	for j, width := range widths {
		if j > 0 && SameSpan(g.At(last, j-1), g.At(last, j)) {
			sb.WriteString("-")
		} else {
			sb.WriteString("+")
		}
		sb.WriteString(strings.Repeat("-", width+2))
	}
	sb.WriteString("+")
	return sb.String()
}
