package tabart

import (
	"fmt"
	"io"
	"strings"
)

// pipeStyle holds what differs between the pipe dialects.
type pipeStyle struct {
	// escape replaces a literal "|" in cell text. Empty means no escaping.
	escape string
	// rules draws a "+---+" line above the first and below the last row.
	rules bool
	// Glyphs of the header separator line.
	sepLeft, sepMid, sepRight string
}

// Pipe dialects draw "|" around every cell and never merge spans: a leader
// is printed in its first column and its continuations are left blank.
//
//	orgmode:              mysql:                markdown:
//	| Name  | Age |       +-------+-----+       | Name  | Age |
//	|-------+-----|       | Name  | Age |       |-------|-----|
//	| Peter | 17  |       +-------+-----+       | Peter | 17  |
//	                      | Peter | 17  |
//	                      +-------+-----+
var pipeStyles = map[Dialect]pipeStyle{
	OrgMode:  {escape: `\vert`, sepLeft: "|", sepMid: "+", sepRight: "|"},
	MySQL:    {rules: true, sepLeft: "+", sepMid: "+", sepRight: "+"},
	Markdown: {escape: `\|`, sepLeft: "|", sepMid: "|", sepRight: "|"},
}

type pipeRenderer struct {
	style pipeStyle
}

func (p pipeRenderer) render(w io.Writer, g *Grid, widths []int, l layout) error {
	widths = p.widen(g, widths)
	if p.style.rules {
		if err := drawHLine(w, widths, "+", "+", "+"); err != nil {
			return err
		}
	}
	for i := range g.Rows() {
		if i == 1 && !l.noHeader {
			if err := drawHLine(w, widths, p.style.sepLeft, p.style.sepMid, p.style.sepRight); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, p.row(g, widths, i, l)); err != nil {
			return err
		}
	}
	if p.style.rules {
		return drawHLine(w, widths, "+", "+", "+")
	}
	return nil
}

// widen makes room for escaped border characters: every column grows by the
// extra length of the escape times the most "|" found in one of its cells.
func (p pipeRenderer) widen(g *Grid, widths []int) []int {
	out := make([]int, len(widths))
	copy(out, widths)
	if p.style.escape == "" {
		return out
	}
	extra := len(p.style.escape) - 1
	for j := range out {
		most := 0
		for i := range g.Rows() {
			if c := g.At(i, j); !c.IsContinuation() {
				most = max(most, strings.Count(c.Text, "|"))
			}
		}
		out[j] += most * extra
	}
	return out
}

func (p pipeRenderer) escapeText(s string) string {
	if p.style.escape == "" {
		return s
	}
	return strings.ReplaceAll(s, "|", p.style.escape)
}

func (p pipeRenderer) row(g *Grid, widths []int, i int, l layout) string {
	var sb strings.Builder
	for j, width := range widths {
		sb.WriteString("|")
		c := g.At(i, j)
		if c.IsContinuation() {
			sb.WriteString(blank(width))
			continue
		}
		sb.WriteString(l.pad(p.escapeText(c.Text), width, j))
	}
	sb.WriteString("|")
	return sb.String()
}

func drawHLine(w io.Writer, widths []int, left, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat("-", width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}
