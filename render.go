package tabart

import (
	"fmt"
	"io"
	"strings"
)

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// ParseAlign parses an alignment string holding one letter per column, "l"
// for left or "r" for right.
func ParseAlign(s string) ([]Alignment, error) {
	aligns := make([]Alignment, 0, len(s))
	for i, r := range s {
		switch r {
		case 'l':
			aligns = append(aligns, AlignLeft)
		case 'r':
			aligns = append(aligns, AlignRight)
		default:
			return nil, fmt.Errorf("%w: %q at position %d of %q, only l and r are supported", ErrInvalidAlignment, r, i, s)
		}
	}
	return aligns, nil
}

func extendAligns(aligns []Alignment, numCols int) []Alignment {
	if len(aligns) >= numCols {
		return aligns[:numCols]
	}
	extended := make([]Alignment, numCols)
	copy(extended, aligns)
	return extended
}

// renderer draws one expanded table in a dialect.
type renderer interface {
	render(w io.Writer, g *Grid, widths []int, l layout) error
}

var renderers = map[Dialect]renderer{
	Box:      boxRenderer{},
	OrgMode:  pipeRenderer{pipeStyles[OrgMode]},
	MySQL:    pipeRenderer{pipeStyles[MySQL]},
	Markdown: pipeRenderer{pipeStyles[Markdown]},
}

// layout carries the per-table settings shared by all renderers.
type layout struct {
	aligns   []Alignment
	noHeader bool
	oracle   Oracle
}

// pad surrounds s with one space on each side after padding it to width
// according to the column alignment.
func (l layout) pad(s string, width int, col int) string {
	return " " + alignCell(s, width, l.aligns[col], l.oracle) + " "
}

// blank is the padded rendering of a cell with no text.
func blank(width int) string {
	return strings.Repeat(" ", width+2)
}

func alignCell(s string, width int, align Alignment, o Oracle) string {
	pad := width - o.Width(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	default:
		return s + strings.Repeat(" ", pad)
	}
}
