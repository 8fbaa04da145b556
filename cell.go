package tabart

import (
	"strconv"
	"strings"
)

// Role classifies a cell by where it came from.
type Role int

const (
	// RoleNone marks a hole backfilled during expansion.
	RoleNone Role = iota
	// RoleHeader is an HTML <th> cell.
	RoleHeader
	// RoleBody is an HTML <td> cell.
	RoleBody
	// RoleDelimited is a cell read from delimited text or pre-split rows.
	RoleDelimited
	// RoleSpan is a cell belonging to a merged region. See [Cell.Span].
	RoleSpan
)

var roleNames = map[Role]string{
	RoleNone:      "none",
	RoleHeader:    "th",
	RoleBody:      "td",
	RoleDelimited: "csv",
	RoleSpan:      "span",
}

// String returns the short role name used in grid dumps.
func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "role(" + strconv.Itoa(int(r)) + ")"
}

// Cell is a single table cell. Cells are values; nothing mutates a cell once
// it has been placed in a [RawTable] or a [Grid].
type Cell struct {
	Text    string
	Role    Role
	Span    int // span identity, meaningful only when Role is RoleSpan
	ColSpan int
	RowSpan int

	// Continued marks a placeholder occupying an extra position of a merged
	// region. It carries no text.
	Continued bool
}

// NewCell returns an unspanned cell.
func NewCell(text string, role Role) Cell {
	return Cell{Text: text, Role: role, ColSpan: 1, RowSpan: 1}
}

// IsSpan reports whether c belongs to a merged region.
func (c Cell) IsSpan() bool { return c.Role == RoleSpan }

// IsLeader reports whether c is the text-carrying cell of a merged region.
func (c Cell) IsLeader() bool { return c.Role == RoleSpan && !c.Continued }

// IsContinuation reports whether c is a blank placeholder of a merged region.
func (c Cell) IsContinuation() bool { return c.Role == RoleSpan && c.Continued }

// SameSpan reports whether a and b belong to the same merged region.
// Unspanned cells never share a region with anything, themselves included.
func SameSpan(a, b Cell) bool {
	return a.IsSpan() && b.IsSpan() && a.Span == b.Span
}

// tag is the role label of the cell as printed by grid dumps, with the span
// identity appended for merged cells.
func (c Cell) tag() string {
	if c.IsSpan() {
		return "span" + strconv.Itoa(c.Span)
	}
	return c.Role.String()
}

// colSpan never reports less than one, so zero-value cells behave as unspanned.
func (c Cell) colSpan() int { return max(c.ColSpan, 1) }

func (c Cell) rowSpan() int { return max(c.RowSpan, 1) }

// RawTable is a ragged table as produced by a source adapter: spans are not
// yet expanded so rows may differ in length.
type RawTable [][]Cell

// lineBreaks collapses every line break to a single space.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// normalizeText applies the HTML cell text rules: surrounding whitespace
// trimmed, line breaks and tabs turned into spaces, stray edge tabs removed.
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	s = lineBreaks.Replace(s)
	s = strings.Trim(s, "\t")
	return strings.ReplaceAll(s, "\t", " ")
}
