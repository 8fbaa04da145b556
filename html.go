package tabart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// HTML is an HTML document. Every <table> in it becomes one table.
type HTML string

// Tables implements [Source].
func (h HTML) Tables() ([]RawTable, error) {
	return ParseHTML(strings.NewReader(string(h)))
}

// ParseError reports a colspan or rowspan attribute that is not a positive
// integer.
type ParseError struct {
	Tag   string
	Attr  string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: <%s %s=%q>", ErrInvalidSpan, e.Tag, e.Attr, e.Value)
}

func (e *ParseError) Unwrap() error { return ErrInvalidSpan }

// ParseHTML scans r for tables. Only table, tr, td, th and br are
// interpreted; everything else contributes text to the open cell, if any.
//
// Omitted closing tags are tolerated: a td, th or tr start tag closes the
// open cell, a tr start tag closes the open row, and </table> closes both.
// The only error besides a read failure is a malformed span attribute.
func ParseHTML(r io.Reader) ([]RawTable, error) {
	s := &tableScanner{}
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("reading html: %w", err)
			}
			s.finish()
			return s.tables, nil
		case html.TextToken:
			s.text(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if err := s.start(z, string(name), hasAttr); err != nil {
				return nil, err
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			s.end(string(name))
		}
	}
}

// tableScanner accumulates tables from a stream of tokens.
type tableScanner struct {
	inCell  bool
	inRow   bool
	inTable bool

	cellTag string
	colSpan int
	rowSpan int
	buf     strings.Builder

	row    []Cell
	table  RawTable
	tables []RawTable
}

func (s *tableScanner) text(b []byte) {
	if s.inCell {
		s.buf.Write(b)
	}
}

func (s *tableScanner) start(z *html.Tokenizer, tag string, hasAttr bool) error {
	switch tag {
	case "td", "th":
		s.closeCell()
		cs, rs, err := spans(z, tag, hasAttr)
		if err != nil {
			return err
		}
		s.inCell = true
		s.cellTag = tag
		s.colSpan, s.rowSpan = cs, rs
	case "tr":
		s.closeCell()
		s.closeRow()
		s.inRow = true
	case "br":
		if s.inCell {
			s.buf.WriteByte(' ')
		}
	case "table":
		if !s.inTable {
			// Drop cells and rows seen outside any table.
			s.inCell, s.inRow, s.row, s.table = false, false, nil, nil
			s.buf.Reset()
		}
		s.inTable = true
	}
	return nil
}

func (s *tableScanner) end(tag string) {
	switch tag {
	case "td", "th":
		s.closeCell()
	case "tr":
		s.closeCell()
		s.closeRow()
	case "table":
		s.closeTable()
	}
}

// finish flushes a table left open at the end of the document.
func (s *tableScanner) finish() {
	if s.inTable {
		s.closeTable()
	}
}

func (s *tableScanner) closeCell() {
	if !s.inCell {
		return
	}
	role := RoleBody
	if s.cellTag == "th" {
		role = RoleHeader
	}
	// &nbsp; and &#160; decode to U+00A0; tables want an ordinary space.
	text := strings.ReplaceAll(s.buf.String(), "\u00a0", " ")
	s.row = append(s.row, Cell{
		Text:    normalizeText(text),
		Role:    role,
		ColSpan: s.colSpan,
		RowSpan: s.rowSpan,
	})
	s.buf.Reset()
	s.inCell = false
}

func (s *tableScanner) closeRow() {
	if !s.inRow && len(s.row) == 0 {
		return
	}
	s.table = append(s.table, s.row)
	s.row = nil
	s.inRow = false
}

func (s *tableScanner) closeTable() {
	s.closeCell()
	s.closeRow()
	s.tables = append(s.tables, s.table)
	s.table = nil
	s.inTable = false
}

// spans reads colspan and rowspan from the current tag's attributes. As in
// HTML parsing, the first occurrence of a repeated attribute wins and later
// ones are ignored unread.
func spans(z *html.Tokenizer, tag string, hasAttr bool) (colSpan, rowSpan int, err error) {
	colSpan, rowSpan = 1, 1
	var seenCol, seenRow bool
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		k := string(key)
		switch {
		case k == "colspan" && !seenCol:
			seenCol = true
			if colSpan, err = parseSpan(tag, k, string(val)); err != nil {
				return 0, 0, err
			}
		case k == "rowspan" && !seenRow:
			seenRow = true
			if rowSpan, err = parseSpan(tag, k, string(val)); err != nil {
				return 0, 0, err
			}
		}
	}
	return colSpan, rowSpan, nil
}

func parseSpan(tag, attr, val string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n <= 0 {
		return 0, &ParseError{Tag: tag, Attr: attr, Value: val}
	}
	return n, nil
}
