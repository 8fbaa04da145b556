package tabart

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Delimited is delimited text such as CSV or TSV. Fields may be quoted with
// double quotes; rows may have different field counts.
type Delimited struct {
	Text  string
	Comma rune // field delimiter, ',' when zero
}

// Tables implements [Source]. Delimited text always holds one table.
func (d Delimited) Tables() ([]RawTable, error) {
	t, err := ParseDelimited(strings.NewReader(d.Text), d.Comma)
	if err != nil {
		return nil, err
	}
	return []RawTable{t}, nil
}

// Rows is a table that is already split into fields.
type Rows [][]string

// Tables implements [Source].
func (r Rows) Tables() ([]RawTable, error) {
	return []RawTable{FromRows(r)}, nil
}

// ParseDelimited reads delimited text from r. A blank line becomes an empty
// row, which ends the table when it is expanded, the same as an empty row
// given to [FromRows]. Line breaks inside quoted fields become spaces;
// nothing else in a field is altered.
func ParseDelimited(r io.Reader, comma rune) (RawTable, error) {
	if comma == 0 {
		comma = ','
	}
	if !validDelim(comma) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDelimiter, comma)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading delimited text: %w", err)
	}
	text := string(b)
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		t        RawTable
		consumed int64 // bytes read up to the end of the last record
		lines    int   // line breaks within those bytes
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading delimited text: %w", err)
		}
		// csv.Reader skips empty lines; put them back as empty rows.
		start, _ := cr.FieldPos(0)
		for range start - lines - 1 {
			t = append(t, []Cell{})
		}
		t = append(t, delimitedRow(rec))

		end := cr.InputOffset()
		lines += strings.Count(text[consumed:end], "\n")
		consumed = end
	}
}

// FromRows wraps pre-split rows as a raw table.
func FromRows(rows [][]string) RawTable {
	t := make(RawTable, 0, len(rows))
	for _, rec := range rows {
		t = append(t, delimitedRow(rec))
	}
	return t
}

func delimitedRow(rec []string) []Cell {
	row := make([]Cell, len(rec))
	for i, field := range rec {
		row[i] = NewCell(lineBreaks.Replace(field), RoleDelimited)
	}
	return row
}

// validDelim mirrors the delimiters encoding/csv accepts.
func validDelim(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}
