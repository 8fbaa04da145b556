package tabart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidSpan          = errors.New("invalid span attribute")
	ErrUnsupportedDialect   = errors.New("unsupported dialect")
	ErrInvalidAlignment     = errors.New("invalid column alignment")
	ErrWidthUnavailable     = errors.New("width measurement unavailable")
	ErrInvalidDelimiter     = errors.New("invalid delimiter")
	ErrUnsupportedCharClass = errors.New("unsupported character class")
	ErrInvalidRows          = errors.New("invalid rows document")
)

// Advisory errors. They are delivered to [Options.Warn] and never returned.
var (
	ErrTooManyRows    = errors.New("table has too many rows, only partial result is rendered")
	ErrTooManyColumns = errors.New("table has too many columns, only partial result is rendered")
	ErrMeasureFailed  = errors.New("terminal width measurement failed")
)

// Default bounds applied when [Options] leaves them zero.
const (
	DefaultMaxRows = 500
	DefaultMaxCols = 100
)

// Dialect is an output table convention.
type Dialect int

const (
	Box      Dialect = iota // fully bordered, merged spans drawn as one region
	OrgMode                 // org-mode pipe table
	MySQL                   // pipe table with outer rules, as printed by the mysql client
	Markdown                // GitHub-flavored Markdown pipe table
)

var dialectNames = []string{"box", "orgmode", "mysql", "markdown"}

// aliases accepted by ParseDialect besides the canonical names.
var dialectAliases = map[string]Dialect{
	"emacs": Box,
	"org":   OrgMode,
	"md":    Markdown,
}

// String returns the canonical dialect name.
func (d Dialect) String() string {
	if d < 0 || int(d) >= len(dialectNames) {
		return fmt.Sprintf("dialect(%d)", int(d))
	}
	return dialectNames[d]
}

// Dialects returns all supported dialects.
func Dialects() []Dialect {
	return []Dialect{Box, OrgMode, MySQL, Markdown}
}

// ParseDialect parses a dialect name. Recognizes the canonical names and the
// aliases "emacs", "org" and "md".
func ParseDialect(s string) (Dialect, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range dialectNames {
		if n == name {
			return Dialect(i), nil
		}
	}
	if d, ok := dialectAliases[name]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedDialect, s)
}

// Options controls a conversion. The zero value renders box tables with
// left-aligned columns, East-Asian width measurement and default bounds.
type Options struct {
	Dialect Dialect

	// Align holds one letter per column, "l" or "r". Columns beyond the
	// string are left-aligned.
	Align string

	// NoHeader suppresses the separator pipe dialects draw after the first row.
	NoHeader bool

	// Width measures cell text. Nil means EastAsian{}.
	Width Oracle

	MaxRows int
	MaxCols int

	// Warn receives advisory errors such as ErrTooManyRows. Nil discards them.
	Warn func(error)
}

func (o Options) oracle() Oracle {
	if o.Width == nil {
		return EastAsian{}
	}
	return o.Width
}

func (o Options) maxRows() int {
	if o.MaxRows <= 0 {
		return DefaultMaxRows
	}
	return o.MaxRows
}

func (o Options) maxCols() int {
	if o.MaxCols <= 0 {
		return DefaultMaxCols
	}
	return o.MaxCols
}

func (o Options) warn(err error) {
	if o.Warn != nil {
		o.Warn(err)
	}
}

// Source yields the raw tables of one input document.
type Source interface {
	Tables() ([]RawTable, error)
}

// Write converts every table of src and writes the rendered blocks to w,
// separated by a blank line.
func Write(w io.Writer, src Source, opts Options) error {
	r, err := newRun(opts)
	if err != nil {
		return err
	}
	tables, err := src.Tables()
	if err != nil {
		return err
	}
	return r.writeAll(w, tables)
}

// Marshal converts src and returns the rendered bytes.
func Marshal(src Source, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, src, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderHTML converts every <table> of an HTML document.
func RenderHTML(src string, opts Options) (string, error) {
	b, err := Marshal(HTML(src), opts)
	return string(b), err
}

// RenderDelimited converts delimited text split on delim.
func RenderDelimited(src string, delim rune, opts Options) (string, error) {
	b, err := Marshal(Delimited{Text: src, Comma: delim}, opts)
	return string(b), err
}

// RenderRows converts pre-split rows.
func RenderRows(rows [][]string, opts Options) (string, error) {
	b, err := Marshal(Rows(rows), opts)
	return string(b), err
}

// run is one validated conversion: everything that can fail on bad options
// fails in newRun, before any input is read.
type run struct {
	opts   Options
	render renderer
	aligns []Alignment
	oracle Oracle
}

func newRun(opts Options) (*run, error) {
	rd, ok := renderers[opts.Dialect]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, opts.Dialect)
	}
	aligns, err := ParseAlign(opts.Align)
	if err != nil {
		return nil, err
	}
	return &run{opts: opts, render: rd, aligns: aligns, oracle: opts.oracle()}, nil
}

// block renders a single table, returning false when it expands to nothing.
func (r *run) block(w io.Writer, t RawTable) (bool, error) {
	g := Expand(t, r.opts)
	if g.Rows() == 0 {
		return false, nil
	}
	widths := ColumnWidths(g, r.opts.Dialect, r.oracle)
	return true, r.render.render(w, g, widths, r.layout(g.Cols()))
}

func (r *run) writeAll(w io.Writer, tables []RawTable) error {
	bw := &blockWriter{w: w, run: r}
	for _, t := range tables {
		if err := bw.write(t); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) layout(cols int) layout {
	return layout{
		aligns:   extendAligns(r.aligns, cols),
		noHeader: r.opts.NoHeader,
		oracle:   r.oracle,
	}
}
