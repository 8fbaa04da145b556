package tabart_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/bjaus/tabart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// texts flattens a raw table to cell text.
func texts(t tabart.RawTable) [][]string {
	out := make([][]string, len(t))
	for i, row := range t {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.Text
		}
	}
	return out
}

func parseOne(t *testing.T, src string) tabart.RawTable {
	t.Helper()
	tables, err := tabart.ParseHTML(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, tables, 1)
	return tables[0]
}

func TestParseHTML(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		src  string
		want [][]string
	}{
		"closed tags": {
			src:  `<table><tr><th>a</th><th>b</th></tr><tr><td>1</td><td>2</td></tr></table>`,
			want: [][]string{{"a", "b"}, {"1", "2"}},
		},
		"omitted closing tags": {
			src: `<table>
<tr><td>a<td>b
<tr><td>c<td>d
</table>`,
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		"tbody and thead are transparent": {
			src:  `<table><thead><tr><th>h</th></tr></thead><tbody><tr><td>v</td></tr></tbody></table>`,
			want: [][]string{{"h"}, {"v"}},
		},
		"br becomes a space": {
			src:  `<table><tr><td>one<br>two<br/>three</td></tr></table>`,
			want: [][]string{{"one two three"}},
		},
		"entities decoded": {
			src:  `<table><tr><td>a &amp; b &lt;c&gt; &#169; &eacute;</td></tr></table>`,
			want: [][]string{{"a & b <c> © é"}},
		},
		"nbsp becomes a plain space": {
			src:  `<table><tr><td>a&nbsp;b&#160;c</td></tr></table>`,
			want: [][]string{{"a b c"}},
		},
		"line breaks and tabs": {
			src:  "<table><tr><td>\n\t first\r\nsecond\tthird \t\n</td></tr></table>",
			want: [][]string{{"first second third"}},
		},
		"inline markup contributes text": {
			src:  `<table><tr><td><b>bold</b> and <a href="#">link</a></td></tr></table>`,
			want: [][]string{{"bold and link"}},
		},
		"text outside cells ignored": {
			src:  `<table>caption<tr>junk<td>x</td>more</tr></table>`,
			want: [][]string{{"x"}},
		},
		"rows before the table dropped": {
			src:  `<tr><td>stray</td></tr><td>loose<table><tr><td>x</td></tr></table>`,
			want: [][]string{{"x"}},
		},
		"stray end tags ignored": {
			src:  `<table></td><tr><td>x</td></th></tr></tr></table>`,
			want: [][]string{{"x"}},
		},
		"empty cells kept": {
			src:  `<table><tr><td></td><td>b</td></tr></table>`,
			want: [][]string{{"", "b"}},
		},
		"unclosed table flushed at end": {
			src:  `<table><tr><td>a<td>b`,
			want: [][]string{{"a", "b"}},
		},
		"uppercase tags": {
			src:  `<TABLE><TR><TD COLSPAN="1">x</TD></TR></TABLE>`,
			want: [][]string{{"x"}},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, texts(parseOne(t, tt.src)))
		})
	}
}

func TestParseHTMLRoles(t *testing.T) {
	t.Parallel()
	raw := parseOne(t, `<table><tr><th>h</th><td>d</td></tr></table>`)
	require.Len(t, raw, 1)
	require.Len(t, raw[0], 2)
	assert.Equal(t, tabart.RoleHeader, raw[0][0].Role)
	assert.Equal(t, tabart.RoleBody, raw[0][1].Role)
}

func TestParseHTMLSpans(t *testing.T) {
	t.Parallel()
	raw := parseOne(t, `<table><tr><td colspan="3" rowspan=" 2 ">x</td><td>y</td></tr></table>`)
	require.Len(t, raw[0], 2)
	assert.Equal(t, 3, raw[0][0].ColSpan)
	assert.Equal(t, 2, raw[0][0].RowSpan)
	assert.Equal(t, 1, raw[0][1].ColSpan)
	assert.Equal(t, 1, raw[0][1].RowSpan)
}

func TestParseHTMLRepeatedSpanAttr(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		src     string
		colSpan int
		rowSpan int
	}{
		"first colspan wins": {
			src:     `<table><tr><td colspan=2 colspan=3>x</td></tr></table>`,
			colSpan: 2, rowSpan: 1,
		},
		"later malformed value ignored": {
			src:     `<table><tr><td colspan=2 rowspan=4 colspan=x rowspan=0>x</td></tr></table>`,
			colSpan: 2, rowSpan: 4,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			raw := parseOne(t, tt.src)
			require.Len(t, raw, 1)
			require.Len(t, raw[0], 1)
			assert.Equal(t, tt.colSpan, raw[0][0].ColSpan)
			assert.Equal(t, tt.rowSpan, raw[0][0].RowSpan)
		})
	}
}

func TestParseHTMLInvalidSpan(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		src   string
		attr  string
		value string
	}{
		"zero colspan":     {src: `<table><tr><td colspan=0>x`, attr: "colspan", value: "0"},
		"negative rowspan": {src: `<table><tr><th rowspan="-1">x`, attr: "rowspan", value: "-1"},
		"not a number":     {src: `<table><tr><td colspan="two">x`, attr: "colspan", value: "two"},
		"empty value":      {src: `<table><tr><td rowspan>x`, attr: "rowspan", value: ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := tabart.ParseHTML(strings.NewReader(tt.src))
			require.Error(t, err)
			var pe *tabart.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.attr, pe.Attr)
			assert.Equal(t, tt.value, pe.Value)
			assert.True(t, errors.Is(err, tabart.ErrInvalidSpan))
		})
	}
}

func TestParseHTMLMultipleTables(t *testing.T) {
	t.Parallel()
	tables, err := tabart.ParseHTML(strings.NewReader(`
<h1>Report</h1>
<table><tr><td>first</td></tr></table>
<table></table>
<table><tr><td>second</td></tr></table>`))
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, [][]string{{"first"}}, texts(tables[0]))
	assert.Empty(t, tables[1])
	assert.Equal(t, [][]string{{"second"}}, texts(tables[2]))
}

func TestParseHTMLNoTable(t *testing.T) {
	t.Parallel()
	tables, err := tabart.ParseHTML(strings.NewReader(`<p><td>not in a table</td></p>`))
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()
	err := &tabart.ParseError{Tag: "td", Attr: "colspan", Value: "x"}
	assert.Equal(t, `invalid span attribute: <td colspan="x">`, err.Error())
}
