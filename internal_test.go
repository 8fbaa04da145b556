package tabart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  string
	}{
		"plain":          {input: "abc", want: "abc"},
		"surrounding":    {input: "  abc \n", want: "abc"},
		"crlf":           {input: "a\r\nb", want: "a b"},
		"lone cr":        {input: "a\rb", want: "a b"},
		"lf":             {input: "a\nb", want: "a b"},
		"interior tab":   {input: "a\tb", want: "a b"},
		"inner newlines": {input: "a\n\nb", want: "a  b"},
		"empty":          {input: "", want: ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeText(tt.input))
		})
	}
}

func TestAlignCell(t *testing.T) {
	t.Parallel()
	o := EastAsian{}
	assert.Equal(t, "ab   ", alignCell("ab", 5, AlignLeft, o))
	assert.Equal(t, "   ab", alignCell("ab", 5, AlignRight, o))
	assert.Equal(t, "中 ", alignCell("中", 3, AlignLeft, o))
	assert.Equal(t, "toolong", alignCell("toolong", 3, AlignLeft, o))
}

func TestExtendAligns(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []Alignment{AlignRight, AlignLeft, AlignLeft}, extendAligns([]Alignment{AlignRight}, 3))
	assert.Equal(t, []Alignment{AlignRight}, extendAligns([]Alignment{AlignRight, AlignRight}, 1))
	assert.Empty(t, extendAligns(nil, 0))
}

func TestParseAlign(t *testing.T) {
	t.Parallel()
	aligns, err := ParseAlign("lrl")
	assert.NoError(t, err)
	assert.Equal(t, []Alignment{AlignLeft, AlignRight, AlignLeft}, aligns)

	aligns, err = ParseAlign("")
	assert.NoError(t, err)
	assert.Empty(t, aligns)

	_, err = ParseAlign("lR")
	assert.ErrorIs(t, err, ErrInvalidAlignment)
}

func TestSlotsFree(t *testing.T) {
	t.Parallel()
	s := &slots{max: 3}
	assert.Equal(t, 0, s.free())
	s.put(1, NewCell("b", RoleBody))
	assert.Equal(t, 0, s.free())
	assert.False(t, s.empty())
	s.put(0, NewCell("a", RoleBody))
	assert.Equal(t, 2, s.free())
	s.put(2, NewCell("c", RoleBody))
	assert.Equal(t, -1, s.free())
}

func TestCellSpanDefaults(t *testing.T) {
	t.Parallel()
	var zero Cell
	assert.Equal(t, 1, zero.colSpan())
	assert.Equal(t, 1, zero.rowSpan())
	assert.Equal(t, "none", zero.tag())
	assert.Equal(t, "span4", Cell{Role: RoleSpan, Span: 4}.tag())
}

func TestBoxJunction(t *testing.T) {
	t.Parallel()
	// +-------+---+
	// | a     | b |
	// +---+---+---+
	// | c | d |   |
	// +---+---+---+
	raw := RawTable{
		{Cell{Text: "a", Role: RoleBody, ColSpan: 2, RowSpan: 1}, NewCell("b", RoleBody)},
		{NewCell("c", RoleBody), NewCell("d", RoleBody)},
	}
	g := Expand(raw, Options{})
	assert.Equal(t, "+", boxJunction(g, 0, 0))
	assert.Equal(t, "-", boxJunction(g, 0, 1))
	assert.Equal(t, "+", boxJunction(g, 0, 2))
	assert.Equal(t, "+", boxJunction(g, 1, 1))

	// A block span over two rows and two columns.
	raw = RawTable{
		{Cell{Text: "x", Role: RoleBody, ColSpan: 2, RowSpan: 2}},
		{},
		{NewCell("y", RoleBody), NewCell("z", RoleBody)},
	}
	g = Expand(raw, Options{})
	assert.Equal(t, "|", boxJunction(g, 1, 0))
	assert.Equal(t, " ", boxJunction(g, 1, 1))
	assert.Equal(t, "+", boxJunction(g, 2, 0))
	assert.Equal(t, "+", boxJunction(g, 2, 1))
}

func TestBoxJunctionVerticalBar(t *testing.T) {
	t.Parallel()
	// Up-left and left share one span, up and current share another: the
	// junction continues the vertical border between them.
	raw := RawTable{
		{Cell{Text: "a", Role: RoleBody, ColSpan: 1, RowSpan: 2}, Cell{Text: "b", Role: RoleBody, ColSpan: 1, RowSpan: 2}},
	}
	g := Expand(raw, Options{})
	assert.Equal(t, "|", boxJunction(g, 1, 1))
	assert.Equal(t, "|", boxRule(g, []int{1, 1}, 1)[4:5])
}

func TestPipeWiden(t *testing.T) {
	t.Parallel()
	g := Expand(FromRows([][]string{{"a|b", "c"}, {"||", "d"}}), Options{})
	org := pipeRenderer{pipeStyles[OrgMode]}
	assert.Equal(t, []int{3 + 2*4, 1}, org.widen(g, []int{3, 1}))
	mysql := pipeRenderer{pipeStyles[MySQL]}
	assert.Equal(t, []int{3, 1}, mysql.widen(g, []int{3, 1}))
}

func TestValidDelim(t *testing.T) {
	t.Parallel()
	assert.True(t, validDelim(','))
	assert.True(t, validDelim('\t'))
	assert.False(t, validDelim('"'))
	assert.False(t, validDelim('\n'))
}
