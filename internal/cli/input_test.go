package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tabart"
)

func TestGuessFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		content string
		want    string
	}{
		"html":           {content: "<table></table>", want: formatHTML},
		"leading spaces": {content: " \r\n\t<html>", want: formatHTML},
		"csv":            {content: "a,b", want: formatCSV},
		"empty":          {content: "", want: formatCSV},
		"angle later":    {content: "a,<b>", want: formatCSV},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, guessFormat(tt.content))
		})
	}
}

func TestGuessDelimiter(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		content string
		want    rune
		ok      bool
	}{
		"comma":               {content: "a,b,c\n", want: ',', ok: true},
		"tab":                 {content: "a\tb\n1,2,3\n", want: '\t', ok: true},
		"semicolon wins":      {content: "a;b;c,d", want: ';', ok: true},
		"pipe":                {content: "a|b", want: '|', ok: true},
		"tie goes to earlier": {content: "a,b;c", want: ',', ok: true},
		"no candidate":        {content: "abc", want: ',', ok: true},
		"leading blank lines": {content: "\n\n a|b\nc,d,e", want: '|', ok: true},
		"empty":               {content: "", want: ',', ok: false},
		"only newlines":       {content: "\r\n\n", want: ',', ok: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := guessDelimiter(tt.content)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  rune
	}{
		"comma":       {input: ",", want: ','},
		"escaped tab": {input: `\t`, want: '\t'},
		"tab name":    {input: "tab", want: '\t'},
		"literal tab": {input: "\t", want: '\t'},
		"multibyte":   {input: "·", want: '·'},
		"letter":      {input: "x", want: 'x'},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := parseDelimiter(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "ab", "\xff"} {
		_, err := parseDelimiter(bad)
		require.Error(t, err, "%q", bad)
		assert.True(t, errors.Is(err, tabart.ErrInvalidDelimiter))
	}
}

func TestNewSource(t *testing.T) {
	t.Parallel()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	src, err := newSource("<table></table>", formatAuto, "", log)
	require.NoError(t, err)
	assert.Equal(t, tabart.HTML("<table></table>"), src)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, formatHTML, hook.LastEntry().Data["format"])

	hook.Reset()
	src, err = newSource("a;b", formatCSV, "", log)
	require.NoError(t, err)
	assert.Equal(t, tabart.Delimited{Text: "a;b", Comma: ';'}, src)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)

	hook.Reset()
	src, err = newSource("a;b", formatCSV, "|", log)
	require.NoError(t, err)
	assert.Equal(t, tabart.Delimited{Text: "a;b", Comma: '|'}, src)
	assert.Empty(t, hook.Entries)

	hook.Reset()
	src, err = newSource("", formatCSV, "", log)
	require.NoError(t, err)
	assert.Equal(t, tabart.Delimited{Comma: ','}, src)
	assert.Empty(t, hook.Entries, "nothing to guess from")

	src, err = newSource("- [a]", formatYAML, "", log)
	require.NoError(t, err)
	assert.Equal(t, tabart.YAMLRows("- [a]"), src)

	_, err = newSource("x", "xml", "", log)
	require.Error(t, err)
}

func TestReadInput(t *testing.T) {
	t.Parallel()
	log, hook := test.NewNullLogger()
	for _, path := range []string{"", "-"} {
		hook.Reset()
		got, err := readInput(strings.NewReader("data"), path, log)
		require.NoError(t, err)
		assert.Equal(t, "data", got)
		require.Len(t, hook.Entries, 1)
		assert.Contains(t, hook.LastEntry().Message, "standard input")
	}

	_, err := readInput(failingReader{}, "", log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading standard input")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }
