package tabart_test

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/bjaus/tabart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIter(t *testing.T) {
	t.Parallel()
	tables := []tabart.RawTable{
		tabart.FromRows([][]string{{"a"}}),
		nil,
		tabart.FromRows([][]string{{"b"}}),
	}
	var buf bytes.Buffer
	err := tabart.WriteIter(&buf, slices.Values(tables), tabart.Options{Dialect: tabart.OrgMode})
	require.NoError(t, err)
	assert.Equal(t, "| a |\n\n| b |\n", buf.String())
}

func TestWriteChan(t *testing.T) {
	t.Parallel()
	ch := make(chan tabart.RawTable, 2)
	ch <- tabart.FromRows([][]string{{"x", "y"}})
	ch <- tabart.FromRows([][]string{{"z"}})
	close(ch)

	var buf bytes.Buffer
	err := tabart.WriteChan(&buf, ch, tabart.Options{Dialect: tabart.Markdown, NoHeader: true})
	require.NoError(t, err)
	assert.Equal(t, "| x | y |\n\n| z |\n", buf.String())
}

func TestWriteIterInvalidOptions(t *testing.T) {
	t.Parallel()
	pulled := false
	seq := func(yield func(tabart.RawTable) bool) {
		pulled = true
		yield(nil)
	}
	err := tabart.WriteIter(&bytes.Buffer{}, seq, tabart.Options{Align: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabart.ErrInvalidAlignment))
	assert.False(t, pulled)
}

// failAfter accepts n writes and fails every write after that.
type failAfter struct {
	n      int
	writes int
}

var errSink = errors.New("sink closed")

func (f *failAfter) Write(p []byte) (int, error) {
	f.writes++
	if f.writes > f.n {
		return 0, errSink
	}
	return len(p), nil
}

func TestWriteIterStopsOnWriteError(t *testing.T) {
	t.Parallel()
	yielded := 0
	seq := func(yield func(tabart.RawTable) bool) {
		for range 5 {
			yielded++
			if !yield(tabart.FromRows([][]string{{"row"}})) {
				return
			}
		}
	}
	w := &failAfter{n: 1}
	err := tabart.WriteIter(w, seq, tabart.Options{Dialect: tabart.OrgMode})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errSink))
	assert.Equal(t, 2, yielded)
}
