package tabart

import (
	"bytes"
	"io"
	"iter"
)

// WriteIter renders tables from an iterator and writes each block to w as
// soon as it is rendered. Blocks are separated by a blank line; tables that
// expand to nothing are skipped.
func WriteIter(w io.Writer, seq iter.Seq[RawTable], opts Options) error {
	r, err := newRun(opts)
	if err != nil {
		return err
	}
	bw := &blockWriter{w: w, run: r}
	var streamErr error
	seq(func(t RawTable) bool {
		if err := bw.write(t); err != nil {
			streamErr = err
			return false
		}
		return true
	})
	return streamErr
}

// WriteChan renders tables received from a channel and writes them to w.
// It is a thin wrapper around [WriteIter].
func WriteChan(w io.Writer, ch <-chan RawTable, opts Options) error {
	return WriteIter(w, chanToIter(ch), opts)
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}

// blockWriter writes rendered tables, inserting the blank separator line
// before every block but the first.
type blockWriter struct {
	w     io.Writer
	run   *run
	wrote bool
	buf   bytes.Buffer
}

func (bw *blockWriter) write(t RawTable) error {
	bw.buf.Reset()
	ok, err := bw.run.block(&bw.buf, t)
	if err != nil || !ok {
		return err
	}
	if bw.wrote {
		if _, err := io.WriteString(bw.w, "\n"); err != nil {
			return err
		}
	}
	bw.wrote = true
	_, err = bw.w.Write(bw.buf.Bytes())
	return err
}
