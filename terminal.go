package tabart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"sync"
	"time"

	"golang.org/x/term"
)

// DefaultQueryTimeout bounds each cursor position query of a [Terminal].
const DefaultQueryTimeout = 5 * time.Second

var errInputClosed = errors.New("terminal input closed")

// cursorReport matches the answer to a cursor position query: ESC [ row ; col R.
var cursorReport = regexp.MustCompile(`\x1b\[(\d+);(\d+)R`)

// TerminalOptions configures [NewTerminal].
type TerminalOptions struct {
	// Timeout bounds each cursor query. Zero means DefaultQueryTimeout.
	Timeout time.Duration

	// Fallback measures text once measuring has failed. Nil means EastAsian{}.
	Fallback Oracle

	// Warn receives ErrMeasureFailed the first time a measurement fails.
	Warn func(error)
}

// Terminal measures text by printing it on an interactive terminal and
// comparing the cursor column before and after. Results are cached. After
// the first failed or timed-out measurement every measurement uses the fallback.
//
// A Terminal writes to the terminal while measuring, so it must not be
// shared between goroutines that also write there.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	input    <-chan []byte
	pending  []byte
	raw      func() (func(), error)
	timeout  time.Duration
	fallback Oracle
	warn     func(error)
	cache    map[string]int
	failed   bool
}

// NewTerminal returns a Terminal measuring through in and out, which must
// both be terminals. It fails with ErrWidthUnavailable otherwise.
//
// A background goroutine reads in from then on, so anything typed is
// consumed and never reaches other readers of the terminal. It exits when in
// is closed or reaches end of file; callers close in once the tables are
// rendered.
func NewTerminal(in, out *os.File, opts TerminalOptions) (*Terminal, error) {
	inFd, outFd := int(in.Fd()), int(out.Fd())
	if !term.IsTerminal(inFd) || !term.IsTerminal(outFd) {
		return nil, fmt.Errorf("%w: not attached to a terminal", ErrWidthUnavailable)
	}
	t := newTerminal(in, out, opts)
	t.raw = func() (func(), error) {
		state, err := term.MakeRaw(inFd)
		if err != nil {
			return nil, err
		}
		return func() { _ = term.Restore(inFd, state) }, nil
	}
	return t, nil
}

func newTerminal(in io.Reader, out io.Writer, opts TerminalOptions) *Terminal {
	t := &Terminal{
		out:      out,
		input:    readChunks(in),
		timeout:  opts.Timeout,
		fallback: opts.Fallback,
		warn:     opts.Warn,
		cache:    make(map[string]int),
	}
	if t.timeout <= 0 {
		t.timeout = DefaultQueryTimeout
	}
	if t.fallback == nil {
		t.fallback = EastAsian{}
	}
	return t
}

// readChunks copies everything read from r onto a channel, so a query can
// give up waiting without abandoning a blocked Read. The channel is closed
// when a Read fails.
func readChunks(r io.Reader) <-chan []byte {
	ch := make(chan []byte, 16)
	go func() {
		defer close(ch)
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				ch <- append([]byte(nil), buf[:n]...)
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// Width implements [Oracle].
func (t *Terminal) Width(s string) int {
	if s == "" {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if w, ok := t.cache[s]; ok {
		return w
	}
	if t.failed {
		return t.fallback.Width(s)
	}
	w, err := t.measure(s)
	if err != nil {
		t.failed = true
		if t.warn != nil {
			t.warn(fmt.Errorf("%w: %w", ErrMeasureFailed, err))
		}
		return t.fallback.Width(s)
	}
	t.cache[s] = w
	return w
}

func (t *Terminal) measure(s string) (int, error) {
	if t.raw != nil {
		restore, err := t.raw()
		if err != nil {
			return 0, err
		}
		defer restore()
	}
	if _, err := io.WriteString(t.out, "\r"); err != nil {
		return 0, err
	}
	before, err := t.column()
	if err != nil {
		return 0, err
	}
	if _, err := io.WriteString(t.out, s); err != nil {
		return 0, err
	}
	after, err := t.column()
	if err != nil {
		return 0, err
	}
	// Wipe the measured text from the line.
	if _, err := io.WriteString(t.out, "\r\x1b[K"); err != nil {
		return 0, err
	}
	if after < before {
		return 0, fmt.Errorf("cursor moved backwards from column %d to %d", before, after)
	}
	return after - before, nil
}

// column asks the terminal for the cursor position and returns its column.
func (t *Terminal) column() (int, error) {
	if _, err := io.WriteString(t.out, "\x1b[6n"); err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	for {
		if m := cursorReport.FindSubmatchIndex(t.pending); m != nil {
			col, err := strconv.Atoi(string(t.pending[m[4]:m[5]]))
			t.pending = t.pending[m[1]:]
			return col, err
		}
		select {
		case chunk, ok := <-t.input:
			if !ok {
				return 0, errInputClosed
			}
			t.pending = append(t.pending, chunk...)
		case <-ctx.Done():
			return 0, fmt.Errorf("no cursor report within %s: %w", t.timeout, ctx.Err())
		}
	}
}
