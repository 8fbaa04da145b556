package tabart

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"
)

// Oracle measures the on-screen width of cell text in columns.
type Oracle interface {
	Width(s string) int
}

// CharClass names a group of characters that can be forced to width one.
type CharClass string

// ClassEmoji covers the emoji and pictograph blocks, which terminals
// disagree on.
const ClassEmoji CharClass = "emoji"

var charClasses = map[CharClass]*unicode.RangeTable{
	ClassEmoji: emojiTable,
}

var emojiTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x231a, Hi: 0x231b, Stride: 1},
		{Lo: 0x23e9, Hi: 0x23f3, Stride: 1},
		{Lo: 0x25fd, Hi: 0x25fe, Stride: 1},
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1},
		{Lo: 0x2b1b, Hi: 0x2b1c, Stride: 1},
		{Lo: 0x2b50, Hi: 0x2b55, Stride: 5},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f000, Hi: 0x1faff, Stride: 1},
	},
}

// ParseCharClass parses a character class name such as "emoji".
func ParseCharClass(s string) (CharClass, error) {
	c := CharClass(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := charClasses[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCharClass, s)
	}
	return c, nil
}

// EastAsian counts one column per character plus one for every character
// whose East Asian Width property is Wide or Fullwidth. Ambiguous characters
// are narrow. Characters in a Narrow class always count as one column.
type EastAsian struct {
	Narrow []CharClass
}

// Width implements [Oracle].
func (e EastAsian) Width(s string) int {
	n := 0
	for _, r := range s {
		n++
		if isWide(r) && !e.forcedNarrow(r) {
			n++
		}
	}
	return n
}

func (e EastAsian) forcedNarrow(r rune) bool {
	for _, c := range e.Narrow {
		if t, ok := charClasses[c]; ok && unicode.Is(t, r) {
			return true
		}
	}
	return false
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

// Cells measures width the way most terminal emulators lay text out, with
// combining marks taking no column of their own. Ambiguous characters are
// narrow whatever the locale says.
type Cells struct{}

// cellsCondition is fixed so RUNEWIDTH_EASTASIAN and LC_* cannot change
// results.
var cellsCondition = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Width implements [Oracle].
func (Cells) Width(s string) int { return cellsCondition.StringWidth(s) }
