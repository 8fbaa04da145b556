package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/bjaus/tabart"
)

// Input formats accepted by --format.
const (
	formatAuto = "auto"
	formatHTML = "html"
	formatCSV  = "csv"
	formatYAML = "yaml"
)

var inputFormats = []string{formatAuto, formatHTML, formatCSV, formatYAML}

// delimiterCandidates are tried in order when guessing; ties go to the
// earlier one.
var delimiterCandidates = []rune{',', '\t', ';', '|'}

func readInput(stdin io.Reader, path string, log logrus.FieldLogger) (string, error) {
	if path == "" || path == "-" {
		log.Info("Reading from standard input, press Ctrl-D (EOF) when finished")
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// guessFormat treats input starting with "<" as HTML and anything else as
// delimited text.
func guessFormat(content string) string {
	if strings.HasPrefix(strings.TrimLeft(content, " \r\n\t"), "<") {
		return formatHTML
	}
	return formatCSV
}

// guessDelimiter picks the candidate occurring most often in the first line.
// It reports false when the first line is empty.
func guessDelimiter(content string) (rune, bool) {
	first, _, _ := strings.Cut(strings.Trim(content, " \r\n"), "\n")
	best, bestCount := delimiterCandidates[0], -1
	for _, c := range delimiterCandidates {
		if n := strings.Count(first, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best, first != ""
}

// parseDelimiter accepts a single character, or "\t" and "tab" for a tab.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if s == "" || size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: %q must be a single character", tabart.ErrInvalidDelimiter, s)
	}
	return r, nil
}

// newSource resolves the input format and, for delimited text, the
// delimiter.
func newSource(content, format, delimiter string, log logrus.FieldLogger) (tabart.Source, error) {
	if format == formatAuto {
		format = guessFormat(content)
		log.WithField("format", format).Debug("Guessed input format")
	}
	switch format {
	case formatHTML:
		return tabart.HTML(content), nil
	case formatYAML:
		return tabart.YAMLRows(content), nil
	case formatCSV:
		if delimiter != "" {
			comma, err := parseDelimiter(delimiter)
			if err != nil {
				return nil, err
			}
			return tabart.Delimited{Text: content, Comma: comma}, nil
		}
		comma, ok := guessDelimiter(content)
		if ok {
			log.Infof("Auto set character %q as delimiter", comma)
		}
		return tabart.Delimited{Text: content, Comma: comma}, nil
	default:
		return nil, fmt.Errorf("unsupported input format %q, use one of %s", format, strings.Join(inputFormats, ", "))
	}
}
