package cli

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

func newLogger(w io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %v", level)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(getFormatter(format))
	return l, nil
}

func getFormatter(format string) logrus.Formatter {
	switch format {
	case "json":
		return &logrus.JSONFormatter{}
	case "json-pretty":
		return &logrus.JSONFormatter{PrettyPrint: true}
	default:
		return &prettyFormatter{}
	}
}

// prettyFormatter prints "[LEVEL] message" followed by the entry fields,
// one per line. Multi-line values keep their line breaks.
type prettyFormatter struct{}

func (p *prettyFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := new(bytes.Buffer)
	fmt.Fprintf(b, "[%s] %s\n", strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		val := fmt.Sprint(e.Data[k])
		if strings.Contains(val, "\n") {
			fmt.Fprintf(b, "  %s = |\n", k)
			for _, line := range strings.Split(strings.TrimRight(val, "\n"), "\n") {
				fmt.Fprintf(b, "      %s\n", line)
			}
			continue
		}
		fmt.Fprintf(b, "  %s = %s\n", k, val)
	}
	return b.Bytes(), nil
}
