// Package cli implements the tabart command line.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bjaus/tabart"
	"github.com/bjaus/tabart/internal/config"
)

var errNoTables = errors.New("no table found in input")

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// Execute runs the tabart command with os.Args.
func Execute() error {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "tabart",
		Short: "Convert HTML or CSV tables to ASCII art tables",
		Long: `tabart converts HTML tables, delimited text or YAML row lists into
plain-text tables in box, orgmode, mysql or markdown style.

Input is read from standard input unless -i is given. The input format and
the CSV delimiter are guessed when not specified. colspan and rowspan are
honored; only the box style draws merged cells as one region.`,
		Example: `  tabart -i report.html -s box
  tabart -d ';' --column-align lrr < prices.csv
  tabart -f yaml -s markdown -i rows.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, f)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("tabart version %s\n  commit: %s\n  built:  %s\n", Version, CommitSHA, BuildDate))

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tabart/config.toml or config.yaml)")
	pf.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&f.logFormat, "log-format", "text", "log format: text, json or json-pretty")
	f.register(pf)

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file, standard output if not specified")

	cmd.AddCommand(
		newInspectCmd(f),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tabart version %s\n", Version)
			fmt.Fprintf(out, "  commit: %s\n", CommitSHA)
			fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		},
	}
}

// flags are the command line settings shared by all commands.
type flags struct {
	configPath string
	logLevel   string
	logFormat  string

	input     string
	output    string
	format    string
	delimiter string

	style       string
	columnAlign string
	noHeader    bool
	width1Chars []string
	alignInTTY  bool
	cellWidth   bool
	maxRows     int
	maxCols     int
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.input, "input", "i", "", "source file, standard input if not specified")
	fs.StringVarP(&f.format, "format", "f", formatAuto, "input format: auto, html, csv or yaml")
	fs.StringVarP(&f.delimiter, "delimiter", "d", "", `CSV delimiter, guessed from the first line if not specified ("\t" or "tab" for a tab)`)
	fs.StringVarP(&f.style, "style", "s", "orgmode", "output style: box (emacs), orgmode, mysql or markdown")
	fs.StringVar(&f.columnAlign, "column-align", "", `column alignment, one "l" or "r" per column, e.g. "llrr"`)
	fs.BoolVar(&f.noHeader, "no-header", false, "do not draw the header separator line")
	fs.StringSliceVar(&f.width1Chars, "width1-chars", nil, `character classes forced to one column width, only "emoji" is supported`)
	fs.BoolVar(&f.alignInTTY, "align-in-tty", false, "measure cell widths on the terminal; --width1-chars is then ignored")
	fs.BoolVar(&f.cellWidth, "cell-width", false, "measure cell widths like terminal emulators do (grapheme clusters, combining marks)")
	fs.IntVar(&f.maxRows, "max-rows", tabart.DefaultMaxRows, "maximum rows rendered per table")
	fs.IntVar(&f.maxCols, "max-cols", tabart.DefaultMaxCols, "maximum columns rendered per table")
}

// settings loads the config file and applies explicitly set flags on top.
func (f *flags) settings(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if fs.Changed("style") {
		cfg.Style = f.style
	}
	if fs.Changed("column-align") {
		cfg.ColumnAlign = f.columnAlign
	}
	if fs.Changed("no-header") {
		cfg.NoHeader = f.noHeader
	}
	if fs.Changed("width1-chars") {
		cfg.Width1Chars = f.width1Chars
	}
	switch {
	case f.alignInTTY:
		cfg.Width = config.WidthTerminal
	case f.cellWidth:
		cfg.Width = config.WidthCells
	}
	if fs.Changed("max-rows") {
		cfg.MaxRows = f.maxRows
	}
	if fs.Changed("max-cols") {
		cfg.MaxCols = f.maxCols
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is one configured invocation.
type session struct {
	log  *logrus.Logger
	opts tabart.Options
	tty  *os.File
}

func (f *flags) open(cmd *cobra.Command) (*session, error) {
	cfg, err := f.settings(cmd.Flags())
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts.Warn = func(err error) { log.Warn(err) }
	s := &session{log: log, opts: opts}

	if cfg.Width == config.WidthTerminal {
		if err := s.measureOnTerminal(cfg.QueryTimeout); err != nil {
			log.WithError(err).Warn("Cannot measure on the terminal, using East Asian widths")
		}
	}
	return s, nil
}

// measureOnTerminal switches width measurement to the controlling terminal.
// Standard input may hold the table data, so the terminal is opened directly.
func (s *session) measureOnTerminal(timeout time.Duration) error {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", tabart.ErrWidthUnavailable, err)
	}
	t, err := tabart.NewTerminal(tty, tty, tabart.TerminalOptions{
		Timeout:  timeout,
		Fallback: s.opts.Width,
		Warn:     s.opts.Warn,
	})
	if err != nil {
		tty.Close()
		return err
	}
	s.tty = tty
	s.opts.Width = t
	return nil
}

func (s *session) close() {
	if s.tty != nil {
		s.tty.Close()
	}
}

func runConvert(cmd *cobra.Command, f *flags) error {
	s, err := f.open(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	content, err := readInput(cmd.InOrStdin(), f.input, s.log)
	if err != nil {
		return err
	}
	src, err := newSource(content, f.format, f.delimiter, s.log)
	if err != nil {
		return err
	}
	if s.log.IsLevelEnabled(logrus.DebugLevel) {
		if err := debugGrids(s, src); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := tabart.Write(&buf, src, s.opts); err != nil {
		return err
	}
	if buf.Len() == 0 {
		s.log.Warn("No table is generated, maybe the input data is empty or malformed")
		return nil
	}
	if f.output != "" {
		if err := os.WriteFile(f.output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

// debugGrids logs the expanded topology of every table.
func debugGrids(s *session, src tabart.Source) error {
	tables, err := src.Tables()
	if err != nil {
		return err
	}
	for i, t := range tables {
		var buf bytes.Buffer
		g := tabart.Expand(t, tabart.Options{MaxRows: s.opts.MaxRows, MaxCols: s.opts.MaxCols})
		writeGrid(&buf, g, nil)
		s.log.WithFields(logrus.Fields{
			"table": i,
			"grid":  buf.String(),
		}).Debugf("Expanded %d rows x %d columns", g.Rows(), g.Cols())
	}
	return nil
}
