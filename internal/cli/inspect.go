package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/bjaus/tabart"
)

func newInspectCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show how tables are laid out on the grid",
		Long: `Print the expanded grid of every input table: the role of each cell
("th", "td", "csv", "none", or "span<N>" for merged cells sharing span N)
and the width solved for each column in the selected style.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, f)
		},
	}
}

func runInspect(cmd *cobra.Command, f *flags) error {
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
	tables, err := src.Tables()
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return errNoTables
	}

	out := cmd.OutOrStdout()
	for i, t := range tables {
		g := tabart.Expand(t, s.opts)
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "table %d: %d rows x %d columns\n", i, g.Rows(), g.Cols())
		if g.Rows() == 0 {
			continue
		}
		writeGrid(out, g, tabart.ColumnWidths(g, s.opts.Dialect, s.opts.Width))
	}
	return nil
}

// writeGrid prints the role of every grid cell, with a footer of column
// widths when widths is not nil.
func writeGrid(w io.Writer, g *tabart.Grid, widths []int) {
	header := make([]string, g.Cols()+1)
	header[0] = "row"
	for j := range g.Cols() {
		header[j+1] = strconv.Itoa(j)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for i, roles := range g.Roles() {
		table.Append(append([]string{strconv.Itoa(i)}, roles...))
	}
	if widths != nil {
		footer := make([]string, len(widths)+1)
		footer[0] = "width"
		for j, n := range widths {
			footer[j+1] = strconv.Itoa(n)
		}
		table.SetFooter(footer)
	}
	table.Render()
}
