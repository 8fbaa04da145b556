// Package tabart converts HTML tables and delimited text into plain-text
// tables.
//
// Input comes from a [Source]: [HTML] for documents holding one or more
// <table> elements, [Delimited] for CSV-like text, [Rows] for fields that
// are already split and [YAMLRows] for YAML or JSON row lists. The central
// entry points are [Write] and [Marshal]; [RenderHTML], [RenderDelimited]
// and [RenderRows] are string shortcuts.
//
//	out, err := tabart.RenderHTML(doc, tabart.Options{Dialect: tabart.OrgMode})
//
// # Dialects
//
//   - [Box]: every cell bordered, merged cells drawn as one region
//   - [OrgMode]: org-mode pipe table, "|" escaped as \vert
//   - [MySQL]: pipe table with outer rules
//   - [Markdown]: GitHub-flavored Markdown, "|" escaped as \|
//
// Use [ParseDialect] to turn a flag value into a [Dialect].
//
// # Spans
//
// HTML colspan and rowspan are honored. [Expand] lays a ragged [RawTable]
// out on a rectangular [Grid] where each merged region is a leader cell plus
// continuation cells sharing one span identity. Only [Box] draws merged
// regions without inner borders; the pipe dialects print the leader in its
// first column and leave the rest blank.
//
// # Width
//
// Column widths come from an [Oracle]. [EastAsian] is the default and
// counts wide and fullwidth characters as two columns; its Narrow field
// forces classes such as [ClassEmoji] to one. [Cells] follows go-runewidth
// and [Terminal] asks the terminal itself.
//
// # Errors
//
// Fatal problems are reported through sentinel errors wrapped with context,
// for example [ErrInvalidSpan] (as a [*ParseError]), [ErrUnsupportedDialect]
// and [ErrInvalidAlignment]. Truncation is not fatal: [ErrTooManyRows] and
// [ErrTooManyColumns] are passed to [Options.Warn] and the partial table is
// rendered.
package tabart
