package tabart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLRows is a YAML stream, or a JSON document, holding one table per
// document. A document is a sequence of rows; a row is either a sequence of
// values or a mapping. Mapping rows are laid out under a header row of keys
// in first-seen order.
//
//	[[Name, Age], [Peter, 17]]
//
//	[{name: Peter, age: 17}, {name: Kate, age: 21}]
type YAMLRows string

// Tables implements [Source].
func (y YAMLRows) Tables() ([]RawTable, error) {
	return ParseYAMLRows(strings.NewReader(string(y)))
}

// ParseYAMLRows decodes every document of r into a raw table. Scalars are
// used verbatim, null becomes an empty cell and nested collections are
// printed in flow style.
func ParseYAMLRows(r io.Reader) ([]RawTable, error) {
	dec := yaml.NewDecoder(r)
	var tables []RawTable
	for i := 0; ; i++ {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return tables, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %w", ErrInvalidRows, i, err)
		}
		rows, err := documentRows(&doc)
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %w", ErrInvalidRows, i, err)
		}
		tables = append(tables, FromRows(rows))
	}
}

func documentRows(doc *yaml.Node) ([][]string, error) {
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: top level must be a sequence of rows", n.Line)
	}
	if len(n.Content) > 0 && n.Content[0].Kind == yaml.MappingNode {
		return mappingRows(n.Content)
	}
	rows := make([][]string, 0, len(n.Content))
	for _, row := range n.Content {
		if row.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: expected a sequence row, got %s", row.Line, kindName(row))
		}
		rec := make([]string, len(row.Content))
		for j, v := range row.Content {
			s, err := scalarText(v)
			if err != nil {
				return nil, err
			}
			rec[j] = s
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func mappingRows(items []*yaml.Node) ([][]string, error) {
	var keys []string
	index := make(map[string]int)
	values := make([]map[string]string, len(items))
	for i, row := range items {
		if row.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: expected a mapping row, got %s", row.Line, kindName(row))
		}
		values[i] = make(map[string]string, len(row.Content)/2)
		for k := 0; k+1 < len(row.Content); k += 2 {
			key := row.Content[k].Value
			if _, ok := index[key]; !ok {
				index[key] = len(keys)
				keys = append(keys, key)
			}
			s, err := scalarText(row.Content[k+1])
			if err != nil {
				return nil, err
			}
			values[i][key] = s
		}
	}
	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, keys)
	for _, v := range values {
		rec := make([]string, len(keys))
		for j, key := range keys {
			rec[j] = v[key]
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func scalarText(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if isNull(n) {
		return "", nil
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value, nil
	}
	flow := *n
	flow.Style = yaml.FlowStyle
	b, err := yaml.Marshal(&flow)
	if err != nil {
		return "", fmt.Errorf("line %d: %w", n.Line, err)
	}
	return strings.TrimSpace(string(b)), nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	default:
		return "node"
	}
}
