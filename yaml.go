package tabfile

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// readYAML parses a top-level sequence of mappings or sequences. The first
// mapping's keys, in document order, become the header row; later mappings
// are aligned by key, with missing keys read as null.
func readYAML(data []byte, _ Options) (*Dataset, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return New(), nil
	}
	seq := root.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("yaml: expected a top-level sequence")
	}
	d := New()
	for _, item := range seq.Content {
		switch item.Kind {
		case yaml.MappingNode:
			if d.headers == nil && d.Empty() {
				for i := 0; i < len(item.Content); i += 2 {
					d.headers = append(d.headers, item.Content[i].Value)
				}
			}
			if len(d.headers) == 0 {
				return nil, fmt.Errorf("yaml: row %d: mapping row in a headerless dataset", d.Height()+1)
			}
			values := make(map[string]any, len(item.Content)/2)
			for i := 0; i+1 < len(item.Content); i += 2 {
				v, err := yamlScalar(item.Content[i+1])
				if err != nil {
					return nil, err
				}
				values[item.Content[i].Value] = v
			}
			row := make([]any, len(d.headers))
			for j, h := range d.headers {
				row[j] = values[h]
			}
			if err := d.Append(row); err != nil {
				return nil, err
			}
		case yaml.SequenceNode:
			row := make([]any, len(item.Content))
			for i, cell := range item.Content {
				v, err := yamlScalar(cell)
				if err != nil {
					return nil, err
				}
				row[i] = v
			}
			if err := d.Append(row); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("yaml: row %d: expected a mapping or sequence", d.Height()+1)
		}
	}
	return d, nil
}

func writeYAML(w io.Writer, d *Dataset, _ Options) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range d.rows {
		item, err := yamlRow(d.headers, row)
		if err != nil {
			return err
		}
		seq.Content = append(seq.Content, item)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return err
	}
	return enc.Close()
}

func detectYAML(data []byte) bool {
	var v []any
	return yaml.Unmarshal(data, &v) == nil && len(v) > 0
}

// yamlRow builds one sequence item: a mapping in header order when headers
// exist, a flow sequence otherwise.
func yamlRow(headers []string, row []any) (*yaml.Node, error) {
	if len(headers) == 0 {
		item := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, cell := range row {
			n, err := yamlNode(cell)
			if err != nil {
				return nil, err
			}
			item.Content = append(item.Content, n)
		}
		return item, nil
	}
	item := &yaml.Node{Kind: yaml.MappingNode}
	for j, h := range headers {
		key, err := yamlNode(h)
		if err != nil {
			return nil, err
		}
		var cell any
		if j < len(row) {
			cell = row[j]
		}
		val, err := yamlNode(cell)
		if err != nil {
			return nil, err
		}
		item.Content = append(item.Content, key, val)
	}
	return item, nil
}

func yamlNode(v any) (*yaml.Node, error) {
	if v == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return node, nil
}

// yamlScalar converts a value node into a cell. Timestamps and oversized
// integers keep their document text; nested structures are flattened to
// their rendered form.
func yamlScalar(node *yaml.Node) (any, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Sprintf("%v", v), nil
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case uint64, time.Time:
		return node.Value, nil
	default:
		return v, nil
	}
}
