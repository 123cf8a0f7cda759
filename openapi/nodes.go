package openapi

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// lookup returns the value for key in a mapping node, or nil.
func lookup(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func mapping(kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: kv}
}

// normalize replaces alias nodes with their targets and drops anchors and
// comments, in place. A target reached through several aliases is shared.
// An alias back into one of its own ancestors stays an alias, and that
// ancestor keeps its anchor, so recursive schemas still encode.
func normalize(n *yaml.Node) *yaml.Node {
	w := &normalizer{
		active:    make(map[*yaml.Node]bool),
		done:      make(map[*yaml.Node]bool),
		recursive: make(map[*yaml.Node]bool),
	}
	return w.walk(n)
}

type normalizer struct {
	active    map[*yaml.Node]bool
	done      map[*yaml.Node]bool
	recursive map[*yaml.Node]bool
}

func (w *normalizer) walk(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.AliasNode {
		if n.Alias == nil {
			return n
		}
		if w.active[n.Alias] {
			w.recursive[n.Alias] = true
			n.HeadComment, n.LineComment, n.FootComment = "", "", ""
			return n
		}
		return w.walk(n.Alias)
	}
	if w.done[n] {
		return n
	}

	w.active[n] = true
	n.HeadComment, n.LineComment, n.FootComment = "", "", ""
	for i, c := range n.Content {
		n.Content[i] = w.walk(c)
	}
	delete(w.active, n)
	w.done[n] = true

	if !w.recursive[n] {
		n.Anchor = ""
	}
	return n
}

// Encode serializes a node as YAML with two-space indentation. Long
// scalars are never folded.
func Encode(n *yaml.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
