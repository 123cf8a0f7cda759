package openapi

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for document loading.
var (
	// ErrNotMapping indicates the document root is not a YAML mapping.
	ErrNotMapping = errors.New("document root is not a mapping")

	// ErrEmptyDocument indicates the source contained no YAML document.
	ErrEmptyDocument = errors.New("empty document")
)

// DefaultVersion is emitted when the source has no openapi key.
const DefaultVersion = "3.0.3"

// UntaggedTag groups operations that carry no tags.
const UntaggedTag = "__untagged__"

// DefaultMethods are the path item keys treated as operations.
var DefaultMethods = []string{"get", "put", "post", "patch", "delete", "options", "head", "trace"}

// Operation is one (path, method) entry of the paths object.
type Operation struct {
	Path   string
	Method string

	// Tags as declared; empty for untagged operations.
	Tags []string

	// Node is the operation object. Never mutated.
	Node *yaml.Node
}

// Untagged reports whether the operation declares no tags.
func (o Operation) Untagged() bool {
	return len(o.Tags) == 0
}

// PathItem holds the operations of one path in source order.
type PathItem struct {
	Path       string
	Operations []Operation
}

// Document is a parsed OpenAPI source. It is read once and never mutated.
type Document struct {
	root  *yaml.Node
	paths []PathItem
}

// Options tune how a document is parsed.
type Options struct {
	// Methods lists the path item keys treated as operations.
	// Empty means DefaultMethods.
	Methods []string
}

// Load reads and parses the file at path.
func Load(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	doc, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("openapi: parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes YAML (or JSON) source into a Document. Aliases are
// expanded and comments dropped so any subtree serializes on its own.
func Parse(data []byte, opts Options) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return nil, ErrEmptyDocument
	}
	root := normalize(node.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	methods := opts.Methods
	if len(methods) == 0 {
		methods = DefaultMethods
	}
	isMethod := make(map[string]bool, len(methods))
	for _, m := range methods {
		isMethod[m] = true
	}

	doc := &Document{root: root}
	paths := lookup(root, "paths")
	if paths == nil || paths.Kind != yaml.MappingNode {
		return doc, nil
	}
	for i := 0; i+1 < len(paths.Content); i += 2 {
		path, item := paths.Content[i].Value, paths.Content[i+1]
		if item.Kind != yaml.MappingNode {
			continue
		}
		pi := PathItem{Path: path}
		for j := 0; j+1 < len(item.Content); j += 2 {
			method, op := item.Content[j].Value, item.Content[j+1]
			if !isMethod[method] || op.Kind != yaml.MappingNode {
				continue
			}
			pi.Operations = append(pi.Operations, Operation{
				Path:   path,
				Method: method,
				Tags:   operationTags(op),
				Node:   op,
			})
		}
		doc.paths = append(doc.paths, pi)
	}
	return doc, nil
}

// Paths returns the path items in source order.
func (d *Document) Paths() []PathItem {
	return d.paths
}

// Operations returns every operation in source order.
func (d *Document) Operations() []Operation {
	var ops []Operation
	for _, pi := range d.paths {
		ops = append(ops, pi.Operations...)
	}
	return ops
}

// Version returns the openapi version node, or a DefaultVersion scalar.
func (d *Document) Version() *yaml.Node {
	if v := lookup(d.root, "openapi"); v != nil && !isNull(v) {
		return v
	}
	return scalar(DefaultVersion)
}

// Info returns the info node, or a null scalar when absent.
func (d *Document) Info() *yaml.Node {
	if v := lookup(d.root, "info"); v != nil {
		return v
	}
	return nullNode()
}

// SecuritySchemes returns components.securitySchemes and whether the key
// is present.
func (d *Document) SecuritySchemes() (*yaml.Node, bool) {
	comps := lookup(d.root, "components")
	if comps == nil || comps.Kind != yaml.MappingNode {
		return nil, false
	}
	v := lookup(comps, "securitySchemes")
	return v, v != nil
}

func operationTags(op *yaml.Node) []string {
	seq := lookup(op, "tags")
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil
	}
	tags := make([]string, 0, len(seq.Content))
	for _, t := range seq.Content {
		if t.Kind == yaml.ScalarNode {
			tags = append(tags, t.Value)
		}
	}
	return tags
}
