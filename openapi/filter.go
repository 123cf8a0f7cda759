package openapi

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// FilterOptions control which parts of the source a filtered document keeps.
type FilterOptions struct {
	// Untagged is the synthetic tag matching untagged operations.
	Untagged string

	// SecuritySchemes attaches components.securitySchemes when present.
	SecuritySchemes bool
}

// Filter builds a new document tree holding openapi, info, the paths whose
// operations match tags and, if requested, components.securitySchemes.
// Paths come in lexical order; operations keep source order. It returns
// the tree, the number of operations kept and whether securitySchemes were
// attached. The source is not modified.
func (d *Document) Filter(tags TagSet, opts FilterOptions) (*yaml.Node, int, bool) {
	items := make([]PathItem, len(d.paths))
	copy(items, d.paths)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Path < items[j].Path
	})

	paths := mapping()
	kept := 0
	for _, pi := range items {
		methods := mapping()
		for _, op := range pi.Operations {
			if !tags.Matches(op, opts.Untagged) {
				continue
			}
			methods.Content = append(methods.Content, scalar(op.Method), op.Node)
			kept++
		}
		if len(methods.Content) > 0 {
			paths.Content = append(paths.Content, scalar(pi.Path), methods)
		}
	}

	out := mapping(
		scalar("openapi"), d.Version(),
		scalar("info"), d.Info(),
		scalar("paths"), paths,
	)
	attached := false
	if opts.SecuritySchemes {
		if schemes, ok := d.SecuritySchemes(); ok {
			out.Content = append(out.Content,
				scalar("components"), mapping(scalar("securitySchemes"), schemes))
			attached = true
		}
	}
	return out, kept, attached
}
