// Package openapi reads a dereferenced OpenAPI 3.x document and rebuilds
// tag-filtered copies of it.
//
// The source is kept as an order-preserving yaml.Node tree. Nothing here
// validates or resolves the document; it is treated as opaque beyond the
// paths object, operation tags, info and components.securitySchemes.
//
// # Loading
//
//	doc, err := openapi.Load("api.deref.yaml", openapi.Options{})
//
// # Indexing and ordering
//
//	idx := openapi.NewIndexer(logger).Index(doc)
//	order := openapi.OrderTags(idx, []string{"orgs", "teams"})
//
// # Filtering
//
//	tree, ops, _ := doc.Filter(openapi.NewTagSet("orgs"), openapi.FilterOptions{
//		Untagged: openapi.UntaggedTag,
//	})
//	text, err := openapi.Encode(tree)
package openapi
