package snippet

import (
	"fmt"

	"github.com/randalmurphal/apisnippet/openapi"
	"github.com/randalmurphal/apisnippet/tokens"
)

// Candidate is one serialized filtered document and its measurements.
type Candidate struct {
	Text       string
	Tokens     int
	Operations int

	// Components reports whether components.securitySchemes is in Text.
	Components bool
}

// CandidateBuilder builds the filtered document for a tag set.
type CandidateBuilder interface {
	Build(tags openapi.TagSet, includeComponents bool) (Candidate, error)
}

// Builder rebuilds a filtered document from scratch on every call and
// measures it with a token counter.
type Builder struct {
	doc      *openapi.Document
	counter  tokens.Counter
	untagged string
}

// NewBuilder returns a builder over doc. An empty untagged defaults to
// openapi.UntaggedTag.
func NewBuilder(doc *openapi.Document, counter tokens.Counter, untagged string) *Builder {
	if untagged == "" {
		untagged = openapi.UntaggedTag
	}
	return &Builder{doc: doc, counter: counter, untagged: untagged}
}

// Build filters, serializes and counts. Equal inputs give byte-identical
// text.
func (b *Builder) Build(tags openapi.TagSet, includeComponents bool) (Candidate, error) {
	tree, ops, attached := b.doc.Filter(tags, openapi.FilterOptions{
		Untagged:        b.untagged,
		SecuritySchemes: includeComponents,
	})
	text, err := openapi.Encode(tree)
	if err != nil {
		return Candidate{}, fmt.Errorf("snippet: encode %d tags: %w", tags.Len(), err)
	}
	return Candidate{
		Text:       text,
		Tokens:     b.counter.Count(text),
		Operations: ops,
		Components: attached,
	}, nil
}
