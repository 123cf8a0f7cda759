package openapi

import (
	"log/slog"
	"sort"
	"unicode/utf8"
)

// DefaultFallbackEstimate is the size used for an operation that fails to
// serialize during indexing.
const DefaultFallbackEstimate = 1000

// Ref identifies an operation.
type Ref struct {
	Path   string
	Method string
}

// Index maps tags to their operations and estimated serialized size.
type Index struct {
	// Tags in order of first discovery.
	Tags []string

	// Sizes is the cumulative size estimate per tag, in characters.
	Sizes map[string]int

	// Operations lists the operations carrying each tag.
	Operations map[string][]Ref
}

// Estimator returns the relative size of one operation.
type Estimator func(op Operation) (int, error)

// Indexer builds an Index from a Document.
type Indexer struct {
	// Untagged is the synthetic tag for untagged operations.
	Untagged string

	// Fallback replaces an estimate that failed.
	Fallback int

	// Estimate measures one operation. Defaults to SerializedSize.
	Estimate Estimator

	logger *slog.Logger
}

// NewIndexer returns an indexer with the default synthetic tag, fallback
// and estimator.
func NewIndexer(logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{
		Untagged: UntaggedTag,
		Fallback: DefaultFallbackEstimate,
		Estimate: SerializedSize,
		logger:   logger,
	}
}

// Index scans every operation of doc in source order.
func (x *Indexer) Index(doc *Document) *Index {
	idx := &Index{
		Sizes:      make(map[string]int),
		Operations: make(map[string][]Ref),
	}
	for _, op := range doc.Operations() {
		est, err := x.Estimate(op)
		if err != nil {
			x.logger.Warn("size estimate failed, using fallback",
				slog.String("path", op.Path),
				slog.String("method", op.Method),
				slog.Int("fallback", x.Fallback),
				slog.Any("error", err))
			est = x.Fallback
		}

		tags := op.Tags
		if op.Untagged() {
			tags = []string{x.Untagged}
		}
		for _, tag := range tags {
			if _, seen := idx.Operations[tag]; !seen {
				idx.Tags = append(idx.Tags, tag)
			}
			idx.Sizes[tag] += est
			idx.Operations[tag] = append(idx.Operations[tag], Ref{Path: op.Path, Method: op.Method})
		}
	}
	return idx
}

// SerializedSize is the character length of the YAML document holding only
// {path: {method: operation}}. A relative size proxy, not a token count.
func SerializedSize(op Operation) (int, error) {
	text, err := Encode(mapping(scalar(op.Path), mapping(scalar(op.Method), op.Node)))
	if err != nil {
		return 0, err
	}
	return utf8.RuneCountInString(text), nil
}

// OrderTags ranks the indexed tags: those named in priority first, in
// priority order, then the rest by descending size. Ties keep discovery
// order.
func OrderTags(idx *Index, priority []string) []string {
	ordered := make([]string, 0, len(idx.Tags))
	placed := make(map[string]bool, len(priority))
	for _, tag := range priority {
		if _, ok := idx.Operations[tag]; ok && !placed[tag] {
			ordered = append(ordered, tag)
			placed[tag] = true
		}
	}

	rest := make([]string, 0, len(idx.Tags)-len(ordered))
	for _, tag := range idx.Tags {
		if !placed[tag] {
			rest = append(rest, tag)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return idx.Sizes[rest[i]] > idx.Sizes[rest[j]]
	})
	return append(ordered, rest...)
}
