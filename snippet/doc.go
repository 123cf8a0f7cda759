// Package snippet trims an OpenAPI document to a token budget for use as
// LLM context.
//
// Tags are the unit of inclusion. Generate indexes the source, ranks tags
// (preferred tags first, then by estimated size), and greedily commits
// each tag whose addition keeps the rebuilt document within the budget.
// A tag that does not fit is skipped for good; there is no backtracking,
// so the selection is a heuristic, not an optimal packing. If headroom
// remains, components.securitySchemes is attached last.
//
//	report, err := snippet.Generate(ctx, snippet.Options{
//		Input:    "api.deref.yaml",
//		Output:   "context.txt",
//		Limit:    tokens.DefaultLimit,
//		Counter:  counter,
//		Priority: []string{"orgs", "teams"},
//	}, logger)
//
// The pieces are usable on their own: Builder rebuilds and measures one
// candidate, Selector runs the greedy pass over any CandidateBuilder, and
// Write/CountLines handle the output file.
package snippet
