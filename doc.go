// Package apisnippet builds token-bounded OpenAPI snippets for LLM context.
//
// A dereferenced OpenAPI document is usually far larger than a model's
// context window. apisnippet keeps whole tags, preferred ones first and
// then largest first, while the serialized result stays within a token
// budget. Each subpackage can be used independently:
//
//   - openapi: Load a document, index tags by size, filter by tag set
//   - snippet: Greedy tag selection, output writing and the run report
//   - tokens: Token counting and budget checks (tiktoken or estimate)
//   - config: TOML config file, environment overrides and JSON schema
//   - watch: Rerun a job whenever the input file changes
//
// # Quick Start
//
// One run with defaults:
//
//	import "github.com/randalmurphal/apisnippet/snippet"
//	counter, _ := tokens.NewCounter("cl100k_base", "")
//	report, _ := snippet.Generate(ctx, snippet.Options{
//		Input:   "api.yaml",
//		Output:  "context.txt",
//		Limit:   tokens.DefaultLimit,
//		Counter: counter,
//	}, nil)
//	report.Print(os.Stdout)
//
// Token counting:
//
//	import "github.com/randalmurphal/apisnippet/tokens"
//	counter := tokens.NewEstimatingCounter()
//	count := counter.Count("Hello, World!")
//
// The apisnippet command in cmd/apisnippet wires these together.
package apisnippet
