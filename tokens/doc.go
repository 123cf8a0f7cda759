// Package tokens provides token counting and budget checks for LLM context snippets.
//
// # Counter
//
// The Counter interface provides token counting methods. TiktokenCounter
// counts exactly with a named tiktoken encoding; the BPE tables are loaded
// offline, so counting never touches the network:
//
//	counter, err := tokens.NewTiktokenCounter("cl100k_base")
//	count := counter.Count("Hello, world!")
//	fits := counter.FitsInLimit("text", 1000)
//
// An encoding can also be derived from a model name:
//
//	counter, err := tokens.NewModelCounter("gpt-4o-mini") // o200k_base
//
// EstimatingCounter trades accuracy for speed with a character ratio
// (~4 chars per token by default). With a ratio of 1 it counts runes,
// which makes it a deterministic stand-in for tests:
//
//	fake := tokens.NewEstimatingCounterWithRatio(1)
//
// # Budget
//
// Budget is a fixed inclusive limit checked against counts a Counter
// already produced:
//
//	budget := tokens.NewBudget(tokens.DefaultLimit)
//	budget.FitsTokens(counter.Count(text)) // within 200000 tokens
//	budget.Remaining(used)                 // headroom, never negative
package tokens
