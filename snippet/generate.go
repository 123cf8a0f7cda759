package snippet

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/randalmurphal/apisnippet/openapi"
	"github.com/randalmurphal/apisnippet/tokens"
)

// ErrNoCounter indicates Options.Counter was not set.
var ErrNoCounter = errors.New("token counter is required")

// Options configure one run of Generate.
type Options struct {
	Input  string
	Output string

	// Limit is the token budget, inclusive.
	Limit int

	// Counter measures candidates. Required.
	Counter tokens.Counter

	// Priority lists preferred tags, highest first.
	Priority []string

	// Methods are the path item keys treated as operations.
	Methods []string

	// Untagged names the synthetic tag for untagged operations.
	Untagged string

	// Fallback is the size estimate for an operation that fails to
	// serialize. Zero means openapi.DefaultFallbackEstimate.
	Fallback int
}

// Generate loads the input, selects tags within the budget, writes the
// result and returns the report. Load and write errors are returned
// unchanged in kind; nothing is retried.
func Generate(ctx context.Context, opts Options, logger *slog.Logger) (*Report, error) {
	if opts.Counter == nil {
		return nil, ErrNoCounter
	}
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	doc, err := openapi.Load(opts.Input, openapi.Options{Methods: opts.Methods})
	if err != nil {
		return nil, err
	}

	indexer := openapi.NewIndexer(logger)
	if opts.Untagged != "" {
		indexer.Untagged = opts.Untagged
	}
	if opts.Fallback > 0 {
		indexer.Fallback = opts.Fallback
	}
	idx := indexer.Index(doc)
	order := openapi.OrderTags(idx, opts.Priority)
	logger.Info("indexed source",
		slog.String("input", opts.Input),
		slog.Int("operations", len(doc.Operations())),
		slog.Int("tags", len(order)))

	builder := NewBuilder(doc, opts.Counter, indexer.Untagged)
	budget := tokens.NewBudget(opts.Limit)
	sel, err := NewSelector(builder, budget, logger).Select(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := Write(opts.Output, sel.Best.Text); err != nil {
		return nil, err
	}
	lines, err := CountLines(opts.Output)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Output:     opts.Output,
		Tags:       sel.Included.Sorted(),
		Operations: sel.Best.Operations,
		Tokens:     sel.Best.Tokens,
		Encoding:   tokens.EncodingName(opts.Counter),
		Lines:      lines,
		Components: sel.WithComponents,
	}
	for _, t := range sel.Trials {
		if !t.Accepted {
			report.Skipped = append(report.Skipped, t.Tag)
		}
	}
	logger.Info("snippet written",
		slog.String("output", opts.Output),
		slog.Int("tokens", report.Tokens),
		slog.Int("remaining", budget.Remaining(report.Tokens)),
		slog.Duration("elapsed", time.Since(start)))
	if len(report.Skipped) > 0 {
		logger.Debug("tags over budget", slog.Any("skipped", report.Skipped))
	}
	return report, nil
}
