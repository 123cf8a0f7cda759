package snippet

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/apisnippet/openapi"
	"github.com/randalmurphal/apisnippet/tokens"
)

// Trial records one attempt to add a tag.
type Trial struct {
	Tag        string
	Accepted   bool
	Tokens     int
	Operations int

	// Included is the committed set after this trial.
	Included openapi.TagSet
}

// Selection is the outcome of a greedy pass.
type Selection struct {
	// Included is the final committed tag set.
	Included openapi.TagSet

	// Best is the last candidate that fit the budget. Zero when no tag fit.
	Best Candidate

	// Trials holds one entry per ordered tag, in order.
	Trials []Trial

	// WithComponents reports whether the final rebuild fit, replaced Best
	// and actually carries securitySchemes.
	WithComponents bool
}

// Selector greedily commits tags while the built document stays within a
// token budget.
type Selector struct {
	builder CandidateBuilder
	budget  *tokens.Budget
	logger  *slog.Logger
}

// NewSelector returns a selector. A nil logger uses slog.Default().
func NewSelector(builder CandidateBuilder, budget *tokens.Budget, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{builder: builder, budget: budget, logger: logger}
}

// Select walks order once. Each tag is tried with the committed set; it is
// kept if the document without components fits, and never reconsidered
// otherwise. Finally the committed set is rebuilt with components and
// replaces the best candidate only if it still fits.
func (s *Selector) Select(ctx context.Context, order []string) (*Selection, error) {
	sel := &Selection{
		Included: openapi.NewTagSet(),
		Trials:   make([]Trial, 0, len(order)),
	}

	for _, tag := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		trial := sel.Included.With(tag)
		c, err := s.builder.Build(trial, false)
		if err != nil {
			return nil, err
		}

		accepted := s.budget.FitsTokens(c.Tokens)
		if accepted {
			sel.Included = trial
			sel.Best = c
		}
		sel.Trials = append(sel.Trials, Trial{
			Tag:        tag,
			Accepted:   accepted,
			Tokens:     c.Tokens,
			Operations: c.Operations,
			Included:   sel.Included,
		})
		s.logger.Debug("tag trial",
			slog.String("tag", tag),
			slog.Bool("accepted", accepted),
			slog.Int("tokens", c.Tokens),
			slog.Int("operations", c.Operations),
			slog.Int("remaining", s.budget.Remaining(sel.Best.Tokens)))
	}

	c, err := s.builder.Build(sel.Included, true)
	if err != nil {
		return nil, err
	}
	if s.budget.FitsTokens(c.Tokens) {
		sel.Best = c
		sel.WithComponents = c.Components
	} else {
		s.logger.Info("security schemes do not fit, leaving them out",
			slog.Int("tokens", c.Tokens),
			slog.Int("limit", s.budget.Limit))
	}
	return sel, nil
}
