package snippet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/apisnippet/openapi"
	"github.com/randalmurphal/apisnippet/tokens"
)

// sizeBuilder prices a tag set as the sum of its tag sizes, plus extra
// when components are requested. noSchemes mimics a source without
// securitySchemes.
type sizeBuilder struct {
	sizes      map[string]int
	components int
	noSchemes  bool
	calls      []openapi.TagSet
	failOn     string
}

func (b *sizeBuilder) Build(tags openapi.TagSet, includeComponents bool) (Candidate, error) {
	b.calls = append(b.calls, tags)
	if b.failOn != "" && tags.Has(b.failOn) {
		return Candidate{}, errors.New("encode failed")
	}
	total := 0
	for _, t := range tags.Sorted() {
		total += b.sizes[t]
	}
	if includeComponents {
		total += b.components
	}
	return Candidate{
		Text:       "text",
		Tokens:     total,
		Operations: tags.Len(),
		Components: includeComponents && !b.noSchemes,
	}, nil
}

func TestSelector_Select(t *testing.T) {
	tests := []struct {
		name           string
		sizes          map[string]int
		components     int
		noSchemes      bool
		limit          int
		order          []string
		wantIncluded   []string
		wantAccepted   []bool
		wantTokens     int
		wantComponents bool
	}{
		{
			name:           "all fit",
			sizes:          map[string]int{"orgs": 50, "zzz-tag": 50},
			limit:          1000,
			order:          []string{"orgs", "zzz-tag"},
			wantIncluded:   []string{"orgs", "zzz-tag"},
			wantAccepted:   []bool{true, true},
			wantTokens:     100,
			wantComponents: true,
		},
		{
			name:           "single tag over budget is skipped",
			sizes:          map[string]int{"huge": 500, "small": 10},
			limit:          100,
			order:          []string{"huge", "small"},
			wantIncluded:   []string{"small"},
			wantAccepted:   []bool{false, true},
			wantTokens:     10,
			wantComponents: true,
		},
		{
			name:           "no backtracking after early commit",
			sizes:          map[string]int{"big": 80, "a": 30, "b": 30, "c": 15},
			limit:          100,
			order:          []string{"big", "a", "b", "c"},
			wantIncluded:   []string{"big", "c"},
			wantAccepted:   []bool{true, false, false, true},
			wantTokens:     95,
			wantComponents: true,
		},
		{
			name:           "exact limit is accepted",
			sizes:          map[string]int{"orgs": 100},
			limit:          100,
			order:          []string{"orgs"},
			wantIncluded:   []string{"orgs"},
			wantAccepted:   []bool{true},
			wantTokens:     100,
			wantComponents: true,
		},
		{
			name:           "components use remaining headroom",
			sizes:          map[string]int{"orgs": 60},
			components:     40,
			limit:          100,
			order:          []string{"orgs"},
			wantIncluded:   []string{"orgs"},
			wantAccepted:   []bool{true},
			wantTokens:     100,
			wantComponents: true,
		},
		{
			name:         "components without headroom are dropped",
			sizes:        map[string]int{"orgs": 60},
			components:   41,
			limit:        100,
			order:        []string{"orgs"},
			wantIncluded: []string{"orgs"},
			wantAccepted: []bool{true},
			wantTokens:   60,
		},
		{
			name:           "no tag fits but empty document with components does",
			sizes:          map[string]int{"a": 200},
			components:     1,
			limit:          100,
			order:          []string{"a"},
			wantIncluded:   []string{},
			wantAccepted:   []bool{false},
			wantTokens:     1,
			wantComponents: true,
		},
		{
			name:         "source without schemes reports none attached",
			sizes:        map[string]int{"orgs": 60},
			noSchemes:    true,
			limit:        100,
			order:        []string{"orgs"},
			wantIncluded: []string{"orgs"},
			wantAccepted: []bool{true},
			wantTokens:   60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &sizeBuilder{sizes: tt.sizes, components: tt.components, noSchemes: tt.noSchemes}
			budget := tokens.NewBudget(tt.limit)

			sel, err := NewSelector(b, budget, nil).Select(context.Background(), tt.order)
			require.NoError(t, err)

			assert.Equal(t, tt.wantIncluded, sel.Included.Sorted())
			require.Len(t, sel.Trials, len(tt.order))
			for i, trial := range sel.Trials {
				assert.Equal(t, tt.order[i], trial.Tag)
				assert.Equal(t, tt.wantAccepted[i], trial.Accepted, "trial %s", trial.Tag)
			}
			assert.Equal(t, tt.wantTokens, sel.Best.Tokens)
			assert.Equal(t, tt.wantComponents, sel.WithComponents)
			assert.Equal(t, tt.wantComponents, sel.Best.Components)
			assert.LessOrEqual(t, sel.Best.Tokens, tt.limit)
		})
	}
}

func TestSelector_Monotonic(t *testing.T) {
	b := &sizeBuilder{sizes: map[string]int{"a": 10, "b": 95, "c": 20, "d": 75, "e": 5}}
	budget := tokens.NewBudget(100)

	sel, err := NewSelector(b, budget, nil).Select(context.Background(), []string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)

	prev := openapi.NewTagSet()
	for _, trial := range sel.Trials {
		assert.True(t, trial.Included.Contains(prev), "set shrank at %s", trial.Tag)
		assert.Equal(t, trial.Accepted, trial.Included.Has(trial.Tag))
		prev = trial.Included
	}
	assert.Equal(t, []string{"a", "c", "e"}, sel.Included.Sorted())
}

func TestSelector_TrialsBuildWithoutComponents(t *testing.T) {
	b := &sizeBuilder{sizes: map[string]int{"a": 1, "b": 1}}
	budget := tokens.NewBudget(100)

	_, err := NewSelector(b, budget, nil).Select(context.Background(), []string{"a", "b"})
	require.NoError(t, err)

	require.Len(t, b.calls, 3)
	assert.Equal(t, []string{"a"}, b.calls[0].Sorted())
	assert.Equal(t, []string{"a", "b"}, b.calls[1].Sorted())
	assert.Equal(t, []string{"a", "b"}, b.calls[2].Sorted())
}

func TestSelector_BuildError(t *testing.T) {
	b := &sizeBuilder{sizes: map[string]int{"a": 1, "b": 1}, failOn: "b"}
	budget := tokens.NewBudget(100)

	_, err := NewSelector(b, budget, nil).Select(context.Background(), []string{"a", "b"})
	assert.EqualError(t, err, "encode failed")
}

func TestSelector_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &sizeBuilder{sizes: map[string]int{"a": 1}}
	_, err := NewSelector(b, tokens.NewBudget(100), nil).Select(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, b.calls)
}
