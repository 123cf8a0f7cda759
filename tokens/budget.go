package tokens

// DefaultLimit is the token budget for a context snippet.
const DefaultLimit = 200_000

// Budget is a fixed token ceiling checked against counts from a Counter.
type Budget struct {
	// Limit is the maximum number of tokens allowed. Inclusive.
	Limit int
}

// NewBudget creates a budget of limit tokens.
func NewBudget(limit int) *Budget {
	return &Budget{Limit: limit}
}

// FitsTokens returns true if the token count fits within the budget.
func (b *Budget) FitsTokens(tokens int) bool {
	return tokens <= b.Limit
}

// Remaining returns the headroom left after used tokens.
func (b *Budget) Remaining(used int) int {
	remaining := b.Limit - used
	if remaining < 0 {
		return 0
	}
	return remaining
}
