package tokens

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktokenloader "github.com/pkoukk/tiktoken-go-loader"
)

// DefaultEncoding is the tiktoken encoding used when none is configured.
const DefaultEncoding = "cl100k_base"

// EstimateEncoding selects the character-ratio estimator instead of a
// real tokenizer. Useful offline smoke runs; never exact.
const EstimateEncoding = "estimate"

// DefaultCharsPerToken is the default character-to-token ratio.
// Approximately 4 characters equals 1 token for English text.
const DefaultCharsPerToken = 4.0

// ErrUnknownEncoding indicates the tokenizer has no such encoding or model.
var ErrUnknownEncoding = errors.New("unknown encoding")

var allSpecial = []string{"all"}

func init() {
	// BPE ranks ship with the loader module; nothing is fetched at runtime.
	tiktoken.SetBpeLoader(tiktokenloader.NewOfflineLoader())
}

// Counter counts tokens in text.
type Counter interface {
	// Count returns the number of tokens in the given text.
	Count(text string) int

	// FitsInLimit returns true if the text fits within the token limit.
	FitsInLimit(text string, limit int) bool
}

// TiktokenCounter counts tokens exactly with a named tiktoken encoding.
type TiktokenCounter struct {
	name string
	enc  *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the named encoding (e.g. "cl100k_base").
func NewTiktokenCounter(encoding string) (*TiktokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("tokens: get encoding %q: %w: %v", encoding, ErrUnknownEncoding, err)
	}
	return &TiktokenCounter{name: encoding, enc: enc}, nil
}

// NewModelCounter loads the encoding tiktoken associates with a model name
// (e.g. "gpt-4o-mini" resolves to o200k_base).
func NewModelCounter(model string) (*TiktokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("tokens: encoding for model %q: %w: %v", model, ErrUnknownEncoding, err)
	}
	return &TiktokenCounter{name: modelEncoding(model), enc: enc}, nil
}

func modelEncoding(model string) string {
	if name, ok := tiktoken.MODEL_TO_ENCODING[model]; ok {
		return name
	}
	for prefix, name := range tiktoken.MODEL_PREFIX_TO_ENCODING {
		if strings.HasPrefix(model, prefix) {
			return name
		}
	}
	return ""
}

// Encoding returns the encoding name, or "" when tiktoken resolved a model
// without listing its encoding.
func (c *TiktokenCounter) Encoding() string {
	return c.name
}

// Count returns the exact number of tokens in text. Special-token markup
// such as "<|endoftext|>" counts as its single special token.
func (c *TiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, allSpecial, nil))
}

// FitsInLimit returns true if the text fits within the token limit.
func (c *TiktokenCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// EstimatingCounter uses a character-to-token ratio for estimation.
type EstimatingCounter struct {
	// CharsPerToken is the average characters per token.
	// A ratio of 1 makes Count a plain rune count.
	CharsPerToken float64
}

// NewEstimatingCounter creates a token counter with default settings.
func NewEstimatingCounter() *EstimatingCounter {
	return &EstimatingCounter{
		CharsPerToken: DefaultCharsPerToken,
	}
}

// NewEstimatingCounterWithRatio creates a token counter with a custom ratio.
// If charsPerToken is <= 0, the default ratio (4.0) is used.
func NewEstimatingCounterWithRatio(charsPerToken float64) *EstimatingCounter {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return &EstimatingCounter{
		CharsPerToken: charsPerToken,
	}
}

// Count estimates the number of tokens in the given text.
func (c *EstimatingCounter) Count(text string) int {
	runeCount := utf8.RuneCountInString(text)
	return int(float64(runeCount)/c.CharsPerToken + 0.5)
}

// FitsInLimit returns true if the text fits within the token limit.
func (c *EstimatingCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// NewCounter returns the counter for a configured encoding or model.
// A non-empty model takes precedence over encoding. EstimateEncoding
// selects the estimator.
func NewCounter(encoding, model string) (Counter, error) {
	if model != "" {
		c, err := NewModelCounter(model)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	switch encoding {
	case EstimateEncoding:
		return NewEstimatingCounter(), nil
	case "":
		encoding = DefaultEncoding
	}
	c, err := NewTiktokenCounter(encoding)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// EncodingName describes the encoding behind a counter for reports.
func EncodingName(c Counter) string {
	switch v := c.(type) {
	case *TiktokenCounter:
		return v.Encoding()
	case *EstimatingCounter:
		return EstimateEncoding
	default:
		return "custom"
	}
}
