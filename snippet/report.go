package snippet

import (
	"fmt"
	"io"
	"strings"
)

// Report summarizes a written snippet.
type Report struct {
	Output     string
	Tags       []string
	Operations int
	Tokens     int
	Encoding   string
	Lines      int

	// Components reports whether the written text was built with
	// securitySchemes.
	Components bool

	// Skipped lists tags that did not fit, in trial order.
	Skipped []string
}

// Print writes the summary in a fixed line-oriented format.
func (r *Report) Print(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Wrote %s\n", r.Output)
	fmt.Fprintf(&b, "Included tags: %d -> [%s]\n", len(r.Tags), strings.Join(r.Tags, " "))
	fmt.Fprintf(&b, "Operations: %d\n", r.Operations)
	fmt.Fprintf(&b, "Token count (tiktoken %s): %d\n", r.Encoding, r.Tokens)
	fmt.Fprintf(&b, "Line count: %d\n", r.Lines)
	fmt.Fprintf(&b, "Skipped tags: %d\n", len(r.Skipped))
	fmt.Fprintf(&b, "Security schemes: %t\n", r.Components)
	_, err := io.WriteString(w, b.String())
	return err
}
