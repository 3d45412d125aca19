// Package llm defines the seam between services and the text-generation
// provider so handlers and tests can swap in stubs.
package llm

import "context"

// Client produces a completion for a prompt. Implementations are expected to
// request JSON-formatted output.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
