// Package provider models the closed set of LLM vendors and the adapter contract
// every vendor integration implements.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider identifies one LLM vendor known to the registry.
type Provider string

const (
	OpenAI     Provider = "openai"
	Anthropic  Provider = "anthropic"
	Gemini     Provider = "gemini"
	Perplexity Provider = "perplexity"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// All returns every known provider in registry order.
func All() []Provider {
	return []Provider{OpenAI, Anthropic, Gemini, Perplexity}
}

// DefaultSelection is used when a request does not name providers.
func DefaultSelection() []Provider {
	return []Provider{OpenAI, Anthropic, Gemini}
}

// Known reports whether p is part of the closed provider set.
func (p Provider) Known() bool {
	for _, known := range All() {
		if p == known {
			return true
		}
	}
	return false
}

// Parse is case-insensitive and ignores surrounding whitespace.
func Parse(raw string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, raw)
	}
	return p, nil
}

// Purpose selects which construction-time token budget a call uses.
type Purpose string

const (
	PurposeCaption  Purpose = "caption"
	PurposeHashtags Purpose = "hashtags"
	PurposeGeneric  Purpose = "generic"
)

// Budget holds the max-token limits an adapter was constructed with.
type Budget struct {
	Caption  int
	Hashtags int
	Default  int
}

// For returns the limit for the purpose, falling back to Default.
func (b Budget) For(purpose Purpose) int {
	switch purpose {
	case PurposeCaption:
		if b.Caption > 0 {
			return b.Caption
		}
	case PurposeHashtags:
		if b.Hashtags > 0 {
			return b.Hashtags
		}
	}
	return b.Default
}

// Request is one system/user message pair sent to an adapter.
type Request struct {
	System  string
	User    string
	Purpose Purpose
}

// Usage is the token accounting a vendor reports, zero when it reports none.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Completion is the trimmed text answer of one adapter call.
type Completion struct {
	Text  string
	Model string
	Usage Usage
}

// Adapter hides a single LLM behind one operation. Implementations make one
// outbound call per Generate and keep no per-call state.
type Adapter interface {
	Provider() Provider
	Model() string
	// Available is true iff the adapter's credential is present and non-empty.
	// It never touches the network.
	Available() bool
	Generate(ctx context.Context, req Request) (*Completion, error)
}

// Failure is the error every adapter returns when its vendor call fails.
type Failure struct {
	Provider Provider
	Message  string
	Timeout  bool
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Provider, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure wraps err as a Failure for p.
func NewFailure(p Provider, err error) *Failure {
	if err == nil {
		return nil
	}
	var existing *Failure
	if errors.As(err, &existing) && existing.Provider == p {
		return existing
	}
	timeout := errors.Is(err, context.DeadlineExceeded)
	msg := err.Error()
	if timeout {
		msg = "request timed out"
	}
	return &Failure{Provider: p, Message: msg, Timeout: timeout, Err: err}
}
