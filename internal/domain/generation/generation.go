// Package generation fans a content request out to several providers and
// persists the combined result.
package generation

import (
	"context"
	"errors"
	"strings"
	"time"

	"creator-api/internal/domain/content"
	"creator-api/internal/domain/provider"
)

var (
	ErrEmptyProviders = errors.New("at least one provider is required")
	ErrEmptyContent   = errors.New("content description is required")
	ErrNotFound       = errors.New("generation not found")
)

// UnresolvableMessage prefixes the error of outcomes whose provider could not be resolved.
const UnresolvableMessage = "unsupported/unavailable"

// Request is one transient content-generation request.
type Request struct {
	UserID      string
	Category    content.Category
	Platform    content.Platform
	Description string
	Providers   []provider.Provider
}

// Validate checks the enum and emptiness constraints a request must satisfy
// before quota or orchestration run.
func (r Request) Validate() error {
	if !r.Category.Valid() {
		return content.ErrUnknownCategory
	}
	if !r.Platform.Valid() {
		return content.ErrUnknownPlatform
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyContent
	}
	if len(r.Providers) == 0 {
		return ErrEmptyProviders
	}
	for _, p := range r.Providers {
		if !p.Known() {
			return provider.ErrUnsupportedProvider
		}
	}
	return nil
}

// Outcome is the result of one provider attempt. ErrorMessage is set iff
// Success is false.
type Outcome struct {
	Provider       provider.Provider
	Model          string
	Text           string
	ElapsedSeconds float64
	Success        bool
	ErrorMessage   string
	Usage          provider.Usage
}

// Aggregate is what the orchestrator returns for one request.
type Aggregate struct {
	// Outcomes mirrors the requested provider order.
	Outcomes []Outcome
	// Captions holds successful providers only.
	Captions         map[provider.Provider]string
	Hashtags         []string
	HashtagsFallback bool
	CombinedResult   string
}

// SuccessCount returns how many providers produced a caption.
func (a *Aggregate) SuccessCount() int {
	n := 0
	for _, o := range a.Outcomes {
		if o.Success {
			n++
		}
	}
	return n
}

// Record is the immutable persisted artifact of one completed generation.
type Record struct {
	ID             string
	UserID         string
	Category       content.Category
	Platform       content.Platform
	Description    string
	Outcomes       []Outcome
	Hashtags       []string
	CombinedResult string
	CreatedAt      time.Time
}

// Captions rebuilds the caption map from the stored outcomes.
func (r *Record) Captions() map[provider.Provider]string {
	captions := make(map[provider.Provider]string, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Success {
			captions[o.Provider] = o.Text
		}
	}
	return captions
}

// ListFilter pages through a user's records, newest first.
type ListFilter struct {
	UserID string
	Limit  int
	Offset int
}

// Normalized clamps Limit to (0, MaxListLimit], defaulting to DefaultListLimit,
// and Offset to >= 0.
func (f ListFilter) Normalized() ListFilter {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultListLimit
	case f.Limit > MaxListLimit:
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Repository stores generation records. Records are insert-only.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, filter ListFilter) ([]*Record, int64, error)
}

// ComposeCombined joins successful captions with a blank line, then appends a
// blank line and the space-separated hashtags. With no captions it is the
// hashtag line alone.
func ComposeCombined(captions []string, hashtags []string) string {
	tagLine := strings.Join(hashtags, " ")
	if len(captions) == 0 {
		return tagLine
	}
	return strings.Join(captions, "\n\n") + "\n\n" + tagLine
}
