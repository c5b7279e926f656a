// Package testhelpers holds in-memory repositories and stub adapters shared by tests.
package testhelpers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"creator-api/internal/domain/provider"
)

// StubAdapter is a provider.Adapter that answers from fixed strings.
type StubAdapter struct {
	P           provider.Provider
	ModelID     string
	Unavailable bool
	// Caption is returned for caption calls, HashtagText for hashtag calls.
	Caption     string
	HashtagText string
	Err         error
	HashtagErr  error
	Delay       time.Duration
	Usage       provider.Usage

	calls atomic.Int32
	mu    sync.Mutex
	reqs  []provider.Request
}

// NewStubAdapter returns an available adapter answering "<provider> caption".
func NewStubAdapter(p provider.Provider) *StubAdapter {
	return &StubAdapter{
		P:           p,
		ModelID:     string(p) + "-test",
		Caption:     fmt.Sprintf("%s caption", p),
		HashtagText: FifteenHashtags(),
	}
}

func (s *StubAdapter) Provider() provider.Provider { return s.P }
func (s *StubAdapter) Model() string               { return s.ModelID }
func (s *StubAdapter) Available() bool             { return !s.Unavailable }

// Calls returns how many times Generate ran.
func (s *StubAdapter) Calls() int { return int(s.calls.Load()) }

// Requests returns a copy of every request received.
func (s *StubAdapter) Requests() []provider.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]provider.Request(nil), s.reqs...)
}

func (s *StubAdapter) Generate(ctx context.Context, req provider.Request) (*provider.Completion, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.reqs = append(s.reqs, req)
	s.mu.Unlock()

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, provider.NewFailure(s.P, ctx.Err())
		}
	}

	if req.Purpose == provider.PurposeHashtags {
		if s.HashtagErr != nil {
			return nil, provider.NewFailure(s.P, s.HashtagErr)
		}
		return &provider.Completion{Text: s.HashtagText, Model: s.ModelID}, nil
	}

	if s.Err != nil {
		return nil, provider.NewFailure(s.P, s.Err)
	}
	return &provider.Completion{Text: "  " + s.Caption + "\n", Model: s.ModelID, Usage: s.Usage}, nil
}

// FifteenHashtags is a provider-style hashtag answer with fifteen entries.
func FifteenHashtags() string {
	tags := make([]string, 15)
	for i := range tags {
		tags[i] = fmt.Sprintf("#tag%02d", i+1)
	}
	return strings.Join(tags, "\n")
}

// NewRegistry builds a registry from stub adapters and fails the test on error.
func NewRegistry(t interface{ Fatalf(string, ...any) }, adapters ...*StubAdapter) *provider.Registry {
	list := make([]provider.Adapter, 0, len(adapters))
	for _, a := range adapters {
		list = append(list, a)
	}
	r, err := provider.NewRegistry(list)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return r
}
