package provider

import "fmt"

// Descriptor is the public view of one provider.
type Descriptor struct {
	Provider    Provider `json:"provider"`
	Model       string   `json:"model"`
	Available   bool     `json:"available"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Strengths   []string `json:"strengths"`
	BestFor     []string `json:"best_for"`
}

type metadata struct {
	name        string
	description string
	strengths   []string
	bestFor     []string
}

var catalog = map[Provider]metadata{
	OpenAI: {
		name:        "OpenAI GPT-4o",
		description: "Versatile general-purpose model with strong creative writing.",
		strengths:   []string{"creative copy", "tone control", "instruction following"},
		bestFor:     []string{"captions", "hashtags", "video scripts"},
	},
	Anthropic: {
		name:        "Anthropic Claude 3.5 Sonnet",
		description: "Careful long-form writer that keeps brand voice consistent.",
		strengths:   []string{"nuanced tone", "long-form structure", "brand safety"},
		bestFor:     []string{"blog posts", "email campaigns", "storytelling captions"},
	},
	Gemini: {
		name:        "Google Gemini 2.0 Flash",
		description: "Fast multimodal model suited to short, punchy variations.",
		strengths:   []string{"speed", "variation", "multimodal context"},
		bestFor:     []string{"short captions", "A/B variants", "product descriptions"},
	},
	Perplexity: {
		name:        "Perplexity Sonar Pro",
		description: "Search-grounded model that draws on current web data.",
		strengths:   []string{"fresh information", "trend awareness", "citations"},
		bestFor:     []string{"trend-driven posts", "news hooks", "competitor research"},
	},
}

// Registry is a table of adapters keyed by provider.
type Registry struct {
	adapters map[Provider]Adapter
}

// NewRegistry indexes adapters by provider. Adapters for unknown providers are
// rejected so the enum and the table stay in lockstep.
func NewRegistry(adapters []Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[Provider]Adapter, len(adapters))}
	for _, a := range adapters {
		if a == nil {
			continue
		}
		p := a.Provider()
		if !p.Known() {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, p)
		}
		if _, dup := r.adapters[p]; dup {
			return nil, fmt.Errorf("duplicate adapter for provider %q", p)
		}
		r.adapters[p] = a
	}
	return r, nil
}

// List returns descriptors for every known provider, in registry order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(All()))
	for _, p := range All() {
		out = append(out, r.describe(p))
	}
	return out
}

// Get returns the descriptor for p; ok is false for unknown providers.
func (r *Registry) Get(p Provider) (Descriptor, bool) {
	if !p.Known() {
		return Descriptor{}, false
	}
	return r.describe(p), true
}

// Resolve returns the adapter for p, or ErrUnsupportedProvider / ErrProviderUnavailable.
func (r *Registry) Resolve(p Provider) (Adapter, error) {
	if !p.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, p)
	}
	a, ok := r.adapters[p]
	if !ok || !a.Available() {
		return nil, fmt.Errorf("%w: %s credential is not configured", ErrProviderUnavailable, p)
	}
	return a, nil
}

func (r *Registry) describe(p Provider) Descriptor {
	meta := catalog[p]
	d := Descriptor{
		Provider:    p,
		Name:        meta.name,
		Description: meta.description,
		Strengths:   append([]string(nil), meta.strengths...),
		BestFor:     append([]string(nil), meta.bestFor...),
	}
	if a, ok := r.adapters[p]; ok {
		d.Model = a.Model()
		d.Available = a.Available()
	}
	return d
}
