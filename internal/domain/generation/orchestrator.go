package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"creator-api/internal/domain/content"
	"creator-api/internal/domain/prompt"
	"creator-api/internal/domain/provider"
	"creator-api/internal/infrastructure/logger"
	"creator-api/internal/infrastructure/metrics"
	"creator-api/internal/infrastructure/observability"
)

// DefaultProviderTimeout bounds a single adapter call when none is configured.
const DefaultProviderTimeout = 45 * time.Second

// OrchestratorConfig is fixed at startup.
type OrchestratorConfig struct {
	// HashtagProvider is asked for the hashtag list.
	HashtagProvider provider.Provider
	ProviderTimeout time.Duration
}

// Orchestrator executes one request against several providers in parallel.
type Orchestrator struct {
	registry *provider.Registry
	cfg      OrchestratorConfig
	log      zerolog.Logger
}

// NewOrchestrator constructs an Orchestrator backed by the registry.
func NewOrchestrator(registry *provider.Registry, cfg OrchestratorConfig) *Orchestrator {
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = DefaultProviderTimeout
	}
	if cfg.HashtagProvider == "" {
		cfg.HashtagProvider = provider.OpenAI
	}
	return &Orchestrator{
		registry: registry,
		cfg:      cfg,
		log:      logger.GetLogger().With().Str("component", "orchestrator").Logger(),
	}
}

// Generate fans the request out to every provider and waits for all of them.
// Provider failures are folded into the returned outcomes; the only errors are
// invalid input and cancellation of ctx.
func (o *Orchestrator) Generate(ctx context.Context, category content.Category, platform content.Platform, description string, providers []provider.Provider) (*Aggregate, error) {
	if len(providers) == 0 {
		return nil, ErrEmptyProviders
	}
	if !category.Valid() {
		return nil, content.ErrUnknownCategory
	}
	if !platform.Valid() {
		return nil, content.ErrUnknownPlatform
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, "generation.Orchestrator.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("generation.category", string(category)),
		attribute.String("generation.platform", string(platform)),
		attribute.Int("generation.providers", len(providers)),
	)

	captionReq := provider.Request{
		System:  prompt.SystemFor(category),
		User:    prompt.CaptionPrompt(category, platform, description),
		Purpose: provider.PurposeCaption,
	}

	outcomes := make([]Outcome, len(providers))
	var (
		hashtags []string
		fallback bool
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		adapter, err := o.registry.Resolve(p)
		if err != nil {
			outcomes[i] = Outcome{
				Provider:     p,
				Success:      false,
				ErrorMessage: fmt.Sprintf("%s: %v", UnresolvableMessage, err),
			}
			metrics.RecordProviderError(string(p), "unavailable")
			o.log.Warn().Str("provider", string(p)).Str("error", err.Error()).Msg("provider not resolvable")
			continue
		}
		g.Go(func() error {
			outcomes[i] = o.caption(gctx, adapter, captionReq)
			return nil
		})
	}
	g.Go(func() error {
		hashtags, fallback = o.hashtags(gctx, category, platform, description)
		return nil
	})
	_ = g.Wait()

	// a cancelled request produces nothing worth persisting
	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, "cancelled")
		return nil, err
	}

	agg := &Aggregate{
		Outcomes:         outcomes,
		Captions:         make(map[provider.Provider]string, len(outcomes)),
		Hashtags:         hashtags,
		HashtagsFallback: fallback,
	}
	captions := make([]string, 0, len(outcomes))
	for _, out := range outcomes {
		if !out.Success {
			continue
		}
		agg.Captions[out.Provider] = out.Text
		captions = append(captions, out.Text)
	}
	agg.CombinedResult = ComposeCombined(captions, hashtags)

	span.SetAttributes(
		attribute.Int("generation.successes", len(captions)),
		attribute.Bool("generation.hashtag_fallback", fallback),
	)
	return agg, nil
}

func (o *Orchestrator) caption(ctx context.Context, adapter provider.Adapter, req provider.Request) Outcome {
	p := adapter.Provider()
	completion, elapsed, err := o.call(ctx, adapter, req)

	out := Outcome{
		Provider:       p,
		Model:          adapter.Model(),
		ElapsedSeconds: elapsed.Seconds(),
	}
	if err != nil {
		out.ErrorMessage = err.Error()
		return out
	}

	out.Success = true
	out.Text = completion.Text
	out.Usage = completion.Usage
	if completion.Model != "" {
		out.Model = completion.Model
	}
	return out
}

func (o *Orchestrator) hashtags(ctx context.Context, category content.Category, platform content.Platform, description string) ([]string, bool) {
	fallback := func() ([]string, bool) {
		metrics.RecordHashtagFallback()
		return prompt.FallbackHashtags(category, platform), true
	}

	adapter, err := o.registry.Resolve(o.cfg.HashtagProvider)
	if err != nil {
		o.log.Debug().Str("provider", string(o.cfg.HashtagProvider)).Msg("hashtag provider unavailable, using fallback")
		return fallback()
	}

	completion, _, err := o.call(ctx, adapter, provider.Request{
		System:  prompt.SystemFor(category),
		User:    prompt.HashtagPrompt(category, platform, description),
		Purpose: provider.PurposeHashtags,
	})
	if err != nil {
		return fallback()
	}

	tags := prompt.ParseHashtags(completion.Text)
	if len(tags) == 0 {
		return fallback()
	}
	return tags, false
}

// call runs one bounded adapter call and reports failures as *provider.Failure.
func (o *Orchestrator) call(ctx context.Context, adapter provider.Adapter, req provider.Request) (*provider.Completion, time.Duration, error) {
	p := adapter.Provider()

	ctx, span := observability.StartSpan(ctx, "provider."+string(p)+".generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", string(p)),
		attribute.String("llm.model", adapter.Model()),
		attribute.String("llm.purpose", string(req.Purpose)),
	)

	callCtx, cancel := context.WithTimeout(ctx, o.cfg.ProviderTimeout)
	defer cancel()

	start := time.Now()
	completion, err := adapter.Generate(callCtx, req)
	elapsed := time.Since(start)

	if err == nil && (completion == nil || strings.TrimSpace(completion.Text) == "") {
		err = errors.New("empty response")
	}

	if err != nil {
		failure := provider.NewFailure(p, err)
		errType := "provider_error"
		switch {
		case ctx.Err() != nil:
			errType = "cancelled"
		case errors.Is(callCtx.Err(), context.DeadlineExceeded):
			errType = "timeout"
			failure.Timeout = true
			failure.Message = fmt.Sprintf("request timed out after %s", o.cfg.ProviderTimeout)
		}

		metrics.RecordProviderCall(string(p), string(req.Purpose), false, elapsed.Seconds())
		metrics.RecordProviderError(string(p), errType)
		span.RecordError(failure)
		span.SetStatus(codes.Error, errType)
		o.log.Error().Str("provider", string(p)).Str("error", failure.Message).Msg("provider call failed")
		return nil, elapsed, failure
	}

	completion.Text = strings.TrimSpace(completion.Text)
	metrics.RecordProviderCall(string(p), string(req.Purpose), true, elapsed.Seconds())
	metrics.RecordTokens(adapter.Model(), string(p), completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	return completion, elapsed, nil
}
