package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"creator-api/internal/domain/quota"
	"creator-api/internal/domain/usage"
	"creator-api/internal/infrastructure/logger"
	"creator-api/internal/infrastructure/metrics"
)

// ErrPersistence marks failures of the generation or analytics store.
var ErrPersistence = errors.New("persistence failure")

// PersistenceError reports which write step failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Result is returned to the endpoint after a generation was stored.
type Result struct {
	Record    *Record
	Aggregate *Aggregate
}

// Service runs the quota check, orchestration and persistence of one request.
type Service struct {
	orchestrator *Orchestrator
	gate         *quota.Gate
	records      Repository
	usage        *usage.Service
	log          zerolog.Logger
	now          func() time.Time
}

// NewService wires the generation flow.
func NewService(orchestrator *Orchestrator, gate *quota.Gate, records Repository, usageService *usage.Service) *Service {
	return &Service{
		orchestrator: orchestrator,
		gate:         gate,
		records:      records,
		usage:        usageService,
		log:          logger.GetLogger().With().Str("component", "generation").Logger(),
		now:          time.Now,
	}
}

// Generate validates the request, checks the quota, orchestrates the providers
// and persists the record, the analytics rows and the counter update, in that
// order. Nothing is written when ctx is cancelled before the record is stored.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.gate.Authorize(ctx, req.UserID)
	if err != nil {
		var denied *quota.DeniedError
		if errors.As(err, &denied) {
			metrics.RecordQuotaDenial(string(denied.Tier))
		}
		return nil, err
	}

	agg, err := s.orchestrator.Generate(ctx, req.Category, req.Platform, req.Description, req.Providers)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record := &Record{
		ID:             uuid.NewString(),
		UserID:         u.ID,
		Category:       req.Category,
		Platform:       req.Platform,
		Description:    req.Description,
		Outcomes:       agg.Outcomes,
		Hashtags:       agg.Hashtags,
		CombinedResult: agg.CombinedResult,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, &PersistenceError{Op: "write generation", Err: err}
	}

	// the record exists now; finish the remaining writes even if the client left
	persistedCtx := context.WithoutCancel(ctx)

	if err := s.usage.RecordAttempts(persistedCtx, analyticsRows(record)); err != nil {
		return nil, &PersistenceError{Op: "write analytics", Err: err}
	}
	if err := s.gate.Record(persistedCtx, u.ID, 1); err != nil {
		return nil, &PersistenceError{Op: "record usage", Err: err}
	}

	metrics.RecordGeneration(string(req.Category), string(req.Platform), resultLabel(agg, len(req.Providers)))
	s.log.Info().
		Str("generation_id", record.ID).
		Int("providers", len(req.Providers)).
		Int("successes", agg.SuccessCount()).
		Bool("hashtag_fallback", agg.HashtagsFallback).
		Msg("generation completed")

	return &Result{Record: record, Aggregate: agg}, nil
}

// Get returns a record owned by userID. Records of other users are reported as
// ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, id string) (*Record, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, ErrNotFound
	}
	return record, nil
}

// List pages through the user's records, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Record, int64, error) {
	return s.records.List(ctx, filter.Normalized())
}

func analyticsRows(record *Record) []*usage.AnalyticsRow {
	rows := make([]*usage.AnalyticsRow, 0, len(record.Outcomes))
	for _, o := range record.Outcomes {
		rows = append(rows, &usage.AnalyticsRow{
			ID:               uuid.NewString(),
			UserID:           record.UserID,
			GenerationID:     record.ID,
			Category:         string(record.Category),
			Platform:         string(record.Platform),
			Provider:         string(o.Provider),
			Model:            o.Model,
			ElapsedSeconds:   o.ElapsedSeconds,
			Success:          o.Success,
			PromptTokens:     o.Usage.PromptTokens,
			CompletionTokens: o.Usage.CompletionTokens,
			CreatedAt:        record.CreatedAt,
		})
	}
	return rows
}

func resultLabel(agg *Aggregate, requested int) string {
	switch n := agg.SuccessCount(); {
	case n == 0:
		return "failed"
	case n < requested:
		return "partial"
	default:
		return "success"
	}
}
