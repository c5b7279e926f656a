package testhelpers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"creator-api/internal/domain/generation"
	"creator-api/internal/domain/usage"
	"creator-api/internal/domain/user"
)

// UserRepo is an in-memory user.Repository.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
	// IncrementErr makes IncrementGenerations fail.
	IncrementErr error
}

func NewUserRepo(users ...*user.User) *UserRepo {
	r := &UserRepo{users: make(map[string]*user.User)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) Upsert(ctx context.Context, u *user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.users[u.ID]; ok {
		if u.Email != nil {
			existing.Email = u.Email
		}
		if u.Name != nil {
			existing.Name = u.Name
		}
		existing.UpdatedAt = now
		cp := *existing
		return &cp, nil
	}
	cp := *u
	if cp.Tier == "" {
		cp.Tier = user.TierFree
	}
	cp.CreatedAt, cp.UpdatedAt = now, now
	r.users[u.ID] = &cp
	out := cp
	return &out, nil
}

func (r *UserRepo) IncrementGenerations(ctx context.Context, id string, delta int) error {
	if r.IncrementErr != nil {
		return r.IncrementErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.DailyGenerationsUsed += delta
	u.TotalGenerations += delta
	return nil
}

func (r *UserRepo) ResetDailyGenerations(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.DailyGenerationsUsed != 0 {
			u.DailyGenerationsUsed = 0
			n++
		}
	}
	return n, nil
}

func (r *UserRepo) UpdateTier(ctx context.Context, id string, tier user.Tier) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	u.Tier = tier
	cp := *u
	return &cp, nil
}

// Get returns a copy of the stored user, or nil.
func (r *UserRepo) Get(id string) *user.User {
	u, err := r.FindByID(context.Background(), id)
	if err != nil {
		return nil
	}
	return u
}

// GenerationRepo is an in-memory generation.Repository.
type GenerationRepo struct {
	mu        sync.Mutex
	records   map[string]*generation.Record
	order     []string
	CreateErr error
}

func NewGenerationRepo() *GenerationRepo {
	return &GenerationRepo{records: make(map[string]*generation.Record)}
}

func (r *GenerationRepo) Create(ctx context.Context, record *generation.Record) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *record
	r.records[record.ID] = &cp
	r.order = append(r.order, record.ID)
	return nil
}

func (r *GenerationRepo) FindByID(ctx context.Context, id string) (*generation.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, generation.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *GenerationRepo) List(ctx context.Context, filter generation.ListFilter) ([]*generation.Record, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owned []*generation.Record
	for i := len(r.order) - 1; i >= 0; i-- {
		rec := r.records[r.order[i]]
		if rec.UserID == filter.UserID {
			owned = append(owned, rec)
		}
	}
	total := int64(len(owned))
	if filter.Offset >= len(owned) {
		return []*generation.Record{}, total, nil
	}
	end := min(filter.Offset+filter.Limit, len(owned))
	return owned[filter.Offset:end], total, nil
}

// Count returns how many records were written.
func (r *GenerationRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// AnalyticsRepo is an in-memory usage.Repository.
type AnalyticsRepo struct {
	mu        sync.Mutex
	Rows      []*usage.AnalyticsRow
	CreateErr error
}

func NewAnalyticsRepo() *AnalyticsRepo {
	return &AnalyticsRepo{}
}

func (r *AnalyticsRepo) CreateBatch(ctx context.Context, rows []*usage.AnalyticsRow) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rows = append(r.Rows, rows...)
	return nil
}

func (r *AnalyticsRepo) SummarizeByProvider(ctx context.Context, userID string, start, end time.Time) ([]usage.ProviderSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byProvider := map[string]*usage.ProviderSummary{}
	elapsed := map[string]float64{}
	for _, row := range r.Rows {
		if row.UserID != userID || row.CreatedAt.Before(start) || row.CreatedAt.After(end) {
			continue
		}
		s, ok := byProvider[row.Provider]
		if !ok {
			s = &usage.ProviderSummary{Provider: row.Provider, EstimatedCostUSD: decimal.Zero}
			byProvider[row.Provider] = s
		}
		s.Attempts++
		if row.Success {
			s.Successes++
		}
		s.TotalPromptTokens += int64(row.PromptTokens)
		s.TotalCompletionTokens += int64(row.CompletionTokens)
		s.EstimatedCostUSD = s.EstimatedCostUSD.Add(row.EstimatedCostUSD)
		elapsed[row.Provider] += row.ElapsedSeconds
	}

	out := make([]usage.ProviderSummary, 0, len(byProvider))
	for p, s := range byProvider {
		s.AvgElapsedSeconds = elapsed[p] / float64(s.Attempts)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out, nil
}

// Count returns how many rows were written.
func (r *AnalyticsRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Rows)
}
