// Package user provides user domain models and behaviors.
package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Tier decides how the daily generation quota applies to a user.
type Tier string

const (
	TierFree       Tier = "free"
	TierPremium    Tier = "premium"
	TierAdmin      Tier = "admin"
	TierSuperAdmin Tier = "super_admin"
	TierUnlimited  Tier = "unlimited"
)

// Tiers lists every known tier.
func Tiers() []Tier {
	return []Tier{TierFree, TierPremium, TierAdmin, TierSuperAdmin, TierUnlimited}
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	for _, known := range Tiers() {
		if t == known {
			return true
		}
	}
	return false
}

// Unlimited reports whether the tier bypasses the daily quota.
func (t Tier) Unlimited() bool {
	switch t {
	case TierPremium, TierAdmin, TierSuperAdmin, TierUnlimited:
		return true
	default:
		return false
	}
}

// ParseTier is case-insensitive.
func ParseTier(raw string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", ErrInvalidTier
	}
	return t, nil
}

// User models an application user resolved from an external identity provider.
// ID is the identity provider subject.
type User struct {
	ID                   string
	Email                *string
	Name                 *string
	Tier                 Tier
	DailyGenerationsUsed int
	TotalGenerations     int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Identity encapsulates the externally provided identity attributes.
type Identity struct {
	Subject string
	Email   *string
	Name    *string
}

// Repository defines storage operations for users.
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	// Upsert inserts the user or refreshes its profile fields. Tier and
	// counters of an existing row are left untouched.
	Upsert(ctx context.Context, user *User) (*User, error)
	// IncrementGenerations adds delta to both counters in one atomic update.
	IncrementGenerations(ctx context.Context, id string, delta int) error
	ResetDailyGenerations(ctx context.Context) (int64, error)
	UpdateTier(ctx context.Context, id string, tier Tier) (*User, error)
}

var (
	// ErrInvalidIdentity indicates a missing subject on the identity payload.
	ErrInvalidIdentity = errors.New("invalid identity: subject is required")
	ErrInvalidTier     = errors.New("invalid tier")
	ErrNotFound        = errors.New("user not found")
)

// Service persists and resolves users from external identities.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureUser persists the given identity and returns the internal user record.
// New users start on the free tier.
func (s *Service) EnsureUser(ctx context.Context, identity Identity) (*User, error) {
	subject := strings.TrimSpace(identity.Subject)
	if subject == "" {
		return nil, ErrInvalidIdentity
	}

	return s.repo.Upsert(ctx, &User{
		ID:    subject,
		Email: identity.Email,
		Name:  identity.Name,
		Tier:  TierFree,
	})
}

// Get loads a user by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// SetTier changes the tier of an existing user.
func (s *Service) SetTier(ctx context.Context, id string, tier Tier) (*User, error) {
	if !tier.Valid() {
		return nil, ErrInvalidTier
	}
	return s.repo.UpdateTier(ctx, id, tier)
}

// ResetDaily zeroes the daily counter of every user and returns the number of
// rows touched.
func (s *Service) ResetDaily(ctx context.Context) (int64, error) {
	return s.repo.ResetDailyGenerations(ctx)
}
