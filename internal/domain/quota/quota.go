// Package quota authorizes generations against the per-user daily budget.
package quota

import (
	"context"
	"errors"
	"fmt"

	"creator-api/internal/domain/user"
)

// DefaultDailyLimit applies when no limit is configured.
const DefaultDailyLimit = 10

// DeniedReason is the human-readable reason returned when the daily limit is hit.
const DeniedReason = "Daily generation limit reached. Upgrade to Premium for unlimited generations."

var ErrQuotaExceeded = errors.New("quota exceeded")

// DeniedError carries the reason a generation was refused.
type DeniedError struct {
	Reason string
	Tier   user.Tier
	Used   int
	Limit  int
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s (%d/%d used)", e.Reason, e.Used, e.Limit)
}

func (e *DeniedError) Unwrap() error {
	return ErrQuotaExceeded
}

// Decision is the result of checking a user against the gate.
type Decision struct {
	Allowed bool
	Reason  string
	// Remaining is nil for tiers without a daily limit.
	Remaining *int
}

// Gate is the tier-aware daily generation gate. It never resets counters.
type Gate struct {
	users user.Repository
	limit int
}

// NewGate constructs a Gate. A non-positive limit falls back to DefaultDailyLimit.
func NewGate(users user.Repository, dailyLimit int) *Gate {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	return &Gate{users: users, limit: dailyLimit}
}

// Limit returns the daily limit for free users.
func (g *Gate) Limit() int {
	return g.limit
}

// Check decides whether u may start another generation.
func (g *Gate) Check(u *user.User) Decision {
	if u.Tier.Unlimited() {
		return Decision{Allowed: true}
	}

	remaining := max(g.limit-u.DailyGenerationsUsed, 0)
	if u.DailyGenerationsUsed < g.limit {
		return Decision{Allowed: true, Remaining: &remaining}
	}
	return Decision{Allowed: false, Reason: DeniedReason, Remaining: &remaining}
}

// Authorize re-reads the user and returns a *DeniedError when the gate refuses.
func (g *Gate) Authorize(ctx context.Context, userID string) (*user.User, error) {
	u, err := g.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if d := g.Check(u); !d.Allowed {
		return u, &DeniedError{Reason: d.Reason, Tier: u.Tier, Used: u.DailyGenerationsUsed, Limit: g.limit}
	}
	return u, nil
}

// Record atomically adds delta to the user's daily and total counters. It must
// only be called once the generation has been persisted.
func (g *Gate) Record(ctx context.Context, userID string, delta int) error {
	if delta <= 0 {
		return fmt.Errorf("quota: delta must be positive, got %d", delta)
	}
	return g.users.IncrementGenerations(ctx, userID, delta)
}
