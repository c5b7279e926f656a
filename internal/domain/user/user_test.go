package user

import (
	"context"
	"errors"
	"testing"
)

type fakeRepo struct {
	upserted *User
	tier     Tier
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*User, error) {
	return nil, ErrNotFound
}

func (f *fakeRepo) Upsert(ctx context.Context, u *User) (*User, error) {
	f.upserted = u
	return u, nil
}

func (f *fakeRepo) IncrementGenerations(ctx context.Context, id string, delta int) error {
	return nil
}

func (f *fakeRepo) ResetDailyGenerations(ctx context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) UpdateTier(ctx context.Context, id string, tier Tier) (*User, error) {
	f.tier = tier
	return &User{ID: id, Tier: tier}, nil
}

func TestEnsureUserDefaultsToFreeTier(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	u, err := svc.EnsureUser(context.Background(), Identity{Subject: " sub-1 "})
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	if u.ID != "sub-1" || u.Tier != TierFree {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestEnsureUserRequiresSubject(t *testing.T) {
	svc := NewService(&fakeRepo{})

	if _, err := svc.EnsureUser(context.Background(), Identity{}); !errors.Is(err, ErrInvalidIdentity) {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}
}

func TestSetTierRejectsUnknownTier(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	if _, err := svc.SetTier(context.Background(), "u1", Tier("gold")); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
	if repo.tier != "" {
		t.Fatalf("repository should not be called for invalid tier")
	}
}

func TestTierUnlimited(t *testing.T) {
	for _, tier := range Tiers() {
		want := tier != TierFree
		if tier.Unlimited() != want {
			t.Errorf("%s.Unlimited() = %v, want %v", tier, tier.Unlimited(), want)
		}
	}

	if _, err := ParseTier("Premium"); err != nil {
		t.Fatalf("ParseTier: %v", err)
	}
}
