package testhelpers

import (
	"context"
	"sync"

	"creator-api/internal/infrastructure/auth"
)

// Validator is an auth.Validator that accepts a fixed set of tokens.
type Validator struct {
	mu       sync.Mutex
	tokens   map[string]auth.PrincipalClaims
	NotReady bool
}

func NewValidator() *Validator {
	return &Validator{tokens: make(map[string]auth.PrincipalClaims)}
}

// Add registers token as valid for the given claims.
func (v *Validator) Add(token string, claims auth.PrincipalClaims) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tokens[token] = claims
}

func (v *Validator) Validate(ctx context.Context, rawToken string) (*auth.PrincipalClaims, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	claims, ok := v.tokens[rawToken]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &claims, nil
}

func (v *Validator) Ready() bool { return !v.NotReady }
