package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// PrincipalClaims represent the subset of JWT claims we care about.
type PrincipalClaims struct {
	Subject         string
	Issuer          string
	Audience        []string
	Email           string
	Name            string
	Roles           []string
	ExpiresAt       time.Time
	IssuedAt        time.Time
	NotBefore       time.Time
	TokenID         string
	AuthorizedParty string
}

// HasRole reports whether the principal carries any of the given roles.
func (p *PrincipalClaims) HasRole(roles ...string) bool {
	for _, r := range p.Roles {
		if slices.Contains(roles, r) {
			return true
		}
	}
	return false
}

// Validator turns a raw bearer token into principal claims.
type Validator interface {
	Validate(ctx context.Context, rawToken string) (*PrincipalClaims, error)
	Ready() bool
}

// JWKSValidator validates RS256 tokens against a remote JWKS.
type JWKSValidator struct {
	issuer          string
	audience        string
	authorizedParty string
	jwksURL         string
	logger          zerolog.Logger
	refreshEvery    time.Duration
	clockSkew       time.Duration
	jwks            atomic.Pointer[keyfunc.JWKS]
	lastErr         atomic.Value // lastErrWrap
}

type lastErrWrap struct{ Err error }

var _ Validator = (*JWKSValidator)(nil)

const (
	jwksInitialRetryInterval   = time.Second
	jwksInitialRetryMaxBackoff = 10 * time.Second
	jwksInitialRetryTimeout    = 2 * time.Minute
)

// Options configures NewJWKSValidator.
type Options struct {
	JWKSURL         string
	Issuer          string
	Audience        string
	AuthorizedParty string
	RefreshEvery    time.Duration
	ClockSkew       time.Duration
}

// NewJWKSValidator fetches the key set, retrying with backoff until ctx ends.
func NewJWKSValidator(ctx context.Context, opts Options, logger zerolog.Logger) (*JWKSValidator, error) {
	if opts.JWKSURL == "" {
		return nil, errors.New("jwks url is required")
	}

	validator := &JWKSValidator{
		issuer:          opts.Issuer,
		audience:        opts.Audience,
		authorizedParty: opts.AuthorizedParty,
		jwksURL:         opts.JWKSURL,
		logger:          logger,
		refreshEvery:    opts.RefreshEvery,
		clockSkew:       opts.ClockSkew,
	}
	validator.lastErr.Store(lastErrWrap{})

	if err := validator.initJWKS(ctx); err != nil {
		return nil, err
	}
	return validator, nil
}

func (v *JWKSValidator) initJWKS(ctx context.Context) error {
	options := keyfunc.Options{
		Ctx: ctx,
		RefreshErrorHandler: func(err error) {
			v.lastErr.Store(lastErrWrap{Err: err})
			if err != nil {
				v.logger.Error().Err(err).Msg("jwks refresh failed")
			}
		},
		RefreshInterval:   v.refreshEvery,
		RefreshUnknownKID: true,
	}

	backoff := jwksInitialRetryInterval
	deadline := time.Now().Add(jwksInitialRetryTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	for attempt := 1; ; attempt++ {
		jwks, err := keyfunc.Get(v.jwksURL, options)
		if err == nil {
			v.lastErr.Store(lastErrWrap{})
			v.jwks.Store(jwks)
			return nil
		}

		v.logger.Warn().
			Err(err).
			Str("jwks_url", v.jwksURL).
			Int("attempt", attempt).
			Msg("initial jwks fetch failed, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("fetch jwks: %w", ctx.Err())
		case <-time.After(backoff):
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("fetch jwks: %w", err)
		}
		backoff = min(backoff*2, jwksInitialRetryMaxBackoff)
	}
}

// Validate parses and validates the given JWT returning principal claims.
func (v *JWKSValidator) Validate(_ context.Context, rawToken string) (*PrincipalClaims, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, ErrMissingToken
	}
	jwks := v.jwks.Load()
	if jwks == nil {
		return nil, errors.New("jwks not initialised")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithLeeway(v.clockSkew),
	)
	token, err := parser.ParseWithClaims(rawToken, jwt.MapClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return v.principal(mapClaims)
}

func (v *JWKSValidator) principal(mapClaims jwt.MapClaims) (*PrincipalClaims, error) {
	iss := claimString(mapClaims["iss"])
	if iss != v.issuer {
		return nil, fmt.Errorf("%w: issuer mismatch %s", ErrInvalidToken, iss)
	}

	audiences := claimStrings(mapClaims["aud"])
	if v.audience != "" && !slices.Contains(audiences, v.audience) {
		return nil, fmt.Errorf("%w: audience mismatch", ErrInvalidToken)
	}

	sub := claimString(mapClaims["sub"])
	if sub == "" {
		return nil, fmt.Errorf("%w: sub claim missing", ErrInvalidToken)
	}

	azp := claimString(mapClaims["azp"])
	if v.authorizedParty != "" && azp != "" && azp != v.authorizedParty {
		return nil, fmt.Errorf("%w: authorized party mismatch", ErrInvalidToken)
	}

	roles := claimStrings(mapClaims["roles"])
	if realmAccess, ok := mapClaims["realm_access"].(map[string]any); ok {
		roles = append(roles, claimStrings(realmAccess["roles"])...)
	}

	return &PrincipalClaims{
		Subject:         sub,
		Issuer:          iss,
		Audience:        audiences,
		Email:           claimString(mapClaims["email"]),
		Name:            claimString(mapClaims["name"]),
		Roles:           roles,
		ExpiresAt:       jwtNumericTime(mapClaims["exp"]),
		IssuedAt:        jwtNumericTime(mapClaims["iat"]),
		NotBefore:       jwtNumericTime(mapClaims["nbf"]),
		TokenID:         claimString(mapClaims["jti"]),
		AuthorizedParty: azp,
	}, nil
}

// Ready indicates whether JWKS has been successfully loaded.
func (v *JWKSValidator) Ready() bool {
	if v.jwks.Load() == nil {
		return false
	}
	if wrap, ok := v.lastErr.Load().(lastErrWrap); ok && wrap.Err != nil {
		return false
	}
	return true
}

// Close stops the background JWKS refresh.
func (v *JWKSValidator) Close() {
	if jwks := v.jwks.Load(); jwks != nil {
		jwks.EndBackground()
	}
}

func jwtNumericTime(value any) time.Time {
	switch timeValue := value.(type) {
	case float64:
		return time.Unix(int64(timeValue), 0).UTC()
	case int64:
		return time.Unix(timeValue, 0).UTC()
	case json.Number:
		if unixTime, err := timeValue.Int64(); err == nil {
			return time.Unix(unixTime, 0).UTC()
		}
	}
	return time.Time{}
}

func claimString(value any) string {
	if str, ok := value.(string); ok {
		return str
	}
	return ""
}

func claimStrings(value any) []string {
	switch val := value.(type) {
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return val
	}
	return nil
}
