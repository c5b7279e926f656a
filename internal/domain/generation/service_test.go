package generation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-api/internal/domain/content"
	"creator-api/internal/domain/generation"
	"creator-api/internal/domain/provider"
	"creator-api/internal/domain/quota"
	"creator-api/internal/domain/usage"
	"creator-api/internal/domain/user"
	"creator-api/internal/testhelpers"
)

type fixture struct {
	users     *testhelpers.UserRepo
	records   *testhelpers.GenerationRepo
	analytics *testhelpers.AnalyticsRepo
	service   *generation.Service
}

func newFixture(t *testing.T, adapters []*testhelpers.StubAdapter, users ...*user.User) *fixture {
	t.Helper()
	f := &fixture{
		users:     testhelpers.NewUserRepo(users...),
		records:   testhelpers.NewGenerationRepo(),
		analytics: testhelpers.NewAnalyticsRepo(),
	}
	orchestrator := generation.NewOrchestrator(testhelpers.NewRegistry(t, adapters...), generation.OrchestratorConfig{
		HashtagProvider: provider.OpenAI,
		ProviderTimeout: time.Second,
	})
	f.service = generation.NewService(orchestrator, quota.NewGate(f.users, 10), f.records, usage.NewService(f.analytics))
	return f
}

func allStubs() []*testhelpers.StubAdapter {
	return []*testhelpers.StubAdapter{
		testhelpers.NewStubAdapter(provider.OpenAI),
		testhelpers.NewStubAdapter(provider.Anthropic),
		testhelpers.NewStubAdapter(provider.Gemini),
	}
}

func s1Request(userID string) generation.Request {
	return generation.Request{
		UserID:      userID,
		Category:    content.CategoryFashion,
		Platform:    content.PlatformInstagram,
		Description: description,
		Providers:   threeProviders(),
	}
}

func TestServiceGeneratePersistsEverything(t *testing.T) {
	f := newFixture(t, allStubs(), &user.User{ID: "u1", Tier: user.TierPremium, TotalGenerations: 5})

	res, err := f.service.Generate(context.Background(), s1Request("u1"))
	require.NoError(t, err)

	assert.NotEmpty(t, res.Record.ID)
	assert.Equal(t, time.UTC, res.Record.CreatedAt.Location())
	assert.Equal(t, 1, f.records.Count())
	assert.Equal(t, 3, f.analytics.Count())

	stored, err := f.service.Get(context.Background(), "u1", res.Record.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Aggregate.Captions, stored.Captions())
	assert.Equal(t, res.Aggregate.Hashtags, stored.Hashtags)

	u := f.users.Get("u1")
	assert.Equal(t, 1, u.DailyGenerationsUsed)
	assert.Equal(t, 6, u.TotalGenerations)

	for i, row := range f.analytics.Rows {
		assert.Equal(t, res.Record.ID, row.GenerationID)
		assert.Equal(t, string(threeProviders()[i]), row.Provider)
		assert.True(t, row.Success)
	}
}

func TestServiceFreeTierAtLimit(t *testing.T) {
	stubs := allStubs()
	f := newFixture(t, stubs, &user.User{ID: "u2", Tier: user.TierFree, DailyGenerationsUsed: 10, TotalGenerations: 42})

	_, err := f.service.Generate(context.Background(), s1Request("u2"))
	require.ErrorIs(t, err, quota.ErrQuotaExceeded)

	var denied *quota.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Contains(t, denied.Reason, "Daily generation limit reached")

	assert.Zero(t, f.records.Count())
	assert.Zero(t, f.analytics.Count())
	u := f.users.Get("u2")
	assert.Equal(t, 10, u.DailyGenerationsUsed)
	assert.Equal(t, 42, u.TotalGenerations)
	for _, s := range stubs {
		assert.Zero(t, s.Calls(), "providers must not run after a denial")
	}
}

func TestServiceAllProvidersFailStillPersists(t *testing.T) {
	openai := testhelpers.NewStubAdapter(provider.OpenAI)
	openai.Err = errors.New("boom")
	f := newFixture(t, []*testhelpers.StubAdapter{openai}, &user.User{ID: "u1", Tier: user.TierFree})

	req := s1Request("u1")
	req.Providers = []provider.Provider{provider.OpenAI}
	res, err := f.service.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, res.Aggregate.Captions)
	require.Len(t, res.Record.Outcomes, 1)
	assert.False(t, res.Record.Outcomes[0].Success)
	assert.Equal(t, 1, f.records.Count())
	assert.False(t, f.analytics.Rows[0].Success)
}

func TestServiceValidation(t *testing.T) {
	f := newFixture(t, allStubs(), &user.User{ID: "u1", Tier: user.TierPremium})

	req := s1Request("u1")
	req.Platform = content.Platform("myspace")
	_, err := f.service.Generate(context.Background(), req)
	assert.ErrorIs(t, err, content.ErrUnknownPlatform)

	req = s1Request("u1")
	req.Description = "   "
	_, err = f.service.Generate(context.Background(), req)
	assert.ErrorIs(t, err, generation.ErrEmptyContent)

	req = s1Request("u1")
	req.Providers = nil
	_, err = f.service.Generate(context.Background(), req)
	assert.ErrorIs(t, err, generation.ErrEmptyProviders)

	assert.Zero(t, f.records.Count())
	assert.Zero(t, f.users.Get("u1").TotalGenerations)
}

func TestServicePersistenceFailureSkipsCounter(t *testing.T) {
	f := newFixture(t, allStubs(), &user.User{ID: "u1", Tier: user.TierFree})
	f.records.CreateErr = errors.New("connection refused")

	_, err := f.service.Generate(context.Background(), s1Request("u1"))
	require.ErrorIs(t, err, generation.ErrPersistence)

	assert.Zero(t, f.analytics.Count())
	assert.Zero(t, f.users.Get("u1").DailyGenerationsUsed)
}

func TestServiceAnalyticsFailureSkipsCounter(t *testing.T) {
	f := newFixture(t, allStubs(), &user.User{ID: "u1", Tier: user.TierFree})
	f.analytics.CreateErr = errors.New("disk full")

	_, err := f.service.Generate(context.Background(), s1Request("u1"))
	require.ErrorIs(t, err, generation.ErrPersistence)
	assert.Zero(t, f.users.Get("u1").TotalGenerations)
}

func TestServiceCancelledBeforePersistence(t *testing.T) {
	slow := testhelpers.NewStubAdapter(provider.OpenAI)
	slow.Delay = 5 * time.Second
	f := newFixture(t, []*testhelpers.StubAdapter{slow}, &user.User{ID: "u1", Tier: user.TierFree})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	req := s1Request("u1")
	req.Providers = []provider.Provider{provider.OpenAI}
	_, err := f.service.Generate(ctx, req)
	require.ErrorIs(t, err, context.Canceled)

	assert.Zero(t, f.records.Count())
	assert.Zero(t, f.analytics.Count())
	assert.Zero(t, f.users.Get("u1").TotalGenerations)
}

func TestServiceTotalGenerationsMonotonic(t *testing.T) {
	f := newFixture(t, allStubs(), &user.User{ID: "u1", Tier: user.TierUnlimited})

	for i := 1; i <= 12; i++ {
		_, err := f.service.Generate(context.Background(), s1Request("u1"))
		require.NoError(t, err)
		assert.Equal(t, i, f.users.Get("u1").TotalGenerations)
	}
}

func TestServiceGetAndList(t *testing.T) {
	f := newFixture(t, allStubs(),
		&user.User{ID: "u1", Tier: user.TierPremium},
		&user.User{ID: "u3", Tier: user.TierPremium},
	)

	var ids []string
	for i := 0; i < 3; i++ {
		res, err := f.service.Generate(context.Background(), s1Request("u1"))
		require.NoError(t, err)
		ids = append(ids, res.Record.ID)
	}

	_, err := f.service.Get(context.Background(), "u3", ids[0])
	assert.ErrorIs(t, err, generation.ErrNotFound)

	records, total, err := f.service.List(context.Background(), generation.ListFilter{UserID: "u1", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, records, 2)
	assert.Equal(t, ids[2], records[0].ID)

	records, _, err = f.service.List(context.Background(), generation.ListFilter{UserID: "u3"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestComposeCombined(t *testing.T) {
	assert.Equal(t, "#a #b", generation.ComposeCombined(nil, []string{"#a", "#b"}))
	assert.Equal(t, "one\n\ntwo\n\n#a", generation.ComposeCombined([]string{"one", "two"}, []string{"#a"}))
}
