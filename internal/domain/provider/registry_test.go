package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-api/internal/domain/provider"
	"creator-api/internal/testhelpers"
)

func TestRegistryListCoversEveryProvider(t *testing.T) {
	perplexity := testhelpers.NewStubAdapter(provider.Perplexity)
	perplexity.Unavailable = true
	reg := testhelpers.NewRegistry(t,
		testhelpers.NewStubAdapter(provider.OpenAI),
		testhelpers.NewStubAdapter(provider.Anthropic),
		perplexity,
	)

	list := reg.List()
	require.Len(t, list, len(provider.All()))
	for i, p := range provider.All() {
		assert.Equal(t, p, list[i].Provider)
		assert.NotEmpty(t, list[i].Name)
		assert.NotEmpty(t, list[i].Strengths)
		assert.NotEmpty(t, list[i].BestFor)
	}

	assert.True(t, list[0].Available)
	assert.Equal(t, "openai-test", list[0].Model)
	assert.False(t, list[2].Available, "gemini has no adapter")
	assert.False(t, list[3].Available, "perplexity credential missing")
}

func TestRegistryGet(t *testing.T) {
	reg := testhelpers.NewRegistry(t, testhelpers.NewStubAdapter(provider.Gemini))

	d, ok := reg.Get(provider.Gemini)
	require.True(t, ok)
	assert.True(t, d.Available)

	_, ok = reg.Get(provider.Provider("mistral"))
	assert.False(t, ok)
}

func TestRegistryResolve(t *testing.T) {
	missing := testhelpers.NewStubAdapter(provider.Anthropic)
	missing.Unavailable = true
	reg := testhelpers.NewRegistry(t, testhelpers.NewStubAdapter(provider.OpenAI), missing)

	a, err := reg.Resolve(provider.OpenAI)
	require.NoError(t, err)
	assert.Equal(t, provider.OpenAI, a.Provider())

	_, err = reg.Resolve(provider.Anthropic)
	assert.ErrorIs(t, err, provider.ErrProviderUnavailable)

	_, err = reg.Resolve(provider.Gemini)
	assert.ErrorIs(t, err, provider.ErrProviderUnavailable)

	_, err = reg.Resolve(provider.Provider("mistral"))
	assert.ErrorIs(t, err, provider.ErrUnsupportedProvider)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := provider.NewRegistry([]provider.Adapter{
		testhelpers.NewStubAdapter(provider.OpenAI),
		testhelpers.NewStubAdapter(provider.OpenAI),
	})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	p, err := provider.Parse(" OpenAI ")
	require.NoError(t, err)
	assert.Equal(t, provider.OpenAI, p)

	_, err = provider.Parse("mistral")
	assert.ErrorIs(t, err, provider.ErrUnsupportedProvider)
}

func TestBudgetFor(t *testing.T) {
	b := provider.Budget{Caption: 400, Hashtags: 800, Default: 2000}
	assert.Equal(t, 400, b.For(provider.PurposeCaption))
	assert.Equal(t, 800, b.For(provider.PurposeHashtags))
	assert.Equal(t, 2000, b.For(provider.PurposeGeneric))
	assert.Equal(t, 2000, provider.Budget{Default: 2000}.For(provider.PurposeCaption))
}

func TestNewFailureMarksTimeouts(t *testing.T) {
	f := provider.NewFailure(provider.Gemini, context.DeadlineExceeded)
	assert.True(t, f.Timeout)
	assert.Equal(t, "gemini: request timed out", f.Error())

	boom := errors.New("boom")
	f = provider.NewFailure(provider.Gemini, boom)
	assert.False(t, f.Timeout)
	assert.ErrorIs(t, f, boom)
	assert.Same(t, f, provider.NewFailure(provider.Gemini, f))
	assert.Nil(t, provider.NewFailure(provider.Gemini, nil))
}
