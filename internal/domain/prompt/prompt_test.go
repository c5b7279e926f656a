package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-api/internal/domain/content"
)

func TestSystemFor(t *testing.T) {
	for _, c := range content.Categories() {
		msg := SystemFor(c)
		if msg == genericSystem {
			t.Errorf("category %s fell back to the generic system message", c)
		}
	}

	assert.Equal(t, genericSystem, SystemFor(content.Category("knitting")))
	assert.Contains(t, SystemFor(content.CategoryFashion), "fashion-savvy social media expert")
}

func TestCaptionPrompt(t *testing.T) {
	p := CaptionPrompt(content.CategoryFashion, content.PlatformInstagram, "  Cozy autumn outfit with oversized sweater ")

	assert.Contains(t, p, PlatformGuideline(content.PlatformInstagram))
	assert.Contains(t, p, "Content description: Cozy autumn outfit with oversized sweater\n")
	assert.True(t, strings.HasSuffix(p, "Caption:"), "prompt must end with the caption cue")
}

func TestHashtagPrompt(t *testing.T) {
	p := HashtagPrompt(content.CategoryFood, content.PlatformTikTok, "Street tacos")

	assert.Contains(t, p, "exactly 15")
	assert.Contains(t, p, "one hashtag per line")
	assert.Contains(t, p, "Street tacos")
}

func TestFallbackHashtags(t *testing.T) {
	tags := FallbackHashtags(content.CategoryFashion, content.PlatformInstagram)

	require.Len(t, tags, 9)
	assert.Equal(t, []string{"#fashion", "#style", "#ootd", "#fashionista", "#outfitinspo"}, tags[:5])
	assert.Equal(t, []string{"#instagram", "#instagood", "#photooftheday", "#explorepage"}, tags[5:])

	for _, c := range content.Categories() {
		for _, p := range content.Platforms() {
			got := FallbackHashtags(c, p)
			assert.LessOrEqual(t, len(got), MaxHashtags)
			for _, tag := range got {
				assert.True(t, strings.HasPrefix(tag, "#"), "%s/%s: %q", c, p, tag)
			}
		}
	}
}

func TestParseHashtags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "one per line",
			in:   "#fashion\n#style\n#ootd",
			want: []string{"#fashion", "#style", "#ootd"},
		},
		{
			name: "missing hash and list markers",
			in:   "1. fashion\n2) #style\n- #ootd\n* autumn",
			want: []string{"#fashion", "#style", "#ootd", "#autumn"},
		},
		{
			name: "drops prose and duplicates",
			in:   "Here are your hashtags:\n#Fashion\n#fashion\n\n#style, \nHope this helps!",
			want: []string{"#Fashion", "#style"},
		},
		{
			name: "several tags on one line",
			in:   "#a #b #c",
			want: []string{"#a", "#b", "#c"},
		},
		{
			name: "empty",
			in:   "  \n\n",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHashtags(tt.in))
		})
	}
}

func TestParseHashtagsCapsAtFifteen(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("#tag")
		b.WriteByte(byte('a' + i%26))
		b.WriteByte(byte('a' + i/26))
		b.WriteByte('\n')
	}

	tags := ParseHashtags(b.String())
	if len(tags) != MaxHashtags {
		t.Fatalf("expected %d hashtags, got %d", MaxHashtags, len(tags))
	}
}
