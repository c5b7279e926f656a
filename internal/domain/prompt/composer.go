// Package prompt builds the deterministic prompt strings sent to providers.
// Nothing in this package performs I/O.
package prompt

import (
	"fmt"
	"strings"

	"creator-api/internal/domain/content"
)

// MaxHashtags caps every hashtag list the service returns.
const MaxHashtags = 15

// WebDataGuidance is appended to system messages by search-grounded providers.
const WebDataGuidance = "Use current web data and recent trends where relevant."

const genericSystem = "You are a creative social media expert who writes engaging, platform-native content in a friendly, authentic tone."

var systemMessages = map[content.Category]string{
	content.CategoryFashion:    "You are a fashion-savvy social media expert who writes trendy, stylish captions in a confident, aspirational tone.",
	content.CategoryFitness:    "You are a motivating fitness coach and social media expert who writes energetic, encouraging captions.",
	content.CategoryFood:       "You are a food-loving social media expert who writes mouth-watering, sensory captions in a warm, inviting tone.",
	content.CategoryTravel:     "You are a travel storyteller and social media expert who writes adventurous, evocative captions that spark wanderlust.",
	content.CategoryBusiness:   "You are a business-focused social media strategist who writes professional, value-driven captions in a credible tone.",
	content.CategoryGaming:     "You are a gaming-culture social media expert who writes playful, hype-filled captions that speak the community's language.",
	content.CategoryMusic:      "You are a music-obsessed social media expert who writes rhythmic, expressive captions with creative flair.",
	content.CategoryIdeas:      "You are a creative strategist and social media expert who turns rough ideas into fresh, thought-provoking captions.",
	content.CategoryEventSpace: "You are an event-venue marketing expert who writes elegant, inviting captions that help guests picture their celebration.",
}

var platformGuidelines = map[content.Platform]string{
	content.PlatformTikTok:    "TikTok: keep it under 150 characters, open with a hook, casual and trend-aware, emojis welcome.",
	content.PlatformInstagram: "Instagram: 1-3 short paragraphs, strong first line, a clear call to action, tasteful emojis.",
	content.PlatformYouTube:   "YouTube: a descriptive, keyword-rich caption of 2-4 sentences that invites viewers to watch and subscribe.",
	content.PlatformFacebook:  "Facebook: conversational and community-oriented, 2-3 sentences that end with a question to spark comments.",
}

const genericGuideline = "Keep it concise, engaging and suited to the platform's audience."

var categoryHashtags = map[content.Category][]string{
	content.CategoryFashion:    {"#fashion", "#style", "#ootd", "#fashionista", "#outfitinspo"},
	content.CategoryFitness:    {"#fitness", "#workout", "#gym", "#fitnessmotivation", "#healthylifestyle"},
	content.CategoryFood:       {"#food", "#foodie", "#instafood", "#yummy", "#foodphotography"},
	content.CategoryTravel:     {"#travel", "#wanderlust", "#travelgram", "#explore", "#adventure"},
	content.CategoryBusiness:   {"#business", "#entrepreneur", "#success", "#marketing", "#smallbusiness"},
	content.CategoryGaming:     {"#gaming", "#gamer", "#videogames", "#gamingcommunity", "#gameplay"},
	content.CategoryMusic:      {"#music", "#musician", "#newmusic", "#musiclover", "#song"},
	content.CategoryIdeas:      {"#ideas", "#creativity", "#inspiration", "#innovation", "#brainstorm"},
	content.CategoryEventSpace: {"#eventspace", "#venue", "#events", "#weddingvenue", "#partyvenue"},
}

var platformHashtags = map[content.Platform][]string{
	content.PlatformTikTok:    {"#tiktok", "#fyp", "#foryou", "#viral"},
	content.PlatformInstagram: {"#instagram", "#instagood", "#photooftheday", "#explorepage"},
	content.PlatformYouTube:   {"#youtube", "#youtuber", "#subscribe", "#video"},
	content.PlatformFacebook:  {"#facebook", "#community", "#share", "#socialmedia"},
}

// SystemFor returns the system message for the category. Unknown categories get
// a generic message.
func SystemFor(category content.Category) string {
	if msg, ok := systemMessages[category]; ok {
		return msg
	}
	return genericSystem
}

// PlatformGuideline returns the length and style hint line for the platform.
func PlatformGuideline(platform content.Platform) string {
	if g, ok := platformGuidelines[platform]; ok {
		return g
	}
	return genericGuideline
}

// CaptionPrompt builds the user message asking for a single caption.
func CaptionPrompt(category content.Category, platform content.Platform, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s caption for %s content.\n\n", platform, category)
	fmt.Fprintf(&b, "Platform guidelines: %s\n\n", PlatformGuideline(platform))
	fmt.Fprintf(&b, "Content description: %s\n\n", strings.TrimSpace(description))
	b.WriteString("Return only the caption text without hashtags or commentary.\n\n")
	b.WriteString("Caption:")
	return b.String()
}

// HashtagPrompt builds the user message asking for exactly MaxHashtags hashtags.
func HashtagPrompt(category content.Category, platform content.Platform, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate exactly %d relevant hashtags for a %s post about %s.\n\n", MaxHashtags, platform, category)
	fmt.Fprintf(&b, "Content description: %s\n\n", strings.TrimSpace(description))
	b.WriteString("Mix popular and niche hashtags. Return one hashtag per line, each beginning with #, and nothing else.")
	return b.String()
}

// FallbackHashtags returns the static list used when hashtag generation fails:
// five category hashtags followed by four platform hashtags.
func FallbackHashtags(category content.Category, platform content.Platform) []string {
	tags := make([]string, 0, MaxHashtags)
	if c, ok := categoryHashtags[category]; ok {
		tags = append(tags, c...)
	} else {
		tags = append(tags, "#content", "#creator", "#socialmedia", "#trending", "#inspiration")
	}
	tags = append(tags, platformHashtags[platform]...)
	return dedupe(tags)
}
