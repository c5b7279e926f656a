// Package content defines the closed vocabularies a generation request is made of.
package content

import (
	"errors"
	"strings"
)

// Category is the subject area a piece of content belongs to.
type Category string

const (
	CategoryFashion    Category = "fashion"
	CategoryFitness    Category = "fitness"
	CategoryFood       Category = "food"
	CategoryTravel     Category = "travel"
	CategoryBusiness   Category = "business"
	CategoryGaming     Category = "gaming"
	CategoryMusic      Category = "music"
	CategoryIdeas      Category = "ideas"
	CategoryEventSpace Category = "event_space"
)

// Platform is the social network the content is written for.
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
)

var (
	ErrUnknownCategory = errors.New("unknown content category")
	ErrUnknownPlatform = errors.New("unknown platform")
)

// Categories lists every known category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryFashion,
		CategoryFitness,
		CategoryFood,
		CategoryTravel,
		CategoryBusiness,
		CategoryGaming,
		CategoryMusic,
		CategoryIdeas,
		CategoryEventSpace,
	}
}

// Platforms lists every known platform in declaration order.
func Platforms() []Platform {
	return []Platform{PlatformTikTok, PlatformInstagram, PlatformYouTube, PlatformFacebook}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	for _, known := range Platforms() {
		if p == known {
			return true
		}
	}
	return false
}

// ParseCategory is case-insensitive and ignores surrounding whitespace.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// ParsePlatform is case-insensitive and ignores surrounding whitespace.
func ParsePlatform(raw string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", ErrUnknownPlatform
	}
	return p, nil
}
