package content

import (
	"fmt"
	"strings"
)

// Format selects the marker table used to segment generated content.
type Format string

const (
	// Card is the numbered card carousel format.
	Card Format = "card"
	// Blog is the long-form blog post format.
	Blog Format = "blog"
	// Banner is the banner/poster format with its own field markers.
	Banner Format = "banner"
	// Default covers short-form video scripts and anything unrecognized.
	Default Format = "default"
)

// Format hint strings as sent to and echoed by the text generator.
const (
	HintCard   = "INSTAGRAM-CARD"
	HintBlog   = "NAVER-BLOG/BAND"
	HintShorts = "YOUTUBE-SHORTFORM"
	HintBanner = "ETC-BANNER"
)

// AllFormats returns every format in display order.
func AllFormats() []Format {
	return []Format{Card, Blog, Default, Banner}
}

// Hint returns the generator-facing hint string for the format.
func (f Format) Hint() string {
	switch f {
	case Card:
		return HintCard
	case Blog:
		return HintBlog
	case Banner:
		return HintBanner
	default:
		return HintShorts
	}
}

// ParseFormat accepts either a format name or a hint string.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimSpace(s) {
	case string(Card), HintCard:
		return Card, nil
	case string(Blog), HintBlog:
		return Blog, nil
	case string(Banner), HintBanner:
		return Banner, nil
	case string(Default), HintShorts, "video", "":
		return Default, nil
	default:
		return "", fmt.Errorf("unknown content format: %q", s)
	}
}

// Detect decides which format raw generated text is in. A banner or blog
// hint is taken as-is; otherwise the text is tested for card, blog and
// banner markers in that order.
func Detect(raw, hint string) Format {
	switch strings.TrimSpace(hint) {
	case HintBanner:
		return Banner
	case HintBlog:
		return Blog
	}

	switch {
	case patterns.cardHeader.MatchString(raw):
		return Card
	case patterns.blogSignature.MatchString(raw):
		return Blog
	case patterns.bannerSignature.MatchString(raw):
		return Banner
	default:
		return Default
	}
}
