// Package youtube detects links to the YouTube platform in arbitrary text.
//
// Detection is a set of independent pattern detectors, one per link shape
// (channel, playlist, username, video). Any single detector matching is
// enough to flag the text. Everything here is pure and safe for concurrent
// use.
package youtube

import (
	"regexp"
	"strings"
)

type Category string

const (
	CategoryChannel  Category = "channel"
	CategoryPlaylist Category = "playlist"
	CategoryUsername Category = "username"
	CategoryVideo    Category = "video"
)

// Match is the result of classifying a piece of text. Category is the first
// matching detector, for diagnostics only; detectors are independent and
// text may match more than one.
type Match struct {
	Matched  bool
	Category Category
}

type detector struct {
	category Category
	pattern  *regexp.Regexp
	// excluded rejects a candidate by its captured identifier. RE2 has no
	// lookaround, so exclusions that upstream tools express as lookahead
	// live here instead.
	excluded func(id string) bool
}

var detectors = []detector{
	{
		category: CategoryChannel,
		pattern:  regexp.MustCompile(`(?i)channel/(.*?)(?:/|\?|$)`),
	},
	{
		category: CategoryPlaylist,
		pattern:  regexp.MustCompile(`list=([^#/?&]*)`),
		// "videoseries" list ids are autoplay markers on embeds, not
		// shareable playlists
		excluded: func(id string) bool {
			return strings.HasPrefix(id, "videoseries")
		},
	},
	{
		category: CategoryUsername,
		pattern:  regexp.MustCompile(`user/(.*)(?:\?|$|/)`),
	},
	{
		category: CategoryVideo,
		pattern:  regexp.MustCompile(`(?:watch\?.*?v=(.*?)(?:#.*)?|youtu\.be/(.*?)(?:\?.*)?|embed/(.*?)(?:\?.*))(?:#|&|/|$)`),
	},
}

// Classify reports whether text contains a YouTube link, and via which link
// shape. Empty text never matches.
func Classify(text string) Match {
	if text == "" {
		return Match{}
	}
	for _, d := range detectors {
		groups := d.pattern.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		if d.excluded != nil && d.excluded(firstCapture(groups)) {
			continue
		}
		return Match{Matched: true, Category: d.category}
	}
	return Match{}
}

// IsYouTube reports whether text contains a YouTube link of any shape.
func IsYouTube(text string) bool {
	return Classify(text).Matched
}

func firstCapture(groups []string) string {
	for _, g := range groups[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
