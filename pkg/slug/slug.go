// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Project pages are addressable by slug (e.g. "kiram-dashboard") as well as
// by id. Accents are folded, everything else that is not a letter or digit
// becomes a single hyphen.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any run of characters outside [a-z0-9-].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses consecutive hyphens.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. NFD-normalize and strip combining marks (é → e).
// 2. Lowercase.
// 3. Replace every non letter/digit with a hyphen.
// 4. Collapse and trim hyphens.
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Unique returns a slug derived from s that taken does not report as used.
// Collisions get a numeric suffix ("portfolio", "portfolio-2", ...). An empty
// base falls back to "item".
func Unique(s string, taken func(candidate string) bool) string {
	base := From(s)
	if base == "" {
		base = "item"
	}

	candidate := base
	for n := 2; taken(candidate); n++ {
		candidate = base + "-" + strconv.Itoa(n)
	}
	return candidate
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
