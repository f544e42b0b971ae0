// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives the URL segments used to address book categories.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// All is the category slug that disables category filtering.
const All = "all"

// Category turns a category name into its URL slug: lower-cased, with every
// whitespace character replaced by a hyphen. Runs of whitespace are not
// collapsed, so "Science  Fiction" becomes "science--fiction".
// Example: "Non Fiction" → "non-fiction"
func Category(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, Lower(name))
}

// Lower lower-cases s using Unicode case mapping rules.
func Lower(s string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Lower(language.Und).String(s)
}

// IsAll reports whether s selects every category: empty or "all" in any case.
func IsAll(s string) bool {
	return s == "" || Lower(s) == All
}
