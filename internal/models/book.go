// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Rating bounds accepted by the add-book form.
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// Categories lists the categories offered by the add-book form and the
// landing page, in display order.
var Categories = []string{"Fiction", "Non-Fiction", "Sci-Fi", "Biography", "Fantasy"}

// Book is a single catalog entry. ID is assigned by the catalog store and
// never changes afterwards.
type Book struct {
	ID          string  `json:"id" yaml:"id,omitempty"`
	Title       string  `json:"title" yaml:"title"`
	Author      string  `json:"author" yaml:"author"`
	Category    string  `json:"category" yaml:"category"`
	Description string  `json:"description" yaml:"description"`
	Rating      float64 `json:"rating" yaml:"rating"`
}

// IsKnownCategory reports whether name is one of the fixed Categories.
// The comparison is exact: "sci-fi" is not a known category name.
func IsKnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
