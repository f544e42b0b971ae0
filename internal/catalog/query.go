package catalog

import (
	"cmp"
	"slices"
	"strings"

	"onlinelibrary/internal/models"
	"onlinelibrary/internal/slug"
)

// PopularLimit is how many records the landing page ranks.
const PopularLimit = 4

// Filter returns the records matching a category slug and a search text, in
// their original order. An empty or "all" slug matches every category. A
// blank search text matches everything; otherwise the lower-cased text must
// occur in the title or the author.
func Filter(books []models.Book, categorySlug, searchText string) []models.Book {
	matchAll := slug.IsAll(categorySlug)
	want := slug.Lower(categorySlug)

	search := ""
	if strings.TrimSpace(searchText) != "" {
		search = slug.Lower(searchText)
	}

	out := make([]models.Book, 0, len(books))
	for _, b := range books {
		if !matchAll && slug.Category(b.Category) != want {
			continue
		}
		if search != "" &&
			!strings.Contains(slug.Lower(b.Title), search) &&
			!strings.Contains(slug.Lower(b.Author), search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// HasCategory reports whether categorySlug selects something browsable:
// "all", or the slug of at least one record's category.
func HasCategory(books []models.Book, categorySlug string) bool {
	if slug.IsAll(categorySlug) {
		return true
	}
	want := slug.Lower(categorySlug)
	return slices.ContainsFunc(books, func(b models.Book) bool {
		return slug.Category(b.Category) == want
	})
}

// Popular returns up to n records ordered by rating, highest first. Equal
// ratings keep their original relative order. books is not modified.
func Popular(books []models.Book, n int) []models.Book {
	if n <= 0 {
		return []models.Book{}
	}
	ranked := slices.Clone(books)
	slices.SortStableFunc(ranked, func(a, b models.Book) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
