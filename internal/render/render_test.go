package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"onlinelibrary/internal/middleware"
	"onlinelibrary/internal/models"
)

func sampleBook() models.Book {
	return models.Book{
		ID:          "b-1",
		Title:       "Dune",
		Author:      "Frank Herbert",
		Category:    "Sci-Fi",
		Description: "An epic science fiction saga set in a desert planet.",
		Rating:      4.6,
	}
}

func mustNew(t *testing.T, devMode bool) *Renderer {
	t.Helper()
	rn, err := New(devMode)
	if err != nil {
		t.Fatalf("New(devMode=%v) returned error: %v", devMode, err)
	}
	return rn
}

// --------------------------------------------------------------------------
// TestNew — verify renderer creation in dev mode and prod mode
// --------------------------------------------------------------------------

func TestNew(t *testing.T) {
	for _, devMode := range []bool{true, false} {
		rn := mustNew(t, devMode)

		for _, name := range []string{"home", "browse", "book", "book_not_found", "add_book", "not_found"} {
			if !rn.Has(name) {
				t.Errorf("expected template %q to be parsed", name)
			}
		}

		// Layout and partials are not pages.
		for _, name := range []string{"base", "partials"} {
			if rn.Has(name) {
				t.Errorf("%s.html should not be registered as a page", name)
			}
		}
	}
}

func TestDevModeScripts(t *testing.T) {
	tests := []struct {
		devMode bool
		want    string
		notWant string
	}{
		{true, "htmx.org@2.0.4/dist/htmx.js", "htmx.min.js"},
		{false, "htmx.min.js", "dist/htmx.js"},
	}

	for _, tt := range tests {
		rn := mustNew(t, tt.devMode)
		w := httptest.NewRecorder()
		rn.Page(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "home", &PageData{Title: "Home"})

		body := w.Body.String()
		if !strings.Contains(body, tt.want) {
			t.Errorf("devMode=%v: expected %q in output", tt.devMode, tt.want)
		}
		if strings.Contains(body, tt.notWant) {
			t.Errorf("devMode=%v: unexpected %q in output", tt.devMode, tt.notWant)
		}
	}
}

// --------------------------------------------------------------------------
// TestPageRendering — full page render with the navbar layout
// --------------------------------------------------------------------------

func TestPageRendering(t *testing.T) {
	rn := mustNew(t, false)

	w := httptest.NewRecorder()
	rn.Page(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "home", &PageData{
		Title:   "Home",
		Section: "home",
		Data: map[string]any{
			"Categories": models.Categories,
			"Popular":    []models.Book{sampleBook()},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "text/html; charset=utf-8")
	}

	body := w.Body.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"Online Library",
		"Welcome to Online Library",
		`href="/books/sci-fi"`,
		`href="/books/non-fiction"`,
		`href="/book/b-1"`,
		"Rating:</strong> 4.6",
		`class="nav-link active" href="/"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("full page render should contain %q", want)
		}
	}
}

func TestHomeWithoutPopularBooks(t *testing.T) {
	rn := mustNew(t, false)

	w := httptest.NewRecorder()
	rn.Page(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "home", &PageData{
		Title: "Home",
		Data:  map[string]any{"Categories": models.Categories},
	})

	if !strings.Contains(w.Body.String(), "No popular books available.") {
		t.Error("expected empty-state message for popular books")
	}
}

// --------------------------------------------------------------------------
// TestHTMXPartialRendering — HTMX requests only render the content block
// --------------------------------------------------------------------------

func TestHTMXPartialRendering(t *testing.T) {
	rn := mustNew(t, false)

	req := httptest.NewRequest(http.MethodGet, "/books/all", nil)
	req.Header.Set("HX-Request", "true")

	w := httptest.NewRecorder()
	rn.Page(w, req, http.StatusOK, "browse", &PageData{
		Title: "Browse Books",
		Data: map[string]any{
			"Category": "all",
			"Books":    []models.Book{sampleBook()},
		},
	})

	body := w.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") || strings.Contains(body, "<head>") {
		t.Error("HTMX partial should not contain the layout")
	}
	if !strings.Contains(body, `id="results"`) {
		t.Error("HTMX partial should contain the results container")
	}
	if !strings.Contains(body, "Dune") {
		t.Error("HTMX partial should contain the book card")
	}
}

func TestHistoryRestoreRendersFullPage(t *testing.T) {
	rn := mustNew(t, false)

	req := httptest.NewRequest(http.MethodGet, "/books/all?q=dune", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-History-Restore-Request", "true")

	w := httptest.NewRecorder()
	rn.Page(w, req, http.StatusOK, "browse", &PageData{
		Title: "Browse Books",
		Data:  map[string]any{"Category": "all", "Search": "dune"},
	})

	body := w.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("history restore should render the full page")
	}
	if !strings.Contains(body, "Main navigation") {
		t.Error("history restore should include the navbar")
	}
}

func TestLayoutDisablesHTMXIndicatorStyles(t *testing.T) {
	rn := mustNew(t, false)

	w := httptest.NewRecorder()
	rn.Page(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "home", &PageData{Title: "Home"})

	// htmx would otherwise inject a <style> element the CSP blocks.
	if !strings.Contains(w.Body.String(), `<meta name="htmx-config" content='{"includeIndicatorStyles":false}'>`) {
		t.Error("layout should disable htmx indicator styles")
	}
}

func TestBrowseEmptyResults(t *testing.T) {
	rn := mustNew(t, false)

	w := httptest.NewRecorder()
	rn.Page(w, httptest.NewRequest(http.MethodGet, "/books/fiction?q=zzz", nil), http.StatusOK, "browse", &PageData{
		Title: "Browse Books",
		Data:  map[string]any{"Category": "fiction", "Search": "zzz"},
	})

	body := w.Body.String()
	if !strings.Contains(body, "No books found.") {
		t.Error("expected empty-state message")
	}
	if !strings.Contains(body, "Books - Fiction") {
		t.Error("expected capitalized category heading")
	}
	if !strings.Contains(body, `value="zzz"`) {
		t.Error("search box should keep the query")
	}
}

// --------------------------------------------------------------------------
// TestStandaloneNotFound — the 404 page renders without the layout
// --------------------------------------------------------------------------

func TestStandaloneNotFound(t *testing.T) {
	rn := mustNew(t, false)

	for _, htmx := range []bool{false, true} {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		if htmx {
			req.Header.Set("HX-Request", "true")
		}
		w := httptest.NewRecorder()
		rn.Page(w, req, http.StatusNotFound, "not_found", &PageData{Title: "Page Not Found"})

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, "404 - Page Not Found") {
			t.Error("missing not-found heading")
		}
		if !strings.Contains(body, "<code>/nope</code>") {
			t.Error("not-found page should echo the request path")
		}
		if strings.Contains(body, "navbar") {
			t.Error("not-found page should not include the navbar")
		}
	}
}

func TestAddBookFormErrors(t *testing.T) {
	rn := mustNew(t, false)

	req := httptest.NewRequest(http.MethodGet, "/add-book", nil)
	req = req.WithContext(middleware.WithCSRFToken(req.Context(), "tok-123"))

	w := httptest.NewRecorder()
	rn.Page(w, req, http.StatusUnprocessableEntity, "add_book", &PageData{
		Title: "Add Book",
		Data: map[string]any{
			"Categories": models.Categories,
			"Form":       struct{ Title, Author, Category, Description, Rating string }{Title: "Dune", Category: "Sci-Fi", Rating: "9"},
			"Errors":     map[string]string{"rating": "Rating must be a number between 1 and 5"},
		},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`name="csrf_token" value="tok-123"`,
		`value="Dune"`,
		`<option value="Sci-Fi" selected>`,
		"Rating must be a number between 1 and 5",
		"is-invalid",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("add-book form should contain %q", want)
		}
	}
}

func TestPageUnknownTemplate(t *testing.T) {
	rn := mustNew(t, false)

	w := httptest.NewRecorder()
	rn.Page(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", &PageData{})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 100, "short"},
		{strings.Repeat("a", 100), 100, strings.Repeat("a", 100)},
		{strings.Repeat("a", 101), 100, strings.Repeat("a", 100) + "..."},
		{"héllo wörld", 5, "héllo..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatRating(t *testing.T) {
	tests := map[float64]string{4.6: "4.6", 5: "5.0", 1: "1.0"}
	for in, want := range tests {
		if got := FormatRating(in); got != want {
			t.Errorf("FormatRating(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{"fiction": "Fiction", "sci-fi": "Sci-fi", "": "", "all": "All"}
	for in, want := range tests {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBookDescriptionShownVerbatim(t *testing.T) {
	rn := mustNew(t, false)

	book := sampleBook()
	book.Description = "Covers the <table> element and uses *stars* in C:\\dir\\_name.\nSecond line."

	w := httptest.NewRecorder()
	rn.Page(w, httptest.NewRequest(http.MethodGet, "/book/b-1", nil), http.StatusOK, "book", &PageData{
		Title: book.Title,
		Data:  map[string]any{"Book": book},
	})

	body := w.Body.String()
	want := "Covers the &lt;table&gt; element and uses *stars* in C:\\dir\\_name.<br>Second line."
	if !strings.Contains(body, want) {
		t.Errorf("description should appear escaped and otherwise unchanged, want %q in body", want)
	}
	if strings.Contains(body, "<table>") {
		t.Error("description markup must be escaped")
	}
}

func TestLines(t *testing.T) {
	tests := map[string][]string{
		"one":      {"one"},
		"a\nb":     {"a", "b"},
		"a\r\nb\n": {"a", "b", ""},
		"":         {""},
	}
	for in, want := range tests {
		got := lines(in)
		if strings.Join(got, "|") != strings.Join(want, "|") || len(got) != len(want) {
			t.Errorf("lines(%q) = %q, want %q", in, got, want)
		}
	}
}
