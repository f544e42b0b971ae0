// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"onlinelibrary/internal/catalog"
	"onlinelibrary/internal/metrics"
	"onlinelibrary/internal/models"
	"onlinelibrary/internal/render"
	"onlinelibrary/internal/slug"
)

// BookStore is the part of the catalog store the pages need. Handlers
// never modify records except through Add.
type BookStore interface {
	All() []models.Book
	Find(id string) (models.Book, bool)
	Add(candidate models.Book) models.Book
	Len() int
}

// Library groups the handlers for the library pages.
type Library struct {
	renderer *render.Renderer
	books    BookStore
}

// NewLibrary creates a new Library handler group.
func NewLibrary(renderer *render.Renderer, books BookStore) *Library {
	return &Library{renderer: renderer, books: books}
}

// Home renders the landing page: category shortcuts and the most popular
// books by rating.
func (l *Library) Home(w http.ResponseWriter, r *http.Request) {
	l.renderer.Page(w, r, http.StatusOK, "home", &render.PageData{
		Title:   "Home",
		Section: "home",
		Data: map[string]any{
			"Categories": models.Categories,
			"Popular":    catalog.Popular(l.books.All(), catalog.PopularLimit),
		},
	})
}

// Browse lists the books of one category ("all" for every category),
// narrowed by the optional "q" search parameter. A category slug that no
// record carries redirects to the unfiltered listing.
func (l *Library) Browse(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	books := l.books.All()

	if !catalog.HasCategory(books, category) {
		metrics.RedirectedCategories.Inc()
		slog.Debug("unknown category, showing all books", "category", category)
		http.Redirect(w, r, "/books/"+slug.All, http.StatusFound)
		return
	}

	search := r.URL.Query().Get("q")
	l.renderer.Page(w, r, http.StatusOK, "browse", &render.PageData{
		Title:   "Browse Books",
		Section: "browse",
		Data: map[string]any{
			"Category": category,
			"Search":   search,
			"Books":    catalog.Filter(books, category, search),
		},
	})
}

// Book renders one record in full, or a "not found" view with a way back
// when the id is unknown.
func (l *Library) Book(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	book, ok := l.books.Find(id)
	if !ok {
		l.renderer.Page(w, r, http.StatusNotFound, "book_not_found", &render.PageData{
			Title: "Book Not Found",
			Data:  map[string]any{"ID": id},
		})
		return
	}

	l.renderer.Page(w, r, http.StatusOK, "book", &render.PageData{
		Title: book.Title,
		Data:  map[string]any{"Book": book},
	})
}

// AddBookPage renders an empty add-book form.
func (l *Library) AddBookPage(w http.ResponseWriter, r *http.Request) {
	l.renderAddForm(w, r, http.StatusOK, catalog.BookForm{}, catalog.FieldErrors{})
}

// AddBookSubmit validates the add-book form. Valid input is added to the
// catalog and the client is sent to the full listing; invalid input
// re-renders the form with the trimmed entered values and every field
// message.
func (l *Library) AddBookSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := catalog.BookForm{
		Title:       r.PostForm.Get("title"),
		Author:      r.PostForm.Get("author"),
		Category:    r.PostForm.Get("category"),
		Description: r.PostForm.Get("description"),
		Rating:      r.PostForm.Get("rating"),
	}

	book, errs := form.Validate()
	if errs != nil {
		for field := range errs {
			metrics.ValidationFailures.WithLabelValues(field).Inc()
		}
		slog.Debug("add book rejected", "errors", errs.Error())
		l.renderAddForm(w, r, http.StatusUnprocessableEntity, form.Trimmed(), errs)
		return
	}

	added := l.books.Add(book)
	metrics.BooksAdded.Inc()
	metrics.CatalogBooks.Set(float64(l.books.Len()))
	slog.Info("book added",
		"id", added.ID,
		"title", added.Title,
		"category", added.Category,
	)

	http.Redirect(w, r, "/books/"+slug.All, http.StatusSeeOther)
}

// NotFound renders the standalone 404 page, without the navigation bar.
func (l *Library) NotFound(w http.ResponseWriter, r *http.Request) {
	l.renderer.Page(w, r, http.StatusNotFound, "not_found", &render.PageData{
		Title: "Page Not Found",
	})
}

func (l *Library) renderAddForm(w http.ResponseWriter, r *http.Request, status int, form catalog.BookForm, errs catalog.FieldErrors) {
	l.renderer.Page(w, r, status, "add_book", &render.PageData{
		Title:   "Add Book",
		Section: "add",
		Data: map[string]any{
			"Categories": models.Categories,
			"Form":       form,
			"Errors":     errs,
		},
	})
}
