// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog owns the in-memory book collection and the pure functions
// that derive views from it: filtering, popularity ranking and validation of
// the add-book form.
package catalog

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"onlinelibrary/internal/models"
)

// Store holds the ordered book collection, newest first. It is the only
// writer of the collection; readers receive copies.
type Store struct {
	mu    sync.RWMutex
	books []models.Book
	ids   map[string]struct{}
}

// New creates a store seeded with the embedded sample records.
func New() (*Store, error) {
	seed, err := SeedBooks()
	if err != nil {
		return nil, fmt.Errorf("catalog init: %w", err)
	}
	s := FromBooks(seed)
	slog.Debug("catalog seeded", "books", len(seed))
	return s, nil
}

// FromBooks creates a store holding books in the given order. Records
// without an id, or whose id repeats an earlier one, get a fresh id.
func FromBooks(books []models.Book) *Store {
	s := &Store{
		books: make([]models.Book, 0, len(books)),
		ids:   make(map[string]struct{}, len(books)),
	}
	for _, b := range books {
		if _, dup := s.ids[b.ID]; b.ID == "" || dup {
			b.ID = s.newID()
		}
		s.ids[b.ID] = struct{}{}
		s.books = append(s.books, b)
	}
	return s
}

// Add stores a new record at the front of the collection and returns it
// with its generated id. Any id on the candidate is ignored. Add does not
// validate; callers run BookForm.Validate first.
func (s *Store) Add(candidate models.Book) models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate.ID = s.newID()
	s.ids[candidate.ID] = struct{}{}

	// Build a new backing array so snapshots handed out earlier never
	// observe the prepend.
	next := make([]models.Book, 0, len(s.books)+1)
	next = append(next, candidate)
	s.books = append(next, s.books...)

	return candidate
}

// All returns a snapshot of the collection in display order.
func (s *Store) All() []models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.books)
}

// Find returns the record with the given id.
func (s *Store) Find(id string) (models.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.ids[id]; !ok {
		return models.Book{}, false
	}
	for _, b := range s.books {
		if b.ID == id {
			return b, true
		}
	}
	return models.Book{}, false
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// newID returns a UUID not yet used in the collection. Caller holds mu or
// owns s exclusively.
func (s *Store) newID() string {
	for {
		id := uuid.NewString()
		if _, taken := s.ids[id]; !taken {
			return id
		}
	}
}
