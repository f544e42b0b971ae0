package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() BookForm {
	return BookForm{
		Title:       "Neuromancer",
		Author:      "William Gibson",
		Category:    "Sci-Fi",
		Description: "The sky above the port was the color of television.",
		Rating:      "4.2",
	}
}

func TestBookFormValidateSuccess(t *testing.T) {
	f := validForm()
	f.Title = "  Neuromancer  "
	f.Rating = " 4.2 "

	book, errs := f.Validate()
	require.Nil(t, errs)
	assert.Equal(t, "Neuromancer", book.Title)
	assert.Equal(t, "William Gibson", book.Author)
	assert.Equal(t, "Sci-Fi", book.Category)
	assert.InDelta(t, 4.2, book.Rating, 1e-9)
	assert.Empty(t, book.ID, "ids are assigned by the store")
}

func TestBookFormValidateRating(t *testing.T) {
	tests := []struct {
		name    string
		rating  string
		wantErr string
	}{
		{"lower bound", "1", ""},
		{"upper bound", "5", ""},
		{"one decimal", "3.5", ""},
		{"trailing zero", "5.0", ""},
		{"above range", "6", "Rating must be a number between 1 and 5"},
		{"just above", "5.01", "Rating must be a number between 1 and 5"},
		{"below range", "0.9", "Rating must be a number between 1 and 5"},
		{"negative", "-3", "Rating must be a number between 1 and 5"},
		{"not a number", "great", "Rating must be a number between 1 and 5"},
		{"NaN", "NaN", "Rating must be a number between 1 and 5"},
		{"infinity", "Inf", "Rating must be a number between 1 and 5"},
		{"exponent", "4e0", ""},
		{"explicit sign", "+4.5", ""},
		{"hex float", "0x1p2", "Rating must be a number between 1 and 5"},
		{"hex upper", "0X4", "Rating must be a number between 1 and 5"},
		{"digit separator", "0x_4", "Rating must be a number between 1 and 5"},
		{"trailing text", "4 stars", "Rating must be a number between 1 and 5"},
		{"empty", "", "Rating is required"},
		{"whitespace", "   ", "Rating is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.Rating = tt.rating

			_, errs := f.Validate()
			if tt.wantErr == "" {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			assert.Equal(t, tt.wantErr, errs["rating"])
			assert.Len(t, errs, 1)
		})
	}
}

func TestBookFormValidateCollectsAllErrors(t *testing.T) {
	f := BookForm{Title: "   ", Rating: "9"}

	book, errs := f.Validate()
	assert.Zero(t, book)
	assert.Equal(t, FieldErrors{
		"title":       "Title is required",
		"author":      "Author is required",
		"category":    "Category is required",
		"description": "Description is required",
		"rating":      "Rating must be a number between 1 and 5",
	}, errs)
}

func TestBookFormValidateCategory(t *testing.T) {
	f := validForm()
	f.Category = "Poetry"

	_, errs := f.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "Category must be one of the listed categories", errs["category"])

	f.Category = "sci-fi"
	_, errs = f.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "category")
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{"rating": "bad", "author": "missing"}
	assert.Equal(t, "invalid book: author: missing; rating: bad", errs.Error())

	var err error = errs
	assert.Error(t, err)

	assert.Equal(t, "", FieldErrors{}.Error())
	assert.Equal(t, "", FieldErrors(nil).Error())
}

func TestBookFormTrimmed(t *testing.T) {
	f := BookForm{Title: " a ", Author: "\tb\n", Category: " Fiction", Description: "d ", Rating: " 2 "}
	assert.Equal(t, BookForm{Title: "a", Author: "b", Category: "Fiction", Description: "d", Rating: "2"}, f.Trimmed())
}
