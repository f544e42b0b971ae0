package catalog

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"onlinelibrary/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Key errors by the HTML form field name rather than the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	validate.RegisterValidation("category", validateCategory)
	validate.RegisterValidation("rating", validateRating)
}

// BookForm carries the raw add-book form input.
type BookForm struct {
	Title       string `form:"title" validate:"required"`
	Author      string `form:"author" validate:"required"`
	Category    string `form:"category" validate:"required,category"`
	Description string `form:"description" validate:"required"`
	Rating      string `form:"rating" validate:"required,rating"`
}

// FieldErrors maps a form field name to the message shown next to it.
type FieldErrors map[string]string

// Error implements error, listing fields in name order. An empty set
// yields "".
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return ""
	}
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "invalid book: " + strings.Join(parts, "; ")
}

// Trimmed returns a copy of the form with surrounding whitespace removed
// from every field.
func (f BookForm) Trimmed() BookForm {
	return BookForm{
		Title:       strings.TrimSpace(f.Title),
		Author:      strings.TrimSpace(f.Author),
		Category:    strings.TrimSpace(f.Category),
		Description: strings.TrimSpace(f.Description),
		Rating:      strings.TrimSpace(f.Rating),
	}
}

// Validate checks every field and returns the record to store. All
// failures are reported together; on failure the returned book is zero.
func (f BookForm) Validate() (models.Book, FieldErrors) {
	t := f.Trimmed()

	if err := validate.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.Book{}, FieldErrors{"form": err.Error()}
		}
		out := make(FieldErrors, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = message(fe)
		}
		return models.Book{}, out
	}

	rating, _ := parseRating(t.Rating)
	return models.Book{
		Title:       t.Title,
		Author:      t.Author,
		Category:    t.Category,
		Description: t.Description,
		Rating:      rating,
	}, nil
}

// message renders the user-facing text for one failed rule.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.StructField())
	case "category":
		return "Category must be one of the listed categories"
	case "rating":
		return fmt.Sprintf("Rating must be a number between %g and %g", models.MinRating, models.MaxRating)
	default:
		return fmt.Sprintf("%s is invalid", fe.StructField())
	}
}

func validateCategory(fl validator.FieldLevel) bool {
	return models.IsKnownCategory(fl.Field().String())
}

func validateRating(fl validator.FieldLevel) bool {
	_, ok := parseRating(fl.Field().String())
	return ok
}

// decimalNumber matches plain decimal notation with an optional exponent.
// strconv.ParseFloat alone would also take hex floats, "Inf" and
// underscore separators.
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseRating parses s and reports whether it lies within the rating bounds.
func parseRating(s string) (float64, bool) {
	if !decimalNumber.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, v >= models.MinRating && v <= models.MaxRating
}
