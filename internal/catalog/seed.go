package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"onlinelibrary/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedBooks decodes the embedded sample records. The returned records carry
// no ids; the store assigns them.
func SeedBooks() ([]models.Book, error) {
	var books []models.Book
	if err := yaml.Unmarshal(seedYAML, &books); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	for i := range books {
		books[i].ID = ""
	}
	return books, nil
}
