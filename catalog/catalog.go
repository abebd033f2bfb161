package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"aws-sap-quiz/models"
	"aws-sap-quiz/utils"
)

//go:embed data/questions.json
var questionData []byte

//go:embed data/documents.json
var documentData []byte

var ErrNotFound = errors.New("category not found")

var validate = validator.New()

// Catalog is the read-only source of quiz categories and study documents.
// It is fully loaded up front; nothing mutates it after construction.
type Catalog struct {
	categories map[string]*models.Category
	order      []string
	documents  []models.Document
}

// Load parses and validates the embedded content data.
func Load() (*Catalog, error) {
	var categories []models.Category
	if err := json.Unmarshal(questionData, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse question data: %w", err)
	}

	var documents []models.Document
	if err := json.Unmarshal(documentData, &documents); err != nil {
		return nil, fmt.Errorf("failed to parse document index: %w", err)
	}

	catalog, err := New(categories)
	if err != nil {
		return nil, err
	}
	catalog.documents = documents

	utils.LogStartup("Catalog loaded: %d categories, %d documents", len(catalog.order), len(documents))
	return catalog, nil
}

// New builds a catalog from caller-supplied categories, validating each one.
// Category order is preserved as the presentation order.
func New(categories []models.Category) (*Catalog, error) {
	catalog := &Catalog{
		categories: make(map[string]*models.Category, len(categories)),
	}

	for i := range categories {
		category := categories[i]
		if err := validate.Struct(&category); err != nil {
			return nil, fmt.Errorf("invalid category %q: %w", category.ID, err)
		}
		if _, exists := catalog.categories[category.ID]; exists {
			return nil, fmt.Errorf("duplicate category id %q", category.ID)
		}
		catalog.categories[category.ID] = &category
		catalog.order = append(catalog.order, category.ID)
		utils.LogDebug("Validated category %q: %d questions", category.ID, len(category.Questions))
	}

	return catalog, nil
}

// GetCategory returns the category with the given id.
func (c *Catalog) GetCategory(id string) (*models.Category, error) {
	category, ok := c.categories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return category, nil
}

// ListCategoryIDs returns every category id in catalog order.
func (c *Catalog) ListCategoryIDs() []string {
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	return ids
}

// TotalQuestions reports the question count for a category, 0 if unknown.
func (c *Catalog) TotalQuestions(id string) int {
	category, ok := c.categories[id]
	if !ok {
		return 0
	}
	return len(category.Questions)
}

// SearchDocuments filters the study-document index by a case-insensitive
// substring match on title and category. An empty query returns everything.
func (c *Catalog) SearchDocuments(query string) []models.Document {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		results := make([]models.Document, len(c.documents))
		copy(results, c.documents)
		return results
	}

	var results []models.Document
	for _, doc := range c.documents {
		if strings.Contains(strings.ToLower(doc.Title), query) ||
			strings.Contains(strings.ToLower(doc.Category), query) {
			results = append(results, doc)
		}
	}
	return results
}
