package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/mealforge/internal/models"
)

// IngredientService resolves ingredient names to canonical records, creating
// them on first use. Names are matched case-insensitively so "Tomato" and
// "tomato" map to the same ingredient.
type IngredientService struct{}

// NewIngredientService creates a new IngredientService instance.
func NewIngredientService() *IngredientService {
	return &IngredientService{}
}

// ResolveOrCreate returns the ingredient with the given case-insensitive name,
// creating it when absent. It runs on the given handle so callers can keep
// resolution inside their own transaction. A concurrent creator losing the
// race against the lower(name) unique index is resolved by re-fetching.
func (s *IngredientService) ResolveOrCreate(tx *gorm.DB, name string) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("ingredient name is required")
	}

	var ingredient models.Ingredient
	err := tx.Where("LOWER(name) = LOWER(?)", name).First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up ingredient %q: %w", name, err)
	}

	ingredient = models.Ingredient{Name: name}
	if createErr := tx.Create(&ingredient).Error; createErr != nil {
		// Another writer may have created the same name between the lookup
		// and the insert; the unique index rejects the duplicate.
		var existing models.Ingredient
		if refetchErr := tx.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; refetchErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create ingredient %q: %w", name, createErr)
	}
	return &ingredient, nil
}
