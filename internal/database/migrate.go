package database

import (
	"gorm.io/gorm"

	"github.com/pageza/mealforge/internal/models"
)

// Migrate runs the schema migration for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.GroceryList{},
		&models.GroceryListItem{},
	)
}
