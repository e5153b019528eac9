package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroceryList is the aggregated shopping output for a set of recipes. It is
// created once with all of its items and never mutated afterward.
type GroceryList struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []GroceryListItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

func (g *GroceryList) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GroceryListItem is one fully-aggregated row, one per (ingredient, unit) pair
// present in the source recipes.
type GroceryListItem struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	GroceryListID uuid.UUID  `gorm:"type:uuid;not null;index" json:"grocery_list_id"`
	IngredientID  uuid.UUID  `gorm:"type:uuid;not null" json:"ingredient_id"`
	Quantity      float64    `gorm:"not null" json:"quantity"`
	Unit          Unit       `gorm:"size:20;not null" json:"unit"`
	Ingredient    Ingredient `json:"ingredient"`
}

func (gi *GroceryListItem) BeforeCreate(tx *gorm.DB) error {
	if gi.ID == uuid.Nil {
		gi.ID = uuid.New()
	}
	return nil
}
