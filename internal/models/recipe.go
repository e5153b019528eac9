package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is a named dish with instructions, timing and a set of ingredient
// links. PrepTime and Servings are optional and default to zero; CookTime is
// required.
type Recipe struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	DeletedAt           gorm.DeletedAt     `gorm:"index" json:"-"`
	Name                string             `gorm:"size:255;not null" json:"name"`
	PrepInstructions    string             `gorm:"type:text" json:"prep_instructions"`
	CookingInstructions string             `gorm:"type:text;not null" json:"cooking_instructions"`
	PrepTime            int                `json:"prep_time"` // minutes
	CookTime            int                `gorm:"not null" json:"cook_time"` // minutes
	Servings            int                `json:"servings"`
	ImageURL            string             `gorm:"size:255" json:"image_url"`
	Ingredients         []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TotalTime is the combined preparation and cooking time in minutes.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// RecipeIngredient links a recipe to one ingredient with a quantity and unit.
// The same ingredient may appear under different units; there is no dedup
// across units.
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID  `gorm:"type:uuid;not null" json:"ingredient_id"`
	Quantity     float64    `gorm:"not null" json:"quantity"`
	Unit         Unit       `gorm:"size:20;not null" json:"unit"`
	Ingredient   Ingredient `json:"ingredient"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
