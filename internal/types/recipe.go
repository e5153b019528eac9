package types

import "github.com/google/uuid"

// RecipeDraft is an unpersisted recipe, produced by the LLM client, the
// scraper import path, or a direct API create. Ingredient units are free-form
// strings here; they are mapped to the Unit enumeration during persistence.
type RecipeDraft struct {
	Name                string            `json:"name" binding:"required"`
	PrepInstructions    string            `json:"prep_instructions"`
	CookingInstructions string            `json:"cooking_instructions" binding:"required"`
	PrepTime            int               `json:"prep_time"`
	CookTime            int               `json:"cook_time"`
	Servings            int               `json:"servings"`
	ImageURL            string            `json:"image_url"`
	Ingredients         []DraftIngredient `json:"ingredients"`
}

// DraftIngredient is one ingredient line of a draft. When ID is set the
// ingredient is linked as-is; otherwise it is resolved by case-insensitive
// name, creating a new ingredient if none exists.
type DraftIngredient struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	Name     string     `json:"name"`
	Quantity float64    `json:"quantity"`
	Unit     string     `json:"unit"`
}

// ScrapedRecipe is the raw output of the scraping capability. IngredientLines
// are free-text lines to be fed through the ingredient parser.
type ScrapedRecipe struct {
	Title           string   `json:"title"`
	Instructions    string   `json:"instructions"`
	IngredientLines []string `json:"ingredient_lines"`
	TotalTime       int      `json:"total_time"` // minutes, 0 when unknown
	Yields          string   `json:"yields"`
}
