package types

import (
	"github.com/google/uuid"

	"github.com/pageza/mealforge/internal/models"
)

// MealPlanRequest carries the constraints for generating a meal plan. All
// fields except NumMeals are optional hints for recipe search and generation.
type MealPlanRequest struct {
	NumMeals             int      `json:"num_meals" binding:"required,min=1,max=20"`
	TotalTimeMinutes     int      `json:"total_time_minutes"` // 0 means unbounded
	PreferredIngredients []string `json:"preferred_ingredients"`
	DietaryRestrictions  []string `json:"dietary_restrictions"`
	CuisinePreferences   []string `json:"cuisine_preferences"`
}

// MealPlanResponse is the result of assembling a meal plan: the selected
// recipes (existing first, then generated) and the grocery list built from
// them, if one was requested and at least one recipe was selected.
type MealPlanResponse struct {
	Recipes       []models.Recipe `json:"recipes"`
	GroceryListID *uuid.UUID      `json:"grocery_list_id,omitempty"`
}
