package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealforge/internal/models"
	"github.com/pageza/mealforge/internal/types"
)

// LLMServiceInterface is the language-model capability consumed by the meal
// plan assembler: it accepts constraints and returns draft recipes.
type LLMServiceInterface interface {
	GenerateMealPlan(ctx context.Context, req types.MealPlanRequest) ([]types.RecipeDraft, error)
}

// ScraperServiceInterface converts a URL into a draft recipe's raw parts.
type ScraperServiceInterface interface {
	Fetch(ctx context.Context, url string) (*types.ScrapedRecipe, error)
}

// IIngredientService resolves ingredient names to canonical records.
type IIngredientService interface {
	ResolveOrCreate(tx *gorm.DB, name string) (*models.Ingredient, error)
}

// IRecipeService defines the recipe store operations.
type IRecipeService interface {
	CreateFromDraft(ctx context.Context, draft *types.RecipeDraft) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, limit int) ([]models.Recipe, error)
	SearchByIngredients(ctx context.Context, names []string, maxTimeMinutes, limit int) ([]models.Recipe, error)
	ImportFromURL(ctx context.Context, url string) (*models.Recipe, error)
}

// IGroceryService defines ingredient aggregation and grocery list operations.
type IGroceryService interface {
	Aggregate(ctx context.Context, recipeIDs []uuid.UUID) ([]AggregatedItem, error)
	BuildList(ctx context.Context, recipeIDs []uuid.UUID) (*models.GroceryList, error)
	GetList(ctx context.Context, id uuid.UUID) (*models.GroceryList, error)
}

// IMealPlanService defines the meal plan assembler.
type IMealPlanService interface {
	Assemble(ctx context.Context, req types.MealPlanRequest, createGroceryList, preferExisting bool) (*types.MealPlanResponse, error)
}
