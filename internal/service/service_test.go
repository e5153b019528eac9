package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealforge/internal/models"
	"github.com/pageza/mealforge/internal/testdb"
	"github.com/pageza/mealforge/internal/types"
)

type testEnv struct {
	db      *gorm.DB
	recipes *RecipeService
	grocery *GroceryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testdb.Setup(t)
	logger := zap.NewNop()
	recipes := NewRecipeService(db, NewIngredientService(), nil, logger)
	grocery := NewGroceryService(db, nil, logger)
	return &testEnv{db: db, recipes: recipes, grocery: grocery}
}

type testIngredient struct {
	name     string
	quantity float64
	unit     models.Unit
}

func (e *testEnv) seedRecipe(t *testing.T, name string, prepTime, cookTime int, ingredients ...testIngredient) *models.Recipe {
	t.Helper()
	draft := &types.RecipeDraft{
		Name:                name,
		CookingInstructions: "Cook everything.",
		PrepTime:            prepTime,
		CookTime:            cookTime,
	}
	for _, ing := range ingredients {
		draft.Ingredients = append(draft.Ingredients, types.DraftIngredient{
			Name:     ing.name,
			Quantity: ing.quantity,
			Unit:     string(ing.unit),
		})
	}
	recipe, err := e.recipes.CreateFromDraft(context.Background(), draft)
	require.NoError(t, err)
	return recipe
}
