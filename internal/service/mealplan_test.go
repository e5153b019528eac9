package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/pageza/mealforge/internal/models"
	"github.com/pageza/mealforge/internal/types"
)

// mockLLMService is a hand-rolled LLM double; GenerateFunc decides the
// behavior per test.
type mockLLMService struct {
	GenerateFunc func(ctx context.Context, req types.MealPlanRequest) ([]types.RecipeDraft, error)
	calls        []types.MealPlanRequest
}

func (m *mockLLMService) GenerateMealPlan(ctx context.Context, req types.MealPlanRequest) ([]types.RecipeDraft, error) {
	m.calls = append(m.calls, req)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return nil, errors.New("unexpected LLM call")
}

// generateDrafts returns n simple drafts named Generated 1..n.
func generateDrafts(n int) []types.RecipeDraft {
	drafts := make([]types.RecipeDraft, 0, n)
	for i := 1; i <= n; i++ {
		drafts = append(drafts, types.RecipeDraft{
			Name:                fmt.Sprintf("Generated %d", i),
			CookingInstructions: "Cook it.",
			PrepTime:            10,
			CookTime:            20,
			Ingredients: []types.DraftIngredient{
				{Name: fmt.Sprintf("ingredient %d", i), Quantity: 1, Unit: "each"},
			},
		})
	}
	return drafts
}

func newPlanner(env *testEnv, llm LLMServiceInterface, seed int64) *MealPlanService {
	rng := rand.New(rand.NewSource(seed))
	return NewMealPlanService(env.recipes, env.grocery, llm, rng, zap.NewNop())
}

func TestAssembleUsesExistingRecipesOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		env.seedRecipe(t, fmt.Sprintf("Stored %d", i), 5, 20,
			testIngredient{"rice", 1, models.UnitCup})
	}

	llm := &mockLLMService{}
	planner := newPlanner(env, llm, 1)

	resp, err := planner.Assemble(ctx, types.MealPlanRequest{NumMeals: 3}, true, true)
	require.NoError(t, err)

	assert.Len(t, resp.Recipes, 3)
	assert.Empty(t, llm.calls, "no LLM call when the store covers the request")
	require.NotNil(t, resp.GroceryListID)

	list, err := env.grocery.GetList(ctx, *resp.GroceryListID)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.InDelta(t, 3.0, list.Items[0].Quantity, 1e-9)
}

func TestAssembleNeverExceedsRequestedMeals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seeded := make(map[uuid.UUID]bool)
	for i := 0; i < 6; i++ {
		r := env.seedRecipe(t, fmt.Sprintf("Stored %d", i), 5, 20,
			testIngredient{"rice", 1, models.UnitCup})
		seeded[r.ID] = true
	}

	planner := newPlanner(env, &mockLLMService{}, 42)

	resp, err := planner.Assemble(ctx, types.MealPlanRequest{NumMeals: 2}, false, true)
	require.NoError(t, err)

	require.Len(t, resp.Recipes, 2)
	for _, r := range resp.Recipes {
		assert.True(t, seeded[r.ID], "every selected recipe comes from the pool")
	}
	assert.Nil(t, resp.GroceryListID)
}

func TestAssembleSamplingIsDeterministicPerSeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		env.seedRecipe(t, fmt.Sprintf("Stored %d", i), 5, 20,
			testIngredient{"rice", 1, models.UnitCup})
	}

	first, err := newPlanner(env, &mockLLMService{}, 7).
		Assemble(ctx, types.MealPlanRequest{NumMeals: 2}, false, true)
	require.NoError(t, err)

	second, err := newPlanner(env, &mockLLMService{}, 7).
		Assemble(ctx, types.MealPlanRequest{NumMeals: 2}, false, true)
	require.NoError(t, err)

	require.Len(t, second.Recipes, 2)
	assert.Equal(t, first.Recipes[0].ID, second.Recipes[0].ID)
	assert.Equal(t, first.Recipes[1].ID, second.Recipes[1].ID)
}

func TestAssembleBackfillsShortfallFromLLM(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	existing := env.seedRecipe(t, "Stored", 5, 20, testIngredient{"rice", 1, models.UnitCup})

	llm := &mockLLMService{
		GenerateFunc: func(ctx context.Context, req types.MealPlanRequest) ([]types.RecipeDraft, error) {
			return generateDrafts(req.NumMeals), nil
		},
	}
	planner := newPlanner(env, llm, 1)

	resp, err := planner.Assemble(ctx, types.MealPlanRequest{NumMeals: 3}, true, true)
	require.NoError(t, err)

	require.Len(t, resp.Recipes, 3)
	// Existing recipes come first, generated ones after.
	assert.Equal(t, existing.ID, resp.Recipes[0].ID)
	assert.Equal(t, "Generated 1", resp.Recipes[1].Name)
	assert.Equal(t, "Generated 2", resp.Recipes[2].Name)

	// The LLM was asked only for the shortfall.
	require.Len(t, llm.calls, 1)
	assert.Equal(t, 2, llm.calls[0].NumMeals)

	// Generated recipes were persisted and feed the grocery list.
	var count int64
	require.NoError(t, env.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
	require.NotNil(t, resp.GroceryListID)
}

func TestAssembleCapsOverReturningGenerator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedRecipe(t, "Stored", 5, 20, testIngredient{"rice", 1, models.UnitCup})

	// The model ignores the requested count and returns two extra drafts.
	llm := &mockLLMService{
		GenerateFunc: func(ctx context.Context, req types.MealPlanRequest) ([]types.RecipeDraft, error) {
			return generateDrafts(req.NumMeals + 2), nil
		},
	}
	planner := newPlanner(env, llm, 1)

	resp, err := planner.Assemble(ctx, types.MealPlanRequest{NumMeals: 2}, false, true)
	require.NoError(t, err)

	require.Len(t, resp.Recipes, 2)

	// Only the drafts that fit the plan are persisted.
	var count int64
	require.NoError(t, env.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAssembleSkipsStoreWhenNotPreferringExisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	stored := env.seedRecipe(t, "Stored", 5, 20, testIngredient{"rice", 1, models.UnitCup})

	llm := &mockLLMService{
		GenerateFunc: func(ctx context.Context, req types.MealPlanRequest) ([]types.RecipeDraft, error) {
			return generateDrafts(req.NumMeals), nil
		},
	}
	planner := newPlanner(env, llm, 1)

	resp, err := planner.Assemble(ctx, types.MealPlanRequest{NumMeals: 2}, false, false)
	require.NoError(t, err)

	require.Len(t, resp.Recipes, 2)
	for _, r := range resp.Recipes {
		assert.NotEqual(t, stored.ID, r.ID, "no existing recipe may be selected")
	}
	require.Len(t, llm.calls, 1)
	assert.Equal(t, 2, llm.calls[0].NumMeals)
}

func TestAssembleAppliesTimeBudgetToExistingRecipes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	quick := env.seedRecipe(t, "Quick", 5, 10, testIngredient{"rice", 1, models.UnitCup})
	env.seedRecipe(t, "Slow", 30, 90, testIngredient{"rice", 1, models.UnitCup})

	llm := &mockLLMService{
		GenerateFunc: func(ctx context.Context, req types.MealPlanRequest) ([]types.RecipeDraft, error) {
			return generateDrafts(req.NumMeals), nil
		},
	}
	planner := newPlanner(env, llm, 1)

	// Budget of 60 minutes over 2 meals: 30 per recipe, only Quick fits.
	resp, err := planner.Assemble(ctx, types.MealPlanRequest{NumMeals: 2, TotalTimeMinutes: 60}, false, true)
	require.NoError(t, err)

	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, quick.ID, resp.Recipes[0].ID)
	maxPerRecipe := 60 / 2
	assert.LessOrEqual(t, resp.Recipes[0].TotalTime(), maxPerRecipe)

	// The derived LLM request carries the original constraint fields.
	require.Len(t, llm.calls, 1)
	assert.Equal(t, 1, llm.calls[0].NumMeals)
	assert.Equal(t, 60, llm.calls[0].TotalTimeMinutes)
}

func TestAssemblePrefersPreferredIngredientSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tomato := env.seedRecipe(t, "Tomato Salad", 5, 0, testIngredient{"tomato", 2, models.UnitEach})
	env.seedRecipe(t, "Porridge", 5, 10, testIngredient{"oats", 1, models.UnitCup})

	llm := &mockLLMService{
		GenerateFunc: func(ctx context.Context, req types.MealPlanRequest) ([]types.RecipeDraft, error) {
			return generateDrafts(req.NumMeals), nil
		},
	}
	planner := newPlanner(env, llm, 1)

	resp, err := planner.Assemble(ctx, types.MealPlanRequest{
		NumMeals:             2,
		PreferredIngredients: []string{"tomato"},
	}, false, true)
	require.NoError(t, err)

	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, tomato.ID, resp.Recipes[0].ID)
	assert.Equal(t, "Generated 1", resp.Recipes[1].Name)
}

func TestAssembleFailsWholeOperationOnLLMError(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	llm := &mockLLMService{
		GenerateFunc: func(ctx context.Context, req types.MealPlanRequest) ([]types.RecipeDraft, error) {
			return nil, &types.ContentError{Reason: "gibberish from model"}
		},
	}
	planner := newPlanner(env, llm, 1)

	_, err := planner.Assemble(ctx, types.MealPlanRequest{NumMeals: 2}, true, true)
	require.Error(t, err)

	var contentErr *types.ContentError
	assert.True(t, errors.As(err, &contentErr), "content errors stay identifiable through wrapping")

	// No partial state: no recipes, no grocery lists.
	var recipes, lists int64
	require.NoError(t, env.db.Model(&models.Recipe{}).Count(&recipes).Error)
	require.NoError(t, env.db.Model(&models.GroceryList{}).Count(&lists).Error)
	assert.Zero(t, recipes)
	assert.Zero(t, lists)
}

func TestAssembleRejectsInvalidMealCount(t *testing.T) {
	env := newTestEnv(t)

	planner := newPlanner(env, &mockLLMService{}, 1)

	_, err := planner.Assemble(context.Background(), types.MealPlanRequest{NumMeals: 0}, true, true)
	assert.ErrorIs(t, err, types.ErrInvalidMealCount)
}
