package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealforge/internal/models"
	"github.com/pageza/mealforge/internal/types"
)

// MealPlanService assembles meal plans: it fills the requested number of
// recipes from the store first, backfills any shortfall through the LLM
// capability and optionally builds a grocery list for the selection.
type MealPlanService struct {
	recipes IRecipeService
	grocery IGroceryService
	llm     LLMServiceInterface
	logger  *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMealPlanService creates a new MealPlanService instance. The randomness
// source drives the existing-recipe sampling; passing nil seeds one from the
// current time.
func NewMealPlanService(recipes IRecipeService, grocery IGroceryService, llm LLMServiceInterface, rng *rand.Rand, logger *zap.Logger) *MealPlanService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MealPlanService{
		recipes: recipes,
		grocery: grocery,
		llm:     llm,
		rng:     rng,
		logger:  logger,
	}
}

// Assemble builds a meal plan for the request. With preferExisting, stored
// recipes matching the constraints are sampled first; the remainder is
// generated by the LLM and persisted. With createGroceryList, a grocery list
// is built from every selected recipe. An LLM failure aborts the whole
// operation; no partial plan is returned.
func (s *MealPlanService) Assemble(ctx context.Context, req types.MealPlanRequest, createGroceryList, preferExisting bool) (*types.MealPlanResponse, error) {
	if req.NumMeals < 1 {
		return nil, types.ErrInvalidMealCount
	}

	maxTimePerRecipe := 0
	if req.TotalTimeMinutes > 0 {
		maxTimePerRecipe = req.TotalTimeMinutes / req.NumMeals
	}

	var selected []models.Recipe
	if preferExisting {
		candidates, err := s.findCandidates(ctx, req, maxTimePerRecipe)
		if err != nil {
			return nil, err
		}
		selected = s.sample(candidates, req.NumMeals)
	}

	recipeIDs := make([]uuid.UUID, 0, req.NumMeals)
	for _, r := range selected {
		recipeIDs = append(recipeIDs, r.ID)
	}

	remaining := req.NumMeals - len(selected)
	if remaining > 0 {
		llmReq := req
		llmReq.NumMeals = remaining

		drafts, err := s.llm.GenerateMealPlan(ctx, llmReq)
		if err != nil {
			return nil, fmt.Errorf("meal plan generation failed: %w", err)
		}
		// The model may return more drafts than asked; never exceed the
		// requested number of meals.
		if len(drafts) > remaining {
			drafts = drafts[:remaining]
		}

		for i := range drafts {
			created, err := s.recipes.CreateFromDraft(ctx, &drafts[i])
			if err != nil {
				return nil, fmt.Errorf("failed to persist generated recipe %q: %w", drafts[i].Name, err)
			}
			selected = append(selected, *created)
			recipeIDs = append(recipeIDs, created.ID)
		}
	}

	resp := &types.MealPlanResponse{Recipes: selected}

	if createGroceryList && len(recipeIDs) > 0 {
		list, err := s.grocery.BuildList(ctx, recipeIDs)
		if err != nil {
			return nil, err
		}
		resp.GroceryListID = &list.ID
	}

	s.logger.Info("meal plan assembled",
		zap.Int("requested", req.NumMeals),
		zap.Int("existing", req.NumMeals-remaining),
		zap.Int("generated", max(remaining, 0)),
		zap.Bool("grocery_list", resp.GroceryListID != nil))

	return resp, nil
}

// findCandidates queries the store for up to 2x the requested meals for
// variety, filtered by the per-recipe time budget when one applies.
func (s *MealPlanService) findCandidates(ctx context.Context, req types.MealPlanRequest, maxTimePerRecipe int) ([]models.Recipe, error) {
	limit := req.NumMeals * 2

	if len(req.PreferredIngredients) > 0 {
		return s.recipes.SearchByIngredients(ctx, req.PreferredIngredients, maxTimePerRecipe, limit)
	}

	recipes, err := s.recipes.ListRecipes(ctx, limit)
	if err != nil {
		return nil, err
	}
	if maxTimePerRecipe <= 0 {
		return recipes, nil
	}
	filtered := recipes[:0]
	for _, r := range recipes {
		if r.TotalTime() <= maxTimePerRecipe {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// sample selects min(len(pool), n) recipes uniformly at random without
// replacement. A pool no larger than n is taken whole.
func (s *MealPlanService) sample(pool []models.Recipe, n int) []models.Recipe {
	if len(pool) <= n {
		return pool
	}
	s.mu.Lock()
	perm := s.rng.Perm(len(pool))
	s.mu.Unlock()

	picked := make([]models.Recipe, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, pool[idx])
	}
	return picked
}
