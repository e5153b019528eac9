package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealforge/internal/models"
	"github.com/pageza/mealforge/internal/parser"
	"github.com/pageza/mealforge/internal/types"
)

// RecipeService handles recipe persistence and search.
type RecipeService struct {
	db          *gorm.DB
	ingredients IIngredientService
	scraper     ScraperServiceInterface
	logger      *zap.Logger
}

// NewRecipeService creates a new RecipeService instance. The scraper may be
// nil when the import-from-URL path is not needed.
func NewRecipeService(db *gorm.DB, ingredients IIngredientService, scraper ScraperServiceInterface, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		db:          db,
		ingredients: ingredients,
		scraper:     scraper,
		logger:      logger,
	}
}

// CreateFromDraft persists a draft recipe with all of its ingredient links in
// a single transaction. Draft ingredients carrying an id are linked as-is;
// the rest are resolved by case-insensitive name, creating new ingredients as
// needed. On any failure nothing is committed.
func (s *RecipeService) CreateFromDraft(ctx context.Context, draft *types.RecipeDraft) (*models.Recipe, error) {
	var recipe models.Recipe

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe = models.Recipe{
			Name:                draft.Name,
			PrepInstructions:    draft.PrepInstructions,
			CookingInstructions: draft.CookingInstructions,
			PrepTime:            draft.PrepTime,
			CookTime:            draft.CookTime,
			Servings:            draft.Servings,
			ImageURL:            draft.ImageURL,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		for _, ing := range draft.Ingredients {
			var ingredient *models.Ingredient
			if ing.ID != nil {
				var found models.Ingredient
				if err := tx.First(&found, "id = ?", *ing.ID).Error; err != nil {
					return fmt.Errorf("ingredient %s not found: %w", *ing.ID, err)
				}
				ingredient = &found
			} else {
				resolved, err := s.ingredients.ResolveOrCreate(tx, ing.Name)
				if err != nil {
					return err
				}
				ingredient = resolved
			}

			link := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredient.ID,
				Quantity:     ing.Quantity,
				Unit:         models.ParseUnit(ing.Unit),
			}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link ingredient %q: %w", ingredient.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("recipe created",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("name", recipe.Name),
		zap.Int("ingredients", len(draft.Ingredients)))

	return s.GetRecipe(ctx, recipe.ID)
}

// GetRecipe retrieves a recipe by id with its ingredient links eagerly loaded
// and ordered by ingredient name.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Ingredients.Ingredient").First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	sortLinksByIngredientName(recipe.Ingredients)
	return &recipe, nil
}

// ListRecipes lists up to limit recipes. A non-positive limit lists all.
func (s *RecipeService) ListRecipes(ctx context.Context, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	query := s.db.WithContext(ctx).Preload("Ingredients.Ingredient").Order("created_at")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// SearchByIngredients finds recipes using any of the given ingredient names
// (case-insensitive exact match). When maxTimeMinutes is positive, only
// recipes whose prep plus cook time fits the budget are returned.
func (s *RecipeService) SearchByIngredients(ctx context.Context, names []string, maxTimeMinutes, limit int) ([]models.Recipe, error) {
	if len(names) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(strings.TrimSpace(n))
	}

	query := s.db.WithContext(ctx).
		Distinct("recipes.*").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("LOWER(ingredients.name) IN ?", lowered)
	if maxTimeMinutes > 0 {
		query = query.Where("recipes.prep_time + recipes.cook_time <= ?", maxTimeMinutes)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []models.Recipe
	if err := query.Model(&models.Recipe{}).Preload("Ingredients.Ingredient").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to search recipes by ingredients: %w", err)
	}
	return recipes, nil
}

// ImportFromURL scrapes a recipe page, feeds its ingredient lines through the
// ingredient parser and persists the result.
func (s *RecipeService) ImportFromURL(ctx context.Context, url string) (*models.Recipe, error) {
	if s.scraper == nil {
		return nil, errors.New("scraper is not configured")
	}

	scraped, err := s.scraper.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	draft := &types.RecipeDraft{
		Name:                scraped.Title,
		CookingInstructions: scraped.Instructions,
		CookTime:            scraped.TotalTime,
	}
	for _, ing := range parser.ParseLines(scraped.IngredientLines) {
		draft.Ingredients = append(draft.Ingredients, types.DraftIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     string(ing.Unit),
		})
	}

	return s.CreateFromDraft(ctx, draft)
}

func sortLinksByIngredientName(links []models.RecipeIngredient) {
	sort.SliceStable(links, func(i, j int) bool {
		return strings.ToLower(links[i].Ingredient.Name) < strings.ToLower(links[j].Ingredient.Name)
	})
}
