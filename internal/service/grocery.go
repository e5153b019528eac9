package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealforge/internal/models"
	"github.com/pageza/mealforge/internal/types"
)

const groceryListCacheTTL = 24 * time.Hour

// AggregatedItem is one row of an ingredient aggregation: the total quantity
// of an ingredient in a single unit across a set of recipes.
type AggregatedItem struct {
	IngredientID uuid.UUID   `json:"ingredient_id"`
	Quantity     float64     `json:"quantity"`
	Unit         models.Unit `json:"unit"`
}

// GroceryService aggregates ingredient quantities across recipes and builds
// grocery lists from the result.
type GroceryService struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

// NewGroceryService creates a new GroceryService instance. The redis client
// may be nil, in which case list caching is disabled.
func NewGroceryService(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *GroceryService {
	return &GroceryService{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}
}

// Aggregate computes the total required quantity per (ingredient, unit) pair
// for the given recipe ids. A recipe id that appears k times multiplies that
// recipe's quantities by k. Ids that match no stored recipe contribute
// nothing. The same ingredient under different units produces separate rows;
// result ordering is unspecified.
func (s *GroceryService) Aggregate(ctx context.Context, recipeIDs []uuid.UUID) ([]AggregatedItem, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}

	multipliers := make(map[uuid.UUID]float64, len(recipeIDs))
	for _, id := range recipeIDs {
		multipliers[id]++
	}
	distinct := make([]uuid.UUID, 0, len(multipliers))
	for id := range multipliers {
		distinct = append(distinct, id)
	}

	var links []models.RecipeIngredient
	if err := s.db.WithContext(ctx).Where("recipe_id IN ?", distinct).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipe ingredients: %w", err)
	}

	type key struct {
		ingredientID uuid.UUID
		unit         models.Unit
	}
	// Grouping by (ingredient, unit) happens in memory rather than in SQL so
	// the duplicate-id multiplication and the no-conversion rule stay explicit.
	totals := make(map[key]float64)
	for _, link := range links {
		k := key{ingredientID: link.IngredientID, unit: link.Unit}
		totals[k] += link.Quantity * multipliers[link.RecipeID]
	}

	items := make([]AggregatedItem, 0, len(totals))
	for k, qty := range totals {
		items = append(items, AggregatedItem{
			IngredientID: k.ingredientID,
			Quantity:     qty,
			Unit:         k.unit,
		})
	}
	return items, nil
}

// BuildList aggregates the ingredients of the given recipes and persists a
// grocery list with one item per aggregated row. The list header and all of
// its items are committed atomically. Fails when no ids are given or none of
// them resolve to a stored recipe.
func (s *GroceryService) BuildList(ctx context.Context, recipeIDs []uuid.UUID) (*models.GroceryList, error) {
	if len(recipeIDs) == 0 {
		return nil, types.ErrNoRecipes
	}

	var resolved int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id IN ?", recipeIDs).Count(&resolved).Error; err != nil {
		return nil, fmt.Errorf("failed to check recipe ids: %w", err)
	}
	if resolved == 0 {
		return nil, types.ErrNoRecipesResolved
	}

	items, err := s.Aggregate(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}

	var list models.GroceryList
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list = models.GroceryList{}
		if err := tx.Create(&list).Error; err != nil {
			return fmt.Errorf("failed to create grocery list: %w", err)
		}
		for _, item := range items {
			row := models.GroceryListItem{
				GroceryListID: list.ID,
				IngredientID:  item.IngredientID,
				Quantity:      item.Quantity,
				Unit:          item.Unit,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create grocery list item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	loaded, err := s.loadList(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("grocery list built",
		zap.String("grocery_list_id", loaded.ID.String()),
		zap.Int("recipes", len(recipeIDs)),
		zap.Int("items", len(loaded.Items)))

	s.cacheList(ctx, loaded)
	return loaded, nil
}

// GetList retrieves a grocery list with its items, reading through the cache
// when one is configured. Absence is reported as gorm.ErrRecordNotFound.
func (s *GroceryService) GetList(ctx context.Context, id uuid.UUID) (*models.GroceryList, error) {
	if s.redis != nil {
		data, err := s.redis.Get(ctx, groceryListCacheKey(id)).Bytes()
		if err == nil {
			var cached models.GroceryList
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	list, err := s.loadList(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheList(ctx, list)
	return list, nil
}

func (s *GroceryService) loadList(ctx context.Context, id uuid.UUID) (*models.GroceryList, error) {
	var list models.GroceryList
	if err := s.db.WithContext(ctx).Preload("Items.Ingredient").First(&list, "id = ?", id).Error; err != nil {
		return nil, err
	}
	// Items are presented alphabetically by ingredient name.
	sort.SliceStable(list.Items, func(i, j int) bool {
		return strings.ToLower(list.Items[i].Ingredient.Name) < strings.ToLower(list.Items[j].Ingredient.Name)
	})
	return &list, nil
}

// cacheList stores the list in redis on a best-effort basis; cache failures
// never fail the request.
func (s *GroceryService) cacheList(ctx context.Context, list *models.GroceryList) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, groceryListCacheKey(list.ID), data, groceryListCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache grocery list",
			zap.String("grocery_list_id", list.ID.String()),
			zap.Error(err))
	}
}

func groceryListCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("grocery:list:%s", id)
}
