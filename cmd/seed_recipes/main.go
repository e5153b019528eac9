package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/mealforge/config"
	"github.com/pageza/mealforge/internal/database"
	"github.com/pageza/mealforge/internal/service"
	"github.com/pageza/mealforge/internal/types"
)

// Seeds the database with a handful of starter recipes so meal plans have an
// existing pool to draw from. Safe to run repeatedly; recipes are inserted
// each run but ingredients are reused by name.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	recipes := service.NewRecipeService(db, service.NewIngredientService(), nil, logger)

	drafts := []types.RecipeDraft{
		{
			Name:                "Spaghetti Aglio e Olio",
			PrepInstructions:    "Slice the garlic thinly.",
			CookingInstructions: "Boil the spaghetti. Warm the olive oil, toast the garlic and chili flakes, then toss with the drained pasta.",
			PrepTime:            10,
			CookTime:            15,
			Servings:            2,
			Ingredients: []types.DraftIngredient{
				{Name: "spaghetti", Quantity: 200, Unit: "gram"},
				{Name: "garlic", Quantity: 4, Unit: "each"},
				{Name: "olive oil", Quantity: 0.25, Unit: "cup"},
				{Name: "chili flakes", Quantity: 0.5, Unit: "teaspoon"},
			},
		},
		{
			Name:                "Vegetable Fried Rice",
			PrepInstructions:    "Dice the vegetables and beat the eggs.",
			CookingInstructions: "Scramble the eggs, set aside. Stir-fry the vegetables, add the rice and soy sauce, fold the eggs back in.",
			PrepTime:            15,
			CookTime:            10,
			Servings:            3,
			Ingredients: []types.DraftIngredient{
				{Name: "cooked rice", Quantity: 3, Unit: "cup"},
				{Name: "egg", Quantity: 2, Unit: "each"},
				{Name: "carrot", Quantity: 1, Unit: "each"},
				{Name: "frozen peas", Quantity: 0.5, Unit: "cup"},
				{Name: "soy sauce", Quantity: 2, Unit: "tablespoon"},
			},
		},
		{
			Name:                "Lentil Soup",
			PrepInstructions:    "Rinse the lentils and chop the onion.",
			CookingInstructions: "Sweat the onion, add the lentils, broth and cumin, then simmer until the lentils are tender.",
			PrepTime:            10,
			CookTime:            35,
			Servings:            4,
			Ingredients: []types.DraftIngredient{
				{Name: "brown lentils", Quantity: 1.5, Unit: "cup"},
				{Name: "onion", Quantity: 1, Unit: "each"},
				{Name: "vegetable broth", Quantity: 6, Unit: "cup"},
				{Name: "ground cumin", Quantity: 1, Unit: "teaspoon"},
			},
		},
		{
			Name:                "Greek Salad",
			PrepInstructions:    "Chop the cucumber, tomatoes and onion.",
			CookingInstructions: "Combine the vegetables with olives and feta, dress with olive oil and oregano.",
			PrepTime:            15,
			CookTime:            0,
			Servings:            2,
			Ingredients: []types.DraftIngredient{
				{Name: "cucumber", Quantity: 1, Unit: "each"},
				{Name: "tomato", Quantity: 3, Unit: "each"},
				{Name: "red onion", Quantity: 0.5, Unit: "each"},
				{Name: "feta cheese", Quantity: 100, Unit: "gram"},
				{Name: "kalamata olives", Quantity: 0.25, Unit: "cup"},
				{Name: "olive oil", Quantity: 2, Unit: "tablespoon"},
			},
		},
	}

	ctx := context.Background()
	for i := range drafts {
		recipe, err := recipes.CreateFromDraft(ctx, &drafts[i])
		if err != nil {
			logger.Fatal("failed to seed recipe", zap.String("name", drafts[i].Name), zap.Error(err))
		}
		logger.Info("seeded recipe", zap.String("name", recipe.Name), zap.String("id", recipe.ID.String()))
	}
	logger.Info("seeding complete", zap.Int("recipes", len(drafts)))
}
