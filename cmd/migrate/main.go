package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/mealforge/config"
	"github.com/pageza/mealforge/internal/database"
	"github.com/pageza/mealforge/internal/models"
)

// Applies the schema to the configured database. With -drop the managed
// tables are removed first, which is destructive and meant for development
// resets only.
func main() {
	drop := flag.Bool("drop", false, "Drop managed tables before migrating")
	flag.Parse()

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

	if *drop {
		err := db.Migrator().DropTable(
			&models.GroceryListItem{},
			&models.GroceryList{},
			&models.RecipeIngredient{},
			&models.Recipe{},
			&models.Ingredient{},
		)
		if err != nil {
			logger.Fatal("failed to drop tables", zap.Error(err))
		}
		logger.Info("dropped managed tables")
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("migrations applied")
}
