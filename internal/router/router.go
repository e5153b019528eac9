package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealforge/internal/api"
	"github.com/pageza/mealforge/internal/middleware"
)

// SetupRouter configures the application routes. The meal plan limiter is
// optional; pass nil to leave generation unthrottled.
func SetupRouter(
	recipeHandler *api.RecipeHandler,
	groceryHandler *api.GroceryListHandler,
	mealPlanHandler *api.MealPlanHandler,
	mealPlanLimiter *middleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	recipeHandler.RegisterRoutes(v1)
	groceryHandler.RegisterRoutes(v1)

	var planMW []gin.HandlerFunc
	if mealPlanLimiter != nil {
		planMW = append(planMW, mealPlanLimiter.Middleware())
	}
	mealPlanHandler.RegisterRoutes(v1, planMW...)

	return router
}
