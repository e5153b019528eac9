package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealforge/internal/service"
	"github.com/pageza/mealforge/internal/types"
)

// MealPlanHandler exposes meal plan generation.
type MealPlanHandler struct {
	planner service.IMealPlanService
}

func NewMealPlanHandler(planner service.IMealPlanService) *MealPlanHandler {
	return &MealPlanHandler{planner: planner}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), h.GenerateMealPlan)
	router.POST("/meal-plans", handlers...)
}

func (h *MealPlanHandler) GenerateMealPlan(c *gin.Context) {
	var req types.MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createGroceryList, ok := boolQuery(c, "create_grocery_list", true)
	if !ok {
		return
	}
	preferExisting, ok := boolQuery(c, "prefer_existing", true)
	if !ok {
		return
	}

	plan, err := h.planner.Assemble(c.Request.Context(), req, createGroceryList, preferExisting)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// boolQuery reads an optional boolean query parameter, writing a 400 response
// and returning ok=false when the value is unparsable.
func boolQuery(c *gin.Context, name string, fallback bool) (value, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a boolean"})
		return false, false
	}
	return parsed, true
}
