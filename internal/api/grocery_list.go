package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealforge/internal/service"
)

// GroceryListHandler exposes grocery list construction and retrieval.
type GroceryListHandler struct {
	grocery service.IGroceryService
}

func NewGroceryListHandler(grocery service.IGroceryService) *GroceryListHandler {
	return &GroceryListHandler{grocery: grocery}
}

func (h *GroceryListHandler) RegisterRoutes(router *gin.RouterGroup) {
	lists := router.Group("/grocery-lists")
	{
		lists.POST("", h.CreateGroceryList)
		lists.GET("/:id", h.GetGroceryList)
	}
}

func (h *GroceryListHandler) CreateGroceryList(c *gin.Context) {
	var req struct {
		RecipeIDs []uuid.UUID `json:"recipe_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.grocery.BuildList(c.Request.Context(), req.RecipeIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *GroceryListHandler) GetGroceryList(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid grocery list id"})
		return
	}

	list, err := h.grocery.GetList(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
