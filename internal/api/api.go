package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/mealforge/internal/types"
)

// respondError maps service errors onto HTTP statuses: validation failures to
// 400, absence to 404, upstream-capability failures to 422 and everything
// else to 500.
func respondError(c *gin.Context, err error) {
	var contentErr *types.ContentError
	var retrievalErr *types.RetrievalError

	switch {
	case errors.Is(err, types.ErrNoRecipes), errors.Is(err, types.ErrInvalidMealCount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, types.ErrNoRecipesResolved),
		errors.As(err, &contentErr),
		errors.As(err, &retrievalErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
