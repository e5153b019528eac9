package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/mealforge/internal/types"
)

const recipePage = `<!DOCTYPE html>
<html>
<head><title>Best Pancakes Ever</title></head>
<body>
  <h1 itemprop="name">Fluffy Pancakes</h1>
  <meta itemprop="totalTime" content="PT1H15M">
  <span itemprop="recipeYield">4 servings</span>
  <ul>
    <li itemprop="recipeIngredient">2 cups flour</li>
    <li itemprop="recipeIngredient">1 1/2 cups milk</li>
    <li itemprop="recipeIngredient">3 eggs</li>
  </ul>
  <div itemprop="recipeInstructions">Mix everything and fry on a hot griddle.</div>
  <script>trackVisitors();</script>
</body>
</html>`

func TestFetchExtractsRecipe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(recipePage))
	}))
	t.Cleanup(server.Close)

	svc := NewScraperService(zap.NewNop())
	scraped, err := svc.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Fluffy Pancakes", scraped.Title)
	assert.Equal(t, []string{"2 cups flour", "1 1/2 cups milk", "3 eggs"}, scraped.IngredientLines)
	assert.Contains(t, scraped.Instructions, "hot griddle")
	assert.Equal(t, 75, scraped.TotalTime)
	assert.Equal(t, "4 servings", scraped.Yields)
}

func TestFetchFailsOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	svc := NewScraperService(zap.NewNop())
	_, err := svc.Fetch(context.Background(), server.URL)

	var retrievalErr *types.RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
}

func TestFetchFailsWithoutIngredients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><h1>Not a recipe</h1></body></html>"))
	}))
	t.Cleanup(server.Close)

	svc := NewScraperService(zap.NewNop())
	_, err := svc.Fetch(context.Background(), server.URL)

	var retrievalErr *types.RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
}
