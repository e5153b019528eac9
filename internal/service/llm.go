package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/mealforge/internal/types"
)

// LLMService generates draft recipes through a DeepSeek-compatible
// chat-completions API. It is constructed once and injected wherever the
// capability is needed; there is no process-wide instance.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	logger *zap.Logger
}

// NewLLMService creates a new LLMService instance.
func NewLLMService(apiKey, apiURL string, logger *zap.Logger) (*LLMService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("LLM API key must be set")
	}
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}
	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  "deepseek-chat",
		client: &http.Client{Timeout: 120 * time.Second},
		logger: logger,
	}, nil
}

// Message represents a message in the chat.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completions request.
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens"`
}

const mealPlanSystemPrompt = "You are a helpful meal planning assistant. You generate detailed, " +
	"realistic recipes in JSON format. Always return valid JSON that matches the exact schema requested."

// draftRecipeJSON mirrors the JSON schema the model is asked to produce.
type draftRecipeJSON struct {
	Name                string `json:"name"`
	PrepInstructions    string `json:"prep_instructions"`
	CookingInstructions string `json:"cooking_instructions"`
	PrepTime            int    `json:"prep_time"`
	CookTime            int    `json:"cook_time"`
	Servings            int    `json:"servings"`
	ImageURL            string `json:"image_url"`
	Ingredients         []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	} `json:"ingredients"`
}

// GenerateMealPlan asks the model for req.NumMeals draft recipes honoring the
// request's constraints. Content that cannot be interpreted as the expected
// structure surfaces as a *types.ContentError.
func (s *LLMService) GenerateMealPlan(ctx context.Context, req types.MealPlanRequest) ([]types.RecipeDraft, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: mealPlanSystemPrompt},
			{Role: "user", Content: buildMealPlanPrompt(req)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.7,
		MaxTokens:      4000,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, &types.ContentError{Reason: "no choices in API response"}
	}

	content := result.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return nil, &types.ContentError{Reason: "empty response from LLM"}
	}

	var wrapper struct {
		Recipes []draftRecipeJSON `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
		return nil, &types.ContentError{Reason: "failed to parse LLM response as JSON", Err: err}
	}
	if len(wrapper.Recipes) == 0 {
		return nil, &types.ContentError{Reason: "LLM response contains no recipes"}
	}

	drafts := make([]types.RecipeDraft, 0, len(wrapper.Recipes))
	for _, r := range wrapper.Recipes {
		draft := types.RecipeDraft{
			Name:                r.Name,
			PrepInstructions:    r.PrepInstructions,
			CookingInstructions: r.CookingInstructions,
			PrepTime:            r.PrepTime,
			CookTime:            r.CookTime,
			Servings:            r.Servings,
			ImageURL:            r.ImageURL,
		}
		if draft.Name == "" {
			draft.Name = "Unnamed Recipe"
		}
		for _, ing := range r.Ingredients {
			quantity := ing.Quantity
			if quantity == 0 {
				quantity = 1
			}
			draft.Ingredients = append(draft.Ingredients, types.DraftIngredient{
				Name:     ing.Name,
				Quantity: quantity,
				Unit:     ing.Unit,
			})
		}
		drafts = append(drafts, draft)
	}

	s.logger.Info("LLM generated draft recipes",
		zap.Int("requested", req.NumMeals),
		zap.Int("returned", len(drafts)))

	return drafts, nil
}

// buildMealPlanPrompt renders the user prompt for a meal plan request.
func buildMealPlanPrompt(req types.MealPlanRequest) string {
	constraints := []string{
		fmt.Sprintf("Generate exactly %d recipes for a weekly meal plan.", req.NumMeals),
	}
	if req.TotalTimeMinutes > 0 {
		avg := req.TotalTimeMinutes / req.NumMeals
		constraints = append(constraints, fmt.Sprintf(
			"Each recipe should take approximately %d minutes or less to prepare and cook (total prep_time + cook_time).", avg))
	}
	if len(req.PreferredIngredients) > 0 {
		constraints = append(constraints, "Prioritize using these ingredients: "+strings.Join(req.PreferredIngredients, ", ")+".")
	}
	if len(req.DietaryRestrictions) > 0 {
		constraints = append(constraints, "Follow these dietary restrictions: "+strings.Join(req.DietaryRestrictions, ", ")+".")
	}
	if len(req.CuisinePreferences) > 0 {
		constraints = append(constraints, "Focus on these cuisines: "+strings.Join(req.CuisinePreferences, ", ")+".")
	}

	var sb strings.Builder
	sb.WriteString("Generate a meal plan with the following constraints:\n")
	for _, c := range constraints {
		sb.WriteString("- " + c + "\n")
	}
	sb.WriteString(`
Return a JSON object with this exact structure:
{
  "recipes": [
    {
      "name": "Recipe Name",
      "prep_instructions": "Optional preparation steps",
      "cooking_instructions": "Detailed cooking instructions",
      "prep_time": 15,
      "cook_time": 30,
      "servings": 4,
      "image_url": null,
      "ingredients": [
        {
          "name": "Ingredient Name",
          "quantity": 2.0,
          "unit": "cup"
        }
      ]
    }
  ]
}

Important:
- Include detailed, realistic cooking instructions
- Use standard units: "each", "cup", "tablespoon", "teaspoon", "gram", "kilogram", "ounce", "pound", "milliliter", "liter", "can", "bunch", "package"
- Ensure prep_time + cook_time matches the time constraint if provided
- Make recipes diverse and interesting
- Include all necessary ingredients with realistic quantities`)
	return sb.String()
}
