package service

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pageza/mealforge/internal/types"
)

// ScraperService fetches a recipe page and extracts its title, instructions
// and raw ingredient lines. The lines are free text; downstream callers feed
// them through the ingredient parser.
type ScraperService struct {
	client *http.Client
	logger *zap.Logger
}

// NewScraperService creates a new ScraperService instance.
func NewScraperService(logger *zap.Logger) *ScraperService {
	return &ScraperService{
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// isoDuration matches schema.org durations like "PT1H30M".
var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?`)

// Fetch retrieves the page at url and extracts the recipe parts from its
// schema.org markup. Failures are reported as *types.RetrievalError.
func (s *ScraperService) Fetch(ctx context.Context, url string) (*types.ScrapedRecipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &types.RetrievalError{URL: url, Reason: "invalid url", Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &types.RetrievalError{URL: url, Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.RetrievalError{URL: url, Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &types.RetrievalError{URL: url, Reason: "failed to parse page", Err: err}
	}

	// Strip noise before extracting text.
	doc.Find("script, style, nav, footer, iframe").Each(func(i int, sel *goquery.Selection) {
		sel.Remove()
	})

	scraped := &types.ScrapedRecipe{
		Title:           extractTitle(doc),
		Instructions:    extractInstructions(doc),
		IngredientLines: extractIngredientLines(doc),
		TotalTime:       extractTotalTime(doc),
		Yields:          strings.TrimSpace(doc.Find(`[itemprop="recipeYield"]`).First().Text()),
	}

	if len(scraped.IngredientLines) == 0 {
		return nil, &types.RetrievalError{URL: url, Reason: "no ingredients found on page"}
	}

	s.logger.Info("scraped recipe",
		zap.String("url", url),
		zap.String("title", scraped.Title),
		zap.Int("ingredient_lines", len(scraped.IngredientLines)))

	return scraped, nil
}

func extractTitle(doc *goquery.Document) string {
	for _, sel := range []string{`[itemprop="name"]`, "h1", "title"} {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return "Imported Recipe"
}

func extractIngredientLines(doc *goquery.Document) []string {
	selectors := []string{
		`[itemprop="recipeIngredient"]`,
		`[itemprop="ingredients"]`,
		".recipe-ingredients li",
		".ingredients li",
	}
	for _, sel := range selectors {
		var lines []string
		doc.Find(sel).Each(func(i int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				lines = append(lines, text)
			}
		})
		if len(lines) > 0 {
			return lines
		}
	}
	return nil
}

func extractInstructions(doc *goquery.Document) string {
	selectors := []string{
		`[itemprop="recipeInstructions"]`,
		".recipe-instructions",
		".instructions",
	}
	for _, sel := range selectors {
		var steps []string
		doc.Find(sel).Each(func(i int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				steps = append(steps, text)
			}
		})
		if len(steps) > 0 {
			return strings.Join(steps, "\n")
		}
	}
	return ""
}

func extractTotalTime(doc *goquery.Document) int {
	content, ok := doc.Find(`[itemprop="totalTime"]`).First().Attr("content")
	if !ok {
		content = strings.TrimSpace(doc.Find(`[itemprop="totalTime"]`).First().Text())
	}
	m := isoDuration.FindStringSubmatch(content)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}
