// Package provider talks to the third-party recipe API that supplies recipe
// search, recipe details, ingredients and nutrition.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/internal/logger"
)

var ErrNotFound = errors.New("recipe not found at provider")

// StatusError is returned when the provider answers with an unexpected status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recipe provider returned status %d: %s", e.StatusCode, e.Body)
}

// RecipeProvider is the set of provider calls the service depends on.
type RecipeProvider interface {
	SearchRecipes(ctx context.Context, params SearchParams) (*SearchResult, error)
	GetRecipeInformation(ctx context.Context, id int64) (*RecipeInformation, error)
	GetNutrition(ctx context.Context, id int64) (*Nutrition, error)
	ImageURL(id int64, image, imageType string) string
}

// Client is an HTTP client for a Spoonacular-compatible recipe API.
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	http         *http.Client
	log          *zap.Logger
}

var _ RecipeProvider = (*Client)(nil)

func NewClient(baseURL, imageBaseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      baseURL,
		imageBaseURL: imageBaseURL,
		apiKey:       apiKey,
		http:         &http.Client{Timeout: timeout},
		log:          logger.Named("provider"),
	}
}

// SearchRecipes runs a complex search with recipe information attached to each result.
func (c *Client) SearchRecipes(ctx context.Context, params SearchParams) (*SearchResult, error) {
	q := params.Values()
	q.Set("addRecipeInformation", "true")

	var res SearchResult
	if err := c.get(ctx, "/recipes/complexSearch", q, &res); err != nil {
		return nil, err
	}
	for i := range res.Results {
		res.Results[i].Image = c.ImageURL(res.Results[i].ID, res.Results[i].Image, res.Results[i].ImageType)
	}
	return &res, nil
}

func (c *Client) GetRecipeInformation(ctx context.Context, id int64) (*RecipeInformation, error) {
	var info RecipeInformation
	q := url.Values{"includeNutrition": {"false"}}
	if err := c.get(ctx, "/recipes/"+strconv.FormatInt(id, 10)+"/information", q, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) GetNutrition(ctx context.Context, id int64) (*Nutrition, error) {
	var n Nutrition
	if err := c.get(ctx, "/recipes/"+strconv.FormatInt(id, 10)+"/nutritionWidget.json", nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ImageURL returns image when the provider gave a full URL, otherwise the
// provider's CDN location for the recipe id.
func (c *Client) ImageURL(id int64, image, imageType string) string {
	if u, err := url.Parse(image); err == nil && u.Scheme != "" && u.Host != "" {
		return image
	}
	if imageType == "" {
		imageType = "jpg"
	}
	return fmt.Sprintf("%s/%d-556x370.%s", c.imageBaseURL, id, imageType)
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	reqURL, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse provider URL: %w", err)
	}
	if q != nil {
		reqURL.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call recipe provider: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("provider request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}
