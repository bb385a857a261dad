package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fitcrm/diet-planner/internal/config"
	"fitcrm/diet-planner/internal/domain"
	"fitcrm/diet-planner/internal/remote"
)

// Client talks JSON over HTTP to the CRM persistence service. It implements
// remote.DayService, remote.PlanService and remote.CatalogService.
type Client struct {
	baseURL       string
	token         string
	httpClient    *http.Client
	retryAttempts int
	retryDelay    time.Duration
}

// NewClient creates a REST client from the remote service configuration.
func NewClient(cfg config.RemoteConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		baseURL:       cfg.BaseURL,
		token:         cfg.Token,
		httpClient:    &http.Client{Timeout: timeout},
		retryAttempts: attempts,
		retryDelay:    cfg.RetryDelay,
	}
}

// bearerToken prefers the per-request token forwarded from the caller over
// the configured service token.
func (c *Client) bearerToken(ctx context.Context) string {
	if token := remote.TokenFromContext(ctx); token != "" {
		return token
	}
	return c.token
}

// doJSON executes one request and decodes a JSON response into out (if out is
// non-nil). Status codes are mapped onto the remote error constants.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s payload: %w", method, path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute %s %s: %w: %v", method, path, remote.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return remote.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return remote.ErrUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s %s failed with status %d: %w", method, path, resp.StatusCode, remote.ErrUnavailable)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%s %s failed with status %d", method, path, resp.StatusCode)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// GetDay fetches the day record for (planID, date). The read is idempotent,
// so transient server errors are retried a bounded number of times. A 404
// maps to remote.ErrNotFound and is never retried.
func (c *Client) GetDay(ctx context.Context, planID, date string) (*domain.Day, error) {
	path := fmt.Sprintf("/plans/%s/days/%s", url.PathEscape(planID), url.PathEscape(date))

	var day domain.Day
	var lastErr error
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 && c.retryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
		day = domain.Day{}
		lastErr = c.doJSON(ctx, http.MethodGet, path, nil, &day)
		if lastErr == nil {
			if day.Date == "" {
				day.Date = date
			}
			day.Normalize()
			return &day, nil
		}
		if !isRetryable(lastErr) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// CreateMeal posts a draft meal for (planID, date) and returns the server's
// canonical representation. Creation is not idempotent and is never retried,
// to avoid duplicate meals.
func (c *Client) CreateMeal(ctx context.Context, planID, date string, draft *domain.Meal) (*domain.Meal, error) {
	path := fmt.Sprintf("/plans/%s/days/%s/meals", url.PathEscape(planID), url.PathEscape(date))
	var created domain.Meal
	if err := c.doJSON(ctx, http.MethodPost, path, draft, &created); err != nil {
		return nil, err
	}
	created.Normalize()
	created.RecomputeTotals()
	return &created, nil
}

// UpdateMeal pushes a fully edited meal back and returns the canonical copy.
func (c *Client) UpdateMeal(ctx context.Context, planID, date string, meal *domain.Meal) (*domain.Meal, error) {
	path := fmt.Sprintf("/plans/%s/days/%s/meals/%s",
		url.PathEscape(planID), url.PathEscape(date), url.PathEscape(meal.ID))
	var updated domain.Meal
	if err := c.doJSON(ctx, http.MethodPut, path, meal, &updated); err != nil {
		return nil, err
	}
	updated.Normalize()
	updated.RecomputeTotals()
	return &updated, nil
}

// DeleteMeal removes a meal from the day record.
func (c *Client) DeleteMeal(ctx context.Context, planID, date, mealID string) error {
	path := fmt.Sprintf("/plans/%s/days/%s/meals/%s",
		url.PathEscape(planID), url.PathEscape(date), url.PathEscape(mealID))
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// GetPlan fetches the plan header with its macro targets.
func (c *Client) GetPlan(ctx context.Context, planID string) (*domain.DietPlan, error) {
	path := fmt.Sprintf("/plans/%s", url.PathEscape(planID))
	var plan domain.DietPlan
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// SearchIngredients queries the ingredient catalog for autocomplete
// suggestions.
func (c *Client) SearchIngredients(ctx context.Context, query string) ([]domain.Ingredient, error) {
	path := "/ingredients/search?q=" + url.QueryEscape(query)
	var result struct {
		Ingredients []domain.Ingredient `json:"ingredients"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	if result.Ingredients == nil {
		result.Ingredients = []domain.Ingredient{}
	}
	return result.Ingredients, nil
}

// isRetryable limits retries to transport failures and 5xx responses.
func isRetryable(err error) bool {
	return err != nil && errors.Is(err, remote.ErrUnavailable)
}
