package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitcrm/diet-planner/internal/config"
	"fitcrm/diet-planner/internal/domain"
	"fitcrm/diet-planner/internal/remote"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.RemoteConfig{
		BaseURL:       baseURL,
		Token:         "service-token",
		Timeout:       2 * time.Second,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	})
}

func TestGetDayDecodesAndNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/plans/plan-1/days/2025-04-07" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer service-token" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"date": "2025-04-07",
			"meals": []map[string]any{
				{"id": "m1", "name": "Breakfast"}, // no ingredients field
			},
		})
	}))
	defer server.Close()

	day, err := newTestClient(server.URL).GetDay(context.Background(), "plan-1", "2025-04-07")
	if err != nil {
		t.Fatalf("GetDay: %v", err)
	}
	if day.Date != "2025-04-07" || len(day.Meals) != 1 {
		t.Fatalf("unexpected day: %+v", day)
	}
	if day.Meals[0].Ingredients == nil {
		t.Fatal("missing ingredients not normalized to an empty list")
	}
}

func TestGetDayNotFoundIsNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetDay(context.Background(), "plan-1", "2025-04-01")
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("expected remote.ErrNotFound, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("404 was retried: %d calls", calls)
	}
}

func TestGetDayRetriesTransientServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(domain.Day{Date: "2025-04-07", Meals: []domain.Meal{}})
	}))
	defer server.Close()

	day, err := newTestClient(server.URL).GetDay(context.Background(), "plan-1", "2025-04-07")
	if err != nil {
		t.Fatalf("GetDay after retries: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if day.Date != "2025-04-07" {
		t.Fatalf("unexpected day: %+v", day)
	}
}

func TestGetDayGivesUpAfterBoundedRetries(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetDay(context.Background(), "plan-1", "2025-04-07")
	if !errors.Is(err, remote.ErrUnavailable) {
		t.Fatalf("expected remote.ErrUnavailable, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", calls)
	}
}

func TestCreateMealIsNeverRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	draft := &domain.Meal{ID: "draft-1", Name: "Breakfast"}
	_, err := newTestClient(server.URL).CreateMeal(context.Background(), "plan-1", "2025-04-07", draft)
	if err == nil {
		t.Fatal("expected failure")
	}
	if calls != 1 {
		t.Fatalf("meal creation was retried: %d calls (duplicate meal risk)", calls)
	}
}

func TestCreateMealReturnsCanonicalRepresentation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var draft domain.Meal
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Errorf("decode draft: %v", err)
		}
		draft.ID = "server-id-9"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(draft)
	}))
	defer server.Close()

	draft := &domain.Meal{
		ID:   "client-uuid",
		Name: "Breakfast",
		Ingredients: []domain.Ingredient{
			{Name: "Oats", NutritionTotals: domain.NutritionTotals{Calories: 300}},
		},
	}
	created, err := newTestClient(server.URL).CreateMeal(context.Background(), "plan-1", "2025-04-07", draft)
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}
	if created.ID != "server-id-9" {
		t.Fatalf("canonical id = %s", created.ID)
	}
	if created.Totals.Calories != 300 {
		t.Fatalf("canonical totals = %v, want 300", created.Totals.Calories)
	}
}

func TestPerRequestTokenOverridesServiceToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer trainer-token" {
			t.Errorf("Authorization = %q, want trainer token", got)
		}
		json.NewEncoder(w).Encode(domain.Day{Date: "2025-04-07"})
	}))
	defer server.Close()

	ctx := remote.ContextWithToken(context.Background(), "trainer-token")
	if _, err := newTestClient(server.URL).GetDay(ctx, "plan-1", "2025-04-07"); err != nil {
		t.Fatalf("GetDay: %v", err)
	}
}

func TestDeleteMeal(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if err := newTestClient(server.URL).DeleteMeal(context.Background(), "plan-1", "2025-04-07", "m1"); err != nil {
		t.Fatalf("DeleteMeal: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/plans/plan-1/days/2025-04-07/meals/m1" {
		t.Fatalf("got %s %s", gotMethod, gotPath)
	}
}

func TestSearchIngredients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "chicken" {
			t.Errorf("query = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"ingredients": []domain.Ingredient{
				{Name: "Chicken breast", WeightGrams: 100, NutritionTotals: domain.NutritionTotals{Calories: 165, Protein: 31}},
			},
		})
	}))
	defer server.Close()

	ingredients, err := newTestClient(server.URL).SearchIngredients(context.Background(), "chicken")
	if err != nil {
		t.Fatalf("SearchIngredients: %v", err)
	}
	if len(ingredients) != 1 || ingredients[0].Name != "Chicken breast" {
		t.Fatalf("unexpected result: %+v", ingredients)
	}
}
