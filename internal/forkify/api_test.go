package forkify_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/go-cmp/cmp"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/exceptions"
	"philcali.me/forkify/internal/forkify"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/provider"
	"philcali.me/forkify/internal/test"
)

func newClient(api *test.RecipeAPI, timeout time.Duration) *forkify.ForkifyAPI {
	return forkify.NewForkifyClient(api.URL(), "test-key", timeout, logger.Discard())
}

func TestForkifyAPI(t *testing.T) {
	api := test.StartRecipeAPI(t)
	seeded := api.Seed("pizza", 15)
	client := newClient(api, 2*time.Second)
	ctx := context.Background()

	t.Run("Lookup", func(t *testing.T) {
		recipe, err := client.Lookup(ctx, seeded[0].Id)
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		expected := data.Recipe{
			ID:          seeded[0].Id,
			Title:       "pizza 1",
			Publisher:   "Closet Cooking",
			SourceURL:   seeded[0].SourceUrl,
			Image:       seeded[0].ImageUrl,
			Servings:    4,
			CookingTime: 45,
			Ingredients: []data.Ingredient{
				{Quantity: aws.Float64(1.5), Unit: "cups", Description: "flour"},
				{Description: "salt"},
			},
		}
		if diff := cmp.Diff(expected, recipe); diff != "" {
			t.Fatalf("Projected recipe mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("LookupMissing", func(t *testing.T) {
		_, err := client.Lookup(ctx, "nope")
		var apiErr *exceptions.ApiError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Expected an ApiError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "Invalid _id: nope" {
			t.Fatalf("Unexpected api error: %+v", apiErr)
		}
	})

	t.Run("Search", func(t *testing.T) {
		results, err := client.Search(ctx, "pizza")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results.Items) != 15 {
			t.Fatalf("Expected 15 results, got %d", len(results.Items))
		}
		if results.Items[0].Image != seeded[0].ImageUrl {
			t.Fatalf("image_url was not renamed: %+v", results.Items[0])
		}
	})

	t.Run("SearchEmpty", func(t *testing.T) {
		results, err := client.Search(ctx, "sushi")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if results.Items == nil || len(results.Items) != 0 {
			t.Fatalf("Expected an empty non-nil result list, got %#v", results.Items)
		}
	})

	t.Run("Upload", func(t *testing.T) {
		created, err := client.Upload(ctx, provider.RecipePayload{
			Title:       "Mine",
			SourceURL:   "http://example.com/mine",
			Image:       "http://example.com/mine.jpg",
			Publisher:   "me",
			CookingTime: 20,
			Servings:    2,
			Ingredients: []data.Ingredient{{Quantity: aws.Float64(0.5), Unit: "kg", Description: "rice"}},
		})
		if err != nil {
			t.Fatalf("Upload failed: %v", err)
		}
		if created.ID == "" || created.Key != "test-key" {
			t.Fatalf("Expected an id and the author key, got %+v", created)
		}
		if created.SourceURL != "http://example.com/mine" || created.CookingTime != 20 {
			t.Fatalf("Payload fields lost in transit: %+v", created)
		}
	})
}

func TestForkifyAPITimeout(t *testing.T) {
	api := test.StartRecipeAPI(t)
	api.Seed("pizza", 1)
	api.SetLatency(500 * time.Millisecond)
	client := newClient(api, 50*time.Millisecond)

	start := time.Now()
	_, err := client.Search(context.Background(), "pizza")
	var timeout *exceptions.TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("Expected a TimeoutError, got %v", err)
	}
	if timeout.Duration != 50*time.Millisecond {
		t.Fatalf("Timeout should carry the configured duration, got %s", timeout.Duration)
	}
	if elapsed := time.Since(start); elapsed >= 500*time.Millisecond {
		t.Fatalf("Timeout fired after the server would have answered: %s", elapsed)
	}
}

func TestForkifyAPIRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/post":
			if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.Write([]byte(`{"ok": true}`))
		case "/plain":
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("upstream down"))
		default:
			w.Write([]byte(`{"ok": false}`))
		}
	}))
	t.Cleanup(server.Close)
	client := forkify.NewForkifyClient(server.URL+"/", "", time.Second, logger.Discard())

	t.Run("payload=>POST", func(t *testing.T) {
		var out struct{ Ok bool }
		if err := client.Request(context.Background(), server.URL+"/post", map[string]string{"a": "b"}, &out); err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if !out.Ok {
			t.Fatal("Expected the POST branch to answer")
		}
	})

	t.Run("non-JSON failure", func(t *testing.T) {
		err := client.Request(context.Background(), server.URL+"/plain", nil, nil)
		var apiErr *exceptions.ApiError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Expected an ApiError, got %v", err)
		}
		if apiErr.Message != http.StatusText(http.StatusServiceUnavailable) {
			t.Fatalf("Expected status text fallback, got %q", apiErr.Message)
		}
	})
}
