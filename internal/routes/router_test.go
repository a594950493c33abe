package routes_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aws/aws-lambda-go/events"
	"github.com/xuri/excelize/v2"
	"philcali.me/forkify/internal/controller"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/export"
	"philcali.me/forkify/internal/forkify"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/routes"
	"philcali.me/forkify/internal/routes/bookmarks"
	"philcali.me/forkify/internal/routes/page"
	"philcali.me/forkify/internal/state"
	"philcali.me/forkify/internal/storage"
	"philcali.me/forkify/internal/test"
	"philcali.me/forkify/internal/views"
)

type LocalServer struct {
	Router     *routes.Router
	Controller *controller.Controller
	API        *test.RecipeAPI
}

func NewLocalServer(t *testing.T, timeout time.Duration) *LocalServer {
	api := test.StartRecipeAPI(t)
	api.Seed("pizza", 15)
	client := forkify.NewForkifyClient(api.URL(), "test-key", timeout, logger.Discard())
	store := state.NewStore(client, storage.NewMemoryStore(), 10, logger.Discard())
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Failed to init store: %s", err)
	}
	pg, err := views.NewPage("img/icons.svg", logger.Discard())
	if err != nil {
		t.Fatalf("Failed to create page: %s", err)
	}
	c := controller.NewController(store, pg, nil, 0, logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return &LocalServer{
		Router:     routes.NewRouter(page.NewRoute(c), bookmarks.NewRoute(c)),
		Controller: c,
		API:        api,
	}
}

func (ls *LocalServer) Invoke(method, path, body string) events.APIGatewayV2HTTPResponse {
	event := events.APIGatewayV2HTTPRequest{
		RawPath: path,
		Body:    body,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: method,
				Path:   path,
			},
		},
	}
	return ls.Router.Invoke(event, context.Background())
}

func (ls *LocalServer) Snapshot(t *testing.T, method, path, body string) controller.Snapshot {
	resp := ls.Invoke(method, path, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("%s %s failed with %d: %s", method, path, resp.StatusCode, resp.Body)
	}
	var snapshot controller.Snapshot
	if err := json.Unmarshal([]byte(resp.Body), &snapshot); err != nil {
		t.Fatalf("Failed to decode snapshot: %s", err)
	}
	return snapshot
}

// ElementIndex returns the click index of the first element matching
// selector inside the region named anchor.
func (ls *LocalServer) ElementIndex(t *testing.T, anchor, selector string) int {
	index := -1
	err := ls.Controller.Read(context.Background(), func(store *state.Store, pg *views.Page) error {
		region, err := pg.Region(anchor)
		if err != nil {
			return err
		}
		region.Selection().Find("*").EachWithBreak(func(i int, s *goquery.Selection) bool {
			if s.Is(selector) {
				index = i
				return false
			}
			return true
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to read region %s: %s", anchor, err)
	}
	if index < 0 {
		t.Fatalf("No element in %s matches %s", anchor, selector)
	}
	return index
}

func TestRouter(t *testing.T) {
	server := NewLocalServer(t, 2*time.Second)

	t.Run("OPTIONS", func(t *testing.T) {
		resp := server.Invoke("OPTIONS", "/search", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected preflight to pass, got %d", resp.StatusCode)
		}
		if resp.Headers["access-control-allow-methods"] != "GET, PUT, POST" {
			t.Fatalf("Unexpected allowed methods: %v", resp.Headers)
		}
	})

	t.Run("GET:/", func(t *testing.T) {
		resp := server.Invoke("GET", "/", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Failed to load the page: %d %s", resp.StatusCode, resp.Body)
		}
		if !strings.HasPrefix(resp.Headers["Content-Type"], "text/html") {
			t.Fatalf("Expected html, got %s", resp.Headers["Content-Type"])
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Body))
		if err != nil {
			t.Fatalf("Failed to parse page: %s", err)
		}
		if doc.Find(".bookmarks__list .error").Length() != 1 {
			t.Fatal("Expected the empty bookmarks message on a fresh page")
		}
		if doc.Find(".upload input[name=title]").Length() != 1 {
			t.Fatal("Expected the upload form to be rendered")
		}
	})

	t.Run("POST:/search", func(t *testing.T) {
		snapshot := server.Snapshot(t, "POST", "/search", `{"query": "pizza"}`)
		if snapshot.Search.Query != "pizza" || len(snapshot.Search.Results) != 15 {
			t.Fatalf("Expected 15 pizza results, got %+v", snapshot.Search)
		}
		if got := strings.Count(snapshot.Regions[views.ANCHOR_RESULTS], `class="preview"`); got != 10 {
			t.Fatalf("Expected 10 previews, got %d", got)
		}
	})

	t.Run("POST:/regions/:anchor/click", func(t *testing.T) {
		path := fmt.Sprintf("/regions/%s/click", views.ANCHOR_PAGINATION)
		snapshot := server.Snapshot(t, "POST", path, `{"element": 0}`)
		if snapshot.Search.Page != 2 {
			t.Fatalf("Expected the next button to move to page 2, got %d", snapshot.Search.Page)
		}
		resp := server.Invoke("POST", path, `{"element": 99}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected a missing element to be rejected, got %d", resp.StatusCode)
		}
	})

	t.Run("PUT:/location", func(t *testing.T) {
		snapshot := server.Snapshot(t, "PUT", "/location", `{"hash": "#pizza-03"}`)
		if snapshot.Recipe == nil || snapshot.Recipe.ID != "pizza-03" {
			t.Fatalf("Expected pizza-03 to be shown, got %+v", snapshot.Recipe)
		}
	})

	t.Run("bookmark click", func(t *testing.T) {
		index := server.ElementIndex(t, views.ANCHOR_RECIPE, ".btn--bookmark")
		path := fmt.Sprintf("/regions/%s/click", views.ANCHOR_RECIPE)
		snapshot := server.Snapshot(t, "POST", path, fmt.Sprintf(`{"element": %d}`, index))
		if len(snapshot.Bookmarks) != 1 || !snapshot.Recipe.Bookmarked {
			t.Fatalf("Expected the recipe to be bookmarked, got %+v", snapshot.Bookmarks)
		}
	})

	t.Run("GET:/regions", func(t *testing.T) {
		snapshot := server.Snapshot(t, "GET", "/regions", "")
		if snapshot.Location != "pizza-03" {
			t.Fatalf("Expected the location to be kept, got %s", snapshot.Location)
		}
		if len(snapshot.Regions) != 6 {
			t.Fatalf("Expected six regions, got %d", len(snapshot.Regions))
		}
	})

	t.Run("GET:/bookmarks", func(t *testing.T) {
		resp := server.Invoke("GET", "/bookmarks", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Failed to list bookmarks: %d", resp.StatusCode)
		}
		var results data.QueryResults[data.Recipe]
		if err := json.Unmarshal([]byte(resp.Body), &results); err != nil {
			t.Fatalf("Failed to decode bookmarks: %s", err)
		}
		if len(results.Items) != 1 || results.Items[0].ID != "pizza-03" {
			t.Fatalf("Unexpected bookmarks: %+v", results.Items)
		}
	})

	t.Run("GET:/bookmarks/export", func(t *testing.T) {
		resp := server.Invoke("GET", "/bookmarks/export", "")
		if resp.StatusCode != http.StatusOK || !resp.IsBase64Encoded {
			t.Fatalf("Expected a binary workbook, got %d", resp.StatusCode)
		}
		body, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			t.Fatalf("Failed to decode workbook: %s", err)
		}
		f, err := excelize.OpenReader(strings.NewReader(string(body)))
		if err != nil {
			t.Fatalf("Failed to open workbook: %s", err)
		}
		defer f.Close()
		title, err := f.GetCellValue(export.SHEET_BOOKMARKS, "B2")
		if err != nil {
			t.Fatalf("Failed to read workbook: %s", err)
		}
		if title != "pizza 3" {
			t.Fatalf("Expected the bookmark title in the workbook, got %q", title)
		}
	})

	t.Run("POST:/upload/toggle", func(t *testing.T) {
		snapshot := server.Snapshot(t, "POST", "/upload/toggle", "")
		if !snapshot.Dialogue {
			t.Fatal("Expected the dialogue to open")
		}
		snapshot = server.Snapshot(t, "POST", "/upload/toggle", "")
		if snapshot.Dialogue {
			t.Fatal("Expected the dialogue to close")
		}
	})

	t.Run("POST:/upload invalid", func(t *testing.T) {
		requests := server.API.Requests()
		resp := server.Invoke("POST", "/upload", `{"title": "Mine", "cookingTime": "soon", "servings": "2"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected a validation failure, got %d %s", resp.StatusCode, resp.Body)
		}
		if server.API.Requests() != requests {
			t.Fatal("An invalid upload reached the network")
		}
	})

	t.Run("bad JSON", func(t *testing.T) {
		resp := server.Invoke("POST", "/search", "{")
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		resp := server.Invoke("GET", "/nowhere", "")
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestRouterTimeout(t *testing.T) {
	server := NewLocalServer(t, 50*time.Millisecond)
	server.API.SetLatency(500 * time.Millisecond)
	resp := server.Invoke("POST", "/search", `{"query": "pizza"}`)
	if resp.StatusCode != http.StatusGatewayTimeout {
		t.Fatalf("Expected 504, got %d %s", resp.StatusCode, resp.Body)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("Failed to decode error body: %s", err)
	}
	if !strings.Contains(body["message"], "Timeout after") {
		t.Fatalf("Unexpected error message %q", body["message"])
	}
}
