package app_test

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/forkify/internal/app"
	"philcali.me/forkify/internal/config"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/messages"
	"philcali.me/forkify/internal/test"
)

func startApp(t *testing.T, cfg *config.Config) *app.App {
	a, err := app.NewApp(context.Background(), cfg, logger.Discard())
	if err != nil {
		t.Fatalf("Failed to create app: %s", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := a.Start(ctx)
	t.Cleanup(func() {
		cancel()
		<-done
		if err := a.Close(); err != nil {
			t.Fatalf("Failed to close app: %s", err)
		}
	})
	return a
}

func request(method, path, body string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath: path,
		Body:    body,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: method,
				Path:   path,
			},
		},
	}
}

func TestApp(t *testing.T) {
	api := test.StartRecipeAPI(t)
	api.Seed("pizza", 3)
	cfg := config.Default()
	cfg.API.URL = api.URL()
	cfg.API.Timeout = 2 * time.Second
	cfg.Upload.ModalClose = 0

	for _, backend := range []string{"memory", "file", "bolt", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfg := *cfg
			cfg.Storage.Backend = backend
			cfg.Storage.Path = filepath.Join(t.TempDir(), "bookmarks")
			a := startApp(t, &cfg)
			resp, err := a.HandleRequest(context.Background(), request("GET", "/", ""))
			if err != nil || resp.StatusCode != http.StatusOK {
				t.Fatalf("Failed to load the page: %d %v", resp.StatusCode, err)
			}
			if !strings.Contains(resp.Body, `class="bookmarks__list"`) {
				t.Fatal("Expected the rendered document")
			}
		})
	}

	t.Run("bookmarks survive a restart", func(t *testing.T) {
		cfg := *cfg
		cfg.Storage.Backend = "bolt"
		cfg.Storage.Path = filepath.Join(t.TempDir(), "bookmarks.db")
		first, err := app.NewApp(context.Background(), &cfg, logger.Discard())
		if err != nil {
			t.Fatalf("Failed to create app: %s", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		done := first.Start(ctx)
		for _, msg := range []messages.Message{messages.LocationChanged{Hash: "#pizza-02"}, messages.BookmarkToggled{}} {
			if err := first.Controller.Send(context.Background(), msg); err != nil {
				t.Fatalf("Failed to handle %s: %s", msg.Name(), err)
			}
		}
		cancel()
		<-done
		if err := first.Close(); err != nil {
			t.Fatalf("Failed to close app: %s", err)
		}

		second := startApp(t, &cfg)
		bookmarks := second.Store.Bookmarks()
		if len(bookmarks) != 1 || bookmarks[0].ID != "pizza-02" {
			t.Fatalf("Expected pizza-02 to be restored, got %+v", bookmarks)
		}
	})

	t.Run("invalid backend", func(t *testing.T) {
		cfg := *cfg
		cfg.Storage.Backend = "floppy"
		if _, err := app.NewApp(context.Background(), &cfg, logger.Discard()); err == nil {
			t.Fatal("Expected an unknown backend to fail")
		}
	})
}
