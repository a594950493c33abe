package local_test

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/go-cmp/cmp"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/routes/local"
)

type recordingRouter struct {
	events   []events.APIGatewayV2HTTPRequest
	response events.APIGatewayV2HTTPResponse
}

func (r *recordingRouter) Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	r.events = append(r.events, event)
	return r.response
}

func TestHandler(t *testing.T) {
	router := &recordingRouter{}
	server := httptest.NewServer(local.NewHandler(router, logger.Discard()))
	t.Cleanup(server.Close)

	t.Run("request=>event", func(t *testing.T) {
		router.response = events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusCreated,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"ok":true}`,
		}
		resp, err := http.Post(server.URL+"/search?hash=abc", "application/json", strings.NewReader(`{"query":"pizza"}`))
		if err != nil {
			t.Fatalf("Failed to post: %s", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusCreated || string(body) != `{"ok":true}` {
			t.Fatalf("Unexpected response %d %s", resp.StatusCode, body)
		}
		event := router.events[len(router.events)-1]
		expected := map[string]string{
			"method": "POST",
			"path":   "/search",
			"body":   `{"query":"pizza"}`,
			"hash":   "abc",
		}
		actual := map[string]string{
			"method": event.RequestContext.HTTP.Method,
			"path":   event.RawPath,
			"body":   event.Body,
			"hash":   event.QueryStringParameters["hash"],
		}
		if diff := cmp.Diff(expected, actual); diff != "" {
			t.Fatalf("Event mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("base64 response", func(t *testing.T) {
		payload := []byte{0x50, 0x4b, 0x03, 0x04, 0xff}
		router.response = events.APIGatewayV2HTTPResponse{
			StatusCode:      http.StatusOK,
			Body:            base64.StdEncoding.EncodeToString(payload),
			IsBase64Encoded: true,
		}
		resp, err := http.Get(server.URL + "/bookmarks/export")
		if err != nil {
			t.Fatalf("Failed to get: %s", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if diff := cmp.Diff(payload, body); diff != "" {
			t.Fatalf("Body mismatch (-want +got):\n%s", diff)
		}
	})
}
