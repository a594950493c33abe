// Package local serves a router over plain HTTP by translating each request
// into the API Gateway event the router already understands.
package local

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/forkify/internal/logger"
)

type Invoker interface {
	Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse
}

type Handler struct {
	Router Invoker
	Log    *logger.Logger
}

func NewHandler(router Invoker, log *logger.Logger) *Handler {
	return &Handler{
		Router: router,
		Log:    log,
	}
}

func ToEvent(r *http.Request) (events.APIGatewayV2HTTPRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayV2HTTPRequest{}, err
	}
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		headers[strings.ToLower(name)] = strings.Join(values, ",")
	}
	query := make(map[string]string)
	for name, values := range r.URL.Query() {
		query[name] = strings.Join(values, ",")
	}
	event := events.APIGatewayV2HTTPRequest{
		RawPath:               r.URL.Path,
		RawQueryString:        r.URL.RawQuery,
		Headers:               headers,
		QueryStringParameters: query,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    r.Method,
				Path:      r.URL.Path,
				Protocol:  r.Proto,
				SourceIP:  r.RemoteAddr,
				UserAgent: r.UserAgent(),
			},
		},
	}
	if utf8.Valid(body) {
		event.Body = string(body)
	} else {
		event.Body = base64.StdEncoding.EncodeToString(body)
		event.IsBase64Encoded = true
	}
	return event, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	event, err := ToEvent(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp := h.Router.Invoke(event, r.Context())
	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		body, err = base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			h.Log.Error("failed to decode response for %s %s: %s", r.Method, r.URL.Path, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	for name, value := range resp.Headers {
		if strings.EqualFold(name, "content-length") {
			continue
		}
		w.Header().Set(name, value)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(body); err != nil {
		h.Log.Debug("failed to write response for %s %s: %s", r.Method, r.URL.Path, err)
	}
	h.Log.Debug("%s %s %d", r.Method, r.URL.Path, resp.StatusCode)
}
