package forkify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/exceptions"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/provider"
)

var _ provider.RecipeProvider = (*ForkifyAPI)(nil)

type ForkifyAPI struct {
	BaseURL string
	Key     string
	Timeout time.Duration
	Client  *http.Client
	Log     *logger.Logger
}

func NewForkifyClient(baseURL string, key string, timeout time.Duration, log *logger.Logger) *ForkifyAPI {
	return &ForkifyAPI{
		BaseURL: baseURL,
		Key:     key,
		Timeout: timeout,
		Client:  &http.Client{},
		Log:     log,
	}
}

type response struct {
	statusCode int
	body       []byte
	err        error
}

func _newRequest(ctx context.Context, endpoint string, payload any) (*http.Request, error) {
	if payload == nil {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Request issues a GET, or a JSON POST when payload is not nil, and decodes the
// response body into out. The round trip races a timer of fc.Timeout; when the
// timer wins the request is abandoned with a *exceptions.TimeoutError.
func (fc *ForkifyAPI) Request(ctx context.Context, endpoint string, payload any, out any) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	req, err := _newRequest(ctx, endpoint, payload)
	if err != nil {
		return err
	}
	responses := make(chan response, 1)
	go func() {
		resp, err := fc.Client.Do(req)
		if err != nil {
			responses <- response{err: err}
			return
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		responses <- response{statusCode: resp.StatusCode, body: body, err: err}
	}()

	timer := time.NewTimer(fc.Timeout)
	defer timer.Stop()
	var resp response
	select {
	case resp = <-responses:
	case <-timer.C:
		fc.Log.Debug("%s %s lost the race against %s", req.Method, req.URL.Path, fc.Timeout)
		return exceptions.Timeout(fc.Timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
	if resp.err != nil {
		return fmt.Errorf("failed to invoke request: %w", resp.err)
	}
	if resp.statusCode < 200 || resp.statusCode > 299 {
		var failure ErrorResponse
		if err := json.Unmarshal(resp.body, &failure); err != nil || failure.Message == "" {
			failure.Message = http.StatusText(resp.statusCode)
		}
		return exceptions.Api(resp.statusCode, failure.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (fc *ForkifyAPI) resource(id string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	if fc.Key != "" {
		params.Set("key", fc.Key)
	}
	endpoint := fc.BaseURL + url.PathEscape(id)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	return endpoint
}

func (fc *ForkifyAPI) Lookup(ctx context.Context, id string) (data.Recipe, error) {
	var resp RecipeResponse
	if err := fc.Request(ctx, fc.resource(id, nil), nil, &resp); err != nil {
		return data.Recipe{}, err
	}
	return ToRecipe(resp.Data.Recipe), nil
}

func (fc *ForkifyAPI) Search(ctx context.Context, query string) (data.QueryResults[data.SearchResultItem], error) {
	var resp SearchResponse
	params := url.Values{"search": []string{query}}
	if err := fc.Request(ctx, fc.resource("", params), nil, &resp); err != nil {
		return data.QueryResults[data.SearchResultItem]{}, err
	}
	return data.ConvertQueryResults(data.QueryResults[RecipePreview]{
		Items: resp.Data.Recipes,
	}, ToSearchResult), nil
}

func (fc *ForkifyAPI) Upload(ctx context.Context, payload provider.RecipePayload) (data.Recipe, error) {
	var resp RecipeResponse
	if err := fc.Request(ctx, fc.resource("", nil), FromPayload(payload), &resp); err != nil {
		return data.Recipe{}, err
	}
	return ToRecipe(resp.Data.Recipe), nil
}
