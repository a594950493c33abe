package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/forkify/internal/exceptions"
	"philcali.me/forkify/internal/routes/filters"
)

type paramsKey string

// PARAMS is the context key holding the path parameters of the matched route.
const PARAMS = paramsKey("Params")

type Route func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error)

type Service interface {
	GetRoutes() map[string]Route
}

type CachedMatcher struct {
	Matcher    *regexp.Regexp
	ParamNames []string
	Mutex      *sync.Mutex
}

type CachedRoute struct {
	Method  string
	Path    string
	Route   Route
	Matcher *CachedMatcher
}

func (cr *CachedMatcher) Refresh(path string) *regexp.Regexp {
	cr.Mutex.Lock()
	defer cr.Mutex.Unlock()
	if cr.Matcher == nil {
		namex := regexp.MustCompile(":[^/]+")
		regexPath := namex.ReplaceAllStringFunc(path, func(found string) string {
			cr.ParamNames = append(cr.ParamNames, found[1:])
			return "([^/]+)"
		})
		cr.Matcher = regexp.MustCompile("^" + regexPath + "$")
	}
	return cr.Matcher
}

func (cr *CachedRoute) MatchEvent(event events.APIGatewayV2HTTPRequest) (map[string]string, bool) {
	if event.RequestContext.HTTP.Method != cr.Method {
		return nil, false
	}
	if event.RawPath == cr.Path {
		return map[string]string{}, true
	}
	matcher := cr.Matcher.Refresh(cr.Path)
	values := matcher.FindStringSubmatch(event.RawPath)
	if values == nil {
		return nil, false
	}
	params := make(map[string]string, len(cr.Matcher.ParamNames))
	for i, p := range cr.Matcher.ParamNames {
		params[p] = values[i+1]
	}
	return params, true
}

type Router struct {
	Filters []filters.RequestFilter
	Routes  []CachedRoute
}

func NewRouter(services ...Service) *Router {
	var routes []CachedRoute
	for _, service := range services {
		for composite, route := range service.GetRoutes() {
			parts := strings.SplitN(composite, ":", 2)
			routes = append(routes, CachedRoute{
				Method: parts[0],
				Path:   parts[1],
				Route:  route,
				Matcher: &CachedMatcher{
					Mutex: &sync.Mutex{},
				},
			})
		}
	}
	return &Router{
		Routes:  routes,
		Filters: []filters.RequestFilter{filters.DefaultCorsFilter()},
	}
}

func translateError(err error) events.APIGatewayV2HTTPResponse {
	statusCode := http.StatusInternalServerError
	var se *exceptions.ServiceError
	var re exceptions.RequestError
	if errors.As(err, &se) {
		statusCode = se.StatusCode
	} else if errors.As(err, &re) {
		statusCode = re.ToServiceError().StatusCode
	}
	body, _ := json.Marshal(map[string]string{"message": err.Error()})
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    headers,
	}
}

func (r *Router) Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	filterContext := filters.DefaultFilterContext(event, ctx)
	for _, filter := range r.Filters {
		updatedContext, broken := filter.Filter(filterContext)
		if broken {
			return *updatedContext.Response
		}
		filterContext = updatedContext
	}
	for _, route := range r.Routes {
		if params, ok := route.MatchEvent(*filterContext.Request); ok {
			resp, err := route.Route(event, context.WithValue(*filterContext.Context, PARAMS, params))
			if err != nil {
				return translateError(err)
			}
			return resp
		}
	}
	return translateError(exceptions.NotFound("route", event.RawPath))
}
