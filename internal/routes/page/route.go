package page

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/forkify/internal/controller"
	"philcali.me/forkify/internal/messages"
	"philcali.me/forkify/internal/routes"
	"philcali.me/forkify/internal/routes/util"
	"philcali.me/forkify/internal/views"
)

type LocationInput struct {
	Hash string `json:"hash"`
}

type SearchInput struct {
	Query string `json:"query"`
}

type ClickInput struct {
	Element *int `json:"element"`
}

type PageService struct {
	controller *controller.Controller
}

func NewRoute(c *controller.Controller) routes.Service {
	return &PageService{
		controller: c,
	}
}

func (ps *PageService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/":                       ps.GetPage,
		"GET:/regions":                ps.GetRegions,
		"PUT:/location":               ps.ChangeLocation,
		"POST:/search":                ps.Search,
		"POST:/regions/:anchor/click": ps.Click,
		"POST:/upload":                ps.Upload,
		"POST:/upload/toggle":         ps.ToggleUpload,
	}
}

// respond sends msg through the controller and answers with the state of the
// page afterwards.
func (ps *PageService) respond(ctx context.Context, msg messages.Message) (events.APIGatewayV2HTTPResponse, error) {
	if err := ps.controller.Send(ctx, msg); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	snapshot, err := ps.controller.Snapshot(ctx)
	return util.SerializeResponseOK(util.Identity[controller.Snapshot], snapshot, err)
}

func (ps *PageService) GetPage(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	loaded := messages.PageLoaded{Hash: event.QueryStringParameters["hash"]}
	if err := ps.controller.Send(ctx, loaded); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.HTMLResponse(ps.controller.Document(ctx))
}

func (ps *PageService) GetRegions(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	snapshot, err := ps.controller.Snapshot(ctx)
	return util.SerializeResponseOK(util.Identity[controller.Snapshot], snapshot, err)
}

func (ps *PageService) ChangeLocation(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := LocationInput{}
	if err := util.DecodeBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return ps.respond(ctx, messages.LocationChanged{Hash: input.Hash})
}

func (ps *PageService) Search(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := SearchInput{}
	if err := util.DecodeBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return ps.respond(ctx, messages.Submitted{
		Anchor: views.ANCHOR_SEARCH,
		Fields: map[string]string{"query": input.Query},
	})
}

func (ps *PageService) Click(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := ClickInput{}
	if err := util.DecodeBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	element := 0
	if input.Element != nil {
		element = *input.Element
	}
	return ps.respond(ctx, messages.Clicked{
		Anchor:  util.RequestParam(ctx, "anchor"),
		Element: element,
	})
}

func (ps *PageService) Upload(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	fields := map[string]string{}
	if err := util.DecodeBody(event, &fields); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return ps.respond(ctx, messages.Submitted{
		Anchor: views.ANCHOR_UPLOAD,
		Fields: fields,
	})
}

func (ps *PageService) ToggleUpload(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return ps.respond(ctx, messages.DialogueToggled{})
}
