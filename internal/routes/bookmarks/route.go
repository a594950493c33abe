package bookmarks

import (
	"bytes"
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/forkify/internal/controller"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/export"
	"philcali.me/forkify/internal/routes"
	"philcali.me/forkify/internal/routes/util"
	"philcali.me/forkify/internal/state"
	"philcali.me/forkify/internal/views"
)

const XLSX_CONTENT_TYPE = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BookmarkService struct {
	controller *controller.Controller
}

func NewRoute(c *controller.Controller) routes.Service {
	return &BookmarkService{
		controller: c,
	}
}

func (bs *BookmarkService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/bookmarks":        bs.ListBookmarks,
		"GET:/bookmarks/export": bs.ExportBookmarks,
	}
}

func (bs *BookmarkService) bookmarks(ctx context.Context) ([]data.Recipe, error) {
	var bookmarks []data.Recipe
	err := bs.controller.Read(ctx, func(store *state.Store, page *views.Page) error {
		bookmarks = store.Bookmarks()
		return nil
	})
	return bookmarks, err
}

func (bs *BookmarkService) ListBookmarks(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	bookmarks, err := bs.bookmarks(ctx)
	return util.SerializeResponseOK(func(items []data.Recipe) data.QueryResults[data.Recipe] {
		return data.QueryResults[data.Recipe]{Items: items}
	}, bookmarks, err)
}

func (bs *BookmarkService) ExportBookmarks(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	bookmarks, err := bs.bookmarks(ctx)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	var buf bytes.Buffer
	err = export.WriteBookmarks(&buf, bookmarks)
	return util.BinaryResponse(buf.Bytes(), XLSX_CONTENT_TYPE, "bookmarks.xlsx", err)
}
