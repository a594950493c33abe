// Package app wires the configured storage, notifier, recipe client and
// page into a controller and a router.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-lambda-go/events"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"philcali.me/forkify/internal/config"
	"philcali.me/forkify/internal/controller"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/dynamodb/kv"
	"philcali.me/forkify/internal/forkify"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/notifications"
	"philcali.me/forkify/internal/routes"
	"philcali.me/forkify/internal/routes/bookmarks"
	"philcali.me/forkify/internal/routes/page"
	"philcali.me/forkify/internal/sns/services"
	"philcali.me/forkify/internal/state"
	"philcali.me/forkify/internal/storage"
	"philcali.me/forkify/internal/views"
)

type App struct {
	Config     *config.Config
	Store      *state.Store
	Controller *controller.Controller
	Router     *routes.Router
	Log        *logger.Logger

	closers []io.Closer
}

func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Log:    log,
	}
	kvStore, err := app.openStorage(ctx)
	if err != nil {
		return nil, err
	}
	notifier, err := app.notifier(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	client := forkify.NewForkifyClient(cfg.API.URL, cfg.API.Key, cfg.API.Timeout, log)
	app.Store = state.NewStore(client, kvStore, cfg.Search.ResultsPerPage, log)
	if err := app.Store.Init(ctx); err != nil {
		app.Close()
		return nil, err
	}
	pg, err := views.NewPage(cfg.Icons, log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Controller = controller.NewController(app.Store, pg, notifier, cfg.Upload.ModalClose, log)
	app.Router = routes.NewRouter(
		page.NewRoute(app.Controller),
		bookmarks.NewRoute(app.Controller),
	)
	return app, nil
}

func (app *App) openStorage(ctx context.Context) (data.KeyValueStore, error) {
	cfg := app.Config.Storage
	app.Log.Debug("opening %s storage", cfg.Backend)
	switch cfg.Backend {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "file":
		return storage.NewFileStore(cfg.Path), nil
	case "bolt":
		store, err := storage.OpenBoltStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, store)
		return store, nil
	case "sqlite":
		store, err := storage.OpenSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, store)
		return store, nil
	case "dynamodb":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return kv.NewKeyValueService(cfg.TableName, cfg.Namespace, dynamodb.NewFromConfig(awsCfg)), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func (app *App) notifier(ctx context.Context) (notifications.RecipeNotifier, error) {
	topicArn := app.Config.Notifications.TopicArn
	if topicArn == "" {
		return notifications.NoopNotifier{}, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &services.NotificationSNSService{
		Sns:      sns.NewFromConfig(awsCfg),
		TopicArn: topicArn,
	}, nil
}

// Start runs the controller loop in the background until ctx is done.
func (app *App) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- app.Controller.Run(ctx)
	}()
	return done
}

func (app *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return app.Router.Invoke(request, ctx), nil
}

func (app *App) Close() error {
	var first error
	for _, closer := range app.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	app.closers = nil
	return first
}
