package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"philcali.me/forkify/internal/app"
	"philcali.me/forkify/internal/config"
	"philcali.me/forkify/internal/logger"
)

func NewApp(ctx context.Context) *app.App {
	cfg, err := config.Load("")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %s", err))
	}
	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		panic(err.Error())
	}
	a, err := app.NewApp(ctx, cfg, logger.New(level, os.Stderr))
	if err != nil {
		panic(fmt.Sprintf("Failed to create app: %s", err))
	}
	return a
}

func main() {
	ctx := context.Background()
	a := NewApp(ctx)
	a.Start(ctx)
	lambda.Start(a.HandleRequest)
}
