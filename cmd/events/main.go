package main

import (
	"context"
	"os"

	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"philcali.me/forkify/internal/config"
	"philcali.me/forkify/internal/events"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/notifications"
	"philcali.me/forkify/internal/sns/services"
)

func HandleRequest(ctx context.Context, event lambdaEvents.DynamoDBEvent) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	log := logger.New(level, os.Stderr)

	var notifier notifications.BookmarkNotifier = notifications.NoopNotifier{}
	if cfg.Notifications.TopicArn != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return err
		}
		notifier = &services.NotificationSNSService{
			Sns:      sns.NewFromConfig(awsCfg),
			TopicArn: cfg.Notifications.TopicArn,
		}
	}

	handlers := []events.EventFilter{
		events.DefaultBookmarkChangeHandler(cfg.Storage.Namespace, notifier, log),
	}
	events.Handle(ctx, event, handlers, log)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
