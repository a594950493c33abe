package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/notifications"
)

// Publisher is the slice of the SNS client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type NotificationSNSService struct {
	Sns      Publisher
	TopicArn string
}

var _ notifications.RecipeNotifier = (*NotificationSNSService)(nil)
var _ notifications.BookmarkNotifier = (*NotificationSNSService)(nil)

type BookmarkChange struct {
	Added   []data.Recipe `json:"added"`
	Removed []data.Recipe `json:"removed"`
}

func (n *NotificationSNSService) RecipeUploaded(ctx context.Context, recipe data.Recipe) error {
	body, err := json.Marshal(recipe)
	if err != nil {
		return err
	}
	_, err = n.Sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.TopicArn),
		Subject:  aws.String("Recipe uploaded: " + recipe.Title),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"recipeId": {
				DataType:    aws.String("String"),
				StringValue: aws.String(recipe.ID),
			},
		},
	})
	return err
}

func (n *NotificationSNSService) BookmarksChanged(ctx context.Context, added []data.Recipe, removed []data.Recipe) error {
	body, err := json.Marshal(BookmarkChange{Added: added, Removed: removed})
	if err != nil {
		return err
	}
	_, err = n.Sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.TopicArn),
		Subject:  aws.String(fmt.Sprintf("Bookmarks changed: %d added, %d removed", len(added), len(removed))),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event": {
				DataType:    aws.String("String"),
				StringValue: aws.String("BookmarksChanged"),
			},
		},
	})
	return err
}
