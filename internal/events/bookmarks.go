package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/dynamodb/kv"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/notifications"
)

// BookmarkChangeHandler compares the bookmark set before and after a write to
// the key/value table and announces what was added or removed.
type BookmarkChangeHandler struct {
	Namespace string
	Notifier  notifications.BookmarkNotifier
	Log       *logger.Logger
}

func DefaultBookmarkChangeHandler(namespace string, notifier notifications.BookmarkNotifier, log *logger.Logger) *BookmarkChangeHandler {
	return &BookmarkChangeHandler{
		Namespace: namespace,
		Notifier:  notifier,
		Log:       log,
	}
}

func (bh *BookmarkChangeHandler) Filter(record events.DynamoDBEventRecord) bool {
	pk, ok := record.Change.Keys["PK"]
	if !ok || pk.DataType() != events.DataTypeString || pk.String() != fmt.Sprintf("%s:%s", bh.Namespace, kv.NAME) {
		return false
	}
	sk, ok := record.Change.Keys["SK"]
	return ok && sk.DataType() == events.DataTypeString && sk.String() == data.BOOKMARKS_KEY
}

func _imageBookmarks(image map[string]events.DynamoDBAttributeValue) ([]data.Recipe, error) {
	if len(image) == 0 {
		return nil, nil
	}
	var dto kv.KeyValueDTO
	if err := UnmarshalImage(image, &dto); err != nil {
		return nil, err
	}
	if len(dto.Value) == 0 {
		return nil, nil
	}
	var bookmarks []data.Recipe
	if err := json.Unmarshal(dto.Value, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// _difference returns the recipes in left whose id is not in right.
func _difference(left []data.Recipe, right []data.Recipe) []data.Recipe {
	ids := make(map[string]bool, len(right))
	for _, recipe := range right {
		ids[recipe.ID] = true
	}
	var diff []data.Recipe
	for _, recipe := range left {
		if !ids[recipe.ID] {
			diff = append(diff, recipe)
		}
	}
	return diff
}

func (bh *BookmarkChangeHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	before, err := _imageBookmarks(record.Change.OldImage)
	if err != nil {
		return fmt.Errorf("old bookmarks: %w", err)
	}
	after, err := _imageBookmarks(record.Change.NewImage)
	if err != nil {
		return fmt.Errorf("new bookmarks: %w", err)
	}
	added := _difference(after, before)
	removed := _difference(before, after)
	if len(added) == 0 && len(removed) == 0 {
		bh.Log.Debug("bookmarks %s without membership change", record.EventName)
		return nil
	}
	bh.Log.Info("bookmarks changed: %d added, %d removed", len(added), len(removed))
	return bh.Notifier.BookmarksChanged(ctx, added, removed)
}

// Handle runs every matching handler over every record. A failing handler
// is logged and skips the rest of the handlers for that record.
func Handle(ctx context.Context, event events.DynamoDBEvent, handlers []EventFilter, log *logger.Logger) {
	for _, record := range event.Records {
		for _, handler := range handlers {
			if !handler.Filter(record) {
				continue
			}
			if err := handler.Apply(ctx, record); err != nil {
				log.Error("failed to handle %s record %s: %s", record.EventName, record.EventID, err)
				break
			}
		}
	}
}
