package notifications

import (
	"context"

	"philcali.me/forkify/internal/data"
)

// RecipeNotifier announces recipes the user uploaded.
type RecipeNotifier interface {
	RecipeUploaded(ctx context.Context, recipe data.Recipe) error
}

// BookmarkNotifier announces changes to the persisted bookmark set.
type BookmarkNotifier interface {
	BookmarksChanged(ctx context.Context, added []data.Recipe, removed []data.Recipe) error
}

type NoopNotifier struct{}

func (NoopNotifier) RecipeUploaded(ctx context.Context, recipe data.Recipe) error {
	return nil
}

func (NoopNotifier) BookmarksChanged(ctx context.Context, added []data.Recipe, removed []data.Recipe) error {
	return nil
}
