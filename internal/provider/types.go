package provider

import (
	"context"

	"philcali.me/forkify/internal/data"
)

// RecipePayload is a user-authored recipe ready to be sent upstream.
type RecipePayload struct {
	Title       string
	SourceURL   string
	Image       string
	Publisher   string
	CookingTime int
	Servings    int
	Ingredients []data.Ingredient
}

type RecipeProvider interface {
	Lookup(ctx context.Context, id string) (data.Recipe, error)
	Search(ctx context.Context, query string) (data.QueryResults[data.SearchResultItem], error)
	Upload(ctx context.Context, payload RecipePayload) (data.Recipe, error)
}
