package state

import (
	"context"
	"strconv"
	"strings"

	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/exceptions"
	"philcali.me/forkify/internal/provider"
)

const INGREDIENT_FORMAT = "Indicate all the data! Ingredients are 'quantity, unit, description'"

// ParseIngredient splits a "quantity, unit, description" field. A blank
// quantity means the amount is unspecified.
func ParseIngredient(field string) (data.Ingredient, error) {
	parts := strings.Split(field, ",")
	if len(parts) != 3 {
		return data.Ingredient{}, exceptions.Validation(INGREDIENT_FORMAT)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	ingredient := data.Ingredient{
		Unit:        parts[1],
		Description: parts[2],
	}
	if parts[0] != "" {
		quantity, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return data.Ingredient{}, exceptions.Validation("Quantity %q is not a number", parts[0])
		}
		ingredient.Quantity = &quantity
	}
	return ingredient, nil
}

// ToPayload validates a draft without touching the network.
func ToPayload(draft data.RecipeDraft) (provider.RecipePayload, error) {
	ingredients := []data.Ingredient{}
	for _, field := range draft.Ingredients {
		if field == "" {
			continue
		}
		ingredient, err := ParseIngredient(field)
		if err != nil {
			return provider.RecipePayload{}, err
		}
		ingredients = append(ingredients, ingredient)
	}
	cookingTime, err := strconv.Atoi(strings.TrimSpace(draft.CookingTime))
	if err != nil {
		return provider.RecipePayload{}, exceptions.Validation("Cooking time %q is not a whole number", draft.CookingTime)
	}
	servings, err := strconv.Atoi(strings.TrimSpace(draft.Servings))
	if err != nil || servings <= 0 {
		return provider.RecipePayload{}, exceptions.Validation("Servings %q must be a positive whole number", draft.Servings)
	}
	return provider.RecipePayload{
		Title:       draft.Title,
		SourceURL:   draft.SourceURL,
		Image:       draft.Image,
		Publisher:   draft.Publisher,
		CookingTime: cookingTime,
		Servings:    servings,
		Ingredients: ingredients,
	}, nil
}

// UploadRecipe sends the draft upstream, makes the created recipe current
// and bookmarks it.
func (s *Store) UploadRecipe(ctx context.Context, draft data.RecipeDraft) error {
	payload, err := ToPayload(draft)
	if err != nil {
		return err
	}
	recipe, err := s.Provider.Upload(ctx, payload)
	if err != nil {
		return err
	}
	s.recipe = &recipe
	s.Log.Info("uploaded recipe %s", recipe.ID)
	return s.Bookmark(ctx, recipe)
}
