package forkify

import (
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/provider"
)

type Ingredient struct {
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
}

type Recipe struct {
	Id          string       `json:"id,omitempty"`
	Title       string       `json:"title"`
	Publisher   string       `json:"publisher"`
	SourceUrl   string       `json:"source_url"`
	ImageUrl    string       `json:"image_url"`
	Servings    int          `json:"servings"`
	CookingTime int          `json:"cooking_time"`
	Ingredients []Ingredient `json:"ingredients"`
	Key         string       `json:"key,omitempty"`
}

type RecipePreview struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	ImageUrl  string `json:"image_url"`
	Key       string `json:"key,omitempty"`
}

type RecipeResponse struct {
	Status string `json:"status"`
	Data   struct {
		Recipe Recipe `json:"recipe"`
	} `json:"data"`
}

type SearchResponse struct {
	Status  string `json:"status"`
	Results int    `json:"results"`
	Data    struct {
		Recipes []RecipePreview `json:"recipes"`
	} `json:"data"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func ToRecipe(r Recipe) data.Recipe {
	ingredients := make([]data.Ingredient, len(r.Ingredients))
	for i, in := range r.Ingredients {
		ingredients[i] = data.Ingredient{
			Quantity:    in.Quantity,
			Unit:        in.Unit,
			Description: in.Description,
		}
	}
	return data.Recipe{
		ID:          r.Id,
		Title:       r.Title,
		Publisher:   r.Publisher,
		SourceURL:   r.SourceUrl,
		Image:       r.ImageUrl,
		Servings:    r.Servings,
		CookingTime: r.CookingTime,
		Ingredients: ingredients,
		Key:         r.Key,
	}
}

func ToSearchResult(p RecipePreview) data.SearchResultItem {
	return data.SearchResultItem{
		ID:        p.Id,
		Title:     p.Title,
		Publisher: p.Publisher,
		Image:     p.ImageUrl,
		Key:       p.Key,
	}
}

func FromPayload(p provider.RecipePayload) Recipe {
	ingredients := make([]Ingredient, len(p.Ingredients))
	for i, in := range p.Ingredients {
		ingredients[i] = Ingredient{
			Quantity:    in.Quantity,
			Unit:        in.Unit,
			Description: in.Description,
		}
	}
	return Recipe{
		Title:       p.Title,
		SourceUrl:   p.SourceURL,
		ImageUrl:    p.Image,
		Publisher:   p.Publisher,
		CookingTime: p.CookingTime,
		Servings:    p.Servings,
		Ingredients: ingredients,
	}
}
